package domain

import (
	m "twinpick.dev/pkg/twinpick/internal/model"
)

func file(path string, width, height int, size int64, modTime float64) m.FileInfo {
	return m.FileInfo{
		Path:       m.Path(path),
		Resolution: m.Resolution{Width: width, Height: height},
		FileSize:   size,
		ModTime:    modTime,
	}
}

func pairInit(a, b m.FileInfo, similarity float64) m.PairInit {
	return m.PairInit{File1: a, File2: b, Similarity: similarity}
}

// sharedFileSet has /a.jpg in pairs 0 and 2, on different sides.
func sharedFileSet() []m.PairInit {
	return []m.PairInit{
		pairInit(file("/a.jpg", 100, 100, 10, 1), file("/b.jpg", 200, 200, 20, 2), 95),
		pairInit(file("/c.jpg", 100, 100, 10, 1), file("/d.jpg", 100, 100, 10, 1), 91),
		pairInit(file("/e.jpg", 100, 100, 10, 1), file("/a.jpg", 100, 100, 10, 1), 99),
	}
}

func loadedStore(inits []m.PairInit) PairStore {
	store := NewPairStore()
	store.Load(inits)

	return store
}

func indices(pairs []m.Pair) []int {
	out := make([]int, 0, len(pairs))
	for _, pair := range pairs {
		out = append(out, pair.Index)
	}

	return out
}
