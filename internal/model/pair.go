package model

// PairStatus is the curation status of a pair.
type PairStatus int

const (
	// StatusActive pairs take part in navigation, marking and auto-select.
	StatusActive PairStatus = iota
	// StatusIgnored pairs stay in the working set but are skipped.
	StatusIgnored
)

func (s PairStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusIgnored:
		return "ignored"
	}

	return "unknown"
}

// Side identifies one member of a pair. A is File1, B is File2.
type Side int

const (
	// SideNone means no side is marked.
	SideNone Side = iota
	// SideA refers to File1.
	SideA
	// SideB refers to File2.
	SideB
)

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	case SideNone:
		return "-"
	}

	return "?"
}

// NoIndex is used when no pair is selected.
const NoIndex = -1

// PairInit is a pair record as produced by the scan service.
type PairInit struct {
	File1      FileInfo `json:"file1" yaml:"file1"`
	File2      FileInfo `json:"file2" yaml:"file2"`
	Similarity float64  `json:"similarity" yaml:"similarity"`
}

// Pair is a duplicate candidate together with its curation state.
type Pair struct {
	Index      int // position in the original scan result
	File1      FileInfo
	File2      FileInfo
	Similarity float64
	Status     PairStatus
	Marked     Side
}

// File returns the FileInfo for the given side.
func (p *Pair) File(side Side) *FileInfo {
	switch side {
	case SideA:
		return &p.File1
	case SideB:
		return &p.File2
	case SideNone:
	}

	return nil
}

// FullyDeleted reports whether both files were deleted.
func (p Pair) FullyDeleted() bool {
	return p.File1.Path.IsDeleted() && p.File2.Path.IsDeleted()
}

// PartiallyDeleted reports whether exactly one file was deleted.
func (p Pair) PartiallyDeleted() bool {
	return p.File1.Path.IsDeleted() != p.File2.Path.IsDeleted()
}

// Snapshot is a read-only copy of the working set for rendering.
type Snapshot struct {
	Pairs       []Pair
	ActiveIndex int // NoIndex when nothing is selected
	TotalLoaded int // pair count of the last load, before any removal
}

// Active returns the active pair, if any.
func (s Snapshot) Active() (Pair, bool) {
	if s.ActiveIndex == NoIndex {
		return Pair{}, false
	}

	for _, pair := range s.Pairs {
		if pair.Index == s.ActiveIndex {
			return pair, true
		}
	}

	return Pair{}, false
}

// Counts returns the number of active, ignored and marked pairs.
func (s Snapshot) Counts() (active, ignored, marked int) {
	for _, pair := range s.Pairs {
		if pair.Status == StatusIgnored {
			ignored++
			continue
		}

		active++

		if pair.Marked != SideNone {
			marked++
		}
	}

	return active, ignored, marked
}
