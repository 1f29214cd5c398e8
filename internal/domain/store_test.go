package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

func TestPairStore_Load(t *testing.T) {
	store := loadedStore(sharedFileSet())

	pairs := store.Pairs()
	require.Len(t, pairs, 3)
	assert.Equal(t, []int{0, 1, 2}, indices(pairs))
	assert.Equal(t, 3, store.Loaded())

	for _, pair := range pairs {
		assert.Equal(t, m.StatusActive, pair.Status)
		assert.Equal(t, m.SideNone, pair.Marked)
	}

	t.Run("reload replaces everything", func(t *testing.T) {
		require.NoError(t, store.SetMark(0, m.SideA))

		store.Load(sharedFileSet()[:1])

		pairs := store.Pairs()
		require.Len(t, pairs, 1)
		assert.Equal(t, m.SideNone, pairs[0].Marked)
		assert.Equal(t, 1, store.Loaded())
	})

	t.Run("empty load", func(t *testing.T) {
		store.Load(nil)
		assert.Empty(t, store.Pairs())
		assert.Equal(t, 0, store.Loaded())
	})
}

func TestPairStore_Get(t *testing.T) {
	store := loadedStore(sharedFileSet())

	pair, err := store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, m.Path("/c.jpg"), pair.File1.Path)

	_, err = store.Get(7)
	require.ErrorIs(t, err, ErrInvalidIndex)

	_, err = store.Get(-1)
	require.ErrorIs(t, err, ErrInvalidIndex)

	t.Run("returns a copy", func(t *testing.T) {
		pair, err := store.Get(0)
		require.NoError(t, err)

		pair.Marked = m.SideB

		stored, err := store.Get(0)
		require.NoError(t, err)
		assert.Equal(t, m.SideNone, stored.Marked)
	})
}

func TestPairStore_MarkDeleted(t *testing.T) {
	t.Run("every occurrence on either side", func(t *testing.T) {
		store := loadedStore(sharedFileSet())

		touched := store.MarkDeleted("/a.jpg")
		assert.Equal(t, []int{0, 2}, touched)

		first, err := store.Get(0)
		require.NoError(t, err)
		assert.True(t, first.File1.Path.IsDeleted())
		assert.Equal(t, m.Path("/b.jpg"), first.File2.Path)

		third, err := store.Get(2)
		require.NoError(t, err)
		assert.True(t, third.File2.Path.IsDeleted())
		assert.Equal(t, m.Path("/e.jpg"), third.File1.Path)

		untouched, err := store.Get(1)
		require.NoError(t, err)
		assert.Equal(t, m.Path("/c.jpg"), untouched.File1.Path)
	})

	t.Run("unknown path touches nothing", func(t *testing.T) {
		store := loadedStore(sharedFileSet())
		assert.Empty(t, store.MarkDeleted("/zzz.jpg"))
		assert.Empty(t, store.MarkDeleted(""))
		assert.Empty(t, store.MarkDeleted(m.DeletedPath))
	})

	t.Run("clears marks on the deleted side only", func(t *testing.T) {
		store := loadedStore(sharedFileSet())
		require.NoError(t, store.SetMark(0, m.SideA))
		require.NoError(t, store.SetMark(2, m.SideA))

		store.MarkDeleted("/a.jpg")

		first, _ := store.Get(0)
		assert.Equal(t, m.SideNone, first.Marked)

		third, _ := store.Get(2)
		assert.Equal(t, m.SideA, third.Marked)
	})

	t.Run("same file on both sides", func(t *testing.T) {
		store := loadedStore([]m.PairInit{
			pairInit(file("/x.jpg", 1, 1, 1, 1), file("/x.jpg", 1, 1, 1, 1), 100),
		})

		assert.Equal(t, []int{0}, store.MarkDeleted("/x.jpg"))
		assert.True(t, store.IsFullyDeleted(0))
	})
}

func TestPairStore_IsFullyDeleted(t *testing.T) {
	store := loadedStore(sharedFileSet())

	assert.False(t, store.IsFullyDeleted(0))

	store.MarkDeleted("/a.jpg")
	assert.False(t, store.IsFullyDeleted(0))

	store.MarkDeleted("/b.jpg")
	assert.True(t, store.IsFullyDeleted(0))

	assert.False(t, store.IsFullyDeleted(42))
}

func TestPairStore_Remove(t *testing.T) {
	store := loadedStore(sharedFileSet())

	require.NoError(t, store.Remove(1))
	assert.Equal(t, []int{0, 2}, indices(store.Pairs()))
	assert.Equal(t, 3, store.Loaded())

	_, err := store.Get(1)
	require.ErrorIs(t, err, ErrInvalidIndex)

	pair, err := store.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 2, pair.Index)

	require.ErrorIs(t, store.Remove(1), ErrInvalidIndex)
}

func TestPairStore_SetIgnored(t *testing.T) {
	store := loadedStore(sharedFileSet())
	require.NoError(t, store.SetMark(0, m.SideB))

	require.NoError(t, store.SetIgnored(0, true))

	pair, _ := store.Get(0)
	assert.Equal(t, m.StatusIgnored, pair.Status)
	assert.Equal(t, m.SideNone, pair.Marked)

	require.NoError(t, store.SetIgnored(0, false))

	pair, _ = store.Get(0)
	assert.Equal(t, m.StatusActive, pair.Status)
	assert.Equal(t, m.SideNone, pair.Marked, "un-ignoring does not restore the mark")

	require.ErrorIs(t, store.SetIgnored(9, true), ErrInvalidIndex)
}

func TestPairStore_SetMark(t *testing.T) {
	store := loadedStore(sharedFileSet())

	require.NoError(t, store.SetMark(1, m.SideA))
	pair, _ := store.Get(1)
	assert.Equal(t, m.SideA, pair.Marked)

	require.NoError(t, store.SetMark(1, m.SideNone))
	pair, _ = store.Get(1)
	assert.Equal(t, m.SideNone, pair.Marked)

	t.Run("ignored pair", func(t *testing.T) {
		require.NoError(t, store.SetIgnored(1, true))
		require.ErrorIs(t, store.SetMark(1, m.SideB), ErrInvalidMarkState)
		require.NoError(t, store.SetMark(1, m.SideNone))
	})

	t.Run("deleted side", func(t *testing.T) {
		store.MarkDeleted("/b.jpg")
		require.ErrorIs(t, store.SetMark(0, m.SideB), ErrInvalidMarkState)
		require.NoError(t, store.SetMark(0, m.SideA))
	})

	t.Run("unknown index", func(t *testing.T) {
		require.ErrorIs(t, store.SetMark(5, m.SideA), ErrInvalidIndex)
	})
}

func TestPairStore_ClearMarks(t *testing.T) {
	store := loadedStore(sharedFileSet())
	require.NoError(t, store.SetMark(0, m.SideA))
	require.NoError(t, store.SetMark(2, m.SideB))

	assert.Equal(t, 2, store.ClearMarks())
	assert.Equal(t, 0, store.ClearMarks())

	for _, pair := range store.Pairs() {
		assert.Equal(t, m.SideNone, pair.Marked)
	}
}

func TestPairStore_ApplyMarks(t *testing.T) {
	store := loadedStore(sharedFileSet())
	require.NoError(t, store.SetMark(1, m.SideA))
	require.NoError(t, store.SetIgnored(2, true))

	applied := store.ApplyMarks(map[int]m.Side{
		0: m.SideB,
		1: m.SideNone,
		2: m.SideA,
		8: m.SideA,
	})

	assert.Equal(t, 1, applied)

	pairs := store.Pairs()
	assert.Equal(t, m.SideB, pairs[0].Marked)
	assert.Equal(t, m.SideNone, pairs[1].Marked)
	assert.Equal(t, m.SideNone, pairs[2].Marked)
}

func TestPairStore_ConcurrentMutations(t *testing.T) {
	store := loadedStore(sharedFileSet())

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(3)

		go func() {
			defer wg.Done()
			_ = store.SetMark(1, m.SideA)
		}()

		go func() {
			defer wg.Done()
			store.ClearMarks()
		}()

		go func() {
			defer wg.Done()
			_ = store.Pairs()
		}()
	}

	wg.Wait()

	assert.Len(t, store.Pairs(), 3)
}
