package chronicle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fakeMappedFile() *mappedFile {
	return &mappedFile{}
}

func TestRollCacheHitAndMiss(t *testing.T) {
	var c rollCache
	m0 := fakeMappedFile()
	c.put(0, m0)

	got, ok := c.get(0)
	require.True(t, ok)
	require.Same(t, m0, got)

	_, ok = c.get(1)
	require.False(t, ok)
}

func TestRollCacheEvictsOldestAtCapacity(t *testing.T) {
	var c rollCache
	mappings := make([]*mappedFile, rollCacheCapacity+2)
	for i := range mappings {
		mappings[i] = fakeMappedFile()
		c.put(uint64(i), mappings[i])
	}

	_, ok := c.get(0)
	require.False(t, ok, "oldest entry should have been evicted")

	_, ok = c.get(1)
	require.False(t, ok, "second-oldest entry should have been evicted")

	for i := 2; i < len(mappings); i++ {
		got, ok := c.get(uint64(i))
		require.True(t, ok)
		require.Same(t, mappings[i], got)
	}
}

func TestRollCacheCloseDropsReferences(t *testing.T) {
	var c rollCache
	c.put(0, fakeMappedFile())
	c.close()

	_, ok := c.get(0)
	require.False(t, ok)
}
