package chronicle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequenceEntryRoundTrip(t *testing.T) {
	buf := make([]byte, sequenceEntryWidth)
	encodeSequenceEntry(sequenceEntry{channelID: 0xDEADBEEF}, buf)
	got := decodeSequenceEntry(buf)
	require.Equal(t, uint64(0xDEADBEEF), got.channelID)
}

func TestIndexEntryRoundTrip(t *testing.T) {
	buf := make([]byte, indexEntryWidth)
	entry := indexEntry{rollID: 3, rollPosition: 128, dataSize: 64}
	encodeIndexEntry(entry, buf)
	got := decodeIndexEntry(buf)
	require.Equal(t, entry, got)
}

func TestIndexEntryFieldOrder(t *testing.T) {
	buf := make([]byte, indexEntryWidth)
	encodeIndexEntry(indexEntry{rollID: 1, rollPosition: 2, dataSize: 3}, buf)

	require.Equal(t, byte(1), buf[0])
	require.Equal(t, byte(2), buf[8])
	require.Equal(t, byte(3), buf[16])
}

func TestTotalLen(t *testing.T) {
	require.Equal(t, uint64(0), totalLen(nil))
	require.Equal(t, uint64(0), totalLen([][]byte{{}, {}}))
	require.Equal(t, uint64(6), totalLen([][]byte{{1, 2}, {3, 4, 5}, {6}}))
}
