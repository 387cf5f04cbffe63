package chronicle

import "encoding/binary"

// sequenceEntryWidth and indexEntryWidth are the fixed, packed, on-disk
// record widths. No alignment padding beyond the field boundaries, matching
// spec.md's wire layout.
const (
	sequenceEntryWidth = 8
	indexEntryWidth    = 24
)

// sequenceEntry is one record of the global sequence log: the channel id of
// the frame appended at this position.
type sequenceEntry struct {
	channelID uint64
}

// indexEntry is one record of a channel's index file: which roll a frame
// lives in, its byte offset within that roll, and its length.
type indexEntry struct {
	rollID       uint64
	rollPosition uint64
	dataSize     uint64
}

// encodeSequenceEntry writes e as 8 little-endian bytes.
func encodeSequenceEntry(e sequenceEntry, buf []byte) {
	binary.LittleEndian.PutUint64(buf, e.channelID)
}

// decodeSequenceEntry reads a sequenceEntry from the first 8 bytes of buf.
// Callers must ensure buf is at least sequenceEntryWidth long.
func decodeSequenceEntry(buf []byte) sequenceEntry {
	return sequenceEntry{channelID: binary.LittleEndian.Uint64(buf)}
}

// encodeIndexEntry writes e as 24 little-endian bytes: rollId, rollPosition,
// dataSize in that order.
func encodeIndexEntry(e indexEntry, buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], e.rollID)
	binary.LittleEndian.PutUint64(buf[8:16], e.rollPosition)
	binary.LittleEndian.PutUint64(buf[16:24], e.dataSize)
}

// decodeIndexEntry reads an indexEntry from the first 24 bytes of buf.
// Callers must ensure buf is at least indexEntryWidth long.
func decodeIndexEntry(buf []byte) indexEntry {
	return indexEntry{
		rollID:       binary.LittleEndian.Uint64(buf[0:8]),
		rollPosition: binary.LittleEndian.Uint64(buf[8:16]),
		dataSize:     binary.LittleEndian.Uint64(buf[16:24]),
	}
}

// totalLen sums the length of every span in spans, mirroring the source's
// computeTotalSizeInBytes over a collection of byte spans.
func totalLen(spans [][]byte) uint64 {
	var total uint64
	for _, s := range spans {
		total += uint64(len(s))
	}
	return total
}
