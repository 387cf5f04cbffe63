package chronicle

// Crate is a zero-copy view over a span of bytes inside a memory-mapped
// roll file. It stays valid for as long as it is reachable, independent of
// the ChannelReader or Reader that produced it: the Crate holds the mapping
// itself alive, not just a slice into it, so a held Crate outlives any later
// rotation of the reader's ring cache.
type Crate struct {
	mapping *mappedFile
	data    []byte
}

// newCrate builds a Crate over mapping[offset : offset+length]. Callers
// must already have validated the range against the mapping's length.
func newCrate(mapping *mappedFile, offset, length uint64) Crate {
	region := mapping.bytes()
	return Crate{
		mapping: mapping,
		data:    region[offset : offset+length],
	}
}

// Bytes returns the underlying byte span. The returned slice must not be
// mutated: it aliases the read-only mapping directly.
func (c Crate) Bytes() []byte {
	return c.data
}

// Len returns the number of bytes in the view.
func (c Crate) Len() int {
	return len(c.data)
}
