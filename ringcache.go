package chronicle

// rollCacheCapacity bounds the number of distinct rolls a ChannelReader
// keeps mapped at once. Chosen to match the source's small
// boost::circular_buffer, not a general hashmap+heap LRU: a channel reader
// only ever walks forward through a handful of rolls at a time, so a tiny
// fixed ring beats a general-purpose cache.
const rollCacheCapacity = 5

type rollCacheEntry struct {
	rollID  uint64
	mapping *mappedFile
}

// rollCache is a fixed-capacity ring of recently-mapped roll files, evicted
// oldest-first once full. It does not deduplicate lookups beyond a linear
// scan: rollCacheCapacity is small enough that this is cheaper than any
// indexing structure.
type rollCache struct {
	entries [rollCacheCapacity]rollCacheEntry
	size    int
	next    int
}

// get returns the mapping for rollID if it is currently cached.
func (c *rollCache) get(rollID uint64) (*mappedFile, bool) {
	for i := 0; i < c.size; i++ {
		if c.entries[i].rollID == rollID {
			return c.entries[i].mapping, true
		}
	}
	return nil, false
}

// put inserts mapping for rollID, evicting the oldest entry once the ring
// is full. Eviction only drops the ring's own reference: it never unmaps
// directly, since a Crate handed out earlier may still be reading from
// this mapping. The mapping is actually unmapped by its finalizer once it
// becomes unreachable from both the ring and any outstanding Crate.
func (c *rollCache) put(rollID uint64, mapping *mappedFile) {
	if c.size < rollCacheCapacity {
		c.entries[c.size] = rollCacheEntry{rollID: rollID, mapping: mapping}
		c.size++
		return
	}
	c.entries[c.next] = rollCacheEntry{rollID: rollID, mapping: mapping}
	c.next = (c.next + 1) % rollCacheCapacity
}

// close drops every cached reference. Called when the owning ChannelReader
// is closed; it does not force an unmap for the same reason put's eviction
// doesn't, see above.
func (c *rollCache) close() {
	for i := 0; i < c.size; i++ {
		c.entries[i].mapping = nil
	}
	c.size = 0
	c.next = 0
}
