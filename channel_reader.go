package chronicle

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/ajakhotia/chronicle/internal/lazycache"
)

// hotRoll is the single most-recently-used roll mapping, memoized in front
// of the ring cache: replay almost always stays on the same roll across
// consecutive frames, so checking this one entry avoids walking the ring on
// the common path.
type hotRoll struct {
	rollID  uint64
	mapping *mappedFile
}

// channelReader replays one channel's index file, mapping roll files on
// demand and serving each frame as a zero-copy Crate.
type channelReader struct {
	dir   string
	index *mappedFile

	nextReadIndex uint64
	hot           lazycache.LazyCache[hotRoll]
	cache         rollCache
}

func newChannelReader(dir string) (*channelReader, error) {
	if err := validatePath(dir); err != nil {
		return nil, err
	}

	index, err := openMappedFile(filepath.Join(dir, IndexFileName))
	if err != nil {
		return nil, err
	}

	return &channelReader{dir: dir, index: index}, nil
}

// read returns the next frame as a Crate, or ErrEndOfChronicle once the
// index file is exhausted.
func (cr *channelReader) read() (Crate, error) {
	offset := cr.nextReadIndex * indexEntryWidth
	indexBytes := cr.index.bytes()

	if offset >= uint64(len(indexBytes)) {
		return Crate{}, ErrEndOfChronicle
	}
	if offset+indexEntryWidth > uint64(len(indexBytes)) {
		return Crate{}, newCorruptChronicleError(
			filepath.Join(cr.dir, IndexFileName),
			"index file ends inside a record",
		)
	}

	cr.nextReadIndex++
	entry := decodeIndexEntry(indexBytes[offset : offset+indexEntryWidth])

	roll, err := cr.acquireRoll(entry.rollID)
	if err != nil {
		return Crate{}, err
	}

	end := entry.rollPosition + entry.dataSize
	if end > uint64(roll.len()) {
		return Crate{}, newCorruptChronicleError(
			filepath.Join(cr.dir, rollName(entry.rollID)),
			"index entry range exceeds mapped roll length",
		)
	}

	return newCrate(roll, entry.rollPosition, entry.dataSize), nil
}

// acquireRoll returns the mapping for rollID: the hot-roll memo if rollID
// is still the last one used, else the ring cache, else a fresh mapping.
// A roll file missing from disk is corruption, not a generic I/O fault:
// invariant 4 guarantees every rollID an index entry references has a file
// on disk, so its absence means the chronicle itself is broken.
func (cr *channelReader) acquireRoll(rollID uint64) (*mappedFile, error) {
	hot, err := cr.hot.Access(
		func(h hotRoll) bool { return h.mapping != nil && h.rollID == rollID },
		func() (hotRoll, error) {
			if mapping, ok := cr.cache.get(rollID); ok {
				return hotRoll{rollID: rollID, mapping: mapping}, nil
			}

			path := filepath.Join(cr.dir, rollName(rollID))
			mapping, err := openMappedFile(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return hotRoll{}, newCorruptChronicleError(path, "roll file missing")
				}
				return hotRoll{}, err
			}

			cr.cache.put(rollID, mapping)
			return hotRoll{rollID: rollID, mapping: mapping}, nil
		})
	if err != nil {
		return nil, err
	}

	return hot.mapping, nil
}

// close releases the channel reader's own references. Any Crate already
// handed to a caller keeps its mapping alive via the finalizer.
func (cr *channelReader) close() {
	cr.hot.Reset()
	cr.cache.close()
	cr.index.close()
}
