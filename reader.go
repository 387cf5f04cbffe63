package chronicle

import (
	"path/filepath"

	"github.com/ajakhotia/chronicle/internal/guarded"
)

// Entry is a single frame read back from a chronicle: the channel it was
// written to and a zero-copy view of its bytes.
type Entry struct {
	ChannelID uint64
	Crate     Crate
}

// Reader replays a chronicle directory in the exact order its frames were
// written, following the global sequence log across channels.
type Reader struct {
	dir      string
	sequence *mappedFile

	nextReadIndex uint64

	channels *guarded.Guarded[map[uint64]*channelReader]
}

// NewReader opens an existing chronicle directory for replay.
func NewReader(chronicleDir string) (*Reader, error) {
	if err := validatePath(chronicleDir); err != nil {
		return nil, err
	}

	sequence, err := openMappedFile(filepath.Join(chronicleDir, SequenceFileName))
	if err != nil {
		return nil, err
	}

	return &Reader{
		dir:      chronicleDir,
		sequence: sequence,
		channels: guarded.New(make(map[uint64]*channelReader)),
	}, nil
}

// Read returns the next Entry in write order, or ErrEndOfChronicle once
// the sequence log is exhausted.
func (r *Reader) Read() (Entry, error) {
	offset := r.nextReadIndex * sequenceEntryWidth
	seqBytes := r.sequence.bytes()

	if offset >= uint64(len(seqBytes)) {
		return Entry{}, ErrEndOfChronicle
	}
	if offset+sequenceEntryWidth > uint64(len(seqBytes)) {
		return Entry{}, newCorruptChronicleError(
			filepath.Join(r.dir, SequenceFileName),
			"sequence file ends inside a record",
		)
	}

	r.nextReadIndex++
	entry := decodeSequenceEntry(seqBytes[offset : offset+sequenceEntryWidth])

	cr, err := r.acquireChannel(entry.channelID)
	if err != nil {
		return Entry{}, err
	}

	crate, err := cr.read()
	if err != nil {
		if err == ErrEndOfChronicle {
			return Entry{}, newCorruptChronicleError(
				filepath.Join(r.dir, hexChannelDir(entry.channelID)),
				"sequence log references a frame missing from the channel's index",
			)
		}
		return Entry{}, err
	}

	return Entry{ChannelID: entry.channelID, Crate: crate}, nil
}

// acquireChannel returns the channelReader for channelID, opening its
// directory on first use.
func (r *Reader) acquireChannel(channelID uint64) (*channelReader, error) {
	return guarded.WriteVal(r.channels, func(m *map[uint64]*channelReader) (*channelReader, error) {
		if existing, ok := (*m)[channelID]; ok {
			return existing, nil
		}

		dir := filepath.Join(r.dir, hexChannelDir(channelID))
		cr, err := newChannelReader(dir)
		if err != nil {
			return nil, err
		}

		(*m)[channelID] = cr
		return cr, nil
	})
}

// Close releases the Reader's own mappings. Crates already handed out
// remain valid via their own finalizer-backed references.
func (r *Reader) Close() error {
	err := r.channels.Read(func(m *map[uint64]*channelReader) error {
		for _, cr := range *m {
			cr.close()
		}
		return nil
	})
	r.sequence.close()
	return err
}
