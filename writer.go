package chronicle

import (
	"bufio"
	"os"
	"path/filepath"
	"time"

	"github.com/ajakhotia/chronicle/internal/guarded"
)

// WriterOption configures a Writer at construction time.
type WriterOption func(*writerConfig)

type writerConfig struct {
	maxRollBytes uint64
	warn         func(string)
}

// WithMaxRollBytes overrides the default per-roll size cap.
func WithMaxRollBytes(n uint64) WriterOption {
	return func(c *writerConfig) { c.maxRollBytes = n }
}

// WithWarnFunc overrides how the Writer reports non-fatal warnings, such as
// clearing a pre-existing session directory. The default discards them.
func WithWarnFunc(fn func(string)) WriterOption {
	return func(c *writerConfig) { c.warn = fn }
}

// Writer appends frames to channels in a new chronicle directory under
// logRoot, in the exact order Write/WriteSpans are called. The ordering
// across channels is recorded in a single global sequence log so replay
// can reconstruct it.
type Writer struct {
	dir          string
	maxRollBytes uint64

	sequenceFile *guarded.Guarded[*bufio.Writer]
	sequenceRaw  *os.File

	channels *guarded.Guarded[map[uint64]*guardedChannelWriter]
}

// guardedChannelWriter pairs a channelWriter with its own exclusive lock,
// so that writes to different channels never block each other.
type guardedChannelWriter struct {
	guard *guarded.Guarded[*channelWriter]
}

// NewWriter constructs a Writer. A timestamped, uuid-suffixed subdirectory
// of logRoot is created to hold this session's chronicle.
func NewWriter(logRoot string, opts ...WriterOption) (*Writer, error) {
	cfg := writerConfig{maxRollBytes: DefaultMaxRollBytes, warn: func(string) {}}
	for _, opt := range opts {
		opt(&cfg)
	}

	dir, err := setupSessionDirectory(logRoot, time.Now(), cfg.warn)
	if err != nil {
		return nil, err
	}

	sequencePath := filepath.Join(dir, SequenceFileName)
	f, err := os.Create(sequencePath)
	if err != nil {
		return nil, newIoError("create", sequencePath, err)
	}

	return &Writer{
		dir:          dir,
		maxRollBytes: cfg.maxRollBytes,
		sequenceFile: guarded.New(bufio.NewWriter(f)),
		sequenceRaw:  f,
		channels:     guarded.New(make(map[uint64]*guardedChannelWriter)),
	}, nil
}

// Path returns the chronicle directory this Writer is populating.
func (w *Writer) Path() string {
	return w.dir
}

// Write appends a single-span frame to channelID.
func (w *Writer) Write(channelID uint64, payload []byte) error {
	return w.WriteSpans(channelID, [][]byte{payload})
}

// WriteSpans appends the concatenation of payload as a single frame to
// channelID. The sequence log is updated first, then the channel's own
// data and index; these two steps are not atomic with each other (a crash
// between them leaves an orphaned sequence entry, surfaced by a Reader as
// CorruptChronicle).
func (w *Writer) WriteSpans(channelID uint64, payload [][]byte) error {
	if err := w.appendSequenceEntry(channelID); err != nil {
		return err
	}

	gcw, err := w.acquireChannel(channelID)
	if err != nil {
		return err
	}

	return gcw.guard.Write(func(cw **channelWriter) error {
		return (*cw).writeFrameSpans(payload)
	})
}

func (w *Writer) appendSequenceEntry(channelID uint64) error {
	return w.sequenceFile.Write(func(bw **bufio.Writer) error {
		var buf [sequenceEntryWidth]byte
		encodeSequenceEntry(sequenceEntry{channelID: channelID}, buf[:])
		if _, err := (*bw).Write(buf[:]); err != nil {
			return newIoError("write", filepath.Join(w.dir, SequenceFileName), err)
		}
		return (*bw).Flush()
	})
}

// acquireChannel returns the guarded channelWriter for channelID, creating
// its directory and files on first use.
func (w *Writer) acquireChannel(channelID uint64) (*guardedChannelWriter, error) {
	return guarded.WriteVal(w.channels, func(m *map[uint64]*guardedChannelWriter) (*guardedChannelWriter, error) {
		if existing, ok := (*m)[channelID]; ok {
			return existing, nil
		}

		dir := filepath.Join(w.dir, hexChannelDir(channelID))
		cw, err := newChannelWriter(dir, w.maxRollBytes)
		if err != nil {
			return nil, err
		}

		gcw := &guardedChannelWriter{guard: guarded.New(cw)}
		(*m)[channelID] = gcw
		return gcw, nil
	})
}

// Close flushes and closes the sequence log and every channel this Writer
// has opened.
func (w *Writer) Close() error {
	var firstErr error

	if err := w.sequenceFile.Write(func(bw **bufio.Writer) error {
		return (*bw).Flush()
	}); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.sequenceRaw.Close(); err != nil && firstErr == nil {
		firstErr = newIoError("close", filepath.Join(w.dir, SequenceFileName), err)
	}

	err := w.channels.Read(func(m *map[uint64]*guardedChannelWriter) error {
		for _, gcw := range *m {
			if cerr := gcw.guard.Write(func(cw **channelWriter) error {
				return (*cw).close()
			}); cerr != nil && firstErr == nil {
				firstErr = cerr
			}
		}
		return nil
	})
	if err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}
