package chronicle

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// DefaultMaxRollBytes is the roll size cap used when a Writer isn't given
// an explicit WithMaxRollBytes option.
const DefaultMaxRollBytes = 128 * 1024 * 1024

// channelWriter owns one channel's directory: its index file and the
// currently active roll file. It rotates to a new roll whenever the active
// one doesn't have room for the next frame.
type channelWriter struct {
	dir          string
	maxRollBytes uint64

	indexFile *os.File
	indexW    *bufio.Writer

	rollCounter uint64
	activeRoll  *os.File
	activeW     *bufio.Writer
	activeSize  uint64

	err error
}

// newChannelWriter creates the channel directory fresh. It fails with
// ErrChannelAlreadyExists if the directory (or anything) is already there,
// mirroring StreamChannelWriter's refusal to append onto existing rolls.
func newChannelWriter(dir string, maxRollBytes uint64) (*channelWriter, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrChannelAlreadyExists, dir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, newIoError("mkdir", dir, err)
	}

	indexFile, err := os.Create(filepath.Join(dir, IndexFileName))
	if err != nil {
		return nil, newIoError("create", filepath.Join(dir, IndexFileName), err)
	}

	cw := &channelWriter{
		dir:          dir,
		maxRollBytes: maxRollBytes,
		indexFile:    indexFile,
		indexW:       bufio.NewWriter(indexFile),
		rollCounter:  math.MaxUint64,
	}

	if err := cw.rotateRoll(); err != nil {
		_ = indexFile.Close()
		return nil, err
	}

	return cw, nil
}

// rotateRoll closes the active roll (if any) and opens the next one,
// advancing rollCounter. The very first call wraps MaxUint64 to 0.
func (cw *channelWriter) rotateRoll() error {
	if cw.activeW != nil {
		if err := cw.activeW.Flush(); err != nil {
			return newIoError("flush", cw.activeRoll.Name(), err)
		}
		if err := cw.activeRoll.Close(); err != nil {
			return newIoError("close", cw.activeRoll.Name(), err)
		}
	}

	cw.rollCounter++
	path := filepath.Join(cw.dir, rollName(cw.rollCounter))

	f, err := os.Create(path)
	if err != nil {
		return newIoError("create", path, err)
	}

	cw.activeRoll = f
	cw.activeW = bufio.NewWriter(f)
	cw.activeSize = 0
	return nil
}

// rollCheckAndIndex rotates the active roll if it lacks room for
// requiredSize, then appends an indexEntry recording where the upcoming
// frame will land. A zero-size request never needs rotation (it always
// "fits"), but still gets its own indexEntry so the reader's sequence and
// index cursors stay aligned for an empty frame.
func (cw *channelWriter) rollCheckAndIndex(requiredSize uint64) error {
	if cw.activeSize+requiredSize > cw.maxRollBytes {
		if err := cw.rotateRoll(); err != nil {
			return err
		}
	}

	var buf [indexEntryWidth]byte
	encodeIndexEntry(indexEntry{
		rollID:       cw.rollCounter,
		rollPosition: cw.activeSize,
		dataSize:     requiredSize,
	}, buf[:])

	if _, err := cw.indexW.Write(buf[:]); err != nil {
		return newIoError("write", filepath.Join(cw.dir, IndexFileName), err)
	}
	if err := cw.indexW.Flush(); err != nil {
		return newIoError("flush", filepath.Join(cw.dir, IndexFileName), err)
	}

	return nil
}

// writeFrame appends a single frame's raw bytes to the active roll.
func (cw *channelWriter) writeFrame(data []byte) error {
	if cw.err != nil {
		return cw.err
	}

	size := uint64(len(data))
	if err := cw.rollCheckAndIndex(size); err != nil {
		cw.err = err
		return err
	}

	if size == 0 {
		return nil
	}

	if _, err := cw.activeW.Write(data); err != nil {
		cw.err = newIoError("write", cw.activeRoll.Name(), err)
		return cw.err
	}
	if err := cw.activeW.Flush(); err != nil {
		cw.err = newIoError("flush", cw.activeRoll.Name(), err)
		return cw.err
	}

	cw.activeSize += size
	return nil
}

// writeFrameSpans appends the concatenation of spans to the active roll as
// a single frame, indexed once against their combined size.
func (cw *channelWriter) writeFrameSpans(spans [][]byte) error {
	if cw.err != nil {
		return cw.err
	}

	size := totalLen(spans)
	if err := cw.rollCheckAndIndex(size); err != nil {
		cw.err = err
		return err
	}

	if size == 0 {
		return nil
	}

	for _, span := range spans {
		if len(span) == 0 {
			continue
		}
		if _, err := cw.activeW.Write(span); err != nil {
			cw.err = newIoError("write", cw.activeRoll.Name(), err)
			return cw.err
		}
	}
	if err := cw.activeW.Flush(); err != nil {
		cw.err = newIoError("flush", cw.activeRoll.Name(), err)
		return cw.err
	}

	cw.activeSize += size
	return nil
}

// close flushes and closes the index file and the active roll.
func (cw *channelWriter) close() error {
	var firstErr error
	if err := cw.indexW.Flush(); err != nil && firstErr == nil {
		firstErr = newIoError("flush", filepath.Join(cw.dir, IndexFileName), err)
	}
	if err := cw.indexFile.Close(); err != nil && firstErr == nil {
		firstErr = newIoError("close", filepath.Join(cw.dir, IndexFileName), err)
	}
	if cw.activeW != nil {
		if err := cw.activeW.Flush(); err != nil && firstErr == nil {
			firstErr = newIoError("flush", cw.activeRoll.Name(), err)
		}
		if err := cw.activeRoll.Close(); err != nil && firstErr == nil {
			firstErr = newIoError("close", cw.activeRoll.Name(), err)
		}
	}
	return firstErr
}
