package chronicle

import (
	"os"
	"runtime"

	mmap "github.com/edsrzf/mmap-go"
)

// mappedFile is a read-only memory mapping of a single file, shared by every
// Crate that carries a pointer into it. The mapping stays resident for as
// long as any owner of this pointer is reachable: a finalizer unmaps it once
// the last Crate and the last cache slot referencing it are collected, so a
// ring-cache eviction or an explicit Reader.Close never yanks a mapping out
// from under a Crate a caller is still holding.
type mappedFile struct {
	region mmap.MMap
	file   *os.File
	closed bool
}

// openMappedFile maps path read-only in its entirety. An empty file maps to
// a zero-length region; callers treat that as "no data, but not an error",
// matching the writer's zero-size fast path (spec.md §4.3 step 1).
func openMappedFile(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newIoError("open", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, newIoError("stat", path, err)
	}

	if info.Size() == 0 {
		m := &mappedFile{region: mmap.MMap{}, file: f}
		runtime.SetFinalizer(m, (*mappedFile).close)
		return m, nil
	}

	region, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, newIoError("mmap", path, err)
	}

	m := &mappedFile{region: region, file: f}
	runtime.SetFinalizer(m, (*mappedFile).close)
	return m, nil
}

// bytes returns the full mapped region. Zero-copy: it is a slice directly
// over the OS mapping, not a buffer.
func (m *mappedFile) bytes() []byte {
	return m.region
}

func (m *mappedFile) len() int {
	return len(m.region)
}

// close unmaps the region and closes the backing file descriptor. Safe to
// call more than once (the finalizer and an explicit release path may both
// reach it). Errors are swallowed: destruction paths are infallible
// (spec.md §7).
func (m *mappedFile) close() {
	if m.closed {
		return
	}
	m.closed = true
	if len(m.region) > 0 {
		_ = m.region.Unmap()
	}
	_ = m.file.Close()
}
