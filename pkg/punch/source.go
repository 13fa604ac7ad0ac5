package punch

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Open returns a fresh reader over the punch file at path. With useMmap the
// file is mapped read-only and the descriptor is released at once; the
// mapping lives until Close.
func Open(path string, useMmap bool) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w: %w", path, ErrIO, err)
	}
	if !useMmap {
		return f, nil
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w: %w", path, ErrIO, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, ErrIO)
	}
	// Zero-length files cannot be mapped.
	if info.Size() == 0 {
		return io.NopCloser(bytes.NewReader(nil)), nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w: %w", path, ErrIO, err)
	}
	return &mapped{Reader: bytes.NewReader(m), m: m}, nil
}

type mapped struct {
	*bytes.Reader
	m mmap.MMap
}

func (r *mapped) Close() error {
	if r.m == nil {
		return nil
	}
	err := r.m.Unmap()
	r.m = nil
	return err
}
