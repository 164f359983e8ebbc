// Package logfile loads transaction log files for scanning. The whole file
// is made memory-resident for the duration of a scan, either by a plain read
// or by a read-only memory mapping on platforms that support it. Peak memory
// is proportional to the file size; that is an accepted limitation of the
// scan model, not something this package tries to optimize away.
package logfile

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrEmpty indicates the log file exists but has zero length. An empty log
// cannot contain records, so loading one is an I/O failure rather than an
// empty scan result.
var ErrEmpty = errors.New("logfile: empty file")

// Read loads the entire file at path into one contiguous buffer. The file is
// opened read-only and closed before returning on every path.
func Read(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	if size > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("logfile: %s too large to load (%d bytes)", path, size)
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("logfile: read %s: %w", path, err)
	}
	return data, nil
}

// Stat verifies that path names a readable, non-empty regular file without
// loading it. This backs the existence check exposed as LoadPath.
func Stat(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("logfile: %s is a directory", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return nil
}
