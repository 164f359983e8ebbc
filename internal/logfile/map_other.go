//go:build !unix

package logfile

// Map falls back to a plain read where memory mapping is unavailable.
func Map(path string) ([]byte, func() error, error) {
	data, err := Read(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}
