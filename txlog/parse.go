package txlog

import (
	"context"

	"github.com/winforensics/regtxlog/internal/format"
	"github.com/winforensics/regtxlog/internal/logfile"
)

// LoadPath verifies that path names a readable, non-empty log file without
// parsing it. The returned error wraps the underlying os error, so callers
// can distinguish a missing file from an empty one.
func LoadPath(path string) error {
	return logfile.Stat(path)
}

// Parse reads the whole file at path and scans it, returning the recovered
// entries in scan order. An error is returned only for I/O failures; a log
// with zero matching records yields an empty slice and a nil error.
//
// Cancellation through ctx is cooperative: the scan observes it within one
// loop iteration and returns the entries recovered so far.
func Parse(ctx context.Context, path string) ([]Entry, error) {
	data, err := logfile.Read(path)
	if err != nil {
		return nil, err
	}
	return ParseBuffer(ctx, data, HiveNameFromPath(path)), nil
}

// ParseBuffer scans an in-memory log image. hiveName is attached to every
// entry verbatim.
func ParseBuffer(ctx context.Context, data []byte, hiveName string) []Entry {
	tok := NewToken()
	if ctx != nil && ctx.Err() != nil {
		tok.Cancel()
	}
	if ctx != nil && ctx.Done() != nil {
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			select {
			case <-ctx.Done():
				tok.Cancel()
			case <-stop:
			}
		}()
	}
	return NewScanner(data, hiveName).Scan(tok)
}

// BaseBlock is the subset of the regf base block copied to the front of a
// transaction log: the sequence pair, version, and the embedded name of the
// hive the dirty pages belong to.
type BaseBlock struct {
	PrimarySequence   uint32
	SecondarySequence uint32
	MajorVersion      uint32
	MinorVersion      uint32
	HiveFileName      string
}

// Dirty reports whether the sequence pair indicates an incomplete commit.
func (bb BaseBlock) Dirty() bool {
	return bb.PrimarySequence != bb.SecondarySequence
}

// ReadBaseBlock parses the regf base block copied to the front of a log
// buffer, when present. Logs written by a cleanly stopped system may lack
// one; that is reported as an error for the caller to treat as "absent".
func ReadBaseBlock(data []byte) (BaseBlock, error) {
	bb, err := format.ParseBaseBlock(data)
	if err != nil {
		return BaseBlock{}, err
	}
	return BaseBlock{
		PrimarySequence:   bb.PrimarySequence,
		SecondarySequence: bb.SecondarySequence,
		MajorVersion:      bb.MajorVersion,
		MinorVersion:      bb.MinorVersion,
		HiveFileName:      bb.FileName,
	}, nil
}
