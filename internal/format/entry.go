package format

import (
	"github.com/winforensics/regtxlog/internal/buf"
)

// EntryHeader is the fixed 16-byte header of one transaction log entry as
// found in the byte stream. The payload is not part of the struct; callers
// slice it out of the backing buffer after validation.
type EntryHeader struct {
	Magic      uint32
	Size       uint32 // declared entry size in bytes, header included
	HiveOffset uint32 // dirty page offset within the primary hive
	Sequence   uint32
}

// PayloadLen returns the declared payload length in bytes. The result is
// only meaningful for a header that passed ValidateEntrySize.
func (h EntryHeader) PayloadLen() int {
	if h.Size < EntryHeaderSize {
		return 0
	}
	return int(h.Size) - EntryHeaderSize
}

// ParseEntryHeader decodes the entry header at off. It performs no size
// validation beyond requiring the 16 header bytes to be in bounds.
func ParseEntryHeader(b []byte, off int) (EntryHeader, error) {
	hdr, ok := buf.Slice(b, off, EntryHeaderSize)
	if !ok {
		return EntryHeader{}, ErrTruncated
	}
	return EntryHeader{
		Magic:      buf.U32LE(hdr[EntryMagicOffset:]),
		Size:       buf.U32LE(hdr[EntrySizeOffset:]),
		HiveOffset: buf.U32LE(hdr[EntryHiveOffOffset:]),
		Sequence:   buf.U32LE(hdr[EntrySequenceOffset:]),
	}, nil
}

// ValidateEntrySize checks h's declared size against the buffer bounds.
// A nil result means the bytes [cursor, cursor+Size) are safe to read.
// A non-nil result classifies the signature match as a false positive:
// ErrZeroSize, ErrSizeTooLarge, or ErrTruncatedRecord.
func ValidateEntrySize(h EntryHeader, bufLen, cursor int) error {
	switch {
	case h.Size == 0:
		return ErrZeroSize
	case h.Size >= MaxEntrySize:
		return ErrSizeTooLarge
	}
	end, ok := buf.AddOverflowSafe(cursor, int(h.Size))
	if !ok || end > bufLen {
		return ErrTruncatedRecord
	}
	return nil
}
