package format

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/winforensics/regtxlog/internal/buf"
)

// BaseBlock captures the subset of the regf base block carried at the start
// of a transaction log. Logs copy the primary hive's base block, so the
// embedded file name and sequence pair identify the hive the dirty pages
// belong to. Not every log starts with an intact base block; callers treat
// parse failure as "no base block", never as a fatal condition.
type BaseBlock struct {
	PrimarySequence   uint32
	SecondarySequence uint32
	LastWriteRaw      uint64 // Windows FILETIME, raw
	MajorVersion      uint32
	MinorVersion      uint32
	Type              uint32
	FileName          string // embedded hive path fragment, UTF-16LE on disk
}

// Dirty reports whether the sequence pair indicates an incomplete commit.
func (bb BaseBlock) Dirty() bool {
	return bb.PrimarySequence != bb.SecondarySequence
}

// ParseBaseBlock validates and extracts the consumed base block fields from
// the front of b.
func ParseBaseBlock(b []byte) (BaseBlock, error) {
	if !buf.Has(b, 0, RegfMinSize) {
		return BaseBlock{}, fmt.Errorf("base block: %w", ErrTruncated)
	}
	if !bytes.Equal(b[:RegfSignatureSize], RegfSignature) {
		return BaseBlock{}, fmt.Errorf("base block: %w", ErrSignatureMismatch)
	}
	name, err := decodeFileName(b[RegfFileNameOffset : RegfFileNameOffset+RegfFileNameSize])
	if err != nil {
		return BaseBlock{}, fmt.Errorf("base block file name: %w", err)
	}
	return BaseBlock{
		PrimarySequence:   buf.U32LE(b[RegfPrimarySeqOffset:]),
		SecondarySequence: buf.U32LE(b[RegfSecondSeqOffset:]),
		LastWriteRaw:      buf.U64LE(b[RegfTimeStampOffset:]),
		MajorVersion:      buf.U32LE(b[RegfMajorOffset:]),
		MinorVersion:      buf.U32LE(b[RegfMinorOffset:]),
		Type:              buf.U32LE(b[RegfTypeOffset:]),
		FileName:          name,
	}, nil
}

// decodeFileName converts the fixed 64-byte UTF-16LE file name field into
// UTF-8, stopping at the first NUL code unit.
func decodeFileName(raw []byte) (string, error) {
	end := len(raw)
	for i := 0; i+1 < len(raw); i += 2 {
		if raw[i] == 0 && raw[i+1] == 0 {
			end = i
			break
		}
	}
	if end == 0 {
		return "", nil
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(raw[:end])
	if err != nil {
		return "", err
	}
	return string(out), nil
}
