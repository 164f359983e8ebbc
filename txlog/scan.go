package txlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/winforensics/regtxlog/internal/buf"
	"github.com/winforensics/regtxlog/internal/format"
)

// maxPreviewBytes caps the DataAfter hex dump.
const maxPreviewBytes = 32

// Scanner walks a memory-resident log buffer, locating entry signatures and
// assembling the recovered transaction list. It owns the entry sequence it
// produces; a new Scan builds a fresh slice and never mutates a previous
// result.
type Scanner struct {
	data []byte
	hive string
	now  func() time.Time
}

// NewScanner returns a scanner over data. hiveName is attached to every
// produced entry; derive it with HiveNameFromPath for file-backed buffers.
func NewScanner(data []byte, hiveName string) *Scanner {
	return &Scanner{data: data, hive: hiveName, now: time.Now}
}

// Scan performs one full signature sweep and returns the recovered entries
// in ascending buffer offset order. A buffer with no recognizable records
// yields an empty slice, which is a valid outcome, not a failure.
//
// The sweep runs at 4-byte granularity with no page or cell alignment
// assumption: the log format carries no reliable index, and magic values
// inside other records' payloads are expected noise. The cursor strictly
// increases every iteration, so the sweep terminates for any input. tok is
// checked once per iteration and may be nil.
func (s *Scanner) Scan(tok *Token) []Entry {
	entries := []Entry{}
	cursor := 0
	for cursor+format.EntryHeaderSize < len(s.data) && !tok.Cancelled() {
		sig := buf.U32LE(s.data[cursor:])
		if sig != format.EntryMagic && sig != format.NodeMagic {
			cursor += format.MagicStep
			continue
		}

		h, err := format.ParseEntryHeader(s.data, cursor)
		if err != nil {
			cursor += format.MagicStep
			continue
		}
		if err := format.ValidateEntrySize(h, len(s.data), cursor); err != nil {
			// False positive: the magic happened to appear in noise.
			cursor += format.MagicStep
			continue
		}

		payload, _ := buf.Slice(s.data, cursor+format.EntryHeaderSize, h.PayloadLen())
		entries = append(entries, s.assemble(h, payload))
		cursor += int(h.Size)
	}
	return entries
}

// assemble combines a validated header and its payload into one Entry.
func (s *Scanner) assemble(h format.EntryHeader, payload []byte) Entry {
	return Entry{
		Timestamp:  fmt.Sprintf("%s (Seq: %d)", s.now().Format(TimestampLayout), h.Sequence),
		HiveFile:   s.hive,
		KeyPath:    resolveKeyPath(payload, h.HiveOffset),
		ValueName:  ValueNamePlaceholder,
		DataBefore: DataBeforePlaceholder,
		DataAfter:  hexPreview(payload),
		TxID:       fmt.Sprintf("0x%08X", h.Sequence),
		Offset:     h.HiveOffset,
		Sequence:   h.Sequence,
	}
}

// hexPreview renders at most the first maxPreviewBytes of b as uppercase,
// space-separated byte pairs. Longer payloads are truncated, never an error.
func hexPreview(b []byte) string {
	if len(b) > maxPreviewBytes {
		b = b[:maxPreviewBytes]
	}
	var sb strings.Builder
	sb.Grow(len(b) * 3)
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}
