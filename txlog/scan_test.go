package txlog

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winforensics/regtxlog/internal/format"
)

// record assembles one log entry with the given header fields. size is the
// declared size; the emitted bytes are header + payload regardless, so
// tests can declare sizes that disagree with reality.
func record(magic, size, hiveOff, seq uint32, payload []byte) []byte {
	b := make([]byte, format.EntryHeaderSize, format.EntryHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(b[format.EntryMagicOffset:], magic)
	binary.LittleEndian.PutUint32(b[format.EntrySizeOffset:], size)
	binary.LittleEndian.PutUint32(b[format.EntryHiveOffOffset:], hiveOff)
	binary.LittleEndian.PutUint32(b[format.EntrySequenceOffset:], seq)
	return append(b, payload...)
}

// utf16Bytes encodes s as UTF-16LE.
func utf16Bytes(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

func TestScanSingleRecord(t *testing.T) {
	payload := append(utf16Bytes(`Software\Run`), 0x00, 0x00, 0xDE, 0xAD)
	size := uint32(format.EntryHeaderSize + len(payload))

	data := make([]byte, 8) // leading noise
	data = append(data, record(format.EntryMagic, size, 0x2000, 0xAB, payload)...)
	data = append(data, make([]byte, 32)...)

	entries := NewScanner(data, "SOFTWARE").Scan(nil)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "SOFTWARE", e.HiveFile)
	assert.Equal(t, `Software\Run`, e.KeyPath)
	assert.Equal(t, uint32(0x2000), e.Offset)
	assert.Equal(t, uint32(0xAB), e.Sequence)
	assert.Equal(t, "0x000000AB", e.TxID)
	assert.Equal(t, ValueNamePlaceholder, e.ValueName)
	assert.Equal(t, DataBeforePlaceholder, e.DataBefore)
	assert.Contains(t, e.Timestamp, "(Seq: 171)")

	want := hexPreview(payload)
	assert.Equal(t, want, e.DataAfter)
}

func TestScanNodeMagicRecognized(t *testing.T) {
	payload := utf16Bytes("ControlSet001")
	size := uint32(format.EntryHeaderSize + len(payload))
	data := record(format.NodeMagic, size, 0x4020, 3, payload)
	data = append(data, make([]byte, 20)...)

	entries := NewScanner(data, "SYSTEM").Scan(nil)
	require.Len(t, entries, 1)
	assert.Equal(t, "ControlSet001", entries[0].KeyPath)
}

func TestScanPreviewTruncatedAt32(t *testing.T) {
	payload := make([]byte, 64)
	for i := range payload {
		payload[i] = byte(i)
	}
	size := uint32(format.EntryHeaderSize + len(payload))
	data := record(format.EntryMagic, size, 0, 1, payload)
	data = append(data, make([]byte, 20)...)

	entries := NewScanner(data, "SAM").Scan(nil)
	require.Len(t, entries, 1)
	assert.Equal(t, hexPreview(payload[:32]), entries[0].DataAfter)
	assert.Len(t, entries[0].DataAfter, 32*3-1)
}

func TestScanEmptyAndTinyBuffers(t *testing.T) {
	assert.Empty(t, NewScanner(nil, "SYSTEM").Scan(nil))
	assert.Empty(t, NewScanner([]byte{0x48}, "SYSTEM").Scan(nil))
	// Exactly one header with no byte after it: cursor+16 < len fails.
	assert.Empty(t, NewScanner(record(format.EntryMagic, 16, 0, 1, nil), "SYSTEM").Scan(nil))
}

func TestScanZeroSizeSkipped(t *testing.T) {
	payload := utf16Bytes("Noise")
	good := record(format.EntryMagic, uint32(format.EntryHeaderSize+len(payload)), 0x10, 9, payload)

	data := record(format.EntryMagic, 0, 0, 1, nil) // zero size: false positive
	data = append(data, good...)
	data = append(data, make([]byte, 20)...)

	entries := NewScanner(data, "SYSTEM").Scan(nil)
	require.Len(t, entries, 1, "zero-size candidate must be skipped, not emitted")
	assert.Equal(t, uint32(9), entries[0].Sequence)
}

func TestScanOversizeRejected(t *testing.T) {
	data := record(format.EntryMagic, format.MaxEntrySize, 0, 1, nil)
	data = append(data, make([]byte, 64)...)
	assert.Empty(t, NewScanner(data, "SYSTEM").Scan(nil))
}

func TestScanTruncatedDeclarationRejected(t *testing.T) {
	// Declares 4096 bytes but the buffer ends long before that.
	data := record(format.EntryMagic, 4096, 0x100, 5, make([]byte, 32))
	entries := NewScanner(data, "SYSTEM").Scan(nil)
	assert.Empty(t, entries, "declared size past buffer end is a false positive")
}

func TestScanMagicInsidePayloadNotRescanned(t *testing.T) {
	// The payload embeds a perfectly aligned entry magic; advancing by the
	// validated record size must carry the cursor past it.
	inner := record(format.EntryMagic, 24, 0xFF, 0xFF, make([]byte, 8))
	size := uint32(format.EntryHeaderSize + len(inner))
	data := record(format.EntryMagic, size, 0x30, 2, inner)
	data = append(data, make([]byte, 20)...)

	entries := NewScanner(data, "SYSTEM").Scan(nil)
	require.Len(t, entries, 1)
	assert.Equal(t, uint32(2), entries[0].Sequence)
}

func TestScanMultipleRecordsInScanOrder(t *testing.T) {
	var data []byte
	for _, seq := range []uint32{5, 2, 9} {
		p := utf16Bytes("SomePath")
		data = append(data, 0xAA, 0xBB, 0xCC, 0xDD) // inter-record noise
		data = append(data, record(format.EntryMagic, uint32(format.EntryHeaderSize+len(p)), seq*0x100, seq, p)...)
	}
	data = append(data, make([]byte, 20)...)

	entries := NewScanner(data, "SYSTEM").Scan(nil)
	require.Len(t, entries, 3)
	// Scan order is buffer order, not sequence order.
	assert.Equal(t, []uint32{5, 2, 9}, []uint32{entries[0].Sequence, entries[1].Sequence, entries[2].Sequence})
}

func TestScanWorstCaseTerminates(t *testing.T) {
	// Alternating magic and zero size words: every other position is a
	// rejected candidate. The sweep must still finish with no entries.
	data := make([]byte, 4096)
	for i := 0; i+8 <= len(data); i += 8 {
		binary.LittleEndian.PutUint32(data[i:], format.EntryMagic)
	}
	assert.Empty(t, NewScanner(data, "SYSTEM").Scan(nil))
}

func TestScanRandomNoiseNeverPanics(t *testing.T) {
	rng := rand.New(rand.NewSource(0x48764C65))
	for trial := 0; trial < 16; trial++ {
		data := make([]byte, 1+rng.Intn(8192))
		rng.Read(data)
		NewScanner(data, "SYSTEM").Scan(nil) // must not panic for any input
	}
}

func TestScanCancelledTokenStopsImmediately(t *testing.T) {
	payload := utf16Bytes("ShouldNotAppear")
	data := record(format.EntryMagic, uint32(format.EntryHeaderSize+len(payload)), 0, 1, payload)
	data = append(data, make([]byte, 1<<16)...)

	tok := NewToken()
	tok.Cancel()
	entries := NewScanner(data, "SYSTEM").Scan(tok)
	assert.Empty(t, entries, "a cancelled token is observed before the first iteration")
}

func TestHexPreview(t *testing.T) {
	assert.Equal(t, "", hexPreview(nil))
	assert.Equal(t, "00", hexPreview([]byte{0}))
	assert.Equal(t, "DE AD BE EF", hexPreview([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
	long := make([]byte, 40)
	assert.Equal(t, hexPreview(long[:32]), hexPreview(long))
}
