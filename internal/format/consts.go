// Package format houses the low-level decoders for registry transaction log
// structures. The goal is to keep the byte-level parsing focused and
// allocation-free where possible, independent from the public API so higher
// level packages can orchestrate the data in a more ergonomic form.
package format

// Log entry signatures. A transaction log has no reliable index, so these
// magics are located by scanning; they can also appear inside another
// record's payload and must be tolerated as noise by callers.
const (
	// EntryMagic is the little-endian uint32 read of the dirty-page log
	// entry signature bytes 'H' 'v' 'L' 'e'.
	EntryMagic uint32 = 0x656C7648

	// NodeMagic is the little-endian uint32 read of the hive node header
	// signature bytes 'h' 'n' 'k' 'H'.
	NodeMagic uint32 = 0x486B6E68
)

// Log entry header layout (little-endian):
//
//	Offset  Size  Description
//	------  ----  ------------------------------------------------
//	 0x00    4    Signature (EntryMagic or NodeMagic)
//	 0x04    4    Declared entry size in bytes, header included
//	 0x08    4    Offset of the dirty page within the primary hive
//	 0x0C    4    Sequence number assigned at write time
//	 0x10    -    Payload (Size - 0x10 bytes)
const (
	EntryMagicOffset    = 0x00
	EntrySizeOffset     = 0x04
	EntryHiveOffOffset  = 0x08
	EntrySequenceOffset = 0x0C
	EntryPayloadOffset  = 0x10

	// EntryHeaderSize is the fixed portion preceding the payload.
	EntryHeaderSize = EntryPayloadOffset
)

const (
	// MaxEntrySize is the exclusive upper bound on a declared entry size.
	// Anything at or above this is treated as a false signature match.
	MaxEntrySize = 65536

	// MagicStep is the scan granularity. Signatures are searched every
	// four bytes with no cell or page alignment assumption.
	MagicStep = 4
)

// Base block (regf) layout subset. Transaction logs start with a copy of the
// primary hive's base block; only the fields below are consumed.
const (
	RegfSignatureOffset  = 0x000
	RegfSignatureSize    = 4
	RegfPrimarySeqOffset = 0x004
	RegfSecondSeqOffset  = 0x008
	RegfTimeStampOffset  = 0x00C
	RegfMajorOffset      = 0x014
	RegfMinorOffset      = 0x018
	RegfTypeOffset       = 0x01C
	RegfFileNameOffset   = 0x030
	RegfFileNameSize     = 64

	// RegfMinSize is the smallest prefix that carries every field above.
	RegfMinSize = RegfFileNameOffset + RegfFileNameSize
)

// RegfSignature is the four-byte signature at the start of a base block.
var RegfSignature = []byte{'r', 'e', 'g', 'f'}
