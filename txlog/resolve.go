package txlog

import (
	"fmt"
	"strings"

	"github.com/winforensics/regtxlog/internal/buf"
)

const (
	// maxPathProbeBytes bounds how far into a payload the resolver looks
	// for a key path: the first 512 bytes (256 UTF-16 code units) or the
	// whole payload, whichever is smaller.
	maxPathProbeBytes = 512

	// minRecoveredPathLen is the exclusive lower bound on an accepted
	// path; shorter runs are too likely to be coincidental byte pairs.
	minRecoveredPathLen = 3
)

// resolveKeyPath recovers a human-readable key path from payload bytes.
//
// The payload is read pairwise as little-endian 16-bit code units. A unit is
// accepted while its value is printable ASCII [32, 126]; the first unit
// outside that range after at least one accepted unit ends the run. The run
// is returned when longer than minRecoveredPathLen, otherwise a synthetic
// placeholder naming the record's hive offset.
//
// This is best-effort only. Binary, non-textual, or misaligned payloads can
// yield garbage; callers must not assume the result names a real key.
func resolveKeyPath(payload []byte, hiveOffset uint32) string {
	limit := len(payload)
	if limit > maxPathProbeBytes {
		limit = maxPathProbeBytes
	}

	var run strings.Builder
	for i := 0; i+2 <= limit; i += 2 {
		u := buf.U16LE(payload[i:])
		if u >= 32 && u <= 126 {
			run.WriteByte(byte(u))
			continue
		}
		if run.Len() > 0 {
			break
		}
	}

	if run.Len() > minRecoveredPathLen {
		return run.String()
	}
	return fmt.Sprintf("<Key @ offset 0x%08X>", hiveOffset)
}
