package txlog

import (
	"sort"
	"strings"
)

// Placeholder field values. Real value-key decoding and before-images would
// require walking the hive cell graph, which is out of scope; the
// placeholders make that explicit in exported data instead of fabricating
// content.
const (
	// ValueNamePlaceholder fills ValueName for every recovered entry.
	ValueNamePlaceholder = "<Dirty Page>"
	// DataBeforePlaceholder fills DataBefore; the pre-modification bytes
	// are unrecoverable without comparing against live state.
	DataBeforePlaceholder = "<Uncommitted>"
)

// TimestampLayout is the display layout for Entry.Timestamp (day first).
const TimestampLayout = "02/01/2006 15:04:05"

// Entry is one recovered, uncommitted registry modification. Entries are
// immutable once built and ordered by scan position (ascending buffer
// offset).
type Entry struct {
	Timestamp  string // parse-time wall clock plus "(Seq: N)"; no per-record time exists
	HiveFile   string // hive name derived from the log file name
	KeyPath    string // heuristic, never empty
	ValueName  string // always ValueNamePlaceholder
	DataBefore string // always DataBeforePlaceholder
	DataAfter  string // hex of the first 32 payload bytes at most
	TxID       string // sequence number as 0x%08X
	Offset     uint32 // dirty page offset within the primary hive
	Sequence   uint32 // raw sequence number, for explicit re-sorting
}

// SortBySequence returns a copy of entries re-sorted by ascending sequence
// number. Scan order and logical commit order can diverge, so chronological
// reconstruction is an explicit opt-in step rather than the default.
func SortBySequence(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}

// HiveNameFromPath derives the hive name from a log file path: the base
// name with a trailing .LOG, .LOG1, or .LOG2 stripped (longest matching
// suffix wins). A name without a matching suffix is returned unchanged.
func HiveNameFromPath(path string) string {
	name := path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	for _, suffix := range []string{".LOG1", ".LOG2", ".LOG"} {
		if len(name) > len(suffix) && strings.HasSuffix(name, suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}
