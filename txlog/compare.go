package txlog

// Status classifies an entry after comparison against live registry state.
type Status int

const (
	// StatusUnknown means no determination could be made: no live reader
	// was available, the lookup failed, or the key path is heuristic noise.
	StatusUnknown Status = iota
	// StatusUnchanged means the live value matches the recovered bytes.
	StatusUnchanged
	// StatusModified means the live value differs from the recovered bytes.
	StatusModified
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "Unchanged"
	case StatusModified:
		return "Modified"
	default:
		return "Unknown"
	}
}

// LiveStateReader looks up the current data for a key path and value name
// in a live registry. It is an injectable collaborator: this module ships
// no implementation, since reading a live registry is outside its scope.
type LiveStateReader interface {
	// ReadValue returns the current bytes stored at keyPath/valueName.
	// A lookup failure of any kind is reported as an error and annotated
	// as StatusUnknown by Compare.
	ReadValue(keyPath, valueName string) ([]byte, error)
}

// AnnotatedEntry pairs an entry with its comparison outcome.
type AnnotatedEntry struct {
	Entry
	Status Status
}

// Compare annotates each entry against live state read through r. With a
// nil reader every entry is StatusUnknown. The determination is strictly
// a byte comparison of the recovered preview against the live data's
// preview; it inherits the key-path heuristic's best-effort nature and is
// deterministic for a given reader.
func Compare(entries []Entry, r LiveStateReader) []AnnotatedEntry {
	out := make([]AnnotatedEntry, len(entries))
	for i, e := range entries {
		out[i] = AnnotatedEntry{Entry: e, Status: StatusUnknown}
		if r == nil {
			continue
		}
		live, err := r.ReadValue(e.KeyPath, e.ValueName)
		if err != nil {
			continue
		}
		if hexPreview(live) == e.DataAfter {
			out[i].Status = StatusUnchanged
		} else {
			out[i].Status = StatusModified
		}
	}
	return out
}
