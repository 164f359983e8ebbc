// Package txlog recovers registry modifications recorded in a transaction
// log file (.LOG, .LOG1, .LOG2) that were never committed to the primary
// hive. It is built for post-crash and malware forensics: the input is
// untrusted and possibly adversarial, and the scanner guarantees bounded
// termination with no out-of-bounds access for any byte sequence.
//
// The pipeline is strictly forward: load the whole file, scan for entry
// signatures at 4-byte granularity, validate candidate framing, extract the
// payload, derive a best-effort key path, and assemble the ordered entry
// list. Per-record anomalies are absorbed as noise; only I/O failures
// surface as errors.
//
// Two recovered fields are heuristic and carry no correctness guarantee:
// the key path (a printable UTF-16LE run fished out of the payload) and the
// timestamp (wall clock at parse time, since this record shape stores no
// creation time). Scan order is ascending buffer offset, which is not
// necessarily commit order; use SortBySequence for a chronological view.
package txlog
