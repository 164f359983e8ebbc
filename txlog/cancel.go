package txlog

import "sync/atomic"

// Token is a cooperative cancellation flag shared between a scan and its
// caller. The scanner checks it once per loop iteration, so a request is
// observed within one advance step (one 4-byte step or one record), never
// instantaneously. A nil Token is valid and never cancelled.
type Token struct {
	flag atomic.Bool
}

// NewToken returns a fresh, uncancelled token.
func NewToken() *Token { return &Token{} }

// Cancel requests cancellation. Safe to call from any goroutine, repeatedly.
func (t *Token) Cancel() {
	if t != nil {
		t.flag.Store(true)
	}
}

// Cancelled reports whether cancellation has been requested.
func (t *Token) Cancelled() bool {
	return t != nil && t.flag.Load()
}
