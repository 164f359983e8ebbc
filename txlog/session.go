package txlog

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/winforensics/regtxlog/internal/logfile"
)

var (
	// ErrScanInProgress is returned when a scan is requested or results are
	// read while the session's worker is still running.
	ErrScanInProgress = errors.New("txlog: scan already in progress")

	// ErrShutdownTimeout is returned by Close when the worker did not
	// finish within the shutdown timeout. The worker is abandoned, not
	// force-terminated; its resources are reclaimed at process exit.
	ErrShutdownTimeout = errors.New("txlog: worker did not stop before timeout")
)

// defaultShutdownTimeout bounds how long Close waits for the worker.
const defaultShutdownTimeout = 2 * time.Second

// SessionOptions configures a Session.
type SessionOptions struct {
	// UseMmap maps the log file instead of reading it, trading address
	// space for allocation on very large logs. Unix only; other platforms
	// silently fall back to a plain read.
	UseMmap bool

	// Logger receives operational events (scan started/finished/cancelled).
	// Nil discards them.
	Logger *slog.Logger

	// ShutdownTimeout bounds the wait in Close. Zero means the default.
	ShutdownTimeout time.Duration
}

// Session runs scans on a single background worker, keeping the calling
// layer responsive during large sweeps. Exactly one worker runs at a time;
// a second Start while one is active fails with ErrScanInProgress.
//
// The entry slice follows a strict single-writer/single-reader handoff: the
// worker is its only writer, and callers read it through Result only after
// the channel returned by Start is closed. No lock guards the slice because
// there is no overlapping access window.
type Session struct {
	id   string
	opts SessionOptions
	log  *slog.Logger

	mu      sync.Mutex
	running bool
	done    chan struct{}
	tok     *Token

	// Written by the worker, read after completion.
	entries []Entry
	err     error
}

// NewSession creates an idle session with a fresh run ID.
func NewSession(opts SessionOptions) *Session {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		id:   uuid.NewString(),
		opts: opts,
		log:  log,
	}
}

// ID returns the session's run identifier, attached to every logged event.
func (s *Session) ID() string { return s.id }

// Start launches a background scan of the log at path. The returned channel
// is closed when the worker finishes, whether it completed, failed on I/O,
// or observed cancellation. Results from any previous scan are discarded.
func (s *Session) Start(path string) (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil, ErrScanInProgress
	}
	s.running = true
	s.done = make(chan struct{})
	s.tok = NewToken()
	s.entries = nil
	s.err = nil

	go s.run(path, s.done, s.tok)
	return s.done, nil
}

func (s *Session) run(path string, done chan<- struct{}, tok *Token) {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		close(done)
	}()

	s.log.Info("scan started", "session", s.id, "path", path)
	start := time.Now()

	data, cleanup, err := s.load(path)
	if err != nil {
		s.err = err
		s.log.Error("scan failed", "session", s.id, "path", path, "error", err)
		return
	}
	if cleanup != nil {
		defer func() { _ = cleanup() }()
	}

	entries := NewScanner(data, HiveNameFromPath(path)).Scan(tok)
	s.entries = entries

	if tok.Cancelled() {
		s.log.Warn("scan cancelled", "session", s.id, "entries", len(entries))
		return
	}
	s.log.Info("scan complete",
		"session", s.id,
		"entries", len(entries),
		"bytes", len(data),
		"elapsed", time.Since(start))
}

func (s *Session) load(path string) ([]byte, func() error, error) {
	if s.opts.UseMmap {
		return logfile.Map(path)
	}
	data, err := logfile.Read(path)
	return data, nil, err
}

// Result returns the outcome of the most recent scan. Calling it while the
// worker is still running fails with ErrScanInProgress; wait on the channel
// returned by Start first. A cancelled scan returns the entries recovered
// up to the cancellation point.
func (s *Session) Result() ([]Entry, error) {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if running {
		return nil, ErrScanInProgress
	}
	return s.entries, s.err
}

// Cancel requests cooperative cancellation of the active scan, if any. The
// worker observes it within one scan iteration.
func (s *Session) Cancel() {
	s.mu.Lock()
	tok := s.tok
	s.mu.Unlock()
	tok.Cancel()
}

// Close cancels any active scan and waits for the worker up to the shutdown
// timeout. On timeout the worker is abandoned to finish on its own and
// ErrShutdownTimeout is returned.
func (s *Session) Close() error {
	s.mu.Lock()
	done := s.done
	tok := s.tok
	s.mu.Unlock()

	if done == nil {
		return nil // never started
	}
	tok.Cancel()
	select {
	case <-done:
		return nil
	case <-time.After(s.opts.ShutdownTimeout):
		s.log.Warn("shutdown timeout, abandoning worker", "session", s.id)
		return ErrShutdownTimeout
	}
}
