// Package runlog provides the append-only operational log recording what a
// recovery run did: files loaded, scans started and finished, exports
// written. One JSON-lines file is kept per day and old files are pruned on
// startup. The run log is a collaborator of the parsing core, never a
// dependency of it; library code stays silent and the session/CLI layer
// writes here.
package runlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	filePrefix    = "regtxlog-"
	fileSuffix    = ".log"
	retentionDays = 30
)

// Options configures Open.
type Options struct {
	Enabled bool       // if false, all output is discarded
	Dir     string     // directory for log files; default ~/.regtxlog/logs
	Level   slog.Level // minimum level; default LevelInfo
}

// Log is one run's handle on the operational log. Every record it emits
// carries the run's unique ID, so interleaved runs appending to the same
// daily file stay distinguishable.
type Log struct {
	logger *slog.Logger
	runID  string
	file   *os.File // nil when disabled
}

// Open initializes the run log and emits the run-started record.
func Open(opts Options) (*Log, error) {
	id := uuid.NewString()
	if !opts.Enabled {
		return &Log{
			logger: slog.New(slog.NewTextHandler(io.Discard, nil)).With("run", id),
			runID:  id,
		}, nil
	}

	dir := opts.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".regtxlog", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	// Best-effort retention; failure to prune never blocks a run.
	pruneOldLogs(dir)

	name := filepath.Join(dir, filePrefix+time.Now().Format("2006-01-02")+fileSuffix)
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}
	l := &Log{
		logger: slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})).With("run", id),
		runID:  id,
		file:   f,
	}
	l.logger.Info("run started")
	return l, nil
}

// Logger returns the slog logger carrying the run ID. Safe on a nil Log.
func (l *Log) Logger() *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.logger
}

// RunID returns the unique identifier of this run.
func (l *Log) RunID() string {
	if l == nil {
		return ""
	}
	return l.runID
}

// Close emits the run-finished record and releases the file.
func (l *Log) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.logger.Info("run finished")
	return l.file.Close()
}

// Path returns the file the run is appending to, or "" when disabled.
func (l *Log) Path() string {
	if l == nil || l.file == nil {
		return ""
	}
	return l.file.Name()
}

// pruneOldLogs removes daily files older than retentionDays.
func pruneOldLogs(dir string) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, fileSuffix), filePrefix)
		day, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			os.Remove(filepath.Join(dir, name))
		}
	}
}

// Filename returns the daily file name for a given date. Exposed for tests.
func Filename(day time.Time) string {
	return fmt.Sprintf("%s%s%s", filePrefix, day.Format("2006-01-02"), fileSuffix)
}
