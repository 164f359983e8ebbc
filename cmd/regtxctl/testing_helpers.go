package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/winforensics/regtxlog/runlog"
)

// testLogPath writes a small synthetic transaction log with one recoverable
// entry and returns its path.
func testLogPath(t *testing.T, name string) string {
	t.Helper()

	keyPath := `Microsoft\Windows\CurrentVersion\Run`
	payload := make([]byte, 0, len(keyPath)*2+4)
	for i := 0; i < len(keyPath); i++ {
		payload = append(payload, keyPath[i], 0x00)
	}
	payload = append(payload, 0x00, 0x00, 0xCA, 0xFE)

	rec := make([]byte, 16)
	binary.LittleEndian.PutUint32(rec[0:], 0x656C7648) // entry signature
	binary.LittleEndian.PutUint32(rec[4:], uint32(16+len(payload)))
	binary.LittleEndian.PutUint32(rec[8:], 0x2020)
	binary.LittleEndian.PutUint32(rec[12:], 42)
	rec = append(rec, payload...)

	data := make([]byte, 32) // leading noise
	data = append(data, rec...)
	data = append(data, make([]byte, 64)...)

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write test log: %v", err)
	}
	return path
}

// withDisabledRunLog installs a discarding run log for the duration of a test.
func withDisabledRunLog(t *testing.T) {
	t.Helper()
	prev := run
	l, err := runlog.Open(runlog.Options{Enabled: false})
	if err != nil {
		t.Fatalf("failed to open run log: %v", err)
	}
	run = l
	t.Cleanup(func() { run = prev })
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}
