//go:build unix

package logfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapUnix(t *testing.T) {
	want := []byte{'r', 'e', 'g', 'f', 0x01, 0x02}
	path := writeTemp(t, "mapped.LOG", want)

	data, cleanup, err := Map(path)
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	assert.Equal(t, want, data)
	require.NoError(t, cleanup())
	// Second cleanup is a tolerated no-op.
	require.NoError(t, cleanup())
}

func TestMapUnixEmpty(t *testing.T) {
	path := writeTemp(t, "empty.LOG", nil)

	_, _, err := Map(path)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestMapUnixMissing(t *testing.T) {
	_, _, err := Map(filepath.Join(t.TempDir(), "missing.LOG"))
	assert.Error(t, err)
}
