package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winforensics/regtxlog/txlog"
)

func sampleEntries(k int) []txlog.Entry {
	entries := make([]txlog.Entry, k)
	for i := range entries {
		entries[i] = txlog.Entry{
			Timestamp:  fmt.Sprintf("05/01/2026 10:30:0%d (Seq: %d)", i, i+1),
			HiveFile:   "SOFTWARE",
			KeyPath:    fmt.Sprintf(`Microsoft\Windows\Run%d`, i),
			ValueName:  txlog.ValueNamePlaceholder,
			DataBefore: txlog.DataBeforePlaceholder,
			DataAfter:  "41 42 43 44",
			TxID:       fmt.Sprintf("0x%08X", i+1),
			Offset:     uint32(0x1000 * i),
			Sequence:   uint32(i + 1),
		}
	}
	return entries
}

// parseCSV strips the BOM and decodes the rows.
func parseCSV(t *testing.T, raw []byte) [][]string {
	t.Helper()
	require.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}), "output must start with a UTF-8 BOM")
	r := csv.NewReader(bytes.NewReader(raw[3:]))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSVRoundTrip(t *testing.T) {
	const k = 5
	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out, sampleEntries(k)))

	rows := parseCSV(t, out.Bytes())
	require.Len(t, rows, k+1, "header row plus one row per entry")

	assert.Equal(t,
		[]string{"Timestamp", "HiveFile", "KeyPath", "ValueName", "DataBefore", "DataAfter", "TxID"},
		rows[0])
	for i, row := range rows[1:] {
		require.Len(t, row, 7)
		assert.Equal(t, "SOFTWARE", row[1])
		assert.Equal(t, fmt.Sprintf(`Microsoft\Windows\Run%d`, i), row[2])
		assert.Equal(t, txlog.ValueNamePlaceholder, row[3])
		assert.Equal(t, txlog.DataBeforePlaceholder, row[4])
		assert.Equal(t, "41 42 43 44", row[5])
		assert.Equal(t, fmt.Sprintf("0x%08X", i+1), row[6])
	}
}

func TestWriteCSVNoEntries(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out, nil))

	rows := parseCSV(t, out.Bytes())
	assert.Len(t, rows, 1, "header only")
}

func TestWriteCSVQuotesFields(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out, sampleEntries(1)))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], `"`))
	assert.True(t, strings.HasSuffix(lines[1], `"`))
	assert.Equal(t, 14, strings.Count(lines[1], `"`), "every field double-quoted")
}

func TestCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, CSV(path, sampleEntries(3)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, parseCSV(t, raw), 4)
}

func TestCSVFileBadPath(t *testing.T) {
	err := CSV(filepath.Join(t.TempDir(), "no", "such", "dir", "out.csv"), sampleEntries(1))
	assert.Error(t, err)
}

func TestCSVGzipRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv.gz")
	require.NoError(t, CSVGzip(path, sampleEntries(4)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer zr.Close()

	var raw bytes.Buffer
	_, err = raw.ReadFrom(zr)
	require.NoError(t, err)

	rows := parseCSV(t, raw.Bytes())
	assert.Len(t, rows, 5)
}
