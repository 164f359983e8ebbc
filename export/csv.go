// Package export serializes recovered transaction entries for downstream
// analysis tooling. The CSV shape matches what registry forensics suites
// expect: UTF-8 with a byte-order mark, a fixed seven-column header, one
// quoted row per entry.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/winforensics/regtxlog/txlog"
)

// utf8BOM is written before the header so spreadsheet tools detect UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvHeader is the fixed column order.
const csvHeader = "Timestamp,HiveFile,KeyPath,ValueName,DataBefore,DataAfter,TxID"

// WriteCSV writes entries to w as BOM-prefixed CSV. Fields are wrapped in
// double quotes but embedded quote characters are not escaped; recovered
// key paths are heuristic text and can in principle break a strict CSV
// reader. Known limitation, kept for output compatibility.
func WriteCSV(w io.Writer, entries []txlog.Entry) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(utf8BOM); err != nil {
		return err
	}
	if _, err := bw.WriteString(csvHeader + "\n"); err != nil {
		return err
	}
	for _, e := range entries {
		_, err := fmt.Fprintf(bw, `"%s","%s","%s","%s","%s","%s","%s"`+"\n",
			e.Timestamp, e.HiveFile, e.KeyPath, e.ValueName, e.DataBefore, e.DataAfter, e.TxID)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// CSV writes entries to a new file at path.
func CSV(path string, entries []txlog.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return f.Close()
}

// WriteCSVGzip writes the same CSV stream through a gzip compressor. Large
// scans produce heavily repetitive rows, so the archive form is small.
func WriteCSVGzip(w io.Writer, entries []txlog.Entry) error {
	zw := gzip.NewWriter(w)
	if err := WriteCSV(zw, entries); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// CSVGzip writes a gzip-compressed CSV file at path.
func CSVGzip(path string, entries []txlog.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSVGzip(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return f.Close()
}
