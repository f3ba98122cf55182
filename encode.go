package marketwatch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ycfang/twmarketwatch/date"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// Measure data files are wide CSV: a leading id column, then one column per
// date (the union of dates across all series), blank where a series has no
// entry. The files come and go through Big5, the legacy encoding of the
// spreadsheets they feed; the report output is UTF-8 with a BOM so that the
// same spreadsheets open it correctly.

// idHeader labels the leading column of measure data files.
const idHeader = "Measure"

// utf8BOM is prepended to report output (the utf-8-sig convention).
const utf8BOM = "\ufeff"

// NormalizeHeader strips surrounding whitespace and embedded line breaks from
// a column header. Headers in the source data carry incidental whitespace and
// newlines, so every consumer must normalize before matching. The function is
// idempotent.
func NormalizeHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\n", "")
	return strings.ReplaceAll(s, "\r", "")
}

// formatValue renders a float the shortest way that round-trips.
func formatValue(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// EncodeSeries writes the series as wide CSV to w. Rows follow 'order'; ids
// in the order list but absent from the map are skipped.
func EncodeSeries(w io.Writer, series map[string]*date.Series, order []string) error {
	all := make([]*date.Series, 0, len(series))
	for _, s := range series {
		all = append(all, s)
	}
	days := date.Union(all...)

	cw := csv.NewWriter(w)
	header := make([]string, 0, len(days)+1)
	header = append(header, idHeader)
	for _, on := range days {
		header = append(header, on.CSV())
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, id := range order {
		s, ok := series[id]
		if !ok {
			continue
		}
		row := make([]string, 0, len(days)+1)
		row = append(row, id)
		for _, on := range days {
			if v, ok := s.Get(on); ok {
				row = append(row, formatValue(v))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMeasureCSV writes the series to path in Big5.
func WriteMeasureCSV(path string, series map[string]*date.Series, order []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()

	// The transform writer buffers; it must be closed to flush the last bytes.
	enc := transform.NewWriter(f, traditionalchinese.Big5.NewEncoder())
	if err := EncodeSeries(enc, series, order); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// DecodeSeries reads wide CSV from r. It returns the series keyed by measure
// id and the row order of the file. Header cells are normalized before any
// date parsing; blank cells are absent points, not zeros.
func DecodeSeries(r io.Reader, source string) (map[string]*date.Series, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are tolerated, short rows read as blanks

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, &ParseError{Source: source, Err: err}
	}
	if len(records) == 0 {
		return nil, nil, &ParseError{Source: source, Err: fmt.Errorf("empty document")}
	}

	header := records[0]
	days := make([]date.Date, 0, len(header)-1)
	for _, cell := range header[1:] {
		on, err := date.Parse(NormalizeHeader(cell))
		if err != nil {
			return nil, nil, &ParseError{Source: source, Err: fmt.Errorf("bad date column: %w", err)}
		}
		days = append(days, on)
	}

	series := make(map[string]*date.Series)
	var order []string
	for line, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		id := NormalizeHeader(rec[0])
		if id == "" {
			continue
		}
		s := new(date.Series)
		for i, cell := range rec[1:] {
			cell = strings.TrimSpace(cell)
			if cell == "" || i >= len(days) {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, nil, &ParseError{Source: source, Err: fmt.Errorf("row %d measure %q: bad value %q", line+2, id, cell)}
			}
			s.Append(days[i], v)
		}
		series[id] = s
		order = append(order, id)
	}
	return series, order, nil
}

// ReadMeasureCSV reads a Big5 measure data file.
func ReadMeasureCSV(path string) (map[string]*date.Series, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()
	dec := transform.NewReader(f, traditionalchinese.Big5.NewDecoder())
	return DecodeSeries(dec, path)
}
