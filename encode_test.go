package marketwatch

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ycfang/twmarketwatch/date"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		" 2024/12/2 ":     "2024/12/2",
		"2024/\n12/2":     "2024/12/2",
		"加權指\r\n數乖離率":     "加權指數乖離率",
		"already normal":  "already normal",
		"\n\r  spaced \n": "spaced",
	}
	for in, want := range cases {
		got := NormalizeHeader(in)
		if got != want {
			t.Errorf("NormalizeHeader(%q) = %q want %q", in, got, want)
		}
		// Idempotence: a normalized header normalizes to itself.
		if again := NormalizeHeader(got); again != got {
			t.Errorf("NormalizeHeader not idempotent on %q: %q", got, again)
		}
	}
}

func TestEncodeDecodeSeries(t *testing.T) {
	d1, d2, d3 := date.MustParse("2024-12-02"), date.MustParse("2024-12-03"), date.MustParse("2024-12-04")
	series := map[string]*date.Series{
		"taiex_bias": new(date.Series).Append(d1, 1.5).Append(d3, -0.25),
		"taiex_pe":   new(date.Series).Append(d2, 14.125),
	}
	order := []string{"taiex_bias", "taiex_pe"}

	var buf bytes.Buffer
	if err := EncodeSeries(&buf, series, order); err != nil {
		t.Fatalf("EncodeSeries: %v", err)
	}

	out := buf.String()
	// Date columns are the union across series, in file date format.
	if !strings.HasPrefix(out, "Measure,2024/12/02,2024/12/03,2024/12/04\n") {
		t.Errorf("unexpected header in:\n%s", out)
	}
	// Absent points are blank cells, not zeros.
	if !strings.Contains(out, "taiex_bias,1.5,,-0.25\n") {
		t.Errorf("unexpected taiex_bias row in:\n%s", out)
	}
	if !strings.Contains(out, "taiex_pe,,14.125,\n") {
		t.Errorf("unexpected taiex_pe row in:\n%s", out)
	}

	got, gotOrder, err := DecodeSeries(&buf, "test")
	if err != nil {
		t.Fatalf("DecodeSeries: %v", err)
	}
	if len(gotOrder) != 2 || gotOrder[0] != "taiex_bias" || gotOrder[1] != "taiex_pe" {
		t.Errorf("row order = %v", gotOrder)
	}
	for id, want := range series {
		s := got[id]
		if s == nil || s.Len() != want.Len() {
			t.Fatalf("series %q = %v", id, s)
		}
		for on, v := range want.Values() {
			if gv, ok := s.Get(on); !ok || gv != v {
				t.Errorf("%s on %s = (%v, %v) want %v", id, on, gv, ok, v)
			}
		}
	}
}

func TestDecodeSeriesMessyHeaders(t *testing.T) {
	// Headers carry incidental whitespace and line breaks, cells trailing spaces.
	doc := "Measure, 2024/12/2 ,\"2024/\n12/3\"\ntaiex_bias, 1.5 ,\n"
	series, order, err := DecodeSeries(strings.NewReader(doc), "test")
	if err != nil {
		t.Fatalf("DecodeSeries: %v", err)
	}
	if len(order) != 1 {
		t.Fatalf("order = %v", order)
	}
	if v, ok := series["taiex_bias"].Get(date.MustParse("2024-12-02")); !ok || v != 1.5 {
		t.Errorf("taiex_bias on 12-02 = (%v, %v)", v, ok)
	}
	if series["taiex_bias"].Len() != 1 {
		t.Errorf("blank cell must stay absent: %d points", series["taiex_bias"].Len())
	}
}

func TestDecodeSeriesErrors(t *testing.T) {
	var parseErr *ParseError
	for name, doc := range map[string]string{
		"empty":      "",
		"bad date":   "Measure,not-a-date\nx,1\n",
		"bad number": "Measure,2024/12/2\nx,one\n",
	} {
		if _, _, err := DecodeSeries(strings.NewReader(doc), "test"); !errors.As(err, &parseErr) {
			t.Errorf("%s: got %v want ParseError", name, err)
		}
	}
}

func TestMeasureCSVBig5RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "measure_value.csv")
	d := date.MustParse("2024-12-02")
	series := map[string]*date.Series{"加權指數乖離率": new(date.Series).Append(d, 1.5)}

	if err := WriteMeasureCSV(path, series, []string{"加權指數乖離率"}); err != nil {
		t.Fatalf("WriteMeasureCSV: %v", err)
	}

	got, order, err := ReadMeasureCSV(path)
	if err != nil {
		t.Fatalf("ReadMeasureCSV: %v", err)
	}
	if len(order) != 1 || order[0] != "加權指數乖離率" {
		t.Errorf("order = %v", order)
	}
	if v, ok := got["加權指數乖離率"].Get(d); !ok || v != 1.5 {
		t.Errorf("round-trip value = (%v, %v)", v, ok)
	}
}

func TestWriteMeasureCSVIsBig5(t *testing.T) {
	var big5 bytes.Buffer
	w := transform.NewWriter(&big5, traditionalchinese.Big5.NewEncoder())
	if err := EncodeSeries(w, map[string]*date.Series{
		"乖離率": new(date.Series).Append(date.MustParse("2024-12-02"), 1),
	}, []string{"乖離率"}); err != nil {
		t.Fatalf("EncodeSeries: %v", err)
	}
	w.Close()

	// The id must not be stored as UTF-8 bytes.
	if bytes.Contains(big5.Bytes(), []byte("乖離率")) {
		t.Error("measure id written as UTF-8, not Big5")
	}
	// Decoding back recovers it.
	dec, _, err := DecodeSeries(transform.NewReader(&big5, traditionalchinese.Big5.NewDecoder()), "test")
	if err != nil {
		t.Fatalf("decoding Big5 back: %v", err)
	}
	if _, ok := dec["乖離率"]; !ok {
		t.Errorf("Big5 round-trip lost the id: %v", dec)
	}
}

func TestReadMeasureCSVMissingFile(t *testing.T) {
	var fa *FileAccessError
	if _, _, err := ReadMeasureCSV(filepath.Join(t.TempDir(), "absent.csv")); !errors.As(err, &fa) {
		t.Errorf("got %v want FileAccessError", err)
	}
}
