package marketwatch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"github.com/ycfang/twmarketwatch/date"
)

// ReportConfig carries every input of a report run explicitly, so tests can
// substitute temporary files instead of relying on ambient defaults.
type ReportConfig struct {
	ValueFile   string
	ScoreFile   string
	ProfileFile string
	OutputFile  string // empty means no file output
	Range       date.Range
}

// ReportRow is one measure in the assembled report.
type ReportRow struct {
	MeasureID string
	Name      string
	Unit      string
	Category  Category
	History   *date.Series // values inside the report window

	// Latest value/score at the most recent date <= the as-of date. HasValue
	// is false when the window holds no data; the row is still emitted, with
	// blank cells. HasScore is false when the score file has no entry for the
	// measure on that date.
	LatestDate  date.Date
	LatestValue float64
	HasValue    bool
	LatestScore float64
	HasScore    bool
}

// CategorySummary aggregates the latest scores of one category. MeasureCount
// counts the rows that carry a score; score-less rows contribute to neither
// the count nor the sum.
type CategorySummary struct {
	Category     Category
	MeasureCount int
	ScoreSum     float64
}

// Report is the assembled output: rows grouped by category in profile
// declaration order, one summary per category appearing in the profile.
type Report struct {
	AsOf      date.Date
	Range     date.Range
	Dates     []date.Date // union of history dates across rows, ascending
	Rows      []*ReportRow
	Summaries []CategorySummary
}

// BuildReport joins value series, score series and profile metadata into a
// report. Only ids present in both the profile and the value data produce a
// row; value ids missing from the profile are skipped with a warning, the
// profile being authoritative for inclusion.
func BuildReport(profile *Profile, values, scores map[string]*date.Series, rng date.Range) (*Report, error) {
	if !rng.Ordered() {
		return nil, &ValidationError{Detail: fmt.Sprintf("date range %s is not ordered", rng)}
	}

	var unknown []string
	for id := range values {
		if !profile.Has(id) {
			unknown = append(unknown, id)
		}
	}
	slices.Sort(unknown)
	for _, id := range unknown {
		log.Printf("warning: measure %q has values but is not in the profile, skipped", id)
	}

	rep := &Report{AsOf: rng.To, Range: rng}

	var histories []*date.Series
	for _, m := range profile.Measures() {
		series, ok := values[m.ID]
		if !ok {
			continue
		}
		row := &ReportRow{
			MeasureID: m.ID,
			Name:      m.Name,
			Unit:      m.Unit,
			Category:  m.Category,
			History:   series.Filter(rng),
		}
		if on, v, ok := row.History.ValueAsOf(rng.To); ok {
			row.LatestDate, row.LatestValue, row.HasValue = on, v, true
			// The score must come from the same measure and the same date.
			if ss, ok := scores[m.ID]; ok {
				if sv, ok := ss.Get(on); ok {
					row.LatestScore, row.HasScore = sv, true
				}
			}
		}
		rep.Rows = append(rep.Rows, row)
		histories = append(histories, row.History)
	}
	rep.Dates = date.Union(histories...)

	// Rows are already in profile order; group them by category first
	// appearance without disturbing that order.
	cats := profile.Categories()
	slices.SortStableFunc(rep.Rows, func(a, b *ReportRow) int {
		return slices.Index(cats, a.Category) - slices.Index(cats, b.Category)
	})

	for _, cat := range cats {
		sum := CategorySummary{Category: cat}
		for _, row := range rep.Rows {
			if row.Category == cat && row.HasScore {
				sum.MeasureCount++
				sum.ScoreSum += row.LatestScore
			}
		}
		rep.Summaries = append(rep.Summaries, sum)
	}
	return rep, nil
}

// Summary returns the summary of one category, ok=false when the category
// does not appear in the profile.
func (r *Report) Summary(cat Category) (CategorySummary, bool) {
	for _, s := range r.Summaries {
		if s.Category == cat {
			return s, true
		}
	}
	return CategorySummary{}, false
}

// GenerateReport runs the whole assembly from files: load the profile and both
// CSV files, build the report, and write it to cfg.OutputFile if set. A
// missing score file is tolerated (all scores absent); every other failure is
// fatal.
func GenerateReport(cfg ReportConfig) (*Report, error) {
	profile, err := LoadProfile(cfg.ProfileFile)
	if err != nil {
		return nil, err
	}
	values, _, err := ReadMeasureCSV(cfg.ValueFile)
	if err != nil {
		return nil, err
	}
	scores, _, err := ReadMeasureCSV(cfg.ScoreFile)
	if err != nil {
		var fa *FileAccessError
		if !errors.As(err, &fa) {
			return nil, err
		}
		log.Printf("warning: %v, reporting without scores", err)
		scores = nil
	}

	rep, err := BuildReport(profile, values, scores, cfg.Range)
	if err != nil {
		return nil, err
	}

	if cfg.OutputFile != "" {
		if err := WriteReport(cfg.OutputFile, rep); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

// EncodeReport writes the report as delimited text: a "Report" section with
// one row per measure, a blank line, then a "Summary" section with one row
// per category.
func EncodeReport(w io.Writer, rep *Report) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)

	header := []string{"Measure", "Name", "Category", "Unit"}
	for _, on := range rep.Dates {
		header = append(header, on.String())
	}
	header = append(header, "Latest Date", "Latest Value", "Score")

	cw.Write([]string{"Report"})
	cw.Write(header)
	for _, row := range rep.Rows {
		rec := []string{row.MeasureID, row.Name, row.Category.String(), row.Unit}
		for _, on := range rep.Dates {
			if v, ok := row.History.Get(on); ok {
				rec = append(rec, formatValue(v))
			} else {
				rec = append(rec, "")
			}
		}
		if row.HasValue {
			rec = append(rec, row.LatestDate.String(), formatValue(row.LatestValue))
		} else {
			rec = append(rec, "", "")
		}
		if row.HasScore {
			rec = append(rec, formatValue(row.LatestScore))
		} else {
			rec = append(rec, "")
		}
		cw.Write(rec)
	}

	cw.Write([]string{""}) // section separator
	cw.Write([]string{"Summary"})
	cw.Write([]string{"Category", "Measure Count", "Score Sum"})
	for _, s := range rep.Summaries {
		cw.Write([]string{s.Category.String(), fmt.Sprintf("%d", s.MeasureCount), formatValue(s.ScoreSum)})
	}
	cw.Flush()
	return cw.Error()
}

// WriteReport writes the report file, UTF-8 with BOM.
func WriteReport(path string, rep *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()
	return EncodeReport(f, rep)
}
