package renderer

import (
	"fmt"
	"strconv"

	"github.com/ycfang/twmarketwatch"
)

// ReportView is the presentation shape of a report, with every figure already
// formatted.
type ReportView struct {
	AsOf       string
	Window     string
	Rows       []ReportRowView
	Categories []CategoryView
}

type ReportRowView struct {
	ID       string
	Name     string
	Category string
	Unit     string
	Latest   string // "value (date)" or "n/a"
	Score    string // "+1", "0" or "-"
}

type CategoryView struct {
	Label        string
	MeasureCount int
	ScoreSum     string
}

// NewReportView formats a report for rendering.
func NewReportView(r *marketwatch.Report) *ReportView {
	v := &ReportView{
		AsOf:   r.AsOf.String(),
		Window: r.Range.String(),
	}
	for _, row := range r.Rows {
		rv := ReportRowView{
			ID:       row.MeasureID,
			Name:     row.Name,
			Category: row.Category.Label(),
			Unit:     row.Unit,
			Latest:   "n/a",
			Score:    "-",
		}
		if row.HasValue {
			rv.Latest = fmt.Sprintf("%s (%s)", formatValue(row.LatestValue), row.LatestDate)
		}
		if row.HasScore {
			rv.Score = formatScore(row.LatestScore)
		}
		v.Rows = append(v.Rows, rv)
	}
	for _, s := range r.Summaries {
		v.Categories = append(v.Categories, CategoryView{
			Label:        s.Category.Label(),
			MeasureCount: s.MeasureCount,
			ScoreSum:     formatScore(s.ScoreSum),
		})
	}
	return v
}

func formatValue(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

// formatScore prints a score with an explicit sign, so that "+1" and "-1"
// read as votes.
func formatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v > 0 {
		return "+" + s
	}
	return s
}
