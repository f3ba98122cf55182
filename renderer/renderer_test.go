package renderer

import (
	"strings"
	"testing"

	"github.com/ycfang/twmarketwatch"
	"github.com/ycfang/twmarketwatch/date"
	"github.com/ycfang/twmarketwatch/twse"
)

func testReport() *marketwatch.Report {
	return &marketwatch.Report{
		AsOf:  date.MustParse("2025-07-31"),
		Range: date.Range{From: date.MustParse("2025-07-01"), To: date.MustParse("2025-07-31")},
		Rows: []*marketwatch.ReportRow{
			{
				MeasureID:   "taiex_bias",
				Name:        "加權指數乖離率",
				Unit:        "%",
				Category:    marketwatch.Technical,
				LatestDate:  date.MustParse("2025-07-30"),
				LatestValue: 1.25,
				HasValue:    true,
				LatestScore: 1,
				HasScore:    true,
			},
			{
				MeasureID: "taiex_pe",
				Name:      "加權指數本益比",
				Category:  marketwatch.Valuation,
			},
		},
		Summaries: []marketwatch.CategorySummary{
			{Category: marketwatch.Technical, MeasureCount: 1, ScoreSum: 1},
			{Category: marketwatch.Valuation},
		},
	}
}

func TestRenderReport(t *testing.T) {
	got := RenderReport(NewReportView(testReport()))

	for _, want := range []string{
		"# Market Report on 2025-07-31",
		"2025-07-01..2025-07-31",
		"| taiex_bias | 加權指數乖離率 | 技術面指標 | % | 1.25 (2025-07-30) | +1 |",
		"| taiex_pe | 加權指數本益比 | 評價面指標 |  | n/a | - |",
		"| 技術面指標 | 1 | +1 |",
		"| 評價面指標 | 0 | 0 |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered report missing %q in:\n%s", want, got)
		}
	}
}

func TestMarketMarkdown(t *testing.T) {
	got := MarketMarkdown(twse.Synthetic(), true)

	if !strings.Contains(got, "synthetic snapshot") {
		t.Error("synthetic banner missing")
	}
	if !strings.Contains(got, "台積電") {
		t.Errorf("snapshot rows missing in:\n%s", got)
	}
}
