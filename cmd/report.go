package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ycfang/twmarketwatch"
	"github.com/ycfang/twmarketwatch/renderer"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	valueFile   string
	scoreFile   string
	profileFile string
	outputFile  string
	startDate   string
	endDate     string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "assemble the measure report from the data files" }
func (*reportCmd) Usage() string {
	return `twmw report [-value_file <csv>] [-score_file <csv>] [-profile_file <json>] [-output_file <csv>] [-start_date <date>] [-end_date <date>]

  Joins the measure values, scores and profile into the report, writes it to
  the output file and displays it.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	cfg := marketwatch.DefaultConfig()
	f.StringVar(&c.valueFile, "value_file", cfg.ValueFile, "Measure value CSV file (Big5)")
	f.StringVar(&c.scoreFile, "score_file", cfg.ScoreFile, "Measure score CSV file (Big5); missing file reports without scores")
	f.StringVar(&c.profileFile, "profile_file", cfg.ProfileFile, "Measure profile JSON file")
	f.StringVar(&c.outputFile, "output_file", cfg.OutputFile, "Report output CSV file; empty for display only")
	f.StringVar(&c.startDate, "start_date", defaultStart, "Beginning of the report window")
	f.StringVar(&c.endDate, "end_date", "", "End of the report window, today by default")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := parseRange(c.startDate, c.endDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	rep, err := marketwatch.GenerateReport(marketwatch.ReportConfig{
		ValueFile:   c.valueFile,
		ScoreFile:   c.scoreFile,
		ProfileFile: c.profileFile,
		OutputFile:  c.outputFile,
		Range:       rng,
	})
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.RenderReport(renderer.NewReportView(rep)))
	if c.outputFile != "" {
		fmt.Printf("Report written to %s\n", c.outputFile)
	}
	return subcommands.ExitSuccess
}
