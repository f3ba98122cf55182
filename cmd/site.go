package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ycfang/twmarketwatch"
	"github.com/ycfang/twmarketwatch/web"
)

// siteCmd holds the flags for the 'site' subcommand.
type siteCmd struct {
	dir         string
	valueFile   string
	scoreFile   string
	profileFile string
	startDate   string
	endDate     string
}

func (*siteCmd) Name() string     { return "site" }
func (*siteCmd) Synopsis() string { return "generate the static report site" }
func (*siteCmd) Usage() string {
	return `twmw site [-dir <output>] [-value_file <csv>] [-score_file <csv>] [-profile_file <json>] [-start_date <date>] [-end_date <date>]

  Assembles the report and writes the static site (index.html and data.json),
  ready for GitHub Pages.
`
}

func (c *siteCmd) SetFlags(f *flag.FlagSet) {
	cfg := marketwatch.DefaultConfig()
	f.StringVar(&c.dir, "dir", "docs", "Output directory")
	f.StringVar(&c.valueFile, "value_file", cfg.ValueFile, "Measure value CSV file (Big5)")
	f.StringVar(&c.scoreFile, "score_file", cfg.ScoreFile, "Measure score CSV file (Big5)")
	f.StringVar(&c.profileFile, "profile_file", cfg.ProfileFile, "Measure profile JSON file")
	f.StringVar(&c.startDate, "start_date", defaultStart, "Beginning of the report window")
	f.StringVar(&c.endDate, "end_date", "", "End of the report window, today by default")
}

func (c *siteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := parseRange(c.startDate, c.endDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	rep, err := marketwatch.GenerateReport(marketwatch.ReportConfig{
		ValueFile:   c.valueFile,
		ScoreFile:   c.scoreFile,
		ProfileFile: c.profileFile,
		Range:       rng,
	})
	if err != nil {
		return fail(err)
	}

	if err := web.WriteSite(c.dir, rep); err != nil {
		return fail(err)
	}
	fmt.Printf("Static site written to %s\n", c.dir)
	return subcommands.ExitSuccess
}
