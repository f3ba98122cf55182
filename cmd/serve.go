package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ycfang/twmarketwatch"
	"github.com/ycfang/twmarketwatch/web"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	addr        string
	valueFile   string
	scoreFile   string
	profileFile string
	startDate   string
	endDate     string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the report over HTTP" }
func (*serveCmd) Usage() string {
	return `twmw serve [-addr <host:port>] [-value_file <csv>] [-score_file <csv>] [-profile_file <json>] [-start_date <date>] [-end_date <date>]

  Assembles the report and serves it: / is the HTML page, /api/data the JSON
  figures.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	cfg := marketwatch.DefaultConfig()
	f.StringVar(&c.addr, "addr", ":8080", "Listen address")
	f.StringVar(&c.valueFile, "value_file", cfg.ValueFile, "Measure value CSV file (Big5)")
	f.StringVar(&c.scoreFile, "score_file", cfg.ScoreFile, "Measure score CSV file (Big5)")
	f.StringVar(&c.profileFile, "profile_file", cfg.ProfileFile, "Measure profile JSON file")
	f.StringVar(&c.startDate, "start_date", defaultStart, "Beginning of the report window")
	f.StringVar(&c.endDate, "end_date", "", "End of the report window, today by default")
}

func (c *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rep, err := c.report()
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Serving report on %s\n", c.addr)
	if err := web.Serve(c.addr, rep); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

func (c *serveCmd) report() (*marketwatch.Report, error) {
	rng, err := parseRange(c.startDate, c.endDate)
	if err != nil {
		return nil, err
	}
	return marketwatch.GenerateReport(marketwatch.ReportConfig{
		ValueFile:   c.valueFile,
		ScoreFile:   c.scoreFile,
		ProfileFile: c.profileFile,
		Range:       rng,
	})
}
