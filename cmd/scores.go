package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ycfang/twmarketwatch"
)

// scoresCmd holds the flags for the 'scores' subcommand.
type scoresCmd struct {
	profileFile string
	valueFile   string
	scoreFile   string
}

func (*scoresCmd) Name() string     { return "scores" }
func (*scoresCmd) Synopsis() string { return "derive measure scores and write the score CSV" }
func (*scoresCmd) Usage() string {
	return `twmw scores [-profile_file <json>] [-value_file <csv>] [-score_file <csv>]

  Applies each measure's scoring rule to the value file and writes the Big5
  score file. Measures without a scoring rule are left out.
`
}

func (c *scoresCmd) SetFlags(f *flag.FlagSet) {
	cfg := marketwatch.DefaultConfig()
	f.StringVar(&c.profileFile, "profile_file", cfg.ProfileFile, "Measure profile JSON file")
	f.StringVar(&c.valueFile, "value_file", cfg.ValueFile, "Measure value CSV file to read (Big5)")
	f.StringVar(&c.scoreFile, "score_file", cfg.ScoreFile, "Measure score CSV file to write (Big5)")
}

func (c *scoresCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	registry, order, err := standardRegistry(c.profileFile)
	if err != nil {
		return fail(err)
	}

	values, _, err := marketwatch.ReadMeasureCSV(c.valueFile)
	if err != nil {
		return fail(err)
	}

	scores, err := registry.ComputeScores(values)
	if err != nil {
		return fail(err)
	}

	if err := marketwatch.WriteMeasureCSV(c.scoreFile, scores, order); err != nil {
		return fail(err)
	}
	fmt.Printf("Derived %d measure score series into %s\n", len(scores), c.scoreFile)
	return subcommands.ExitSuccess
}
