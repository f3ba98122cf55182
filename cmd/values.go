package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ycfang/twmarketwatch"
	"github.com/ycfang/twmarketwatch/date"
	"github.com/ycfang/twmarketwatch/indistock"
)

// valuesCmd holds the flags for the 'values' subcommand.
type valuesCmd struct {
	profileFile string
	valueFile   string
	startDate   string
	endDate     string
	freq        string
}

func (*valuesCmd) Name() string     { return "values" }
func (*valuesCmd) Synopsis() string { return "compute measure values and write the value CSV" }
func (*valuesCmd) Usage() string {
	return `twmw values [-profile_file <json>] [-value_file <csv>] [-start_date <date>] [-end_date <date>] [-freq <period>]

  Computes every profile measure over the window through the measure-data API
  and writes the Big5 value file. With -freq, series are resampled to the last
  observation of each period (week, month, quarter, year).
`
}

func (c *valuesCmd) SetFlags(f *flag.FlagSet) {
	cfg := marketwatch.DefaultConfig()
	f.StringVar(&c.profileFile, "profile_file", cfg.ProfileFile, "Measure profile JSON file")
	f.StringVar(&c.valueFile, "value_file", cfg.ValueFile, "Measure value CSV file to write (Big5)")
	f.StringVar(&c.startDate, "start_date", defaultStart, "Beginning of the computation window")
	f.StringVar(&c.endDate, "end_date", "", "End of the computation window, today by default")
	f.StringVar(&c.freq, "freq", "", "Resample period: week, month, quarter or year; empty keeps daily data")
}

func (c *valuesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := parseRange(c.startDate, c.endDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	registry, order, err := standardRegistry(c.profileFile)
	if err != nil {
		return fail(err)
	}

	values, err := registry.ComputeValues(rng)
	if err != nil {
		return fail(err)
	}

	if c.freq != "" {
		period, err := date.ParsePeriod(c.freq)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		for id, s := range values {
			values[id] = s.Resample(period)
		}
	}

	if err := marketwatch.WriteMeasureCSV(c.valueFile, values, order); err != nil {
		return fail(err)
	}
	fmt.Printf("Computed %d measure value series into %s\n", len(values), c.valueFile)
	return subcommands.ExitSuccess
}

// standardRegistry loads the profile and binds the standard handlers against
// the configured measure-data API. It returns the registry and the profile
// declaration order, which fixes the row order of the data files.
func standardRegistry(profileFile string) (*marketwatch.Registry, []string, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	profile, err := marketwatch.LoadProfile(profileFile)
	if err != nil {
		return nil, nil, err
	}
	src := indistock.New(cfg.APIURL, cfg.APIKey)
	registry, err := marketwatch.NewStandardRegistry(profile, src)
	if err != nil {
		return nil, nil, err
	}
	order := make([]string, 0, profile.Len())
	for _, m := range profile.Measures() {
		order = append(order, m.ID)
	}
	return registry, order, nil
}
