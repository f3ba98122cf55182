package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/ycfang/twmarketwatch/renderer"
	"github.com/ycfang/twmarketwatch/twse"
)

// holdersCmd holds the flags for the 'holders' subcommand.
type holdersCmd struct {
	code string
	day  string
}

func (*holdersCmd) Name() string     { return "holders" }
func (*holdersCmd) Synopsis() string { return "fetch the shareholder distribution from the depository" }
func (*holdersCmd) Usage() string {
	return `twmw holders [-code <stock>] [-d <yyyymmdd>]

  Fetches the weekly shareholder distribution table from the depository open
  data, optionally filtered by stock code and weekly cut-off date.
`
}

func (c *holdersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.code, "code", "", "Stock code filter")
	f.StringVar(&c.day, "d", "", "Weekly cut-off date (YYYYMMDD); latest by default")
}

func (c *holdersCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, err := twse.NewClient().ShareholderStructure(c.day, c.code)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.HoldingsMarkdown(holdings))
	return subcommands.ExitSuccess
}
