package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ycfang/twmarketwatch/date"
	"github.com/ycfang/twmarketwatch/renderer"
	"github.com/ycfang/twmarketwatch/twse"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	code string
	day  string
	top  int
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch daily quotes from the exchange" }
func (*fetchCmd) Usage() string {
	return `twmw fetch [-code <stock>] [-d <date>] [-top <n>]

  Without -code, fetches the latest whole-market snapshot (a synthetic one
  when the exchange is unreachable). With -code, fetches the month of daily
  history containing -d for that stock.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.code, "code", "", "Stock code for per-stock history; empty for the market snapshot")
	f.StringVar(&c.day, "d", date.Today().String(), "Date inside the history month")
	f.IntVar(&c.top, "top", 20, "Number of snapshot rows to display, 0 for all")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	client := twse.NewClient()

	if c.code != "" {
		on, err := date.Parse(c.day)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		history, err := client.Day(c.code, on)
		if err != nil {
			return fail(err)
		}
		for _, q := range history {
			fmt.Printf("%s close=%s change=%s volume=%d\n", q.Date, q.Close.StringFixed(2), q.Change.StringFixed(2), q.Volume)
		}
		return subcommands.ExitSuccess
	}

	quotes, synthetic, err := client.DayAllOrSynthetic()
	if err != nil {
		return fail(err)
	}
	if c.top > 0 && len(quotes) > c.top {
		quotes = quotes[:c.top]
	}
	printMarkdown(renderer.MarketMarkdown(quotes, synthetic))
	return subcommands.ExitSuccess
}
