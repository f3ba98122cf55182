// Package cmd implements the CLI application to watch Taiwan market measures.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/ycfang/twmarketwatch"
	"github.com/ycfang/twmarketwatch/date"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&reportCmd{},
	&valuesCmd{},
	&scoresCmd{},
	&fetchCmd{},
	&holdersCmd{},
	&serveCmd{},
	&siteCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the YAML configuration file (twmarketwatch.yaml by default, if present)")

// LoadConfig resolves the application configuration once per run.
func LoadConfig() (marketwatch.Config, error) {
	return marketwatch.LoadConfig(*configFile)
}

// defaultStart is the historical beginning of the report window.
const defaultStart = "2024/12/1"

// parseRange reads the start/end date flags into an inclusive range. An empty
// end means today.
func parseRange(start, end string) (date.Range, error) {
	from, err := date.Parse(start)
	if err != nil {
		return date.Range{}, &marketwatch.ValidationError{Detail: fmt.Sprintf("bad start date %q: %v", start, err)}
	}
	to := date.Today()
	if end != "" {
		if to, err = date.Parse(end); err != nil {
			return date.Range{}, &marketwatch.ValidationError{Detail: fmt.Sprintf("bad end date %q: %v", end, err)}
		}
	}
	rng := date.Range{From: from, To: to}
	if !rng.Ordered() {
		return date.Range{}, &marketwatch.ValidationError{Detail: fmt.Sprintf("date range %s is not ordered", rng)}
	}
	return rng, nil
}

// printMarkdown renders markdown for the terminal. When styling fails (no
// usable terminal) the raw markdown is printed instead.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail reports a fatal command error the uniform way.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
