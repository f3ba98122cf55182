package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"github.com/ycfang/twmarketwatch/twse"
)

// MarketMarkdown renders a market snapshot to a markdown string. When the
// snapshot is synthetic it says so up front.
func MarketMarkdown(quotes []twse.Quote, synthetic bool) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Taiwan Stock Exchange Daily Snapshot")
	if synthetic {
		doc.PlainText("> Exchange unreachable: showing a synthetic snapshot, not market data.")
	}
	doc.PlainText(fmt.Sprintf("%d listings.", len(quotes)))

	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, []string{
			q.Code,
			q.Name,
			q.Close.StringFixed(2),
			signed(q.Change),
			signed(q.ChangePercent) + "%",
			fmt.Sprintf("%d", q.Volume),
			q.Turnover().String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Code", "Name", "Close", "Change", "Change %", "Volume", "Turnover"},
		Rows:   rows,
	})

	return doc.String()
}

// HoldingsMarkdown renders a shareholder distribution table.
func HoldingsMarkdown(holdings []twse.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Shareholder Distribution")
	if len(holdings) > 0 {
		doc.PlainText(fmt.Sprintf("Data date %s.", holdings[0].DataDate))
	}

	rows := make([][]string, 0, len(holdings))
	for _, h := range holdings {
		rows = append(rows, []string{
			h.Code,
			h.Name,
			h.Level,
			fmt.Sprintf("%d", h.People),
			fmt.Sprintf("%d", h.Shares),
			h.Percentage.StringFixed(2) + "%",
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Code", "Name", "Bracket", "Holders", "Shares", "% Outstanding"},
		Rows:   rows,
	})

	return doc.String()
}

func signed(d decimal.Decimal) string {
	if d.Sign() > 0 {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}
