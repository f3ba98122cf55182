package twse

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/ycfang/twmarketwatch/date"
)

// DailyQuote is one trading day of one stock.
type DailyQuote struct {
	Date         date.Date
	Volume       int64
	Turnover     decimal.Decimal
	Open         decimal.Decimal
	High         decimal.Decimal
	Low          decimal.Decimal
	Close        decimal.Decimal
	Change       decimal.Decimal
	Transactions int64
}

// jstockDay is the legacy endpoint's envelope. Rows are positional:
// date (ROC), volume, turnover, open, high, low, close, change, transactions.
type jstockDay struct {
	Stat string     `json:"stat"`
	Data [][]string `json:"data"`
}

// Day fetches one month of daily history for a single stock; the exchange
// returns the whole month containing 'on'.
func (c *Client) Day(code string, on date.Date) ([]DailyQuote, error) {
	v := url.Values{}
	v.Set("response", "json")
	v.Set("date", fmt.Sprintf("%04d%02d%02d", on.Year(), int(on.Month()), on.Day()))
	v.Set("stockNo", code)
	addr := c.legacy + "/exchangeReport/STOCK_DAY?" + v.Encode()

	var content jstockDay
	if err := jwget(c.http, addr, &content); err != nil {
		return nil, fmt.Errorf("fetching %s history: %w", code, err)
	}
	if content.Stat != "OK" {
		return nil, fmt.Errorf("exchange answered %q for %s on %s", content.Stat, code, on)
	}

	quotes := make([]DailyQuote, 0, len(content.Data))
	for _, row := range content.Data {
		if len(row) < 9 {
			return nil, fmt.Errorf("short history row for %s: %v", code, row)
		}
		day, err := parseROCDate(row[0])
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, DailyQuote{
			Date:         day,
			Volume:       parseDecimal(row[1]).IntPart(),
			Turnover:     parseDecimal(row[2]),
			Open:         parseDecimal(row[3]),
			High:         parseDecimal(row[4]),
			Low:          parseDecimal(row[5]),
			Close:        parseDecimal(row[6]),
			Change:       parseDecimal(row[7]),
			Transactions: parseDecimal(row[8]).IntPart(),
		})
	}
	return quotes, nil
}

// CloseSeries reduces a daily history to a close-price series for the
// measure pipeline.
func CloseSeries(quotes []DailyQuote) *date.Series {
	s := new(date.Series)
	for _, q := range quotes {
		s.Append(q.Date, q.Close.InexactFloat64())
	}
	return s
}
