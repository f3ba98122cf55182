// Package twse crawls daily quotes from the Taiwan Stock Exchange open API.
//
// The exchange publishes several public endpoints:
//   - all-market daily snapshot: https://openapi.twse.com.tw/v1/exchangeReport/STOCK_DAY_ALL
//   - per-stock daily history:   https://www.twse.com.tw/exchangeReport/STOCK_DAY
//
// The crawler is best-effort: when the network is unavailable the caller can
// fall back to a small deterministic synthetic snapshot, clearly flagged as
// such, so the rest of the pipeline stays exercisable offline.
package twse

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ycfang/twmarketwatch/date"
)

const openAPIBase = "https://openapi.twse.com.tw/v1"
const legacyBase = "https://www.twse.com.tw"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Quote is one stock in the daily market snapshot.
type Quote struct {
	Code          string
	Name          string
	Close         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	Open          decimal.Decimal
	High          decimal.Decimal
	Low           decimal.Decimal
	Volume        int64
	TradeValue    decimal.Decimal // day turnover, in TWD
}

// Client talks to the TWSE endpoints.
type Client struct {
	http    *http.Client
	openAPI string
	legacy  string
}

// NewClient returns a TWSE client.
func NewClient() *Client {
	return &Client{
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &uaTransport{base: http.DefaultTransport},
		},
		openAPI: openAPIBase,
		legacy:  legacyBase,
	}
}

// uaTransport tags every request with a browser user agent; the exchange
// rejects the Go default.
type uaTransport struct{ base http.RoundTripper }

func (t *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	return t.base.RoundTrip(req)
}

// jquote is the open-API shape of a snapshot entry; all values come as
// strings.
type jquote struct {
	Code          string `json:"Code"`
	Name          string `json:"Name"`
	TradeVolume   string `json:"TradeVolume"`
	TradeValue    string `json:"TradeValue"`
	OpeningPrice  string `json:"OpeningPrice"`
	HighestPrice  string `json:"HighestPrice"`
	LowestPrice   string `json:"LowestPrice"`
	ClosingPrice  string `json:"ClosingPrice"`
	Change        string `json:"Change"`
	ChangePercent string `json:"ChangePercent"`
}

// DayAll fetches the whole-market closing snapshot of the latest trading day.
func (c *Client) DayAll() ([]Quote, error) {
	addr := c.openAPI + "/exchangeReport/STOCK_DAY_ALL"
	var content []jquote
	if err := jwget(c.http, addr, &content); err != nil {
		return nil, fmt.Errorf("fetching market snapshot: %w", err)
	}

	quotes := make([]Quote, 0, len(content))
	for _, j := range content {
		if j.Code == "" {
			continue
		}
		q := Quote{
			Code:       j.Code,
			Name:       j.Name,
			Close:      parseDecimal(j.ClosingPrice),
			Change:     parseDecimal(j.Change),
			Open:       parseDecimal(j.OpeningPrice),
			High:       parseDecimal(j.HighestPrice),
			Low:        parseDecimal(j.LowestPrice),
			Volume:     parseDecimal(j.TradeVolume).IntPart(),
			TradeValue: parseDecimal(j.TradeValue),
		}
		q.ChangePercent = changePercent(q.Close, q.Change, parseDecimal(j.ChangePercent))
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// DayAllOrSynthetic is DayAll with the documented fallback: on network
// failure it returns the synthetic snapshot and synthetic=true.
func (c *Client) DayAllOrSynthetic() (quotes []Quote, synthetic bool, err error) {
	quotes, err = c.DayAll()
	if err != nil {
		return Synthetic(), true, nil
	}
	return quotes, false, nil
}

// changePercent keeps the upstream percentage when provided, otherwise
// derives it from close and change.
func changePercent(close, change, upstream decimal.Decimal) decimal.Decimal {
	if !upstream.IsZero() {
		return upstream
	}
	prev := close.Sub(change)
	if prev.IsZero() {
		return decimal.Zero
	}
	return change.Div(prev).Mul(decimal.NewFromInt(100)).Round(2)
}

// parseDecimal reads the exchange's numeric strings: thousand separators,
// and "--" for not-traded. Unreadable cells become zero.
func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "--" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseROCDate reads a Republic-of-China calendar date like "114/01/06".
func parseROCDate(s string) (date.Date, error) {
	var y, m, d int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d/%d/%d", &y, &m, &d); err != nil {
		return date.Date{}, fmt.Errorf("invalid ROC date %q: %w", s, err)
	}
	return date.New(y+1911, time.Month(m), d), nil
}
