// Package indistock is the client of the measure-data API serving Taiwan
// index indicator fields (bias, MACD, PE, PB...). One GET per (index, field,
// range), answered as JSON; responses are cached on disk for a day so that
// recomputing a report does not hammer the endpoint.
package indistock

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/ycfang/twmarketwatch/date"
)

// Client queries the indistock API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New returns a client for the API at baseURL, with daily response caching.
func New(baseURL, apiKey string) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, http: newDailyCachingClient()}
}

// Fetch returns the series of one column of one index over rng. The payload
// nests the records under data.<stockID>.data, each record carrying a "日期"
// date and the requested columns; records where the column is null are
// dropped.
func (c *Client) Fetch(stockID, field, column string, rng date.Range) (*date.Series, error) {
	v := url.Values{}
	v.Set("stock_id", stockID)
	v.Set("start", rng.From.String())
	v.Set("end", rng.To.String())
	v.Set("fields", field)
	v.Set("format", "json")
	v.Set("api_key", c.apiKey)
	addr := c.baseURL + "?" + v.Encode()

	var jobj any
	if err := jwget(c.http, addr, &jobj); err != nil {
		return nil, fmt.Errorf("fetching %s %s: %w", stockID, field, err)
	}

	if status, err := jsonpath.Get("$.status", jobj); err != nil || status != "success" {
		return nil, fmt.Errorf("api answered status %v for %s %s", status, stockID, field)
	}

	path := fmt.Sprintf("$.data[%q].data", stockID)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("no data for %s in answer: %w", stockID, err)
	}
	records, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("data for %s is not a list", stockID)
	}

	s := new(date.Series)
	for _, jrec := range records {
		rec, ok := jrec.(map[string]any)
		if !ok {
			continue
		}
		day, ok := rec["日期"].(string)
		if !ok {
			continue
		}
		on, err := date.Parse(day)
		if err != nil {
			return nil, fmt.Errorf("bad date in %s answer: %w", stockID, err)
		}
		// null cells simply don't make it into the series.
		if val, ok := rec[column].(float64); ok {
			s.Append(on, val)
		}
	}
	return s, nil
}
