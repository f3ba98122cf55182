package twse

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// The depository (TDCC) publishes the weekly shareholder distribution table
// as open data. One record is one holding bracket of one stock.
const tdccBase = "https://openapi.tdcc.com.tw/v1/opendata/1-5"

// Holding is one shareholder bracket of the distribution table.
type Holding struct {
	DataDate   string // YYYYMMDD, the weekly cut-off
	Code       string
	Name       string
	Level      string // bracket label, e.g. "1,000-5,000"
	People     int64
	Shares     int64
	Percentage decimal.Decimal // of outstanding shares
}

// jholding mirrors one open-data record. Numbers come comma-grouped and the
// percentage carries a % suffix.
type jholding struct {
	DataDate   string `json:"scaDates"`
	Code       string `json:"scaCode"`
	Name       string `json:"scaName"`
	Level      string `json:"level"`
	People     string `json:"people"`
	Shares     string `json:"shares"`
	Percentage string `json:"percentage"`
}

// ShareholderStructure fetches the distribution table. Both filters are
// optional: dataDate is a YYYYMMDD weekly cut-off, code a stock code.
func (c *Client) ShareholderStructure(dataDate, code string) ([]Holding, error) {
	v := url.Values{}
	if dataDate != "" {
		v.Set("scaDates", dataDate)
	}
	if code != "" {
		v.Set("scaCode", code)
	}
	addr := tdccBase
	if len(v) > 0 {
		addr += "?" + v.Encode()
	}

	var content []jholding
	if err := jwget(c.http, addr, &content); err != nil {
		return nil, fmt.Errorf("fetching shareholder structure: %w", err)
	}

	holdings := make([]Holding, 0, len(content))
	for _, j := range content {
		holdings = append(holdings, Holding{
			DataDate:   j.DataDate,
			Code:       j.Code,
			Name:       j.Name,
			Level:      j.Level,
			People:     parseDecimal(j.People).IntPart(),
			Shares:     parseDecimal(j.Shares).IntPart(),
			Percentage: parseDecimal(strings.TrimSuffix(j.Percentage, "%")),
		})
	}
	return holdings, nil
}
