package twse

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/ycfang/twmarketwatch/date"
)

// DayAllAt fetches the whole-market snapshot for a past trading day through
// the legacy MI_INDEX report. Unlike the open API, that report goes back
// years, but it comes as a Big5 CSV with decorative title lines and quoted
// thousand separators.
func (c *Client) DayAllAt(on date.Date) ([]Quote, error) {
	v := url.Values{}
	v.Set("response", "csv")
	v.Set("date", fmt.Sprintf("%04d%02d%02d", on.Year(), int(on.Month()), on.Day()))
	v.Set("type", "ALLBUT0999")
	addr := c.legacy + "/exchangeReport/MI_INDEX?" + v.Encode()

	resp, err := c.http.Get(addr)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot for %s: %w", on, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("fetching snapshot for %s: %s", on, resp.Status)
	}

	r := transform.NewReader(resp.Body, traditionalchinese.Big5.NewDecoder())
	return parseMIIndex(bufio.NewScanner(r))
}

// parseMIIndex extracts the per-stock section of a MI_INDEX CSV. The report
// stacks several tables; the one we want starts at the header line naming
// 證券代號 and its rows are the only ones with a quoted stock code first.
func parseMIIndex(input *bufio.Scanner) ([]Quote, error) {
	var rows []string
	inTable := false
	for input.Scan() {
		line := strings.TrimSpace(input.Text())
		if !inTable {
			if strings.Contains(line, "證券代號") {
				inTable = true
			}
			continue
		}
		// The table ends at the first line that is not a data row. Codes are
		// exported as ="2330" to defeat spreadsheet coercion.
		if line == "" || (!strings.HasPrefix(line, `"`) && !strings.HasPrefix(line, `="`)) {
			break
		}
		rows = append(rows, strings.ReplaceAll(line, `="`, `"`))
	}
	if err := input.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("snapshot contains no stock table")
	}

	cr := csv.NewReader(strings.NewReader(strings.Join(rows, "\n")))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot rows: %w", err)
	}

	quotes := make([]Quote, 0, len(records))
	for _, rec := range records {
		// code, name, volume, transactions, turnover, open, high, low,
		// close, sign, change, ... the trailing columns vary by year.
		if len(rec) < 11 {
			continue
		}
		change := parseDecimal(rec[10])
		if strings.Contains(rec[9], "-") {
			change = change.Neg()
		}
		q := Quote{
			Code:       strings.TrimSpace(rec[0]),
			Name:       strings.TrimSpace(rec[1]),
			Volume:     parseDecimal(rec[2]).IntPart(),
			TradeValue: parseDecimal(rec[4]),
			Open:       parseDecimal(rec[5]),
			High:       parseDecimal(rec[6]),
			Low:        parseDecimal(rec[7]),
			Close:      parseDecimal(rec[8]),
			Change:     change,
		}
		q.ChangePercent = changePercent(q.Close, q.Change, q.ChangePercent)
		quotes = append(quotes, q)
	}
	return quotes, nil
}
