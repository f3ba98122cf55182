package twse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ycfang/twmarketwatch"
)

// jwget performs an HTTP GET to addr and unmarshals the JSON response body
// into data.
func jwget(client *http.Client, addr string, data interface{}) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// Turnover returns the day turnover of the quote as a TWD amount.
func (q Quote) Turnover() marketwatch.Money { return marketwatch.M(q.TradeValue, "TWD") }
