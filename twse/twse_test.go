package twse

import (
	"bufio"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ycfang/twmarketwatch/date"
)

func newTestClient(srv *httptest.Server) *Client {
	return &Client{http: srv.Client(), openAPI: srv.URL, legacy: srv.URL}
}

func TestDayAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/exchangeReport/STOCK_DAY_ALL" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `[
			{"Code":"2330","Name":"台積電","TradeVolume":"25,000,000","TradeValue":"24,500,000,000","OpeningPrice":"975.00","HighestPrice":"985.00","LowestPrice":"972.00","ClosingPrice":"980.00","Change":"5.0000","ChangePercent":""},
			{"Code":"","Name":"junk row"},
			{"Code":"0050","Name":"元大台灣50","TradeVolume":"4,680,147","TradeValue":"857,069,771","OpeningPrice":"183.10","HighestPrice":"183.50","LowestPrice":"182.50","ClosingPrice":"183.35","Change":"0.45","ChangePercent":"0.25"}
		]`)
	}))
	defer srv.Close()

	quotes, err := newTestClient(srv).DayAll()
	if err != nil {
		t.Fatalf("DayAll: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("got %d quotes want 2", len(quotes))
	}

	q := quotes[0]
	if q.Code != "2330" || q.Name != "台積電" {
		t.Errorf("quote identity = %s %s", q.Code, q.Name)
	}
	if !q.Close.Equal(decimal.RequireFromString("980")) {
		t.Errorf("Close = %s", q.Close)
	}
	if q.Volume != 25000000 {
		t.Errorf("Volume = %d", q.Volume)
	}
	// Percentage missing upstream: derived from 5 over 975.
	if !q.ChangePercent.Equal(decimal.RequireFromString("0.51")) {
		t.Errorf("ChangePercent = %s want 0.51", q.ChangePercent)
	}
	// Percentage present upstream: kept as is.
	if !quotes[1].ChangePercent.Equal(decimal.RequireFromString("0.25")) {
		t.Errorf("ChangePercent = %s want 0.25", quotes[1].ChangePercent)
	}
}

func TestDayAllOrSyntheticFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	quotes, synthetic, err := newTestClient(srv).DayAllOrSynthetic()
	if err != nil {
		t.Fatalf("DayAllOrSynthetic: %v", err)
	}
	if !synthetic {
		t.Error("fallback not flagged as synthetic")
	}
	if len(quotes) == 0 || quotes[0].Code != "2330" {
		t.Errorf("unexpected synthetic snapshot: %v", quotes)
	}
}

func TestDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("stockNo") != "2330" || q.Get("date") != "20250106" {
			t.Errorf("unexpected query: %v", q)
		}
		fmt.Fprint(w, `{"stat":"OK","data":[
			["114/01/06","33,842,680","36,564,239,548","1,085.00","1,090.00","1,075.00","1,080.00","-20.00","45,751"],
			["114/01/07","28,000,000","30,000,000,000","1,085.00","1,100.00","1,080.00","1,095.00","+15.00","40,000"]
		]}`)
	}))
	defer srv.Close()

	quotes, err := newTestClient(srv).Day("2330", date.MustParse("2025-01-06"))
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("got %d rows want 2", len(quotes))
	}
	q := quotes[0]
	if q.Date != date.MustParse("2025-01-06") {
		t.Errorf("Date = %s", q.Date)
	}
	if !q.Close.Equal(decimal.RequireFromString("1080")) {
		t.Errorf("Close = %s", q.Close)
	}
	if !q.Change.Equal(decimal.RequireFromString("-20")) {
		t.Errorf("Change = %s", q.Change)
	}
	if q.Transactions != 45751 {
		t.Errorf("Transactions = %d", q.Transactions)
	}

	s := CloseSeries(quotes)
	if on, v, ok := s.Latest(); !ok || v != 1095 || on != date.MustParse("2025-01-07") {
		t.Errorf("Latest() = (%s, %v, %v)", on, v, ok)
	}
}

func TestDayNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"stat":"很抱歉，沒有符合條件的資料!","data":[]}`)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv).Day("2330", date.MustParse("2025-01-04")); err == nil {
		t.Error("Day on non-OK stat must fail")
	}
}

func TestParseMIIndex(t *testing.T) {
	report := strings.Join([]string{
		`"114年01月06日 每日收盤行情(全部(不含權證、牛熊證))"`,
		`"價格指數(臺灣證券交易所)"`,
		`"指數","收盤指數","漲跌(+/-)","漲跌點數","漲跌百分比(%)"`,
		`"發行量加權股價指數","23,275.15","-","-371.93","-1.57"`,
		``,
		`"證券代號","證券名稱","成交股數","成交筆數","成交金額","開盤價","最高價","最低價","收盤價","漲跌(+/-)","漲跌價差","最後揭示買價","最後揭示買量","最後揭示賣價","最後揭示賣量","本益比"`,
		`="0050","元大台灣50","4,680,147","8,223","857,069,771","183.10","183.50","182.50","183.35","+","0.45","183.30","10","183.35","25","0.00"`,
		`="2330","台積電","33,842,680","45,751","36,564,239,548","1,085.00","1,090.00","1,075.00","1,080.00","-","20.00","1,080.00","651","1,085.00","214","25.38"`,
		`"說明:"`,
	}, "\r\n")

	quotes, err := parseMIIndex(bufio.NewScanner(strings.NewReader(report)))
	if err != nil {
		t.Fatalf("parseMIIndex: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("got %d quotes want 2", len(quotes))
	}
	if quotes[0].Code != "0050" || quotes[0].Name != "元大台灣50" {
		t.Errorf("quote identity = %s %s", quotes[0].Code, quotes[0].Name)
	}
	if !quotes[0].Change.Equal(decimal.RequireFromString("0.45")) {
		t.Errorf("Change = %s want 0.45", quotes[0].Change)
	}
	// The sign column turns the price difference negative.
	if !quotes[1].Change.Equal(decimal.RequireFromString("-20")) {
		t.Errorf("Change = %s want -20", quotes[1].Change)
	}
	if !quotes[1].Close.Equal(decimal.RequireFromString("1080")) {
		t.Errorf("Close = %s want 1080", quotes[1].Close)
	}
}

func TestShareholderStructure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"scaDates":"20250822","scaCode":"2330","scaName":"台積電","level":"1,000-5,000","people":"512,345","shares":"1,234,567,890","percentage":"4.75%"}
		]`)
	}))
	defer srv.Close()

	// The open-data URL is fixed, so point it at the test server through the
	// client's transport.
	c := &Client{http: &http.Client{Transport: rewriteHost(srv)}}

	holdings, err := c.ShareholderStructure("20250822", "2330")
	if err != nil {
		t.Fatalf("ShareholderStructure: %v", err)
	}
	if len(holdings) != 1 {
		t.Fatalf("got %d holdings want 1", len(holdings))
	}
	h := holdings[0]
	if h.People != 512345 || h.Shares != 1234567890 {
		t.Errorf("counts = %d %d", h.People, h.Shares)
	}
	if !h.Percentage.Equal(decimal.RequireFromString("4.75")) {
		t.Errorf("Percentage = %s", h.Percentage)
	}
}

// rewriteHost redirects any outgoing request to the test server.
func rewriteHost(srv *httptest.Server) http.RoundTripper {
	return roundTripFunc(func(req *http.Request) (*http.Response, error) {
		req = req.Clone(req.Context())
		req.URL.Scheme = "http"
		req.URL.Host = strings.TrimPrefix(srv.URL, "http://")
		return http.DefaultTransport.RoundTrip(req)
	})
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1,234.56", "1234.56"},
		{"--", "0"},
		{"", "0"},
		{" 980.00 ", "980"},
		{"garbage", "0"},
	}
	for _, c := range cases {
		if got := parseDecimal(c.in); !got.Equal(decimal.RequireFromString(c.want)) {
			t.Errorf("parseDecimal(%q) = %s want %s", c.in, got, c.want)
		}
	}
}

func TestParseROCDate(t *testing.T) {
	got, err := parseROCDate("114/01/06")
	if err != nil {
		t.Fatalf("parseROCDate: %v", err)
	}
	if got != date.MustParse("2025-01-06") {
		t.Errorf("parseROCDate = %s", got)
	}
	if _, err := parseROCDate("not a date"); err == nil {
		t.Error("parseROCDate on junk must fail")
	}
}
