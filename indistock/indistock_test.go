package indistock

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ycfang/twmarketwatch/date"
)

const answer = `{
  "status": "success",
  "data": {
    "TWA00": {
      "data": [
        {"日期": "2025-07-01", "價格_BIAS_67D": 1.5},
        {"日期": "2025-07-02", "價格_BIAS_67D": null},
        {"日期": "2025-07-03", "價格_BIAS_67D": -0.25}
      ]
    }
  }
}`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("stock_id") != "TWA00" || q.Get("format") != "json" || q.Get("api_key") != "guest" {
			t.Errorf("unexpected query: %v", q)
		}
		fmt.Fprint(w, answer)
	}))
	defer srv.Close()

	c := &Client{baseURL: srv.URL, apiKey: "guest", http: srv.Client()}
	rng := date.Range{From: date.MustParse("2025-07-01"), To: date.MustParse("2025-07-31")}
	s, err := c.Fetch("TWA00", "價格_BIAS_67D", "價格_BIAS_67D", rng)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	// The null cell on 07-02 is dropped.
	if s.Len() != 2 {
		t.Fatalf("Len() = %d want 2", s.Len())
	}
	if v, ok := s.Get(date.MustParse("2025-07-01")); !ok || v != 1.5 {
		t.Errorf("Get(2025-07-01) = (%v, %v) want (1.5, true)", v, ok)
	}
	if v, ok := s.Get(date.MustParse("2025-07-03")); !ok || v != -0.25 {
		t.Errorf("Get(2025-07-03) = (%v, %v) want (-0.25, true)", v, ok)
	}
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "error"}`)
	}))
	defer srv.Close()

	c := &Client{baseURL: srv.URL, apiKey: "guest", http: srv.Client()}
	rng := date.Range{From: date.MustParse("2025-07-01"), To: date.MustParse("2025-07-31")}
	if _, err := c.Fetch("TWA00", "本益比4", "本益比4", rng); err == nil {
		t.Error("Fetch on error status must fail")
	}
}
