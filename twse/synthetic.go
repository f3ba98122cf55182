package twse

import "github.com/shopspring/decimal"

// Synthetic returns a small deterministic market snapshot, used as the
// documented fallback when the exchange cannot be reached. The codes are real
// well-known listings; the figures are fabricated and must never be mistaken
// for market data, which is why DayAllOrSynthetic flags them.
func Synthetic() []Quote {
	rows := []struct {
		code, name                     string
		close, change, open, high, low string
		volume                         int64
		value                          string
	}{
		{"2330", "台積電", "980.00", "5.00", "975.00", "985.00", "972.00", 25000000, "24500000000"},
		{"2317", "鴻海", "178.50", "-1.50", "180.00", "181.00", "178.00", 32000000, "5712000000"},
		{"2454", "聯發科", "1250.00", "15.00", "1235.00", "1255.00", "1230.00", 4200000, "5250000000"},
		{"2881", "富邦金", "88.20", "0.30", "87.90", "88.50", "87.70", 18000000, "1587600000"},
		{"0050", "元大台灣50", "183.35", "0.45", "183.10", "183.50", "182.50", 4680147, "857069771"},
		{"2382", "廣達", "295.00", "-3.00", "298.00", "299.00", "294.00", 9800000, "2891000000"},
		{"2412", "中華電", "122.50", "0.00", "122.50", "123.00", "122.00", 5600000, "686000000"},
		{"2308", "台達電", "402.00", "6.00", "396.00", "403.00", "395.50", 5100000, "2050200000"},
		{"2002", "中鋼", "23.85", "-0.05", "23.90", "24.00", "23.80", 21000000, "500850000"},
		{"1301", "台塑", "46.30", "0.10", "46.20", "46.55", "46.10", 7400000, "342620000"},
	}

	quotes := make([]Quote, 0, len(rows))
	for _, r := range rows {
		q := Quote{
			Code:       r.code,
			Name:       r.name,
			Close:      decimal.RequireFromString(r.close),
			Change:     decimal.RequireFromString(r.change),
			Open:       decimal.RequireFromString(r.open),
			High:       decimal.RequireFromString(r.high),
			Low:        decimal.RequireFromString(r.low),
			Volume:     r.volume,
			TradeValue: decimal.RequireFromString(r.value),
		}
		q.ChangePercent = changePercent(q.Close, q.Change, decimal.Zero)
		quotes = append(quotes, q)
	}
	return quotes
}
