package marketwatch

import (
	"fmt"

	"github.com/ycfang/twmarketwatch/date"
)

// MeasureSource fetches one field of one index over a date range. The field
// is what the upstream API is asked for; the column is the name of the series
// to keep from its answer (they differ for multi-column indicators like MACD).
type MeasureSource interface {
	Fetch(stockID, field, column string, rng date.Range) (*date.Series, error)
}

// The standard handlers, keyed by the compute references used in
// measure_profile.json. The tables are fixed at compile time: a profile entry
// referencing anything else fails configuration, not a runtime lookup.

const (
	taiex = "TWA00" // TAIEX weighted index
	otc   = "TWC00" // OTC (TPEx) index
)

var valueBuilders = map[string]func(src MeasureSource) ValueFunc{
	"fetch_taiex_bias": indexField(taiex, "價格_BIAS_67D", "價格_BIAS_67D"),
	"fetch_otc_bias":   indexField(otc, "價格_BIAS_67D", "價格_BIAS_67D"),
	// MACD answers three columns: _1 is DIF, _2 is the MACD line.
	"fetch_taiex_macd": indexField(taiex, "價格_MACD_12D_26D_9D", "價格_MACD_12D_26D_9D_2"),
	"fetch_otc_macd":   indexField(otc, "價格_MACD_12D_26D_9D", "價格_MACD_12D_26D_9D_2"),
	"fetch_taiex_dif":  indexField(taiex, "價格_MACD_12D_26D_9D", "價格_MACD_12D_26D_9D_1"),
	"fetch_taiex_pe":   indexField(taiex, "本益比4", "本益比4"),
	"fetch_otc_pe":     indexField(otc, "本益比4", "本益比4"),
	"fetch_taiex_pb":   indexField(taiex, "股價淨值比", "股價淨值比"),
	"fetch_otc_pb":     indexField(otc, "股價淨值比", "股價淨值比"),
}

var scoreBuilders = map[string]func() ScoreFunc{
	// Above the moving average (or a rising MACD) is worth one point.
	"calc_score_taiex_bias": func() ScoreFunc { return scorePositive },
	"calc_score_otc_bias":   func() ScoreFunc { return scorePositive },
	"calc_score_taiex_macd": func() ScoreFunc { return scorePositive },
	"calc_score_otc_macd":   func() ScoreFunc { return scorePositive },
	"calc_score_taiex_dif":  func() ScoreFunc { return scorePositive },
	// Valuation scores a point while below the historical comfort level.
	"calc_score_taiex_pe": func() ScoreFunc { return scoreBelow(15) },
	"calc_score_otc_pe":   func() ScoreFunc { return scoreBelow(15) },
	"calc_score_taiex_pb": func() ScoreFunc { return scoreBelow(1.5) },
	"calc_score_otc_pb":   func() ScoreFunc { return scoreBelow(1.5) },
}

// NewStandardRegistry builds the registry for a profile, resolving every
// compute reference against the standard handler tables. An unknown non-empty
// reference is a ConfigurationError.
func NewStandardRegistry(p *Profile, src MeasureSource) (*Registry, error) {
	r := NewRegistry(p)
	for _, m := range p.Measures() {
		if m.ValueRef != "" {
			build, ok := valueBuilders[m.ValueRef]
			if !ok {
				return nil, &ConfigurationError{Detail: fmt.Sprintf("measure %q references unknown value function %q", m.ID, m.ValueRef)}
			}
			r.RegisterValue(m.ID, build(src))
		}
		if m.ScoreRef != "" {
			build, ok := scoreBuilders[m.ScoreRef]
			if !ok {
				return nil, &ConfigurationError{Detail: fmt.Sprintf("measure %q references unknown score function %q", m.ID, m.ScoreRef)}
			}
			r.RegisterScore(m.ID, build())
		}
	}
	return r, nil
}

func indexField(stockID, field, column string) func(src MeasureSource) ValueFunc {
	return func(src MeasureSource) ValueFunc {
		return func(rng date.Range) (*date.Series, error) {
			s, err := src.Fetch(stockID, field, column, rng)
			if err != nil {
				return nil, err
			}
			if s.Len() == 0 {
				return nil, fmt.Errorf("%s %s returned no data for %s", stockID, field, rng)
			}
			return s, nil
		}
	}
}

// scorePositive scores 1 when the value is above zero, 0 otherwise.
func scorePositive(values *date.Series) (*date.Series, error) {
	out := new(date.Series)
	for on, v := range values.Values() {
		if v > 0 {
			out.Append(on, 1)
		} else {
			out.Append(on, 0)
		}
	}
	return out, nil
}

// scoreBelow scores 1 while the value stays under the threshold.
func scoreBelow(threshold float64) ScoreFunc {
	return func(values *date.Series) (*date.Series, error) {
		out := new(date.Series)
		for on, v := range values.Values() {
			if v < threshold {
				out.Append(on, 1)
			} else {
				out.Append(on, 0)
			}
		}
		return out, nil
	}
}
