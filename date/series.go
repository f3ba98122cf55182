package date

import (
	"iter"
	"slices"
	"sort"
)

// Series stores a chronological sequence of numeric values, each associated
// with a unique date. It is always sorted; dates need not be contiguous.
type Series struct {
	days   []Date
	values []float64
}

// Len returns the number of points in the series.
func (s *Series) Len() int { return len(s.days) }

// Append adds a point to the series. An existing value on that date is
// overwritten.
func (s *Series) Append(on Date, v float64) *Series {
	if i := slices.Index(s.days, on); i >= 0 {
		s.values[i] = v
		return s
	}
	s.days, s.values = append(s.days, on), append(s.values, v)
	sort.Sort(bydate{s})
	return s
}

// bydate sorts a series chronologically, keeping days and values aligned.
type bydate struct{ *Series }

func (b bydate) Less(i, j int) bool { return b.days[i].Before(b.days[j]) }
func (b bydate) Swap(i, j int) {
	b.days[i], b.days[j] = b.days[j], b.days[i]
	b.values[i], b.values[j] = b.values[j], b.values[i]
}

// Get returns the value on exactly 'day'.
func (s *Series) Get(day Date) (float64, bool) {
	if i := slices.Index(s.days, day); i >= 0 {
		return s.values[i], true
	}
	return 0, false
}

// ValueAsOf returns the value on 'day' or the most recent value before it.
func (s *Series) ValueAsOf(day Date) (on Date, v float64, ok bool) {
	i, found := slices.BinarySearchFunc(s.days, day, func(d, t Date) int {
		switch {
		case d.After(t):
			return 1
		case d.Before(t):
			return -1
		default:
			return 0
		}
	})
	if found {
		return s.days[i], s.values[i], true
	}
	if i == 0 {
		// Everything in the series is after 'day'.
		return Date{}, 0, false
	}
	return s.days[i-1], s.values[i-1], true
}

// Latest returns the last date and value in the series, or ok=false when the
// series is empty.
func (s *Series) Latest() (on Date, v float64, ok bool) {
	last := len(s.days) - 1
	if last < 0 {
		return Date{}, 0, false
	}
	return s.days[last], s.values[last], true
}

// Values returns an iterator over all date/value pairs in chronological order.
func (s *Series) Values() iter.Seq2[Date, float64] {
	return func(yield func(Date, float64) bool) {
		for i, on := range s.days {
			if !yield(on, s.values[i]) {
				return
			}
		}
	}
}

// Dates returns the dates of the series in chronological order.
func (s *Series) Dates() []Date { return slices.Clone(s.days) }

// Filter returns a new series restricted to the points inside r.
func (s *Series) Filter(r Range) *Series {
	out := new(Series)
	for i, on := range s.days {
		if r.Contains(on) {
			out.days = append(out.days, on)
			out.values = append(out.values, s.values[i])
		}
	}
	return out
}

// Resample keeps the last observation of each period and restamps it on the
// period's last day, like a calendar resample of monthly or quarterly data.
func (s *Series) Resample(p Period) *Series {
	out := new(Series)
	for i, on := range s.days {
		// The series is sorted, so a later point in the same period overwrites.
		out.Append(on.EndOf(p), s.values[i])
	}
	return out
}

// Union returns all distinct dates across the given series, sorted.
func Union(series ...*Series) []Date {
	seen := make(map[Date]bool)
	var all []Date
	for _, s := range series {
		if s == nil {
			continue
		}
		for _, on := range s.days {
			if !seen[on] {
				seen[on] = true
				all = append(all, on)
			}
		}
	}
	slices.SortFunc(all, func(a, b Date) int {
		switch {
		case a.Before(b):
			return -1
		case a.After(b):
			return 1
		default:
			return 0
		}
	})
	return all
}
