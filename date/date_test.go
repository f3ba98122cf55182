package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Date
	}{
		{"2024/12/1", New(2024, time.December, 1)},
		{"2024-12-01", New(2024, time.December, 1)},
		{"20241201", New(2024, time.December, 1)},
		{"2025/7/31", New(2025, time.July, 31)},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("Parse(%q) = %v want %v", c.in, got, c.want)
		}
	}

	if _, err := Parse("yesterday"); err == nil {
		t.Error("Parse(\"yesterday\") expected an error")
	}
}

func TestString(t *testing.T) {
	d := New(2025, time.July, 1)
	if got := d.String(); got != "2025-07-01" {
		t.Errorf("String() = %q want %q", got, "2025-07-01")
	}
	if got := d.CSV(); got != "2025/07/01" {
		t.Errorf("CSV() = %q want %q", got, "2025/07/01")
	}
}

func TestNormalization(t *testing.T) {
	// Day overflow must normalize, like time.Date does.
	d := New(2024, time.December, 32)
	if want := New(2025, time.January, 1); d != want {
		t.Errorf("New(2024,12,32) = %v want %v", d, want)
	}
}

func TestEndOf(t *testing.T) {
	cases := []struct {
		d    Date
		p    Period
		want Date
	}{
		{New(2024, time.February, 10), Monthly, New(2024, time.February, 29)},
		{New(2025, time.February, 10), Monthly, New(2025, time.February, 28)},
		{New(2025, time.May, 5), Quarterly, New(2025, time.June, 30)},
		{New(2025, time.May, 5), Yearly, New(2025, time.December, 31)},
		{New(2025, time.July, 2), Weekly, New(2025, time.July, 6)}, // Wed -> Sun
		{New(2025, time.July, 2), Daily, New(2025, time.July, 2)},
	}
	for _, c := range cases {
		if got := c.d.EndOf(c.p); got != c.want {
			t.Errorf("%v.EndOf(%v) = %v want %v", c.d, c.p, got, c.want)
		}
	}
}

func TestRange(t *testing.T) {
	r := Range{From: MustParse("2024-01-01"), To: MustParse("2024-03-31")}
	if !r.Ordered() {
		t.Error("Ordered() = false want true")
	}
	if !r.Contains(MustParse("2024-01-01")) || !r.Contains(MustParse("2024-03-31")) {
		t.Error("Contains must include both boundaries")
	}
	if r.Contains(MustParse("2024-04-01")) {
		t.Error("Contains(2024-04-01) = true want false")
	}
	bad := Range{From: r.To, To: r.From}
	if bad.Ordered() {
		t.Error("reversed range reported as ordered")
	}
}
