package marketwatch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Category is the closed classification of a measure. It is explicit data in
// the profile, never inferred, and an unknown value is a fatal configuration
// error.
type Category int

const (
	Macro Category = iota
	Technical
	Valuation
)

func (c Category) String() string {
	switch c {
	case Macro:
		return "Macro"
	case Technical:
		return "Technical"
	case Valuation:
		return "Valuation"
	default:
		panic(fmt.Sprintf("unknown category %d", c))
	}
}

// Label returns the traditional label used in the legacy spreadsheets.
func (c Category) Label() string {
	switch c {
	case Macro:
		return "總經面指標"
	case Technical:
		return "技術面指標"
	case Valuation:
		return "評價面指標"
	default:
		panic(fmt.Sprintf("unknown category %d", c))
	}
}

// ParseCategory parses a category token. Legacy profiles use the Chinese
// labels, newer ones the English tokens; both are accepted.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "Macro", "macro", "總經面指標":
		return Macro, nil
	case "Technical", "technical", "技術面指標":
		return Technical, nil
	case "Valuation", "valuation", "評價面指標":
		return Valuation, nil
	default:
		return Macro, fmt.Errorf("unrecognized category %q", s)
	}
}

// Measure describes a single indicator declared in the profile.
type Measure struct {
	ID       string
	Name     string
	Unit     string
	Category Category
	ValueRef string // names the value handler, may be empty
	ScoreRef string // names the score handler, may be empty
}

// Profile is the registry of measures, keyed by id, preserving the
// declaration order of the source document. It is loaded once per run and
// never mutated afterwards.
type Profile struct {
	measures []*Measure
	index    map[string]*Measure
}

// Len returns the number of measures declared.
func (p *Profile) Len() int { return len(p.measures) }

// Has reports whether a measure id is declared.
func (p *Profile) Has(id string) bool { _, ok := p.index[id]; return ok }

// Get returns the measure declared under id, or nil.
func (p *Profile) Get(id string) *Measure { return p.index[id] }

// Measures returns all measures in declaration order.
func (p *Profile) Measures() []*Measure { return p.measures }

// Categories returns the categories present in the profile, in order of first
// appearance.
func (p *Profile) Categories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, m := range p.measures {
		if !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	return out
}

// jmeasure is the JSON shape of a profile entry; the measure id is the key.
type jmeasure struct {
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Category  string `json:"category"`
	FuncValue string `json:"func_value"`
	FuncScore string `json:"func_score"`
}

// DecodeProfile parses a measure profile from UTF-8 JSON. The document is an
// object keyed by measure id; key order is preserved, so the profile carries
// the declaration order used for report layout.
func DecodeProfile(r io.Reader, source string) (*Profile, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("want a JSON object, got %v", tok)}
	}

	p := &Profile{index: make(map[string]*Measure)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Source: source, Err: err}
		}
		id, ok := tok.(string)
		if !ok || id == "" {
			return nil, &ParseError{Source: source, Err: fmt.Errorf("invalid measure id %v", tok)}
		}

		var jm jmeasure
		if err := dec.Decode(&jm); err != nil {
			return nil, &ParseError{Source: source, Err: fmt.Errorf("measure %q: %w", id, err)}
		}
		if jm.Name == "" {
			return nil, &ConfigurationError{Detail: fmt.Sprintf("measure %q has no name", id)}
		}
		if jm.Category == "" {
			return nil, &ConfigurationError{Detail: fmt.Sprintf("measure %q has no category", id)}
		}
		cat, err := ParseCategory(jm.Category)
		if err != nil {
			return nil, &ConfigurationError{Detail: fmt.Sprintf("measure %q", id), Err: err}
		}
		if p.Has(id) {
			return nil, &ConfigurationError{Detail: fmt.Sprintf("measure %q is declared twice", id)}
		}

		m := &Measure{
			ID:       id,
			Name:     jm.Name,
			Unit:     jm.Unit,
			Category: cat,
			ValueRef: jm.FuncValue,
			ScoreRef: jm.FuncScore,
		}
		p.measures = append(p.measures, m)
		p.index[id] = m
	}

	if _, err := dec.Token(); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	return p, nil
}

// LoadProfile reads and decodes a measure profile file.
func LoadProfile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	defer f.Close()
	return DecodeProfile(f, path)
}
