package marketwatch

import (
	"fmt"

	"github.com/ycfang/twmarketwatch/date"
)

// ValueFunc computes the raw value series of a measure over an inclusive date
// range.
type ValueFunc func(rng date.Range) (*date.Series, error)

// ScoreFunc derives a score series from a measure's value series. The rule is
// specific to each measure.
type ScoreFunc func(values *date.Series) (*date.Series, error)

// Registry binds measure ids to their value and score handlers. It is
// populated once at startup; a profile entry whose compute reference resolves
// to no handler fails construction rather than a later lookup.
type Registry struct {
	profile *Profile
	values  map[string]ValueFunc
	scores  map[string]ScoreFunc
}

// NewRegistry returns an empty registry over the given profile.
func NewRegistry(p *Profile) *Registry {
	return &Registry{
		profile: p,
		values:  make(map[string]ValueFunc),
		scores:  make(map[string]ScoreFunc),
	}
}

// Profile returns the profile the registry was built for.
func (r *Registry) Profile() *Profile { return r.profile }

// RegisterValue binds the value handler for a measure id.
func (r *Registry) RegisterValue(id string, fn ValueFunc) { r.values[id] = fn }

// RegisterScore binds the score handler for a measure id.
func (r *Registry) RegisterScore(id string, fn ScoreFunc) { r.scores[id] = fn }

// ComputeValue computes a single measure over rng. The handler's output is
// returned unmodified; its failure is reported as a ComputationError naming
// the measure.
func (r *Registry) ComputeValue(id string, rng date.Range) (*date.Series, error) {
	if !r.profile.Has(id) {
		return nil, &ValidationError{Detail: fmt.Sprintf("measure %q is not in the profile", id)}
	}
	if !rng.Ordered() {
		return nil, &ValidationError{Detail: fmt.Sprintf("date range %s is not ordered", rng)}
	}
	fn, ok := r.values[id]
	if !ok {
		return nil, &ConfigurationError{Detail: fmt.Sprintf("measure %q has no value handler", id)}
	}
	s, err := fn(rng)
	if err != nil {
		return nil, &ComputationError{MeasureID: id, Err: err}
	}
	return s, nil
}

// ComputeValues computes every profile measure that has a value handler, all
// over the same range. A single failing measure aborts the whole batch; there
// is no partial-success mode.
func (r *Registry) ComputeValues(rng date.Range) (map[string]*date.Series, error) {
	if !rng.Ordered() {
		return nil, &ValidationError{Detail: fmt.Sprintf("date range %s is not ordered", rng)}
	}
	out := make(map[string]*date.Series)
	for _, m := range r.profile.Measures() {
		if _, ok := r.values[m.ID]; !ok {
			continue
		}
		s, err := r.ComputeValue(m.ID, rng)
		if err != nil {
			return nil, err
		}
		out[m.ID] = s
	}
	return out, nil
}

// ComputeScore derives the score series for one measure from its value
// series. ok=false means the measure has no scoring rule, which is not an
// error: the report tolerates measures without scores.
func (r *Registry) ComputeScore(id string, values *date.Series) (s *date.Series, ok bool, err error) {
	fn, ok := r.scores[id]
	if !ok {
		return nil, false, nil
	}
	s, err = fn(values)
	if err != nil {
		return nil, true, &ComputationError{MeasureID: id, Err: err}
	}
	return s, true, nil
}

// ComputeScores derives scores for every measure that has both a value series
// and a scoring rule. Measures without a rule are skipped; a failing rule
// aborts.
func (r *Registry) ComputeScores(values map[string]*date.Series) (map[string]*date.Series, error) {
	out := make(map[string]*date.Series)
	for _, m := range r.profile.Measures() {
		v, ok := values[m.ID]
		if !ok {
			continue
		}
		s, ok, err := r.ComputeScore(m.ID, v)
		if err != nil {
			return nil, err
		}
		if ok {
			out[m.ID] = s
		}
	}
	return out, nil
}
