package marketwatch

import "fmt"

// The pipeline's failures fall in a small closed taxonomy. All of them are
// fatal to the run: the tools report the offending measure or path and exit
// non-zero, without partial recovery.

// ConfigurationError reports an invalid measure profile: a missing required
// field, an unrecognized category, or a compute reference that binds to no
// known handler.
type ConfigurationError struct {
	Detail string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Detail, e.Err)
	}
	return "configuration error: " + e.Detail
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// FileAccessError reports a missing or unreadable input or output file.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("cannot access %q: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError reports malformed JSON or CSV content. Source names the file or
// stream the content came from.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("format error in %q: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ComputationError reports a failing per-measure handler, naming the measure.
type ComputationError struct {
	MeasureID string
	Err       error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computing measure %q: %v", e.MeasureID, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }

// ValidationError reports a bad request made to the pipeline, typically an
// unknown measure id or an ill-ordered date range.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return "invalid request: " + e.Detail }
