// Package marketwatch assembles Taiwan stock-market indicator reports from
// measure data files. It is a batch pipeline: everything is recomputed fresh
// on every run from three source files, nothing persists in memory between
// runs.
//
// The core functionalities include:
//   - Measure Profile: a JSON registry describing each indicator (display
//     name, unit, one of three fixed categories, and the compute references
//     binding it to its value and score handlers).
//   - Measure Computation: an explicit id-to-handler registry that computes
//     value series over a date range and derives score series from them,
//     batch-wise over the whole profile.
//   - CSV Persistence: wide Big5 CSV files with one row per measure and one
//     column per date, the legacy interchange format of the spreadsheets the
//     data feeds.
//   - Report Assembly: joining value data, score data and profile metadata
//     into per-measure rows grouped by category, with latest-value selection
//     against an as-of date and per-category score summaries.
//
// This package is the foundation of the `twmw` command-line tool; network
// fetching lives in the indistock and twse packages, rendering in renderer
// and web.
package marketwatch
