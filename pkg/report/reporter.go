// Package report renders suite results as JSON documents, Markdown
// summaries and plain text, and keeps a JSON Lines run history.
package report

import (
	"io"

	"digital.vasic.typeassert/pkg/suite"
)

// Reporter defines the interface for generating suite reports.
type Reporter interface {
	// GenerateReport creates a report for a single suite result.
	GenerateReport(result *suite.Result) ([]byte, error)

	// GenerateSummary creates a report for a whole run.
	GenerateSummary(results []*suite.Result) ([]byte, error)

	// WriteReport writes a report to the specified writer.
	WriteReport(w io.Writer, result *suite.Result) error
}
