package report

import (
	"encoding/json"
	"io"

	"github.com/tidwall/pretty"

	"digital.vasic.typeassert/pkg/suite"
)

// JSONReporter generates JSON reports from suite results.
type JSONReporter struct {
	indent bool
	colors bool
}

// NewJSONReporter creates a JSON reporter. With indent the output
// is indented for readability; with colors it carries ANSI colors
// for terminals.
func NewJSONReporter(indent, colors bool) *JSONReporter {
	return &JSONReporter{
		indent: indent,
		colors: colors,
	}
}

// GenerateReport creates a JSON report for a single suite result.
func (r *JSONReporter) GenerateReport(result *suite.Result) ([]byte, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return r.format(data), nil
}

// GenerateSummary creates a JSON summary of a run.
func (r *JSONReporter) GenerateSummary(results []*suite.Result) ([]byte, error) {
	data, err := json.Marshal(BuildSummary(results))
	if err != nil {
		return nil, err
	}
	return r.format(data), nil
}

// WriteReport writes a JSON report to the specified writer.
func (r *JSONReporter) WriteReport(w io.Writer, result *suite.Result) error {
	data, err := r.GenerateReport(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (r *JSONReporter) format(data []byte) []byte {
	if r.indent {
		data = pretty.PrettyOptions(data, &pretty.Options{
			Width:  80,
			Indent: "  ",
		})
	} else {
		data = append(pretty.Ugly(data), '\n')
	}
	if r.colors {
		data = pretty.Color(data, nil)
	}
	return data
}
