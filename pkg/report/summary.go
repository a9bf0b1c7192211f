package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"digital.vasic.typeassert/pkg/suite"
)

// Summary aggregates the results of one run.
type Summary struct {
	RunID         string         `json:"run_id"`
	GeneratedAt   time.Time      `json:"generated_at"`
	Suites        []SuiteSummary `json:"suites"`
	TotalSuites   int            `json:"total_suites"`
	PassedSuites  int            `json:"passed_suites"`
	FailedSuites  int            `json:"failed_suites"`
	SkippedSuites int            `json:"skipped_suites"`
	ErrorSuites   int            `json:"error_suites"`
	TotalChecks   int            `json:"total_checks"`
	PassedChecks  int            `json:"passed_checks"`
	TotalDuration time.Duration  `json:"total_duration"`
	PassRate      float64        `json:"pass_rate"`
}

// SuiteSummary condenses one suite result.
type SuiteSummary struct {
	Suite        string        `json:"suite"`
	Category     string        `json:"category,omitempty"`
	Status       string        `json:"status"`
	Duration     time.Duration `json:"duration"`
	ChecksPassed int           `json:"checks_passed"`
	ChecksTotal  int           `json:"checks_total"`
	Diagnostics  int           `json:"diagnostics"`
	Error        string        `json:"error,omitempty"`
	Failures     []FailedCheck `json:"failures,omitempty"`
}

// FailedCheck identifies a failing check of a suite.
type FailedCheck struct {
	Type    string `json:"type"`
	Check   string `json:"check"`
	Negated bool   `json:"negated,omitempty"`
	Message string `json:"message"`
}

// Label renders the check as it would be written in a test:
// `Type.not.check`.
func (f FailedCheck) Label() string {
	if f.Negated {
		return f.Type + ".not." + f.Check
	}
	return f.Type + "." + f.Check
}

// BuildSummary aggregates results under a fresh run ID.
func BuildSummary(results []*suite.Result) *Summary {
	summary := &Summary{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
		Suites:      make([]SuiteSummary, 0, len(results)),
	}

	for _, r := range results {
		ss := SuiteSummary{
			Suite:        r.Suite,
			Category:     r.Category,
			Status:       r.Status,
			Duration:     r.Duration,
			ChecksPassed: r.Passed(),
			ChecksTotal:  len(r.Assertions),
			Diagnostics:  len(r.Diagnostics),
			Error:        r.Error,
		}
		for _, a := range r.Assertions {
			if !a.Passed {
				ss.Failures = append(ss.Failures, FailedCheck{
					Type:    a.Type,
					Check:   a.Check,
					Negated: a.Negated,
					Message: a.Message,
				})
			}
		}

		summary.Suites = append(summary.Suites, ss)
		summary.TotalSuites++
		summary.TotalChecks += ss.ChecksTotal
		summary.PassedChecks += ss.ChecksPassed
		summary.TotalDuration += r.Duration

		switch r.Status {
		case suite.StatusPassed:
			summary.PassedSuites++
		case suite.StatusSkipped:
			summary.SkippedSuites++
		case suite.StatusError:
			summary.ErrorSuites++
		default:
			summary.FailedSuites++
		}
	}

	if summary.TotalSuites > 0 {
		summary.PassRate = float64(summary.PassedSuites) / float64(summary.TotalSuites)
	}
	return summary
}

// SaveSummary writes the summary as JSON and Markdown into
// outputDir and points latest_summary.{json,md} at them.
func SaveSummary(summary *Summary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(outputDir, fmt.Sprintf("summary_%s.json", ts))
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0o644); err != nil {
		return fmt.Errorf("write JSON summary: %w", err)
	}

	mdPath := filepath.Join(outputDir, fmt.Sprintf("summary_%s.md", ts))
	if err := os.WriteFile(mdPath, []byte(Markdown(summary)), 0o644); err != nil {
		return fmt.Errorf("write Markdown summary: %w", err)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")
	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

// Markdown renders the summary as a Markdown document.
func Markdown(summary *Summary) string {
	var sb strings.Builder

	sb.WriteString("# Type Assertions - Run Summary\n\n")
	fmt.Fprintf(&sb, "**Run ID:** %s\n\n", summary.RunID)
	fmt.Fprintf(&sb, "**Generated:** %s\n\n", summary.GeneratedAt.Format(time.RFC3339))

	sb.WriteString("## Overview\n\n")
	sb.WriteString("| Suite | Status | Duration | Checks | Diagnostics |\n")
	sb.WriteString("|-------|--------|----------|--------|-------------|\n")
	for _, s := range summary.Suites {
		fmt.Fprintf(&sb, "| %s | %s | %v | %d/%d | %d |\n",
			s.Suite, strings.ToUpper(s.Status), s.Duration,
			s.ChecksPassed, s.ChecksTotal, s.Diagnostics)
	}

	var failing []SuiteSummary
	for _, s := range summary.Suites {
		if len(s.Failures) > 0 || s.Error != "" {
			failing = append(failing, s)
		}
	}
	if len(failing) > 0 {
		sb.WriteString("\n## Failures\n")
		for _, s := range failing {
			fmt.Fprintf(&sb, "\n### %s\n\n", s.Suite)
			if s.Error != "" {
				fmt.Fprintf(&sb, "%s\n\n", s.Error)
			}
			for _, f := range s.Failures {
				fmt.Fprintf(&sb, "- `%s`\n\n```\n%s\n```\n\n", f.Label(), f.Message)
			}
		}
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	fmt.Fprintf(&sb, "| Total Suites | %d |\n", summary.TotalSuites)
	fmt.Fprintf(&sb, "| Passed | %d |\n", summary.PassedSuites)
	fmt.Fprintf(&sb, "| Failed | %d |\n", summary.FailedSuites)
	fmt.Fprintf(&sb, "| Skipped | %d |\n", summary.SkippedSuites)
	fmt.Fprintf(&sb, "| Errors | %d |\n", summary.ErrorSuites)
	fmt.Fprintf(&sb, "| Checks | %d/%d |\n", summary.PassedChecks, summary.TotalChecks)
	fmt.Fprintf(&sb, "| Pass Rate | %.0f%% |\n", summary.PassRate*100)
	fmt.Fprintf(&sb, "| Total Duration | %v |\n", summary.TotalDuration)

	return sb.String()
}

// WriteText writes a compact plain text summary: one line per
// suite, the first line of every failure and a totals line.
func WriteText(w io.Writer, summary *Summary) error {
	var sb strings.Builder
	for _, s := range summary.Suites {
		fmt.Fprintf(&sb, "%-4s %s (%d/%d checks)\n",
			textStatus(s.Status), s.Suite, s.ChecksPassed, s.ChecksTotal)
		if s.Error != "" {
			fmt.Fprintf(&sb, "     %s\n", s.Error)
		}
		for _, f := range s.Failures {
			fmt.Fprintf(&sb, "     %s: %s\n", f.Label(), firstLine(f.Message))
		}
	}
	fmt.Fprintf(&sb, "%d suites: %d passed, %d failed, %d skipped, %d errors (%.0f%%)\n",
		summary.TotalSuites, summary.PassedSuites, summary.FailedSuites,
		summary.SkippedSuites, summary.ErrorSuites, summary.PassRate*100)

	_, err := io.WriteString(w, sb.String())
	return err
}

func textStatus(status string) string {
	switch status {
	case suite.StatusPassed:
		return "PASS"
	case suite.StatusSkipped:
		return "SKIP"
	case suite.StatusError:
		return "ERR"
	default:
		return "FAIL"
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
