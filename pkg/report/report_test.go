package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.typeassert/pkg/assertion"
	"digital.vasic.typeassert/pkg/matcher"
	"digital.vasic.typeassert/pkg/suite"
)

func sampleResults() []*suite.Result {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []*suite.Result{
		{
			Suite:     "literals",
			Status:    suite.StatusPassed,
			StartTime: start,
			EndTime:   start.Add(time.Millisecond),
			Duration:  time.Millisecond,
			Assertions: []assertion.Result{
				{Type: "L", Check: "isUnion", Outcome: matcher.Passed, Passed: true},
			},
		},
		{
			Suite:     "tuples",
			Category:  "collections",
			Status:    suite.StatusFailed,
			StartTime: start,
			EndTime:   start.Add(2 * time.Millisecond),
			Duration:  2 * time.Millisecond,
			Assertions: []assertion.Result{
				{Type: "C", Check: "isTuple", Outcome: matcher.Failed, Message: "expect(C).isTuple()\n\ndetails"},
				{Type: "C", Check: "isString", Negated: true, Outcome: matcher.Failed, Passed: true},
			},
			Diagnostics: []string{"inline.ts:1:1 - error TS2304: Cannot find name 'X'."},
		},
		{
			Suite:  "broken",
			Status: suite.StatusError,
			Error:  "build source: missing.ts",
		},
		{
			Suite:  "later",
			Status: suite.StatusSkipped,
			Error:  "unmet dependency: broken",
		},
	}
}

func TestBuildSummary(t *testing.T) {
	s := BuildSummary(sampleResults())

	_, err := uuid.Parse(s.RunID)
	require.NoError(t, err)
	assert.Equal(t, 4, s.TotalSuites)
	assert.Equal(t, 1, s.PassedSuites)
	assert.Equal(t, 1, s.FailedSuites)
	assert.Equal(t, 1, s.ErrorSuites)
	assert.Equal(t, 1, s.SkippedSuites)
	assert.Equal(t, 3, s.TotalChecks)
	assert.Equal(t, 2, s.PassedChecks)
	assert.Equal(t, 3*time.Millisecond, s.TotalDuration)
	assert.InDelta(t, 0.25, s.PassRate, 1e-9)

	tuples := s.Suites[1]
	assert.Equal(t, 1, tuples.Diagnostics)
	require.Len(t, tuples.Failures, 1)
	assert.Equal(t, "C.isTuple", tuples.Failures[0].Label())

	assert.NotEqual(t, s.RunID, BuildSummary(nil).RunID)
}

func TestBuildSummary_Empty(t *testing.T) {
	s := BuildSummary(nil)
	assert.Zero(t, s.TotalSuites)
	assert.Zero(t, s.PassRate)
	assert.NotNil(t, s.Suites)
}

func TestFailedCheck_Label(t *testing.T) {
	assert.Equal(t, "A.not.isString", FailedCheck{Type: "A", Check: "isString", Negated: true}.Label())
}

func TestJSONReporter_GenerateReport(t *testing.T) {
	res := sampleResults()[1]

	compact, err := NewJSONReporter(false, false).GenerateReport(res)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(compact), "\n"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(compact, &doc))
	assert.Equal(t, "tuples", doc["suite"])
	checks := doc["assertions"].([]any)
	assert.Equal(t, "failed", checks[0].(map[string]any)["outcome"])

	indented, err := NewJSONReporter(true, false).GenerateReport(res)
	require.NoError(t, err)
	assert.Contains(t, string(indented), "\n  \"suite\": \"tuples\"")
	require.NoError(t, json.Unmarshal(indented, &doc))

	colored, err := NewJSONReporter(true, true).GenerateReport(res)
	require.NoError(t, err)
	assert.Contains(t, string(colored), "\x1b[")
}

func TestJSONReporter_GenerateSummary(t *testing.T) {
	data, err := NewJSONReporter(true, false).GenerateSummary(sampleResults())
	require.NoError(t, err)

	var s Summary
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, 4, s.TotalSuites)
	assert.Len(t, s.Suites, 4)
}

func TestJSONReporter_WriteReport(t *testing.T) {
	var buf bytes.Buffer
	var r Reporter = NewJSONReporter(false, false)
	require.NoError(t, r.WriteReport(&buf, sampleResults()[0]))
	assert.Contains(t, buf.String(), `"suite":"literals"`)
}

func TestMarkdown(t *testing.T) {
	md := Markdown(BuildSummary(sampleResults()))
	assert.Contains(t, md, "| tuples | FAILED | 2ms | 1/2 | 1 |")
	assert.Contains(t, md, "### tuples")
	assert.Contains(t, md, "- `C.isTuple`")
	assert.Contains(t, md, "build source: missing.ts")
	assert.Contains(t, md, "| Pass Rate | 25% |")
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, BuildSummary(sampleResults())))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"PASS literals (1/1 checks)",
		"FAIL tuples (1/2 checks)",
		"     C.isTuple: expect(C).isTuple()",
		"ERR  broken (0/0 checks)",
		"     build source: missing.ts",
		"SKIP later (0/0 checks)",
		"     unmet dependency: broken",
		"4 suites: 1 passed, 1 failed, 1 skipped, 1 errors (25%)",
	}, lines)
}

func TestSaveSummary(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	s := BuildSummary(sampleResults())
	require.NoError(t, SaveSummary(s, dir))

	ts := s.GeneratedAt.Format("20060102_150405")
	data, err := os.ReadFile(filepath.Join(dir, "summary_"+ts+".json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), s.RunID)

	md, err := os.ReadFile(filepath.Join(dir, "latest_summary.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Type Assertions - Run Summary")
}

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	results := sampleResults()

	require.NoError(t, AppendToHistory(path, "run-1", results[0]))
	require.NoError(t, AppendToHistory(path, "run-1", results[1]))

	entries, err := ReadHistory(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "literals", entries[0].Suite)
	assert.Equal(t, "run-1", entries[0].RunID)
	assert.Equal(t, suite.StatusFailed, entries[1].Status)
	assert.Equal(t, 1, entries[1].ChecksPassed)
	assert.Equal(t, 2, entries[1].ChecksTotal)
	assert.Equal(t, "2ms", entries[1].Duration)

	_, err = ReadHistory(filepath.Join(t.TempDir(), "missing.jsonl"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.jsonl")
	require.NoError(t, os.WriteFile(bad, []byte("{\n"), 0o644))
	_, err = ReadHistory(bad)
	assert.Error(t, err)
}
