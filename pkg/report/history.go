package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"digital.vasic.typeassert/pkg/suite"
)

// HistoricalEntry is one suite run in the history log.
type HistoricalEntry struct {
	Timestamp    time.Time `json:"timestamp"`
	RunID        string    `json:"run_id,omitempty"`
	Suite        string    `json:"suite"`
	Status       string    `json:"status"`
	Duration     string    `json:"duration"`
	ChecksPassed int       `json:"checks_passed"`
	ChecksTotal  int       `json:"checks_total"`
}

// AppendToHistory adds an entry to the history log stored at
// historyPath. Each entry is a single JSON line.
func AppendToHistory(historyPath, runID string, result *suite.Result) error {
	entry := HistoricalEntry{
		Timestamp:    result.EndTime,
		RunID:        runID,
		Suite:        result.Suite,
		Status:       result.Status,
		Duration:     result.Duration.String(),
		ChecksPassed: result.Passed(),
		ChecksTotal:  len(result.Assertions),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	file, err := os.OpenFile(historyPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	_, err = fmt.Fprintln(file, string(data))
	return err
}

// ReadHistory returns the entries of a history log, oldest first.
func ReadHistory(historyPath string) ([]HistoricalEntry, error) {
	file, err := os.Open(historyPath)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []HistoricalEntry
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry HistoricalEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("history line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	return entries, nil
}
