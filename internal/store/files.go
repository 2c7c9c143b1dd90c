package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadResultsFile loads completed matches from a JSON file. Invalid records
// are skipped into the Result rather than failing the load.
func ReadResultsFile(path string) ([]MatchRecord, Result, error) {
	var result Result

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, result, fmt.Errorf("read results file: %w", err)
	}

	var raw []MatchRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, result, fmt.Errorf("decode results file %s: %w", path, err)
	}

	records := make([]MatchRecord, 0, len(raw))
	for _, m := range raw {
		if err := ValidateRecord(m); err != nil {
			result.Skipped++
			result.AddErrorf("skip %s vs %s: %v", m.HomeTeam, m.AwayTeam, err)
			continue
		}
		records = append(records, m)
		result.Loaded++
	}
	return records, result, nil
}

// ReadCalendarFile loads imported calendar entries from a JSON file.
func ReadCalendarFile(path string) ([]CalendarEntry, Result, error) {
	var result Result

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, result, fmt.Errorf("read calendar file: %w", err)
	}

	var raw []CalendarEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, result, fmt.Errorf("decode calendar file %s: %w", path, err)
	}

	entries := make([]CalendarEntry, 0, len(raw))
	for _, e := range raw {
		if err := ValidateEntry(e); err != nil {
			result.Skipped++
			result.AddErrorf("skip %s vs %s: %v", e.HomeTeam, e.AwayTeam, err)
			continue
		}
		entries = append(entries, e)
		result.Loaded++
	}
	return entries, result, nil
}
