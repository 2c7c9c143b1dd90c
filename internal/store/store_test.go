package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRecord(t *testing.T) {
	valid := MatchRecord{Date: "2025-08-10", HomeTeam: "A", AwayTeam: "B", HomeGoals: 2, AwayGoals: 1}
	assert.NoError(t, ValidateRecord(valid))

	cases := []struct {
		name   string
		record MatchRecord
	}{
		{"missing home team", MatchRecord{AwayTeam: "B"}},
		{"blank away team", MatchRecord{HomeTeam: "A", AwayTeam: "   "}},
		{"self play", MatchRecord{HomeTeam: "A", AwayTeam: "A"}},
		{"negative goals", MatchRecord{HomeTeam: "A", AwayTeam: "B", HomeGoals: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, ValidateRecord(tc.record))
		})
	}
}

func TestValidateEntry(t *testing.T) {
	assert.NoError(t, ValidateEntry(CalendarEntry{HomeTeam: "A", AwayTeam: "B", Week: 1}))
	assert.Error(t, ValidateEntry(CalendarEntry{HomeTeam: "A", AwayTeam: "B", Week: 0}))
	assert.Error(t, ValidateEntry(CalendarEntry{HomeTeam: "A", AwayTeam: "A", Week: 3}))
	assert.Error(t, ValidateEntry(CalendarEntry{AwayTeam: "B", Week: 3}))
}

func TestReadResultsFileSkipsInvalidRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	payload := `[
		{"date": "2025-08-10", "season": "2025-2026", "home_team": "A", "away_team": "B", "home_goals": 2, "away_goals": 1},
		{"date": "2025-08-10", "season": "2025-2026", "home_team": "C", "away_team": "C", "home_goals": 1, "away_goals": 1},
		{"date": "2025-08-17", "season": "2025-2026", "home_team": "C", "away_team": "D", "home_goals": 0, "away_goals": 0}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	records, result, err := ReadResultsFile(path)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, result.Loaded)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "A", records[0].HomeTeam)
	assert.Equal(t, 2, records[0].HomeGoals)
}

func TestReadResultsFileErrors(t *testing.T) {
	_, _, err := ReadResultsFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, _, err = ReadResultsFile(path)
	assert.Error(t, err)
}

func TestReadCalendarFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.json")
	payload := `[
		{"home_team": "A", "away_team": "B", "week": 5},
		{"home_team": "C", "away_team": "D", "week": 0}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	entries, result, err := ReadCalendarFile(path)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, result.Loaded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 5, entries[0].Week)
}

func TestResultSummary(t *testing.T) {
	r := Result{Loaded: 3, Upserted: 2, Skipped: 1}
	r.AddErrorf("bad record %d", 7)

	assert.Equal(t, "loaded=3 upserted=2 skipped=1 errors=1", r.Summary())
	assert.Equal(t, "bad record 7", r.Errors[0])
}
