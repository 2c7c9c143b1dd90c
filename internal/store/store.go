// Package store is the persistence boundary for the engine: completed match
// results, imported calendar entries, and assembled season exports. Records
// can come from Postgres or from plain JSON files; malformed records are
// rejected per-record with the rest of the batch continuing.
package store

import (
	"fmt"
	"strings"
)

// MatchRecord is one completed match as consumed from any source.
type MatchRecord struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Season    string `json:"season"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
}

// CalendarEntry is an externally supplied future fixture with a known week.
type CalendarEntry struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Week     int    `json:"week"`
}

// ValidateRecord checks a match record for the fields the engine depends on.
func ValidateRecord(m MatchRecord) error {
	if strings.TrimSpace(m.HomeTeam) == "" || strings.TrimSpace(m.AwayTeam) == "" {
		return fmt.Errorf("missing team identifier")
	}
	if m.HomeTeam == m.AwayTeam {
		return fmt.Errorf("team %q playing itself", m.HomeTeam)
	}
	if m.HomeGoals < 0 || m.AwayGoals < 0 {
		return fmt.Errorf("negative score %d-%d", m.HomeGoals, m.AwayGoals)
	}
	return nil
}

// ValidateEntry checks a calendar entry.
func ValidateEntry(e CalendarEntry) error {
	if strings.TrimSpace(e.HomeTeam) == "" || strings.TrimSpace(e.AwayTeam) == "" {
		return fmt.Errorf("missing team identifier")
	}
	if e.HomeTeam == e.AwayTeam {
		return fmt.Errorf("team %q playing itself", e.HomeTeam)
	}
	if e.Week < 1 {
		return fmt.Errorf("week %d out of range", e.Week)
	}
	return nil
}

// Result tracks counts and errors from a store operation.
type Result struct {
	Loaded   int
	Upserted int
	Skipped  int
	Errors   []string
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	return fmt.Sprintf("loaded=%d upserted=%d skipped=%d errors=%d",
		r.Loaded, r.Upserted, r.Skipped, len(r.Errors))
}
