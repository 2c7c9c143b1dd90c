// Package season assembles a complete projected season: played matches with
// inferred weeks, externally imported calendar fixtures, synthetically
// scheduled remaining matches, predictions, standings, and goal statistics.
package season

import (
	"fmt"

	"github.com/fixturecast/fixturecast/internal/predict"
	"github.com/fixturecast/fixturecast/internal/standings"
	"github.com/fixturecast/fixturecast/internal/strength"
)

// Status marks whether a match has a result or a prediction. The two are
// mutually exclusive: played matches carry a score and no prediction,
// scheduled matches carry a prediction and no score.
type Status string

const (
	StatusPlayed    Status = "PLAYED"
	StatusScheduled Status = "SCHEDULED"
)

// Score is a final score.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Match is one entry of the full schedule, played or projected.
type Match struct {
	ID         string              `json:"id"`
	HomeTeam   string              `json:"home_team"`
	AwayTeam   string              `json:"away_team"`
	Week       int                 `json:"week"`
	Date       string              `json:"date"`
	Status     Status              `json:"status"`
	Score      *Score              `json:"score"`
	Prediction *predict.Prediction `json:"prediction"`
	Odds       *predict.Odds       `json:"odds,omitempty"`
}

// GoalStats summarizes scoring across the played portion of the season.
type GoalStats struct {
	TotalGoals    int     `json:"total_goals"`
	GoalsPerMatch float64 `json:"goals_per_match"`
	GoalsPerDay   float64 `json:"goals_per_day"`
}

// Export is the assembled season dataset. FullSchedule is the single source
// of truth; standings and stats are views derived from its played subset.
type Export struct {
	SeasonStats   GoalStats         `json:"season_stats"`
	Standings     []standings.Row   `json:"standings"`
	TeamStrengths strength.Profiles `json:"team_strengths"`
	CurrentWeek   int               `json:"current_week"`
	FullSchedule  []Match           `json:"full_schedule"`
}

// Result tracks counts and non-fatal errors from an assembly run.
type Result struct {
	Played    int
	Imported  int
	Generated int
	Forced    int
	Skipped   int
	Errors    []string
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	return fmt.Sprintf("played=%d imported=%d generated=%d forced=%d skipped=%d errors=%d",
		r.Played, r.Imported, r.Generated, r.Forced, r.Skipped, len(r.Errors))
}
