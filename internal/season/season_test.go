package season

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixturecast/fixturecast/internal/config"
	"github.com/fixturecast/fixturecast/internal/predict"
	"github.com/fixturecast/fixturecast/internal/store"
)

func testAssembler(t *testing.T) *Assembler {
	t.Helper()
	league := config.LeagueConfig{
		ID:              "L1",
		BaseHomeGoals:   1.45,
		BaseAwayGoals:   1.25,
		AvgGoalsPerTeam: 1.35,
		CurrentSeason:   "2025-2026",
	}
	model := predict.NewModel(league.BaseHomeGoals, league.BaseAwayGoals, predict.GridStrategy{})
	a := New(league, model, 4, slog.New(slog.NewTextHandler(io.Discard, nil)))
	a.Now = func() time.Time { return time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) }
	return a
}

func TestBuildCompleteSeasonFromPartialResults(t *testing.T) {
	a := testAssembler(t)

	in := Input{
		BaseResults: []store.MatchRecord{
			{Date: "2025-03-01", HomeTeam: "A", AwayTeam: "B", HomeGoals: 2, AwayGoals: 0},
			{Date: "2025-03-08", HomeTeam: "C", AwayTeam: "D", HomeGoals: 1, AwayGoals: 1},
		},
		CurrentResults: []store.MatchRecord{
			{Date: "2025-08-10", HomeTeam: "A", AwayTeam: "B", HomeGoals: 3, AwayGoals: 1},
			{Date: "2025-08-10", HomeTeam: "C", AwayTeam: "D", HomeGoals: 0, AwayGoals: 0},
		},
	}

	export, result := a.Build(in)

	// Four teams, double round-robin: 12 matches total.
	require.Len(t, export.FullSchedule, 12)
	assert.Equal(t, 2, result.Played)
	assert.Equal(t, 10, result.Generated)
	assert.Equal(t, 1, export.CurrentWeek)

	played, scheduled := 0, 0
	for _, m := range export.FullSchedule {
		switch m.Status {
		case StatusPlayed:
			played++
			require.NotNil(t, m.Score)
			assert.Nil(t, m.Prediction, "played match %s must not carry a prediction", m.ID)
		case StatusScheduled:
			scheduled++
			assert.Nil(t, m.Score)
			require.NotNil(t, m.Prediction, "scheduled match %s must carry a prediction", m.ID)
			require.NotNil(t, m.Odds)
			assert.InDelta(t, 1.0,
				m.Prediction.Probs.Home+m.Prediction.Probs.Draw+m.Prediction.Probs.Away, 1e-9)
		default:
			t.Fatalf("unexpected status %q", m.Status)
		}
	}
	assert.Equal(t, 2, played)
	assert.Equal(t, 10, scheduled)

	require.Len(t, export.Standings, 4)
	assert.Equal(t, "A", export.Standings[0].Team)
	assert.Equal(t, 3, export.Standings[0].Points)

	assert.Len(t, export.TeamStrengths, 4)
	assert.Equal(t, 4, export.SeasonStats.TotalGoals)
	assert.InDelta(t, 2.0, export.SeasonStats.GoalsPerMatch, 1e-9)
}

func TestBuildDeterministicOrderAcrossRuns(t *testing.T) {
	a := testAssembler(t)
	in := Input{
		CurrentResults: []store.MatchRecord{
			{Date: "2025-08-10", HomeTeam: "A", AwayTeam: "B", HomeGoals: 1, AwayGoals: 0},
			{Date: "2025-08-10", HomeTeam: "C", AwayTeam: "D", HomeGoals: 2, AwayGoals: 2},
		},
	}

	first, _ := a.Build(in)
	second, _ := a.Build(in)

	require.Equal(t, len(first.FullSchedule), len(second.FullSchedule))
	for i := range first.FullSchedule {
		assert.Equal(t, first.FullSchedule[i].ID, second.FullSchedule[i].ID)
		assert.Equal(t, first.FullSchedule[i].Week, second.FullSchedule[i].Week)
	}

	for i := 1; i < len(first.FullSchedule); i++ {
		prev, cur := first.FullSchedule[i-1], first.FullSchedule[i]
		if prev.Week == cur.Week {
			assert.Less(t, prev.ID, cur.ID)
		} else {
			assert.Less(t, prev.Week, cur.Week)
		}
	}
}

func TestBuildMergesCalendarEntries(t *testing.T) {
	a := testAssembler(t)
	in := Input{
		Roster: []string{"A", "B", "C", "D"},
		CurrentResults: []store.MatchRecord{
			{Date: "2025-08-10", HomeTeam: "A", AwayTeam: "B", HomeGoals: 1, AwayGoals: 0},
		},
		Calendar: []store.CalendarEntry{
			{HomeTeam: "C", AwayTeam: "D", Week: 2},
			{HomeTeam: "A", AwayTeam: "B", Week: 3}, // duplicate of a played pair
			{HomeTeam: "A", AwayTeam: "Z", Week: 4}, // unknown team
			{HomeTeam: "B", AwayTeam: "C", Week: 1}, // not beyond the last played week
		},
	}

	export, result := a.Build(in)

	assert.Equal(t, 1, result.Imported)
	assert.GreaterOrEqual(t, result.Skipped, 3)

	var imported *Match
	for i, m := range export.FullSchedule {
		if strings.HasPrefix(m.ID, "fix_ext_") {
			require.Nil(t, imported, "exactly one imported entry expected")
			imported = &export.FullSchedule[i]
		}
	}
	require.NotNil(t, imported)
	assert.Equal(t, "C", imported.HomeTeam)
	assert.Equal(t, "D", imported.AwayTeam)
	assert.Equal(t, 2, imported.Week)
	assert.Equal(t, StatusScheduled, imported.Status)
}

func TestBuildSkipsInvalidResults(t *testing.T) {
	a := testAssembler(t)
	in := Input{
		Roster: []string{"A", "B"},
		CurrentResults: []store.MatchRecord{
			{Date: "2025-08-10", HomeTeam: "A", AwayTeam: "A", HomeGoals: 1, AwayGoals: 0},
			{Date: "2025-08-17", HomeTeam: "A", AwayTeam: "B", HomeGoals: 2, AwayGoals: 1},
		},
	}

	export, result := a.Build(in)

	assert.Equal(t, 1, result.Played)
	assert.Equal(t, 1, result.Skipped)
	require.NotEmpty(t, result.Errors)
	require.Len(t, export.FullSchedule, 2)
}

func TestBuildEmptyInputDegradesGracefully(t *testing.T) {
	a := testAssembler(t)

	export, result := a.Build(Input{})

	assert.Empty(t, export.FullSchedule)
	assert.Equal(t, 1, export.CurrentWeek)
	assert.Empty(t, export.Standings)
	assert.Zero(t, export.SeasonStats.TotalGoals)
	assert.Zero(t, result.Played)
}

func TestPlayedMatchesWeekInference(t *testing.T) {
	records := []store.MatchRecord{
		{Date: "2025-08-24", HomeTeam: "A", AwayTeam: "C", HomeGoals: 1, AwayGoals: 1},
		{Date: "2025-08-10", HomeTeam: "A", AwayTeam: "B", HomeGoals: 2, AwayGoals: 0},
		{Date: "2025-08-17", HomeTeam: "C", AwayTeam: "B", HomeGoals: 0, AwayGoals: 3},
	}

	matches, currentWeek, lastWeek := playedMatches(records)

	require.Len(t, matches, 3)
	// Date order: A-B first (week 1), then C-B (week 1: neither has played),
	// then A-C (week 2: both played once).
	byID := make(map[string]Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}
	assert.Equal(t, 1, byID["played_A_B"].Week)
	assert.Equal(t, 1, byID["played_C_B"].Week)
	assert.Equal(t, 2, byID["played_A_C"].Week)
	assert.Equal(t, 2, currentWeek)
	assert.Equal(t, 2, lastWeek)
}

func TestPlayedMatchesEmpty(t *testing.T) {
	matches, currentWeek, lastWeek := playedMatches(nil)

	assert.Empty(t, matches)
	assert.Equal(t, 1, currentWeek)
	assert.Zero(t, lastWeek)
}

func TestRosterInference(t *testing.T) {
	a := testAssembler(t)

	roster := a.roster(Input{
		CurrentResults: []store.MatchRecord{
			{HomeTeam: "D", AwayTeam: "B", HomeGoals: 0, AwayGoals: 0},
			{HomeTeam: "C", AwayTeam: "A", HomeGoals: 1, AwayGoals: 0},
		},
	})
	assert.Equal(t, []string{"A", "B", "C", "D"}, roster)

	// Falls back to the base period when the current season is empty.
	roster = a.roster(Input{
		BaseResults: []store.MatchRecord{
			{HomeTeam: "X", AwayTeam: "Y", HomeGoals: 1, AwayGoals: 0},
		},
	})
	assert.Equal(t, []string{"X", "Y"}, roster)
}

func TestGoalStats(t *testing.T) {
	records := []store.MatchRecord{
		{HomeTeam: "A", AwayTeam: "B", HomeGoals: 3, AwayGoals: 1},
		{HomeTeam: "C", AwayTeam: "D", HomeGoals: 0, AwayGoals: 2},
	}

	stats := goalStats(records)

	assert.Equal(t, 6, stats.TotalGoals)
	assert.InDelta(t, 3.0, stats.GoalsPerMatch, 1e-9)
	assert.InDelta(t, 27.0, stats.GoalsPerDay, 1e-9)
}
