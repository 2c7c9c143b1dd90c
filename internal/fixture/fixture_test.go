package fixture

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestScheduleFourTeamsFromScratch(t *testing.T) {
	teams := []string{"A", "B", "C", "D"}

	schedule, result := Schedule(teams, nil, testLogger())

	require.Len(t, schedule, 12)
	assert.Equal(t, 12, result.Generated)
	assert.Zero(t, result.Skipped)
	assert.Zero(t, result.Forced)
	assert.Empty(t, result.Errors)

	// Six weeks, two matches per week.
	perWeek := make(map[int]int)
	for _, m := range schedule {
		perWeek[m.Week]++
	}
	require.Len(t, perWeek, 6)
	for week := 1; week <= 6; week++ {
		assert.Equal(t, 2, perWeek[week], "week %d", week)
	}

	// Every ordered pair exactly once: three home and three away per team.
	home := make(map[string]int)
	away := make(map[string]int)
	pairs := make(map[[2]string]int)
	for _, m := range schedule {
		home[m.Home]++
		away[m.Away]++
		pairs[[2]string{m.Home, m.Away}]++
	}
	require.Len(t, pairs, 12)
	for p, n := range pairs {
		assert.Equal(t, 1, n, "pair %v", p)
	}
	for _, team := range teams {
		assert.Equal(t, 3, home[team], "home count for %s", team)
		assert.Equal(t, 3, away[team], "away count for %s", team)
	}

	assertNoDoubleBooking(t, schedule)
}

func TestScheduleOddRosterUsesByeInternally(t *testing.T) {
	schedule, result := Schedule([]string{"A", "B", "C"}, nil, testLogger())

	// 3 teams, double round-robin: 6 matches, and the bye never leaks out.
	require.Len(t, schedule, 6)
	assert.Equal(t, 6, result.Generated)
	for _, m := range schedule {
		assert.NotEqual(t, ByeTeam, m.Home)
		assert.NotEqual(t, ByeTeam, m.Away)
	}
	assertNoDoubleBooking(t, schedule)
}

func TestScheduleSkipsPairsAlreadyFixed(t *testing.T) {
	fixed := []Placement{
		{Home: "A", Away: "B", Week: 1},
		{Home: "C", Away: "D", Week: 1},
	}

	schedule, result := Schedule([]string{"A", "B", "C", "D"}, fixed, testLogger())

	require.Len(t, schedule, 12)
	assert.Equal(t, 10, result.Generated)
	assert.Equal(t, 2, result.Skipped)

	count := 0
	for _, m := range schedule {
		if m.Home == "A" && m.Away == "B" {
			count++
			assert.Equal(t, 1, m.Week, "fixed placement keeps its week")
		}
	}
	assert.Equal(t, 1, count, "fixed pair appears exactly once")
	assertNoDoubleBooking(t, schedule)
}

func TestScheduleGeneratesAfterLastFixedWeek(t *testing.T) {
	fixed := []Placement{
		{Home: "A", Away: "B", Week: 3},
		{Home: "C", Away: "D", Week: 3},
	}

	schedule, _ := Schedule([]string{"A", "B", "C", "D"}, fixed, testLogger())

	for _, m := range schedule {
		if m.Week < 3 {
			t.Fatalf("generated placement %v before the last fixed week", m)
		}
	}
}

func TestScheduleRosterTooSmall(t *testing.T) {
	fixed := []Placement{{Home: "X", Away: "Y", Week: 2}}

	schedule, result := Schedule([]string{"A"}, fixed, testLogger())

	assert.Equal(t, fixed, schedule, "fixed set returned unchanged")
	require.Len(t, result.Errors, 1)
	assert.Zero(t, result.Generated)
}

func TestScheduleSortedByWeekThenTeams(t *testing.T) {
	schedule, _ := Schedule([]string{"D", "B", "A", "C"}, nil, testLogger())

	for i := 1; i < len(schedule); i++ {
		prev, cur := schedule[i-1], schedule[i]
		if prev.Week != cur.Week {
			assert.Less(t, prev.Week, cur.Week)
			continue
		}
		if prev.Home != cur.Home {
			assert.Less(t, prev.Home, cur.Home)
			continue
		}
		assert.Less(t, prev.Away, cur.Away)
	}
}

func TestScheduleLargerLeagueCompleteAndConflictFree(t *testing.T) {
	teams := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

	schedule, result := Schedule(teams, nil, testLogger())

	require.Len(t, schedule, len(teams)*(len(teams)-1))
	assert.Zero(t, result.Forced)
	assertNoDoubleBooking(t, schedule)
}

func TestRoundRobinPairsCoverAllOrderedPairs(t *testing.T) {
	roster := []string{"A", "B", "C", "D", "E", "F"}

	pairs := roundRobinPairs(roster)

	require.Len(t, pairs, len(roster)*(len(roster)-1))
	seen := make(map[pair]bool, len(pairs))
	for _, p := range pairs {
		assert.False(t, seen[p], "duplicate pair %v", p)
		seen[p] = true
	}
}

// assertNoDoubleBooking verifies one match per team per week.
func assertNoDoubleBooking(t *testing.T, schedule []Placement) {
	t.Helper()
	busy := make(map[int]map[string]bool)
	for _, m := range schedule {
		if busy[m.Week] == nil {
			busy[m.Week] = make(map[string]bool)
		}
		for _, team := range []string{m.Home, m.Away} {
			if busy[m.Week][team] {
				t.Fatalf("team %s double-booked in week %d", team, m.Week)
			}
			busy[m.Week][team] = true
		}
	}
}
