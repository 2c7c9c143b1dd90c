package fixture

import (
	"log/slog"
	"sort"
)

// Schedule merges the externally fixed matches (played or imported) with
// synthetically generated ones so that every ordered pair of distinct teams
// appears exactly once across the season. The returned slice is the union of
// fixed and generated placements, sorted by (week, home, away).
//
// Generated placements honor the one-match-per-team-per-week invariant. When
// no conflict-free week exists within the lookahead window, the pair is
// force-placed right after the cursor rather than failing; this best-effort
// relaxation can in rare configurations double-book a team and is surfaced
// through Result.Forced and a warning log, never an error.
func Schedule(teams []string, fixed []Placement, logger *slog.Logger) ([]Placement, Result) {
	if logger == nil {
		logger = slog.Default()
	}
	var result Result

	if len(teams) < 2 {
		result.AddErrorf("roster of %d teams is too small to schedule", len(teams))
		out := make([]Placement, len(fixed))
		copy(out, fixed)
		sortPlacements(out)
		return out, result
	}

	// Pad odd rosters with the bye placeholder so every round pairs all
	// entries. Pairs involving the bye are dropped at generation.
	roster := make([]string, len(teams))
	copy(roster, teams)
	hasBye := false
	if len(roster)%2 != 0 {
		roster = append(roster, ByeTeam)
		hasBye = true
	}

	// Index the fixed set: ordered-pair identities plus per-week occupancy.
	seen := make(map[pair]bool, len(fixed))
	occupancy := make(map[int]map[string]bool)
	lastPlayedWeek := 0
	for _, m := range fixed {
		seen[pair{m.Home, m.Away}] = true
		commit(occupancy, m)
		if m.Week > lastPlayedWeek {
			lastPlayedWeek = m.Week
		}
	}

	// A full week engages every real team; the bye entry sidelines two
	// slots (the bye itself and its phantom opponent).
	fullWeekTeams := len(roster)
	if hasBye {
		fullWeekTeams = len(roster) - 2
	}

	schedule := make([]Placement, len(fixed))
	copy(schedule, fixed)

	cursor := lastPlayedWeek + 1
	for _, p := range roundRobinPairs(roster) {
		if seen[p] {
			result.Skipped++
			continue
		}
		seen[p] = true

		week := -1
		for w, tries := cursor, 0; tries < lookaheadWeeks; w, tries = w+1, tries+1 {
			if !occupancy[w][p.home] && !occupancy[w][p.away] {
				week = w
				break
			}
		}
		if week == -1 {
			week = cursor + 1
			result.Forced++
			logger.Warn("No conflict-free week within lookahead, forcing placement",
				"home", p.home, "away", p.away, "week", week)
		}

		placed := Placement{Home: p.home, Away: p.away, Week: week}
		commit(occupancy, placed)
		schedule = append(schedule, placed)
		result.Generated++

		// Advance the cursor once its week holds a full round, keeping the
		// calendar compact rather than front-loaded.
		if len(occupancy[cursor]) >= fullWeekTeams {
			cursor++
		}
	}

	sortPlacements(schedule)
	logger.Info("Schedule generated", "teams", len(teams), "fixed", len(fixed), "summary", result.Summary())
	return schedule, result
}

// roundRobinPairs produces the canonical double round-robin pairing order
// for an even-sized roster: the anchor entry stays put while the rest rotate
// through n-1 rounds, each round pairing the row ends inward; mirroring every
// round with swapped venues yields the return leg. Every unordered pair of
// real teams appears exactly twice, once with each team at home.
func roundRobinPairs(roster []string) []pair {
	n := len(roster)
	rotating := make([]string, n-1)
	copy(rotating, roster[1:])

	firstLeg := make([]pair, 0, n*(n-1)/2)
	for round := 0; round < n-1; round++ {
		row := make([]string, 0, n)
		row = append(row, roster[0])
		row = append(row, rotating...)
		for j := 0; j < n/2; j++ {
			t1, t2 := row[j], row[n-1-j]
			if t1 != ByeTeam && t2 != ByeTeam {
				firstLeg = append(firstLeg, pair{t1, t2})
			}
		}
		// Rotate right, anchor excluded
		last := rotating[len(rotating)-1]
		copy(rotating[1:], rotating[:len(rotating)-1])
		rotating[0] = last
	}

	pairs := make([]pair, 0, 2*len(firstLeg))
	pairs = append(pairs, firstLeg...)
	for _, p := range firstLeg {
		pairs = append(pairs, pair{p.away, p.home})
	}
	return pairs
}

func commit(occupancy map[int]map[string]bool, m Placement) {
	if occupancy[m.Week] == nil {
		occupancy[m.Week] = make(map[string]bool)
	}
	occupancy[m.Week][m.Home] = true
	occupancy[m.Week][m.Away] = true
}

func sortPlacements(placements []Placement) {
	sort.Slice(placements, func(i, j int) bool {
		a, b := placements[i], placements[j]
		if a.Week != b.Week {
			return a.Week < b.Week
		}
		if a.Home != b.Home {
			return a.Home < b.Home
		}
		return a.Away < b.Away
	})
}
