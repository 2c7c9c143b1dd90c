// Package standings folds completed matches into a points table with a
// linear projection to the end of the season.
package standings

import (
	"sort"

	"github.com/fixturecast/fixturecast/internal/store"
)

// Row is one team's standing.
type Row struct {
	Team            string `json:"team"`
	Points          int    `json:"points"`
	Played          int    `json:"played"`
	Wins            int    `json:"wins"`
	Draws           int    `json:"draws"`
	Losses          int    `json:"losses"`
	ProjectedPoints int    `json:"projected_points"`
}

// Compute builds the table from completed matches. Roster teams always
// appear, even with zero matches played; teams found only in results are
// appended in first-seen order. seasonLength is the total number of rounds
// in a full double round-robin for the roster.
//
// Sort order is descending points only. Ties keep first-seen order (stable
// sort); no further tie-breaking is applied.
func Compute(roster []string, results []store.MatchRecord, seasonLength int) []Row {
	index := make(map[string]int, len(roster))
	rows := make([]Row, 0, len(roster))
	get := func(team string) *Row {
		if i, ok := index[team]; ok {
			return &rows[i]
		}
		index[team] = len(rows)
		rows = append(rows, Row{Team: team})
		return &rows[len(rows)-1]
	}

	for _, team := range roster {
		get(team)
	}

	for _, m := range results {
		if store.ValidateRecord(m) != nil {
			continue
		}
		home, away := get(m.HomeTeam), get(m.AwayTeam)
		home.Played++
		away.Played++

		switch {
		case m.HomeGoals > m.AwayGoals:
			home.Wins++
			home.Points += 3
			away.Losses++
		case m.HomeGoals < m.AwayGoals:
			away.Wins++
			away.Points += 3
			home.Losses++
		default:
			home.Draws++
			home.Points++
			away.Draws++
			away.Points++
		}
	}

	for i := range rows {
		played := rows[i].Played
		if played < 1 {
			played = 1
		}
		rows[i].ProjectedPoints = int(float64(rows[i].Points) / float64(played) * float64(seasonLength))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Points > rows[j].Points
	})
	return rows
}
