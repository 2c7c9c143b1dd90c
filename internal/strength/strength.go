// Package strength estimates per-team attack and defense coefficients from a
// base period of completed matches, normalized by a fixed league-average
// constant. Coefficients are centered near 1.0; a league-average team scores
// and concedes at exactly 1.0.
package strength

import "github.com/fixturecast/fixturecast/internal/store"

// defaultAvgGoals guards against a zero calibration constant.
const defaultAvgGoals = 1.35

// Profile holds one team's scoring coefficients.
type Profile struct {
	Attack  float64 `json:"attack"`
	Defense float64 `json:"defense"`
}

// Neutral is the fallback profile for teams absent from the base data.
// The engine degrades gracefully for newly promoted teams instead of failing.
var Neutral = Profile{Attack: 1.0, Defense: 1.0}

// Profiles maps team identifier to profile.
type Profiles map[string]Profile

// Get returns the team's profile, or the neutral default when missing.
func (p Profiles) Get(team string) Profile {
	if prof, ok := p[team]; ok {
		return prof
	}
	return Neutral
}

// Estimate computes profiles from completed matches. For each team it
// accumulates goals for, goals against, and matches played across home and
// away appearances, then divides the per-match averages by the league
// calibration constant. Records that fail validation are ignored.
func Estimate(records []store.MatchRecord, avgGoalsPerTeam float64) Profiles {
	if avgGoalsPerTeam <= 0 {
		avgGoalsPerTeam = defaultAvgGoals
	}

	type tally struct {
		goalsFor     int
		goalsAgainst int
		played       int
	}
	tallies := make(map[string]*tally)
	get := func(team string) *tally {
		if t, ok := tallies[team]; ok {
			return t
		}
		t := &tally{}
		tallies[team] = t
		return t
	}

	for _, m := range records {
		if store.ValidateRecord(m) != nil {
			continue
		}
		h, a := get(m.HomeTeam), get(m.AwayTeam)
		h.goalsFor += m.HomeGoals
		h.goalsAgainst += m.AwayGoals
		h.played++
		a.goalsFor += m.AwayGoals
		a.goalsAgainst += m.HomeGoals
		a.played++
	}

	profiles := make(Profiles, len(tallies))
	for team, t := range tallies {
		if t.played == 0 {
			continue
		}
		profiles[team] = Profile{
			Attack:  (float64(t.goalsFor) / float64(t.played)) / avgGoalsPerTeam,
			Defense: (float64(t.goalsAgainst) / float64(t.played)) / avgGoalsPerTeam,
		}
	}
	return profiles
}
