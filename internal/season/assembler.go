package season

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/fixturecast/fixturecast/internal/config"
	"github.com/fixturecast/fixturecast/internal/fixture"
	"github.com/fixturecast/fixturecast/internal/predict"
	"github.com/fixturecast/fixturecast/internal/standings"
	"github.com/fixturecast/fixturecast/internal/store"
	"github.com/fixturecast/fixturecast/internal/strength"
)

const dateLayout = "2006-01-02"

// Input gathers everything the assembler consumes.
type Input struct {
	// BaseResults is the prior-season reference period for strength
	// estimation.
	BaseResults []store.MatchRecord

	// CurrentResults are this season's completed matches.
	CurrentResults []store.MatchRecord

	// Calendar holds externally imported future fixtures with known weeks.
	Calendar []store.CalendarEntry

	// Roster is optional; inferred from CurrentResults (then BaseResults)
	// when empty.
	Roster []string
}

// Assembler orchestrates the engine components into a season Export.
type Assembler struct {
	League  config.LeagueConfig
	Model   *predict.Model
	Workers int
	Logger  *slog.Logger

	// Now is injectable for reproducible scheduled-match dates in tests.
	Now func() time.Time
}

// New creates an assembler for a league with the given prediction model.
func New(league config.LeagueConfig, model *predict.Model, workers int, logger *slog.Logger) *Assembler {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		League:  league,
		Model:   model,
		Workers: workers,
		Logger:  logger,
		Now:     time.Now,
	}
}

// Build runs the whole pipeline: strengths, week inference, calendar merge,
// round-robin fill, parallel prediction, standings, goal stats. It never
// fails outright; degraded inputs produce a degraded but internally
// consistent export, with problems noted in the Result.
func (a *Assembler) Build(in Input) (*Export, Result) {
	var result Result

	profiles := strength.Estimate(in.BaseResults, a.League.AvgGoalsPerTeam)

	roster := a.roster(in)
	seasonLength := 2 * (len(roster) - 1)

	// Played matches, weeks inferred from date order.
	current := validRecords(in.CurrentResults, &result)
	schedule, currentWeek, lastPlayedWeek := playedMatches(current)
	result.Played = len(schedule)

	// Fixed set: played pairs plus imported calendar entries beyond the
	// last played week. Unknown teams and duplicate pairs are skipped.
	fixed := make([]fixture.Placement, 0, len(schedule)+len(in.Calendar))
	pairs := make(map[[2]string]bool, len(schedule))
	for _, m := range schedule {
		fixed = append(fixed, fixture.Placement{Home: m.HomeTeam, Away: m.AwayTeam, Week: m.Week})
		pairs[[2]string{m.HomeTeam, m.AwayTeam}] = true
	}

	rosterSet := make(map[string]bool, len(roster))
	for _, t := range roster {
		rosterSet[t] = true
	}

	for _, e := range in.Calendar {
		key := [2]string{e.HomeTeam, e.AwayTeam}
		switch {
		case e.Week <= lastPlayedWeek, pairs[key]:
			result.Skipped++
		case !rosterSet[e.HomeTeam] || !rosterSet[e.AwayTeam]:
			result.Skipped++
			result.AddErrorf("calendar entry %s vs %s: team not in roster", e.HomeTeam, e.AwayTeam)
		default:
			pairs[key] = true
			fixed = append(fixed, fixture.Placement{Home: e.HomeTeam, Away: e.AwayTeam, Week: e.Week})
			schedule = append(schedule, Match{
				ID:       fmt.Sprintf("fix_ext_%s_%s", e.HomeTeam, e.AwayTeam),
				HomeTeam: e.HomeTeam,
				AwayTeam: e.AwayTeam,
				Week:     e.Week,
				Date:     a.estimateDate(e.Week, lastPlayedWeek),
				Status:   StatusScheduled,
			})
			result.Imported++
		}
	}

	// Fill the rest of the season.
	placements, schedResult := fixture.Schedule(roster, fixed, a.Logger)
	result.Forced = schedResult.Forced
	result.Errors = append(result.Errors, schedResult.Errors...)

	known := make(map[[2]string]bool, len(fixed))
	for _, p := range fixed {
		known[[2]string{p.Home, p.Away}] = true
	}
	for _, p := range placements {
		if known[[2]string{p.Home, p.Away}] {
			continue
		}
		schedule = append(schedule, Match{
			ID:       fmt.Sprintf("fix_sim_%s_%s", p.Home, p.Away),
			HomeTeam: p.Home,
			AwayTeam: p.Away,
			Week:     p.Week,
			Date:     a.estimateDate(p.Week, lastPlayedWeek),
			Status:   StatusScheduled,
		})
		result.Generated++
	}

	a.attachPredictions(schedule, profiles)

	// Deterministic output order regardless of prediction parallelism.
	sort.Slice(schedule, func(i, j int) bool {
		if schedule[i].Week != schedule[j].Week {
			return schedule[i].Week < schedule[j].Week
		}
		return schedule[i].ID < schedule[j].ID
	})

	export := &Export{
		SeasonStats:   goalStats(current),
		Standings:     standings.Compute(roster, current, seasonLength),
		TeamStrengths: profiles,
		CurrentWeek:   currentWeek,
		FullSchedule:  schedule,
	}

	a.Logger.Info("Season assembled",
		"league", a.League.ID,
		"teams", len(roster),
		"matches", len(schedule),
		"current_week", currentWeek,
		"summary", result.Summary())
	return export, result
}

// roster returns the explicit roster, or infers it from current results,
// falling back to the base period. Sorted for deterministic output.
func (a *Assembler) roster(in Input) []string {
	if len(in.Roster) > 0 {
		out := make([]string, len(in.Roster))
		copy(out, in.Roster)
		sort.Strings(out)
		return out
	}

	seen := make(map[string]bool)
	add := func(records []store.MatchRecord) []string {
		var teams []string
		for _, m := range records {
			if store.ValidateRecord(m) != nil {
				continue
			}
			for _, t := range []string{m.HomeTeam, m.AwayTeam} {
				if !seen[t] {
					seen[t] = true
					teams = append(teams, t)
				}
			}
		}
		return teams
	}

	teams := add(in.CurrentResults)
	if len(teams) == 0 {
		teams = add(in.BaseResults)
	}
	sort.Strings(teams)
	return teams
}

// validRecords filters malformed records into the Result; the batch
// continues with whatever survives.
func validRecords(records []store.MatchRecord, result *Result) []store.MatchRecord {
	out := make([]store.MatchRecord, 0, len(records))
	for _, m := range records {
		if err := store.ValidateRecord(m); err != nil {
			result.Skipped++
			result.AddErrorf("skip result %s vs %s: %v", m.HomeTeam, m.AwayTeam, err)
			continue
		}
		out = append(out, m)
	}
	return out
}

// playedMatches converts completed results into schedule entries, inferring
// each match's week from date order: a match's week is one past the most
// games either side has already played. Returns the matches, the current
// week (max games by any team, 1 when nothing is played), and the highest
// assigned week.
func playedMatches(records []store.MatchRecord) ([]Match, int, int) {
	sorted := make([]store.MatchRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	games := make(map[string]int)
	matches := make([]Match, 0, len(sorted))
	lastWeek := 0
	for _, m := range sorted {
		week := games[m.HomeTeam]
		if games[m.AwayTeam] > week {
			week = games[m.AwayTeam]
		}
		week++
		games[m.HomeTeam]++
		games[m.AwayTeam]++
		if week > lastWeek {
			lastWeek = week
		}

		matches = append(matches, Match{
			ID:       fmt.Sprintf("played_%s_%s", m.HomeTeam, m.AwayTeam),
			HomeTeam: m.HomeTeam,
			AwayTeam: m.AwayTeam,
			Week:     week,
			Date:     m.Date,
			Status:   StatusPlayed,
			Score:    &Score{Home: m.HomeGoals, Away: m.AwayGoals},
		})
	}

	currentWeek := 1
	for _, n := range games {
		if n > currentWeek {
			currentWeek = n
		}
	}
	return matches, currentWeek, lastWeek
}

// attachPredictions computes predictions for all scheduled matches using a
// bounded worker pool. Each match depends only on immutable profiles, so the
// work is embarrassingly parallel; workers write disjoint slice elements.
func (a *Assembler) attachPredictions(schedule []Match, profiles strength.Profiles) {
	indexes := make(chan int, len(schedule))
	for i := range schedule {
		if schedule[i].Status == StatusScheduled {
			indexes <- i
		}
	}
	close(indexes)

	workers := a.Workers
	if workers > len(schedule) {
		workers = len(schedule)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				m := &schedule[i]
				pred := a.Model.Predict(m.HomeTeam, m.AwayTeam, profiles)
				odds := predict.DisplayOdds(pred.Probs)
				m.Prediction = &pred
				m.Odds = &odds
			}
		}()
	}
	wg.Wait()
}

// estimateDate projects a scheduled week onto a calendar date, one week of
// real time per match week past the last played one.
func (a *Assembler) estimateDate(week, lastPlayedWeek int) string {
	ahead := week - lastPlayedWeek
	if ahead < 1 {
		ahead = 1
	}
	return a.Now().AddDate(0, 0, 7*ahead).Format(dateLayout)
}

// goalStats summarizes scoring over played matches. GoalsPerDay follows the
// nine-matches-per-day convention of an 18-team round.
func goalStats(records []store.MatchRecord) GoalStats {
	total := 0
	for _, m := range records {
		total += m.HomeGoals + m.AwayGoals
	}
	n := len(records)
	if n == 0 {
		return GoalStats{}
	}
	return GoalStats{
		TotalGoals:    total,
		GoalsPerMatch: math.Round(float64(total)/float64(n)*100) / 100,
		GoalsPerDay:   math.Round(float64(total)/(float64(n)/9)*10) / 10,
	}
}
