// Package predict produces score-line predictions for a single fixture from
// the two teams' strength profiles, using an independent-Poisson goal model.
// Two interchangeable strategies compute the underlying distribution: exact
// grid enumeration and Monte Carlo sampling.
package predict

import (
	"fmt"
	"math"

	"github.com/fixturecast/fixturecast/internal/strength"
)

const (
	// minExpectedGoals clamps expected goals strictly positive.
	minExpectedGoals = 0.05

	// Display odds: fixed overround discount on the model's own
	// probabilities, floored so odds never explode on tiny probabilities.
	overround   = 0.92
	minOddsProb = 0.05

	GoalsOver  = "OVER_2_5"
	GoalsUnder = "UNDER_2_5"

	WinnerDraw = "draw"

	AdviceHomeWin = "home win"
	AdviceAwayWin = "away win"
	AdviceOver    = "over 2.5 goals"
	AdviceDraw    = "risky draw"
	AdviceBTTS    = "both teams to score"
)

// OutcomeProbs is the 1X2 probability triple.
type OutcomeProbs struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// Odds are derived display odds, not a market price.
type Odds struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// Prediction is the full output for one fixture.
type Prediction struct {
	Score            string       `json:"most_likely_score"` // "H-A"
	ScoreConfidence  float64      `json:"score_confidence"`
	Winner           string       `json:"winner"` // team id or "draw"
	WinnerConfidence float64      `json:"winner_confidence"`
	GoalsCall        string       `json:"goals_call"`
	GoalsConfidence  float64      `json:"goals_confidence"`
	Advice           string       `json:"advice"`
	Probs            OutcomeProbs `json:"outcome_probs"`
}

// Model predicts match outcomes. BaseHomeGoals/BaseAwayGoals are the fixed
// league constants; home advantage is encoded in their difference and
// nowhere else.
type Model struct {
	BaseHomeGoals float64
	BaseAwayGoals float64
	Strategy      Strategy
}

// NewModel creates a model with the given base goal constants and strategy.
// A nil strategy falls back to exact enumeration.
func NewModel(baseHome, baseAway float64, strategy Strategy) *Model {
	if strategy == nil {
		strategy = GridStrategy{}
	}
	return &Model{BaseHomeGoals: baseHome, BaseAwayGoals: baseAway, Strategy: strategy}
}

// ExpectedGoals returns the clamped expected-goal pair for a fixture.
func (m *Model) ExpectedGoals(home, away string, profiles strength.Profiles) (xgHome, xgAway float64) {
	h := profiles.Get(home)
	a := profiles.Get(away)
	xgHome = math.Max(minExpectedGoals, h.Attack*a.Defense*m.BaseHomeGoals)
	xgAway = math.Max(minExpectedGoals, a.Attack*h.Defense*m.BaseAwayGoals)
	return xgHome, xgAway
}

// Predict produces a full prediction for one fixture. Deterministic for
// identical inputs; the sampling strategy is deterministic under a fixed seed.
func (m *Model) Predict(home, away string, profiles strength.Profiles) Prediction {
	xgHome, xgAway := m.ExpectedGoals(home, away, profiles)
	d := m.Strategy.Distribution(xgHome, xgAway)

	p := Prediction{
		Score:           fmt.Sprintf("%d-%d", d.ModalHome, d.ModalAway),
		ScoreConfidence: d.ModalProb,
		Probs:           OutcomeProbs{Home: d.Home, Draw: d.Draw, Away: d.Away},
	}

	// Winner: largest outcome mass; draw on ties or when draw leads.
	switch {
	case d.Home > d.Away && d.Home > d.Draw:
		p.Winner = home
		p.WinnerConfidence = d.Home
	case d.Away > d.Home && d.Away > d.Draw:
		p.Winner = away
		p.WinnerConfidence = d.Away
	default:
		p.Winner = WinnerDraw
		p.WinnerConfidence = d.Draw
	}

	if d.OverProb > 0.5 {
		p.GoalsCall = GoalsOver
		p.GoalsConfidence = d.OverProb
	} else {
		p.GoalsCall = GoalsUnder
		p.GoalsConfidence = 1 - d.OverProb
	}

	p.Advice = advice(d, xgHome+xgAway)
	return p
}

// advice evaluates the fixed priority list top to bottom; first match wins.
// The exact order matters, not just the conditions.
func advice(d Distribution, totalXG float64) string {
	switch {
	case d.Home > 0.6:
		return AdviceHomeWin
	case d.Away > 0.6:
		return AdviceAwayWin
	case totalXG > 3.0:
		return AdviceOver
	case d.Draw > 0.35:
		return AdviceDraw
	default:
		return AdviceBTTS
	}
}

// DisplayOdds converts outcome probabilities into display odds with a fixed
// overround discount.
func DisplayOdds(probs OutcomeProbs) Odds {
	return Odds{
		Home: oddsFor(probs.Home),
		Draw: oddsFor(probs.Draw),
		Away: oddsFor(probs.Away),
	}
}

func oddsFor(prob float64) float64 {
	return math.Round(overround/math.Max(prob, minOddsProb)*100) / 100
}
