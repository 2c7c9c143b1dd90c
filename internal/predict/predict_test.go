package predict

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixturecast/fixturecast/internal/strength"
)

func TestGridDistributionSumsToOne(t *testing.T) {
	cases := []struct{ xgHome, xgAway float64 }{
		{1.45, 1.25},
		{0.05, 0.05},
		{2.8, 0.4},
		{5.8, 0.3125},
	}
	for _, tc := range cases {
		d := GridStrategy{}.Distribution(tc.xgHome, tc.xgAway)
		assert.InDelta(t, 1.0, d.Home+d.Draw+d.Away, 1e-9,
			"xg %.2f/%.2f", tc.xgHome, tc.xgAway)
		assert.GreaterOrEqual(t, d.OverProb, 0.0)
		assert.LessOrEqual(t, d.OverProb, 1.0)
	}
}

func TestPredictDominantHomeTeam(t *testing.T) {
	profiles := strength.Profiles{
		"Paris":  {Attack: 2.0, Defense: 0.5},
		"Nantes": {Attack: 0.5, Defense: 2.0},
	}
	model := NewModel(1.45, 1.25, GridStrategy{})

	xgHome, xgAway := model.ExpectedGoals("Paris", "Nantes", profiles)
	assert.InDelta(t, 5.8, xgHome, 1e-9)
	assert.InDelta(t, 0.3125, xgAway, 1e-9)

	p := model.Predict("Paris", "Nantes", profiles)
	assert.Equal(t, "Paris", p.Winner)
	assert.Greater(t, p.WinnerConfidence, 0.9)
	assert.Equal(t, GoalsOver, p.GoalsCall)
	assert.GreaterOrEqual(t, p.GoalsConfidence, 0.5)
}

func TestPredictNeutralProfilesForUnknownTeams(t *testing.T) {
	model := NewModel(1.45, 1.25, GridStrategy{})

	xgHome, xgAway := model.ExpectedGoals("Ghost FC", "Phantom SC", strength.Profiles{})
	assert.InDelta(t, 1.45, xgHome, 1e-9)
	assert.InDelta(t, 1.25, xgAway, 1e-9)
}

func TestExpectedGoalsClampedPositive(t *testing.T) {
	profiles := strength.Profiles{
		"A": {Attack: 0.0, Defense: 0.0},
		"B": {Attack: 0.0, Defense: 0.0},
	}
	model := NewModel(1.45, 1.25, GridStrategy{})

	xgHome, xgAway := model.ExpectedGoals("A", "B", profiles)
	assert.Equal(t, minExpectedGoals, xgHome)
	assert.Equal(t, minExpectedGoals, xgAway)
}

// stubStrategy returns a fixed distribution so derived-field logic can be
// tested in isolation.
type stubStrategy struct{ d Distribution }

func (s stubStrategy) Distribution(_, _ float64) Distribution { return s.d }

func TestPredictWinnerDrawOnTies(t *testing.T) {
	model := NewModel(1.45, 1.25, stubStrategy{Distribution{
		Home: 0.4, Draw: 0.4, Away: 0.2, OverProb: 0.3,
	}})

	p := model.Predict("A", "B", strength.Profiles{})
	assert.Equal(t, WinnerDraw, p.Winner)
	assert.InDelta(t, 0.4, p.WinnerConfidence, 1e-9)
	assert.Equal(t, GoalsUnder, p.GoalsCall)
	assert.InDelta(t, 0.7, p.GoalsConfidence, 1e-9)
}

func TestAdvicePriorityOrder(t *testing.T) {
	cases := []struct {
		name    string
		d       Distribution
		totalXG float64
		want    string
	}{
		{"home dominant", Distribution{Home: 0.7, Draw: 0.2, Away: 0.1}, 4.0, AdviceHomeWin},
		{"away dominant", Distribution{Home: 0.1, Draw: 0.2, Away: 0.7}, 4.0, AdviceAwayWin},
		{"high scoring without favorite", Distribution{Home: 0.45, Draw: 0.2, Away: 0.35}, 3.5, AdviceOver},
		{"draw heavy and low scoring", Distribution{Home: 0.3, Draw: 0.4, Away: 0.3}, 1.2, AdviceDraw},
		{"nothing stands out", Distribution{Home: 0.45, Draw: 0.25, Away: 0.3}, 2.4, AdviceBTTS},
		// Home rule fires before the over rule even when both apply.
		{"home beats over", Distribution{Home: 0.65, Draw: 0.15, Away: 0.2}, 4.5, AdviceHomeWin},
		// The over rule fires before the draw rule.
		{"over beats draw", Distribution{Home: 0.3, Draw: 0.4, Away: 0.3}, 3.2, AdviceOver},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, advice(tc.d, tc.totalXG))
		})
	}
}

func TestGridModalTieKeepsFirstEncountered(t *testing.T) {
	// With xgHome exactly 1.0, P(0, a) == P(1, a) for every a, so the modal
	// cell is tied. Strict comparison must keep the first-encountered cell.
	d := GridStrategy{}.Distribution(1.0, 0.8)
	assert.Equal(t, 0, d.ModalHome)
	assert.Equal(t, 0, d.ModalAway)
}

func TestMonteCarloConvergesToGrid(t *testing.T) {
	xgHome, xgAway := 1.5, 1.1
	grid := GridStrategy{}.Distribution(xgHome, xgAway)

	// Tolerance shrinks as the trial count grows.
	cases := []struct {
		trials    int
		tolerance float64
	}{
		{2000, 0.05},
		{50000, 0.02},
		{500000, 0.01},
	}
	for _, tc := range cases {
		sampled := NewMonteCarloStrategy(tc.trials, 42).Distribution(xgHome, xgAway)

		assert.InDelta(t, grid.Home, sampled.Home, tc.tolerance, "trials %d", tc.trials)
		assert.InDelta(t, grid.Draw, sampled.Draw, tc.tolerance, "trials %d", tc.trials)
		assert.InDelta(t, grid.Away, sampled.Away, tc.tolerance, "trials %d", tc.trials)
		assert.InDelta(t, grid.OverProb, sampled.OverProb, tc.tolerance, "trials %d", tc.trials)
	}

	// At high trial counts the modal score agrees as well.
	sampled := NewMonteCarloStrategy(500000, 42).Distribution(xgHome, xgAway)
	assert.Equal(t, grid.ModalHome, sampled.ModalHome)
	assert.Equal(t, grid.ModalAway, sampled.ModalAway)
}

func TestMonteCarloReproducibleUnderFixedSeed(t *testing.T) {
	a := NewMonteCarloStrategy(1000, 7).Distribution(1.6, 1.2)
	b := NewMonteCarloStrategy(1000, 7).Distribution(1.6, 1.2)
	assert.Equal(t, a, b)
}

func TestMonteCarloDefaultsTrials(t *testing.T) {
	s := NewMonteCarloStrategy(0, 1)
	assert.Equal(t, DefaultTrials, s.trials)
}

func TestPoissonPmfMassAndShape(t *testing.T) {
	sum := 0.0
	for k := 0; k <= 30; k++ {
		p := poissonPmf(k, 2.5)
		require.GreaterOrEqual(t, p, 0.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, poissonPmf(2, 2.0), poissonPmf(1, 2.0), 1e-12) // mode tie at integer mean
}

func TestPoissonSampleMeanNearLambda(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for _, lambda := range []float64{1.5, 20.0} { // below and above the normal-approximation cutoff
		total := 0
		n := 20000
		for i := 0; i < n; i++ {
			v := poissonSample(rng, lambda)
			require.GreaterOrEqual(t, v, 0)
			total += v
		}
		mean := float64(total) / float64(n)
		assert.InDelta(t, lambda, mean, lambda*0.05, "lambda %.1f", lambda)
	}
}

func TestDisplayOdds(t *testing.T) {
	odds := DisplayOdds(OutcomeProbs{Home: 0.5, Draw: 0.25, Away: 0.25})
	assert.Equal(t, 1.84, odds.Home)
	assert.Equal(t, 3.68, odds.Draw)
	assert.Equal(t, 3.68, odds.Away)

	// Tiny probabilities are floored so odds stay bounded.
	floored := DisplayOdds(OutcomeProbs{Home: 0.001, Draw: 0.001, Away: 0.998})
	assert.Equal(t, 18.4, floored.Home)
	assert.Equal(t, 18.4, floored.Draw)
}
