package predict

import (
	"math/rand"
	"sync"
	"time"
)

const (
	// gridMaxGoals bounds the enumeration grid per side. Six goals already
	// covers more than 99.9% of the mass at realistic goal rates.
	gridMaxGoals = 5

	// DefaultTrials is the Monte Carlo trial count when none is configured.
	DefaultTrials = 500
)

// Distribution summarizes a score distribution produced by a Strategy.
type Distribution struct {
	ModalHome int     // most likely home goals
	ModalAway int     // most likely away goals
	ModalProb float64 // probability mass of the modal score
	Home      float64 // P(home win)
	Draw      float64 // P(draw)
	Away      float64 // P(away win)
	OverProb  float64 // P(total goals > 2.5)
}

// Strategy computes a score distribution from a pair of expected-goal values.
// The two implementations are interchangeable: the Monte Carlo variant
// converges to the grid result as its trial count grows.
type Strategy interface {
	Distribution(xgHome, xgAway float64) Distribution
}

// --------------------------------------------------------------------------
// Exact enumeration
// --------------------------------------------------------------------------

// GridStrategy enumerates the independent-Poisson joint probability over a
// bounded score grid. Deterministic and stateless; safe for concurrent use.
type GridStrategy struct{}

func (GridStrategy) Distribution(xgHome, xgAway float64) Distribution {
	var d Distribution
	total := 0.0
	for h := 0; h <= gridMaxGoals; h++ {
		ph := poissonPmf(h, xgHome)
		for a := 0; a <= gridMaxGoals; a++ {
			p := ph * poissonPmf(a, xgAway)
			total += p

			// Strict > keeps the first-encountered cell on ties; ties are
			// common at low goal expectancy.
			if p > d.ModalProb {
				d.ModalProb = p
				d.ModalHome = h
				d.ModalAway = a
			}

			switch {
			case h > a:
				d.Home += p
			case h < a:
				d.Away += p
			default:
				d.Draw += p
			}
			if h+a > 2 {
				d.OverProb += p
			}
		}
	}

	// Normalize by the grid's total mass so results stay comparable with
	// the sampling strategy, whose frequencies sum to one by construction.
	// At realistic goal rates the correction is well under 0.1%.
	if total > 0 {
		d.ModalProb /= total
		d.Home /= total
		d.Draw /= total
		d.Away /= total
		d.OverProb /= total
	}
	return d
}

// --------------------------------------------------------------------------
// Stochastic sampling
// --------------------------------------------------------------------------

// MonteCarloStrategy tallies independent Poisson trials. Randomness is
// isolated behind the injected source so runs are reproducible. The internal
// generator is guarded by a mutex, so a single instance may be shared across
// prediction workers.
type MonteCarloStrategy struct {
	trials int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMonteCarloStrategy creates a sampling strategy with the given trial
// count (DefaultTrials if <= 0) and seed (time-based if 0).
func NewMonteCarloStrategy(trials int, seed int64) *MonteCarloStrategy {
	if trials <= 0 {
		trials = DefaultTrials
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MonteCarloStrategy{
		trials: trials,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (s *MonteCarloStrategy) Distribution(xgHome, xgAway float64) Distribution {
	counts := make(map[[2]int]int)
	var homeWins, draws, awayWins, over int
	maxH, maxA := 0, 0

	s.mu.Lock()
	for i := 0; i < s.trials; i++ {
		h := poissonSample(s.rng, xgHome)
		a := poissonSample(s.rng, xgAway)

		counts[[2]int{h, a}]++
		if h > maxH {
			maxH = h
		}
		if a > maxA {
			maxA = a
		}

		switch {
		case h > a:
			homeWins++
		case h < a:
			awayWins++
		default:
			draws++
		}
		if h+a > 2 {
			over++
		}
	}
	s.mu.Unlock()

	total := float64(s.trials)
	d := Distribution{
		Home:     float64(homeWins) / total,
		Draw:     float64(draws) / total,
		Away:     float64(awayWins) / total,
		OverProb: float64(over) / total,
	}

	// Scan scores in ascending (h, a) order so modal ties resolve the same
	// way as the enumeration strategy.
	best := 0
	for h := 0; h <= maxH; h++ {
		for a := 0; a <= maxA; a++ {
			if c := counts[[2]int{h, a}]; c > best {
				best = c
				d.ModalHome = h
				d.ModalAway = a
			}
		}
	}
	d.ModalProb = float64(best) / total
	return d
}
