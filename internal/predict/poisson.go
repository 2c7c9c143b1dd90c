package predict

import (
	"math"
	"math/rand"
)

// largeLambda is the threshold above which the normal approximation replaces
// Knuth's product method, whose running time grows linearly with lambda.
const largeLambda = 12

// poissonPmf returns P(X = k) for X ~ Poisson(mean), computed iteratively to
// avoid factorial overflow.
func poissonPmf(k int, mean float64) float64 {
	if k < 0 {
		return 0
	}
	p := math.Exp(-mean)
	for i := 0; i < k; i++ {
		p *= mean
		p /= float64(i + 1)
	}
	return p
}

// poissonSample draws a Poisson variate with the given mean.
func poissonSample(rng *rand.Rand, lambda float64) int {
	if lambda <= 0 {
		return 0
	}

	if lambda < largeLambda {
		// Knuth's product method
		limit := math.Exp(-lambda)
		k := 0
		p := 1.0
		for p > limit {
			k++
			p *= rng.Float64()
		}
		return k - 1
	}

	// Normal approximation for large means
	return int(math.Max(0, rng.NormFloat64()*math.Sqrt(lambda)+lambda+0.5))
}
