package bayesian

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/rs/zerolog"
	"github.com/seanwbarry/growthbook/stats"
)

const (
	// minArmSampleSize is the per-arm count below which a weight update is
	// refused: Thompson sampling on fewer units is statistically unreliable,
	// so the engine declines rather than returning wide, uninformative
	// weights.
	minArmSampleSize = 100

	// banditDrawCount is the number of Monte Carlo draws used to estimate
	// the probability each arm is best.
	banditDrawCount = 10000
)

// Bandits computes Thompson-sampling allocation weights for the arms of a
// multi-armed bandit. Each arm's posterior is a conjugate normal-normal
// update of the shared prior against that arm's statistics; arms are
// independent given their own data.
type Bandits struct {
	arms   []stats.ArmStatistic
	config BanditConfig
	logger zerolog.Logger
}

// NewBandits validates the config and prepares a weight computation over the
// given arms. At least two arms are required.
func NewBandits(arms []stats.ArmStatistic, config BanditConfig) (*Bandits, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(arms) < 2 {
		return nil, fmt.Errorf("a bandit needs at least two arms, got %d", len(arms))
	}
	return &Bandits{arms: arms, config: config, logger: resolveLogger(config.Logger)}, nil
}

// posterior returns the per-arm posterior means and variances. An arm with
// nonpositive variance contributes zero data precision, leaving only the
// prior.
func (b *Bandits) posterior() (mean, variance []float64) {
	priorPrecision := 0.0
	if b.config.PriorDistribution.Proper {
		priorPrecision = 1 / b.config.PriorDistribution.Variance
	}

	mean = make([]float64, len(b.arms))
	variance = make([]float64, len(b.arms))
	for i, arm := range b.arms {
		dataPrecision := 0.0
		if arm.Variance > 0 {
			dataPrecision = float64(arm.N) / arm.Variance
		}
		postPrecision := priorPrecision + dataPrecision
		variance[i] = 1 / postPrecision
		mean[i] = variance[i] * (priorPrecision*b.config.PriorDistribution.Mean + dataPrecision*arm.Mean)
	}
	return mean, variance
}

// ComputeVariationWeights estimates normalized allocation weights by drawing
// from the joint posterior with a generator seeded from the config, so
// identical inputs reproduce identical weights. When any arm has fewer than
// minArmSampleSize units the update is refused and Weights is nil.
func (b *Bandits) ComputeVariationWeights() (BanditWeights, error) {
	for _, arm := range b.arms {
		if arm.N < minArmSampleSize {
			b.logger.Debug().Int("n", arm.N).Msg("refusing bandit update, arm has too few units")
			return BanditWeights{
				UpdateMessage: fmt.Sprintf("some variation counts smaller than %d", minArmSampleSize),
			}, nil
		}
	}

	mean, variance := b.posterior()
	src := rand.NewPCG(b.config.WeightsSeed, b.config.WeightsSeed)
	posterior, ok := distmv.NewNormal(mean, mat.NewDiagDense(len(variance), variance), src)
	if !ok {
		return BanditWeights{}, errors.New("posterior covariance is not positive definite")
	}

	votes := make([]float64, len(b.arms))
	draw := make([]float64, len(b.arms))
	for i := 0; i < banditDrawCount; i++ {
		posterior.Rand(draw)
		if b.config.TopTwo {
			first, second := topTwoIndices(draw)
			votes[first]++
			votes[second]++
		} else {
			votes[argMax(draw)]++
		}
	}
	floats.Scale(1/floats.Sum(votes), votes)

	return BanditWeights{UpdateMessage: banditUpdateSuccessMessage, Weights: votes}, nil
}

// argMax returns the index of the largest element; the earliest index wins
// ties, giving a stable total order.
func argMax(x []float64) int {
	best := 0
	for i := 1; i < len(x); i++ {
		if x[i] > x[best] {
			best = i
		}
	}
	return best
}

// topTwoIndices returns the indices of the largest and second-largest
// elements, with earlier indices winning ties. len(x) must be at least two,
// which NewBandits guarantees.
func topTwoIndices(x []float64) (first, second int) {
	first, second = 0, 1
	if x[1] > x[0] {
		first, second = 1, 0
	}
	for i := 2; i < len(x); i++ {
		switch {
		case x[i] > x[first]:
			second = first
			first = i
		case x[i] > x[second]:
			second = i
		}
	}
	return first, second
}
