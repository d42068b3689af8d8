package bayesian

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/seanwbarry/growthbook/stats"
)

func banditArms() []stats.ArmStatistic {
	return []stats.ArmStatistic{
		{Mean: 0.10, Variance: 1, N: 1000},
		{Mean: 0.15, Variance: 1, N: 1000},
		{Mean: 0.12, Variance: 1, N: 1000},
	}
}

func mustWeights(t *testing.T, arms []stats.ArmStatistic, cfg BanditConfig) BanditWeights {
	t.Helper()
	b, err := NewBandits(arms, cfg)
	require.NoError(t, err)
	w, err := b.ComputeVariationWeights()
	require.NoError(t, err)
	return w
}

func TestBanditsRefusesSmallArms(t *testing.T) {
	arms := banditArms()
	arms[1].N = 99
	w := mustWeights(t, arms, DefaultBanditConfig())

	require.Nil(t, w.Weights)
	require.Equal(t, "some variation counts smaller than 100", w.UpdateMessage)
}

func TestBanditsWeightsAreNormalized(t *testing.T) {
	for _, topTwo := range []bool{false, true} {
		cfg := DefaultBanditConfig()
		cfg.TopTwo = topTwo
		w := mustWeights(t, banditArms(), cfg)

		require.Equal(t, "successfully updated", w.UpdateMessage)
		require.Len(t, w.Weights, 3)
		require.InDelta(t, 1.0, floats.Sum(w.Weights), 1e-9)
		for _, weight := range w.Weights {
			require.GreaterOrEqual(t, weight, 0.0)
		}
	}
}

func TestBanditsDeterministicForFixedSeed(t *testing.T) {
	cfg := DefaultBanditConfig()
	cfg.WeightsSeed = 42

	first := mustWeights(t, banditArms(), cfg)
	second := mustWeights(t, banditArms(), cfg)
	require.Equal(t, first.Weights, second.Weights)
}

func TestBanditsDifferentSeedStaysNormalized(t *testing.T) {
	cfg := DefaultBanditConfig()
	cfg.WeightsSeed = 7
	w := mustWeights(t, banditArms(), cfg)
	require.InDelta(t, 1.0, floats.Sum(w.Weights), 1e-9)
}

func TestBanditsPermutationSymmetry(t *testing.T) {
	arms := banditArms()
	permuted := []stats.ArmStatistic{arms[2], arms[0], arms[1]}

	cfg := DefaultBanditConfig()
	w := mustWeights(t, arms, cfg)
	wp := mustWeights(t, permuted, cfg)

	// The sampler assigns draws by position, so after permuting the arms
	// each one sees a different stream of draws; the vote fractions agree
	// only up to Monte Carlo noise. 0.02 is roughly twice the standard
	// error of a 10,000-draw vote fraction.
	require.InDelta(t, w.Weights[2], wp.Weights[0], 0.02)
	require.InDelta(t, w.Weights[0], wp.Weights[1], 0.02)
	require.InDelta(t, w.Weights[1], wp.Weights[2], 0.02)
}

func TestBanditsFavorBetterArm(t *testing.T) {
	arms := []stats.ArmStatistic{
		{Mean: 0, Variance: 1, N: 10000},
		{Mean: 1, Variance: 1, N: 10000},
	}
	cfg := DefaultBanditConfig()
	cfg.TopTwo = false
	w := mustWeights(t, arms, cfg)
	require.Greater(t, w.Weights[1], 0.99)
}

func TestBanditsTopTwoSplitsBetweenLeaders(t *testing.T) {
	// Posterior standard deviations are ~0.01 while the means are a full
	// unit apart, so the ranking is the same in every draw: the top two arms
	// split the votes evenly and the trailing arm keeps an explicit zero.
	arms := []stats.ArmStatistic{
		{Mean: 0, Variance: 1, N: 10000},
		{Mean: 1, Variance: 1, N: 10000},
		{Mean: 2, Variance: 1, N: 10000},
	}
	w := mustWeights(t, arms, DefaultBanditConfig())
	require.Equal(t, []float64{0, 0.5, 0.5}, w.Weights)
}

func TestBanditsImproperPriorPosteriorIsDataOnly(t *testing.T) {
	b, err := NewBandits(banditArms(), DefaultBanditConfig())
	require.NoError(t, err)

	mean, variance := b.posterior()
	for i, arm := range banditArms() {
		require.InDelta(t, arm.Mean, mean[i], 1e-12)
		require.InDelta(t, arm.Variance/float64(arm.N), variance[i], 1e-12)
	}
}

func TestBanditsProperPriorShrinksArmMeans(t *testing.T) {
	cfg := DefaultBanditConfig()
	cfg.PriorDistribution = GaussianPrior{Mean: 0, Variance: 1e-6, Proper: true}

	b, err := NewBandits(banditArms(), cfg)
	require.NoError(t, err)

	mean, _ := b.posterior()
	for i, arm := range banditArms() {
		require.Less(t, mean[i], arm.Mean)
		require.Greater(t, mean[i], 0.0)
	}
}

func TestBanditsZeroVarianceArmFallsBackToPrior(t *testing.T) {
	cfg := DefaultBanditConfig()
	cfg.PriorDistribution = GaussianPrior{Mean: 0.3, Variance: 0.5, Proper: true}

	arms := banditArms()
	arms[0].Variance = 0
	b, err := NewBandits(arms, cfg)
	require.NoError(t, err)

	mean, variance := b.posterior()
	require.Equal(t, 0.3, mean[0])
	require.Equal(t, 0.5, variance[0])
}

func TestNewBanditsValidation(t *testing.T) {
	t.Run("needs two arms", func(t *testing.T) {
		_, err := NewBandits(banditArms()[:1], DefaultBanditConfig())
		require.Error(t, err)
	})

	t.Run("rejects invalid alpha", func(t *testing.T) {
		cfg := DefaultBanditConfig()
		cfg.Alpha = 1.5
		_, err := NewBandits(banditArms(), cfg)
		require.Error(t, err)
	})

	t.Run("rejects nonpositive prior variance", func(t *testing.T) {
		cfg := DefaultBanditConfig()
		cfg.PriorDistribution.Variance = -1
		_, err := NewBandits(banditArms(), cfg)
		require.Error(t, err)
	})
}

func TestTopTwoIndicesStableOrder(t *testing.T) {
	first, second := topTwoIndices([]float64{1, 3, 2})
	require.Equal(t, 1, first)
	require.Equal(t, 2, second)

	// Ties resolve to the earliest index.
	first, second = topTwoIndices([]float64{2, 2, 2})
	require.Equal(t, 0, first)
	require.Equal(t, 1, second)

	first, second = topTwoIndices([]float64{5, 1})
	require.Equal(t, 0, first)
	require.Equal(t, 1, second)
}

func TestArgMaxStableOrder(t *testing.T) {
	require.Equal(t, 1, argMax([]float64{1, 5, 5, 2}))
	require.Equal(t, 0, argMax([]float64{3, 3, 3}))
}
