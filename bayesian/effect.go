// Package bayesian implements Bayesian inference for online-experiment
// analysis and Thompson-sampling weight allocation for multi-armed bandits.
//
// The effect engine combines a Gaussian prior with a normal approximation to
// the observed difference between two variations (a conjugate normal-normal
// update) and reports the posterior's chance to win, credible interval, and
// directional risk. The bandit engine runs the same update independently per
// arm and estimates allocation weights by Monte Carlo simulation from the
// joint posterior.
//
// Every operation is a pure, bounded-cost computation over caller-supplied
// summary statistics: no I/O, no shared state, and all randomness is locally
// seeded, so calls may run concurrently without coordination.
package bayesian

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rs/zerolog"
	"github.com/seanwbarry/growthbook/stats"
)

// ErrNonNormalUplift is returned when the scaled-effect transform is applied
// to a result whose posterior is not normal. This is a contract violation,
// not a statistical edge case, and is never produced under correct
// configuration.
var ErrNonNormalUplift = errors.New("cannot scale a result with a non-normal uplift distribution")

// EffectTest estimates the treatment effect between two variations of an
// experiment. Construct one per (metric, variation pair) and call
// ComputeResult; the test holds no state beyond its inputs.
type EffectTest struct {
	statA  stats.SummaryStatistic
	statB  stats.SummaryStatistic
	config EffectConfig
	prior  GaussianPrior
	logger zerolog.Logger
}

// NewEffectTest validates the config and prepares an effect estimation for
// baseline statA against treatment statB. If the prior is expressed in a
// different space than the requested effect, its mean and variance are
// rescaled by the baseline's unadjusted mean so prior and data share units.
func NewEffectTest(statA, statB stats.SummaryStatistic, config EffectConfig) (*EffectTest, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	t := &EffectTest{
		statA:  statA,
		statB:  statB,
		config: config,
		prior:  config.PriorEffect,
		logger: resolveLogger(config.Logger),
	}

	u := statA.UnadjustedMean
	switch {
	case t.relative() && config.PriorType == DifferenceAbsolute:
		t.prior = GaussianPrior{
			Mean:     config.PriorEffect.Mean / math.Abs(u),
			Variance: config.PriorEffect.Variance / (u * u),
			Proper:   config.PriorEffect.Proper,
		}
	case !t.relative() && config.PriorType == DifferenceRelative:
		t.prior = GaussianPrior{
			Mean:     config.PriorEffect.Mean * math.Abs(u),
			Variance: config.PriorEffect.Variance * (u * u),
			Proper:   config.PriorEffect.Proper,
		}
	}
	return t, nil
}

// relative reports whether the effect is estimated in relative space. Scaled
// effects are relative effects with a linear transform applied afterward.
func (t *EffectTest) relative() bool {
	return t.config.DifferenceType != DifferenceAbsolute
}

func (t *EffectTest) riskType() RiskType {
	if t.relative() {
		return RiskRelative
	}
	return RiskAbsolute
}

// ComputeResult runs the estimation. Statistical edge cases (no units, zero
// variance, zero baseline in relative space, zero traffic when scaling)
// return an uninformative default result carrying a descriptive message
// rather than an error; the only error is the ErrNonNormalUplift contract
// violation.
func (t *EffectTest) ComputeResult() (BayesianResult, error) {
	if t.relative() && (t.statA.Mean == 0 || t.statA.UnadjustedMean == 0) {
		t.logger.Debug().Msg("baseline mean is zero, returning default result")
		return t.defaultResult(BaselineVariationZeroMessage), nil
	}
	if t.statA.N == 0 || t.statB.N == 0 {
		t.logger.Debug().Msg("empty variation, returning default result")
		return t.defaultResult(NoUnitsInVariationMessage), nil
	}
	if t.statA.Variance <= 0 || t.statB.Variance <= 0 {
		t.logger.Debug().Msg("zero or negative variance, returning default result")
		return t.defaultResult(ZeroNegativeVarianceMessage), nil
	}

	dataVariance := stats.Variance(
		t.statA.Variance, t.statA.UnadjustedMean, t.statA.N,
		t.statB.Variance, t.statB.UnadjustedMean, t.statB.N,
		t.relative(),
	)
	dataMean := stats.Diff(t.statA.Mean, t.statB.Mean, t.relative(), t.statA.UnadjustedMean)

	postPrecision := 1 / dataVariance
	postMean := dataMean
	if t.prior.Proper {
		postPrecision += 1 / t.prior.Variance
		postMean = (dataMean/dataVariance + t.prior.Mean/t.prior.Variance) / postPrecision
	}
	postStd := math.Sqrt(1 / postPrecision)

	posterior := distuv.Normal{Mu: postMean, Sigma: postStd}
	ctw := posterior.Survival(0)
	if t.config.Inverse {
		ctw = 1 - ctw
	}

	risk := riskEstimates(postMean, postStd)
	if t.config.Inverse {
		risk[0], risk[1] = risk[1], risk[0]
	}

	result := BayesianResult{
		ChanceToWin: ctw,
		Expected:    postMean,
		CI: [2]float64{
			posterior.Quantile(t.config.Alpha / 2),
			posterior.Quantile(1 - t.config.Alpha/2),
		},
		Uplift:   Uplift{Dist: upliftDistNormal, Mean: postMean, Stddev: postStd},
		Risk:     risk,
		RiskType: t.riskType(),
	}

	if t.config.DifferenceType == DifferenceScaled {
		return t.scaleResult(result)
	}
	return result, nil
}

// scaleResult projects a relative result into absolute total-impact-over-
// phase units. Risk is deliberately left in relative terms. Scaling any
// posterior other than a normal one is unsupported and fails fatally.
func (t *EffectTest) scaleResult(result BayesianResult) (BayesianResult, error) {
	if result.Uplift.Dist != upliftDistNormal {
		return BayesianResult{}, ErrNonNormalUplift
	}
	if t.config.TrafficProportionB == 0 {
		t.logger.Debug().Msg("zero traffic proportion, returning default result")
		return t.defaultResult(ZeroScaledVariationMessage), nil
	}
	adjustment := float64(t.statB.N) / t.config.TrafficProportionB / t.config.PhaseLengthDays
	result.Expected *= adjustment
	result.CI[0] *= adjustment
	result.CI[1] *= adjustment
	result.Uplift.Mean *= adjustment
	result.Uplift.Stddev *= adjustment
	return result, nil
}

// defaultResult is the uninformative output used when the analysis cannot be
// performed adequately.
func (t *EffectTest) defaultResult(message string) BayesianResult {
	return BayesianResult{
		ChanceToWin:  0.5,
		Expected:     0,
		CI:           [2]float64{0, 0},
		Uplift:       Uplift{Dist: upliftDistNormal, Mean: 0, Stddev: 0},
		Risk:         [2]float64{0, 0},
		RiskType:     t.riskType(),
		ErrorMessage: message,
	}
}

// riskEstimates returns the expected regret of shipping the control (index
// 0) and the treatment (index 1) under a normal posterior: each tail's
// probability mass times the truncated-normal mean over that tail.
func riskEstimates(mu, sigma float64) [2]float64 {
	probControlBetter := distuv.Normal{Mu: mu, Sigma: sigma}.CDF(0)
	meanNegative := stats.TruncatedNormalMean(mu, sigma, math.Inf(-1), 0)
	meanPositive := stats.TruncatedNormalMean(mu, sigma, 0, math.Inf(1))
	return [2]float64{
		(1 - probControlBetter) * meanPositive,
		-probControlBetter * meanNegative,
	}
}
