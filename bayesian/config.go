package bayesian

import (
	"fmt"

	"github.com/rs/zerolog"
)

// DifferenceType selects the space an effect is estimated in.
type DifferenceType string

const (
	// DifferenceRelative estimates the effect as a lift over the baseline mean.
	DifferenceRelative DifferenceType = "relative"
	// DifferenceAbsolute estimates the effect as a raw difference in means.
	DifferenceAbsolute DifferenceType = "absolute"
	// DifferenceScaled estimates a relative effect and then projects it into
	// total-impact-over-phase units using observed traffic.
	DifferenceScaled DifferenceType = "scaled"
)

// GaussianPrior is a normal prior over an effect or a bandit arm mean.
// Proper=false marks a flat prior that contributes zero precision to any
// posterior update.
type GaussianPrior struct {
	Mean     float64
	Variance float64
	Proper   bool
}

// DefaultPrior returns the improper N(0, 1) prior.
func DefaultPrior() GaussianPrior {
	return GaussianPrior{Mean: 0, Variance: 1, Proper: false}
}

// Validate checks the prior's structural invariants.
func (p GaussianPrior) Validate() error {
	if p.Variance <= 0 {
		return fmt.Errorf("prior variance must be positive, got %v", p.Variance)
	}
	return nil
}

// EffectConfig configures a single effect estimation. Values returned by
// DefaultEffectConfig carry the documented defaults; configs are treated as
// immutable once handed to NewEffectTest.
type EffectConfig struct {
	// DifferenceType selects relative, absolute, or scaled effect space.
	DifferenceType DifferenceType

	// Inverse marks a metric where a negative effect is desirable.
	Inverse bool

	// Alpha is the credible-interval tail mass; the interval spans the
	// [Alpha/2, 1-Alpha/2] posterior quantiles. Must be in (0, 1).
	Alpha float64

	// PriorType is the space (relative or absolute) PriorEffect is expressed
	// in. When it differs from the effect space the prior is rescaled by the
	// baseline's unadjusted mean before the posterior update.
	PriorType DifferenceType

	// PriorEffect is the Gaussian prior over the effect.
	PriorEffect GaussianPrior

	// TrafficProportionB is the share of traffic the variation received,
	// used only by the scaled-effect transform.
	TrafficProportionB float64

	// PhaseLengthDays is the experiment phase duration in days, used only by
	// the scaled-effect transform.
	PhaseLengthDays float64

	// Logger, when set, receives debug events for guard-clause fallbacks.
	Logger *zerolog.Logger
}

// DefaultEffectConfig returns the standard configuration: relative effects,
// alpha 0.05, an improper relative-space prior, and a single-day phase with
// full traffic.
func DefaultEffectConfig() EffectConfig {
	return EffectConfig{
		DifferenceType:     DifferenceRelative,
		Alpha:              0.05,
		PriorType:          DifferenceRelative,
		PriorEffect:        DefaultPrior(),
		TrafficProportionB: 1,
		PhaseLengthDays:    1,
	}
}

// Validate checks the config invariants enforced at engine construction.
func (c EffectConfig) Validate() error {
	switch c.DifferenceType {
	case DifferenceRelative, DifferenceAbsolute, DifferenceScaled:
	default:
		return fmt.Errorf("unknown difference type %q", c.DifferenceType)
	}
	switch c.PriorType {
	case DifferenceRelative, DifferenceAbsolute:
	default:
		return fmt.Errorf("prior type must be relative or absolute, got %q", c.PriorType)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("alpha must be in (0, 1), got %v", c.Alpha)
	}
	return c.PriorEffect.Validate()
}

// BanditConfig configures a bandit weight update.
type BanditConfig struct {
	// Alpha is kept for parity with effect analyses run on the same metric;
	// the weight computation itself does not consume it.
	Alpha float64

	// Inverse marks a metric where lower arm means are better.
	Inverse bool

	// PriorDistribution is the Gaussian prior shared by every arm.
	PriorDistribution GaussianPrior

	// WeightsSeed seeds the Monte Carlo sampler so that repeated calls with
	// identical inputs reproduce identical weights.
	WeightsSeed uint64

	// TopTwo selects the top-two Thompson sampling estimator, which keeps
	// allocating traffic to the runner-up arm to preserve statistical power.
	TopTwo bool

	// Logger, when set, receives debug events for refused updates.
	Logger *zerolog.Logger
}

// DefaultBanditConfig returns the standard configuration: top-two sampling
// with seed 1 and an improper shared prior.
func DefaultBanditConfig() BanditConfig {
	return BanditConfig{
		Alpha:             0.05,
		PriorDistribution: DefaultPrior(),
		WeightsSeed:       1,
		TopTwo:            true,
	}
}

// Validate checks the config invariants enforced at engine construction.
func (c BanditConfig) Validate() error {
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("alpha must be in (0, 1), got %v", c.Alpha)
	}
	return c.PriorDistribution.Validate()
}

func resolveLogger(l *zerolog.Logger) zerolog.Logger {
	if l == nil {
		return zerolog.Nop()
	}
	return *l
}
