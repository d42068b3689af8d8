package bayesian

// RiskType is the space the risk estimates are reported in.
type RiskType string

const (
	// RiskRelative reports risk as a lift over the baseline mean.
	RiskRelative RiskType = "relative"
	// RiskAbsolute reports risk as a raw difference in means.
	RiskAbsolute RiskType = "absolute"
)

// upliftDistNormal is the only posterior family this engine produces.
const upliftDistNormal = "normal"

// Uplift describes the posterior distribution over the effect.
type Uplift struct {
	Dist   string
	Mean   float64
	Stddev float64
}

// BayesianResult is the outcome of a single effect estimation. When
// ErrorMessage is non-empty the numeric fields hold the uninformative
// defaults (chance to win 0.5, zero interval, zero risk).
type BayesianResult struct {
	// ChanceToWin is the posterior probability that the effect favors the
	// treatment (or the control, for inverse metrics).
	ChanceToWin float64

	// Expected is the posterior mean effect.
	Expected float64

	// CI is the [alpha/2, 1-alpha/2] credible interval; CI[0] <= CI[1].
	CI [2]float64

	// Uplift is the full posterior over the effect.
	Uplift Uplift

	// Risk holds the expected regret of shipping the control (index 0) and
	// the treatment (index 1). Risk stays in the unscaled effect space even
	// for scaled results.
	Risk [2]float64

	// RiskType is the space Risk is expressed in.
	RiskType RiskType

	// ErrorMessage carries the reason an uninformative default was returned;
	// empty on a successful analysis.
	ErrorMessage string
}

// BanditWeights is the outcome of a bandit weight update. Weights is nil
// exactly when an arm had too few units for a reliable update; otherwise the
// entries are nonnegative and sum to one.
type BanditWeights struct {
	UpdateMessage string
	Weights       []float64
}
