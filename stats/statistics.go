// Package stats provides the summary-statistic value types consumed by the
// Bayesian engines, plus the frequentist effect/variance primitives they are
// built on.
//
// All types are immutable value objects: callers aggregate raw experiment
// data into per-variation summaries and pass them in by value. Nothing in
// this package holds state between calls.
package stats

// SummaryStatistic aggregates a single variation's observations for an
// experiment metric.
//
// UnadjustedMean is the un-normalized baseline mean used to move priors
// between relative and absolute effect spaces. For plain (non-regression-
// adjusted) statistics it equals Mean; it must be nonzero whenever
// relative-space rescaling is requested.
type SummaryStatistic struct {
	Mean           float64
	Variance       float64
	N              int
	UnadjustedMean float64
}

// NewSummaryStatistic builds a SummaryStatistic whose unadjusted mean equals
// its mean, which is the common case. Set UnadjustedMean on the returned
// value when the metric mean has been adjusted (e.g. by CUPED).
func NewSummaryStatistic(mean, variance float64, n int) SummaryStatistic {
	return SummaryStatistic{
		Mean:           mean,
		Variance:       variance,
		N:              n,
		UnadjustedMean: mean,
	}
}

// ArmStatistic aggregates a single bandit arm's observations.
type ArmStatistic struct {
	Mean     float64
	Variance float64
	N        int
}
