package stats

import "gonum.org/v1/gonum/stat/distuv"

// TruncatedNormalMean returns the mean of a normal distribution with mean mu
// and standard deviation sigma truncated to the interval (a, b). Either bound
// may be infinite; the standard-normal pdf and cdf handle infinities without
// special cases.
func TruncatedNormalMean(mu, sigma, a, b float64) float64 {
	alpha := (a - mu) / sigma
	beta := (b - mu) / sigma
	z := distuv.UnitNormal.CDF(beta) - distuv.UnitNormal.CDF(alpha)
	return mu + sigma*(distuv.UnitNormal.Prob(alpha)-distuv.UnitNormal.Prob(beta))/z
}
