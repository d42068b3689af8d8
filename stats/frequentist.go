package stats

// Diff returns the observed difference between two variation means, either
// as an absolute difference or as a lift relative to the baseline's
// unadjusted mean.
func Diff(meanA, meanB float64, relative bool, unadjustedMeanA float64) float64 {
	if relative {
		return (meanB - meanA) / unadjustedMeanA
	}
	return meanB - meanA
}

// Variance returns the sampling variance of the difference between two
// variation means. For relative differences it applies the delta method to
// the ratio of the treatment mean over the baseline mean; for absolute
// differences it is the plain sum of the standard errors squared.
func Variance(varA, meanA float64, nA int, varB, meanB float64, nB int, relative bool) float64 {
	seSqA := varA / float64(nA)
	seSqB := varB / float64(nB)
	if relative {
		return varianceOfRatios(meanB, seSqB, meanA, seSqA, 0)
	}
	return seSqA + seSqB
}

// varianceOfRatios is the first-order delta-method approximation to the
// variance of num/denom given the variances of each and their covariance.
func varianceOfRatios(num, varNum, denom, varDenom, cov float64) float64 {
	return varNum/(denom*denom) +
		varDenom*num*num/(denom*denom*denom*denom) -
		2*cov*num/(denom*denom*denom)
}
