package bayesian

import "gonum.org/v1/gonum/mat"

// Reward returns the total realized reward over a bandit's history, given
// parallel (period x arm) matrices of unit counts and per-arm means. Both
// matrices must have the same shape; a mismatch panics with mat.ErrShape,
// following the gonum convention for dimension errors.
func Reward(counts, means mat.Matrix) float64 {
	rows, cols := counts.Dims()
	if rm, cm := means.Dims(); rm != rows || cm != cols {
		panic(mat.ErrShape)
	}

	var total float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			total += counts.At(i, j) * means.At(i, j)
		}
	}
	return total
}

// AdditionalReward returns the incremental reward earned by adaptive
// allocation over a fixed balanced split: for each period the actual counts
// are compared against an even division of that period's total, and the
// differences are weighted by the per-arm means.
func AdditionalReward(counts, means mat.Matrix) float64 {
	rows, cols := counts.Dims()
	if rm, cm := means.Dims(); rm != rows || cm != cols {
		panic(mat.ErrShape)
	}

	var total float64
	for i := 0; i < rows; i++ {
		var periodTotal float64
		for j := 0; j < cols; j++ {
			periodTotal += counts.At(i, j)
		}
		balanced := periodTotal / float64(cols)
		for j := 0; j < cols; j++ {
			total += (counts.At(i, j) - balanced) * means.At(i, j)
		}
	}
	return total
}
