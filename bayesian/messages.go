package bayesian

// Messages attached to uninformative default results. Batch pipelines match
// on these strings, so they are part of the public surface.
const (
	// BaselineVariationZeroMessage: a relative effect needs a nonzero
	// baseline mean to divide by.
	BaselineVariationZeroMessage = "baseline variation mean is zero, so relative effects cannot be computed"

	// NoUnitsInVariationMessage: one or both variations saw no units.
	NoUnitsInVariationMessage = "one or both variations have no units"

	// ZeroNegativeVarianceMessage: a variation's variance was zero or
	// negative, so no sampling distribution exists.
	ZeroNegativeVarianceMessage = "one or both variations have zero or negative variance"

	// ZeroScaledVariationMessage: scaled impact is undefined when the
	// variation received no traffic.
	ZeroScaledVariationMessage = "scaled impact cannot be computed when traffic proportion is zero"
)

const banditUpdateSuccessMessage = "successfully updated"
