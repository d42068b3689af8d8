package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/seanwbarry/growthbook/stats"
)

// variationJSON is the wire form of a single variation's summary statistics.
// unadjustedMean is optional and defaults to mean.
type variationJSON struct {
	Mean           float64  `json:"mean"`
	Variance       float64  `json:"variance"`
	N              int      `json:"n"`
	UnadjustedMean *float64 `json:"unadjustedMean,omitempty"`
}

func (v variationJSON) summary() stats.SummaryStatistic {
	s := stats.NewSummaryStatistic(v.Mean, v.Variance, v.N)
	if v.UnadjustedMean != nil {
		s.UnadjustedMean = *v.UnadjustedMean
	}
	return s
}

type effectInput struct {
	Baseline  variationJSON `json:"baseline"`
	Variation variationJSON `json:"variation"`
}

type armJSON struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	N        int     `json:"n"`
}

type weightsInput struct {
	Arms []armJSON `json:"arms"`
}

func (w weightsInput) arms() []stats.ArmStatistic {
	arms := make([]stats.ArmStatistic, len(w.Arms))
	for i, a := range w.Arms {
		arms[i] = stats.ArmStatistic{Mean: a.Mean, Variance: a.Variance, N: a.N}
	}
	return arms
}

func parseEffectInput(data []byte) (effectInput, error) {
	var in effectInput
	if err := json.Unmarshal(data, &in); err != nil {
		return effectInput{}, fmt.Errorf("parsing effect input: %w", err)
	}
	if in.Baseline.N < 0 || in.Variation.N < 0 {
		return effectInput{}, fmt.Errorf("variation counts must be nonnegative")
	}
	return in, nil
}

func parseWeightsInput(data []byte) (weightsInput, error) {
	var in weightsInput
	if err := json.Unmarshal(data, &in); err != nil {
		return weightsInput{}, fmt.Errorf("parsing weights input: %w", err)
	}
	if len(in.Arms) < 2 {
		return weightsInput{}, fmt.Errorf("weights input needs at least two arms, got %d", len(in.Arms))
	}
	return in, nil
}

// readInput reads the named file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
