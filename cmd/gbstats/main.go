// gbstats analyzes experiment summary statistics from the command line: the
// effect command runs a Bayesian A/B analysis, the weights command computes
// Thompson-sampling bandit allocation weights. Input is JSON on stdin or
// from a file; results go to stdout, logs to stderr.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/seanwbarry/growthbook/bayesian"
)

type CLI struct {
	Effect  EffectCmd  `cmd:"" help:"Run a Bayesian A/B analysis over two variations' summary statistics."`
	Weights WeightsCmd `cmd:"" help:"Compute Thompson-sampling allocation weights for bandit arms."`

	Verbose bool `short:"v" help:"Enable debug logging."`
}

type EffectCmd struct {
	Input string `arg:"" optional:"" default:"-" help:"JSON file with baseline and variation statistics, or - for stdin."`

	DifferenceType string  `enum:"relative,absolute,scaled" default:"relative" help:"Effect space: relative, absolute, or scaled."`
	Alpha          float64 `default:"0.05" help:"Credible-interval tail mass."`
	Inverse        bool    `help:"Treat negative effects as desirable."`

	PriorMean     float64 `default:"0" help:"Prior mean for the effect."`
	PriorVariance float64 `default:"1" help:"Prior variance for the effect."`
	ProperPrior   bool    `help:"Use the prior in the posterior update instead of treating it as flat."`
	PriorType     string  `enum:"relative,absolute" default:"relative" help:"Space the prior is expressed in."`

	TrafficProportion float64 `default:"1" help:"Traffic share of the variation (scaled effects only)."`
	PhaseLengthDays   float64 `default:"1" help:"Phase length in days (scaled effects only)."`
}

func (c *EffectCmd) Run(logger *zerolog.Logger) error {
	data, err := readInput(c.Input)
	if err != nil {
		return err
	}
	in, err := parseEffectInput(data)
	if err != nil {
		return err
	}

	cfg := bayesian.DefaultEffectConfig()
	cfg.DifferenceType = bayesian.DifferenceType(c.DifferenceType)
	cfg.Alpha = c.Alpha
	cfg.Inverse = c.Inverse
	cfg.PriorType = bayesian.DifferenceType(c.PriorType)
	cfg.PriorEffect = bayesian.GaussianPrior{Mean: c.PriorMean, Variance: c.PriorVariance, Proper: c.ProperPrior}
	cfg.TrafficProportionB = c.TrafficProportion
	cfg.PhaseLengthDays = c.PhaseLengthDays
	cfg.Logger = logger

	test, err := bayesian.NewEffectTest(in.Baseline.summary(), in.Variation.summary(), cfg)
	if err != nil {
		return err
	}
	result, err := test.ComputeResult()
	if err != nil {
		return err
	}

	logger.Debug().Str("difference_type", c.DifferenceType).Msg("analysis complete")

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if result.ErrorMessage != "" {
		fmt.Fprintf(w, "note\t%s\n", result.ErrorMessage)
	}
	fmt.Fprintf(w, "chance to win\t%.4f\n", result.ChanceToWin)
	fmt.Fprintf(w, "expected\t%.6g\n", result.Expected)
	fmt.Fprintf(w, "credible interval\t[%.6g, %.6g]\n", result.CI[0], result.CI[1])
	fmt.Fprintf(w, "risk (control)\t%.6g\n", result.Risk[0])
	fmt.Fprintf(w, "risk (treatment)\t%.6g\n", result.Risk[1])
	fmt.Fprintf(w, "risk type\t%s\n", result.RiskType)
	return w.Flush()
}

type WeightsCmd struct {
	Input string `arg:"" optional:"" default:"-" help:"JSON file with bandit arm statistics, or - for stdin."`

	Seed  uint64 `default:"1" help:"Seed for the Monte Carlo sampler."`
	Plain bool   `help:"Use plain Thompson sampling instead of the top-two estimator."`
}

func (c *WeightsCmd) Run(logger *zerolog.Logger) error {
	data, err := readInput(c.Input)
	if err != nil {
		return err
	}
	in, err := parseWeightsInput(data)
	if err != nil {
		return err
	}

	cfg := bayesian.DefaultBanditConfig()
	cfg.WeightsSeed = c.Seed
	cfg.TopTwo = !c.Plain
	cfg.Logger = logger

	bandits, err := bayesian.NewBandits(in.arms(), cfg)
	if err != nil {
		return err
	}
	weights, err := bandits.ComputeVariationWeights()
	if err != nil {
		return err
	}

	logger.Debug().Str("message", weights.UpdateMessage).Msg("weight update complete")

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "status\t%s\n", weights.UpdateMessage)
	for i, weight := range weights.Weights {
		fmt.Fprintf(w, "arm %d\t%.4f\n", i, weight)
	}
	return w.Flush()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gbstats"),
		kong.Description("Bayesian experiment analysis and bandit weight allocation."),
		kong.UsageOnError(),
	)

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("run_id", uuid.NewString()).
		Logger()

	ctx.FatalIfErrorf(ctx.Run(&logger))
}
