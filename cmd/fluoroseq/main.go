package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

/******************************************************************************
This file is the entry point for the fluoroseq command line utility. It also
acts as a template outlining everything available to the user.

Initial argparsing and app definition is done entirely through
"github.com/urfave/cli/v2" for which you can find the docs here:

https://github.com/urfave/cli/blob/master/docs/v2/manual.md

application() builds the *cli.App; run() executes it against a given argv
slice so main() stays a one-line wrapper that's easy to keep out of test
coverage.
******************************************************************************/

// main is the entry point for the command line app. It's separated from
// run/application to help with testing.
func main() {
	run(os.Args)
}

// run is separated from main for debugging's sake.
func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

// application defines the fluoroseq CLI: classify, simulate, and fit, each
// with their own positional-argument subcommands.
func application() *cli.App {
	app := &cli.App{
		Name:  "fluoroseq",
		Usage: "Identify peptides from fluorosequencing radiometries.",

		Commands: []*cli.Command{
			{
				Name:  "classify",
				Usage: "Classify radiometries against a candidate set.",
				Subcommands: []*cli.Command{
					{
						Name:      "hmm",
						Usage:     "Classify by full HMM forward-algorithm evaluation against every candidate.",
						ArgsUsage: "<model.csv> <dye_seqs.txt> <radiometries.txt> <output.csv>",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "workers", Value: 1, Usage: "Worker pool size."},
							&cli.Float64Flag{Name: "cutoff", Value: 0, Usage: "Emission density truncation radius in standard deviations (0 disables)."},
						},
						Action: runClassifyHMM,
					},
					{
						Name:      "nn",
						Usage:     "Pre-classify by k-d tree nearest-neighbor lookup over dye-track feature vectors.",
						ArgsUsage: "<model.csv> <dye_tracks.txt> <radiometries.txt> <output.csv>",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "k", Value: 10, Usage: "Number of nearest neighbors consulted per query."},
							&cli.Float64Flag{Name: "sig", Value: 1, Usage: "Gaussian kernel bandwidth, in intensity units."},
							&cli.IntFlag{Name: "workers", Value: 1, Usage: "Worker pool size."},
						},
						Action: runClassifyNN,
					},
					{
						Name:      "hybrid",
						Usage:     "Shortlist by NN, then score the shortlist with the full HMM.",
						ArgsUsage: "<model.csv> <dye_seqs.txt> <dye_tracks.txt> <radiometries.txt> <output.csv>",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "k", Value: 10, Usage: "Number of nearest neighbors consulted per query."},
							&cli.Float64Flag{Name: "sig", Value: 1, Usage: "Gaussian kernel bandwidth, in intensity units."},
							&cli.IntFlag{Name: "h", Value: 10, Usage: "Shortlist size handed to the HMM stage."},
							&cli.IntFlag{Name: "workers", Value: 1, Usage: "Worker pool size."},
						},
						Action: runClassifyHybrid,
					},
				},
			},
			{
				Name:  "simulate",
				Usage: "Generate synthetic dye tracks or radiometries from a sequencing model.",
				Subcommands: []*cli.Command{
					{
						Name:      "dt",
						Usage:     "Generate dye tracks, deduplicated, for a candidate dye-sequence set.",
						ArgsUsage: "<model.csv> <dye_seqs.txt> <num_timesteps> <dye_tracks_per_peptide> <output.txt>",
						Flags: []cli.Flag{
							&cli.Int64Flag{Name: "seed", Value: 1, Usage: "RNG seed."},
							&cli.BoolFlag{Name: "verify", Usage: "Re-read the written file and confirm its checksum matches."},
						},
						Action: runSimulateDT,
					},
					{
						Name:      "rad",
						Usage:     "Generate radiometries sampled from a candidate dye-sequence set, weighted by multiplicity.",
						ArgsUsage: "<model.csv> <dye_seqs.txt> <num_timesteps> <num_to_generate> <output.txt>",
						Flags: []cli.Flag{
							&cli.Int64Flag{Name: "seed", Value: 1, Usage: "RNG seed."},
							&cli.BoolFlag{Name: "verify", Usage: "Re-read the written file and confirm its checksum matches."},
						},
						Action: runSimulateRad,
					},
				},
			},
			{
				Name:      "fit",
				Usage:     "Fit sequencing-model parameters to observed radiometries via Baum-Welch EM.",
				ArgsUsage: "<prior_model.csv> <dye_seq> <radiometries.txt> <output_model.csv>",
				Flags: []cli.Flag{
					&cli.Float64Flag{Name: "threshold", Value: 1e-4, Usage: "EM stopping threshold."},
					&cli.BoolFlag{Name: "fit-emission", Usage: "Also re-estimate the emission (mu/sig) parameters."},
					&cli.IntFlag{Name: "workers", Value: 1, Usage: "Worker pool size."},
					&cli.IntFlag{Name: "bootstrap", Value: 0, Usage: "Bootstrap resample count B (0 skips bootstrapping). The resampled fits' intervals are not written; the output model is the full-set fit either way."},
					&cli.Int64Flag{Name: "seed", Value: 1, Usage: "Bootstrap RNG seed."},
				},
				Action: runFit,
			},
		},
	}

	return app
}
