package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/fluoroseq-project/fluoroseq/classify"
	"github.com/fluoroseq-project/fluoroseq/fit"
	"github.com/fluoroseq-project/fluoroseq/ioformat"
	"github.com/fluoroseq-project/fluoroseq/model"
	"github.com/fluoroseq-project/fluoroseq/simulate"
)

/******************************************************************************
File is structured as so:

	Top level commands:
		classify hmm / nn / hybrid
		simulate dt / rad
		fit

	Helper functions: loading/writing the ioformat file types, shared by every
	command above.

Each command's Action in main.go delegates straight here so main.go stays a
pure command-and-flag template. Every run* function returns a non-nil error
on any I/O or format problem instead of calling log.Fatal itself, so
*cli.App.Run propagates it and the process exits non-zero.
******************************************************************************/

func runClassifyHMM(c *cli.Context) error {
	sm, err := loadModel(c.Args().Get(0))
	if err != nil {
		return err
	}
	dyeSeqs, _, err := loadDyeSeqs(c.Args().Get(1))
	if err != nil {
		return err
	}
	radiometries, numTimesteps, err := loadRadiometries(c.Args().Get(2))
	if err != nil {
		return err
	}

	settings := model.Settings{DistCutoff: c.Float64("cutoff")}
	classifier := classify.NewHMM(numTimesteps, sm, settings, dyeSeqs, c.Int("workers"))
	results := classifier.Classify(radiometries)
	return writePredictions(c.Args().Get(3), results)
}

func runClassifyNN(c *cli.Context) error {
	sm, err := loadModel(c.Args().Get(0))
	if err != nil {
		return err
	}
	dyeTracks, _, _, err := loadDyeTracks(c.Args().Get(1))
	if err != nil {
		return err
	}
	radiometries, _, err := loadRadiometries(c.Args().Get(2))
	if err != nil {
		return err
	}

	classifier := classify.NewNN(sm, c.Int("k"), c.Float64("sig"), dyeTracks, c.Int("workers"))
	results := classifier.Classify(radiometries)
	return writePredictions(c.Args().Get(3), results)
}

func runClassifyHybrid(c *cli.Context) error {
	sm, err := loadModel(c.Args().Get(0))
	if err != nil {
		return err
	}
	dyeSeqs, _, err := loadDyeSeqs(c.Args().Get(1))
	if err != nil {
		return err
	}
	dyeTracks, _, _, err := loadDyeTracks(c.Args().Get(2))
	if err != nil {
		return err
	}
	radiometries, numTimesteps, err := loadRadiometries(c.Args().Get(3))
	if err != nil {
		return err
	}

	settings := model.Settings{DistCutoff: c.Float64("cutoff")}
	classifier := classify.NewHybrid(numTimesteps, sm, settings, c.Int("k"), c.Float64("sig"), dyeTracks, c.Int("h"), dyeSeqs, c.Int("workers"))
	results := classifier.Classify(radiometries)
	return writePredictions(c.Args().Get(4), results)
}

func runSimulateDT(c *cli.Context) error {
	sm, err := loadModel(c.Args().Get(0))
	if err != nil {
		return err
	}
	dyeSeqs, _, err := loadDyeSeqs(c.Args().Get(1))
	if err != nil {
		return err
	}
	numTimesteps, err := parseIntArg(c, 2, "num_timesteps")
	if err != nil {
		return err
	}
	perPeptide, err := parseIntArg(c, 3, "dye_tracks_per_peptide")
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(c.Int64("seed")))
	tracks := simulate.DyeTracks(sm, dyeSeqs, numTimesteps, perPeptide, rng)
	deduped := simulate.Dedup(tracks)

	return writeFileVerified(c, c.Args().Get(4), func(f io.Writer) error {
		return ioformat.WriteDyeTracks(f, numTimesteps, len(sm.Channels), deduped)
	})
}

func runSimulateRad(c *cli.Context) error {
	sm, err := loadModel(c.Args().Get(0))
	if err != nil {
		return err
	}
	dyeSeqs, _, err := loadDyeSeqs(c.Args().Get(1))
	if err != nil {
		return err
	}
	numTimesteps, err := parseIntArg(c, 2, "num_timesteps")
	if err != nil {
		return err
	}
	numToGenerate, err := parseIntArg(c, 3, "num_to_generate")
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(c.Int64("seed")))
	radiometries := simulate.Radiometries(sm, dyeSeqs, numTimesteps, numToGenerate, rng)
	values := make([]model.Radiometry, len(radiometries))
	for i, r := range radiometries {
		values[i] = r.Value
	}

	return writeFileVerified(c, c.Args().Get(4), func(f io.Writer) error {
		return ioformat.WriteRadiometries(f, numTimesteps, len(sm.Channels), values)
	})
}

func runFit(c *cli.Context) error {
	prior, err := loadModel(c.Args().Get(0))
	if err != nil {
		return err
	}
	seq, err := model.ParseDyeSeq(c.Args().Get(1), len(prior.Channels))
	if err != nil {
		return fmt.Errorf("fit: parsing dye sequence: %w", err)
	}
	radiometries, numTimesteps, err := loadRadiometries(c.Args().Get(2))
	if err != nil {
		return err
	}

	f := fit.Fitter{
		NumTimesteps:      numTimesteps,
		StoppingThreshold: c.Float64("threshold"),
		FitEmission:       c.Bool("fit-emission"),
		Workers:           c.Int("workers"),
	}

	var fitted model.SequencingModel
	if b := c.Int("bootstrap"); b > 0 {
		rng := rand.New(rand.NewSource(c.Int64("seed")))
		result := fit.Bootstrap(f, prior, seq, radiometries, b, 2.5, 97.5, rng)
		fitted = result.PointEstimate
	} else {
		fitted = fit.Run(f, prior, seq, radiometries)
	}

	report, err := fit.ReportDiff(prior, fitted)
	if err != nil {
		return err
	}
	fmt.Fprint(c.App.Writer, report)

	out, err := os.Create(c.Args().Get(3))
	if err != nil {
		return fmt.Errorf("fit: creating output file: %w", err)
	}
	defer out.Close()
	return ioformat.WriteSequencingModel(out, []model.SequencingModel{fitted})
}

func loadModel(path string) (model.SequencingModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.SequencingModel{}, fmt.Errorf("loading model: %w", err)
	}
	defer f.Close()
	models, err := ioformat.ReadSequencingModel(f)
	if err != nil {
		return model.SequencingModel{}, fmt.Errorf("loading model: %w", err)
	}
	if len(models) == 0 {
		return model.SequencingModel{}, fmt.Errorf("loading model: %s has no rows", path)
	}
	return models[0], nil
}

func loadDyeSeqs(path string) ([]model.SourcedData[model.DyeSeq, model.SourceCount], int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("loading dye sequences: %w", err)
	}
	defer f.Close()
	dyeSeqs, numChannels, err := ioformat.ReadDyeSeqs(f)
	if err != nil {
		return nil, 0, fmt.Errorf("loading dye sequences: %w", err)
	}
	return dyeSeqs, numChannels, nil
}

func loadDyeTracks(path string) ([]model.SourcedData[model.DyeTrack, model.SourceCountHitsList], int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("loading dye tracks: %w", err)
	}
	defer f.Close()
	dyeTracks, numTimesteps, numChannels, err := ioformat.ReadDyeTracks(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("loading dye tracks: %w", err)
	}
	return dyeTracks, numTimesteps, numChannels, nil
}

func loadRadiometries(path string) ([]model.Radiometry, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("loading radiometries: %w", err)
	}
	defer f.Close()
	radiometries, numTimesteps, _, err := ioformat.ReadRadiometries(f)
	if err != nil {
		return nil, 0, fmt.Errorf("loading radiometries: %w", err)
	}
	return radiometries, numTimesteps, nil
}

func writePredictions(path string, results []model.ScoredClassification) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing predictions: %w", err)
	}
	defer f.Close()
	if err := ioformat.WritePredictions(f, results); err != nil {
		return fmt.Errorf("writing predictions: %w", err)
	}
	return nil
}

// writeFileVerified renders write's output into memory first, then writes
// it to path. When -verify is set it re-reads path from disk afterward and
// confirms its blake2b checksum matches the in-memory bytes -- catching a
// truncated or corrupted write immediately rather than leaving it for a
// downstream command to discover.
func writeFileVerified(c *cli.Context, path string, write func(f io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if !c.Bool("verify") {
		return nil
	}

	reread, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("verifying %s: %w", path, err)
	}
	if ioformat.Checksum(buf.Bytes()) != ioformat.Checksum(reread) {
		return fmt.Errorf("verifying %s: checksum mismatch on re-read", path)
	}
	return nil
}

func parseIntArg(c *cli.Context, index int, name string) (int, error) {
	arg := c.Args().Get(index)
	var v int
	if _, err := fmt.Sscanf(arg, "%d", &v); err != nil {
		return 0, fmt.Errorf("parsing %s: expected integer, got %q", name, arg)
	}
	return v, nil
}
