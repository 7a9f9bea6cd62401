/*
Package fit implements the Baum-Welch-style expectation-maximization loop
that refits a SequencingModel's error-rate (and, optionally, emission)
parameters against a set of observed radiometries for a single known dye
sequence: each iteration's E-step runs hmm.Engine.ImproveFit over every
radiometry, merging their sufficient statistics associatively, then the
M-step re-estimates each parameter from the merged statistics. The loop
stops once the model moves by less than StoppingThreshold between
iterations (model.SequencingModel.Distance).
*/
package fit

import (
	"math"
	"sync"

	"github.com/fluoroseq-project/fluoroseq/fitstat"
	"github.com/fluoroseq-project/fluoroseq/hmm"
	"github.com/fluoroseq-project/fluoroseq/model"
	"github.com/fluoroseq-project/fluoroseq/precompute"
)

// Accumulator is the sufficient-statistics type hmm.Engine.ImproveFit
// writes into. It is an alias for fitstat.Accumulator so that package hmm
// never has to import package fit (which itself depends on hmm to run the
// E-step), breaking what would otherwise be an import cycle.
type Accumulator = fitstat.Accumulator

// Fitter configures one EM run.
type Fitter struct {
	NumTimesteps      int
	StoppingThreshold float64
	// FitEmission, when true, also re-estimates each channel's Mu and Sig
	// from the accumulated emission moments (Normal or LogNormal, chosen by
	// each channel's Kind); otherwise those two parameters are held pinned
	// to the prior model, matching the
	// classification use case where emission calibration is trusted but
	// error rates are not.
	FitEmission bool
	Settings    model.Settings
	// Workers bounds the E-step's worker pool; 0 or 1 runs serially.
	Workers int
}

// Run iterates the EM loop to convergence (or up to maxIterations, a
// backstop against a pathological model that never settles) and returns
// the fitted SequencingModel.
func Run(f Fitter, prior model.SequencingModel, seq model.DyeSeq, radiometries []model.Radiometry) model.SequencingModel {
	const maxIterations = 1000
	sm := prior.Clone()
	numChannels := len(sm.Channels)

	for iter := 0; iter < maxIterations; iter++ {
		acc := eStep(f, sm, seq, radiometries, numChannels)
		next := mStep(sm, acc, f.FitEmission)
		distance := sm.Distance(next)
		sm = next
		if distance < f.StoppingThreshold {
			break
		}
	}
	return sm
}

// eStep runs hmm.Engine.ImproveFit over every radiometry and merges the
// results. When f.Workers > 1, radiometries are partitioned across a fixed
// worker pool, each with its own thread-local accumulator, merged at a
// barrier once every worker has finished -- no shared accumulator is ever
// written by more than one goroutine.
func eStep(f Fitter, sm model.SequencingModel, seq model.DyeSeq, radiometries []model.Radiometry, numChannels int) *fitstat.Accumulator {
	universal := precompute.NewUniversal(sm, f.Settings)
	dsp := precompute.NewDyeSeqPrecomputations(seq, f.NumTimesteps, universal)
	universal.Reserve(dsp.MaxDye())

	workers := f.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(radiometries) {
		workers = len(radiometries)
	}
	if workers <= 1 {
		acc := fitstat.New(numChannels)
		for _, r := range radiometries {
			improveOne(universal, dsp, r, acc)
		}
		return acc
	}

	jobs := make(chan model.Radiometry, len(radiometries))
	for _, r := range radiometries {
		jobs <- r
	}
	close(jobs)

	partials := make([]*fitstat.Accumulator, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		w := w
		go func() {
			defer wg.Done()
			local := fitstat.New(numChannels)
			for r := range jobs {
				improveOne(universal, dsp, r, local)
			}
			partials[w] = local
		}()
	}
	wg.Wait()

	acc := fitstat.New(numChannels)
	for _, p := range partials {
		acc.Merge(p)
	}
	return acc
}

func improveOne(universal *precompute.Universal, dsp *precompute.DyeSeqPrecomputations, r model.Radiometry, acc *fitstat.Accumulator) {
	rp := precompute.NewRadiometryPrecomputations(r, universal)
	engine := hmm.New(universal, dsp, rp)
	engine.ImproveFit(acc)
}

// mStep re-estimates sm's parameters from acc's sufficient statistics,
// pinning emission parameters to sm's unless fitEmission is set.
func mStep(sm model.SequencingModel, acc *fitstat.Accumulator, fitEmission bool) model.SequencingModel {
	next := sm.Clone()
	next.PEdmanFailure = acc.EdmanFailure.Estimate()
	next.PDetach = acc.Detach.Estimate()
	for c := range next.Channels {
		next.Channels[c].PBleach = acc.Channels[c].Bleach.Estimate()
		next.Channels[c].PDud = acc.Channels[c].Dud.Estimate()
		if fitEmission {
			if next.Channels[c].Kind == model.Gaussian {
				mean, variance := acc.Channels[c].Normal.MeanVar()
				next.Channels[c].Mu = mean
				next.Channels[c].Sig = math.Sqrt(variance)
			} else {
				mean, variance := acc.Channels[c].LogNormal.MeanVar()
				next.Channels[c].Mu = math.Exp(mean)
				next.Channels[c].Sig = math.Sqrt(variance)
			}
		}
	}
	return next
}
