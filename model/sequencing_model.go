package model

import "math"

// EmissionKind selects which emission density family a channel uses. The
// distilled spec names both "log-normal or Gaussian" for emission but
// doesn't give the selector a name; restored here from the upstream
// distribution-fitter split (log-normal vs normal).
type EmissionKind int

const (
	// Gaussian emission: intensity ~ N(d*mu, sqrt(bg_sig^2 + d*sig^2)).
	// The classifiers evaluate it with the model's Mu as given; nothing in
	// this module calls WithMuAsOne.
	Gaussian EmissionKind = iota
	// LogNormal emission: log(intensity) ~ N(log(d*mu), sig) for d > 0.
	// Used by the fitter when recovering absolute emission parameters.
	LogNormal
)

// ChannelModel holds the per-channel chemistry and emission parameters of
// the sequencing model.
type ChannelModel struct {
	PBleach float64
	PDud    float64
	Mu      float64
	Sig     float64
	BgSig   float64
	Kind    EmissionKind
}

// Sigma returns the per-state standard deviation of the emission
// distribution when n dye molecules of this channel are present.
func (c ChannelModel) Sigma(n int) float64 {
	return math.Sqrt(c.BgSig*c.BgSig + float64(n)*c.Sig*c.Sig)
}

const twoPi = 2 * math.Pi

// Density evaluates this channel's emission density at observed intensity x
// given n dye molecules present. n == 0 always uses the Gaussian branch
// (mean 0, sigma BgSig) since log(0) is undefined; n > 0 dispatches on Kind.
// cutoff, if positive, prunes states whose standardized distance from the
// density's mean exceeds cutoff standard deviations by returning 0 without
// evaluating the exponential -- an optimization, not a change of model,
// since such states' true density is already negligible.
func (c ChannelModel) Density(n int, x, cutoff float64) float64 {
	if n == 0 || c.Kind == Gaussian {
		sigma := c.Sigma(n)
		mean := float64(n) * c.Mu
		if sigma <= 0 {
			if x == mean {
				return math.Inf(1)
			}
			return 0
		}
		if cutoff > 0 && math.Abs(x-mean)/sigma > cutoff {
			return 0
		}
		z := (x - mean) / sigma
		return math.Exp(-0.5*z*z) / (sigma * math.Sqrt(twoPi))
	}

	// LogNormal, n > 0: log(x) ~ N(log(n*Mu), Sig).
	if x <= 0 {
		return 0
	}
	mean := math.Log(float64(n) * c.Mu)
	sigma := c.Sig
	if sigma <= 0 {
		if math.Log(x) == mean {
			return math.Inf(1)
		}
		return 0
	}
	lx := math.Log(x)
	if cutoff > 0 && math.Abs(lx-mean)/sigma > cutoff {
		return 0
	}
	z := (lx - mean) / sigma
	return math.Exp(-0.5*z*z) / (x * sigma * math.Sqrt(twoPi))
}

func (c ChannelModel) distance(o ChannelModel) float64 {
	d := math.Abs(c.PBleach - o.PBleach)
	d = math.Max(d, math.Abs(c.PDud-o.PDud))
	d = math.Max(d, math.Abs(c.Mu-o.Mu))
	d = math.Max(d, math.Abs(c.Sig-o.Sig))
	d = math.Max(d, math.Abs(c.BgSig-o.BgSig))
	return d
}

// SequencingModel is the full parameter bundle governing Edman failure,
// detachment, and per-channel bleach/dud/emission behavior.
type SequencingModel struct {
	PEdmanFailure float64
	PDetach       float64
	Channels      []ChannelModel
}

// NewSequencingModel returns a SequencingModel with numChannels identical
// zero-valued ChannelModels, ready for the caller to fill in.
func NewSequencingModel(numChannels int) SequencingModel {
	return SequencingModel{Channels: make([]ChannelModel, numChannels)}
}

// Distance is the max, over every scalar parameter (including every
// channel's), of the absolute difference between m and o. Used as the EM
// stopping criterion.
func (m SequencingModel) Distance(o SequencingModel) float64 {
	d := math.Abs(m.PEdmanFailure - o.PEdmanFailure)
	d = math.Max(d, math.Abs(m.PDetach-o.PDetach))
	for i := range m.Channels {
		d = math.Max(d, m.Channels[i].distance(o.Channels[i]))
	}
	return d
}

// WithMuAsOne returns a copy of m with every channel's Mu rescaled to 1 and
// Sig/BgSig rescaled by the same factor, so that intensities are expressed
// in units of "one dye's expected brightness" rather than absolute
// calibration units. The classifiers in package classify do not call it;
// they score against the model as given.
func (m SequencingModel) WithMuAsOne() SequencingModel {
	out := m
	out.Channels = make([]ChannelModel, len(m.Channels))
	for i, ch := range m.Channels {
		if ch.Mu == 0 {
			out.Channels[i] = ch
			continue
		}
		scale := 1 / ch.Mu
		ch.Sig *= scale
		ch.BgSig *= scale
		ch.Mu = 1
		out.Channels[i] = ch
	}
	return out
}

// Clone returns a deep copy of m, safe to mutate independently.
func (m SequencingModel) Clone() SequencingModel {
	out := m
	out.Channels = append([]ChannelModel(nil), m.Channels...)
	return out
}

// Settings holds the sequencing-wide knobs that are not themselves fit
// parameters.
type Settings struct {
	// DistCutoff is the truncation radius, in standard deviations, beyond
	// which the emission operator may treat a state's density as zero.
	DistCutoff float64
}

// ScoredClassification is the result of classifying one radiometry: the
// winning candidate's id, its raw score, and the total score mass across
// every candidate considered (weighted by candidate multiplicity).
type ScoredClassification struct {
	ID    int
	Score float64
	Total float64
}

// AdjustedScore is Score/Total, renormalizing the winning score against the
// total mass seen across all candidates. A Total of 0 (no candidate matched
// at all) must be handled by the caller before calling AdjustedScore --
// NewScoredClassificationSafe below is the recovery path spec.md requires.
func (s ScoredClassification) AdjustedScore() float64 {
	return s.Score / s.Total
}

// NewScoredClassificationSafe builds a ScoredClassification, rewriting the
// NaN that would otherwise arise from a zero Total (no candidate scored
// above zero) into the canonical {score: 0, total: 1} per spec.md's
// arithmetic-degeneracy recovery rule.
func NewScoredClassificationSafe(id int, score, total float64) ScoredClassification {
	if total == 0 {
		return ScoredClassification{ID: id, Score: 0, Total: 1}
	}
	return ScoredClassification{ID: id, Score: score, Total: total}
}
