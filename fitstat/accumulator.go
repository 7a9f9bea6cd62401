/*
Package fitstat holds the sufficient-statistics accumulators that the
transition operators in package transition write into during a Baum-Welch
E-step, and that package fit reduces into updated SequencingModel
parameters during the M-step.

Splitting this out of package transition (which builds the accumulators)
and package fit (which consumes them) keeps both of those packages free of
a dependency cycle: transition and fit both depend on fitstat, but not on
each other directly -- fit reaches transition only through package hmm.
*/
package fitstat

// EventOpportunity is the sufficient statistic for any "did a Bernoulli
// event fire at each opportunity" parameter (Edman failure, detachment,
// bleach, dud): the expected number of times the event happened, divided
// by the expected number of times it had the opportunity to happen,
// estimates the event's probability.
type EventOpportunity struct {
	Event       float64
	Opportunity float64
}

// Add accumulates o into e.
func (e *EventOpportunity) Add(o EventOpportunity) {
	e.Event += o.Event
	e.Opportunity += o.Opportunity
}

// Estimate returns Event/Opportunity, or 0 if there was no opportunity.
func (e EventOpportunity) Estimate() float64 {
	if e.Opportunity == 0 {
		return 0
	}
	return e.Event / e.Opportunity
}

// LogNormalMoments accumulates the weighted first and second moments of
// log(intensity/n) needed to refit a channel's log-normal emission
// parameters. Samples with n == 0 are skipped by the caller before adding.
type LogNormalMoments struct {
	SumWeight float64
	SumWX     float64
	SumWX2    float64
}

// Add folds in one weighted sample x (already log-transformed) with
// posterior weight w.
func (m *LogNormalMoments) Add(x, w float64) {
	m.SumWeight += w
	m.SumWX += w * x
	m.SumWX2 += w * x * x
}

// MeanVar returns the weighted mean and (population) variance of the
// accumulated log-samples, or (0, 0) if no weight was accumulated.
func (m LogNormalMoments) MeanVar() (mean, variance float64) {
	if m.SumWeight == 0 {
		return 0, 0
	}
	mean = m.SumWX / m.SumWeight
	variance = m.SumWX2/m.SumWeight - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, variance
}

func (m *LogNormalMoments) merge(o LogNormalMoments) {
	m.SumWeight += o.SumWeight
	m.SumWX += o.SumWX
	m.SumWX2 += o.SumWX2
}

// NormalMoments accumulates the weighted moments needed to refit a
// channel's Gaussian emission parameters directly in linear (intensity)
// space: mu is the per-dye mean SumX/SumN (sum of w*x over sum of w*n),
// and sigma^2 is the weighted mean over samples of (x - n*mu)^2/n, each
// sample scaled by its dye count n the way
// normal-distribution-fitter.cc's estimator requires (the n scaling on
// SumX2OverN differs from the log-normal case, since x itself, not log(x),
// is being fit). Samples with n == 0 are skipped by the caller before
// adding.
type NormalMoments struct {
	SumX       float64
	SumX2OverN float64
	SumN       float64
	SumWeight  float64
}

// Add folds in one weighted sample x (raw intensity, not log-transformed)
// observed with n dye molecules present and posterior weight w.
func (m *NormalMoments) Add(x float64, n int, w float64) {
	nf := float64(n)
	m.SumX += x * w
	m.SumX2OverN += x * x * w / nf
	m.SumN += nf * w
	m.SumWeight += w
}

// MeanVar returns the per-dye mean SumX/SumN and the weighted (population)
// variance (SumX2OverN - mean^2*SumN)/SumWeight, or (0, 0) if no weight was
// accumulated.
func (m NormalMoments) MeanVar() (mean, variance float64) {
	if m.SumN == 0 || m.SumWeight == 0 {
		return 0, 0
	}
	mean = m.SumX / m.SumN
	variance = (m.SumX2OverN - mean*mean*m.SumN) / m.SumWeight
	if variance < 0 {
		variance = 0
	}
	return mean, variance
}

func (m *NormalMoments) merge(o NormalMoments) {
	m.SumX += o.SumX
	m.SumX2OverN += o.SumX2OverN
	m.SumN += o.SumN
	m.SumWeight += o.SumWeight
}

// ChannelAccumulator holds the per-channel sufficient statistics: bleach
// and dud event/opportunity counts, plus emission moments (used only when
// the fitter is configured to refit emission parameters). Exactly one of
// LogNormal/Normal is populated per channel, selected by that channel's
// model.EmissionKind.
type ChannelAccumulator struct {
	Bleach    EventOpportunity
	Dud       EventOpportunity
	LogNormal LogNormalMoments
	Normal    NormalMoments
}

func (c *ChannelAccumulator) merge(o ChannelAccumulator) {
	c.Bleach.Add(o.Bleach)
	c.Dud.Add(o.Dud)
	c.LogNormal.merge(o.LogNormal)
	c.Normal.merge(o.Normal)
}

// Accumulator is the full set of sufficient statistics gathered from one
// forward/backward sweep (or merged across many), one slot per sequencing
// model parameter.
type Accumulator struct {
	EdmanFailure EventOpportunity
	Detach       EventOpportunity
	Channels     []ChannelAccumulator
}

// New returns a zeroed Accumulator sized for numChannels channels.
func New(numChannels int) *Accumulator {
	return &Accumulator{Channels: make([]ChannelAccumulator, numChannels)}
}

// Merge folds o's statistics into a. Merge is commutative and associative,
// so per-radiometry (or per-worker) accumulators can be combined in any
// order.
func (a *Accumulator) Merge(o *Accumulator) {
	a.EdmanFailure.Add(o.EdmanFailure)
	a.Detach.Add(o.Detach)
	for i := range a.Channels {
		a.Channels[i].merge(o.Channels[i])
	}
}
