package engine

import (
	"go.uber.org/zap"

	"github.com/kavram/adaptiq/internal/difficulty"
	"github.com/kavram/adaptiq/internal/model"
	"github.com/kavram/adaptiq/internal/tracker"
)

// SafetyAccuracy is the floor below which difficulty always steps down
// (unless already at Easy), no matter what the classifier estimates.
const SafetyAccuracy = 50.0

// Probability cut points for acting on the classifier's success estimate.
// Estimates landing exactly on a cut point read as maintain.
const (
	IncreaseProbability = 0.6
	DecreaseProbability = 0.4
)

// SuccessEstimator is the slice of the model handle this policy consumes.
type SuccessEstimator interface {
	Ready() bool
	EstimateSuccess(features []float64) (float64, error)
}

// ProbabilisticPolicy asks a trained success classifier how likely the
// learner is to answer the next question correctly, and moves difficulty
// on that estimate. Without a usable classifier it answers with the
// threshold rules and says so in the decision.
type ProbabilisticPolicy struct {
	estimator SuccessEstimator
	fallback  *ThresholdPolicy
	log       *zap.Logger
}

// NewProbabilisticPolicy wraps est, typically a *model.Handle. A nil
// logger disables logging.
func NewProbabilisticPolicy(est SuccessEstimator, log *zap.Logger) *ProbabilisticPolicy {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProbabilisticPolicy{
		estimator: est,
		fallback:  NewThresholdPolicy(),
		log:       log,
	}
}

func (p *ProbabilisticPolicy) Name() string { return "probabilistic" }

// Ready reports whether the underlying classifier can serve estimates.
func (p *ProbabilisticPolicy) Ready() bool {
	return p.estimator != nil && p.estimator.Ready()
}

// Decide applies, in order: the safety override, the untrained fallback,
// then the classifier's estimate against the probability cut points.
func (p *ProbabilisticPolicy) Decide(snap tracker.Snapshot, level difficulty.Level) Decision {
	// A struggling learner steps down regardless of model opinion.
	if snap.Accuracy < SafetyAccuracy && level != difficulty.Easy {
		return Decision{Action: ActionDecrease, Source: SourceSafety}
	}

	if !p.Ready() {
		d := p.fallback.Decide(snap, level)
		d.Fallback = FallbackUntrained
		return d
	}

	prob, err := p.estimator.EstimateSuccess(model.Features(snap))
	if err != nil {
		// Recoverable: this decision uses the rules, the next one may use
		// the model again.
		p.log.Warn("success estimate failed, deciding by threshold rules",
			zap.Error(err))
		d := p.fallback.Decide(snap, level)
		d.Fallback = FallbackInference
		return d
	}

	d := Decision{Action: ActionMaintain, Probability: prob, Source: SourceModel}
	switch {
	case prob > IncreaseProbability && level != difficulty.Hard:
		d.Action = ActionIncrease
	case prob < DecreaseProbability && level != difficulty.Easy:
		d.Action = ActionDecrease
	}
	return d
}
