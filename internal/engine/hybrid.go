package engine

import (
	"github.com/kavram/adaptiq/internal/difficulty"
	"github.com/kavram/adaptiq/internal/tracker"
)

// The arbiter trusts the model over the rules only inside this accuracy
// band (inclusive on both ends), and only when the rules see nothing
// actionable. Mid-band performance is where the fixed thresholds are least
// informative and the classifier has the most to add.
const (
	OverrideBandLow  = 70.0
	OverrideBandHigh = 85.0
)

// HybridPolicy runs the threshold rules and the probabilistic policy side
// by side and arbitrates when they disagree.
type HybridPolicy struct {
	rule *ThresholdPolicy
	ml   *ProbabilisticPolicy
}

// NewHybridPolicy builds the arbiter around an existing probabilistic
// policy, which keeps ownership of the classifier handle.
func NewHybridPolicy(ml *ProbabilisticPolicy) *HybridPolicy {
	return &HybridPolicy{rule: NewThresholdPolicy(), ml: ml}
}

func (p *HybridPolicy) Name() string { return "hybrid" }

// Decide gathers both opinions. Agreement passes through; on disagreement
// the model wins only when the rules said maintain and accuracy sits in
// the override band, otherwise the rules win.
func (p *HybridPolicy) Decide(snap tracker.Snapshot, level difficulty.Level) Decision {
	ruleDec := p.rule.Decide(snap, level)

	if !p.ml.Ready() {
		ruleDec.Fallback = FallbackUntrained
		return ruleDec
	}

	mlDec := p.ml.Decide(snap, level)

	if mlDec.Action == ruleDec.Action {
		return Decision{
			Action:      ruleDec.Action,
			Probability: mlDec.Probability,
			Source:      SourceAgreement,
			Fallback:    mlDec.Fallback,
		}
	}

	if ruleDec.Action == ActionMaintain &&
		snap.Accuracy >= OverrideBandLow && snap.Accuracy <= OverrideBandHigh {
		mlDec.Source = SourceOverride
		return mlDec
	}

	ruleDec.Source = SourceRule
	return ruleDec
}
