package engine

import (
	"github.com/kavram/adaptiq/internal/difficulty"
	"github.com/kavram/adaptiq/internal/tracker"
)

// Cut points for the rule-based policy. Stepping up demands all three
// increase conditions at once; stepping down takes any single decrease
// condition.
const (
	IncreaseMinAccuracy = 80.0 // percent
	IncreaseMaxAvgTime  = 5.0  // seconds
	IncreaseMinStreak   = 2
	DecreaseMaxAccuracy = 60.0 // percent
	DecreaseMinAvgTime  = 8.0  // seconds
)

// ThresholdPolicy applies fixed accuracy, speed and streak rules.
// Stateless and deterministic.
type ThresholdPolicy struct{}

// NewThresholdPolicy returns the rule-based policy.
func NewThresholdPolicy() *ThresholdPolicy {
	return &ThresholdPolicy{}
}

func (p *ThresholdPolicy) Name() string { return "threshold" }

// Decide checks the step-up rule first, then the step-down rule. At Hard
// the step-up rule is skipped rather than clamped, so control still falls
// through to the step-down check; likewise stepping down is skipped at Easy.
func (p *ThresholdPolicy) Decide(snap tracker.Snapshot, level difficulty.Level) Decision {
	if snap.Accuracy >= IncreaseMinAccuracy &&
		snap.AvgResponseTime <= IncreaseMaxAvgTime &&
		snap.CurrentStreak >= IncreaseMinStreak &&
		level != difficulty.Hard {
		return Decision{Action: ActionIncrease, Source: SourceThreshold}
	}

	if (snap.Accuracy < DecreaseMaxAccuracy || snap.AvgResponseTime >= DecreaseMinAvgTime) &&
		level != difficulty.Easy {
		return Decision{Action: ActionDecrease, Source: SourceThreshold}
	}

	return Decision{Action: ActionMaintain, Source: SourceThreshold}
}
