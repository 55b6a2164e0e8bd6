package engine

import (
	"github.com/kavram/adaptiq/internal/difficulty"
	"github.com/kavram/adaptiq/internal/tracker"
)

// Action is the difficulty adjustment a policy recommends for the next
// question.
type Action string

const (
	ActionIncrease Action = "increase"
	ActionMaintain Action = "maintain"
	ActionDecrease Action = "decrease"
)

// Source identifies which decision path produced an action.
type Source string

const (
	SourceThreshold Source = "threshold"      // fixed accuracy/speed/streak rules
	SourceModel     Source = "model"          // classifier probability cut points
	SourceSafety    Source = "safety"         // low-accuracy override
	SourceAgreement Source = "agreement"      // hybrid: both policies agreed
	SourceRule      Source = "rule-preferred" // hybrid: disagreement resolved to the rules
	SourceOverride  Source = "model-override" // hybrid: disagreement resolved to the model
)

// FallbackReason explains why a model-backed policy answered with threshold
// rules instead of the classifier.
type FallbackReason string

const (
	FallbackNone      FallbackReason = ""
	FallbackUntrained FallbackReason = "model-untrained"
	FallbackInference FallbackReason = "inference-failed"
)

// Decision is a policy's full answer: the action plus how it was reached,
// so logs and tests can assert why difficulty moved.
type Decision struct {
	Action      Action
	Probability float64 // classifier estimate; meaningful for model and model-override sources
	Source      Source
	Fallback    FallbackReason
}

// Policy decides how difficulty should move given current performance.
// Implementations are selected once at session construction.
type Policy interface {
	Name() string
	Decide(snap tracker.Snapshot, level difficulty.Level) Decision
}

// Apply resolves an action against a level, clamping at the boundaries.
// An action that cannot move (increase at Hard, decrease at Easy) leaves
// the level unchanged.
func Apply(action Action, level difficulty.Level) difficulty.Level {
	switch action {
	case ActionIncrease:
		return level.Next()
	case ActionDecrease:
		return level.Prev()
	default:
		return level
	}
}
