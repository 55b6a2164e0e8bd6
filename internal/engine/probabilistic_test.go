package engine

import (
	"errors"
	"testing"

	"github.com/kavram/adaptiq/internal/difficulty"
)

// stubEstimator scripts the classifier for policy tests.
type stubEstimator struct {
	ready    bool
	prob     float64
	failNext bool
	calls    int
}

func (s *stubEstimator) Ready() bool { return s.ready }

func (s *stubEstimator) EstimateSuccess(features []float64) (float64, error) {
	s.calls++
	if s.failNext {
		s.failNext = false
		return 0, errors.New("scripted inference failure")
	}
	return s.prob, nil
}

func TestSafetyOverrideBeatsClassifier(t *testing.T) {
	est := &stubEstimator{ready: true, prob: 0.95}
	p := NewProbabilisticPolicy(est, nil)

	d := p.Decide(perfSnap(40, 6, 0), difficulty.Medium)
	if d.Action != ActionDecrease {
		t.Errorf("Decide() = %s, want decrease", d.Action)
	}
	if d.Source != SourceSafety {
		t.Errorf("Source = %s, want safety", d.Source)
	}
	if est.calls != 0 {
		t.Errorf("classifier consulted %d times, want 0", est.calls)
	}
}

func TestSafetyOverrideSkippedAtEasy(t *testing.T) {
	est := &stubEstimator{ready: true, prob: 0.95}
	p := NewProbabilisticPolicy(est, nil)

	// Already at the floor: no step down, the model runs normally.
	d := p.Decide(perfSnap(40, 6, 0), difficulty.Easy)
	if d.Source != SourceModel {
		t.Errorf("Source = %s, want model", d.Source)
	}
	if d.Action != ActionIncrease {
		t.Errorf("Decide() = %s, want increase at p=0.95", d.Action)
	}
}

func TestUntrainedDelegatesToThresholds(t *testing.T) {
	p := NewProbabilisticPolicy(&stubEstimator{ready: false}, nil)

	d := p.Decide(perfSnap(85, 3, 3), difficulty.Easy)
	if d.Action != ActionIncrease {
		t.Errorf("Decide() = %s, want increase from threshold rules", d.Action)
	}
	if d.Fallback != FallbackUntrained {
		t.Errorf("Fallback = %q, want model-untrained", d.Fallback)
	}
	if d.Source != SourceThreshold {
		t.Errorf("Source = %s, want threshold", d.Source)
	}
}

func TestNilEstimatorDelegatesToThresholds(t *testing.T) {
	p := NewProbabilisticPolicy(nil, nil)
	d := p.Decide(perfSnap(70, 6, 1), difficulty.Medium)
	if d.Action != ActionMaintain || d.Fallback != FallbackUntrained {
		t.Errorf("Decide() = %s/%q, want maintain/model-untrained", d.Action, d.Fallback)
	}
}

func TestInferenceFailureFallsBackOnce(t *testing.T) {
	est := &stubEstimator{ready: true, prob: 0.9, failNext: true}
	p := NewProbabilisticPolicy(est, nil)
	snap := perfSnap(85, 3, 3)

	first := p.Decide(snap, difficulty.Easy)
	if first.Fallback != FallbackInference {
		t.Errorf("first Fallback = %q, want inference-failed", first.Fallback)
	}
	if first.Action != ActionIncrease {
		t.Errorf("first Decide() = %s, want increase from rules", first.Action)
	}

	// The failure does not poison later calls.
	second := p.Decide(snap, difficulty.Easy)
	if second.Source != SourceModel {
		t.Errorf("second Source = %s, want model", second.Source)
	}
	if second.Fallback != FallbackNone {
		t.Errorf("second Fallback = %q, want empty", second.Fallback)
	}
	if second.Probability != 0.9 {
		t.Errorf("second Probability = %f, want 0.9", second.Probability)
	}
}

func TestProbabilityCutPoints(t *testing.T) {
	tests := []struct {
		name  string
		prob  float64
		level difficulty.Level
		want  Action
	}{
		{"confident steps up", 0.7, difficulty.Medium, ActionIncrease},
		{"confident holds at hard", 0.7, difficulty.Hard, ActionMaintain},
		{"doubtful steps down", 0.3, difficulty.Medium, ActionDecrease},
		{"doubtful holds at easy", 0.3, difficulty.Easy, ActionMaintain},
		{"upper cut point holds", 0.6, difficulty.Medium, ActionMaintain},
		{"lower cut point holds", 0.4, difficulty.Medium, ActionMaintain},
		{"mid band holds", 0.5, difficulty.Medium, ActionMaintain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProbabilisticPolicy(&stubEstimator{ready: true, prob: tt.prob}, nil)
			d := p.Decide(perfSnap(75, 4, 2), tt.level)
			if d.Action != tt.want {
				t.Errorf("Decide(p=%v, %s) = %s, want %s", tt.prob, tt.level, d.Action, tt.want)
			}
			if d.Source != SourceModel {
				t.Errorf("Source = %s, want model", d.Source)
			}
			if d.Probability != tt.prob {
				t.Errorf("Probability = %f, want %f", d.Probability, tt.prob)
			}
		})
	}
}
