package model

import (
	"errors"
	"os"

	"go.uber.org/zap"
)

// State describes where a classifier handle is in its lifecycle.
type State int

const (
	StateUninitialized State = iota // no load attempted yet
	StateUntrained                  // load attempted, no usable artifact
	StateReady                      // trained classifier loaded
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateUntrained:
		return "untrained"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Handle owns the trained classifier a policy consults, if one exists.
// The zero value is an uninitialized handle that refuses estimates.
type Handle struct {
	state State
	clf   *Classifier
}

// LoadHandle attempts to load the artifact at path. A missing or invalid
// artifact degrades to an Untrained handle; callers fall back to rule-based
// decisions, so neither case is fatal.
func LoadHandle(path string, log *zap.Logger) *Handle {
	clf, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info("no trained model artifact, rule-based decisions only",
				zap.String("path", path))
		} else {
			log.Warn("model artifact unusable, rule-based decisions only",
				zap.String("path", path), zap.Error(err))
		}
		return &Handle{state: StateUntrained}
	}
	return &Handle{state: StateReady, clf: clf}
}

// NewReadyHandle wraps an in-memory classifier. Used by the trainer to
// sanity-check a fresh fit and by tests.
func NewReadyHandle(c *Classifier) *Handle {
	return &Handle{state: StateReady, clf: c}
}

// State returns the handle's lifecycle state.
func (h *Handle) State() State {
	if h == nil {
		return StateUninitialized
	}
	return h.state
}

// Ready reports whether the handle can serve estimates.
func (h *Handle) Ready() bool {
	return h != nil && h.state == StateReady
}

// EstimateSuccess proxies to the loaded classifier.
// Returns ErrNotReady when no classifier is loaded.
func (h *Handle) EstimateSuccess(features []float64) (float64, error) {
	if !h.Ready() {
		return 0, ErrNotReady
	}
	return h.clf.EstimateSuccess(features)
}
