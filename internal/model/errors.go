package model

import (
	"errors"
	"fmt"
)

// ErrNoExamples indicates a training run received an empty example set.
var ErrNoExamples = errors.New("no training examples")

// ErrNotReady indicates an estimate was requested from a handle without a
// trained classifier.
var ErrNotReady = errors.New("classifier not ready")

// ErrArtifactInvalid indicates a model artifact exists on disk but cannot
// be used (bad JSON, failed schema validation, inconsistent dimensions).
type ErrArtifactInvalid struct {
	Path string
	Err  error
}

func (e *ErrArtifactInvalid) Error() string {
	return fmt.Sprintf("invalid model artifact %s: %v", e.Path, e.Err)
}

func (e *ErrArtifactInvalid) Unwrap() error { return e.Err }
