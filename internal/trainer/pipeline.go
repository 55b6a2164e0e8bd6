package trainer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kavram/adaptiq/internal/model"
	"github.com/kavram/adaptiq/internal/store"
)

// ErrTooFewExamples indicates history produced fewer usable examples than
// the configured floor. No artifact is written in that case.
var ErrTooFewExamples = errors.New("too few training examples")

// HistorySource yields stored sessions for training. *store.Store's
// session repo satisfies it.
type HistorySource interface {
	History(ctx context.Context) ([]store.SessionRecord, error)
}

// Config holds the knobs for a training run.
type Config struct {
	ArtifactPath string  // empty means model.DefaultArtifactPath
	MinExamples  int     // floor below which the run fails
	TestFraction float64 // held-out share for evaluation
}

// DefaultConfig requires ten examples and holds out a fifth of them.
func DefaultConfig() Config {
	return Config{MinExamples: 10, TestFraction: 0.2}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MinExamples < 1 {
		return fmt.Errorf("min examples must be positive, got %d", c.MinExamples)
	}
	if c.TestFraction < 0 || c.TestFraction > 0.5 {
		return fmt.Errorf("test fraction %v outside [0, 0.5]", c.TestFraction)
	}
	return nil
}

// Report summarizes a completed training run.
type Report struct {
	SessionsSeen    int
	SessionsSkipped int
	Examples        int
	TrainExamples   int
	TestExamples    int
	TrainAccuracy   float64
	Eval            model.EvalMetrics
	ArtifactPath    string
}

// Pipeline turns persisted session history into a trained classifier
// artifact: load, validate, extract, split, fit, evaluate, save.
type Pipeline struct {
	source HistorySource
	cfg    Config
	log    *zap.Logger
}

// NewPipeline builds a pipeline. A nil logger disables logging.
func NewPipeline(source HistorySource, cfg Config, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{source: source, cfg: cfg, log: log}
}

// Run executes the pipeline. Evaluation metrics are diagnostics: a weak
// model is still saved, only a failed fit or a thin example set is not.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	sessions, err := p.source.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	examples, skipped := Extract(sessions)
	p.log.Info("extracted training examples",
		zap.Int("sessions", len(sessions)),
		zap.Int("skipped_sessions", skipped),
		zap.Int("examples", len(examples)))

	if len(examples) < p.cfg.MinExamples {
		return nil, fmt.Errorf("%w: have %d, need %d",
			ErrTooFewExamples, len(examples), p.cfg.MinExamples)
	}

	trainSet, testSet := model.Split(examples, p.cfg.TestFraction)
	clf, err := model.Train(trainSet)
	if err != nil {
		return nil, fmt.Errorf("fit classifier: %w", err)
	}

	report := &Report{
		SessionsSeen:    len(sessions),
		SessionsSkipped: skipped,
		Examples:        len(examples),
		TrainExamples:   len(trainSet),
		TestExamples:    len(testSet),
		TrainAccuracy:   clf.Accuracy(trainSet),
		Eval:            model.Evaluate(clf, testSet),
	}

	path := p.cfg.ArtifactPath
	if path == "" {
		path, err = model.DefaultArtifactPath()
		if err != nil {
			return nil, fmt.Errorf("resolve artifact path: %w", err)
		}
	}
	if err := model.Save(path, clf); err != nil {
		return nil, err
	}
	report.ArtifactPath = path

	p.log.Info("saved model artifact",
		zap.String("path", path),
		zap.Float64("train_accuracy", report.TrainAccuracy),
		zap.Float64("test_accuracy", report.Eval.Accuracy))

	return report, nil
}
