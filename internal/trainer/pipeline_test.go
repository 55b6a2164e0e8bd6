package trainer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kavram/adaptiq/internal/model"
	"github.com/kavram/adaptiq/internal/store"
)

type stubSource struct {
	sessions []store.SessionRecord
	err      error
}

func (s *stubSource) History(ctx context.Context) ([]store.SessionRecord, error) {
	return s.sessions, s.err
}

// strongSession answers everything fast and correctly, weakSession the
// opposite. Together they give the fit cleanly separable classes.
func strongSession(id string) store.SessionRecord {
	answers := make([]store.AnswerRecord, 0, 7)
	for i := 1; i <= 7; i++ {
		answers = append(answers, answer(i, true, 2, "easy"))
	}
	return session(id, answers...)
}

func weakSession(id string) store.SessionRecord {
	answers := make([]store.AnswerRecord, 0, 7)
	for i := 1; i <= 7; i++ {
		answers = append(answers, answer(i, false, 9, "easy"))
	}
	return session(id, answers...)
}

func TestPipelineRunTrainsAndSaves(t *testing.T) {
	source := &stubSource{sessions: []store.SessionRecord{
		strongSession("s-1"),
		weakSession("s-2"),
		strongSession("s-3"),
		weakSession("s-4"),
	}}
	path := filepath.Join(t.TempDir(), "model.json")
	cfg := DefaultConfig()
	cfg.ArtifactPath = path

	report, err := NewPipeline(source, cfg, zap.NewNop()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, report.SessionsSeen)
	assert.Zero(t, report.SessionsSkipped)
	assert.Equal(t, 20, report.Examples, "each 7-answer session yields 5 examples")
	assert.Equal(t, 16, report.TrainExamples)
	assert.Equal(t, 4, report.TestExamples)
	assert.GreaterOrEqual(t, report.TrainAccuracy, 0.9)
	assert.Equal(t, path, report.ArtifactPath)

	clf, err := model.Load(path)
	require.NoError(t, err)

	// The saved classifier must separate the two behaviours it was fit on.
	strong, err := clf.EstimateSuccess([]float64{100, 2, 3, 100})
	require.NoError(t, err)
	weak, err := clf.EstimateSuccess([]float64{0, 9, 0, 0})
	require.NoError(t, err)
	assert.Greater(t, strong, weak)
}

func TestPipelineRunTooFewExamples(t *testing.T) {
	source := &stubSource{sessions: []store.SessionRecord{
		session("only",
			answer(1, true, 2, "easy"),
			answer(2, true, 2, "easy"),
			answer(3, false, 3, "easy"),
			answer(4, true, 2, "easy"),
			answer(5, true, 2, "easy"),
		),
	}}
	path := filepath.Join(t.TempDir(), "model.json")
	cfg := DefaultConfig()
	cfg.ArtifactPath = path

	_, err := NewPipeline(source, cfg, zap.NewNop()).Run(context.Background())
	require.ErrorIs(t, err, ErrTooFewExamples)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no artifact may be written on a failed run")
}

func TestPipelineRunEmptyHistory(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArtifactPath = filepath.Join(t.TempDir(), "model.json")

	_, err := NewPipeline(&stubSource{}, cfg, zap.NewNop()).Run(context.Background())
	assert.ErrorIs(t, err, ErrTooFewExamples)
}

func TestPipelineRunSourceError(t *testing.T) {
	boom := errors.New("database locked")
	cfg := DefaultConfig()
	cfg.ArtifactPath = filepath.Join(t.TempDir(), "model.json")

	_, err := NewPipeline(&stubSource{err: boom}, cfg, zap.NewNop()).Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestPipelineRunSkipsMalformed(t *testing.T) {
	bad := strongSession("bad")
	bad.Mode = "ml"
	source := &stubSource{sessions: []store.SessionRecord{
		strongSession("s-1"),
		weakSession("s-2"),
		strongSession("s-3"),
		weakSession("s-4"),
		bad,
	}}
	cfg := DefaultConfig()
	cfg.ArtifactPath = filepath.Join(t.TempDir(), "model.json")

	report, err := NewPipeline(source, cfg, zap.NewNop()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, report.SessionsSeen)
	assert.Equal(t, 1, report.SessionsSkipped)
	assert.Equal(t, 20, report.Examples)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"zero min examples", func(c *Config) { c.MinExamples = 0 }, true},
		{"negative test fraction", func(c *Config) { c.TestFraction = -0.1 }, true},
		{"test fraction above half", func(c *Config) { c.TestFraction = 0.6 }, true},
		{"no held-out set", func(c *Config) { c.TestFraction = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
