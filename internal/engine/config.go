package engine

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kavram/adaptiq/internal/model"
)

// Mode selects which decision policy a session runs.
type Mode string

const (
	ModeThreshold Mode = "threshold"
	ModeModel     Mode = "model"
	ModeHybrid    Mode = "hybrid"
)

// ParseMode converts a flag or env value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeThreshold:
		return ModeThreshold, nil
	case ModeModel:
		return ModeModel, nil
	case ModeHybrid:
		return ModeHybrid, nil
	default:
		return "", fmt.Errorf("unknown adaptation mode %q (want threshold, model or hybrid)", s)
	}
}

// Config selects the policy variant and where its classifier artifact
// lives. The variant is fixed for the life of a session.
type Config struct {
	Mode         Mode
	ArtifactPath string // empty means model.DefaultArtifactPath
}

// DefaultConfig runs the hybrid arbiter with the default artifact path.
func DefaultConfig() Config {
	return Config{Mode: ModeHybrid}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeThreshold, ModeModel, ModeHybrid:
		return nil
	default:
		return fmt.Errorf("unknown adaptation mode %q", c.Mode)
	}
}

// New builds the configured policy variant. Model-backed variants load the
// classifier artifact once, here; a missing or unusable artifact is not an
// error, the policy starts untrained and decides by rules.
func New(cfg Config, log *zap.Logger) (Policy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	if cfg.Mode == ModeThreshold {
		return NewThresholdPolicy(), nil
	}

	path := cfg.ArtifactPath
	if path == "" {
		p, err := model.DefaultArtifactPath()
		if err != nil {
			return nil, fmt.Errorf("resolve artifact path: %w", err)
		}
		path = p
	}

	ml := NewProbabilisticPolicy(model.LoadHandle(path, log), log)
	if cfg.Mode == ModeModel {
		return ml, nil
	}
	return NewHybridPolicy(ml), nil
}
