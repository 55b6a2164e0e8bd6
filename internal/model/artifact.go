package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// artifactVersion is the on-disk model format version.
const artifactVersion = 1

// Artifact is the persisted JSON form of a trained classifier.
type Artifact struct {
	Version      int       `json:"version"`
	TrainedAt    time.Time `json:"trained_at"`
	FeatureNames []string  `json:"feature_names"`
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
	Mean         []float64 `json:"mean"`
	Std          []float64 `json:"std"`
}

// artifactSchemaDef constrains the artifact file shape before unmarshaling,
// so a hand-edited or truncated file fails with a clear validation error
// rather than a zero-valued classifier.
var artifactSchemaDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version":       map[string]any{"type": "integer", "minimum": 1},
		"trained_at":    map[string]any{"type": "string"},
		"feature_names": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"weights":       map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
		"bias":          map[string]any{"type": "number"},
		"mean":          map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
		"std":           map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
	},
	"required":             []any{"version", "trained_at", "feature_names", "weights", "bias", "mean", "std"},
	"additionalProperties": false,
}

var (
	artifactSchemaOnce sync.Once
	artifactSchema     *jsonschema.Schema
	artifactSchemaErr  error
)

func compiledArtifactSchema() (*jsonschema.Schema, error) {
	artifactSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		const url = "schema://model-artifact.json"
		if err := c.AddResource(url, artifactSchemaDef); err != nil {
			artifactSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		artifactSchema, artifactSchemaErr = c.Compile(url)
	})
	return artifactSchema, artifactSchemaErr
}

// Save writes the classifier as a versioned JSON artifact at path,
// creating parent directories as needed.
func Save(path string, c *Classifier) error {
	art := Artifact{
		Version:      artifactVersion,
		TrainedAt:    time.Now().UTC(),
		FeatureNames: FeatureNames,
		Weights:      c.Weights,
		Bias:         c.Bias,
		Mean:         c.Mean,
		Std:          c.Std,
	}
	raw, err := json.MarshalIndent(art, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

// Load reads and validates the artifact at path and reconstructs the
// classifier. A missing file surfaces as a wrapped os.ErrNotExist; any
// structural problem surfaces as *ErrArtifactInvalid.
func Load(path string) (*Classifier, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &ErrArtifactInvalid{Path: path, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	schema, err := compiledArtifactSchema()
	if err != nil {
		return nil, &ErrArtifactInvalid{Path: path, Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &ErrArtifactInvalid{Path: path, Err: fmt.Errorf("schema validation: %w", err)}
	}

	var art Artifact
	if err := json.Unmarshal(raw, &art); err != nil {
		return nil, &ErrArtifactInvalid{Path: path, Err: err}
	}
	if art.Version != artifactVersion {
		return nil, &ErrArtifactInvalid{Path: path, Err: fmt.Errorf("unsupported version %d", art.Version)}
	}
	if len(art.Weights) != FeatureCount || len(art.Mean) != FeatureCount || len(art.Std) != FeatureCount {
		return nil, &ErrArtifactInvalid{
			Path: path,
			Err: fmt.Errorf("dimension mismatch: weights=%d mean=%d std=%d, want %d",
				len(art.Weights), len(art.Mean), len(art.Std), FeatureCount),
		}
	}
	for j, s := range art.Std {
		if s == 0 {
			return nil, &ErrArtifactInvalid{Path: path, Err: fmt.Errorf("zero std for feature %d", j)}
		}
	}

	return &Classifier{
		Weights: art.Weights,
		Bias:    art.Bias,
		Mean:    art.Mean,
		Std:     art.Std,
	}, nil
}

// DefaultArtifactPath resolves the model artifact path in priority order:
// 1. ADAPTIQ_MODEL environment variable
// 2. $XDG_DATA_HOME/adaptiq/model.json
// 3. ~/.local/share/adaptiq/model.json
func DefaultArtifactPath() (string, error) {
	if p := os.Getenv("ADAPTIQ_MODEL"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "adaptiq", "model.json"), nil
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
