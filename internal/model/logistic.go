package model

import (
	"fmt"
	"math"
)

// Gradient descent settings. Full-batch over a few hundred examples at
// FeatureCount=4 converges well before the epoch cap.
const (
	trainEpochs       = 500
	trainLearningRate = 0.1
)

// Example is one labelled training observation: a feature vector and
// whether the learner answered the following question correctly.
type Example struct {
	Features []float64
	Label    int // 1 = answered correctly, 0 = not
}

// Classifier is a logistic regression over standardized features: the
// success probability is sigmoid(w . standardize(x) + b). Fields are
// exported for artifact serialization.
type Classifier struct {
	Weights []float64
	Bias    float64
	Mean    []float64
	Std     []float64
}

// Train fits a classifier on the given examples with full-batch gradient
// descent. Features are standardized to zero mean and unit variance first;
// raw scales mix percentages, seconds and counts, which stalls a fixed-rate
// descent. Training is deterministic: same examples in, same weights out.
func Train(examples []Example) (*Classifier, error) {
	if len(examples) == 0 {
		return nil, ErrNoExamples
	}
	for i, ex := range examples {
		if len(ex.Features) != FeatureCount {
			return nil, fmt.Errorf("example %d has %d features, want %d", i, len(ex.Features), FeatureCount)
		}
		if ex.Label != 0 && ex.Label != 1 {
			return nil, fmt.Errorf("example %d has label %d, want 0 or 1", i, ex.Label)
		}
	}

	mean, std := standardization(examples)
	c := &Classifier{
		Weights: make([]float64, FeatureCount),
		Mean:    mean,
		Std:     std,
	}

	n := float64(len(examples))
	grad := make([]float64, FeatureCount)
	for epoch := 0; epoch < trainEpochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		var gradBias float64

		for _, ex := range examples {
			x := c.standardize(ex.Features)
			p := sigmoid(dot(c.Weights, x) + c.Bias)
			diff := p - float64(ex.Label)
			for j := range grad {
				grad[j] += diff * x[j]
			}
			gradBias += diff
		}

		for j := range c.Weights {
			c.Weights[j] -= trainLearningRate * grad[j] / n
		}
		c.Bias -= trainLearningRate * gradBias / n
	}
	return c, nil
}

// EstimateSuccess returns the probability in [0,1] that the learner answers
// the next question correctly, given the current feature vector.
func (c *Classifier) EstimateSuccess(features []float64) (float64, error) {
	if len(features) != FeatureCount {
		return 0, fmt.Errorf("feature vector has %d values, want %d", len(features), FeatureCount)
	}
	x := c.standardize(features)
	return sigmoid(dot(c.Weights, x) + c.Bias), nil
}

// Accuracy returns the fraction of examples the classifier labels correctly
// at the 0.5 cut. Diagnostic only.
func (c *Classifier) Accuracy(examples []Example) float64 {
	if len(examples) == 0 {
		return 0
	}
	hits := 0
	for _, ex := range examples {
		p, err := c.EstimateSuccess(ex.Features)
		if err != nil {
			continue
		}
		predicted := 0
		if p >= 0.5 {
			predicted = 1
		}
		if predicted == ex.Label {
			hits++
		}
	}
	return float64(hits) / float64(len(examples))
}

func (c *Classifier) standardize(features []float64) []float64 {
	out := make([]float64, len(features))
	for j, v := range features {
		out[j] = (v - c.Mean[j]) / c.Std[j]
	}
	return out
}

// standardization computes per-feature mean and standard deviation.
// A constant feature gets std 1 so standardizing maps it to zero instead
// of dividing by zero.
func standardization(examples []Example) (mean, std []float64) {
	mean = make([]float64, FeatureCount)
	std = make([]float64, FeatureCount)
	n := float64(len(examples))

	for _, ex := range examples {
		for j, v := range ex.Features {
			mean[j] += v
		}
	}
	for j := range mean {
		mean[j] /= n
	}

	for _, ex := range examples {
		for j, v := range ex.Features {
			d := v - mean[j]
			std[j] += d * d
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / n)
		if std[j] == 0 {
			std[j] = 1
		}
	}
	return mean, std
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
