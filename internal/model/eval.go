package model

import "math/rand"

// splitSeed fixes the train/test shuffle so repeated runs over the same
// history produce the same split.
const splitSeed = 42

// EvalMetrics are held-out classification diagnostics. All values are
// fractions in [0,1]; undefined ratios (zero denominator) report 0.
type EvalMetrics struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
}

// Evaluate scores the classifier on a labelled example set at the 0.5 cut.
// The metrics are informational and never gate artifact persistence.
func Evaluate(c *Classifier, examples []Example) EvalMetrics {
	var tp, fp, tn, fn int
	for _, ex := range examples {
		p, err := c.EstimateSuccess(ex.Features)
		if err != nil {
			continue
		}
		predicted := p >= 0.5
		actual := ex.Label == 1
		switch {
		case predicted && actual:
			tp++
		case predicted && !actual:
			fp++
		case !predicted && !actual:
			tn++
		default:
			fn++
		}
	}

	var m EvalMetrics
	total := tp + fp + tn + fn
	if total > 0 {
		m.Accuracy = float64(tp+tn) / float64(total)
	}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}

// Split shuffles the examples with a fixed seed and carves off testFraction
// of them as a held-out set. The input slice is not modified.
func Split(examples []Example, testFraction float64) (train, test []Example) {
	if testFraction < 0 {
		testFraction = 0
	}
	if testFraction > 0.5 {
		testFraction = 0.5
	}

	shuffled := make([]Example, len(examples))
	copy(shuffled, examples)
	rng := rand.New(rand.NewSource(splitSeed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	testN := int(float64(len(shuffled)) * testFraction)
	return shuffled[testN:], shuffled[:testN]
}
