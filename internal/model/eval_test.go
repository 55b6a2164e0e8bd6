package model

import (
	"math"
	"testing"
)

// passthroughClassifier predicts positive exactly when the first feature
// is positive: weights pick out feature 0, standardization is identity.
func passthroughClassifier() *Classifier {
	return &Classifier{
		Weights: []float64{1, 0, 0, 0},
		Bias:    0,
		Mean:    []float64{0, 0, 0, 0},
		Std:     []float64{1, 1, 1, 1},
	}
}

func TestEvaluateConfusionMatrix(t *testing.T) {
	pos := []float64{1, 0, 0, 0}
	neg := []float64{-1, 0, 0, 0}

	// 2 true positives, 1 false positive, 3 true negatives, 2 false negatives.
	examples := []Example{
		{Features: pos, Label: 1},
		{Features: pos, Label: 1},
		{Features: pos, Label: 0},
		{Features: neg, Label: 0},
		{Features: neg, Label: 0},
		{Features: neg, Label: 0},
		{Features: neg, Label: 1},
		{Features: neg, Label: 1},
	}

	m := Evaluate(passthroughClassifier(), examples)

	const eps = 1e-9
	if math.Abs(m.Accuracy-0.625) > eps {
		t.Errorf("Accuracy = %f, want 0.625", m.Accuracy)
	}
	if math.Abs(m.Precision-2.0/3.0) > eps {
		t.Errorf("Precision = %f, want 2/3", m.Precision)
	}
	if math.Abs(m.Recall-0.5) > eps {
		t.Errorf("Recall = %f, want 0.5", m.Recall)
	}
	if math.Abs(m.F1-4.0/7.0) > eps {
		t.Errorf("F1 = %f, want 4/7", m.F1)
	}
}

func TestEvaluateNoPositivePredictions(t *testing.T) {
	neg := []float64{-1, 0, 0, 0}
	examples := []Example{
		{Features: neg, Label: 1},
		{Features: neg, Label: 0},
	}

	m := Evaluate(passthroughClassifier(), examples)
	if m.Precision != 0 || m.F1 != 0 {
		t.Errorf("precision/F1 = %f/%f, want 0/0", m.Precision, m.F1)
	}
	if math.IsNaN(m.Precision) || math.IsNaN(m.Recall) || math.IsNaN(m.F1) {
		t.Error("metrics must never be NaN")
	}
}

func TestSplitSizesAndDeterminism(t *testing.T) {
	examples := make([]Example, 10)
	for i := range examples {
		examples[i] = Example{Features: []float64{float64(i), 0, 0, 0}, Label: i % 2}
	}

	train1, test1 := Split(examples, 0.2)
	train2, test2 := Split(examples, 0.2)

	if len(train1) != 8 || len(test1) != 2 {
		t.Fatalf("split sizes = %d/%d, want 8/2", len(train1), len(test1))
	}
	for i := range train1 {
		if train1[i].Features[0] != train2[i].Features[0] {
			t.Fatal("train split differs between identical runs")
		}
	}
	for i := range test1 {
		if test1[i].Features[0] != test2[i].Features[0] {
			t.Fatal("test split differs between identical runs")
		}
	}

	// Together they still cover every example exactly once.
	seen := make(map[float64]bool)
	for _, ex := range append(append([]Example{}, train1...), test1...) {
		seen[ex.Features[0]] = true
	}
	if len(seen) != 10 {
		t.Errorf("split lost or duplicated examples: %d distinct, want 10", len(seen))
	}
}

func TestSplitClampsFraction(t *testing.T) {
	examples := make([]Example, 10)
	for i := range examples {
		examples[i] = Example{Features: []float64{float64(i), 0, 0, 0}}
	}
	train, test := Split(examples, 0.9)
	if len(test) != 5 || len(train) != 5 {
		t.Errorf("split sizes = %d/%d, want 5/5 after clamping", len(train), len(test))
	}
}
