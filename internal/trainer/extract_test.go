package trainer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavram/adaptiq/internal/store"
)

func answer(pos int, correct bool, rt float64, level string) store.AnswerRecord {
	return store.AnswerRecord{
		Position:     pos,
		Correct:      correct,
		ResponseTime: rt,
		Level:        level,
		Question:     "1 + 1 = ?",
	}
}

func session(id string, answers ...store.AnswerRecord) store.SessionRecord {
	correct := 0
	for _, a := range answers {
		if a.Correct {
			correct++
		}
	}
	return store.SessionRecord{
		ID:            id,
		StartedAt:     time.Date(2026, 8, 10, 16, 0, 0, 0, time.UTC),
		Learner:       "Maya",
		Mode:          "hybrid",
		InitialLevel:  "easy",
		FinalLevel:    "medium",
		TotalAnswered: len(answers),
		CorrectCount:  correct,
		Answers:       answers,
	}
}

func TestExtractFeaturesAndLabels(t *testing.T) {
	rec := session("s-1",
		answer(1, true, 2, "easy"),
		answer(2, false, 4, "easy"),
		answer(3, true, 3, "easy"),
		answer(4, true, 5, "easy"),
	)

	examples, skipped := Extract([]store.SessionRecord{rec})
	require.Zero(t, skipped)
	require.Len(t, examples, 2, "4 answers yield examples at positions 2 and 3")

	// Position 2: snapshot over [correct 2s, wrong 4s].
	first := examples[0]
	assert.Equal(t, 1, first.Label)
	assert.InDelta(t, 50.0, first.Features[0], 1e-9, "accuracy")
	assert.InDelta(t, 3.0, first.Features[1], 1e-9, "avg response time")
	assert.InDelta(t, 0.0, first.Features[2], 1e-9, "current streak")
	assert.InDelta(t, 50.0, first.Features[3], 1e-9, "recent accuracy")

	// Position 3: snapshot over [correct, wrong, correct].
	second := examples[1]
	assert.Equal(t, 1, second.Label)
	assert.InDelta(t, 100.0/1.5, second.Features[0], 1e-6, "accuracy 2/3")
	assert.InDelta(t, 3.0, second.Features[1], 1e-9, "avg response time")
	assert.InDelta(t, 1.0, second.Features[2], 1e-9, "current streak")
	assert.InDelta(t, 100.0/1.5, second.Features[3], 1e-6, "recent accuracy 2/3")
}

func TestExtractLabelSequence(t *testing.T) {
	rec := session("s-1",
		answer(1, true, 2, "easy"),
		answer(2, true, 2, "easy"),
		answer(3, false, 2, "easy"),
		answer(4, true, 2, "easy"),
		answer(5, false, 2, "easy"),
	)

	examples, _ := Extract([]store.SessionRecord{rec})
	require.Len(t, examples, 3)
	labels := []int{examples[0].Label, examples[1].Label, examples[2].Label}
	assert.Equal(t, []int{0, 1, 0}, labels)
}

func TestExtractShortSessionsContributeNothing(t *testing.T) {
	sessions := []store.SessionRecord{
		session("one", answer(1, true, 2, "easy")),
		session("two", answer(1, true, 2, "easy"), answer(2, false, 3, "easy")),
	}

	examples, skipped := Extract(sessions)
	assert.Empty(t, examples)
	assert.Zero(t, skipped, "short sessions are valid, just uninformative")
}

func TestExtractSkipsMalformedSessions(t *testing.T) {
	bad1 := session("bad-level", answer(1, true, 2, "easy"), answer(2, true, 2, "expert"), answer(3, true, 2, "easy"))
	bad2 := session("bad-time", answer(1, true, -5, "easy"), answer(2, true, 2, "easy"), answer(3, true, 2, "easy"))
	bad3 := session("bad-mode", answer(1, true, 2, "easy"), answer(2, true, 2, "easy"), answer(3, true, 2, "easy"))
	bad3.Mode = "ml"
	bad4 := session("no-learner", answer(1, true, 2, "easy"), answer(2, true, 2, "easy"), answer(3, true, 2, "easy"))
	bad4.Learner = ""
	good := session("good", answer(1, true, 2, "easy"), answer(2, false, 3, "easy"), answer(3, true, 2, "easy"))

	examples, skipped := Extract([]store.SessionRecord{bad1, bad2, bad3, bad4, good})
	assert.Equal(t, 4, skipped)
	assert.Len(t, examples, 1, "only the good session contributes")
}

func TestExtractNoSessions(t *testing.T) {
	examples, skipped := Extract(nil)
	assert.Empty(t, examples)
	assert.Zero(t, skipped)
}
