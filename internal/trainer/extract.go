package trainer

import (
	"github.com/go-playground/validator/v10"

	"github.com/kavram/adaptiq/internal/difficulty"
	"github.com/kavram/adaptiq/internal/model"
	"github.com/kavram/adaptiq/internal/store"
	"github.com/kavram/adaptiq/internal/tracker"
)

// MinSessionAnswers is the fewest answers a session needs before it can
// contribute examples: two answers of context plus the answer being
// predicted.
const MinSessionAnswers = 3

// contextAnswers is how many answers must precede a position before the
// snapshot over them is worth learning from. Matches the live session,
// which also starts adapting after the second answer.
const contextAnswers = 2

var validate = validator.New()

// Extract converts stored sessions into labelled training examples.
//
// For each answer at 0-based position i >= contextAnswers, the example's
// features are the performance snapshot over answers [0, i) and the label
// is whether answer i was correct. Sessions shorter than MinSessionAnswers
// contribute nothing. Sessions that fail validation are skipped whole and
// counted, so one bad record never aborts a training run.
func Extract(sessions []store.SessionRecord) (examples []model.Example, skipped int) {
	for _, rec := range sessions {
		if err := validate.Struct(rec); err != nil {
			skipped++
			continue
		}
		if len(rec.Answers) < MinSessionAnswers {
			continue
		}

		tr := tracker.New()
		for i, ans := range rec.Answers {
			if i >= contextAnswers {
				label := 0
				if ans.Correct {
					label = 1
				}
				examples = append(examples, model.Example{
					Features: model.Features(tr.Snapshot()),
					Label:    label,
				})
			}

			// Validation already pinned the level to a known name.
			lvl, _ := difficulty.ParseLevel(ans.Level)
			tr.Record(ans.Correct, ans.ResponseTime, lvl)
		}
	}
	return examples, skipped
}
