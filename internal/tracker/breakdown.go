package tracker

import "github.com/kavram/adaptiq/internal/difficulty"

// LevelStats summarizes the answers given at one difficulty level.
type LevelStats struct {
	Answered int
	Correct  int
	Accuracy float64 // percent, 0-100
}

// Breakdown returns per-level answer stats for the summary and stats views.
// Levels with no answers are omitted.
func (t *Tracker) Breakdown() map[difficulty.Level]LevelStats {
	out := make(map[difficulty.Level]LevelStats)
	for _, ev := range t.events {
		st := out[ev.Level]
		st.Answered++
		if ev.Correct {
			st.Correct++
		}
		out[ev.Level] = st
	}
	for lvl, st := range out {
		st.Accuracy = float64(st.Correct) / float64(st.Answered) * 100
		out[lvl] = st
	}
	return out
}
