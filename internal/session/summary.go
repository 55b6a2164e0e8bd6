package session

import (
	"time"

	"github.com/kavram/adaptiq/internal/difficulty"
	"github.com/kavram/adaptiq/internal/tracker"
)

// Summary holds the data shown when a session ends.
type Summary struct {
	Learner      string
	Duration     time.Duration
	Snapshot     tracker.Snapshot
	FinalLevel   difficulty.Level
	LevelPath    []difficulty.Level
	LevelChanges int
	Breakdown    map[difficulty.Level]tracker.LevelStats
}

// Summary builds the end-of-session report from the current state.
func (s *Session) Summary() *Summary {
	return &Summary{
		Learner:      s.learner,
		Duration:     time.Since(s.startedAt),
		Snapshot:     s.track.Snapshot(),
		FinalLevel:   s.history.Current(),
		LevelPath:    s.history.Levels(),
		LevelChanges: s.history.Changes(),
		Breakdown:    s.track.Breakdown(),
	}
}
