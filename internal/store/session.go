package store

import (
	"context"
	"time"
)

// SessionRecord is a stored practice session. Validate tags describe what a
// well-formed record looks like; the trainer checks them before using a
// session and skips records that fail, so old or hand-edited rows cannot
// poison a training run.
type SessionRecord struct {
	ID            string         `validate:"required"`
	StartedAt     time.Time      `validate:"required"`
	FinishedAt    time.Time
	Learner       string         `validate:"required"`
	Mode          string         `validate:"required,oneof=threshold model hybrid"`
	InitialLevel  string         `validate:"required,oneof=easy medium hard"`
	FinalLevel    string         `validate:"omitempty,oneof=easy medium hard"`
	TotalAnswered int            `validate:"gte=0"`
	CorrectCount  int            `validate:"gte=0"`
	Answers       []AnswerRecord `validate:"dive"`
}

// AnswerRecord is one stored answer within a session, in answer order.
type AnswerRecord struct {
	Sequence      int64
	Position      int     `validate:"gte=1"`
	Correct       bool
	ResponseTime  float64 `validate:"gte=0"`
	Level         string  `validate:"required,oneof=easy medium hard"`
	Question      string
	LearnerAnswer string
	CorrectAnswer float64
	CreatedAt     time.Time
}

// LevelTally aggregates answers at one difficulty level.
type LevelTally struct {
	Answered int
	Correct  int
}

// LifetimeStats summarizes everything in the store for the stats command.
type LifetimeStats struct {
	Sessions        int
	TotalAnswered   int
	CorrectCount    int
	AvgResponseTime float64
	ByLevel         map[string]LevelTally // keyed by level storage form
}

// SessionRepo stores practice sessions and their answer events.
type SessionRepo interface {
	// Create inserts the session row. Answers are appended separately as
	// the session progresses.
	Create(ctx context.Context, rec *SessionRecord) error

	// AppendAnswer stores one answer and returns its global sequence.
	AppendAnswer(ctx context.Context, sessionID string, a AnswerRecord) (int64, error)

	// Finish closes out the session row with its final tallies.
	Finish(ctx context.Context, sessionID string, finalLevel string, totalAnswered, correctCount int) error

	// History returns all sessions, oldest first, each with its answers in
	// append order.
	History(ctx context.Context) ([]SessionRecord, error)

	// Stats aggregates the whole store.
	Stats(ctx context.Context) (*LifetimeStats, error)
}
