// Package session runs one quiz sitting: it serves puzzles at the current
// difficulty, grades answers, feeds the performance tracker, and lets the
// configured policy move the level between questions.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kavram/adaptiq/internal/difficulty"
	"github.com/kavram/adaptiq/internal/engine"
	"github.com/kavram/adaptiq/internal/puzzle"
	"github.com/kavram/adaptiq/internal/store"
	"github.com/kavram/adaptiq/internal/tracker"
)

// MinAnswersBeforeAdapt is how many answers must be recorded before the
// policy is consulted. With fewer the snapshot is too thin to act on.
const MinAnswersBeforeAdapt = 2

// DefaultMaxQuestions is the session length when the config leaves it unset.
const DefaultMaxQuestions = 10

// Config describes a session before it starts. Store and Policy are
// optional: a nil Store runs the session unpersisted, a nil Policy is
// built from Mode.
type Config struct {
	Learner      string
	Mode         engine.Mode
	InitialLevel difficulty.Level
	MaxQuestions int

	Store     *store.Store
	Policy    engine.Policy
	Generator *puzzle.Generator
	Log       *zap.Logger
}

// DefaultConfig starts a ten-question hybrid session at Medium.
func DefaultConfig() Config {
	return Config{
		Mode:         engine.ModeHybrid,
		InitialLevel: difficulty.Medium,
		MaxQuestions: DefaultMaxQuestions,
	}
}

// Validate checks the fields a session cannot run without.
func (c Config) Validate() error {
	if c.Learner == "" {
		return fmt.Errorf("learner name is required")
	}
	if _, err := engine.ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if !c.InitialLevel.Valid() {
		return fmt.Errorf("invalid initial level: %d", c.InitialLevel)
	}
	if c.MaxQuestions < 1 {
		return fmt.Errorf("max questions must be at least 1, got %d", c.MaxQuestions)
	}
	return nil
}

// Result is what Submit reports back for one answer. Decision is nil while
// the session is still warming up (fewer than MinAnswersBeforeAdapt answers).
type Result struct {
	Correct       bool
	CorrectAnswer float64
	Decision      *engine.Decision
	LevelChanged  bool
	NewLevel      difficulty.Level
}

// Session is the runtime state of one sitting.
type Session struct {
	id        string
	learner   string
	mode      engine.Mode
	maxQ      int
	startedAt time.Time

	policy  engine.Policy
	gen     *puzzle.Generator
	track   *tracker.Tracker
	history *difficulty.History
	repo    store.SessionRepo
	log     *zap.Logger

	finished bool
}

// New builds a session from cfg and, when a store is configured, creates
// its persistent record.
func New(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.MaxQuestions == 0 {
		cfg.MaxQuestions = DefaultMaxQuestions
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	policy := cfg.Policy
	if policy == nil {
		p, err := engine.New(engine.Config{Mode: cfg.Mode}, log)
		if err != nil {
			return nil, fmt.Errorf("build policy: %w", err)
		}
		policy = p
	}

	gen := cfg.Generator
	if gen == nil {
		gen = puzzle.NewGenerator(nil)
	}

	s := &Session{
		id:        uuid.New().String(),
		learner:   cfg.Learner,
		mode:      cfg.Mode,
		maxQ:      cfg.MaxQuestions,
		startedAt: time.Now(),
		policy:    policy,
		gen:       gen,
		track:     tracker.New(),
		history:   difficulty.NewHistory(cfg.InitialLevel),
		log:       log,
	}

	if cfg.Store != nil {
		s.repo = cfg.Store.Sessions()
		rec := &store.SessionRecord{
			ID:           s.id,
			StartedAt:    s.startedAt,
			Learner:      s.learner,
			Mode:         string(s.mode),
			InitialLevel: cfg.InitialLevel.String(),
		}
		if err := s.repo.Create(ctx, rec); err != nil {
			return nil, fmt.Errorf("create session record: %w", err)
		}
	}

	log.Info("session started",
		zap.String("session_id", s.id),
		zap.String("learner", s.learner),
		zap.String("mode", string(s.mode)),
		zap.String("level", s.history.Current().String()),
	)
	return s, nil
}

// ID returns the session's UUID.
func (s *Session) ID() string { return s.id }

// Learner returns the configured learner name.
func (s *Session) Learner() string { return s.learner }

// Level returns the difficulty the next puzzle will be generated at.
func (s *Session) Level() difficulty.Level { return s.history.Current() }

// Answered returns how many answers have been submitted.
func (s *Session) Answered() int { return s.track.Count() }

// Done reports whether the session has served its full question count.
func (s *Session) Done() bool { return s.track.Count() >= s.maxQ }

// MaxQuestions returns the configured session length.
func (s *Session) MaxQuestions() int { return s.maxQ }

// NextPuzzle generates a puzzle at the current difficulty.
func (s *Session) NextPuzzle() *puzzle.Puzzle {
	return s.gen.Generate(s.history.Current())
}

// Submit grades one answer, records it, and adapts the difficulty once
// enough answers are in. The returned Result describes both the grading
// and any level movement.
func (s *Session) Submit(ctx context.Context, p *puzzle.Puzzle, rawAnswer string, responseTime float64) (*Result, error) {
	correct := puzzle.CheckAnswer(rawAnswer, p)
	ev := s.track.Record(correct, responseTime, s.history.Current())

	if s.repo != nil {
		rec := store.AnswerRecord{
			Position:      ev.Index,
			Correct:       ev.Correct,
			ResponseTime:  ev.ResponseTime,
			Level:         ev.Level.String(),
			Question:      p.Question,
			LearnerAnswer: rawAnswer,
			CorrectAnswer: p.Answer,
		}
		if _, err := s.repo.AppendAnswer(ctx, s.id, rec); err != nil {
			return nil, fmt.Errorf("persist answer: %w", err)
		}
	}

	res := &Result{Correct: correct, CorrectAnswer: p.Answer}
	if s.track.Count() >= MinAnswersBeforeAdapt {
		snap := s.track.Snapshot()
		dec := s.policy.Decide(snap, s.history.Current())
		next := engine.Apply(dec.Action, s.history.Current())
		res.Decision = &dec
		res.LevelChanged = s.history.Record(next)
		if res.LevelChanged {
			s.log.Info("difficulty adjusted",
				zap.String("session_id", s.id),
				zap.String("action", string(dec.Action)),
				zap.String("source", string(dec.Source)),
				zap.String("level", next.String()),
			)
		}
	}
	res.NewLevel = s.history.Current()
	return res, nil
}

// Finish closes the session and, when persisted, writes the final totals.
// Calling it twice is a no-op.
func (s *Session) Finish(ctx context.Context) error {
	if s.finished {
		return nil
	}
	s.finished = true

	snap := s.track.Snapshot()
	if s.repo != nil {
		err := s.repo.Finish(ctx, s.id, s.history.Current().String(), snap.TotalAnswered, snap.CorrectCount)
		if err != nil {
			return fmt.Errorf("finish session record: %w", err)
		}
	}

	s.log.Info("session finished",
		zap.String("session_id", s.id),
		zap.Int("answered", snap.TotalAnswered),
		zap.Int("correct", snap.CorrectCount),
		zap.String("final_level", s.history.Current().String()),
	)
	return nil
}
