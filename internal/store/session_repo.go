package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrSessionNotFound indicates an update referenced a session id that was
// never created.
var ErrSessionNotFound = errors.New("session not found")

type sessionRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *sessionRepo) Create(ctx context.Context, rec *SessionRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, learner, mode, initial_level)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.StartedAt.Unix(), rec.Learner, rec.Mode, rec.InitialLevel)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *sessionRepo) AppendAnswer(ctx context.Context, sessionID string, a AnswerRecord) (int64, error) {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return 0, err
	}

	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events
		 (sequence, session_id, position, is_correct, response_seconds,
		  level, question, learner_answer, correct_answer, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, sessionID, a.Position, a.Correct, a.ResponseTime,
		a.Level, a.Question, a.LearnerAnswer, a.CorrectAnswer, created.Unix())
	if err != nil {
		return 0, fmt.Errorf("append answer: %w", err)
	}
	return seq, nil
}

func (r *sessionRepo) Finish(ctx context.Context, sessionID string, finalLevel string, totalAnswered, correctCount int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions
		 SET finished_at = ?, final_level = ?, total_answered = ?, correct_count = ?
		 WHERE id = ?`,
		time.Now().UTC().Unix(), finalLevel, totalAnswered, correctCount, sessionID)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish session %s: %w", sessionID, ErrSessionNotFound)
	}
	return nil
}

func (r *sessionRepo) History(ctx context.Context) ([]SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, learner, mode,
		        initial_level, final_level, total_answered, correct_count
		 FROM sessions ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionRecord
	index := make(map[string]int)
	for rows.Next() {
		var (
			rec        SessionRecord
			startedAt  int64
			finishedAt sql.NullInt64
		)
		err := rows.Scan(&rec.ID, &startedAt, &finishedAt, &rec.Learner, &rec.Mode,
			&rec.InitialLevel, &rec.FinalLevel, &rec.TotalAnswered, &rec.CorrectCount)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.StartedAt = time.Unix(startedAt, 0).UTC()
		if finishedAt.Valid {
			rec.FinishedAt = time.Unix(finishedAt.Int64, 0).UTC()
		}
		index[rec.ID] = len(sessions)
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	answers, err := r.db.QueryContext(ctx,
		`SELECT sequence, session_id, position, is_correct, response_seconds,
		        level, question, learner_answer, correct_answer, created_at
		 FROM answer_events ORDER BY sequence`)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer answers.Close()

	for answers.Next() {
		var (
			a         AnswerRecord
			sessionID string
			createdAt int64
		)
		err := answers.Scan(&a.Sequence, &sessionID, &a.Position, &a.Correct, &a.ResponseTime,
			&a.Level, &a.Question, &a.LearnerAnswer, &a.CorrectAnswer, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		a.CreatedAt = time.Unix(createdAt, 0).UTC()
		if i, ok := index[sessionID]; ok {
			sessions[i].Answers = append(sessions[i].Answers, a)
		}
	}
	if err := answers.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}

	return sessions, nil
}

func (r *sessionRepo) Stats(ctx context.Context) (*LifetimeStats, error) {
	stats := &LifetimeStats{ByLevel: make(map[string]LevelTally)}

	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&stats.Sessions)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(is_correct), 0), COALESCE(AVG(response_seconds), 0)
		 FROM answer_events`).
		Scan(&stats.TotalAnswered, &stats.CorrectCount, &stats.AvgResponseTime)
	if err != nil {
		return nil, fmt.Errorf("aggregate answers: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT level, COUNT(*), COALESCE(SUM(is_correct), 0)
		 FROM answer_events GROUP BY level`)
	if err != nil {
		return nil, fmt.Errorf("aggregate levels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			level string
			tally LevelTally
		)
		if err := rows.Scan(&level, &tally.Answered, &tally.Correct); err != nil {
			return nil, fmt.Errorf("scan level tally: %w", err)
		}
		stats.ByLevel[level] = tally
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate level tallies: %w", err)
	}

	return stats, nil
}
