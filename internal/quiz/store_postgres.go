package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresStore is a PostgreSQL-backed AttemptStore implementation.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed attempt store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

// Schema returns the DDL the store expects. Callers apply it through their
// own migration tooling; tests apply it directly.
func Schema() string {
	return `
CREATE TABLE IF NOT EXISTS quiz_attempts (
	id           UUID PRIMARY KEY,
	learner_id   TEXT NOT NULL,
	subject      TEXT NOT NULL,
	topic        TEXT NOT NULL,
	started_at   TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ,
	score        DOUBLE PRECISION NOT NULL DEFAULT 0,
	time_spent   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_quiz_attempts_learner ON quiz_attempts (learner_id, started_at);

CREATE TABLE IF NOT EXISTS quiz_responses (
	id             UUID PRIMARY KEY,
	attempt_id     UUID NOT NULL REFERENCES quiz_attempts (id) ON DELETE CASCADE,
	question       TEXT NOT NULL,
	student_answer TEXT NOT NULL,
	correct_answer TEXT NOT NULL,
	is_correct     BOOLEAN NOT NULL,
	answered_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quiz_responses_attempt ON quiz_responses (attempt_id, answered_at);
`
}

func (s *PostgresStore) SaveAttempt(ctx context.Context, attempt Attempt) error {
	if attempt.ID == "" {
		return fmt.Errorf("attempt id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO quiz_attempts (id, learner_id, subject, topic, started_at, completed_at, score, time_spent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE
		 SET completed_at = EXCLUDED.completed_at,
		     score = EXCLUDED.score,
		     time_spent = EXCLUDED.time_spent`,
		attempt.ID,
		attempt.LearnerID,
		attempt.Subject,
		attempt.Topic,
		attempt.StartedAt,
		attempt.CompletedAt,
		attempt.Performance.Score,
		attempt.Performance.TimeSpent,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	for _, r := range attempt.Responses {
		_, err = tx.Exec(ctx,
			`INSERT INTO quiz_responses (id, attempt_id, question, student_answer, correct_answer, is_correct, answered_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (id) DO NOTHING`,
			r.ID,
			attempt.ID,
			r.Question,
			r.StudentAnswer,
			r.CorrectAnswer,
			r.IsCorrect,
			r.AnsweredAt,
		)
		if err != nil {
			return fmt.Errorf("insert response: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAttempt(ctx context.Context, id string) (*Attempt, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	attempt := &Attempt{}
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, learner_id, subject, topic, started_at, completed_at, score, time_spent
		 FROM quiz_attempts
		 WHERE id = $1::uuid`,
		id,
	).Scan(
		&attempt.ID,
		&attempt.LearnerID,
		&attempt.Subject,
		&attempt.Topic,
		&attempt.StartedAt,
		&attempt.CompletedAt,
		&attempt.Performance.Score,
		&attempt.Performance.TimeSpent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("attempt not found: %s", id)
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, question, student_answer, correct_answer, is_correct, answered_at
		 FROM quiz_responses
		 WHERE attempt_id = $1::uuid
		 ORDER BY answered_at ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		r := QuestionResponse{QuizAttemptID: attempt.ID}
		if err := rows.Scan(
			&r.ID,
			&r.Question,
			&r.StudentAnswer,
			&r.CorrectAnswer,
			&r.IsCorrect,
			&r.AnsweredAt,
		); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		attempt.Responses = append(attempt.Responses, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}

	return attempt, nil
}

func (s *PostgresStore) ListAttempts(ctx context.Context, learnerID string) ([]Attempt, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT id::text, learner_id, subject, topic, started_at, completed_at, score, time_spent
		 FROM quiz_attempts
		 WHERE learner_id = $1
		 ORDER BY started_at ASC`,
		learnerID,
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(
			&a.ID,
			&a.LearnerID,
			&a.Subject,
			&a.Topic,
			&a.StartedAt,
			&a.CompletedAt,
			&a.Performance.Score,
			&a.Performance.TimeSpent,
		); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}

	return attempts, nil
}
