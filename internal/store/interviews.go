package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/starcoach/starcoach/internal/interview"
)

// Store persists the candidate/interview/question aggregate. It implements
// interview.Store.
type Store struct {
	db *DB
}

func New(db *DB) *Store {
	return &Store{db: db}
}

// InterviewSummary is one row of the stored-interview listing.
type InterviewSummary struct {
	ID             string
	CandidateName  string
	Company        string
	StartedAt      time.Time
	Completed      bool
	AnsweredCount  int
	QuestionCount  int
	AggregateScore sql.NullFloat64
}

func (s *Store) CreateCandidate(ctx context.Context, c *interview.Candidate) error {
	_, err := s.db.Pool.ExecContext(ctx, `
INSERT INTO candidates (id, name, resume, job_description, company, interviewer,
  resume_file_text, job_description_file_text, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`,
		c.ID, c.Name, c.Resume, c.JobDescription, c.Company, c.Interviewer,
		c.ResumeFileText, c.JobDescriptionFileText, c.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

func (s *Store) CreateInterview(ctx context.Context, iv *interview.Interview) error {
	tx, err := s.db.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO interviews (id, candidate_id, started_at, completed_at, aggregate_score, summary)
VALUES (?, ?, ?, NULL, NULL, '');
`, iv.ID, iv.CandidateID, iv.StartedAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("insert interview: %w", err)
	}

	for _, q := range iv.Questions {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO questions (id, interview_id, ord, text, answer, feedback, situation, task, action, result)
VALUES (?, ?, ?, ?, '', '', NULL, NULL, NULL, NULL);
`, q.ID, q.InterviewID, q.Order, q.Text); err != nil {
			return fmt.Errorf("insert question %d: %w", q.Order, err)
		}
	}

	return tx.Commit()
}

// SaveInterview writes the mutable interview fields and every question's
// submission data.
func (s *Store) SaveInterview(ctx context.Context, iv *interview.Interview) error {
	tx, err := s.db.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	completedAt := sql.NullString{}
	if iv.CompletedAt != nil {
		completedAt = sql.NullString{String: iv.CompletedAt.UTC().Format(time.RFC3339Nano), Valid: true}
	}

	aggregate := sql.NullFloat64{}
	if iv.AggregateScore != nil {
		aggregate = sql.NullFloat64{Float64: *iv.AggregateScore, Valid: true}
	}

	if _, err := tx.ExecContext(ctx, `
UPDATE interviews SET completed_at = ?, aggregate_score = ?, summary = ?
WHERE id = ?;
`, completedAt, aggregate, iv.Summary, iv.ID); err != nil {
		return fmt.Errorf("update interview: %w", err)
	}

	for _, q := range iv.Questions {
		situation, task, action, result := sql.NullFloat64{}, sql.NullFloat64{}, sql.NullFloat64{}, sql.NullFloat64{}
		if q.Score != nil {
			situation = sql.NullFloat64{Float64: q.Score.Situation, Valid: true}
			task = sql.NullFloat64{Float64: q.Score.Task, Valid: true}
			action = sql.NullFloat64{Float64: q.Score.Action, Valid: true}
			result = sql.NullFloat64{Float64: q.Score.Result, Valid: true}
		}

		if _, err := tx.ExecContext(ctx, `
UPDATE questions SET answer = ?, feedback = ?, situation = ?, task = ?, action = ?, result = ?
WHERE id = ?;
`, q.Answer, q.Feedback, situation, task, action, result, q.ID); err != nil {
			return fmt.Errorf("update question %d: %w", q.Order, err)
		}
	}

	return tx.Commit()
}

// GetInterview loads one interview with its questions in order.
func (s *Store) GetInterview(ctx context.Context, id string) (*interview.Interview, error) {
	iv := &interview.Interview{ID: id}

	var startedAt string
	var completedAt sql.NullString
	var aggregate sql.NullFloat64

	err := s.db.Pool.QueryRowContext(ctx, `
SELECT candidate_id, started_at, completed_at, aggregate_score, summary
FROM interviews WHERE id = ?;
`, id).Scan(&iv.CandidateID, &startedAt, &completedAt, &aggregate, &iv.Summary)
	if err != nil {
		return nil, fmt.Errorf("select interview: %w", err)
	}

	if iv.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}

	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		iv.CompletedAt = &t
	}

	if aggregate.Valid {
		iv.AggregateScore = &aggregate.Float64
	}

	rows, err := s.db.Pool.QueryContext(ctx, `
SELECT id, ord, text, answer, feedback, situation, task, action, result
FROM questions WHERE interview_id = ? ORDER BY ord;
`, id)
	if err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		q := &interview.Question{InterviewID: id}
		var situation, task, action, result sql.NullFloat64

		if err := rows.Scan(&q.ID, &q.Order, &q.Text, &q.Answer, &q.Feedback,
			&situation, &task, &action, &result); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}

		if situation.Valid && task.Valid && action.Valid && result.Valid {
			q.Score = &interview.ScoreComponents{
				Situation: situation.Float64,
				Task:      task.Float64,
				Action:    action.Float64,
				Result:    result.Float64,
			}
		}

		iv.Questions = append(iv.Questions, q)
	}

	return iv, rows.Err()
}

// ListInterviews returns stored interviews newest first.
func (s *Store) ListInterviews(ctx context.Context) ([]InterviewSummary, error) {
	rows, err := s.db.Pool.QueryContext(ctx, `
SELECT i.id, c.name, c.company, i.started_at, i.completed_at IS NOT NULL, i.aggregate_score,
  (SELECT COUNT(*) FROM questions q WHERE q.interview_id = i.id AND q.answer != ''),
  (SELECT COUNT(*) FROM questions q WHERE q.interview_id = i.id)
FROM interviews i
JOIN candidates c ON c.id = i.candidate_id
ORDER BY i.started_at DESC;
`)
	if err != nil {
		return nil, fmt.Errorf("select interviews: %w", err)
	}
	defer rows.Close()

	var summaries []InterviewSummary
	for rows.Next() {
		var summary InterviewSummary
		var startedAt string

		if err := rows.Scan(&summary.ID, &summary.CandidateName, &summary.Company,
			&startedAt, &summary.Completed, &summary.AggregateScore,
			&summary.AnsweredCount, &summary.QuestionCount); err != nil {
			return nil, fmt.Errorf("scan interview summary: %w", err)
		}

		if summary.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}

		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}
