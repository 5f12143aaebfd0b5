package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/starcoach/starcoach/internal/interview"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "starcoach.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db.Pool); err != nil {
		t.Fatalf("migrating database: %v", err)
	}

	return New(db)
}

func seedInterview(t *testing.T, s *Store) (*interview.Candidate, *interview.Interview) {
	t.Helper()
	ctx := context.Background()

	candidate := &interview.Candidate{
		ID:             uuid.NewString(),
		Name:           "Ann",
		Resume:         "resume text",
		JobDescription: "jd text",
		Company:        "Acme",
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.CreateCandidate(ctx, candidate); err != nil {
		t.Fatalf("creating candidate: %v", err)
	}

	iv := &interview.Interview{
		ID:          uuid.NewString(),
		CandidateID: candidate.ID,
		StartedAt:   time.Now().UTC(),
	}
	for i, text := range []string{"first question", "second question"} {
		iv.Questions = append(iv.Questions, &interview.Question{
			ID:          uuid.NewString(),
			InterviewID: iv.ID,
			Order:       i,
			Text:        text,
		})
	}
	if err := s.CreateInterview(ctx, iv); err != nil {
		t.Fatalf("creating interview: %v", err)
	}

	return candidate, iv
}

func TestInterviewRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, iv := seedInterview(t, s)

	loaded, err := s.GetInterview(ctx, iv.ID)
	if err != nil {
		t.Fatalf("loading interview: %v", err)
	}

	if len(loaded.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(loaded.Questions))
	}

	for i, q := range loaded.Questions {
		if q.Order != i {
			t.Fatalf("expected question order %d, got %d", i, q.Order)
		}
		if q.Score != nil {
			t.Fatalf("expected no score on fresh question, got %+v", q.Score)
		}
	}

	if loaded.CompletedAt != nil || loaded.AggregateScore != nil {
		t.Fatalf("expected fresh interview without outcome, got %+v", loaded)
	}
}

func TestSaveInterviewPersistsSubmissions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, iv := seedInterview(t, s)

	iv.Questions[0].Answer = "my answer"
	iv.Questions[0].Feedback = "solid structure"
	iv.Questions[0].Score = &interview.ScoreComponents{Situation: 0.8, Task: 0.7, Action: 0.9, Result: 0.6}

	now := time.Now().UTC()
	aggregate := 0.75
	iv.CompletedAt = &now
	iv.AggregateScore = &aggregate
	iv.Summary = "Ann completed the interview."

	if err := s.SaveInterview(ctx, iv); err != nil {
		t.Fatalf("saving interview: %v", err)
	}

	loaded, err := s.GetInterview(ctx, iv.ID)
	if err != nil {
		t.Fatalf("loading interview: %v", err)
	}

	q := loaded.Questions[0]
	if q.Answer != "my answer" || q.Feedback != "solid structure" {
		t.Fatalf("unexpected question data: %+v", q)
	}

	if q.Score == nil || *q.Score != (interview.ScoreComponents{Situation: 0.8, Task: 0.7, Action: 0.9, Result: 0.6}) {
		t.Fatalf("unexpected score: %+v", q.Score)
	}

	if loaded.Questions[1].Score != nil || loaded.Questions[1].Answer != "" {
		t.Fatalf("expected second question untouched, got %+v", loaded.Questions[1])
	}

	if loaded.AggregateScore == nil || *loaded.AggregateScore != 0.75 {
		t.Fatalf("unexpected aggregate: %v", loaded.AggregateScore)
	}

	if loaded.CompletedAt == nil {
		t.Fatal("expected completion time to round-trip")
	}

	if loaded.Summary != "Ann completed the interview." {
		t.Fatalf("unexpected summary: %q", loaded.Summary)
	}
}

func TestListInterviews(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	candidate, iv := seedInterview(t, s)

	iv.Questions[0].Answer = "answered"
	if err := s.SaveInterview(ctx, iv); err != nil {
		t.Fatalf("saving interview: %v", err)
	}

	summaries, err := s.ListInterviews(ctx)
	if err != nil {
		t.Fatalf("listing interviews: %v", err)
	}

	if len(summaries) != 1 {
		t.Fatalf("expected 1 interview, got %d", len(summaries))
	}

	summary := summaries[0]
	if summary.ID != iv.ID || summary.CandidateName != candidate.Name || summary.Company != "Acme" {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	if summary.Completed {
		t.Fatal("expected interview to be listed as incomplete")
	}

	if summary.AnsweredCount != 1 || summary.QuestionCount != 2 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "starcoach.db"))
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db.Pool); err != nil {
		t.Fatalf("first migration: %v", err)
	}

	if err := Migrate(db.Pool); err != nil {
		t.Fatalf("second migration: %v", err)
	}
}
