package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starcoach/starcoach/internal/ai"
	"github.com/starcoach/starcoach/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store persists the candidate/interview/question aggregate. The session only
// needs create and save; queries live with the store implementation.
type Store interface {
	CreateCandidate(ctx context.Context, candidate *Candidate) error
	CreateInterview(ctx context.Context, interview *Interview) error
	SaveInterview(ctx context.Context, interview *Interview) error
}

// Session drives one interview from intake to completion: question
// generation, answer submission with feedback and scoring, and the aggregate
// outcome. One candidate works one session at a time; callers serialize.
type Session struct {
	questions *QuestionGenerator
	feedback  *FeedbackGenerator
	scores    *ScoreAnalyzer
	store     Store
	logger    *zap.Logger

	state     State
	candidate *Candidate
	interview *Interview
	cursor    int
	lastErr   error
}

func NewSession(client ai.Client, store Store, log *zap.Logger) *Session {
	log = logger.WithFields(log)
	return &Session{
		questions: NewQuestionGenerator(client, log),
		feedback:  NewFeedbackGenerator(client, log),
		scores:    NewScoreAnalyzer(client, log),
		store:     store,
		logger:    log,
		state:     StateNotStarted,
	}
}

// Start validates the candidate, generates the question set and persists the
// new interview. Validation failures return before any network call and leave
// the session in NotStarted; so does a generation or persistence failure, so
// the caller can retry the whole start.
func (s *Session) Start(ctx context.Context, candidate *Candidate) error {
	if s.state != StateNotStarted {
		return s.fail(&PreconditionError{Op: "start interview", State: s.state})
	}

	if candidate == nil {
		return s.fail(&ValidationError{Field: "candidate", Err: errors.New("candidate is required")})
	}

	if err := candidate.Validate(); err != nil {
		return s.fail(err)
	}

	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	if candidate.CreatedAt.IsZero() {
		candidate.CreatedAt = time.Now().UTC()
	}

	s.state = StateGenerating
	texts, err := s.questions.Generate(ctx, candidate)
	if err != nil {
		s.state = StateNotStarted
		return s.fail(err)
	}

	interview := &Interview{
		ID:          uuid.NewString(),
		CandidateID: candidate.ID,
		StartedAt:   time.Now().UTC(),
	}
	for i, text := range texts {
		interview.Questions = append(interview.Questions, &Question{
			ID:          uuid.NewString(),
			InterviewID: interview.ID,
			Order:       i,
			Text:        text,
		})
	}

	if err := s.store.CreateCandidate(ctx, candidate); err != nil {
		s.state = StateNotStarted
		return s.fail(fmt.Errorf("persist candidate: %w", err))
	}
	if err := s.store.CreateInterview(ctx, interview); err != nil {
		s.state = StateNotStarted
		return s.fail(fmt.Errorf("persist interview: %w", err))
	}

	s.candidate = candidate
	s.interview = interview
	s.cursor = 0
	s.state = StateInProgress
	s.lastErr = nil

	s.logger.Info("interview started",
		zap.String("interview_id", interview.ID),
		zap.String("candidate", candidate.Name),
		zap.Int("questions", len(interview.Questions)),
	)

	return nil
}

// SubmitAnswer stores the answer on the current question, requests feedback
// and a score sequentially, then advances the cursor. On a remote failure the
// answer (and feedback, when it succeeded) stays stored and the cursor does
// not move, so the caller can retry just the failed call. The interview is
// persisted after every submission, successful or not.
func (s *Session) SubmitAnswer(ctx context.Context, answer string) error {
	if s.state != StateInProgress {
		return s.fail(&PreconditionError{Op: "submit answer", State: s.state})
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return s.fail(&PreconditionError{Op: "submit answer", State: s.state, Reason: "answer must not be empty"})
	}

	question := s.interview.Questions[s.cursor]
	question.Answer = answer

	feedback, err := s.feedback.Generate(ctx, question.Text, question.Answer)
	if err != nil {
		s.persist(ctx)
		return s.fail(err)
	}
	question.Feedback = feedback

	score, err := s.scores.Analyze(ctx, question.Answer)
	if err != nil {
		s.persist(ctx)
		return s.fail(err)
	}
	question.Score = score

	s.cursor++
	s.lastErr = nil

	if s.cursor == len(s.interview.Questions) {
		s.completeInterview()
	}

	s.persist(ctx)

	return nil
}

// CurrentQuestion returns the question at the cursor, or nil when no
// interview is active or every question has been answered.
func (s *Session) CurrentQuestion() *Question {
	if s.interview == nil || s.cursor < 0 || s.cursor >= len(s.interview.Questions) {
		return nil
	}
	return s.interview.Questions[s.cursor]
}

// Progress reports the answered fraction in [0, 1]; 0 when no interview is
// active.
func (s *Session) Progress() float64 {
	if s.interview == nil || len(s.interview.Questions) == 0 {
		return 0
	}
	return float64(s.cursor) / float64(len(s.interview.Questions))
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// LastError returns the retained error from the most recent failed step, or
// nil after a successful one. The session stays retryable; nothing here is
// fatal to the process.
func (s *Session) LastError() error { return s.lastErr }

// Interview returns the active interview aggregate, or nil before Start.
func (s *Session) Interview() *Interview { return s.interview }

func (s *Session) completeInterview() {
	now := time.Now().UTC()
	aggregate := s.interview.aggregate()

	s.interview.CompletedAt = &now
	s.interview.AggregateScore = &aggregate
	s.interview.Summary = renderSummary(s.candidate.Name, len(s.interview.Questions), aggregate)
	s.state = StateComplete

	s.logger.Info("interview complete",
		zap.String("interview_id", s.interview.ID),
		zap.Float64("aggregate_score", aggregate),
	)
}

// persist writes the current aggregate state. A write failure after a
// successful remote call is logged and not rolled back; the in-memory session
// remains authoritative for the rest of the run.
func (s *Session) persist(ctx context.Context) {
	if err := s.store.SaveInterview(ctx, s.interview); err != nil {
		s.logger.Warn("persisting interview failed",
			zap.String("interview_id", s.interview.ID),
			zap.Error(err),
		)
	}
}

func (s *Session) fail(err error) error {
	s.lastErr = err
	return err
}
