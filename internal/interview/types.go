package interview

import "time"

// State identifies where a session is in its lifecycle.
type State string

const (
	StateNotStarted State = "not_started"
	StateGenerating State = "generating"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

// Candidate carries the intake data one interview is built from. Fields are
// not mutated once a session has started.
type Candidate struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Resume                 string    `json:"resume"`
	JobDescription         string    `json:"jobDescription"`
	Company                string    `json:"companyName"`
	Interviewer            string    `json:"interviewerName"`
	ResumeFileText         string    `json:"resumeFileText"`
	JobDescriptionFileText string    `json:"jobDescriptionFileText"`
	CreatedAt              time.Time `json:"createdAt"`
}

// Interview is one session for a single candidate: an ordered question
// sequence plus the aggregate outcome once every question is answered.
type Interview struct {
	ID             string      `json:"id"`
	CandidateID    string      `json:"candidateId"`
	Questions      []*Question `json:"questions"`
	StartedAt      time.Time   `json:"startedAt"`
	CompletedAt    *time.Time  `json:"completedAt,omitempty"`
	AggregateScore *float64    `json:"aggregateScore,omitempty"`
	Summary        string      `json:"summary,omitempty"`
}

// aggregate is the mean of per-question average scores across scored
// questions. An interview with no scored questions aggregates to 0.
func (iv *Interview) aggregate() float64 {
	var sum float64
	var scored int
	for _, q := range iv.Questions {
		if q.Score == nil {
			continue
		}
		sum += q.Score.Average()
		scored++
	}
	if scored == 0 {
		return 0
	}
	return sum / float64(scored)
}

// Question belongs to exactly one interview. Order is fixed at creation;
// answer, feedback and score are set once when the answer is submitted.
type Question struct {
	ID          string           `json:"id"`
	InterviewID string           `json:"interviewId"`
	Order       int              `json:"order"`
	Text        string           `json:"text"`
	Answer      string           `json:"answer,omitempty"`
	Feedback    string           `json:"feedback,omitempty"`
	Score       *ScoreComponents `json:"score,omitempty"`
}

// ScoreComponents holds the four STAR sub-scores, each nominally in [0, 1].
type ScoreComponents struct {
	Situation float64 `json:"situation"`
	Task      float64 `json:"task"`
	Action    float64 `json:"action"`
	Result    float64 `json:"result"`
}

// Average is the arithmetic mean of the four components.
func (s ScoreComponents) Average() float64 {
	return (s.Situation + s.Task + s.Action + s.Result) / 4
}

func (s ScoreComponents) inRange() bool {
	for _, v := range []float64{s.Situation, s.Task, s.Action, s.Result} {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}
