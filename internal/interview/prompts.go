package interview

import (
	"strings"

	_ "embed"
)

//go:embed prompts/questions.md
var questionsPromptTemplate string

//go:embed prompts/feedback.md
var feedbackPromptTemplate string

//go:embed prompts/score.md
var scorePromptTemplate string

const (
	missingContentPlaceholder = "not provided"
	missingAnswerPlaceholder  = "No answer was provided."
)

func buildQuestionsPrompt(c *Candidate) string {
	return strings.NewReplacer(
		"{{CANDIDATE_NAME}}", strings.TrimSpace(c.Name),
		"{{COMPANY_NAME}}", orPlaceholder(c.Company),
		"{{RESUME}}", orPlaceholder(c.Resume),
		"{{JOB_DESCRIPTION}}", orPlaceholder(c.JobDescription),
		"{{RESUME_FILE}}", orPlaceholder(c.ResumeFileText),
		"{{JOB_DESCRIPTION_FILE}}", orPlaceholder(c.JobDescriptionFileText),
	).Replace(questionsPromptTemplate)
}

func buildFeedbackPrompt(questionText, answerText string) string {
	answer := strings.TrimSpace(answerText)
	if answer == "" {
		answer = missingAnswerPlaceholder
	}

	return strings.NewReplacer(
		"{{QUESTION}}", strings.TrimSpace(questionText),
		"{{ANSWER}}", answer,
	).Replace(feedbackPromptTemplate)
}

func buildScorePrompt(answerText string) string {
	return strings.ReplaceAll(scorePromptTemplate, "{{ANSWER}}", strings.TrimSpace(answerText))
}

func orPlaceholder(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return missingContentPlaceholder
	}
	return s
}
