package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/starcoach/starcoach/internal/ai"
	"github.com/starcoach/starcoach/internal/ai/gemini"
	"github.com/starcoach/starcoach/internal/ai/openai"
	"github.com/starcoach/starcoach/internal/extract"
	"github.com/starcoach/starcoach/internal/interview"
	"github.com/starcoach/starcoach/internal/logger"
	"github.com/starcoach/starcoach/internal/secrets"
	"github.com/starcoach/starcoach/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulated STAR-method behavioral interview",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("resume-file", "r", "", "path to a resume document (txt, pdf or docx)")
	runCmd.Flags().StringP("job-description-file", "", "", "path to a job description document (txt, pdf or docx)")

	viper.BindPFlag("intake.resume-file", runCmd.Flags().Lookup("resume-file"))
	viper.BindPFlag("intake.job-description-file", runCmd.Flags().Lookup("job-description-file"))
}

// run is the main command for the cli.
func run(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting starcoach", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if err := config.Validate(); err != nil {
		logger.Fatal("validating config", zap.Error(err))
	}

	db, err := store.Open(config.storePath())
	if err != nil {
		logger.Fatal("opening the interview store", zap.Error(err), zap.String("path", config.storePath()))
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		logger.Fatal("migrating the interview store", zap.Error(err))
	}

	client, err := newCompletionClient(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building ai client", zap.Error(err))
	}

	candidate, err := collectCandidate(config.Intake)
	if err != nil {
		logger.Fatal("collecting candidate details", zap.Error(err))
	}

	session := interview.NewSession(client, store.New(db), logger)

	logger.Info("generating interview questions", zap.String("candidate", candidate.Name))

	if err := session.Start(ctx, candidate); err != nil {
		var validation *interview.ValidationError
		if errors.As(err, &validation) {
			logger.Fatal("candidate details are incomplete", zap.Error(err), zap.String("field", validation.Field))
		}
		logger.Fatal("starting the interview", zap.Error(err))
	}

	total := len(session.Interview().Questions)

	for session.State() == interview.StateInProgress {
		question := session.CurrentQuestion()
		if question == nil {
			break
		}

		fmt.Printf("\nQuestion %d of %d:\n%s\n\n", question.Order+1, total, question.Text)

		answer, err := answerPrompt(question.Answer)
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := session.SubmitAnswer(ctx, answer); err != nil {
			logger.Warn("submission failed, the answer is kept and the question can be retried", zap.Error(err))

			retry := promptui.Select{
				Label: "Retry this question?",
				Items: []string{PromptYes, PromptNo},
			}
			_, action, err := retry.Run()
			if err != nil || action == PromptNo {
				logger.Info("exiting", zap.String("reason", "interview left unfinished, progress is saved"))
				return
			}
			continue
		}

		printSubmission(question)
		fmt.Printf("Progress: %.0f%%\n", session.Progress()*100)
	}

	if session.State() == interview.StateComplete {
		iv := session.Interview()
		fmt.Printf("\n%s\n", iv.Summary)
		logger.Info("interview complete and saved", zap.String("interview_id", iv.ID))
	}
}

func printSubmission(question *interview.Question) {
	fmt.Printf("\nFeedback:\n%s\n\n", question.Feedback)

	if question.Score != nil {
		fmt.Printf("STAR score: situation %.2f / task %.2f / action %.2f / result %.2f (average %.2f)\n",
			question.Score.Situation,
			question.Score.Task,
			question.Score.Action,
			question.Score.Result,
			question.Score.Average(),
		)
	}
}

// answerPrompt asks for the answer to the current question. On a retry the
// previous answer is offered as the default so it can be resubmitted or
// edited.
func answerPrompt(previous string) (string, error) {
	prompt := promptui.Prompt{
		Label:   "Your answer",
		Default: previous,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("an answer is required")
			}
			return nil
		},
	}

	return prompt.Run()
}

// collectCandidate gathers intake details interactively, preferring the
// configured document files for resume and job description when provided.
func collectCandidate(intake *IntakeConfig) (*interview.Candidate, error) {
	if intake == nil {
		intake = &IntakeConfig{}
	}

	candidate := &interview.Candidate{Company: intake.Company}

	name, err := textPrompt("Candidate name", "", true)
	if err != nil {
		return nil, err
	}
	candidate.Name = name

	if candidate.Company == "" {
		if candidate.Company, err = textPrompt("Company name", "", false); err != nil {
			return nil, err
		}
	}

	if candidate.Interviewer, err = textPrompt("Interviewer name", "", false); err != nil {
		return nil, err
	}

	if resumeFile := strings.TrimSpace(intake.ResumeFile); resumeFile != "" {
		if candidate.ResumeFileText, err = extract.Text(resumeFile); err != nil {
			return nil, fmt.Errorf("extracting resume text: %w", err)
		}
	} else if candidate.Resume, err = textPrompt("Resume (paste as one line)", "", true); err != nil {
		return nil, err
	}

	if jdFile := strings.TrimSpace(intake.JobDescriptionFile); jdFile != "" {
		if candidate.JobDescriptionFileText, err = extract.Text(jdFile); err != nil {
			return nil, fmt.Errorf("extracting job description text: %w", err)
		}
	} else if candidate.JobDescription, err = textPrompt("Job description (paste as one line)", "", true); err != nil {
		return nil, err
	}

	return candidate, nil
}

func textPrompt(label, defaultValue string, required bool) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}

	if required {
		prompt.Validate = func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("a value is required")
			}
			return nil
		}
	}

	value, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(value), nil
}

func newCompletionClient(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Client, error) {
	switch provider := strings.TrimSpace(strings.ToLower(cfg.Provider)); provider {
	case "", "openai":
		apiKey, err := secrets.Load(secrets.Source{
			Name: "openai api key",
			File: resolveKeyFile(cfg.OpenAI.APIKeyFile, "ai.openai.api-key-file"),
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.openai.api-key-file or OPENAI_API_KEY_FILE)", err)
		}

		client, err := openai.New(openai.Config{
			APIKey:        apiKey,
			Model:         cfg.OpenAI.Model,
			VectorStoreID: cfg.OpenAI.VectorStoreID,
		}, logger)
		if err != nil {
			return nil, err
		}

		logger.Info("using hosted vector store", zap.String("vector_store_id", client.VectorStoreID()))

		return client, nil
	case "gemini":
		apiKey, err := secrets.Load(secrets.Source{
			Name: "gemini api key",
			File: resolveKeyFile(cfg.Gemini.APIKeyFile, "ai.gemini.api-key-file"),
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		return gemini.New(ctx, apiKey, cfg.Gemini.Model, logger)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func resolveKeyFile(configured, viperKey string) string {
	if file := strings.TrimSpace(configured); file != "" {
		return file
	}
	return strings.TrimSpace(viper.GetString(viperKey))
}
