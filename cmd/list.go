package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/starcoach/starcoach/internal/logger"
	"github.com/starcoach/starcoach/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored interviews",
	Run: func(_ *cobra.Command, _ []string) {
		list()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func list() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	db, err := store.Open(config.storePath())
	if err != nil {
		logger.Fatal("opening the interview store", zap.Error(err), zap.String("path", config.storePath()))
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		logger.Fatal("migrating the interview store", zap.Error(err))
	}

	summaries, err := store.New(db).ListInterviews(ctx)
	if err != nil {
		logger.Fatal("listing interviews", zap.Error(err))
	}

	if len(summaries) == 0 {
		logger.Info("no stored interviews")
		return
	}

	for _, summary := range summaries {
		status := fmt.Sprintf("%d/%d answered", summary.AnsweredCount, summary.QuestionCount)
		if summary.Completed {
			status = "complete"
			if summary.AggregateScore.Valid {
				status = fmt.Sprintf("complete, score %.0f%%", summary.AggregateScore.Float64*100)
			}
		}

		company := summary.Company
		if company == "" {
			company = "-"
		}

		fmt.Printf("%s  %s  %s @ %s  (%s)\n",
			summary.ID,
			summary.StartedAt.Local().Format("2006-01-02 15:04"),
			summary.CandidateName,
			company,
			status,
		)
	}
}
