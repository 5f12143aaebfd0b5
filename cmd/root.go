package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "starcoach"

	defaultStorePath = "starcoach.db"
)

// ErrMissingConfiguration is wrapped by configuration validation failures,
// with the offending key appended.
var ErrMissingConfiguration = errors.New("missing configuration")

type Config struct {
	Store  string        `mapstructure:"store"`
	AI     *AIConfig     `mapstructure:"ai"`
	Intake *IntakeConfig `mapstructure:"intake"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	OpenAI   *OpenAIConfig `mapstructure:"openai"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	// VectorStoreID identifies the hosted vector store the coaching
	// assistant is provisioned with. Required for the openai provider.
	VectorStoreID string `mapstructure:"vector-store-id"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

// IntakeConfig supplies non-interactive defaults for candidate intake.
type IntakeConfig struct {
	Company            string `mapstructure:"company"`
	ResumeFile         string `mapstructure:"resume-file"`
	JobDescriptionFile string `mapstructure:"job-description-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "starcoach is a cli that runs simulated STAR-method behavioral interviews with AI feedback and scoring",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("store", "STARCOACH_DB"); err != nil {
		log.Fatalf("binding STARCOACH_DB environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.openai.api-key-file", "OPENAI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding OPENAI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("store", defaultStorePath)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is starcoach.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// The config file is mandatory for run only. list falls back to
	// defaults when no file is found.
	strict := runCmd.CalledAs() != ""
	if !strict && listCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if strict {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// Validate checks the configuration the completion workflow cannot start
// without. The API key itself is resolved later through the secrets loader.
func (c *Config) Validate() error {
	if c == nil || c.AI == nil {
		return fmt.Errorf("%w: ai", ErrMissingConfiguration)
	}

	switch provider := strings.TrimSpace(strings.ToLower(c.AI.Provider)); provider {
	case "", "openai":
		if c.AI.OpenAI == nil {
			return fmt.Errorf("%w: ai.openai", ErrMissingConfiguration)
		}
		if strings.TrimSpace(c.AI.OpenAI.VectorStoreID) == "" {
			return fmt.Errorf("%w: ai.openai.vector-store-id", ErrMissingConfiguration)
		}
	case "gemini":
		if c.AI.Gemini == nil {
			return fmt.Errorf("%w: ai.gemini", ErrMissingConfiguration)
		}
	default:
		return fmt.Errorf("unsupported ai provider: %s", c.AI.Provider)
	}

	return nil
}

func (c *Config) storePath() string {
	if c != nil && strings.TrimSpace(c.Store) != "" {
		return c.Store
	}
	if path := strings.TrimSpace(viper.GetString("store")); path != "" {
		return path
	}
	return defaultStorePath
}
