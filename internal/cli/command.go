package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/louanfontenele/LocoTranslator/internal"
	"github.com/louanfontenele/LocoTranslator/internal/pipeline"
	"github.com/louanfontenele/LocoTranslator/internal/translate"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "locotranslator [flags] <catalog.po>",
		Short: "Resumable PO catalog translator",
		Long: `locotranslator translates gettext PO catalogs with OpenAI or Gemini.

Progress is saved after every entry, so an interrupted run can be
restarted and picks up where it left off. The output catalog keeps the
input byte-for-byte except for the translated msgstr lines.

Examples:
  locotranslator messages.po                         # Translate with defaults
  locotranslator -l "French" -o fr.po messages.po    # Pick language and output
  locotranslator --provider gemini messages.po       # Use Gemini instead
  locotranslator --list-models                       # Show available models`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.locotranslator.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Language, "language", "l", flags.Language, "Target language for translation")
	cmd.Flags().StringVar(&flags.Context, "context", "", "Extra context for the translation prompt (e.g. 'WordPress e-commerce plugin')")
	cmd.Flags().StringVarP(&flags.OutputPath, "output", "o", "", "Output catalog path (default <input>_translated.po)")
	cmd.Flags().StringVar(&flags.ProgressPath, "progress", "", "Progress file path (default <input>_progress.yaml)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress the progress bar and summary")

	// Provider flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai or gemini")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Model to use (default depends on provider)")
	cmd.Flags().IntVar(&flags.MaxRetries, "max-retries", flags.MaxRetries, "Attempts per entry before it is marked failed")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout for a single translation request")

	// Translation memory flags
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Disable the local translation memory")
	cmd.Flags().StringVar(&flags.CachePath, "cache-path", "", "Translation memory path (default <input>_cache.db)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translation.language", cmd.Flags().Lookup("language"))
	viper.BindPFlag("translation.context", cmd.Flags().Lookup("context"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("translation.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("translation.max_retries", cmd.Flags().Lookup("max-retries"))
	viper.BindPFlag("translation.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("cache.path", cmd.Flags().Lookup("cache-path"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".locotranslator" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".locotranslator")
	}

	// Environment variables
	viper.SetEnvPrefix("LOCOTRANSLATOR")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translation.gemini_key")
}

// BuildRunConfig assembles a pipeline configuration from the parsed
// flags and the source catalog path.
func BuildRunConfig(flags *Flags, sourcePath string) pipeline.RunConfig {
	cfg := pipeline.RunConfig{
		SourcePath:     sourcePath,
		OutputPath:     flags.OutputPath,
		ProgressPath:   flags.ProgressPath,
		TargetLanguage: flags.Language,
		Context:        flags.Context,
		Provider:       flags.Provider,
		Model:          flags.Model,
		MaxRetries:     flags.MaxRetries,
		Timeout:        flags.Timeout,
		CacheEnabled:   !flags.NoCache,
		CachePath:      flags.CachePath,
		Quiet:          flags.Quiet,

		PlaceholderPatterns: viper.GetStringSlice("classify.placeholder_patterns"),
	}

	if cfg.OutputPath == "" {
		cfg.OutputPath = internal.DefaultOutputPath(sourcePath)
	}
	if cfg.ProgressPath == "" {
		cfg.ProgressPath = internal.DefaultProgressPath(sourcePath)
	}
	if cfg.CachePath == "" {
		cfg.CachePath = internal.DefaultCachePath(sourcePath)
	}
	if cfg.Model == "" {
		cfg.Model = translate.DefaultModel(cfg.Provider)
	}

	switch cfg.Provider {
	case translate.ProviderGemini:
		cfg.APIKey = GetGeminiKey()
	default:
		cfg.APIKey = GetOpenAIKey()
	}

	return cfg
}
