package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/louanfontenele/LocoTranslator/internal"
)

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "locotranslator [flags] <catalog.po>" {
		t.Errorf("Expected Use to be 'locotranslator [flags] <catalog.po>', got %s", cmd.Use)
	}

	if cmd.Version != internal.Version {
		t.Errorf("Expected version %s, got %s", internal.Version, cmd.Version)
	}

	// Test that flags are set up
	flagTests := []string{
		"config",
		"language",
		"context",
		"output",
		"progress",
		"provider",
		"model",
		"max-retries",
		"timeout",
		"no-cache",
		"cache-path",
		"list-models",
		"quiet",
	}

	for _, name := range flagTests {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if name == "config" {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}
}

func TestSetupFlags(t *testing.T) {
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	// Test default values
	languageFlag := cmd.Flags().Lookup("language")
	if languageFlag == nil {
		t.Fatal("language flag not found")
	}
	if languageFlag.DefValue != "Portuguese (Brazil)" {
		t.Errorf("Expected default language to be 'Portuguese (Brazil)', got %s", languageFlag.DefValue)
	}

	providerFlag := cmd.Flags().Lookup("provider")
	if providerFlag == nil {
		t.Fatal("provider flag not found")
	}
	if providerFlag.DefValue != "openai" {
		t.Errorf("Expected default provider to be openai, got %s", providerFlag.DefValue)
	}

	retriesFlag := cmd.Flags().Lookup("max-retries")
	if retriesFlag == nil {
		t.Fatal("max-retries flag not found")
	}
	if retriesFlag.DefValue != "3" {
		t.Errorf("Expected default max-retries to be 3, got %s", retriesFlag.DefValue)
	}
}

func TestInitConfig(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		cfgFile   string
		setupFunc func(t *testing.T) string
	}{
		{
			name:    "with config file",
			cfgFile: "test-config.yaml",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				cfgPath := filepath.Join(tmpDir, "test-config.yaml")
				content := `translation:
  provider: openai
  openai_key: test-key
  language: French`
				err := os.WriteFile(cfgPath, []byte(content), 0644)
				if err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
		},
		{
			name:    "without config file",
			cfgFile: "",
			setupFunc: func(t *testing.T) string {
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()

			cfgPath := tt.setupFunc(t)
			if tt.cfgFile != "" && cfgPath != "" {
				tt.cfgFile = cfgPath
			}

			InitConfig(tt.cfgFile)

			// Test environment variable prefix
			os.Setenv("LOCOTRANSLATOR_TEST_VAR", "test-value")
			defer os.Unsetenv("LOCOTRANSLATOR_TEST_VAR")

			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}
		})
	}
}

func TestGetOpenAIKey(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{
			name:      "from environment",
			envKey:    "env-test-key",
			configKey: "config-test-key",
			expected:  "env-test-key",
		},
		{
			name:      "from config when no env",
			envKey:    "",
			configKey: "config-test-key",
			expected:  "config-test-key",
		},
		{
			name:      "empty when neither set",
			envKey:    "",
			configKey: "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper
			viper.Reset()

			// Set up environment
			if tt.envKey != "" {
				os.Setenv("OPENAI_API_KEY", tt.envKey)
				defer os.Unsetenv("OPENAI_API_KEY")
			} else {
				os.Unsetenv("OPENAI_API_KEY")
			}

			// Set up config
			if tt.configKey != "" {
				viper.Set("translation.openai_key", tt.configKey)
			}

			got := GetOpenAIKey()
			if got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetGeminiKey(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()
	viper.Reset()

	os.Setenv("GEMINI_API_KEY", "env-gemini-key")
	defer os.Unsetenv("GEMINI_API_KEY")

	if got := GetGeminiKey(); got != "env-gemini-key" {
		t.Errorf("GetGeminiKey() = %v, want env-gemini-key", got)
	}
}

func TestBindFlagsToViper(t *testing.T) {
	// Save original viper state
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()

	// Reset viper
	viper.Reset()

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Set some flag values
	cmd.Flags().Set("language", "Spanish")
	cmd.Flags().Set("provider", "gemini")
	cmd.Flags().Set("model", "gemini-2.0-flash")

	bindFlagsToViper(cmd)

	// Test that values are bound
	if viper.GetString("translation.language") != "Spanish" {
		t.Errorf("Expected translation.language to be Spanish, got %s", viper.GetString("translation.language"))
	}

	if viper.GetString("translation.provider") != "gemini" {
		t.Errorf("Expected translation.provider to be gemini, got %s", viper.GetString("translation.provider"))
	}

	if viper.GetString("translation.model") != "gemini-2.0-flash" {
		t.Errorf("Expected translation.model to be gemini-2.0-flash, got %s", viper.GetString("translation.model"))
	}
}

func TestBuildRunConfig(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()
	viper.Reset()

	flags := NewFlags()
	cfg := BuildRunConfig(flags, "/tmp/catalogs/messages.po")

	if cfg.SourcePath != "/tmp/catalogs/messages.po" {
		t.Errorf("Unexpected source path: %s", cfg.SourcePath)
	}
	if cfg.OutputPath != "/tmp/catalogs/messages_translated.po" {
		t.Errorf("Unexpected derived output path: %s", cfg.OutputPath)
	}
	if cfg.ProgressPath != "/tmp/catalogs/messages_progress.yaml" {
		t.Errorf("Unexpected derived progress path: %s", cfg.ProgressPath)
	}
	if cfg.CachePath != "/tmp/catalogs/messages_cache.db" {
		t.Errorf("Unexpected derived cache path: %s", cfg.CachePath)
	}
	if cfg.Model != "gpt-4o-mini" {
		t.Errorf("Expected provider default model, got %s", cfg.Model)
	}
	if !cfg.CacheEnabled {
		t.Error("Cache should be enabled by default")
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Unexpected timeout: %v", cfg.Timeout)
	}
}

func TestBuildRunConfigExplicitPaths(t *testing.T) {
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	defer func() {
		*viper.GetViper() = *originalConfig
	}()
	viper.Reset()

	flags := NewFlags()
	flags.OutputPath = "/out/fr.po"
	flags.ProgressPath = "/out/fr_progress.yaml"
	flags.NoCache = true
	flags.Model = "gpt-4o"

	cfg := BuildRunConfig(flags, "messages.po")

	if cfg.OutputPath != "/out/fr.po" {
		t.Errorf("Explicit output path ignored: %s", cfg.OutputPath)
	}
	if cfg.ProgressPath != "/out/fr_progress.yaml" {
		t.Errorf("Explicit progress path ignored: %s", cfg.ProgressPath)
	}
	if cfg.CacheEnabled {
		t.Error("--no-cache ignored")
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Explicit model ignored: %s", cfg.Model)
	}
}
