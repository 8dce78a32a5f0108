package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/lexis/internal/model"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

// Keys that can be overridden through LEXIS_* environment variables,
// e.g. LEXIS_LLM_PROVIDER or LEXIS_CACHE_DIR
var envKeys = []string{
	"recognition.chunk_length",
	"recognition.chunk_stride",
	"classification.zero_shot_threshold",
	"llm.provider",
	"llm.model",
	"llm.api_key",
	"llm.base_url",
	"llm.timeout",
	"llm.max_tokens",
	"ner.enabled",
	"syntax.url",
	"syntax.timeout",
	"cache.enabled",
	"cache.dir",
	"cache.memory_ttl",
	"cache.disk_ttl",
	"rate_limiting.requests_per_second",
	"rate_limiting.burst_size",
	"http.timeout",
	"http.user_agent",
	"http.max_body_bytes",
	"http.http_proxy",
	"http.https_proxy",
	"http.no_proxy",
	"http.respect_robots",
	"concurrency.workers",
	"output.verbose",
	"output.color",
	"output.include_footer",
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lexis",
	Short: "Lexis - contract semantics extraction (non-normative)",
	Long: `Lexis reads a contract and reports who must do what, under which
conditions, section by section.

It combines deterministic rules with optional model oracles (a local
token classifier, an LLM for zero-shot labels and clause types, and an
external dependency parser). Every oracle is optional: when one is
missing or fails, Lexis falls back to its rules and records a warning.

Lexis is a reading aid, not legal advice.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Lexis.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "lexis v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.lexis/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.lexis")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	configureEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// configureEnv maps LEXIS_SECTION_KEY variables onto section.key
func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("LEXIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
}

// loadConfig overlays the config file and environment onto the defaults
func loadConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if noColor {
		cfg.Output.Color = false
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	return cfg, nil
}
