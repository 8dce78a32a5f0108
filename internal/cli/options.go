package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ppiankov/lexis/internal/model"
)

// runOptions are the flags shared by analyze and batch. Each flag only
// overrides the loaded config when it was set explicitly.
type runOptions struct {
	profilePath string
	workers     int
	timeout     time.Duration
	llmProvider string
	llmModel    string
	syntaxURL   string
	userAgent   string
	noCache     bool
	noNER       bool
	noFooter    bool
	noRobots    bool
}

func (o *runOptions) bind(flags *pflag.FlagSet) {
	flags.StringVar(&o.profilePath, "profile", "", "reader profile YAML (concerns and role)")
	flags.IntVar(&o.workers, "workers", 0, "number of concurrent workers (default from config)")
	flags.DurationVar(&o.timeout, "timeout", 5*time.Minute, "overall timeout")
	flags.StringVar(&o.llmProvider, "llm-provider", "", "LLM provider for zero-shot and clause oracles (openai, anthropic, ollama)")
	flags.StringVar(&o.llmModel, "llm-model", "", "LLM model name")
	flags.StringVar(&o.syntaxURL, "syntax-url", "", "dependency-parse service base URL")
	flags.StringVar(&o.userAgent, "ua", "", "HTTP User-Agent for URL sources")
	flags.BoolVar(&o.noCache, "no-cache", false, "disable oracle response cache")
	flags.BoolVar(&o.noNER, "no-ner", false, "disable the local token classifier")
	flags.BoolVar(&o.noFooter, "no-footer", false, "disable footer in Markdown reports")
	flags.BoolVar(&o.noRobots, "ignore-robots", false, "do not consult robots.txt for URL sources")
}

// config loads the layered config and applies explicitly set flags
func (o *runOptions) config(v *viper.Viper, flags *pflag.FlagSet) (*model.Config, error) {
	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}

	if flags.Changed("workers") {
		if o.workers <= 0 {
			return nil, fmt.Errorf("--workers must be positive, got %d", o.workers)
		}
		cfg.Concurrency.Workers = o.workers
	}
	if flags.Changed("llm-provider") {
		cfg.LLM.Provider = o.llmProvider
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = o.llmModel
	}
	if flags.Changed("syntax-url") {
		cfg.Syntax.URL = o.syntaxURL
	}
	if flags.Changed("ua") {
		cfg.HTTP.UserAgent = o.userAgent
	}
	if o.noCache {
		cfg.Cache.Enabled = false
	}
	if o.noNER {
		cfg.NER.Enabled = false
	}
	if o.noFooter {
		cfg.Output.IncludeFooter = false
	}
	if o.noRobots {
		cfg.HTTP.RespectRobots = false
	}

	return cfg, nil
}

// profile loads the reader profile, or nil when none was given
func (o *runOptions) profile() (*model.ReaderProfile, error) {
	if o.profilePath == "" {
		return nil, nil
	}
	return model.LoadProfile(o.profilePath)
}
