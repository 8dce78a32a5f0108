package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/lexis/internal/model"
	"github.com/ppiankov/lexis/internal/pipeline"
)

var (
	analyzeOpts runOptions
	outJSON     string
	outMD       string
	outHTML     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|url|->",
	Short: "Analyze a single contract and report obligations, rights and conditions",
	Long: `Analyze reads one contract (a text, HTML or PDF file, a URL, or "-" for
stdin) and:
- Splits it into sections and classifies each clause
- Recognizes parties, dates and amounts
- Extracts who must do what, and under which conditions
- Highlights sections matching a reader profile

Without an output flag a colored summary is printed to stdout.

Example:
  lexis analyze lease.txt
  lexis analyze lease.pdf --json report.json --md report.md
  lexis analyze https://example.com/terms --profile tenant.yaml --llm-provider ollama`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (\"-\" for stdout)")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (\"-\" for stdout)")
	analyzeCmd.Flags().StringVar(&outHTML, "html", "", "output HTML path (\"-\" for stdout)")
	analyzeOpts.bind(analyzeCmd.Flags())
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	source := args[0]
	if source == "-" && !stdinIsPipe() {
		return fmt.Errorf("no input on stdin")
	}

	cfg, err := analyzeOpts.config(viper.GetViper(), cmd.Flags())
	if err != nil {
		return err
	}
	profile, err := analyzeOpts.profile()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), analyzeOpts.timeout)
	defer cancel()

	stderr := cmd.ErrOrStderr()
	analyzer := pipeline.NewAnalyzerFromConfig(cfg, stderr)

	if cfg.Output.Verbose {
		fmt.Fprintf(stderr, "Analyzing: %s\n", source)
		for name, enabled := range analyzer.Oracles().Describe() {
			fmt.Fprintf(stderr, "  %-9s %v\n", name+":", enabled)
		}
		fmt.Fprintln(stderr)
	}

	report, err := analyzer.AnalyzeSource(ctx, source, profile)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter, cfg.Output.Color)
	return writeOutputs(renderer, report, cmd.OutOrStdout(), stderr, cfg.Output.Verbose)
}

// writeOutputs renders every requested format, or the summary when none
// was requested
func writeOutputs(renderer *pipeline.Renderer, report *model.Report, stdout, stderr io.Writer, verbose bool) error {
	if outJSON == "" && outMD == "" && outHTML == "" {
		renderer.RenderSummary(stdout, report)
		return nil
	}

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}
	if outHTML != "" {
		if err := renderer.RenderHTML(report, outHTML); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}

	if verbose {
		renderer.RenderSummary(stderr, report)
	}
	for _, path := range []string{outJSON, outMD, outHTML} {
		if path != "" && path != "-" {
			fmt.Fprintf(stderr, "✓ Wrote %s\n", path)
		}
	}
	return nil
}

// stdinIsPipe reports whether stdin has data piped in
func stdinIsPipe() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
