package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/lexis/internal/pipeline"
	"github.com/ppiankov/lexis/internal/worker"
)

var (
	batchOpts runOptions
	outputDir string
	batchHTML bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple contracts listed in a file in parallel",
	Long: `Batch analyzes many contracts concurrently:
- Read sources from input file (one file path or URL per line, # comments)
- Analyze sources in parallel with configurable worker count
- Write a JSON and Markdown report per source

A failing source is reported and does not stop the batch.

Example:
  lexis batch contracts.txt
  lexis batch contracts.txt --workers 8 --output-dir ./reports
  lexis batch contracts.txt --profile buyer.yaml --html`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./lexis-reports", "output directory for reports")
	batchCmd.Flags().BoolVar(&batchHTML, "html", false, "also write an HTML report per source")
	batchOpts.bind(batchCmd.Flags())
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := batchOpts.config(viper.GetViper(), cmd.Flags())
	if err != nil {
		return err
	}
	profile, err := batchOpts.profile()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), batchOpts.timeout)
	defer cancel()

	stderr := cmd.ErrOrStderr()
	workers := cfg.Concurrency.Workers

	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Lexis Batch Analysis\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(stderr, "  Output dir:   %s\n", outputDir)
	if cfg.LLM.Provider != "" {
		fmt.Fprintf(stderr, "  LLM:          %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	}
	fmt.Fprintf(stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	analyzer := pipeline.NewAnalyzerFromConfig(cfg, stderr)
	processor := worker.NewBatchProcessor(analyzer, workers)

	results, err := processor.ProcessFile(ctx, file, profile)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter, cfg.Output.Color)
	success, failure := writeBatchReports(renderer, results, outputDir, batchHTML, stderr)

	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "  Batch Complete\n")
	fmt.Fprintf(stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(stderr, "\n")
	fmt.Fprintf(stderr, "  Total:     %d sources\n", len(results))
	fmt.Fprintf(stderr, "  Success:   %d\n", success)
	fmt.Fprintf(stderr, "  Failures:  %d\n", failure)
	fmt.Fprintf(stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(stderr, "\n")

	return nil
}

// writeBatchReports writes one report set per successful result and
// returns the success and failure counts
func writeBatchReports(renderer *pipeline.Renderer, results []*worker.AnalyzeResult, dir string, withHTML bool, log io.Writer) (int, int) {
	success, failure := 0, 0

	for i, result := range results {
		if result.Error != nil {
			failure++
			fmt.Fprintf(log, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}

		base := filepath.Join(dir, fmt.Sprintf("%03d-%s", i+1, sanitizeFilename(result.Source)))
		if err := renderer.RenderJSON(result.Report, base+".json"); err != nil {
			failure++
			fmt.Fprintf(log, "✗ %s: failed to write JSON: %v\n", result.Source, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, base+".md"); err != nil {
			failure++
			fmt.Fprintf(log, "✗ %s: failed to write Markdown: %v\n", result.Source, err)
			continue
		}
		if withHTML {
			if err := renderer.RenderHTML(result.Report, base+".html"); err != nil {
				failure++
				fmt.Fprintf(log, "✗ %s: failed to write HTML: %v\n", result.Source, err)
				continue
			}
		}

		success++
		s := result.Report.Stats
		fmt.Fprintf(log, "✓ %s (obligations: %d, rights: %d, warnings: %d)\n",
			result.Source, s.Obligations, s.Rights, len(result.Report.Warnings))
	}

	return success, failure
}

// sanitizeFilename turns a file path or URL into a safe file name stem
func sanitizeFilename(source string) string {
	var name string
	if u, err := url.Parse(source); err == nil && u.Host != "" {
		name = u.Host + u.Path
	} else {
		name = filepath.Base(source)
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	name = strings.Trim(replacer.Replace(name), "_.-")

	if name == "" {
		name = "report"
	}
	if len(name) > 100 {
		name = name[:100]
	}

	return name
}
