package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ppiankov/lexis/internal/model"
)

const footer = "_Generated by Lexis. Extractions are heuristic and are not legal advice._"

// Renderer writes reports as JSON, Markdown, HTML and a terminal summary
type Renderer struct {
	includeFooter bool
	markdown      goldmark.Markdown
}

// NewRenderer creates a renderer. Color output follows useColor and is
// also disabled when stdout is not a terminal.
func NewRenderer(includeFooter, useColor bool) *Renderer {
	if !useColor {
		color.NoColor = true
	}
	return &Renderer{
		includeFooter: includeFooter,
		markdown:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// WriteJSON encodes report as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, report *model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// RenderJSON writes report to path as JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	var buf bytes.Buffer
	if err := r.WriteJSON(&buf, report); err != nil {
		return err
	}
	return writeFile(path, buf.Bytes())
}

// Markdown renders report as GitHub-flavored Markdown
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Lexis Report: %s\n\n", report.Source)
	fmt.Fprintf(&b, "- **Report ID:** `%s`\n", report.ID)
	fmt.Fprintf(&b, "- **Analyzed:** %s\n\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST"))

	s := report.Stats
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n|---|---|\n")
	for _, row := range []struct {
		name  string
		value int
	}{
		{"Sections", s.Sections},
		{"Sentences", s.Sentences},
		{"Obligations", s.Obligations},
		{"Rights", s.Rights},
		{"Entities", s.Entities},
		{"Model-classified sentences", s.ModelClassified},
		{"Unspecified parties", s.UnspecifiedParty},
		{"Insights", s.Insights},
	} {
		fmt.Fprintf(&b, "| %s | %d |\n", row.name, row.value)
	}
	b.WriteString("\n")

	if len(report.Insights) > 0 {
		b.WriteString("## Personalized Insights\n\n")
		for _, in := range report.Insights {
			switch in.Kind {
			case model.InsightConcernMatch:
				fmt.Fprintf(&b, "- **%s**: section matches your concern `%s`\n", in.SectionTitle, in.Payload)
			default:
				fmt.Fprintf(&b, "- **%s**: your obligation: %s\n", in.SectionTitle, in.Payload)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Sections\n\n")
	for _, section := range report.Sections {
		info := section.Info
		fmt.Fprintf(&b, "### %s\n\n", section.Extractions.SectionTitle)
		fmt.Fprintf(&b, "Clause type: **%s** (%.0f%%, %s)\n\n", info.Label, info.Confidence*100, info.Source)
		writeItems(&b, "Obligations", section.Extractions.Obligations)
		writeItems(&b, "Rights", section.Extractions.Rights)
		if n := len(section.Extractions.Other); n > 0 {
			fmt.Fprintf(&b, "_%d other sentence(s)._\n\n", n)
		}
	}

	if len(report.GroupedEntities) > 0 {
		b.WriteString("## Entities\n\n| Label | Mentions |\n|---|---|\n")
		labels := make([]string, 0, len(report.GroupedEntities))
		for label := range report.GroupedEntities {
			labels = append(labels, string(label))
		}
		sort.Strings(labels)
		for _, label := range labels {
			texts := report.GroupedEntities[model.EntityLabel(label)]
			fmt.Fprintf(&b, "| %s | %s |\n", label, cell(strings.Join(texts, ", ")))
		}
		b.WriteString("\n")
	}

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n" + footer + "\n")
	}

	return b.String()
}

func writeItems(b *strings.Builder, heading string, items []model.ExtractionItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- **%s**: %s", item.Party, item.Action)
		if len(item.Conditions) > 0 {
			fmt.Fprintf(b, " _(conditions: %s)_", strings.Join(item.Conditions, "; "))
		}
		if item.Provenance == model.ProvenanceModel {
			b.WriteString(" `model`")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderMarkdown writes the Markdown report to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, []byte(r.Markdown(report)))
}

// HTML renders the Markdown report into a standalone HTML page
func (r *Renderer) HTML(report *model.Report) (string, error) {
	var body bytes.Buffer
	if err := r.markdown.Convert([]byte(r.Markdown(report)), &body); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	return "<!doctype html><html><head><meta charset='utf-8'>" +
		"<title>Lexis Report: " + html.EscapeString(report.Source) + "</title>" +
		"<style>body{font-family:system-ui,sans-serif;max-width:960px;margin:2rem auto;padding:0 1rem;line-height:1.5}" +
		"table{border-collapse:collapse}th,td{border:1px solid #ccc;padding:.3rem .6rem;text-align:left}" +
		"code{background:#f4f4f4;padding:0 .2rem}</style></head><body>" +
		body.String() + "</body></html>", nil
}

// RenderHTML writes the HTML report to path
func (r *Renderer) RenderHTML(report *model.Report, path string) error {
	page, err := r.HTML(report)
	if err != nil {
		return err
	}
	return writeFile(path, []byte(page))
}

// RenderSummary prints a short colored overview
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	s := report.Stats
	_, _ = bold.Fprintf(w, "Lexis: %s\n", report.Source)
	fmt.Fprintf(w, "  Sections: %d  Sentences: %d  Entities: %d\n", s.Sections, s.Sentences, s.Entities)
	_, _ = green.Fprintf(w, "  Obligations: %d\n", s.Obligations)
	_, _ = cyan.Fprintf(w, "  Rights: %d\n", s.Rights)

	if s.UnspecifiedParty > 0 {
		_, _ = yellow.Fprintf(w, "  Unspecified parties: %d\n", s.UnspecifiedParty)
	}
	if len(report.Insights) > 0 {
		_, _ = bold.Fprintf(w, "  Insights: %d\n", len(report.Insights))
		for _, in := range report.Insights {
			fmt.Fprintf(w, "    - [%s] %s: %s\n", in.Kind, in.SectionTitle, in.Payload)
		}
	}
	if len(report.Warnings) > 0 {
		_, _ = red.Fprintf(w, "  Warnings: %d\n", len(report.Warnings))
	}
}

func writeFile(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
