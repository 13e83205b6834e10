package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/grovetools/caseinspect/pkg/casestudy"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// caseView is the structured form of `show` output.
type caseView struct {
	ID         string              `json:"id,omitempty" yaml:"id,omitempty"`
	Title      string              `json:"title" yaml:"title"`
	Year       string              `json:"year,omitempty" yaml:"year,omitempty"`
	Severity   string              `json:"severity,omitempty" yaml:"severity,omitempty"`
	Substances []string            `json:"substances,omitempty" yaml:"substances,omitempty"`
	Setting    string              `json:"setting,omitempty" yaml:"setting,omitempty"`
	Primary    string              `json:"primarySubstance,omitempty" yaml:"primarySubstance,omitempty"`
	Confidence string              `json:"confidenceLevel,omitempty" yaml:"confidenceLevel,omitempty"`
	Sections   []casestudy.Section `json:"sections" yaml:"sections"`
	Narrative  string              `json:"narrative" yaml:"narrative"`
	Paragraphs int                 `json:"paragraphs" yaml:"paragraphs"`
}

func newShowCmd(global *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <match>",
		Short: "Show the labelled sections of a case study",
		Long: `Select the first case study whose title contains <match> and print the
labelled header fields parsed from its full text (Setting, Year, Summary, ...)
followed by the narrative after the "Case Study:" label.

Example usage:
  caseinspect show "Accidental High-Dose"
  caseinspect show Festival --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, global, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or yaml")

	return cmd
}

func runShow(cmd *cobra.Command, global *globalOptions, match, format string) error {
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q (want text, json or yaml)", format)
	}

	log := newLogger(cmd, global, "show")

	cfg, err := resolveConfig(cmd, global, log)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cfg, log)
	if err != nil {
		return err
	}
	cs, err := ds.FindByTitle(match)
	if err != nil {
		return err
	}
	paragraphs, err := cs.Paragraphs()
	if err != nil {
		return fmt.Errorf("%w: %q", err, cs.Title)
	}

	sections, narrative := casestudy.ParseSections(cs.FullText.Value)
	view := caseView{
		ID:         cs.ID,
		Title:      cs.Title,
		Year:       string(cs.Year),
		Severity:   cs.Severity,
		Substances: cs.Substances,
		Primary:    cs.SubstanceDetails.Primary,
		Confidence: cs.SubstanceDetails.ConfidenceLevel,
		Sections:   sections,
		Narrative:  narrative,
		Paragraphs: len(paragraphs),
	}
	if cs.Setting != "Unknown" {
		view.Setting = cs.Setting
	}
	if view.Sections == nil {
		view.Sections = []casestudy.Section{}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()
	default:
		return renderShowText(out, view, styled(out))
	}
}

func renderShowText(w io.Writer, v caseView, color bool) error {
	paint := func(s string, style func(...string) string) string {
		if color {
			return style(s)
		}
		return s
	}

	var b strings.Builder
	b.WriteString(paint(v.Title, headerStyle.Render))
	b.WriteString("\n")
	if v.Severity != "" {
		fmt.Fprintf(&b, "%s %s\n", paint("Severity:", labelStyle.Render), paint(v.Severity, severityStyle(v.Severity).Render))
	}
	if len(v.Substances) > 0 {
		fmt.Fprintf(&b, "%s %s\n", paint("Substances:", labelStyle.Render), strings.Join(v.Substances, ", "))
	}
	if v.Primary != "" {
		fmt.Fprintf(&b, "%s %s\n", paint("Primary Substance:", labelStyle.Render), v.Primary)
	}
	if v.Confidence != "" {
		fmt.Fprintf(&b, "%s %s\n", paint("Confidence Level:", labelStyle.Render), v.Confidence)
	}
	if v.Setting != "" {
		fmt.Fprintf(&b, "%s %s\n", paint("Setting:", labelStyle.Render), v.Setting)
	}
	fmt.Fprintf(&b, "%s %d\n", paint("Paragraphs:", labelStyle.Render), v.Paragraphs)

	if len(v.Sections) > 0 {
		b.WriteString("\n")
		for _, s := range v.Sections {
			fmt.Fprintf(&b, "%s %s\n", paint(s.Label+":", labelStyle.Render), s.Value)
		}
	}

	if v.Narrative != "" {
		b.WriteString("\n")
		b.WriteString(paint("Case Study:", labelStyle.Render))
		b.WriteString("\n")
		b.WriteString(v.Narrative)
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
