package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/caseinspect/pkg/casestudy"
	"github.com/spf13/cobra"
)

func newListCmd(global *globalOptions) *cobra.Command {
	var filter casestudy.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List case studies in the dataset",
		Long: `List the case studies in the dataset in file order.

Filters combine with AND. An empty filter or the value "all" matches everything.
--search matches the title or summary, ignoring case.

Example usage:
  caseinspect list
  caseinspect list --substance psilocybin --severity high
  caseinspect list --search retreat --year 2019`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, global, filter)
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "Case-insensitive text to find in title or summary")
	cmd.Flags().StringVar(&filter.Substance, "substance", "", "Only case studies involving this substance")
	cmd.Flags().StringVar(&filter.Severity, "severity", "", "Only case studies with this severity (low, moderate, high, fatal)")
	cmd.Flags().StringVar(&filter.Year, "year", "", "Only case studies from this year")

	return cmd
}

func runList(cmd *cobra.Command, global *globalOptions, filter casestudy.Filter) error {
	log := newLogger(cmd, global, "list")

	cfg, err := resolveConfig(cmd, global, log)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cfg, log)
	if err != nil {
		return err
	}

	matches := ds.Filter(filter)
	out := cmd.OutOrStdout()

	if ds.Version != "" {
		version := ds.Version
		if v, err := ds.SemVer(); err == nil {
			version = "v" + v.String()
		}
		fmt.Fprintf(out, "Dataset version: %s\n", version)
	}
	fmt.Fprintf(out, "Showing %d of %d case studies\n\n", len(matches), len(ds.CaseStudies))

	if len(matches) == 0 {
		return nil
	}

	if styled(out) {
		renderListTable(out, matches)
		return nil
	}
	return renderListPlain(out, matches)
}

func listRow(i int, cs casestudy.CaseStudy) []string {
	return []string{
		strconv.Itoa(i + 1),
		cs.ID,
		string(cs.Year),
		cs.Severity,
		strings.Join(cs.Substances, ","),
		cs.Title,
	}
}

var listHeaders = []string{"#", "ID", "YEAR", "SEVERITY", "SUBSTANCES", "TITLE"}

func renderListPlain(w io.Writer, matches []casestudy.CaseStudy) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(listHeaders, "\t"))
	for i, cs := range matches {
		fmt.Fprintln(tw, strings.Join(listRow(i, cs), "\t"))
	}
	return tw.Flush()
}

func renderListTable(w io.Writer, matches []casestudy.CaseStudy) {
	var rows [][]string
	for i, cs := range matches {
		rows = append(rows, listRow(i, cs))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(listHeaders...).
		Rows(rows...)

	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle.Padding(0, 1)
		}
		if col == 3 && row >= 0 && row < len(matches) {
			return severityStyle(matches[row].Severity).Padding(0, 1)
		}
		return cellStyle
	})

	fmt.Fprintln(w, t)
}
