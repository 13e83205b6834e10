package cmd

import (
	"fmt"
	"os"

	"github.com/grovetools/caseinspect/pkg/casestudy"
	"github.com/spf13/cobra"
)

// newSchemaCmd creates the `schema` command.
func newSchemaCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the case-study dataset",
		Long: `Print the JSON Schema describing the case-study dataset document.

The schema is reflected from the types the inspector decodes, so it documents
exactly which fields are read. Use it for editor autocompletion when
maintaining the dataset.

Example usage:
  caseinspect schema
  caseinspect schema -o case_studies.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the schema to this file instead of stdout")

	return cmd
}

func runSchema(cmd *cobra.Command, output string) error {
	data, err := casestudy.SchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema file %s: %w", output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote schema to %s\n", output)
	return nil
}
