package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/caseinspect/pkg/casestudy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sampleRecords = []record{
	{
		ID:         "cs-001",
		Title:      "Accidental High-Dose LSD Ingestion",
		Summary:    "Blotter mistaken for a microdose",
		Substances: []string{"lsd"},
		Severity:   "high",
		Year:       2019,
		FullText: strings.Join([]string{
			"Setting: Home",
			"Year: 2019",
			"Summary: Accidental ingestion of a full sheet.",
			"Case Study:",
			"Paragraph one.",
			"",
			"Paragraph two.",
		}, "\n"),
	},
	{
		ID:         "cs-002",
		Title:      "Festival Mixed Use",
		Summary:    "Polysubstance use at a festival",
		Substances: []string{"mdma", "lsd"},
		SubstanceDetails: map[string]string{
			"primary":         "MDMA",
			"secondary":       "LSD",
			"confidenceLevel": "Medium",
		},
		Severity: "moderate",
		Year:     "2021",
		Setting:  "Festival",
		FullText: "Setting: Festival",
	},
	{
		ID:         "cs-003",
		Title:      "Ketamine Clinic Report",
		Substances: []string{"ketamine"},
		Severity:   "low",
		Year:       "2021",
		Setting:    "Unknown",
		FullText:   "plain text",
	},
}

func TestList(t *testing.T) {
	t.Run("All", func(t *testing.T) {
		setupProject(t, "1.0", sampleRecords...)

		stdout, _, err := runCmd(t, "list")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Dataset version: v1.0.0\n")
		assert.Contains(t, stdout, "Showing 3 of 3 case studies\n")
		assert.Contains(t, stdout, "Accidental High-Dose LSD Ingestion")
		assert.Contains(t, stdout, "Festival Mixed Use")
		assert.Contains(t, stdout, "Ketamine Clinic Report")
		assert.Contains(t, stdout, "SEVERITY")
	})

	t.Run("Filtered", func(t *testing.T) {
		setupProject(t, "", sampleRecords...)

		stdout, _, err := runCmd(t, "list", "--substance", "lsd", "--year", "2021")
		require.NoError(t, err)
		assert.NotContains(t, stdout, "Dataset version")
		assert.Contains(t, stdout, "Showing 1 of 3 case studies\n")
		assert.Contains(t, stdout, "Festival Mixed Use")
		assert.NotContains(t, stdout, "Accidental High-Dose")
	})

	t.Run("Search", func(t *testing.T) {
		setupProject(t, "", sampleRecords...)

		stdout, _, err := runCmd(t, "list", "-s", "MICRODOSE")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Showing 1 of 3 case studies\n")
		assert.Contains(t, stdout, "cs-001")
	})

	t.Run("NoResults", func(t *testing.T) {
		setupProject(t, "", sampleRecords...)

		stdout, _, err := runCmd(t, "list", "--severity", "fatal")
		require.NoError(t, err)
		assert.Equal(t, "Showing 0 of 3 case studies\n\n", stdout)
	})
}

func TestShow(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		setupProject(t, "", sampleRecords...)

		stdout, _, err := runCmd(t, "show", "Accidental")
		require.NoError(t, err)
		assert.Equal(t, "Accidental High-Dose LSD Ingestion\n"+
			"Severity: high\n"+
			"Substances: lsd\n"+
			"Paragraphs: 2\n"+
			"\n"+
			"Setting: Home\n"+
			"Year: 2019\n"+
			"Summary: Accidental ingestion of a full sheet.\n"+
			"\n"+
			"Case Study:\n"+
			"Paragraph one.\n\nParagraph two.\n", stdout)
	})

	t.Run("JSON", func(t *testing.T) {
		setupProject(t, "", sampleRecords...)

		stdout, _, err := runCmd(t, "show", "Ketamine", "--format", "json")
		require.NoError(t, err)

		var view caseView
		require.NoError(t, json.Unmarshal([]byte(stdout), &view))
		assert.Equal(t, "cs-003", view.ID)
		assert.Equal(t, "2021", view.Year)
		assert.Empty(t, view.Setting)
		assert.NotContains(t, stdout, "setting")
		assert.Empty(t, view.Sections)
		assert.Equal(t, 1, view.Paragraphs)
	})

	t.Run("YAML", func(t *testing.T) {
		setupProject(t, "", sampleRecords...)

		stdout, _, err := runCmd(t, "show", "Festival", "--format", "yaml")
		require.NoError(t, err)

		var view caseView
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &view))
		assert.Equal(t, []casestudy.Section{{Label: "Setting", Value: "Festival"}}, view.Sections)
		assert.Equal(t, []string{"mdma", "lsd"}, view.Substances)
		assert.Equal(t, "Festival", view.Setting)
		assert.Equal(t, "MDMA", view.Primary)
		assert.Equal(t, "Medium", view.Confidence)
	})

	t.Run("SubstanceDetailsText", func(t *testing.T) {
		setupProject(t, "", sampleRecords...)

		stdout, _, err := runCmd(t, "show", "Festival")
		require.NoError(t, err)
		assert.Equal(t, "Festival Mixed Use\n"+
			"Severity: moderate\n"+
			"Substances: mdma, lsd\n"+
			"Primary Substance: MDMA\n"+
			"Confidence Level: Medium\n"+
			"Setting: Festival\n"+
			"Paragraphs: 1\n"+
			"\n"+
			"Setting: Festival\n", stdout)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		setupProject(t, "", sampleRecords...)

		_, _, err := runCmd(t, "show", "Festival", "--format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})

	t.Run("NoMatch", func(t *testing.T) {
		setupProject(t, "", sampleRecords...)

		_, _, err := runCmd(t, "show", "Nope")
		assert.ErrorIs(t, err, casestudy.ErrNoMatch)
	})
}

func TestSchemaCmd(t *testing.T) {
	t.Run("Stdout", func(t *testing.T) {
		stdout, _, err := runCmd(t, "schema")
		require.NoError(t, err)

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
		assert.Equal(t, "Case Study Dataset", doc["title"])
	})

	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.json")

		stdout, stderr, err := runCmd(t, "schema", "-o", path)
		require.NoError(t, err)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "Wrote schema to")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"caseStudies"`)
	})
}

func TestConfigCmd(t *testing.T) {
	t.Run("InitAndShow", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)

		stdout, _, err := runCmd(t, "config", "init")
		require.NoError(t, err)
		assert.Equal(t, "Wrote .caseinspect.toml\n", stdout)
		assert.FileExists(t, filepath.Join(dir, ".caseinspect.toml"))

		stdout, _, err = runCmd(t, "config", "show")
		require.NoError(t, err)
		assert.Contains(t, stdout, "dataset: src/data/case_studies_schema.json")
		assert.Contains(t, stdout, "count: 3")
	})

	t.Run("InitRefusesOverwrite", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "mine.toml"), []byte("count = 9\n"), 0644))

		_, _, err := runCmd(t, "config", "init", "mine.toml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")

		_, _, err = runCmd(t, "config", "init", "mine.toml", "--force")
		require.NoError(t, err)
	})

	t.Run("ShowAppliesFileFlag", func(t *testing.T) {
		chdir(t, t.TempDir())

		stdout, _, err := runCmd(t, "config", "show", "-f", "elsewhere.json")
		require.NoError(t, err)
		assert.Contains(t, stdout, "dataset: elsewhere.json")
	})
}
