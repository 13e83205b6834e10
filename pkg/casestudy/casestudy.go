// Package casestudy loads the case-study dataset and provides selection,
// filtering and text-splitting helpers over its records.
package casestudy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/invopop/jsonschema"
)

// DefaultDatasetPath is where the dataset lives relative to the project root.
const DefaultDatasetPath = "src/data/case_studies_schema.json"

// DefaultTitleMatch selects the accidental high-dose incident report.
const DefaultTitleMatch = "Accidental High-Dose"

var (
	// ErrNoMatch is returned when no case study title contains the requested pattern.
	ErrNoMatch = errors.New("no matching case study")
	// ErrMissingFullText is returned when the selected case study has no string fullText.
	ErrMissingFullText = errors.New("case study has no fullText")
	// ErrVersionMismatch is returned when the dataset version does not satisfy a constraint.
	ErrVersionMismatch = errors.New("dataset version mismatch")
)

// Dataset is the top-level case-study document.
type Dataset struct {
	Version     string      `json:"version,omitempty" yaml:"version,omitempty" jsonschema:"description=Dataset revision such as 1.0"`
	LastUpdated string      `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
	CaseStudies []CaseStudy `json:"caseStudies" yaml:"caseStudies"`
}

// UnmarshalJSON decodes caseStudies strictly and the descriptive fields
// leniently: a wrongly typed version or lastUpdated decodes as empty.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = Dataset{
		Version:     looseString(raw["version"]),
		LastUpdated: looseString(raw["lastUpdated"]),
	}
	if v, ok := raw["caseStudies"]; ok {
		if err := json.Unmarshal(v, &d.CaseStudies); err != nil {
			return fmt.Errorf("caseStudies: %w", err)
		}
	}
	return nil
}

// CaseStudy is a single documented incident.
type CaseStudy struct {
	ID               string           `json:"id,omitempty" yaml:"id,omitempty"`
	Title            string           `json:"title" yaml:"title"`
	Summary          string           `json:"summary,omitempty" yaml:"summary,omitempty"`
	Substances       []string         `json:"substances,omitempty" yaml:"substances,omitempty"`
	SubstanceDetails SubstanceDetails `json:"substanceDetails,omitempty" yaml:"substanceDetails,omitempty"`
	Severity         string           `json:"severity,omitempty" yaml:"severity,omitempty" jsonschema:"enum=low,enum=moderate,enum=high,enum=fatal"`
	Year             Year             `json:"year,omitempty" yaml:"year,omitempty"`
	Setting          string           `json:"setting,omitempty" yaml:"setting,omitempty"`
	FullText         Text             `json:"fullText" yaml:"fullText"`
}

// SubstanceDetails describes what was taken and how sure the report is of it.
type SubstanceDetails struct {
	Primary         string `json:"primary,omitempty" yaml:"primary,omitempty"`
	Secondary       string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
	ConfidenceLevel string `json:"confidenceLevel,omitempty" yaml:"confidenceLevel,omitempty"`
}

// UnmarshalJSON decodes a record. Only title must be well typed; every other
// field that holds an unexpected type decodes to its zero value so that a
// stray record cannot stop the dataset from loading. fullText is checked
// later, and only on the selected record.
func (c *CaseStudy) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = CaseStudy{
		ID:               looseString(raw["id"]),
		Summary:          loose[string](raw["summary"]),
		Substances:       loose[[]string](raw["substances"]),
		SubstanceDetails: loose[SubstanceDetails](raw["substanceDetails"]),
		Severity:         loose[string](raw["severity"]),
		Year:             loose[Year](raw["year"]),
		Setting:          loose[string](raw["setting"]),
	}
	if v, ok := raw["title"]; ok {
		if err := json.Unmarshal(v, &c.Title); err != nil {
			return fmt.Errorf("title: %w", err)
		}
	}
	if v, ok := raw["fullText"]; ok {
		if err := c.FullText.UnmarshalJSON(v); err != nil {
			return err
		}
	}
	return nil
}

// loose decodes raw into a T, returning the zero value when raw is absent or
// holds a different type.
func loose[T any](raw json.RawMessage) T {
	var v T
	if len(raw) == 0 {
		return v
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero
	}
	return v
}

// looseString accepts a JSON string or number; numbers keep their literal text.
func looseString(raw json.RawMessage) string {
	var n json.Number
	if len(raw) > 0 && json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return loose[string](raw)
}

// Text is a string field that tolerates a missing, null or non-string value.
// Valid reports whether a JSON string was actually decoded.
type Text struct {
	Value string
	Valid bool
}

// NewText returns a valid Text holding s.
func NewText(s string) Text {
	return Text{Value: s, Valid: true}
}

// UnmarshalJSON never fails; a null or non-string value leaves t invalid.
func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Wrong type; left invalid so only a selected record fails.
		return nil
	}
	*t = NewText(s)
	return nil
}

// MarshalJSON writes null for an invalid Text.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// MarshalYAML omits the value for an invalid Text.
func (t Text) MarshalYAML() (interface{}, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Value, nil
}

// JSONSchema describes Text as a plain string.
func (Text) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Long-form report. Paragraphs are separated by a blank line.",
	}
}

// Year accepts either a JSON string or a JSON number.
type Year string

// UnmarshalJSON accepts a string, an integer or null.
func (y *Year) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*y = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*y = Year(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*y = Year(strconv.FormatInt(i, 10))
		return nil
	}
	*y = Year(n.String())
	return nil
}

// JSONSchema allows either a string or an integer.
func (Year) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "integer"},
		},
	}
}

// Paragraphs splits the case study's full text. It fails with
// ErrMissingFullText when the record carried no string fullText.
func (c CaseStudy) Paragraphs() ([]string, error) {
	if !c.FullText.Valid {
		return nil, ErrMissingFullText
	}
	return SplitParagraphs(c.FullText.Value), nil
}
