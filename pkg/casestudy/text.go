package casestudy

import "strings"

// ParagraphSeparator delimits paragraphs in a case study's full text.
const ParagraphSeparator = "\n\n"

// SplitParagraphs splits text on blank lines. Empty paragraphs produced by
// adjacent separators are kept, and empty text yields a single empty paragraph.
func SplitParagraphs(text string) []string {
	return strings.Split(text, ParagraphSeparator)
}

// Section is a labelled header field from a case study's full text.
type Section struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// narrativeLabel starts the free-form body of the report.
const narrativeLabel = "Case Study:"

// sectionLabels are checked in order; the first prefix match wins.
var sectionLabels = []string{
	"Subject identity details:",
	"Setting:",
	"Year:",
	"Substance/Dose – Primary:",
	"Substance(s)/Dose(s) – Secondary:",
	"Confidence level of identification:",
	"Case Report Source:",
	"Case Study Source:",
	"Summary:",
	narrativeLabel,
}

// ParseSections extracts the labelled header fields and the narrative that
// follows the "Case Study:" label. Continuation lines are joined onto the
// open section with a single space.
func ParseSections(text string) ([]Section, string) {
	if text == "" {
		return nil, ""
	}

	lines := strings.Split(text, "\n")
	var (
		sections       []Section
		current        *Section
		narrativeStart = -1
	)

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		label := matchLabel(trimmed)
		if label == "" {
			if current != nil && trimmed != "" {
				if current.Value != "" {
					current.Value += " "
				}
				current.Value += trimmed
			}
			continue
		}

		if current != nil {
			sections = append(sections, *current)
		}
		if label == narrativeLabel {
			narrativeStart = i
			current = nil
			continue
		}
		current = &Section{
			Label: strings.Replace(label, ":", "", 1),
			Value: strings.TrimSpace(trimmed[len(label):]),
		}
	}
	if current != nil {
		sections = append(sections, *current)
	}

	var narrative string
	if narrativeStart >= 0 {
		narrative = strings.TrimSpace(strings.Join(lines[narrativeStart+1:], "\n"))
	}
	return sections, narrative
}

func matchLabel(line string) string {
	for _, l := range sectionLabels {
		if strings.HasPrefix(line, l) {
			return l
		}
	}
	return ""
}
