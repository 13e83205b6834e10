package casestudy

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// FindByTitle returns the first case study whose title contains pattern.
// Matching is case-sensitive and later matches are ignored.
func (d *Dataset) FindByTitle(pattern string) (*CaseStudy, error) {
	for i := range d.CaseStudies {
		if strings.Contains(d.CaseStudies[i].Title, pattern) {
			return &d.CaseStudies[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no case study title contains %q", ErrNoMatch, pattern)
}

// Filter narrows a list of case studies the way the explorer's search
// controls do. Empty fields and "all" match everything.
type Filter struct {
	Search    string
	Substance string
	Severity  string
	Year      string
}

// Matches reports whether cs passes every active criterion.
func (f Filter) Matches(cs CaseStudy) bool {
	if active(f.Search) {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(cs.Title), q) &&
			!strings.Contains(strings.ToLower(cs.Summary), q) {
			return false
		}
	}
	if active(f.Substance) && !slices.Contains(cs.Substances, f.Substance) {
		return false
	}
	if active(f.Severity) && cs.Severity != f.Severity {
		return false
	}
	if active(f.Year) && string(cs.Year) != f.Year {
		return false
	}
	return true
}

// Filter returns the case studies matching f, in dataset order.
func (d *Dataset) Filter(f Filter) []CaseStudy {
	var out []CaseStudy
	for _, cs := range d.CaseStudies {
		if f.Matches(cs) {
			out = append(out, cs)
		}
	}
	return out
}

// Substances returns the sorted set of substances referenced by any case study.
func (d *Dataset) Substances() []string {
	seen := make(map[string]bool)
	var out []string
	for _, cs := range d.CaseStudies {
		for _, s := range cs.Substances {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}

func active(v string) bool {
	return v != "" && v != "all"
}
