package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	exact := strings.Repeat("a", 200)
	long := strings.Repeat("b", 201)
	multibyte := strings.Repeat("é", 201)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"short", "P1", "P1"},
		{"exactly at limit", exact, exact},
		{"one over limit", long, strings.Repeat("b", 200) + "..."},
		{"multibyte counted as characters", multibyte, strings.Repeat("é", 200) + "..."},
		{"multibyte under limit", strings.Repeat("é", 150), strings.Repeat("é", 150)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Preview(tt.input, DefaultLimit))
		})
	}
}

func TestPreviewTruncationLaw(t *testing.T) {
	for n := 0; n <= 400; n += 7 {
		p := strings.Repeat("x", n)
		got := Preview(p, DefaultLimit)
		if n > DefaultLimit {
			assert.Equal(t, p[:DefaultLimit]+Ellipsis, got, "length %d", n)
		} else {
			assert.Equal(t, p, got, "length %d", n)
		}
	}
}

func TestRender(t *testing.T) {
	t.Run("FourParagraphs", func(t *testing.T) {
		got := Render([]string{"P1", "P2", "P3", "P4"}, DefaultOptions())
		expected := "Number of paragraphs: 4\n" +
			"\n" +
			"First 3 paragraphs:\n" +
			"\n" +
			"--- Paragraph 1 ---\n" +
			"P1\n" +
			"\n" +
			"--- Paragraph 2 ---\n" +
			"P2\n" +
			"\n" +
			"--- Paragraph 3 ---\n" +
			"P3\n"
		assert.Equal(t, expected, got)
	})

	t.Run("FewerThanCount", func(t *testing.T) {
		got := Render([]string{""}, DefaultOptions())
		assert.Equal(t, "Number of paragraphs: 1\n\nFirst 3 paragraphs:\n\n--- Paragraph 1 ---\n\n", got)
	})

	t.Run("NoParagraphs", func(t *testing.T) {
		got := Render(nil, DefaultOptions())
		assert.Equal(t, "Number of paragraphs: 0\n\nFirst 3 paragraphs:\n", got)
	})

	t.Run("CustomOptions", func(t *testing.T) {
		got := Render([]string{"abcdef", "gh", "ij"}, Options{Count: 1, Limit: 3})
		assert.Equal(t, "Number of paragraphs: 3\n\nFirst 1 paragraphs:\n\n--- Paragraph 1 ---\nabc...\n", got)
	})

	t.Run("TruncatesLongParagraph", func(t *testing.T) {
		long := strings.Repeat("z", 250)
		got := Render([]string{long}, DefaultOptions())
		assert.Contains(t, got, "--- Paragraph 1 ---\n"+strings.Repeat("z", 200)+"...\n")
		assert.NotContains(t, got, strings.Repeat("z", 201))
	})
}

func TestWriteIsIdempotent(t *testing.T) {
	paragraphs := []string{"first", strings.Repeat("long ", 60), "third", "fourth"}

	var first, second bytes.Buffer
	require.NoError(t, Write(&first, paragraphs, DefaultOptions()))
	require.NoError(t, Write(&second, paragraphs, DefaultOptions()))
	assert.Equal(t, first.Bytes(), second.Bytes())
}
