package ssr_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/spoonmap/internal/ssr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		selector string
	}{
		{
			name:     "replaces primary button element",
			input:    `<button-primary class="test" type="submit">Add</button-primary>`,
			selector: "button.btn.btn-primary.test",
		},
		{
			name:     "replaces primary button inside as",
			input:    `<button as="button-primary">Click me</button>`,
			selector: "button.btn.btn-primary:not([as])",
		},
		{
			name:     "adds variant class",
			input:    `<spoon-tag variant="black-spoon">Black Spoon</spoon-tag>`,
			selector: "span.tag.tag-black-spoon:not([variant])",
		},
		{
			name:     "blank variant is ignored",
			input:    `<rank-badge variant=" ">Top 8</rank-badge>`,
			selector: "span.badge",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			require.NoError(t, ssr.Expand(&out, strings.NewReader(tt.input), true))
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(out.String()))
			require.NoError(t, err)
			assert.Equal(t, 1, doc.Find(tt.selector).Length(), out.String())
		})
	}
}

func TestExpand_Document(t *testing.T) {
	var out strings.Builder
	input := `<!DOCTYPE html><html lang="en"><head><title>x</title></head><body><button-ghost>Back</button-ghost></body></html>`
	require.NoError(t, ssr.Expand(&out, strings.NewReader(input), false))
	assert.True(t, strings.HasPrefix(out.String(), "<!DOCTYPE html>"))
	assert.Contains(t, out.String(), `<button class="btn btn-ghost">Back</button>`)
	assert.NotContains(t, out.String(), "button-ghost>")
}
