// Package markdown renders job description text to sanitized HTML for
// the preview endpoint.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Table),
	)
	// UGCPolicy keeps formatting tags but strips scripts, event handlers
	// and anything else a stored description could smuggle in.
	return &Renderer{md: md, policy: bluemonday.UGCPolicy()}
}

// Render converts markdown to HTML and sanitizes the result. Raw HTML in
// the source is escaped by goldmark's default renderer, then the output
// passes through the bluemonday policy anyway.
func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}
