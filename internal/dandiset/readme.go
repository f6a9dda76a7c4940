package dandiset

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FromReadme derives draft metadata from a Markdown README: the first
// top-level heading becomes the dandiset name and the first paragraph
// after it the description. A README without a top-level heading is an
// error; a missing paragraph just leaves the description empty.
func FromReadme(path string) (*Metadata, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read readme: %w", err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var m Metadata
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && m.Name == "" {
				m.Name = extractText(node, source)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			if m.Name != "" && m.Description == "" {
				m.Description = extractText(node, source)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk readme: %w", err)
	}

	if m.Name == "" {
		return nil, fmt.Errorf("%s: no top-level heading to use as the dandiset name", path)
	}
	m.Normalize()
	return &m, nil
}

// extractText collects the plain text beneath an AST node, flattening
// inline markup and joining soft line breaks with spaces.
func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
				if t.SoftLineBreak() || t.HardLineBreak() {
					buf.WriteByte(' ')
				}
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
