package parser

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var atxHeadingRe = regexp.MustCompile(`^#{1,6}\s+\S`)

// looksLikeMarkdown scans the leading lines for an ATX heading. Annual
// reports converted to markdown always carry headings; plain text dumps
// don't.
func looksLikeMarkdown(raw []byte) bool {
	lines := bytes.Split(raw, []byte("\n"))
	limit := len(lines)
	if limit > 40 {
		limit = 40
	}
	for _, line := range lines[:limit] {
		if atxHeadingRe.Match(bytes.TrimSpace(line)) {
			return true
		}
	}
	return false
}

// extractMarkdownText renders markdown down to plain text. Heading text is
// kept inline so the section keyword scan sees it.
func extractMarkdownText(md []byte) string {
	reader := text.NewReader(md)
	root := goldmark.DefaultParser().Parse(reader)

	var buf bytes.Buffer
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock && buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			buf.Write(t.Segment.Value(md))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})

	return buf.String()
}
