package parser

import (
	"bytes"
	"errors"
	"regexp"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/report-core/schema"
	"go.uber.org/zap"
)

// ErrUnreadableDocument is returned when no text layer can be recovered from
// any page. Terminal for that document; retrying the same bytes cannot succeed.
var ErrUnreadableDocument = errors.New("no extractable text in document")

var pdfMagic = []byte("%PDF-")

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse extracts text from raw document bytes and returns an immutable
// Document. Format is sniffed from the content: PDF by magic bytes, Markdown
// by ATX headings, plain text otherwise.
func (p *Parser) Parse(raw []byte) (*schema.Document, error) {
	doc := &schema.Document{Fingerprint: schema.Fingerprint(raw)}

	var pages []schema.Page
	var err error

	switch {
	case bytes.HasPrefix(raw, pdfMagic):
		doc.Format = schema.FormatPDF
		pages, err = extractPDFPages(raw)
	case looksLikeMarkdown(raw):
		doc.Format = schema.FormatMarkdown
		pages = []schema.Page{{Number: 1, Text: extractMarkdownText(raw)}}
	default:
		doc.Format = schema.FormatText
		pages = splitTextPages(raw)
	}
	if err != nil {
		return nil, err
	}

	recovered := 0
	for _, pg := range pages {
		recovered += len(strings.TrimSpace(pg.Text))
	}
	if recovered == 0 {
		logger.Error("No text recovered from document",
			zap.String("fingerprint", doc.Fingerprint),
			zap.Int("pages", len(pages)))
		return nil, ErrUnreadableDocument
	}

	doc.Pages = pages
	doc.Text = normalizeText(joinPages(pages))

	logger.Info("Parsed document",
		zap.String("fingerprint", doc.Fingerprint),
		zap.String("format", string(doc.Format)),
		zap.Int("pages", len(pages)),
		zap.Int("textLength", len(doc.Text)))
	return doc, nil
}

func joinPages(pages []schema.Page) string {
	var b strings.Builder
	for i, pg := range pages {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(pg.Text)
	}
	return b.String()
}

// splitTextPages treats form feeds as page breaks; without them the whole
// input is a single page.
func splitTextPages(raw []byte) []schema.Page {
	parts := strings.Split(string(raw), "\f")
	pages := make([]schema.Page, len(parts))
	for i, part := range parts {
		pages[i] = schema.Page{Number: i + 1, Text: part}
	}
	return pages
}

var (
	spaceRe      = regexp.MustCompile(`[ \t]+`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
	pageNoRe     = regexp.MustCompile(`(?i)\bpage\s+\d+(\s+of\s+\d+)?\b`)
)

// normalizeText collapses whitespace runs and strips page-number artifacts so
// section keywords and metric labels match across line-wrapped layouts.
func normalizeText(text string) string {
	text = pageNoRe.ReplaceAllString(text, "")
	text = spaceRe.ReplaceAllString(text, " ")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
