package parser

import (
	"bytes"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/report-core/schema"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// extractPDFPages recovers text page by page. A page that yields nothing is
// kept as an empty page so page numbering stays aligned; only a document
// where every page fails is unreadable (checked by the caller).
func extractPDFPages(raw []byte) ([]schema.Page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		logger.Error("Failed to open PDF", zap.Error(err), zap.Int("size", len(raw)))
		return nil, ErrUnreadableDocument
	}

	total := reader.NumPage()
	pages := make([]schema.Page, 0, total)

	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, schema.Page{Number: i})
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Log.Warn("Failed to extract text from page",
				zap.Int("page", i), zap.Error(err))
			text = ""
		}
		pages = append(pages, schema.Page{Number: i, Text: text})
	}

	return pages, nil
}
