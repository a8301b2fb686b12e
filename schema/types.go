package schema

import "time"

// Format identifies the source encoding of a document.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// SectionLabel is the fixed vocabulary used to classify report sections.
type SectionLabel string

const (
	FinancialStatements  SectionLabel = "financial_statements"
	ManagementDiscussion SectionLabel = "management_discussion"
	RiskFactors          SectionLabel = "risk_factors"
	ESG                  SectionLabel = "esg"
	BusinessOverview     SectionLabel = "business_overview"
	CorporateGovernance  SectionLabel = "corporate_governance"
	Unclassified         SectionLabel = "unclassified"
)

// Page is one page of extracted text. Pages that yielded no text are kept
// empty so page numbering stays aligned with the source document.
type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Document is the parsed form of one uploaded report. It is immutable once
// built; reprocessing the same bytes produces an identical value.
type Document struct {
	Fingerprint string `json:"fingerprint"`
	Format      Format `json:"format"`
	Pages       []Page `json:"pages"`
	Text        string `json:"text"`
}

// Section is a labeled, non-overlapping span of Document.Text.
// Sections are ordered by Start and together cover the whole text.
type Section struct {
	Label SectionLabel `json:"label"`
	Start int          `json:"start"`
	End   int          `json:"end"`
}

// FinancialMetric is one occurrence of a recognized financial line item.
// Normalized is nil when the unit suffix could not be resolved; extraction
// degrades to raw values instead of failing.
type FinancialMetric struct {
	Name       string   `json:"name"`
	RawValue   string   `json:"rawValue"`
	Normalized *float64 `json:"normalized,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Offset     int      `json:"offset"`
}

// Chunk is a token-bounded slice of section text. Index is a total order
// matching document position; Start/End are byte offsets into Document.Text.
type Chunk struct {
	Index      int          `json:"index"`
	Section    SectionLabel `json:"section"`
	Text       string       `json:"text"`
	TokenCount int          `json:"tokenCount"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
}

// ProcessedDocument bundles everything derived from one document. It is
// produced once, cached by fingerprint, and shared read-only afterwards.
type ProcessedDocument struct {
	Doc         Document          `json:"doc"`
	Sections    []Section         `json:"sections"`
	Chunks      []Chunk           `json:"chunks"`
	Metrics     []FinancialMetric `json:"metrics"`
	ProcessedAt time.Time         `json:"processedAt"`
}

// Context is the token-budgeted chunk assembly for one query. ChunkIndices
// lists the selected chunks in the document order they were concatenated.
type Context struct {
	Text         string `json:"text"`
	ChunkIndices []int  `json:"chunkIndices"`
	TokenCount   int    `json:"tokenCount"`
	Truncated    bool   `json:"truncated"`
}

// QueryRecord is one question/answer exchange kept in the bounded history.
// Degraded records carry an empty Answer and the failure reason.
type QueryRecord struct {
	ID           string    `json:"id"`
	Fingerprint  string    `json:"fingerprint"`
	Query        string    `json:"query"`
	ChunkIndices []int     `json:"chunkIndices"`
	Answer       string    `json:"answer,omitempty"`
	Degraded     bool      `json:"degraded"`
	ErrorReason  string    `json:"errorReason,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// SizeBytes is a rough in-memory footprint used for cache accounting.
func (p *ProcessedDocument) SizeBytes() int {
	size := len(p.Doc.Text)
	for _, pg := range p.Doc.Pages {
		size += len(pg.Text)
	}
	for _, c := range p.Chunks {
		size += len(c.Text)
	}
	for _, m := range p.Metrics {
		size += len(m.Name) + len(m.RawValue) + len(m.Unit)
	}
	return size
}
