package parser

import (
	"sort"
	"strings"

	"github.com/SaiNageswarS/report-core/schema"
)

// keywordSet maps one section label to its heading synonyms. The order of
// sectionKeywords is also the tie-break priority when two labels match at the
// same offset, keeping segmentation deterministic.
//
// Table version 1; tests pin its exact behavior.
type keywordSet struct {
	label    schema.SectionLabel
	synonyms []string
}

var sectionKeywords = []keywordSet{
	{schema.FinancialStatements, []string{
		"consolidated financial statements", "standalone financial statements",
		"financial statements", "balance sheet", "profit and loss",
		"cash flow statement", "notes to accounts",
	}},
	{schema.ManagementDiscussion, []string{
		"management discussion and analysis", "management discussion",
		"directors' report", "management commentary", "chairman's statement",
		"ceo message",
	}},
	{schema.RiskFactors, []string{
		"risk factors", "risk management", "risks and concerns",
		"business risks", "operational risks",
	}},
	{schema.ESG, []string{
		"environmental, social and governance", "esg", "sustainability",
		"corporate social responsibility", "csr",
	}},
	{schema.BusinessOverview, []string{
		"business overview", "company overview", "about us",
		"business model", "operational review",
	}},
	{schema.CorporateGovernance, []string{
		"corporate governance", "board of directors", "governance report",
		"board report",
	}},
}

type sectionMarker struct {
	offset   int
	priority int
	label    schema.SectionLabel
}

// Segment splits the document text into labeled, non-overlapping spans. The
// first occurrence of any synonym marks a label's boundary; a section runs
// from its marker to the next marker of strictly greater offset. Text before
// the first marker, or a document with no marker at all, is Unclassified.
// The returned spans are ordered and cover the full text with no gaps.
func Segment(text string) []schema.Section {
	lower := strings.ToLower(text)

	var markers []sectionMarker
	for priority, set := range sectionKeywords {
		best := -1
		for _, syn := range set.synonyms {
			if idx := indexWord(lower, syn); idx >= 0 && (best < 0 || idx < best) {
				best = idx
			}
		}
		if best >= 0 {
			markers = append(markers, sectionMarker{offset: best, priority: priority, label: set.label})
		}
	}

	if len(markers) == 0 {
		return []schema.Section{{Label: schema.Unclassified, Start: 0, End: len(text)}}
	}

	sort.Slice(markers, func(i, j int) bool {
		if markers[i].offset != markers[j].offset {
			return markers[i].offset < markers[j].offset
		}
		return markers[i].priority < markers[j].priority
	})

	// Same-offset ties: only the highest-priority label keeps the marker.
	deduped := markers[:1]
	for _, m := range markers[1:] {
		if m.offset != deduped[len(deduped)-1].offset {
			deduped = append(deduped, m)
		}
	}

	var sections []schema.Section
	if deduped[0].offset > 0 {
		sections = append(sections, schema.Section{Label: schema.Unclassified, Start: 0, End: deduped[0].offset})
	}
	for i, m := range deduped {
		end := len(text)
		if i+1 < len(deduped) {
			end = deduped[i+1].offset
		}
		sections = append(sections, schema.Section{Label: m.label, Start: m.offset, End: end})
	}
	return sections
}

// indexWord is a case-insensitive whole-word search; "esg" must not match
// inside "presgue".
func indexWord(lower, keyword string) int {
	from := 0
	for {
		idx := strings.Index(lower[from:], keyword)
		if idx < 0 {
			return -1
		}
		idx += from
		if wordBoundary(lower, idx, idx+len(keyword)) {
			return idx
		}
		from = idx + 1
	}
}

func wordBoundary(s string, start, end int) bool {
	if start > 0 && isWordChar(s[start-1]) {
		return false
	}
	if end < len(s) && isWordChar(s[end]) {
		return false
	}
	return true
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
