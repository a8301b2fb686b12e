package parser

import (
	"strings"
	"testing"

	"github.com/SaiNageswarS/report-core/schema"
	"github.com/stretchr/testify/assert"
)

func TestSegmentCoversFullText(t *testing.T) {
	text := "Letter to shareholders and other front matter. " +
		"Business Overview: we operate across three markets. " +
		"Risk Factors: currency exposure and supply concentration. " +
		"Financial Statements follow with the balance sheet."

	sections := Segment(text)

	assert.Equal(t, 0, sections[0].Start)
	assert.Equal(t, len(text), sections[len(sections)-1].End)
	for i := 1; i < len(sections); i++ {
		assert.Equal(t, sections[i-1].End, sections[i].Start, "sections must be contiguous")
	}

	// Front matter before the first marker is unclassified.
	assert.Equal(t, schema.Unclassified, sections[0].Label)

	labels := make([]schema.SectionLabel, 0, len(sections))
	for _, s := range sections {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []schema.SectionLabel{
		schema.Unclassified,
		schema.BusinessOverview,
		schema.RiskFactors,
		schema.FinancialStatements,
	}, labels)
}

func TestSegmentNoKeywords(t *testing.T) {
	text := "Nothing in here resembles a report heading at all."

	sections := Segment(text)

	assert.Len(t, sections, 1)
	assert.Equal(t, schema.Section{Label: schema.Unclassified, Start: 0, End: len(text)}, sections[0])
}

func TestSegmentMarkerAtStart(t *testing.T) {
	text := "Risk Factors: everything is risky."

	sections := Segment(text)

	assert.Len(t, sections, 1)
	assert.Equal(t, schema.RiskFactors, sections[0].Label)
	assert.Equal(t, 0, sections[0].Start)
	assert.Equal(t, len(text), sections[0].End)
}

func TestSegmentFirstOccurrenceWins(t *testing.T) {
	// Only the first occurrence of a label's synonyms marks its section.
	text := "Risk Management overview. More prose. Risk Factors repeated later. " +
		"Corporate Governance closes the report."

	sections := Segment(text)

	riskCount := 0
	for _, s := range sections {
		if s.Label == schema.RiskFactors {
			riskCount++
			assert.Equal(t, 0, s.Start)
		}
	}
	assert.Equal(t, 1, riskCount)
}

func TestSegmentWholeWordMatching(t *testing.T) {
	// "esg" must not match inside an unrelated word.
	text := strings.Repeat("presgue lorem ipsum ", 5)

	sections := Segment(text)

	assert.Len(t, sections, 1)
	assert.Equal(t, schema.Unclassified, sections[0].Label)
}

func TestSegmentDeterministic(t *testing.T) {
	text := "Business Overview first. Management Discussion and Analysis second. " +
		"Sustainability third. Board of Directors fourth."

	first := Segment(text)
	second := Segment(text)

	assert.Equal(t, first, second)
}
