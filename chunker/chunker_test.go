package chunker

import (
	"strings"
	"testing"

	"github.com/SaiNageswarS/report-core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenText builds a string of exactly n encoder tokens. " risk" is a single
// cl100k token and carries no sentence boundary, so chunk geometry is exact.
func tokenText(t *testing.T, c *Chunker, n int) string {
	t.Helper()
	text := strings.Repeat(" risk", n)
	require.Equal(t, n, c.Count(text), "token geometry precondition")
	return text
}

func newChunker(t *testing.T) *Chunker {
	t.Helper()
	c, err := New()
	require.NoError(t, err)
	return c
}

func TestChunkInvalidConfig(t *testing.T) {
	c := newChunker(t)

	_, err := c.Chunk("text", nil, 400, 400)
	assert.ErrorIs(t, err, ErrInvalidChunkConfig)

	_, err = c.Chunk("text", nil, 400, 500)
	assert.ErrorIs(t, err, ErrInvalidChunkConfig)

	_, err = c.Chunk("text", nil, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidChunkConfig)

	_, err = c.Chunk("text", nil, 400, -1)
	assert.ErrorIs(t, err, ErrInvalidChunkConfig)
}

func TestChunkSectionGeometry(t *testing.T) {
	c := newChunker(t)

	overview := tokenText(t, c, 500)
	risks := tokenText(t, c, 1200)
	esg := tokenText(t, c, 300)
	text := overview + risks + esg

	sections := []schema.Section{
		{Label: schema.BusinessOverview, Start: 0, End: len(overview)},
		{Label: schema.RiskFactors, Start: len(overview), End: len(overview) + len(risks)},
		{Label: schema.ESG, Start: len(overview) + len(risks), End: len(text)},
	}

	chunks, err := c.Chunk(text, sections, 400, 50)
	require.NoError(t, err)

	var overviewChunks, riskChunks, esgChunks []schema.Chunk
	for _, ch := range chunks {
		switch ch.Section {
		case schema.BusinessOverview:
			overviewChunks = append(overviewChunks, ch)
		case schema.RiskFactors:
			riskChunks = append(riskChunks, ch)
		case schema.ESG:
			esgChunks = append(esgChunks, ch)
		}
	}

	// ceil((1200-50)/(400-50)) = 4
	assert.Len(t, riskChunks, 4)
	// ceil((500-50)/350) = 2, and a section under maxTokens yields one chunk.
	assert.Len(t, overviewChunks, 2)
	assert.Len(t, esgChunks, 1)

	for i := 1; i < len(riskChunks); i++ {
		assert.Greater(t, riskChunks[i].Start, riskChunks[i-1].Start, "offsets strictly increase")
	}
	for i, ch := range chunks {
		assert.Equal(t, i, ch.Index)
		assert.LessOrEqual(t, ch.TokenCount, 400)
		assert.Equal(t, ch.Text, text[ch.Start:ch.End], "offsets must address the chunk text")
	}
}

func TestChunkOverlapInvariant(t *testing.T) {
	c := newChunker(t)

	const overlap = 50
	text := tokenText(t, c, 1200)
	sections := []schema.Section{{Label: schema.RiskFactors, Start: 0, End: len(text)}}

	chunks, err := c.Chunk(text, sections, 400, overlap)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	// " risk" is 5 bytes per token, so consecutive chunks share exactly
	// overlap*5 bytes of trailing/leading content.
	const overlapBytes = overlap * 5
	for i := 1; i < len(chunks); i++ {
		prev, next := chunks[i-1], chunks[i]
		assert.Equal(t, prev.End-overlapBytes, next.Start)
		assert.Equal(t, prev.Text[len(prev.Text)-overlapBytes:], next.Text[:overlapBytes])
	}
}

func TestChunkShortSectionSingleChunk(t *testing.T) {
	c := newChunker(t)

	text := tokenText(t, c, 120)
	sections := []schema.Section{{Label: schema.ESG, Start: 0, End: len(text)}}

	chunks, err := c.Chunk(text, sections, 400, 50)
	require.NoError(t, err)

	assert.Len(t, chunks, 1)
	assert.Equal(t, 120, chunks[0].TokenCount)
	assert.Equal(t, text, chunks[0].Text)
}

func TestChunkDeterminism(t *testing.T) {
	c := newChunker(t)

	text := "Revenue grew this year. Costs also grew. " + strings.Repeat("The business held steady across segments. ", 40)
	sections := []schema.Section{{Label: schema.Unclassified, Start: 0, End: len(text)}}

	first, err1 := c.Chunk(text, sections, 60, 10)
	second, err2 := c.Chunk(text, sections, 60, 10)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestChunkSnapsToSentenceBoundary(t *testing.T) {
	c := newChunker(t)

	text := strings.Repeat("The quarter closed well. ", 30)
	sections := []schema.Section{{Label: schema.Unclassified, Start: 0, End: len(text)}}

	chunks, err := c.Chunk(text, sections, 20, 5)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for _, ch := range chunks[:len(chunks)-1] {
		assert.True(t, strings.HasSuffix(strings.TrimRight(ch.Text, " "), "."),
			"non-final chunk should end at a sentence boundary, got %q", ch.Text)
	}
}

func TestChunkNeverSpansSections(t *testing.T) {
	c := newChunker(t)

	a := tokenText(t, c, 90)
	b := tokenText(t, c, 90)
	sections := []schema.Section{
		{Label: schema.BusinessOverview, Start: 0, End: len(a)},
		{Label: schema.RiskFactors, Start: len(a), End: len(a) + len(b)},
	}

	chunks, err := c.Chunk(a+b, sections, 400, 50)
	require.NoError(t, err)

	assert.Len(t, chunks, 2)
	assert.Equal(t, schema.BusinessOverview, chunks[0].Section)
	assert.Equal(t, schema.RiskFactors, chunks[1].Section)
	assert.LessOrEqual(t, chunks[0].End, len(a))
	assert.GreaterOrEqual(t, chunks[1].Start, len(a))
}

func TestChunkEmptySectionSkipped(t *testing.T) {
	c := newChunker(t)

	text := "   " + "Risk content lives here."
	sections := []schema.Section{
		{Label: schema.Unclassified, Start: 0, End: 3},
		{Label: schema.RiskFactors, Start: 3, End: len(text)},
	}

	chunks, err := c.Chunk(text, sections, 400, 50)
	require.NoError(t, err)

	assert.Len(t, chunks, 1)
	assert.Equal(t, schema.RiskFactors, chunks[0].Section)
}
