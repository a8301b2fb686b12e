package retrieval

import (
	"strings"
	"testing"

	"github.com/SaiNageswarS/report-core/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCounter treats every whitespace-separated word as one token, which keeps
// the budget arithmetic in tests exact.
type fakeCounter struct{}

func (fakeCounter) Count(text string) int { return len(strings.Fields(text)) }

func (fakeCounter) Truncate(text string, maxTokens int) string {
	words := strings.Fields(text)
	if len(words) <= maxTokens {
		return text
	}
	return strings.Join(words[:maxTokens], " ")
}

func mkChunk(index int, label schema.SectionLabel, text string) schema.Chunk {
	return schema.Chunk{
		Index:      index,
		Section:    label,
		Text:       text,
		TokenCount: fakeCounter{}.Count(text),
	}
}

func TestBuildInvalidBudget(t *testing.T) {
	b := NewBuilder(fakeCounter{})

	_, err := b.Build([]schema.Chunk{mkChunk(0, schema.RiskFactors, "text")}, "query", 0)
	assert.ErrorIs(t, err, ErrInvalidBudget)

	_, err = b.Build(nil, "query", -5)
	assert.ErrorIs(t, err, ErrInvalidBudget)
}

func TestBuildEmptyChunks(t *testing.T) {
	b := NewBuilder(fakeCounter{})

	ctx, err := b.Build(nil, "anything", 100)
	require.NoError(t, err)

	assert.Empty(t, ctx.Text)
	assert.Empty(t, ctx.ChunkIndices)
	assert.Zero(t, ctx.TokenCount)
	assert.False(t, ctx.Truncated)
}

func TestBuildIntentBoostPrefersMatchingSection(t *testing.T) {
	b := NewBuilder(fakeCounter{})
	chunks := []schema.Chunk{
		mkChunk(0, schema.FinancialStatements, "revenue grew strongly this year"),
		mkChunk(1, schema.RiskFactors, "supply disruption risks persist across markets"),
		mkChunk(2, schema.BusinessOverview, "operations expanded into two new states"),
	}

	ctx, err := b.Build(chunks, "What are the main risks?", 100)
	require.NoError(t, err)

	// Only the risk chunk clears the relevance floor: term frequency plus the
	// section boost for the "risks" intent keyword.
	assert.Equal(t, []int{1}, ctx.ChunkIndices)
	assert.Equal(t, chunks[1].Text, ctx.Text)
	assert.False(t, ctx.Truncated)
}

func TestBuildStopsAtBudget(t *testing.T) {
	b := NewBuilder(fakeCounter{})
	chunks := []schema.Chunk{
		mkChunk(0, schema.RiskFactors, "risks risks risks risks risks"),
		mkChunk(1, schema.RiskFactors, "risks risks risks risks risks"),
		mkChunk(2, schema.RiskFactors, "risks risks risks risks risks"),
	}

	ctx, err := b.Build(chunks, "risks", 12)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, ctx.ChunkIndices)
	assert.Equal(t, 10, ctx.TokenCount)
	assert.LessOrEqual(t, ctx.TokenCount, 12)
	assert.True(t, ctx.Truncated)
	assert.Contains(t, ctx.Text, "\n\n")
}

func TestBuildEqualScoresKeepDocumentOrder(t *testing.T) {
	b := NewBuilder(fakeCounter{})
	chunks := []schema.Chunk{
		mkChunk(0, schema.Unclassified, "cash position held"),
		mkChunk(1, schema.Unclassified, "cash reserves held"),
	}

	ctx, err := b.Build(chunks, "cash", 3)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, ctx.ChunkIndices)
	assert.True(t, ctx.Truncated)
}

func TestBuildAssemblesInDocumentOrder(t *testing.T) {
	b := NewBuilder(fakeCounter{})
	chunks := []schema.Chunk{
		mkChunk(0, schema.FinancialStatements, "revenue steady"),
		mkChunk(1, schema.BusinessOverview, "revenue revenue revenue revenue"),
	}

	// Chunk 1 outranks chunk 0 but must still come second in the text.
	ctx, err := b.Build(chunks, "revenue", 100)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, ctx.ChunkIndices)
	assert.Equal(t, "revenue steady\n\nrevenue revenue revenue revenue", ctx.Text)
}

func TestBuildFallbackWhenNothingRelevant(t *testing.T) {
	b := NewBuilder(fakeCounter{})
	chunks := []schema.Chunk{
		mkChunk(0, schema.BusinessOverview, "segment details for the period"),
		mkChunk(1, schema.FinancialStatements, "statement of assets and liabilities"),
		mkChunk(2, schema.RiskFactors, "various factors were noted"),
	}

	ctx, err := b.Build(chunks, "completely unrelated topic", 100)
	require.NoError(t, err)

	// Best chunk of every section, re-sorted into document order.
	assert.Equal(t, []int{0, 1, 2}, ctx.ChunkIndices)
	assert.NotEmpty(t, ctx.Text)
}

func TestBuildFallbackClipsOversizedChunk(t *testing.T) {
	b := NewBuilder(fakeCounter{})
	chunks := []schema.Chunk{
		mkChunk(0, schema.FinancialStatements, "one two three four five six seven eight nine ten"),
	}

	ctx, err := b.Build(chunks, "unrelated", 4)
	require.NoError(t, err)

	require.Equal(t, []int{0}, ctx.ChunkIndices)
	assert.Equal(t, "one two three four", ctx.Text)
	assert.Equal(t, 4, ctx.TokenCount)
}

func TestBuildDeterministic(t *testing.T) {
	b := NewBuilder(fakeCounter{})
	chunks := []schema.Chunk{
		mkChunk(0, schema.RiskFactors, "risks here"),
		mkChunk(1, schema.ESG, "sustainability report"),
		mkChunk(2, schema.RiskFactors, "more risks noted"),
	}

	first, err1 := b.Build(chunks, "risks and sustainability", 100)
	second, err2 := b.Build(chunks, "risks and sustainability", 100)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}
