package retrieval

import (
	"errors"
	"sort"
	"strings"

	"github.com/SaiNageswarS/go-collection-boot/linq"
	"github.com/SaiNageswarS/report-core/schema"
)

// Scoring parameters. Pinned by tests; tune here, not inline.
const (
	// SectionBoost is added once per query term whose intent keyword maps to
	// the chunk's section label.
	SectionBoost = 2.5

	// MinRelevance is the floor below which a chunk is not considered an
	// answer candidate. When nothing reaches it the per-section fallback
	// keeps the context non-empty.
	MinRelevance = 1.0

	chunkSeparator = "\n\n"
)

var ErrInvalidBudget = errors.New("token budget must be positive")

// TokenCounter is the chunker's token accounting, narrowed to what selection
// needs.
type TokenCounter interface {
	Count(text string) int
	Truncate(text string, maxTokens int) string
}

type Builder struct {
	counter   TokenCounter
	sepTokens int
}

func NewBuilder(counter TokenCounter) *Builder {
	return &Builder{
		counter:   counter,
		sepTokens: counter.Count(chunkSeparator),
	}
}

type scoredChunk struct {
	chunk schema.Chunk
	score float64
}

// Build scores chunks against the query, selects the best subset under the
// token budget, and assembles them in document order. For a non-empty chunk
// list the returned context text is never empty.
func (b *Builder) Build(chunks []schema.Chunk, query string, tokenBudget int) (*schema.Context, error) {
	if tokenBudget <= 0 {
		return nil, ErrInvalidBudget
	}
	if len(chunks) == 0 {
		return &schema.Context{}, nil
	}

	terms := queryTerms(query)
	ranked := rank(chunks, terms)

	selected, used, truncated := b.selectRanked(ranked, tokenBudget)
	if len(selected) == 0 {
		selected, used = b.selectFallback(ranked, tokenBudget)
	}

	// Assemble in document order regardless of ranking order so the context
	// reads front to back.
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].chunk.Index < selected[j].chunk.Index
	})

	texts := linq.Map(selected, func(sc scoredChunk) string { return sc.chunk.Text })
	indices := linq.Map(selected, func(sc scoredChunk) int { return sc.chunk.Index })

	return &schema.Context{
		Text:         strings.Join(texts, chunkSeparator),
		ChunkIndices: indices,
		TokenCount:   used,
		Truncated:    truncated,
	}, nil
}

// selectRanked walks chunks in rank order and stops at the first chunk that
// would exceed the budget. Only chunks at or above the relevance floor are
// candidates; Truncated reports whether any candidate was left out.
func (b *Builder) selectRanked(ranked []scoredChunk, tokenBudget int) (selected []scoredChunk, used int, truncated bool) {
	for _, sc := range ranked {
		if sc.score < MinRelevance {
			break // ranked order: everything after is below the floor too
		}

		cost := sc.chunk.TokenCount
		if len(selected) > 0 {
			cost += b.sepTokens
		}
		if used+cost > tokenBudget {
			truncated = true
			break
		}
		selected = append(selected, sc)
		used += cost
	}
	return selected, used, truncated
}

// selectFallback guarantees a non-empty context: the best chunk of each
// section, in label priority order, until the budget runs out. If even the
// first one is too large it is clipped to the budget.
func (b *Builder) selectFallback(ranked []scoredChunk, tokenBudget int) (selected []scoredChunk, used int) {
	bestPerSection := map[schema.SectionLabel]scoredChunk{}
	for _, sc := range ranked { // ranked order: first hit per section is its best
		if _, ok := bestPerSection[sc.chunk.Section]; !ok {
			bestPerSection[sc.chunk.Section] = sc
		}
	}

	for _, label := range sectionPriority {
		sc, ok := bestPerSection[label]
		if !ok {
			continue
		}

		cost := sc.chunk.TokenCount
		if len(selected) > 0 {
			cost += b.sepTokens
		}
		if used+cost > tokenBudget {
			if len(selected) > 0 {
				break
			}
			// Nothing fits whole; clip so the context is still non-empty.
			sc.chunk.Text = b.counter.Truncate(sc.chunk.Text, tokenBudget)
			sc.chunk.TokenCount = tokenBudget
			cost = tokenBudget
		}
		selected = append(selected, sc)
		used += cost
	}
	return selected, used
}

var sectionPriority = []schema.SectionLabel{
	schema.FinancialStatements,
	schema.ManagementDiscussion,
	schema.RiskFactors,
	schema.ESG,
	schema.BusinessOverview,
	schema.CorporateGovernance,
	schema.Unclassified,
}

// rank orders chunks by lexical score descending, ties broken by ascending
// index so equal scores keep document order. Deterministic for identical
// inputs.
func rank(chunks []schema.Chunk, terms []string) []scoredChunk {
	ranked := make([]scoredChunk, 0, len(chunks))
	for _, ch := range chunks {
		ranked = append(ranked, scoredChunk{chunk: ch, score: score(ch, terms)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].chunk.Index < ranked[j].chunk.Index
	})
	return ranked
}

// score is term frequency over the chunk text plus a fixed boost when a query
// term signals intent for the chunk's section.
func score(ch schema.Chunk, terms []string) float64 {
	freq := wordFrequency(ch.Text)

	var s float64
	for _, term := range terms {
		s += float64(freq[term])
		if intentKeywords[term] == ch.Section {
			s += SectionBoost
		}
	}
	return s
}

func wordFrequency(text string) map[string]int {
	freq := map[string]int{}
	for _, w := range splitWords(strings.ToLower(text)) {
		freq[w]++
	}
	return freq
}

func queryTerms(query string) []string {
	words := splitWords(strings.ToLower(query))
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		terms = append(terms, w)
	}
	return terms
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}
