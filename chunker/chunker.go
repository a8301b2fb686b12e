package chunker

import (
	"errors"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/report-core/schema"
	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

const (
	DefaultMaxTokens = 400
	DefaultOverlap   = 50

	// How many tokens before the raw cut point to search for a sentence or
	// paragraph ending.
	boundaryLookback = 16
)

// ErrInvalidChunkConfig flags misconfigured token geometry. It fails fast at
// chunk time; there is no partial output.
var ErrInvalidChunkConfig = errors.New("chunk config: overlap must be non-negative and smaller than max tokens")

type Chunker struct {
	// To load encoder only once across all chunking operations.
	tok *tiktoken.Tiktoken
}

func New() (*Chunker, error) {
	tok, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		logger.Error("Failed to get token encoder", zap.Error(err))
		return nil, err
	}
	return &Chunker{tok: tok}, nil
}

// Count returns the number of model-countable tokens in text.
func (c *Chunker) Count(text string) int {
	return len(c.tok.Encode(text, nil, nil))
}

// Truncate returns the prefix of text holding at most maxTokens tokens.
func (c *Chunker) Truncate(text string, maxTokens int) string {
	tokens := c.tok.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return c.tok.Decode(tokens[:maxTokens])
}

// Chunk splits the document text into token-bounded, overlapping chunks.
// Boundaries are computed per section so no chunk ever spans two sections;
// within a section the cursor advances by maxTokens-overlapTokens per step so
// consecutive chunks share exactly overlapTokens of content. Identical inputs
// always produce an identical chunk list.
func (c *Chunker) Chunk(text string, sections []schema.Section, maxTokens, overlapTokens int) ([]schema.Chunk, error) {
	if maxTokens <= 0 || overlapTokens < 0 || overlapTokens >= maxTokens {
		return nil, ErrInvalidChunkConfig
	}

	var out []schema.Chunk
	for _, sec := range sections {
		out = c.chunkSection(out, text, sec, maxTokens, overlapTokens)
	}
	return out, nil
}

func (c *Chunker) chunkSection(out []schema.Chunk, text string, sec schema.Section, maxTokens, overlap int) []schema.Chunk {
	body := text[sec.Start:sec.End]
	if strings.TrimSpace(body) == "" {
		return out
	}

	tokens := c.tok.Encode(body, nil, nil)

	// Byte-length prefix sums per token, for char offsets into the document.
	offsets := make([]int, len(tokens)+1)
	for i, t := range tokens {
		offsets[i+1] = offsets[i] + len(c.tok.Decode([]int{t}))
	}

	start := 0
	for start < len(tokens) {
		end := start + maxTokens
		if end >= len(tokens) {
			end = len(tokens)
		} else {
			end = c.snapToBoundary(tokens, start, end, overlap)
		}

		sub := tokens[start:end]
		out = append(out, schema.Chunk{
			Index:      len(out),
			Section:    sec.Label,
			Text:       c.tok.Decode(sub),
			TokenCount: len(sub),
			Start:      sec.Start + offsets[start],
			End:        sec.Start + offsets[end],
		})

		if end == len(tokens) {
			break
		}
		start = end - overlap
	}
	return out
}

// snapToBoundary moves the cut back to just after the nearest sentence or
// paragraph ending within boundaryLookback tokens, without giving up the
// minimum forward progress of overlap+1 tokens.
func (c *Chunker) snapToBoundary(tokens []int, start, end, overlap int) int {
	floor := end - boundaryLookback
	if minEnd := start + overlap + 1; floor < minEnd {
		floor = minEnd
	}
	for i := end - 1; i >= floor; i-- {
		if isBoundaryToken(c.tok.Decode(tokens[i : i+1])) {
			return i + 1
		}
	}
	return end
}

func isBoundaryToken(s string) bool {
	t := strings.TrimRight(s, " ")
	return strings.HasSuffix(t, ".") ||
		strings.HasSuffix(t, "!") ||
		strings.HasSuffix(t, "?") ||
		strings.HasSuffix(t, "\n")
}
