package processor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/report-core/cache"
	"github.com/SaiNageswarS/report-core/chunker"
	"github.com/SaiNageswarS/report-core/llm"
	"github.com/SaiNageswarS/report-core/metrics"
	"github.com/SaiNageswarS/report-core/parser"
	"github.com/SaiNageswarS/report-core/prompts"
	"github.com/SaiNageswarS/report-core/retrieval"
	"github.com/SaiNageswarS/report-core/schema"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultContextBudget   = 4000
	DefaultHistoryLimit    = 50
	DefaultGenerateTimeout = 90 * time.Second
)

var (
	ErrEmptyQuery         = errors.New("query must not be empty")
	ErrUnknownFingerprint = errors.New("no processed document for fingerprint")
)

type Options struct {
	Company         string // used in the analyst prompt; optional
	MaxChunkTokens  int
	OverlapTokens   int
	HistoryLimit    int
	GenerateTimeout time.Duration
	CacheMaxEntries int
	CacheMaxBytes   int
	Store           *cache.Store // optional warm-start persistence
}

func (o *Options) setDefaults() {
	if o.MaxChunkTokens <= 0 {
		o.MaxChunkTokens = chunker.DefaultMaxTokens
	}
	if o.OverlapTokens <= 0 {
		o.OverlapTokens = chunker.DefaultOverlap
	}
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = DefaultHistoryLimit
	}
	if o.GenerateTimeout <= 0 {
		o.GenerateTimeout = DefaultGenerateTimeout
	}
}

// Processor composes the document pipeline: parse, segment, extract, chunk
// behind the fingerprint cache, then per-query context building and the
// external generation call.
type Processor struct {
	opts      Options
	parser    *parser.Parser
	chunker   *chunker.Chunker
	builder   *retrieval.Builder
	cache     *cache.Cache
	generator llm.Generator
	history   *History
}

func New(generator llm.Generator, opts Options) (*Processor, error) {
	opts.setDefaults()

	ck, err := chunker.New()
	if err != nil {
		return nil, err
	}

	p := &Processor{
		opts:      opts,
		parser:    parser.New(),
		chunker:   ck,
		builder:   retrieval.NewBuilder(ck),
		cache:     cache.New(opts.CacheMaxEntries, opts.CacheMaxBytes),
		generator: generator,
		history:   NewHistory(opts.HistoryLimit),
	}

	if opts.Store != nil {
		loaded, err := opts.Store.Warm(context.Background(), p.cache)
		if err != nil {
			logger.Log.Warn("Cache warm-start failed", zap.Error(err))
		} else if loaded > 0 {
			logger.Info("Warmed processing cache", zap.Int("documents", loaded))
		}
	}

	return p, nil
}

// Process parses, segments, extracts, and chunks the document, memoized by
// content fingerprint. Concurrent calls for the same bytes share one
// computation.
func (p *Processor) Process(ctx context.Context, raw []byte) (*schema.ProcessedDocument, error) {
	fingerprint := schema.Fingerprint(raw)
	return p.cache.GetOrCompute(ctx, fingerprint, func(ctx context.Context) (*schema.ProcessedDocument, error) {
		return p.compute(ctx, raw)
	})
}

// ProcessForce bypasses and atomically replaces any cached entry.
func (p *Processor) ProcessForce(ctx context.Context, raw []byte) (*schema.ProcessedDocument, error) {
	fingerprint := schema.Fingerprint(raw)
	return p.cache.Replace(ctx, fingerprint, func(ctx context.Context) (*schema.ProcessedDocument, error) {
		return p.compute(ctx, raw)
	})
}

func (p *Processor) compute(ctx context.Context, raw []byte) (*schema.ProcessedDocument, error) {
	doc, err := p.parser.Parse(raw)
	if err != nil {
		return nil, err
	}

	sections := parser.Segment(doc.Text)

	chunks, err := p.chunker.Chunk(doc.Text, sections, p.opts.MaxChunkTokens, p.opts.OverlapTokens)
	if err != nil {
		return nil, err
	}

	processed := &schema.ProcessedDocument{
		Doc:         *doc,
		Sections:    sections,
		Chunks:      chunks,
		Metrics:     metrics.Extract(doc.Text),
		ProcessedAt: time.Now().UTC(),
	}

	if p.opts.Store != nil {
		if err := p.opts.Store.Put(ctx, processed); err != nil {
			logger.Log.Warn("Failed to persist processed document",
				zap.String("fingerprint", doc.Fingerprint), zap.Error(err))
		}
	}

	logger.Info("Processed document",
		zap.String("fingerprint", doc.Fingerprint),
		zap.Int("sections", len(sections)),
		zap.Int("chunks", len(chunks)),
		zap.Int("metrics", len(processed.Metrics)))
	return processed, nil
}

// AnswerQuery processes the document (cached) and answers the query against
// it. Parsing and chunk-config errors propagate unmodified; generation
// failures surface as a degraded record, never an error.
func (p *Processor) AnswerQuery(ctx context.Context, raw []byte, query string, tokenBudget int) (*schema.QueryRecord, error) {
	if err := validateQuery(query, tokenBudget); err != nil {
		return nil, err
	}

	processed, err := p.Process(ctx, raw)
	if err != nil {
		return nil, err
	}
	return p.answer(ctx, processed, query, tokenBudget)
}

// AnswerQueryByFingerprint answers against an already-processed document.
func (p *Processor) AnswerQueryByFingerprint(ctx context.Context, fingerprint, query string, tokenBudget int) (*schema.QueryRecord, error) {
	if err := validateQuery(query, tokenBudget); err != nil {
		return nil, err
	}

	processed, ok := p.cache.Get(fingerprint)
	if !ok {
		return nil, ErrUnknownFingerprint
	}
	return p.answer(ctx, processed, query, tokenBudget)
}

func (p *Processor) answer(ctx context.Context, processed *schema.ProcessedDocument, query string, tokenBudget int) (*schema.QueryRecord, error) {
	buildResult, err := p.builder.Build(processed.Chunks, query, tokenBudget)
	if err != nil {
		return nil, err
	}

	rec := schema.QueryRecord{
		ID:           uuid.NewString(),
		Fingerprint:  processed.Doc.Fingerprint,
		Query:        query,
		ChunkIndices: buildResult.ChunkIndices,
		Timestamp:    time.Now().UTC(),
	}

	answer, err := p.generate(ctx, buildResult.Text, processed.Metrics, query)
	if err != nil {
		logger.Error("Generation failed, recording degraded result",
			zap.String("fingerprint", rec.Fingerprint), zap.Error(err))
		rec.Degraded = true
		rec.ErrorReason = err.Error()
	} else {
		rec.Answer = answer
	}

	p.history.Append(rec)
	return &rec, nil
}

func (p *Processor) generate(ctx context.Context, contextText string, extracted []schema.FinancialMetric, query string) (string, error) {
	system, user, err := prompts.RenderAnalystPrompt(prompts.AnalystPromptData{
		Company:          p.opts.Company,
		FinancialSummary: metrics.FormatSummary(extracted),
		Context:          contextText,
		Query:            query,
	})
	if err != nil {
		return "", err
	}

	genCtx, cancel := context.WithTimeout(ctx, p.opts.GenerateTimeout)
	defer cancel()

	var out strings.Builder
	err = p.generator.GenerateInference(
		genCtx,
		[]llm.Message{{Role: "user", Content: user}},
		func(chunk string) error {
			out.WriteString(chunk)
			return nil
		},
		llm.WithSystemPrompt(system),
		llm.WithTemperature(0.7),
	)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// History exposes the bounded query history.
func (p *Processor) History() *History {
	return p.history
}

// Cache exposes the processing cache, mainly for warm-start and tests.
func (p *Processor) Cache() *cache.Cache {
	return p.cache
}

func validateQuery(query string, tokenBudget int) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	if tokenBudget <= 0 {
		return retrieval.ErrInvalidBudget
	}
	return nil
}
