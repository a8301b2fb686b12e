package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/report-core/appconfig"
	"github.com/SaiNageswarS/report-core/cache"
	"github.com/SaiNageswarS/report-core/llm"
	"github.com/SaiNageswarS/report-core/processor"
)

// Usage: report-qa <annual-report.pdf> "<question>"
func main() {
	if len(os.Args) < 3 {
		log.Fatal("usage: report-qa <report file> <question>")
	}

	dotenv.LoadEnv()

	ccfgg := &appconfig.AppConfig{
		OllamaModel:        "gpt-oss:20b",
		ContextTokenBudget: 4000,
	}
	if _, err := os.Stat("config.ini"); err == nil {
		if err := config.LoadConfig("config.ini", ccfgg); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read report: %v", err)
	}

	generator, err := llm.NewOllamaClient(ccfgg.OllamaModel)
	if err != nil {
		log.Fatalf("Failed to create Ollama client: %v", err)
	}

	opts := processor.Options{
		Company:         ccfgg.Company,
		MaxChunkTokens:  ccfgg.MaxChunkTokens,
		OverlapTokens:   ccfgg.OverlapTokens,
		HistoryLimit:    ccfgg.HistoryLimit,
		GenerateTimeout: time.Duration(ccfgg.GenerateTimeoutSec) * time.Second,
	}
	if ccfgg.CacheStorePath != "" {
		store, err := cache.OpenStore(ccfgg.CacheStorePath)
		if err != nil {
			log.Fatalf("Failed to open cache store: %v", err)
		}
		defer store.Close()
		opts.Store = store
	}

	proc, err := processor.New(generator, opts)
	if err != nil {
		log.Fatalf("Failed to create processor: %v", err)
	}

	ctx := context.Background()

	processed, err := proc.Process(ctx, raw)
	if err != nil {
		log.Fatalf("Failed to process report: %v", err)
	}

	fmt.Printf("Parsed %d pages into %d chunks\n", len(processed.Doc.Pages), len(processed.Chunks))
	fmt.Printf("Sections: %v\n", processor.AvailableSections(processed))
	for _, m := range processed.Metrics {
		fmt.Printf("  %s = %s %s\n", m.Name, m.RawValue, m.Unit)
	}

	record, err := proc.AnswerQuery(ctx, raw, os.Args[2], ccfgg.ContextTokenBudget)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	if record.Degraded {
		fmt.Printf("\nGeneration unavailable: %s\n", record.ErrorReason)
		fmt.Printf("Selected chunks: %v\n", record.ChunkIndices)
		return
	}
	fmt.Printf("\nAnswer:\n%s\n", record.Answer)
}
