package appconfig

import (
	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	OllamaModel        string `env:"OLLAMA-MODEL" ini:"ollama_model"`
	Company            string `env:"COMPANY" ini:"company"`
	CacheStorePath     string `env:"CACHE-STORE-PATH" ini:"cache_store_path"`
	MaxChunkTokens     int    `env:"MAX-CHUNK-TOKENS" ini:"max_chunk_tokens"`
	OverlapTokens      int    `env:"OVERLAP-TOKENS" ini:"overlap_tokens"`
	ContextTokenBudget int    `env:"CONTEXT-TOKEN-BUDGET" ini:"context_token_budget"`
	HistoryLimit       int    `env:"HISTORY-LIMIT" ini:"history_limit"`
	GenerateTimeoutSec int    `env:"GENERATE-TIMEOUT-SEC" ini:"generate_timeout_sec"`
}
