package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
)

type Config struct {
	APIPort  string
	LogLevel string

	LLModAPIKey     string
	LLModBaseURL    string
	LLModChatModel  string
	LLModEmbedModel string

	PineconeAPIKey    string
	PineconeIndexHost string
	PineconeNamespace string

	DatasetPath  string
	DatasetLimit int

	ChunkSize       int
	OverlapRatio    float64
	TopK            int
	EmbedBatchSize  int
	EmbedRatePerSec float64

	IndexerMetricsPort string
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		LLModAPIKey:     mustEnv("LLMOD_API_KEY", ""),
		LLModBaseURL:    mustEnv("LLMOD_BASE_URL", "https://api.llmod.ai"),
		LLModChatModel:  mustEnv("LLMOD_CHAT_MODEL", "RPRTHPB-gpt-5-mini"),
		LLModEmbedModel: mustEnv("LLMOD_EMBED_MODEL", "RPRTHPB-text-embedding-3-small"),

		PineconeAPIKey:    mustEnv("PINECONE_API_KEY", ""),
		PineconeIndexHost: mustEnv("PINECONE_INDEX_HOST", ""),
		PineconeNamespace: mustEnv("PINECONE_NAMESPACE", ""),

		DatasetPath:  mustEnv("DATASET_PATH", "./data/ted_talks_en.csv"),
		DatasetLimit: mustEnvInt("DATASET_LIMIT", 0),

		ChunkSize:       mustEnvInt("CHUNK_SIZE", 1024),
		OverlapRatio:    mustEnvFloat("OVERLAP_RATIO", 0.2),
		TopK:            mustEnvInt("RAG_TOP_K", 15),
		EmbedBatchSize:  mustEnvInt("EMBED_BATCH_SIZE", 16),
		EmbedRatePerSec: mustEnvFloat("EMBED_RATE_PER_SEC", 0),

		IndexerMetricsPort: mustEnv("INDEXER_METRICS_PORT", "9090"),
	}
}

// Validate catches missing credentials at startup so the first remote
// call is not the place a misconfiguration surfaces.
func (c Config) Validate() error {
	var missing []string
	if c.LLModAPIKey == "" {
		missing = append(missing, "LLMOD_API_KEY")
	}
	if c.PineconeAPIKey == "" {
		missing = append(missing, "PINECONE_API_KEY")
	}
	if c.PineconeIndexHost == "" {
		missing = append(missing, "PINECONE_INDEX_HOST")
	}
	if len(missing) > 0 {
		return domain.WrapError(
			domain.ErrConfiguration,
			"validate config",
			fmt.Errorf("missing required environment: %s", strings.Join(missing, ", ")),
		)
	}
	return nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
