package config

import (
	"testing"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"CHUNK_SIZE", "OVERLAP_RATIO", "RAG_TOP_K", "EMBED_BATCH_SIZE", "LLMOD_BASE_URL"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	if cfg.ChunkSize != 1024 {
		t.Errorf("ChunkSize = %d, want 1024", cfg.ChunkSize)
	}
	if cfg.OverlapRatio != 0.2 {
		t.Errorf("OverlapRatio = %g, want 0.2", cfg.OverlapRatio)
	}
	if cfg.TopK != 15 {
		t.Errorf("TopK = %d, want 15", cfg.TopK)
	}
	if cfg.EmbedBatchSize != 16 {
		t.Errorf("EmbedBatchSize = %d, want 16", cfg.EmbedBatchSize)
	}
	if cfg.LLModBaseURL != "https://api.llmod.ai" {
		t.Errorf("LLModBaseURL = %q", cfg.LLModBaseURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "512")
	t.Setenv("OVERLAP_RATIO", "0.3")
	t.Setenv("RAG_TOP_K", "5")
	cfg := Load()

	if cfg.ChunkSize != 512 || cfg.OverlapRatio != 0.3 || cfg.TopK != 5 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadIgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("CHUNK_SIZE", "not-a-number")
	t.Setenv("OVERLAP_RATIO", "also-not")
	cfg := Load()
	if cfg.ChunkSize != 1024 || cfg.OverlapRatio != 0.2 {
		t.Fatalf("expected fallbacks, got %+v", cfg)
	}
}

func TestValidateRequiresCredentials(t *testing.T) {
	t.Setenv("LLMOD_API_KEY", "")
	t.Setenv("PINECONE_API_KEY", "")
	t.Setenv("PINECONE_INDEX_HOST", "")
	err := Load().Validate()
	if !domain.IsKind(err, domain.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}

	t.Setenv("LLMOD_API_KEY", "k1")
	t.Setenv("PINECONE_API_KEY", "k2")
	t.Setenv("PINECONE_INDEX_HOST", "example-index.svc.pinecone.io")
	if err := Load().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}
