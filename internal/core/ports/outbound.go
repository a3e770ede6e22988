package ports

import (
	"context"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
)

// Embedder builds vectors for chunk batches and query text.
// Embed returns exactly one vector per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// ChatModel runs one chat completion over a system/user prompt pair.
type ChatModel interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// VectorIndex stores chunk vectors and serves similarity queries.
type VectorIndex interface {
	// Upsert writes entries; re-upserting an id overwrites it.
	Upsert(ctx context.Context, entries []domain.IndexEntry) error
	// Query returns at most topK nearest entries, best first, with metadata.
	Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievedChunk, error)
	// Fetch returns metadata for the ids that exist in the index.
	Fetch(ctx context.Context, ids []string) (map[string]domain.ChunkMetadata, error)
	// DeleteAll clears one namespace. Maintenance tooling only.
	DeleteAll(ctx context.Context, namespace string) error
}

// TalkSource loads the talk corpus from the source dataset.
type TalkSource interface {
	Load(ctx context.Context) ([]domain.Talk, error)
}

// Chunker splits transcript text into embeddable windows.
type Chunker interface {
	Split(text string) []string
}
