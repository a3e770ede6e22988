package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
	"github.com/nkovalenko/ted-talk-rag/internal/core/ports"
)

const defaultBatchSize = 16

// BuildIndexUseCase populates the vector index from the talk corpus.
// Re-running it is cheap: chunk ids are deterministic, and one Fetch per
// talk tells it which chunks are already indexed, so an interrupted run
// resumes without re-embedding anything.
type BuildIndexUseCase struct {
	source    ports.TalkSource
	chunker   ports.Chunker
	embedder  ports.Embedder
	index     ports.VectorIndex
	batchSize int
	limiter   *rate.Limiter
	logger    *slog.Logger
}

func NewBuildIndexUseCase(
	source ports.TalkSource,
	chunker ports.Chunker,
	embedder ports.Embedder,
	index ports.VectorIndex,
	batchSize int,
	limiter *rate.Limiter,
	logger *slog.Logger,
) *BuildIndexUseCase {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BuildIndexUseCase{
		source:    source,
		chunker:   chunker,
		embedder:  embedder,
		index:     index,
		batchSize: batchSize,
		limiter:   limiter,
		logger:    logger,
	}
}

func (uc *BuildIndexUseCase) BuildIndex(ctx context.Context) (domain.IndexSummary, error) {
	var summary domain.IndexSummary

	talks, err := uc.source.Load(ctx)
	if err != nil {
		return summary, fmt.Errorf("load corpus: %w", err)
	}

	for _, talk := range talks {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		// A missing transcript is a data-quality case, not an error.
		if strings.TrimSpace(talk.Transcript) == "" {
			summary.TalksSkipped++
			uc.logger.Debug("skip_talk_without_transcript", "talk_id", talk.ID)
			continue
		}
		if err := uc.indexTalk(ctx, talk, &summary); err != nil {
			return summary, fmt.Errorf("index talk %s: %w", talk.ID, err)
		}
		summary.TalksIndexed++
	}

	uc.logger.Info("index_build_done",
		"talks_indexed", summary.TalksIndexed,
		"talks_skipped", summary.TalksSkipped,
		"chunks_embedded", summary.ChunksEmbedded,
		"chunks_skipped", summary.ChunksSkipped,
		"embed_batches", summary.EmbedBatches,
	)
	return summary, nil
}

func (uc *BuildIndexUseCase) indexTalk(ctx context.Context, talk domain.Talk, summary *domain.IndexSummary) error {
	chunks := uc.chunker.Split(talk.Transcript)
	if len(chunks) == 0 {
		return nil
	}

	ids := make([]string, len(chunks))
	for i := range chunks {
		ids[i] = domain.ChunkID(talk.ID, i)
	}

	// One existence check per talk, not per chunk, to bound remote calls.
	existing, err := uc.index.Fetch(ctx, ids)
	if err != nil {
		return fmt.Errorf("fetch existing chunk ids: %w", err)
	}

	pending := make([]domain.IndexEntry, 0, uc.batchSize)
	for i, chunk := range chunks {
		if _, ok := existing[ids[i]]; ok {
			summary.ChunksSkipped++
			continue
		}
		pending = append(pending, domain.IndexEntry{
			ID:       ids[i],
			Metadata: domain.NewChunkMetadata(talk, i, chunk),
		})
		if len(pending) == uc.batchSize {
			if err := uc.flush(ctx, pending, summary); err != nil {
				return err
			}
			pending = pending[:0]
		}
	}
	return uc.flush(ctx, pending, summary)
}

// flush embeds one pending batch with a single embedding call and
// upserts the resulting entries together.
func (uc *BuildIndexUseCase) flush(ctx context.Context, pending []domain.IndexEntry, summary *domain.IndexSummary) error {
	if len(pending) == 0 {
		return nil
	}

	if uc.limiter != nil {
		if err := uc.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	texts := make([]string, len(pending))
	for i, entry := range pending {
		texts[i] = entry.Metadata.EmbeddingInput()
	}

	vectors, err := uc.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunk batch: %w", err)
	}
	if len(vectors) != len(pending) {
		return domain.WrapError(
			domain.ErrInvalidInput,
			"embed chunk batch",
			fmt.Errorf("vectors/chunks mismatch: %d/%d", len(vectors), len(pending)),
		)
	}

	entries := make([]domain.IndexEntry, len(pending))
	copy(entries, pending)
	for i := range entries {
		entries[i].Vector = vectors[i]
	}

	if err := uc.index.Upsert(ctx, entries); err != nil {
		return fmt.Errorf("upsert chunk batch: %w", err)
	}

	summary.ChunksEmbedded += len(entries)
	summary.EmbedBatches++
	return nil
}
