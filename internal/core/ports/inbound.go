package ports

import (
	"context"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
)

// QuestionAnswerer is the inbound contract for grounded question answering.
type QuestionAnswerer interface {
	Answer(ctx context.Context, question string, topK int) (*domain.Answer, error)
}

// QuestionClassifier maps a raw question to an answer-shaping category.
type QuestionClassifier interface {
	Classify(ctx context.Context, question string) (domain.Category, error)
}

// CorpusIndexer is the inbound contract for the offline indexing run.
type CorpusIndexer interface {
	BuildIndex(ctx context.Context) (domain.IndexSummary, error)
}
