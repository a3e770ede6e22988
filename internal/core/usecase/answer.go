package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
	"github.com/nkovalenko/ted-talk-rag/internal/core/ports"
)

const defaultTopK = 15

const contextDelimiter = "\n\n---\n\n"

const groundingSystemPrompt = "You are a TED Talk assistant that answers questions strictly and only based on the TED dataset context provided to you (metadata and transcript passages). " +
	"You must not use any external knowledge, the open internet, or information that is not explicitly contained in the retrieved context. " +
	"If the answer cannot be determined from the provided context, respond: \"I don't know based on the provided TED data.\" " +
	"Always explain your answer using the given context, quoting or paraphrasing the relevant transcript or metadata when helpful.\n"

// AnswerUseCase composes a grounded answer: classify the question,
// retrieve the nearest chunks, build the prompt pair, run one chat
// completion and deduplicate the evidence.
type AnswerUseCase struct {
	classifier ports.QuestionClassifier
	embedder   ports.Embedder
	index      ports.VectorIndex
	chat       ports.ChatModel
	topK       int
}

func NewAnswerUseCase(
	classifier ports.QuestionClassifier,
	embedder ports.Embedder,
	index ports.VectorIndex,
	chat ports.ChatModel,
	topK int,
) *AnswerUseCase {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &AnswerUseCase{
		classifier: classifier,
		embedder:   embedder,
		index:      index,
		chat:       chat,
		topK:       topK,
	}
}

func (uc *AnswerUseCase) Answer(ctx context.Context, question string, topK int) (*domain.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "answer question", fmt.Errorf("empty question"))
	}
	if topK <= 0 {
		topK = uc.topK
	}

	category, err := uc.classifier.Classify(ctx, question)
	if err != nil {
		return nil, err
	}

	queryVector, err := uc.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	results, err := uc.index.Query(ctx, queryVector, topK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	systemPrompt := groundingSystemPrompt + category.Instruction()
	userPrompt := "Context:\n" + buildRawContext(results) + "\n\nQuestion: " + question

	answerText, err := uc.chat.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{
		Text:         answerText,
		Evidence:     dedupeEvidence(results),
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Category:     category,
	}, nil
}

// buildRawContext concatenates the ranked results, title plus transcript
// chunk each, separated by a fixed delimiter line. Empty results produce
// an empty context, not an error.
func buildRawContext(results []domain.RetrievedChunk) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("Title: %s\nTranscript: %s", r.Metadata.Title, r.Metadata.Chunk))
	}
	return strings.Join(parts, contextDelimiter)
}

// dedupeEvidence keeps the first (highest-ranked) chunk per talk,
// preserving rank order.
func dedupeEvidence(results []domain.RetrievedChunk) []domain.Evidence {
	seen := make(map[string]struct{}, len(results))
	out := make([]domain.Evidence, 0, len(results))
	for _, r := range results {
		if _, ok := seen[r.Metadata.TalkID]; ok {
			continue
		}
		seen[r.Metadata.TalkID] = struct{}{}
		out = append(out, domain.Evidence{
			TalkID: r.Metadata.TalkID,
			Title:  r.Metadata.Title,
			Chunk:  r.Metadata.Chunk,
			Score:  r.Score,
		})
	}
	return out
}
