package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
)

type classifierFake struct {
	category domain.Category
	err      error
}

func (f *classifierFake) Classify(context.Context, string) (domain.Category, error) {
	return f.category, f.err
}

type answerEmbedderFake struct {
	query string
	err   error
}

func (f *answerEmbedderFake) Embed(context.Context, []string) ([][]float32, error) { return nil, nil }
func (f *answerEmbedderFake) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	f.query = text
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2}, nil
}

type answerIndexFake struct {
	topK    int
	results []domain.RetrievedChunk
	err     error
}

func (f *answerIndexFake) Upsert(context.Context, []domain.IndexEntry) error { return nil }
func (f *answerIndexFake) Query(_ context.Context, _ []float32, topK int) ([]domain.RetrievedChunk, error) {
	f.topK = topK
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}
func (f *answerIndexFake) Fetch(context.Context, []string) (map[string]domain.ChunkMetadata, error) {
	return nil, nil
}
func (f *answerIndexFake) DeleteAll(context.Context, string) error { return nil }

type answerChatFake struct {
	system string
	user   string
	reply  string
	err    error
}

func (f *answerChatFake) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.system = systemPrompt
	f.user = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func ranked(talkID, title, chunk string, score float64) domain.RetrievedChunk {
	return domain.RetrievedChunk{
		Metadata: domain.ChunkMetadata{TalkID: talkID, Title: title, Chunk: chunk},
		Score:    score,
	}
}

func TestAnswerDeduplicatesEvidence(t *testing.T) {
	index := &answerIndexFake{results: []domain.RetrievedChunk{
		ranked("1", "First", "chunk a", 0.95),
		ranked("2", "Second", "chunk b", 0.90),
		ranked("1", "First", "chunk c", 0.85),
		ranked("3", "Third", "chunk d", 0.80),
		ranked("2", "Second", "chunk e", 0.75),
	}}
	chat := &answerChatFake{reply: "an answer"}
	uc := NewAnswerUseCase(&classifierFake{}, &answerEmbedderFake{}, index, chat, 0)

	answer, err := uc.Answer(context.Background(), "what?", 5)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	wantIDs := []string{"1", "2", "3"}
	if len(answer.Evidence) != len(wantIDs) {
		t.Fatalf("expected %d evidence entries, got %d", len(wantIDs), len(answer.Evidence))
	}
	for i, id := range wantIDs {
		if answer.Evidence[i].TalkID != id {
			t.Fatalf("evidence[%d].TalkID = %q, want %q (first-seen order)", i, answer.Evidence[i].TalkID, id)
		}
	}
	// First occurrence keeps its own chunk and score.
	if answer.Evidence[0].Chunk != "chunk a" || answer.Evidence[0].Score != 0.95 {
		t.Fatalf("evidence[0] must keep the highest-ranked chunk: %#v", answer.Evidence[0])
	}
}

func TestAnswerDefaultTopK(t *testing.T) {
	index := &answerIndexFake{}
	uc := NewAnswerUseCase(&classifierFake{}, &answerEmbedderFake{}, index, &answerChatFake{reply: "x"}, 0)

	if _, err := uc.Answer(context.Background(), "q", 0); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if index.topK != 15 {
		t.Fatalf("expected default topK=15, got %d", index.topK)
	}
}

func TestAnswerEmptyResultsStillBuildsPrompts(t *testing.T) {
	chat := &answerChatFake{reply: "I don't know based on the provided TED data."}
	uc := NewAnswerUseCase(&classifierFake{}, &answerEmbedderFake{}, &answerIndexFake{}, chat, 0)

	answer, err := uc.Answer(context.Background(), "anything?", 15)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer.UserPrompt != "Context:\n\n\nQuestion: anything?" {
		t.Fatalf("unexpected user prompt %q", answer.UserPrompt)
	}
	if !strings.Contains(answer.SystemPrompt, "I don't know based on the provided TED data.") {
		t.Fatalf("system prompt must carry the refusal instruction: %q", answer.SystemPrompt)
	}
	if len(answer.Evidence) != 0 {
		t.Fatalf("expected no evidence, got %d", len(answer.Evidence))
	}
}

func TestAnswerAppendsCategoryInstruction(t *testing.T) {
	chat := &answerChatFake{reply: "ok"}
	uc := NewAnswerUseCase(&classifierFake{category: domain.CategorySummary}, &answerEmbedderFake{}, &answerIndexFake{
		results: []domain.RetrievedChunk{ranked("1", "First", "chunk a", 0.9)},
	}, chat, 0)

	answer, err := uc.Answer(context.Background(), "summarize the talk about space", 0)
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !strings.HasSuffix(answer.SystemPrompt, domain.CategorySummary.Instruction()) {
		t.Fatalf("system prompt must end with the category instruction: %q", answer.SystemPrompt)
	}
	if answer.Category != domain.CategorySummary {
		t.Fatalf("expected category SUMMARY, got %q", answer.Category)
	}
	if !strings.Contains(chat.user, "Title: First\nTranscript: chunk a") {
		t.Fatalf("user prompt must contain the ranked context: %q", chat.user)
	}
}

func TestAnswerEmptyQuestionRejected(t *testing.T) {
	uc := NewAnswerUseCase(&classifierFake{}, &answerEmbedderFake{}, &answerIndexFake{}, &answerChatFake{}, 0)
	_, err := uc.Answer(context.Background(), "   ", 0)
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestAnswerErrorPaths(t *testing.T) {
	boom := errors.New("boom")

	if _, err := NewAnswerUseCase(&classifierFake{err: boom}, &answerEmbedderFake{}, &answerIndexFake{}, &answerChatFake{}, 0).
		Answer(context.Background(), "q", 0); !errors.Is(err, boom) {
		t.Fatalf("classifier error must propagate, got %v", err)
	}
	if _, err := NewAnswerUseCase(&classifierFake{}, &answerEmbedderFake{err: boom}, &answerIndexFake{}, &answerChatFake{}, 0).
		Answer(context.Background(), "q", 0); !errors.Is(err, boom) {
		t.Fatalf("embed error must propagate, got %v", err)
	}
	if _, err := NewAnswerUseCase(&classifierFake{}, &answerEmbedderFake{}, &answerIndexFake{err: boom}, &answerChatFake{}, 0).
		Answer(context.Background(), "q", 0); !errors.Is(err, boom) {
		t.Fatalf("index error must propagate, got %v", err)
	}
	if _, err := NewAnswerUseCase(&classifierFake{}, &answerEmbedderFake{}, &answerIndexFake{}, &answerChatFake{err: boom}, 0).
		Answer(context.Background(), "q", 0); !errors.Is(err, boom) {
		t.Fatalf("chat error must propagate, got %v", err)
	}
}
