package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
)

type answererFake struct {
	answer       *domain.Answer
	err          error
	lastQuestion string
	lastTopK     int
}

func (f *answererFake) Answer(_ context.Context, question string, topK int) (*domain.Answer, error) {
	f.lastQuestion = question
	f.lastTopK = topK
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func newTestRouter(fake *answererFake) *Router {
	return NewRouter(fake, StatsConfig{
		ChunkSize:    1024,
		OverlapRatio: 0.2,
		TopK:         15,
	}, nil, "ted-rag-api-test")
}

func TestAnswerQuestionReturnsFullPayload(t *testing.T) {
	fake := &answererFake{
		answer: &domain.Answer{
			Text: "Sir Ken Robinson argues schools kill creativity.",
			Evidence: []domain.Evidence{
				{TalkID: "talk_1", Title: "Do schools kill creativity?", Chunk: "creativity matters", Score: 0.91},
			},
			SystemPrompt: "system text",
			UserPrompt:   "user text",
			Category:     domain.CategorySummary,
		},
	}
	rt := newTestRouter(fake)

	body := strings.NewReader(`{"question":"Summarize the creativity talk","top_k":5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/prompt", body)
	rec := httptest.NewRecorder()
	rt.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if fake.lastQuestion != "Summarize the creativity talk" {
		t.Fatalf("question passed to answerer = %q", fake.lastQuestion)
	}
	if fake.lastTopK != 5 {
		t.Fatalf("top_k passed to answerer = %d, want 5", fake.lastTopK)
	}

	var resp struct {
		Response        string            `json:"response"`
		Context         []domain.Evidence `json:"context"`
		AugmentedPrompt struct {
			System string `json:"System"`
			User   string `json:"User"`
		} `json:"Augmented_prompt"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Response != "Sir Ken Robinson argues schools kill creativity." {
		t.Fatalf("unexpected response text %q", resp.Response)
	}
	if len(resp.Context) != 1 || resp.Context[0].TalkID != "talk_1" {
		t.Fatalf("unexpected context %+v", resp.Context)
	}
	if resp.AugmentedPrompt.System != "system text" || resp.AugmentedPrompt.User != "user text" {
		t.Fatalf("unexpected augmented prompt %+v", resp.AugmentedPrompt)
	}
	if resp.Category != "SUMMARY" {
		t.Fatalf("category = %q, want SUMMARY", resp.Category)
	}
}

func TestAnswerQuestionRequiresQuestion(t *testing.T) {
	rt := newTestRouter(&answererFake{})

	req := httptest.NewRequest(http.MethodPost, "/api/prompt", strings.NewReader(`{"question":"  "}`))
	rec := httptest.NewRecorder()
	rt.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAnswerQuestionRejectsInvalidJSON(t *testing.T) {
	rt := newTestRouter(&answererFake{})

	req := httptest.NewRequest(http.MethodPost, "/api/prompt", strings.NewReader(`{"question":`))
	rec := httptest.NewRecorder()
	rt.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAnswerQuestionMethodNotAllowed(t *testing.T) {
	rt := newTestRouter(&answererFake{})

	req := httptest.NewRequest(http.MethodGet, "/api/prompt", nil)
	rec := httptest.NewRecorder()
	rt.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestAnswerQuestionMapsDomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", domain.WrapError(domain.ErrInvalidInput, "answer question", errors.New("empty question")), http.StatusBadRequest},
		{"temporary", domain.WrapError(domain.ErrTemporary, "embed query", errors.New("upstream 503")), http.StatusServiceUnavailable},
		{"not found", domain.WrapError(domain.ErrNotFound, "fetch talk", errors.New("no such talk")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newTestRouter(&answererFake{err: tt.err})

			req := httptest.NewRequest(http.MethodPost, "/api/prompt", strings.NewReader(`{"question":"anything"}`))
			rec := httptest.NewRecorder()
			rt.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRetrievalStatsReportsConfiguration(t *testing.T) {
	rt := newTestRouter(&answererFake{})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	rt.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var stats StatsConfig
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.ChunkSize != 1024 || stats.OverlapRatio != 0.2 || stats.TopK != 15 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestHealthz(t *testing.T) {
	rt := newTestRouter(&answererFake{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	rt.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("X-Request-Id"); got == "" {
		t.Fatal("expected X-Request-Id header to be set")
	}
}
