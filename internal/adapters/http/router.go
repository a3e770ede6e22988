package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
	"github.com/nkovalenko/ted-talk-rag/internal/core/ports"
	"github.com/nkovalenko/ted-talk-rag/internal/observability/metrics"
)

// StatsConfig is the retrieval configuration snapshot exposed on /api/stats.
type StatsConfig struct {
	ChunkSize    int     `json:"chunk_size"`
	OverlapRatio float64 `json:"overlap_ratio"`
	TopK         int     `json:"top_k"`
}

type Router struct {
	answerer ports.QuestionAnswerer
	stats    StatsConfig
	metrics  *metrics.QueryMetrics
	service  string
}

func NewRouter(answerer ports.QuestionAnswerer, stats StatsConfig, queryMetrics *metrics.QueryMetrics, service string) *Router {
	return &Router{
		answerer: answerer,
		stats:    stats,
		metrics:  queryMetrics,
		service:  service,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/api/prompt", rt.answerQuestion)
	mux.HandleFunc("/api/stats", rt.retrievalStats)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}
	return requestIDMiddleware(accessLogMiddleware(mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type promptRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

type promptResponse struct {
	Response        string            `json:"response"`
	Context         []domain.Evidence `json:"context"`
	AugmentedPrompt augmentedPrompt   `json:"Augmented_prompt"`
	Category        string            `json:"category"`
}

type augmentedPrompt struct {
	System string `json:"System"`
	User   string `json:"User"`
}

func (rt *Router) answerQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question is required"})
		return
	}

	start := time.Now()
	answer, err := rt.answerer.Answer(r.Context(), req.Question, req.TopK)
	if rt.metrics != nil {
		category := domain.CategoryNone
		evidence := 0
		if answer != nil {
			category = answer.Category
			evidence = len(answer.Evidence)
		}
		rt.metrics.ObserveQuestion(rt.service, category, err, evidence, time.Since(start))
	}
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	evidence := answer.Evidence
	if evidence == nil {
		evidence = []domain.Evidence{}
	}
	writeJSON(w, http.StatusOK, promptResponse{
		Response: answer.Text,
		Context:  evidence,
		AugmentedPrompt: augmentedPrompt{
			System: answer.SystemPrompt,
			User:   answer.UserPrompt,
		},
		Category: string(answer.Category),
	})
}

func (rt *Router) retrievalStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, rt.stats)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
