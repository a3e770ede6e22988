package domain

// RetrievedChunk is one ranked hit from the vector index.
type RetrievedChunk struct {
	Metadata ChunkMetadata `json:"metadata"`
	Score    float64       `json:"score"`
}

// Evidence is the per-talk projection of a retrieved chunk returned to
// the caller: one entry per distinct talk, first-seen rank order.
type Evidence struct {
	TalkID string  `json:"talk_id"`
	Title  string  `json:"title"`
	Chunk  string  `json:"chunk"`
	Score  float64 `json:"score"`
}

// Answer is the full result of one question: the model's answer, the
// deduplicated evidence, and the exact prompt pair that produced it.
// Built fresh per query, never persisted.
type Answer struct {
	Text         string     `json:"text"`
	Evidence     []Evidence `json:"evidence"`
	SystemPrompt string     `json:"system_prompt"`
	UserPrompt   string     `json:"user_prompt"`
	Category     Category   `json:"category"`
}
