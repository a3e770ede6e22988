package domain

// IndexSummary reports what one indexing run actually did. Skipped
// chunks were already present in the index; skipped talks had no
// transcript to index.
type IndexSummary struct {
	TalksIndexed   int `json:"talks_indexed"`
	TalksSkipped   int `json:"talks_skipped"`
	ChunksEmbedded int `json:"chunks_embedded"`
	ChunksSkipped  int `json:"chunks_skipped"`
	EmbedBatches   int `json:"embed_batches"`
}
