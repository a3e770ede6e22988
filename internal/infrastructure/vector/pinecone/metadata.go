package pinecone

import (
	"fmt"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
)

// Pinecone metadata only takes flat string/number values, so the chunk
// metadata is flattened by hand in both directions.

func metadataToMap(m domain.ChunkMetadata) map[string]any {
	return map[string]any{
		"talk_id":        m.TalkID,
		"title":          m.Title,
		"speaker_1":      m.Speaker,
		"all_speakers":   m.AllSpeakers,
		"occupations":    m.Occupations,
		"about_speakers": m.AboutSpeakers,
		"views":          m.Views,
		"recorded_date":  m.RecordedDate,
		"published_date": m.PublishedDate,
		"event":          m.Event,
		"native_lang":    m.NativeLang,
		"available_lang": m.AvailableLang,
		"comments":       m.Comments,
		"duration":       m.Duration,
		"topics":         m.Topics,
		"related_talks":  m.RelatedTalks,
		"url":            m.URL,
		"description":    m.Description,
		"chunk_id":       m.ChunkIndex,
		"chunk":          m.Chunk,
	}
}

func metadataFromMap(payload map[string]any) domain.ChunkMetadata {
	return domain.ChunkMetadata{
		TalkID:        getString(payload, "talk_id"),
		Title:         getString(payload, "title"),
		Speaker:       getString(payload, "speaker_1"),
		AllSpeakers:   getString(payload, "all_speakers"),
		Occupations:   getString(payload, "occupations"),
		AboutSpeakers: getString(payload, "about_speakers"),
		Views:         getInt64(payload, "views"),
		RecordedDate:  getString(payload, "recorded_date"),
		PublishedDate: getString(payload, "published_date"),
		Event:         getString(payload, "event"),
		NativeLang:    getString(payload, "native_lang"),
		AvailableLang: getString(payload, "available_lang"),
		Comments:      getString(payload, "comments"),
		Duration:      getInt64(payload, "duration"),
		Topics:        getString(payload, "topics"),
		RelatedTalks:  getString(payload, "related_talks"),
		URL:           getString(payload, "url"),
		Description:   getString(payload, "description"),
		ChunkIndex:    int(getInt64(payload, "chunk_id")),
		Chunk:         getString(payload, "chunk"),
	}
}

func getString(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func getInt64(payload map[string]any, key string) int64 {
	switch v := payload[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
