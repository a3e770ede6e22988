package domain

import "fmt"

// Talk is one TED talk as loaded from the source dataset. Immutable after
// loading; missing descriptive fields are normalized to "" at the dataset
// boundary so downstream code never deals with absent values.
type Talk struct {
	ID            string `json:"talk_id"`
	Title         string `json:"title"`
	Speaker       string `json:"speaker_1"`
	AllSpeakers   string `json:"all_speakers"`
	Occupations   string `json:"occupations"`
	AboutSpeakers string `json:"about_speakers"`
	Views         int64  `json:"views"`
	RecordedDate  string `json:"recorded_date"`
	PublishedDate string `json:"published_date"`
	Event         string `json:"event"`
	NativeLang    string `json:"native_lang"`
	AvailableLang string `json:"available_lang"`
	Comments      string `json:"comments"`
	Duration      int64  `json:"duration"`
	Topics        string `json:"topics"`
	RelatedTalks  string `json:"related_talks"`
	URL           string `json:"url"`
	Description   string `json:"description"`
	Transcript    string `json:"-"`
}

// ChunkID is the vector-index id of chunk seq within talk talkID.
// The deterministic scheme is what makes re-indexing idempotent.
func ChunkID(talkID string, seq int) string {
	return fmt.Sprintf("%s_%d", talkID, seq)
}

// ChunkMetadata is the payload stored per indexed vector. It duplicates
// every Talk field needed for display plus the chunk's own text and
// sequence index, so one index lookup renders a result without a second
// fetch.
type ChunkMetadata struct {
	TalkID        string `json:"talk_id"`
	Title         string `json:"title"`
	Speaker       string `json:"speaker_1"`
	AllSpeakers   string `json:"all_speakers"`
	Occupations   string `json:"occupations"`
	AboutSpeakers string `json:"about_speakers"`
	Views         int64  `json:"views"`
	RecordedDate  string `json:"recorded_date"`
	PublishedDate string `json:"published_date"`
	Event         string `json:"event"`
	NativeLang    string `json:"native_lang"`
	AvailableLang string `json:"available_lang"`
	Comments      string `json:"comments"`
	Duration      int64  `json:"duration"`
	Topics        string `json:"topics"`
	RelatedTalks  string `json:"related_talks"`
	URL           string `json:"url"`
	Description   string `json:"description"`
	ChunkIndex    int    `json:"chunk_id"`
	Chunk         string `json:"chunk"`
}

// NewChunkMetadata projects a talk plus one of its chunks into the
// metadata payload for the vector index.
func NewChunkMetadata(talk Talk, seq int, chunk string) ChunkMetadata {
	return ChunkMetadata{
		TalkID:        talk.ID,
		Title:         talk.Title,
		Speaker:       talk.Speaker,
		AllSpeakers:   talk.AllSpeakers,
		Occupations:   talk.Occupations,
		AboutSpeakers: talk.AboutSpeakers,
		Views:         talk.Views,
		RecordedDate:  talk.RecordedDate,
		PublishedDate: talk.PublishedDate,
		Event:         talk.Event,
		NativeLang:    talk.NativeLang,
		AvailableLang: talk.AvailableLang,
		Comments:      talk.Comments,
		Duration:      talk.Duration,
		Topics:        talk.Topics,
		RelatedTalks:  talk.RelatedTalks,
		URL:           talk.URL,
		Description:   talk.Description,
		ChunkIndex:    seq,
		Chunk:         chunk,
	}
}

// EmbeddingInput is the string actually embedded for a chunk: the full
// descriptive preamble followed by the raw chunk text, so metadata terms
// (speaker, topics, event) are searchable alongside the transcript.
func (m ChunkMetadata) EmbeddingInput() string {
	return fmt.Sprintf(
		"Title: %s. Speaker: %s. All Speakers: %s. Occupations: %s. About Speakers: %s. "+
			"Topics: %s. Description: %s. Event: %s. Native Language: %s. Available Languages: %s. "+
			"Recorded Date: %s. Published Date: %s. Views: %d. Duration: %d seconds. %s",
		m.Title, m.Speaker, m.AllSpeakers, m.Occupations, m.AboutSpeakers,
		m.Topics, m.Description, m.Event, m.NativeLang, m.AvailableLang,
		m.RecordedDate, m.PublishedDate, m.Views, m.Duration, m.Chunk,
	)
}

// IndexEntry is one (id, vector, metadata) triple bound for the index.
type IndexEntry struct {
	ID       string
	Vector   []float32
	Metadata ChunkMetadata
}
