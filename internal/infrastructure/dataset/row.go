package dataset

import (
	"strconv"
	"strings"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
)

// Shared row mapping for the tabular TED exports. The CSV and XLSX
// readers both produce a header-indexed row and hand it here.

type header map[string]int

func newHeader(cols []string) header {
	h := make(header, len(cols))
	for i, name := range cols {
		h[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return h
}

func (h header) get(row []string, name string) string {
	idx, ok := h[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return cleanCell(row[idx])
}

// cleanCell normalizes the absent-value spellings pandas exports leave
// behind (NaN, nan, empty) to the empty string.
func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "nan", "nat", "none", "null":
		return ""
	}
	return v
}

// parseCount reads an integer cell tolerantly: empty or unparsable
// values become 0, float spellings ("1234.0") are truncated.
func parseCount(v string) int64 {
	v = cleanCell(v)
	if v == "" {
		return 0
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int64(f)
	}
	return 0
}

func rowToTalk(h header, row []string) domain.Talk {
	return domain.Talk{
		ID:            h.get(row, "talk_id"),
		Title:         h.get(row, "title"),
		Speaker:       h.get(row, "speaker_1"),
		AllSpeakers:   h.get(row, "all_speakers"),
		Occupations:   h.get(row, "occupations"),
		AboutSpeakers: h.get(row, "about_speakers"),
		Views:         parseCount(h.get(row, "views")),
		RecordedDate:  h.get(row, "recorded_date"),
		PublishedDate: h.get(row, "published_date"),
		Event:         h.get(row, "event"),
		NativeLang:    h.get(row, "native_lang"),
		AvailableLang: h.get(row, "available_lang"),
		Comments:      h.get(row, "comments"),
		Duration:      parseCount(h.get(row, "duration")),
		Topics:        h.get(row, "topics"),
		RelatedTalks:  h.get(row, "related_talks"),
		URL:           h.get(row, "url"),
		Description:   h.get(row, "description"),
		Transcript:    h.get(row, "transcript"),
	}
}
