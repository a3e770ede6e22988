package chunking

import (
	"fmt"
	"strings"
)

// Splitter cuts text into overlapping fixed-size word windows. Each
// window after the first starts chunkSize - overlap words after the
// previous one. Windows are emitted for every start position below the
// word count, so a short trailing window can follow one that already
// reached the last word.
type Splitter struct {
	ChunkSize int
	Overlap   int
}

// NewSplitter validates the chunking parameters. overlapRatio must stay
// below 1: a step of zero or less would repeat the same window forever.
func NewSplitter(chunkSize int, overlapRatio float64) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlapRatio < 0 || overlapRatio >= 1 {
		return nil, fmt.Errorf("overlap ratio must be in [0, 1), got %g", overlapRatio)
	}
	overlap := int(float64(chunkSize) * overlapRatio)
	if chunkSize-overlap < 1 {
		return nil, fmt.Errorf("chunk size %d with overlap %d leaves no forward step", chunkSize, overlap)
	}
	return &Splitter{
		ChunkSize: chunkSize,
		Overlap:   overlap,
	}, nil
}

func (s *Splitter) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := s.ChunkSize - s.Overlap
	out := make([]string, 0, len(words)/step+1)
	for start := 0; start < len(words); start += step {
		end := start + s.ChunkSize
		if end > len(words) {
			end = len(words)
		}
		out = append(out, strings.Join(words[start:end], " "))
	}
	return out
}
