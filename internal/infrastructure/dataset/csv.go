package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
)

// CSVSource reads the TED corpus from a CSV export. Limit > 0 caps the
// number of talks loaded, matching the partial indexing runs used to
// keep embedding costs down.
type CSVSource struct {
	Path  string
	Limit int
}

func NewCSVSource(path string, limit int) *CSVSource {
	return &CSVSource{Path: path, Limit: limit}
}

func (s *CSVSource) Load(ctx context.Context) ([]domain.Talk, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	cols, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	h := newHeader(cols)

	var talks []domain.Talk
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.Limit > 0 && len(talks) >= s.Limit {
			break
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row %d: %w", len(talks)+2, err)
		}
		talks = append(talks, rowToTalk(h, row))
	}
	return talks, nil
}
