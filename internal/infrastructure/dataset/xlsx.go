package dataset

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
)

// XLSXSource reads the TED corpus from an Excel export. The first sheet
// is assumed to carry the header row plus one talk per row.
type XLSXSource struct {
	Path  string
	Limit int
}

func NewXLSXSource(path string, limit int) *XLSXSource {
	return &XLSXSource{Path: path, Limit: limit}
}

func (s *XLSXSource) Load(ctx context.Context) ([]domain.Talk, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("dataset has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset sheet %q is empty", sheets[0])
	}
	h := newHeader(rows[0])

	var talks []domain.Talk
	for _, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if s.Limit > 0 && len(talks) >= s.Limit {
			break
		}
		talks = append(talks, rowToTalk(h, row))
	}
	return talks, nil
}
