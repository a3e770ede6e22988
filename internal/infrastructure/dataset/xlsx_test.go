package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeSampleXLSX(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"talk_id", "title", "speaker_1", "views", "duration", "transcript"},
		{"7", "The power of vulnerability", "Brené Brown", 50000000, 1219, "So I'll start with this."},
		{"8", "Gapped talk", "Someone", "NaN", "", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "ted_talks_en.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save sample: %v", err)
	}
	return path
}

func TestXLSXSourceLoadsTalks(t *testing.T) {
	src := NewXLSXSource(writeSampleXLSX(t), 0)
	talks, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(talks) != 2 {
		t.Fatalf("expected 2 talks, got %d", len(talks))
	}

	first := talks[0]
	if first.ID != "7" || first.Title != "The power of vulnerability" {
		t.Fatalf("unexpected first talk: %#v", first)
	}
	if first.Views != 50000000 || first.Duration != 1219 {
		t.Fatalf("unexpected numeric fields: views=%d duration=%d", first.Views, first.Duration)
	}

	gaps := talks[1]
	if gaps.Views != 0 || gaps.Transcript != "" {
		t.Fatalf("gapped cells must normalize: %#v", gaps)
	}
}

func TestXLSXSourceAppliesLimit(t *testing.T) {
	src := NewXLSXSource(writeSampleXLSX(t), 1)
	talks, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(talks) != 1 {
		t.Fatalf("expected 1 talk with limit, got %d", len(talks))
	}
}

func TestXLSXSourceMissingFile(t *testing.T) {
	src := NewXLSXSource(filepath.Join(t.TempDir(), "missing.xlsx"), 0)
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
