package export

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/pantrypilot/receipt-scanner/constants"
	"github.com/pantrypilot/receipt-scanner/internal/parser"
	"github.com/pantrypilot/receipt-scanner/internal/repository"
)

func TestExportPantryXLSX(t *testing.T) {
	ctx := context.Background()
	db, err := repository.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	pantry := repository.NewPantryRepository(db)
	if err := pantry.SaveParsedItems(ctx, 0, "2026-08-30", []parser.ParsedItem{
		{Name: "Organic Bananas", Quantity: 1.5, Unit: "lb", Price: 2.99, Category: constants.Produce, Confidence: constants.ConfidenceHigh},
		{Name: "Whole Milk", Quantity: 1, Unit: "ea", Price: 3.49, Category: constants.Dairy, Confidence: constants.ConfidenceHigh},
	}); err != nil {
		t.Fatalf("seed items: %v", err)
	}

	svc := NewService(pantry, "Pantry", nil)
	data, err := svc.ExportPantryXLSX(ctx, "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported bytes are not a workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows("Pantry")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 items: %v", len(rows), rows)
	}
	if rows[0][0] != "Item" || rows[0][1] != "Category" {
		t.Errorf("header row = %v", rows[0])
	}

	names := map[string]bool{}
	for _, r := range rows[1:] {
		names[r[0]] = true
	}
	if !names["Organic Bananas"] || !names["Whole Milk"] {
		t.Errorf("exported names = %v", names)
	}
}

func TestExportPantryXLSXEmpty(t *testing.T) {
	db, err := repository.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	svc := NewService(repository.NewPantryRepository(db), "", nil)
	data, err := svc.ExportPantryXLSX(context.Background(), "")
	if err != nil {
		t.Fatalf("export empty: %v", err)
	}
	if _, err := excelize.OpenReader(bytes.NewReader(data)); err != nil {
		t.Errorf("empty export is not a valid workbook: %v", err)
	}
}
