package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pantrypilot/receipt-scanner/internal/repository"
)

// Service is a tiny façade over the pantry repository that produces XLSX
// bytes for exports.
type Service struct {
	pantry *repository.PantryRepository
	sheet  string
	logger *slog.Logger
}

func NewService(pantry *repository.PantryRepository, sheetName string, logger *slog.Logger) *Service {
	if sheetName == "" {
		sheetName = "Pantry"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{pantry: pantry, sheet: sheetName, logger: logger}
}

// ExportPantryXLSX returns an XLSX workbook (as bytes) listing the active
// pantry items, optionally filtered to one category.
func (s *Service) ExportPantryXLSX(ctx context.Context, category string) ([]byte, error) {
	start := time.Now()

	items, err := s.pantry.ListActive(ctx, category, "")
	if err != nil {
		return nil, fmt.Errorf("query pantry items: %w", err)
	}

	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(s.sheet); index == -1 {
		if _, err := f.NewSheet(s.sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(s.sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Item",
		"Category",
		"Quantity",
		"Unit",
		"Price",
		"Confidence",
		"Purchase Date",
		"Notes",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(s.sheet, cell, h)
	}

	row := 2
	for _, it := range items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(s.sheet, cell, v)
		}
		write(1, it.Name)
		write(2, string(it.Category))
		write(3, it.Quantity)
		write(4, it.Unit)
		write(5, it.Price)
		write(6, string(it.Confidence))
		write(7, it.PurchaseDate)
		write(8, truncate(it.Notes, 140))
		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(s.sheet, "A", "A", 28) // item
	_ = f.SetColWidth(s.sheet, "B", "B", 16) // category
	_ = f.SetColWidth(s.sheet, "C", "E", 10) // qty/unit/price
	_ = f.SetColWidth(s.sheet, "G", "G", 14) // date
	_ = f.SetColWidth(s.sheet, "H", "H", 48) // notes

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(items),
		"category", category,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
