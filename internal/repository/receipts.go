package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pantrypilot/receipt-scanner/constants"
	"github.com/pantrypilot/receipt-scanner/internal/common"
)

// Receipt is one processed receipt.
type Receipt struct {
	ID            int64
	StoreName     string
	StoreProfile  constants.StoreProfile
	ReceiptDate   string
	Total         float64
	ImagePath     string
	OCRText       string
	OCRConfidence float64
	ProcessedDate time.Time
}

// ReceiptRepository persists receipts.
type ReceiptRepository struct {
	db *sql.DB
}

func NewReceiptRepository(db *sql.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// Create inserts a receipt and returns its ID.
func (r *ReceiptRepository) Create(ctx context.Context, rec *Receipt) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO receipts (store_name, store_profile, receipt_date, receipt_total, receipt_image_path, ocr_text, ocr_confidence)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.StoreName, string(rec.StoreProfile), rec.ReceiptDate, rec.Total, rec.ImagePath, rec.OCRText, rec.OCRConfidence,
	)
	if err != nil {
		return 0, common.NewAppError("DB_INSERT", "insert receipt", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, common.NewAppError("DB_INSERT", "receipt id", err)
	}
	return id, nil
}

// Get fetches one receipt by ID.
func (r *ReceiptRepository) Get(ctx context.Context, id int64) (*Receipt, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(store_name, ''), store_profile, COALESCE(receipt_date, ''),
		       COALESCE(receipt_total, 0), COALESCE(receipt_image_path, ''),
		       COALESCE(ocr_text, ''), COALESCE(ocr_confidence, 0), processed_date
		FROM receipts WHERE id = ?`, id)

	var rec Receipt
	var profile, processed string
	err := row.Scan(&rec.ID, &rec.StoreName, &profile, &rec.ReceiptDate,
		&rec.Total, &rec.ImagePath, &rec.OCRText, &rec.OCRConfidence, &processed)
	if err == sql.ErrNoRows {
		return nil, common.NewAppError("DB_GET", "receipt not found", common.ErrNotFound)
	}
	if err != nil {
		return nil, common.NewAppError("DB_GET", "get receipt", err)
	}
	rec.StoreProfile = constants.StoreProfile(profile)
	if t, perr := time.Parse("2006-01-02 15:04:05", processed); perr == nil {
		rec.ProcessedDate = t
	}
	return &rec, nil
}
