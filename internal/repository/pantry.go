package repository

import (
	"context"
	"database/sql"

	"github.com/pantrypilot/receipt-scanner/constants"
	"github.com/pantrypilot/receipt-scanner/internal/common"
	"github.com/pantrypilot/receipt-scanner/internal/parser"
)

// PantryItem is one stocked item, usually created from a parsed receipt.
type PantryItem struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Category     constants.Category   `json:"category"`
	Quantity     float64              `json:"quantity"`
	Unit         string               `json:"unit"`
	Price        float64              `json:"price"`
	Confidence   constants.Confidence `json:"confidence"`
	PurchaseDate string               `json:"purchase_date,omitempty"`
	ExpiryDate   string               `json:"expiry_date,omitempty"`
	ReceiptID    int64                `json:"receipt_id,omitempty"`
	IsActive     bool                 `json:"is_active"`
	Notes        string               `json:"notes,omitempty"`
}

// PantryRepository persists pantry items.
type PantryRepository struct {
	db *sql.DB
}

func NewPantryRepository(db *sql.DB) *PantryRepository {
	return &PantryRepository{db: db}
}

// SaveParsedItems stores the items parsed out of one receipt in a single
// transaction, so a failed insert never leaves a half-saved receipt.
func (r *PantryRepository) SaveParsedItems(ctx context.Context, receiptID int64, purchaseDate string, items []parser.ParsedItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.NewAppError("DB_TX", "begin save items", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pantry_items (name, category, quantity, unit, price, confidence, purchase_date, receipt_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return common.NewAppError("DB_TX", "prepare insert", err)
	}
	defer stmt.Close()

	// 0 means "no receipt"; store NULL so the foreign key stays satisfied
	var receiptRef sql.NullInt64
	if receiptID > 0 {
		receiptRef = sql.NullInt64{Int64: receiptID, Valid: true}
	}

	for _, it := range items {
		if _, err := stmt.ExecContext(ctx,
			it.Name, string(it.Category), it.Quantity, it.Unit, it.Price,
			string(it.Confidence), purchaseDate, receiptRef,
		); err != nil {
			return common.NewAppError("DB_INSERT", "insert pantry item", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return common.NewAppError("DB_TX", "commit save items", err)
	}
	return nil
}

// ListActive returns active pantry items, newest first. An empty category
// means all categories; a non-empty search matches item names, case
// insensitive.
func (r *PantryRepository) ListActive(ctx context.Context, category, search string) ([]PantryItem, error) {
	query := `
		SELECT id, name, category, quantity, unit, COALESCE(price, 0),
		       COALESCE(confidence, ''), COALESCE(purchase_date, ''),
		       COALESCE(expiry_date, ''), COALESCE(receipt_id, 0),
		       is_active, COALESCE(notes, '')
		FROM pantry_items WHERE is_active = 1`
	args := []any{}
	if category != "" {
		query += " AND category = ?"
		args = append(args, category)
	}
	if search != "" {
		query += " AND name LIKE ? COLLATE NOCASE"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewAppError("DB_LIST", "list pantry items", err)
	}
	defer rows.Close()

	var items []PantryItem
	for rows.Next() {
		var it PantryItem
		var cat, conf string
		if err := rows.Scan(&it.ID, &it.Name, &cat, &it.Quantity, &it.Unit, &it.Price,
			&conf, &it.PurchaseDate, &it.ExpiryDate, &it.ReceiptID, &it.IsActive, &it.Notes); err != nil {
			return nil, common.NewAppError("DB_LIST", "scan pantry item", err)
		}
		it.Category = constants.Category(cat)
		it.Confidence = constants.Confidence(conf)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewAppError("DB_LIST", "iterate pantry items", err)
	}
	return items, nil
}

// Deactivate soft-deletes a pantry item.
func (r *PantryRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE pantry_items SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return common.NewAppError("DB_UPDATE", "deactivate pantry item", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.NewAppError("DB_UPDATE", "rows affected", err)
	}
	if n == 0 {
		return common.NewAppError("DB_UPDATE", "pantry item not found", common.ErrNotFound)
	}
	return nil
}
