package repository

import "database/sql"

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS receipts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		store_name TEXT,
		store_profile TEXT NOT NULL DEFAULT 'GENERIC',
		receipt_date TEXT,
		receipt_total REAL,
		receipt_image_path TEXT,
		ocr_text TEXT,
		ocr_confidence REAL,
		processed_date TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS pantry_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'Other',
		quantity REAL NOT NULL DEFAULT 1,
		unit TEXT NOT NULL DEFAULT 'ea',
		price REAL,
		confidence TEXT,
		purchase_date TEXT,
		expiry_date TEXT,
		receipt_id INTEGER,
		is_active INTEGER NOT NULL DEFAULT 1,
		notes TEXT,
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		FOREIGN KEY (receipt_id) REFERENCES receipts(id)
	);

	CREATE INDEX IF NOT EXISTS idx_pantry_items_active ON pantry_items(is_active);
	CREATE INDEX IF NOT EXISTS idx_pantry_items_category ON pantry_items(category);
	CREATE INDEX IF NOT EXISTS idx_pantry_items_receipt ON pantry_items(receipt_id);
	CREATE INDEX IF NOT EXISTS idx_receipts_processed ON receipts(processed_date);
	`

	_, err := db.Exec(schema)
	return err
}
