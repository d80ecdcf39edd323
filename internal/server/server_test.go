package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/pantrypilot/receipt-scanner/internal/export"
	"github.com/pantrypilot/receipt-scanner/internal/ocr"
	"github.com/pantrypilot/receipt-scanner/internal/parser"
	"github.com/pantrypilot/receipt-scanner/internal/repository"
)

type stubOCR struct {
	text string
	err  error
}

func (s *stubOCR) Extract(ctx context.Context, path string) (ocr.ExtractionResult, error) {
	if s.err != nil {
		return ocr.ExtractionResult{}, s.err
	}
	return ocr.ExtractionResult{Text: s.text, Confidence: 0.8}, nil
}

const receiptText = "CORNER MARKET\nBANANAS 1.5LB $2.99\nMILK $3.49\nTOTAL $6.48"

func newTestServer(t *testing.T, ocrStub *stubOCR) http.Handler {
	t.Helper()
	db, err := repository.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	pantry := repository.NewPantryRepository(db)
	srv := New(
		ocrStub,
		parser.New(parser.DefaultConfig(), nil, nil),
		repository.NewReceiptRepository(db),
		pantry,
		export.NewService(pantry, "Pantry", nil),
		t.TempDir(),
		nil,
	)
	return srv.Router()
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestReceiptUpload(t *testing.T) {
	router := newTestServer(t, &stubOCR{text: receiptText})

	body, contentType := multipartUpload(t, "receipt", "receipt.jpg", []byte("fake image bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/receipts/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ReceiptText string              `json:"receipt_text"`
		Store       string              `json:"store"`
		Items       []parser.ParsedItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Store != "GENERIC" {
		t.Errorf("store = %q, want GENERIC", resp.Store)
	}
	if len(resp.Items) != 2 {
		t.Errorf("got %d items, want 2: %+v", len(resp.Items), resp.Items)
	}
}

func TestReceiptUploadRejectsBadType(t *testing.T) {
	router := newTestServer(t, &stubOCR{text: receiptText})

	body, contentType := multipartUpload(t, "receipt", "receipt.exe", []byte("nope"))
	req := httptest.NewRequest(http.MethodPost, "/api/receipts/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestReceiptUploadUnreadableImage(t *testing.T) {
	router := newTestServer(t, &stubOCR{err: errors.New("tesseract: exit status 1")})

	body, contentType := multipartUpload(t, "receipt", "receipt.png", []byte("garbled"))
	req := httptest.NewRequest(http.MethodPost, "/api/receipts/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestReceiptSaveAndPantryFlow(t *testing.T) {
	router := newTestServer(t, &stubOCR{text: receiptText})

	save := map[string]any{
		"store_name":    "Corner Market",
		"receipt_date":  "2026-08-30",
		"receipt_total": 6.48,
		"ocr_text":      receiptText,
		"items": []map[string]any{
			{"name": "Bananas", "quantity": 1.5, "unit": "lb", "price": 2.99, "category": "Produce", "confidence": "high"},
			{"name": "Milk", "quantity": 1, "unit": "ea", "price": 3.49, "category": "Dairy", "confidence": "high"},
		},
	}
	payload, _ := json.Marshal(save)
	req := httptest.NewRequest(http.MethodPost, "/api/receipts/save", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("save status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/pantry", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var items []repository.PantryItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d pantry items, want 2", len(items))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/pantry?q=milk", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var found []repository.PantryItem
	if err := json.Unmarshal(rec.Body.Bytes(), &found); err != nil {
		t.Fatalf("decode search: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Milk" {
		t.Errorf("search = %+v, want only Milk", found)
	}

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/pantry/%d", items[0].ID), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/pantry", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	items = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("got %d pantry items after delete, want 1", len(items))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/pantry/export", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("export content type = %q", ct)
	}
}

func TestReceiptSaveRejectsEmptyItems(t *testing.T) {
	router := newTestServer(t, &stubOCR{text: receiptText})

	payload := []byte(`{"store_name":"X","items":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/receipts/save", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestPantryDeleteMissing(t *testing.T) {
	router := newTestServer(t, &stubOCR{text: receiptText})

	req := httptest.NewRequest(http.MethodDelete, "/api/pantry/9999", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCategories(t *testing.T) {
	router := newTestServer(t, &stubOCR{text: receiptText})

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var cats []string
	if err := json.Unmarshal(rec.Body.Bytes(), &cats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cats) == 0 || cats[len(cats)-1] != "Other" {
		t.Errorf("categories = %v, want Other last", cats)
	}
}

func TestStatus(t *testing.T) {
	router := newTestServer(t, &stubOCR{text: receiptText})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp["status"] != "ok" {
		t.Errorf("body = %s", rec.Body.String())
	}
}
