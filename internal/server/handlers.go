package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pantrypilot/receipt-scanner/constants"
	"github.com/pantrypilot/receipt-scanner/internal/common"
	"github.com/pantrypilot/receipt-scanner/internal/parser"
	"github.com/pantrypilot/receipt-scanner/internal/repository"
)

type uploadResponse struct {
	ReceiptText   string              `json:"receipt_text"`
	OCRConfidence float32             `json:"ocr_confidence"`
	Store         string              `json:"store"`
	Items         []parser.ParsedItem `json:"items"`
}

// handleReceiptUpload accepts a receipt photo, runs OCR and parsing, and
// returns the extracted items for the user to review before saving.
func (s *Server) handleReceiptUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadBytes)
	if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		s.writeError(w, r, common.NewAppError("UPLOAD_TOO_LARGE", "receipt image too large", common.ErrInvalidInput))
		return
	}
	file, header, err := r.FormFile("receipt")
	if err != nil {
		s.writeError(w, r, common.NewAppError("UPLOAD_MISSING", "missing receipt file field", common.ErrInvalidInput))
		return
	}
	defer file.Close()

	ext := constants.NormalizeExt(filepath.Ext(header.Filename))
	if !constants.IsImageExt(ext) {
		s.writeError(w, r, common.NewAppError("UPLOAD_BAD_TYPE",
			fmt.Sprintf("unsupported file type %q", ext), common.ErrInvalidInput))
		return
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		s.writeError(w, r, common.NewAppError("UPLOAD_STORE", "create upload dir", err))
		return
	}
	tmpPath := filepath.Join(s.uploadDir, uuid.NewString()+"."+ext)
	dst, err := os.Create(tmpPath)
	if err != nil {
		s.writeError(w, r, common.NewAppError("UPLOAD_STORE", "store upload", err))
		return
	}
	defer os.Remove(tmpPath)
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		s.writeError(w, r, common.NewAppError("UPLOAD_STORE", "write upload", err))
		return
	}
	dst.Close()

	res, err := s.ocr.Extract(r.Context(), tmpPath)
	if err != nil {
		s.writeError(w, r, common.NewAppError("OCR_FAILED", "could not read receipt image", common.ErrUnreadable))
		return
	}

	items := s.parser.ParseReceiptItems(r.Context(), res.Text)
	s.writeJSON(w, http.StatusOK, uploadResponse{
		ReceiptText:   res.Text,
		OCRConfidence: res.Confidence,
		Store:         string(parser.IdentifyStore(res.Text)),
		Items:         items,
	})
}

type saveRequest struct {
	StoreName    string              `json:"store_name"`
	ReceiptDate  string              `json:"receipt_date"`
	ReceiptTotal float64             `json:"receipt_total"`
	OCRText      string              `json:"ocr_text"`
	Items        []parser.ParsedItem `json:"items"`
}

// handleReceiptSave persists a reviewed receipt and its items.
func (s *Server) handleReceiptSave(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.NewAppError("SAVE_BAD_BODY", "invalid request body", common.ErrInvalidInput))
		return
	}
	if len(req.Items) == 0 {
		s.writeError(w, r, common.NewAppError("SAVE_NO_ITEMS", "no items to save", common.ErrInvalidInput))
		return
	}

	receiptID, err := s.receipts.Create(r.Context(), &repository.Receipt{
		StoreName:    req.StoreName,
		StoreProfile: parser.IdentifyStore(req.OCRText + "\n" + req.StoreName),
		ReceiptDate:  req.ReceiptDate,
		Total:        req.ReceiptTotal,
		OCRText:      req.OCRText,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	purchaseDate := req.ReceiptDate
	if purchaseDate == "" {
		purchaseDate = time.Now().Format("2006-01-02")
	}
	if err := s.pantry.SaveParsedItems(r.Context(), receiptID, purchaseDate, req.Items); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]any{
		"receipt_id": receiptID,
		"saved":      len(req.Items),
	})
}

// categoryFilter maps a free-form ?category= value onto the category
// vocabulary; unknown labels pass through and simply match nothing.
func categoryFilter(r *http.Request) string {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		return ""
	}
	if cat, ok := constants.Canonicalize(raw); ok {
		return string(cat)
	}
	return raw
}

func (s *Server) handlePantryList(w http.ResponseWriter, r *http.Request) {
	items, err := s.pantry.ListActive(r.Context(), categoryFilter(r), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []repository.PantryItem{}
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handlePantryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, r, common.NewAppError("PANTRY_BAD_ID", "invalid pantry item id", common.ErrInvalidInput))
		return
	}
	if err := s.pantry.Deactivate(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (s *Server) handlePantryExport(w http.ResponseWriter, r *http.Request) {
	data, err := s.exporter.ExportPantryXLSX(r.Context(), categoryFilter(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="pantry.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Error("http.write_export", "error", err.Error())
	}
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, constants.AsStringSlice())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
