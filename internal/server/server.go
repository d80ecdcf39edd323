// Package server exposes the receipt pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pantrypilot/receipt-scanner/internal/common"
	"github.com/pantrypilot/receipt-scanner/internal/export"
	"github.com/pantrypilot/receipt-scanner/internal/ocr"
	"github.com/pantrypilot/receipt-scanner/internal/parser"
	"github.com/pantrypilot/receipt-scanner/internal/repository"
)

// TextExtractor is the OCR seam; tests stub it so no binary is executed.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (ocr.ExtractionResult, error)
}

// Server wires the OCR extractor, the parser and the repositories behind a
// chi router.
type Server struct {
	ocr       TextExtractor
	parser    *parser.Parser
	receipts  *repository.ReceiptRepository
	pantry    *repository.PantryRepository
	exporter  *export.Service
	uploadDir string
	logger    *slog.Logger
}

func New(
	extractor TextExtractor,
	p *parser.Parser,
	receipts *repository.ReceiptRepository,
	pantry *repository.PantryRepository,
	exporter *export.Service,
	uploadDir string,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		ocr:       extractor,
		parser:    p,
		receipts:  receipts,
		pantry:    pantry,
		exporter:  exporter,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/categories", s.handleCategories)
		r.Route("/receipts", func(r chi.Router) {
			r.Post("/upload", s.handleReceiptUpload)
			r.Post("/save", s.handleReceiptSave)
		})
		r.Route("/pantry", func(r chi.Router) {
			r.Get("/", s.handlePantryList)
			r.Get("/export", s.handlePantryExport)
			r.Delete("/{id}", s.handlePantryDelete)
		})
	})
	return r
}

// requestID tags every request with a req_id and logs the outcome.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := common.WithRequestID(r.Context(), reqID)
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		s.logger.Info("http.request",
			"req_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("http.encode_response", "error", err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := common.HTTPStatus(err)
	s.logger.Warn("http.error",
		"req_id", common.RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"status", status,
		"error", err.Error(),
	)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
