// Command scannerd runs the receipt-scanner HTTP service: upload a receipt
// photo, get parsed pantry items back, save them, export them.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pantrypilot/receipt-scanner/internal/common"
	"github.com/pantrypilot/receipt-scanner/internal/export"
	"github.com/pantrypilot/receipt-scanner/internal/llm"
	"github.com/pantrypilot/receipt-scanner/internal/llm/openai"
	"github.com/pantrypilot/receipt-scanner/internal/ocr"
	"github.com/pantrypilot/receipt-scanner/internal/parser"
	"github.com/pantrypilot/receipt-scanner/internal/repository"
	"github.com/pantrypilot/receipt-scanner/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := repository.Open(cfg.Database.Path)
	if err != nil {
		return common.WrapError(err, "open database")
	}
	defer db.Close()

	receipts := repository.NewReceiptRepository(db)
	pantry := repository.NewPantryRepository(db)

	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:           cfg.OCR.TesseractCmd,
		TesseractLang:       cfg.OCR.Languages,
		TessdataDir:         cfg.OCR.TessdataDir,
		EnableTSVConfidence: true,
	}, logger)

	// no API key -> regex-only parsing, still fully functional
	var itemExtractor llm.ItemExtractor
	if cfg.LLM.APIKey != "" {
		client, err := openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			BaseURL:     cfg.LLM.BaseURL,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		if err != nil {
			return common.WrapError(err, "init llm client")
		}
		itemExtractor = client
	} else {
		logger.Warn("OPENAI_API_KEY not set, running with regex parsing only")
	}

	p := parser.New(parser.Config{
		MinPrimaryItems: cfg.Parser.MinPrimaryItems,
		LLMTimeout:      cfg.Parser.LLMTimeout,
	}, itemExtractor, logger)

	exporter := export.NewService(pantry, cfg.Export.SheetName, logger)
	srv := server.New(extractor, p, receipts, pantry, exporter, cfg.Server.UploadDir, logger)

	httpSrv := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server.listening", "addr", cfg.Server.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return common.WrapError(err, "http server")
	case sig := <-stop:
		logger.Info("server.shutdown", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		return common.WrapError(err, "shutdown")
	}
	return nil
}
