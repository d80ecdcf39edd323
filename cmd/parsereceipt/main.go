// Command parsereceipt parses receipt text (a file argument or stdin) and
// prints the extracted items as JSON. Useful for tuning the pattern tables
// against real receipts without running the full service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/pantrypilot/receipt-scanner/internal/common"
	"github.com/pantrypilot/receipt-scanner/internal/llm"
	"github.com/pantrypilot/receipt-scanner/internal/llm/openai"
	"github.com/pantrypilot/receipt-scanner/internal/parser"
)

func main() {
	useLLM := flag.Bool("llm", false, "use the OpenAI-assisted primary parser (needs OPENAI_API_KEY)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	text, err := readInput(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "read input:", err)
		os.Exit(1)
	}

	var extractor llm.ItemExtractor
	if *useLLM {
		_ = godotenv.Load()
		cfg := common.LoadConfig()
		client, err := openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			Model:       cfg.LLM.Model,
			BaseURL:     cfg.LLM.BaseURL,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "llm client:", err)
			os.Exit(1)
		}
		extractor = client
	}

	p := parser.New(parser.DefaultConfig(), extractor, logger)
	items := p.ParseReceiptItems(context.Background(), text)

	out := struct {
		Store string              `json:"store"`
		Items []parser.ParsedItem `json:"items"`
	}{
		Store: string(parser.IdentifyStore(text)),
		Items: items,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		os.Exit(1)
	}
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
