// Command dispatch sends a batch of work items read from a JSON or XLSX file
// to the document service and prints the results.
// Usage: go run ./cmd/dispatch -variant document -items items.json [-params params.json] [-export out.xlsx]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"narrabridge/internal/config"
	"narrabridge/internal/domain"
	"narrabridge/internal/export"
	"narrabridge/internal/logging"
	"narrabridge/internal/narratheque"
	"narrabridge/internal/port"
	"narrabridge/internal/service"
	s3storage "narrabridge/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	variantFlag := flag.String("variant", string(domain.VariantDocument), "entry point: document, file, text, urls, url-batch")
	itemsPath := flag.String("items", "", "work items file (.json array or .xlsx sheet)")
	paramsPath := flag.String("params", "", "optional JSON file with batch parameters")
	policy := flag.String("policy", "", "error policy: fail_fast or collect_all (default from config)")
	token := flag.String("token", "", "document service token (overrides params and config)")
	exportPath := flag.String("export", "", "write results to a .csv or .xlsx file")
	flag.Parse()

	if *itemsPath == "" {
		flag.Usage()
		return fmt.Errorf("-items is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.SetLevel(logging.ParseLevel(cfg.Log.Level))

	variant, err := domain.ParseVariant(*variantFlag)
	if err != nil {
		return err
	}

	items, err := readItems(*itemsPath)
	if err != nil {
		return err
	}

	var params service.Params
	if *paramsPath != "" {
		raw, err := os.ReadFile(*paramsPath)
		if err != nil {
			return fmt.Errorf("reading params: %w", err)
		}
		if err := json.Unmarshal(raw, &params); err != nil {
			return fmt.Errorf("parsing params: %w", err)
		}
	}
	if *token != "" {
		params.Token = token
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var storage port.ObjectStorage
	if cfg.S3.Enabled() {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("initializing S3 client: %w", err)
		}
	}

	svc := service.NewDispatchService(narratheque.NewClient(&cfg.Narratheque), storage, nil, nil, cfg)
	resp, runErr := svc.Execute(ctx, service.BatchRequest{
		RequestID: "cli",
		Variant:   variant,
		Policy:    *policy,
		Params:    params,
		Items:     items,
	})
	if resp == nil {
		return runErr
	}

	if *exportPath != "" {
		if err := writeExport(*exportPath, resp.Results); err != nil {
			return err
		}
		log.Printf("wrote %d results to %s", len(resp.Results), *exportPath)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}

	if runErr != nil {
		return fmt.Errorf("run %s %s: %w", resp.RunID, resp.Status, runErr)
	}
	return nil
}

func readItems(path string) ([]service.BatchItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening items: %w", err)
	}
	defer func() { _ = f.Close() }()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		workItems, err := export.ReadItemsXLSX(f)
		if err != nil {
			return nil, err
		}
		items := make([]service.BatchItem, len(workItems))
		for i, w := range workItems {
			items[i] = service.BatchItem{JSON: w.JSON, Binary: w.Binary}
		}
		return items, nil
	}

	var items []service.BatchItem
	if err := json.NewDecoder(f).Decode(&items); err != nil {
		return nil, fmt.Errorf("parsing items: %w", err)
	}
	return items, nil
}

func writeExport(path string, results []domain.UploadResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return export.WriteXLSX(f, results)
	case ".csv":
		if _, err := f.Write(export.BOM); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		w := export.NewCSVWriter(f)
		if err := w.WriteHeader(); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		if err := w.WriteResults(results); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unsupported export format %q; use .csv or .xlsx", filepath.Ext(path))
	}
}
