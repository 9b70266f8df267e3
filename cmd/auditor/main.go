package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"codeplug-audit/internal/catalog"
	"codeplug-audit/internal/cli"
	"codeplug-audit/internal/config"
	"codeplug-audit/internal/domain"
	"codeplug-audit/internal/gateway"
	"codeplug-audit/internal/logger"
	"codeplug-audit/internal/usecase"
)

func main() {
	opt, err := cli.Parse(os.Args[1:])
	if err != nil {
		if cli.IsHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, err := config.Load(opt.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	opt.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Error("audit failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}

	// --- Dependency Injection (Wiring the application) ---

	// 1. Create the gateways
	repo, err := gateway.NewXMLDocumentRepository(cfg.Pattern)
	if err != nil {
		return err
	}
	inventory, err := newInventory(cfg, log)
	if err != nil {
		return err
	}

	// 2. Create the usecase and inject the gateways
	opts := []usecase.Option{usecase.WithWorkers(cfg.Workers), usecase.WithLogger(log)}
	if inventory != nil {
		opts = append(opts, usecase.WithInventory(inventory))
	}
	auditUseCase := usecase.NewAuditUseCase(repo, rules, opts...)

	// --- Execute the Usecase ---
	report, err := auditUseCase.Audit(ctx, cfg.InputDir)
	if errors.Is(err, usecase.ErrNoDocuments) {
		fmt.Printf("No files matching %s found in %s.\n", cfg.Pattern, cfg.InputDir)
		return nil
	}
	if err != nil {
		return err
	}

	// --- Present the Output ---
	if err := gateway.NewCSVReportWriter().Write(cfg.Output, report); err != nil {
		return err
	}
	printOutcome(report, cfg.Output)

	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON summary: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

func loadCatalog(path string) (*domain.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// newInventory returns nil when no inventory source is configured.
func newInventory(cfg *config.Config, log *slog.Logger) (usecase.InventoryProvider, error) {
	if !cfg.InventoryEnabled() {
		return nil, nil
	}

	var remote, local usecase.InventoryProvider
	if cfg.Inventory.URL != "" {
		client, err := gateway.NewHTTPInventoryClient(gateway.InventoryClientConfig{
			BaseURL:  cfg.Inventory.URL,
			Token:    cfg.Inventory.Token,
			PageSize: cfg.Inventory.PageSize,
			Timeout:  cfg.Inventory.Timeout,
		})
		if err != nil {
			return nil, err
		}
		remote = client
	}
	if cfg.Inventory.File != "" {
		local = gateway.NewCSVInventoryFile(cfg.Inventory.File)
	}
	return usecase.NewFallbackInventory(remote, local, log), nil
}

func printOutcome(report *domain.AuditReport, output string) {
	s := report.Summary
	if s.AllFilesCompliant {
		fmt.Printf("All %d files passed every check. Report written to %s.\n", s.FilesProcessed, output)
		return
	}
	fmt.Printf("Checked %d files: %d with issues, %d discrepancies, %d unreadable. See %s.\n",
		s.FilesProcessed, s.FilesWithIssues, s.Discrepancies, s.ParseErrors, output)
}
