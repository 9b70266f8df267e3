package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/iter"

	"codeplug-audit/internal/domain"
)

// ErrNoDocuments is returned when the input directory holds no documents.
var ErrNoDocuments = errors.New("no documents found")

// AuditUseCase orchestrates the audit of a directory of codeplugs.
type AuditUseCase struct {
	repo       DocumentRepository
	inventory  InventoryProvider
	catalog    *domain.Catalog
	evaluator  *RuleEvaluator
	talkgroups *TalkgroupChecker
	metadata   *MetadataExtractor
	assembler  *ReportAssembler
	workers    int
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures an AuditUseCase.
type Option func(*AuditUseCase)

// WithInventory enriches the report with the provider's asset records.
func WithInventory(p InventoryProvider) Option {
	return func(uc *AuditUseCase) { uc.inventory = p }
}

// WithWorkers bounds how many documents are evaluated at once.
func WithWorkers(n int) Option {
	return func(uc *AuditUseCase) {
		if n > 0 {
			uc.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(uc *AuditUseCase) { uc.logger = l }
}

// NewAuditUseCase creates a new instance of the usecase.
func NewAuditUseCase(repo DocumentRepository, catalog *domain.Catalog, opts ...Option) *AuditUseCase {
	uc := &AuditUseCase{
		repo:    repo,
		catalog: catalog,
		workers: 1,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	uc.evaluator = NewRuleEvaluator(catalog, uc.logger)
	uc.talkgroups = NewTalkgroupChecker(catalog.Talkgroups, uc.logger)
	uc.metadata = NewMetadataExtractor(catalog.Metadata, uc.logger)
	uc.assembler = NewReportAssembler(catalog.Metadata)
	return uc
}

// Audit checks every document found in dir and assembles the report.
func (uc *AuditUseCase) Audit(ctx context.Context, dir string) (*domain.AuditReport, error) {
	// Step 1: Discovery
	paths, err := uc.repo.Discover(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("could not discover documents: %w", err)
	}
	if len(paths) == 0 {
		return nil, ErrNoDocuments
	}
	uc.logger.Info("documents found", "dir", dir, "count", len(paths))

	// Step 2: Inventory, fetched once before any document is processed
	assets := uc.fetchInventory(ctx)

	// Step 3: Per-document evaluation; results keep the input order
	mapper := iter.Mapper[string, domain.FileResult]{MaxGoroutines: uc.workers}
	results := mapper.Map(paths, func(path *string) domain.FileResult {
		return uc.auditFile(ctx, *path)
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 4: Assembly
	index := domain.NewAssetIndex(assets)
	report := &domain.AuditReport{
		Files: results,
		Rows:  uc.assembler.Assemble(results, index),
		Summary: domain.Summary{
			RunID:           uuid.NewString(),
			GeneratedAt:     uc.now().UTC(),
			FilesProcessed:  len(results),
			InventoryAssets: len(index),
		},
	}
	for _, sys := range uc.catalog.Metadata.Systems {
		report.Systems = append(report.Systems, sys.Name)
	}
	for _, res := range results {
		if res.ParseError != "" {
			report.Summary.ParseErrors++
		}
		if !res.Clean() {
			report.Summary.FilesWithIssues++
		}
		report.Summary.Discrepancies += len(res.Discrepancies)
		if _, ok := index.Find(res.File.Serial); ok {
			report.Summary.InventoryMatched++
		}
	}
	report.Summary.AllFilesCompliant = report.Summary.FilesWithIssues == 0

	return report, nil
}

// auditFile runs every check against one document. A document that cannot be
// loaded yields only a parse error.
func (uc *AuditUseCase) auditFile(ctx context.Context, path string) domain.FileResult {
	res := domain.FileResult{
		File:     domain.NewFileInfo(path, uc.catalog.Profiles),
		Metadata: domain.FileMetadata{Alias: domain.UnknownValue},
	}
	log := uc.logger.With("file", res.File.Name)

	if err := ctx.Err(); err != nil {
		res.ParseError = err.Error()
		return res
	}

	doc, err := uc.repo.Load(ctx, path)
	if err != nil {
		log.Warn("could not parse document", "error", err)
		res.ParseError = err.Error()
		return res
	}

	res.Metadata = uc.metadata.Extract(doc)
	res.Discrepancies = append(res.Discrepancies, uc.evaluator.EvaluateAll(doc, res.File.Profile.DeviceType)...)
	res.Discrepancies = append(res.Discrepancies, uc.talkgroups.Validate(doc)...)

	log.Debug("document checked", "alias", res.Metadata.Alias, "discrepancies", len(res.Discrepancies))
	return res
}

func (uc *AuditUseCase) fetchInventory(ctx context.Context) []domain.Asset {
	if uc.inventory == nil {
		return nil
	}
	assets, err := uc.inventory.Assets(ctx)
	if err != nil {
		uc.logger.Warn("inventory unavailable, continuing without it", "error", err)
		return nil
	}
	uc.logger.Info("inventory loaded", "assets", len(assets))
	return assets
}
