// =============================================================================
// Receipt Analyzer - Converter Module
// =============================================================================
//
// This module runs the batch pipeline over every receipt in the input
// directory.
//
// PIPELINE:
//   1. Discover receipt documents in the input directory
//   2. For each document (bounded by max_concurrency):
//      a. Read and normalize its text
//      b. Extract the record and its error flag
//      c. Synthesize the canonical file name
//      d. Check the record and log what needs review
//   3. In discovery order:
//      a. Copy valid receipts to the output directory under the new name
//      b. Collect the text of errored receipts for the error log
//   4. Sort the records by (purchase date, order number)
//   5. Write the table and the error log
//
// FAILURE ISOLATION:
//   A field that cannot be extracted only marks its record. A document that
//   cannot be read, or whose copy fails, is skipped and reported unless
//   fail_fast is set, in which case the run stops with that error. Failing to
//   write the table or the error log always stops the run.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/receipt-analyzer/internal/config"
	"github.com/ginjaninja78/receipt-analyzer/internal/receipt"
	"github.com/ginjaninja78/receipt-analyzer/internal/tablewriter"
	"github.com/ginjaninja78/receipt-analyzer/internal/textsource"
	"github.com/ginjaninja78/receipt-analyzer/internal/validation"
	"github.com/ginjaninja78/receipt-analyzer/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Document is the outcome of processing one input document.
type Document struct {
	// Path is the input document path.
	Path string

	// Text is the normalized text the record was extracted from.
	Text string

	// Result is the extracted record, with SourceFile and FileName set.
	Result receipt.Result

	// Issues lists what the record checks found.
	Issues []*validation.ValidationError

	// Err is set when the document could not be read.
	Err error
}

// Failure is a document skipped because of an I/O error.
type Failure struct {
	Path string
	Err  error
}

// Report summarizes a run.
type Report struct {
	// RunID identifies the run in the logs.
	RunID string

	// StartedAt is the run's start time; artifacts are named after it.
	StartedAt time.Time

	// Documents is the number of discovered documents.
	Documents int

	// Records holds one record per readable document, sorted.
	Records []receipt.Record

	// Errored is the number of records with the error flag set.
	Errored int

	// Copied is the number of receipts copied under their new name.
	Copied int

	// Failures lists documents that hit an I/O error.
	Failures []Failure

	// TotalSpend is the sum of every extracted total amount.
	TotalSpend decimal.Decimal

	// TablePath and ErrorLogPath are empty when nothing was written.
	TablePath    string
	ErrorLogPath string
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs the receipt pipeline.
type Converter struct {
	cfg    *config.MainConfig
	source textsource.Source
	files  *utils.FileManager
	log    zerolog.Logger
	now    func() time.Time
}

// New creates a new Converter.
//
// PARAMETERS:
//   - cfg: The run configuration.
//   - source: Yields the normalized text of a document.
//   - log: The run logger.
func New(cfg *config.MainConfig, source textsource.Source, log zerolog.Logger) *Converter {
	return &Converter{
		cfg:    cfg,
		source: source,
		files:  utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.ReportDir),
		log:    log,
		now:    time.Now,
	}
}

// =============================================================================
// SINGLE DOCUMENT
// =============================================================================

// ProcessDocument reads one document and extracts its record.
//
// RETURNS:
//   - The document outcome. Document.Err is set, and the record is empty,
//     when the text could not be read.
func (c *Converter) ProcessDocument(ctx context.Context, path string) Document {
	doc := Document{Path: path}
	name := filepath.Base(path)

	text, err := c.source.Text(ctx, path)
	if err != nil {
		doc.Err = fmt.Errorf("failed to read %s: %w", name, err)
		return doc
	}
	doc.Text = text

	res := receipt.Extract(text)
	res.Record.SourceFile = name
	res.Record.FileName = receipt.SynthesizeFileName(res.Record)
	if !res.Record.FileName.OK() {
		// An unnamed record needs the same manual review as a missing field.
		res.HadError = true
	}
	doc.Result = res
	doc.Issues = validation.Check(res)

	log := c.log.With().Str("file", name).Logger()
	if res.DroppedPayments > 0 {
		log.Debug().Int("dropped", res.DroppedPayments).Msg("ignored payment lines past the third")
	}
	if res.HadError {
		log.Warn().
			Strs("fields", validation.Fields(doc.Issues)).
			Str("new_name", res.Record.FileName.String()).
			Msg("extraction incomplete")
	} else {
		log.Debug().Str("new_name", res.Record.FileName.String()).Msg("extracted")
	}

	return doc
}

// =============================================================================
// BATCH
// =============================================================================

// Run processes every document of the input directory.
//
// RETURNS:
//   - The run report.
//   - An error if discovery, the table or the error log fails, if the
//     context is cancelled, or if fail_fast is set and a document fails.
func (c *Converter) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:      uuid.NewString(),
		StartedAt:  c.now(),
		TotalSpend: decimal.Zero,
	}
	log := c.log.With().Str("run_id", report.RunID).Logger()

	// =========================================================================
	// STEP 1: DISCOVER INPUT FILES
	// =========================================================================

	paths, err := c.files.DiscoverInputFiles(c.cfg.FilePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to discover input files: %w", err)
	}
	report.Documents = len(paths)
	log.Info().Int("documents", len(paths)).Str("input_dir", c.cfg.InputDir).Msg("discovered receipts")

	// =========================================================================
	// STEP 2: EXTRACT
	// =========================================================================
	// Documents are independent. Outcomes are stored by index so the
	// aggregate keeps discovery order whatever the concurrency.

	docs := make([]Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.MaxConcurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			docs[i] = c.ProcessDocument(gctx, path)
			if docs[i].Err != nil && c.cfg.FailFast {
				return docs[i].Err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 3: AGGREGATE AND COPY
	// =========================================================================

	var errorLog []utils.ErrorLogEntry
	for _, doc := range docs {
		if doc.Err != nil {
			log.Error().Err(doc.Err).Str("file", filepath.Base(doc.Path)).Msg("skipped unreadable document")
			report.Failures = append(report.Failures, Failure{Path: doc.Path, Err: doc.Err})
			continue
		}

		rec := doc.Result.Record
		report.Records = append(report.Records, rec)

		if total, ok := rec.TotalAmount.Get(); ok {
			if amount, err := decimal.NewFromString(total); err == nil {
				report.TotalSpend = report.TotalSpend.Add(amount)
			}
		}

		if doc.Result.HadError {
			report.Errored++
			errorLog = append(errorLog, utils.ErrorLogEntry{FileName: rec.SourceFile, Text: doc.Text})
		}

		newName, ok := rec.FileName.Get()
		if !ok || c.cfg.DryRun {
			continue
		}
		dst, err := c.files.CopyToOutput(doc.Path, newName)
		if err != nil {
			if c.cfg.FailFast {
				return nil, err
			}
			log.Error().Err(err).Str("file", rec.SourceFile).Msg("copy failed")
			report.Failures = append(report.Failures, Failure{Path: doc.Path, Err: err})
			continue
		}
		report.Copied++
		log.Debug().Str("file", rec.SourceFile).Str("copy", dst).Msg("copied")
	}

	// =========================================================================
	// STEP 4: SORT
	// =========================================================================

	receipt.SortRecords(report.Records)

	// =========================================================================
	// STEP 5: WRITE TABLE AND ERROR LOG
	// =========================================================================

	if c.cfg.DryRun {
		log.Info().Msg("dry run, nothing written")
		return report, nil
	}

	report.TablePath, err = tablewriter.Write(c.cfg.ReportDir, c.cfg.TableFormat, report.StartedAt, report.Records)
	if err != nil {
		return nil, fmt.Errorf("failed to write table: %w", err)
	}
	log.Info().Str("path", report.TablePath).Int("rows", len(report.Records)).Msg("wrote table")

	report.ErrorLogPath, err = c.files.WriteErrorLog(errorLog, report.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to write error log: %w", err)
	}
	if report.ErrorLogPath != "" {
		log.Info().Str("path", report.ErrorLogPath).Int("documents", len(errorLog)).Msg("wrote error log")
	}

	return report, nil
}
