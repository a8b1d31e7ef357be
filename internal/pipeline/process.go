package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"quotebridge/internal"
	"quotebridge/internal/config"
	"quotebridge/internal/storage"
)

// ProcessingService runs the whole pipeline for one uploaded file: stage the
// upload, locate the table, filter quote lines, price them, and write the
// upload artifact. Each run gets its own run id so concurrent requests never
// race on a shared output path.
type ProcessingService struct {
	db  *storage.DB
	cfg config.Config

	// now is swappable in tests; the validity window depends on it.
	now func() time.Time
}

func NewProcessingService(db *storage.DB, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg, now: time.Now}
}

// Params are the caller-supplied request parameters.
type Params struct {
	Reseller     string
	EndUser      string
	Currency     string
	ExchangeRate float64
	MarginPct    float64
}

// Result describes one successful run.
type Result struct {
	RunID      string
	UploadID   int64
	Rows       int
	OutputPath string
}

// ProcessFile converts one uploaded spreadsheet into a quote upload artifact.
// Every failure is terminal and recorded on the upload's bookkeeping row; no
// partial artifact is ever written.
func (s *ProcessingService) ProcessFile(filename string, blob []byte, p Params) (Result, error) {
	if err := ValidateCurrency(p.Currency); err != nil {
		return Result{}, err
	}
	if p.ExchangeRate <= 0 {
		return Result{}, fmt.Errorf("exchange rate must be positive, got %g", p.ExchangeRate)
	}

	runID := newRunID()
	uploadID, err := s.db.InsertUpload(runID, filename, p.Reseller, p.EndUser, p.Currency, p.ExchangeRate, p.MarginPct)
	if err != nil {
		return Result{}, err
	}

	if err := s.stage(filename, blob); err != nil {
		return Result{}, s.fail(uploadID, err)
	}

	records, err := s.run(filename, blob, p)
	if err != nil {
		return Result{}, s.fail(uploadID, err)
	}

	outputPath := filepath.Join(s.cfg.OutputDir, "quote-upload-"+runID+"."+s.cfg.OutputFormat)
	if s.cfg.OutputFormat == "csv" {
		err = WriteRecordsCSV(records, outputPath)
	} else {
		err = WriteRecordsXLSX(records, outputPath)
	}
	if err != nil {
		return Result{}, s.fail(uploadID, err)
	}

	if err := s.db.MarkProcessed(uploadID, len(records), outputPath); err != nil {
		return Result{}, err
	}
	log.Printf("processed upload run=%s file=%s rows=%d", runID, filename, len(records))
	return Result{RunID: runID, UploadID: uploadID, Rows: len(records), OutputPath: outputPath}, nil
}

// run is the pure part of the pipeline: grid in, records out.
func (s *ProcessingService) run(filename string, blob []byte, p Params) ([]internal.ExportRecord, error) {
	grid, err := ReadGrid(filename, blob)
	if err != nil {
		return nil, err
	}
	anchor, err := LocateHeader(grid, MarkerColumn)
	if err != nil {
		return nil, err
	}
	lines, err := FilterQuoteLines(grid, anchor)
	if err != nil {
		return nil, err
	}

	pricing := make([]internal.PricingResult, 0, len(lines))
	for _, line := range lines {
		inputs := PricingInputsFromLine(line)
		pricing = append(pricing, ComputePricing(inputs, p.Currency, p.ExchangeRate, p.MarginPct))
	}

	window := ComputeWindow(s.now(), p.Currency)
	records := BuildRecords(lines, pricing, window, BuildParams{
		Reseller:     p.Reseller,
		EndUser:      p.EndUser,
		Currency:     p.Currency,
		ExchangeRate: p.ExchangeRate,
	})
	return records, nil
}

func (s *ProcessingService) stage(filename string, blob []byte) error {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.cfg.UploadDir, filepath.Base(filename)), blob, 0o644)
}

func (s *ProcessingService) fail(uploadID int64, cause error) error {
	if err := s.db.MarkFailed(uploadID, cause.Error()); err != nil {
		log.Printf("mark upload %d failed: %v", uploadID, err)
	}
	return cause
}

func newRunID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
