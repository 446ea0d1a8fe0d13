package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"recovres/internal"
	"recovres/internal/config"
	"recovres/internal/registry"
	"recovres/internal/source"
	"recovres/internal/storage"
)

type DocumentFetcher interface {
	Fetch(ctx context.Context) (source.Document, error)
}

type ProcessingService struct {
	db       *storage.DB
	cfg      config.Config
	fetcher  DocumentFetcher
	notifier *Notifier
	log      *logrus.Logger
	extract  func(content []byte, mode string) ([]string, error)
}

func NewProcessingService(db *storage.DB, cfg config.Config, fetcher DocumentFetcher, log *logrus.Logger) *ProcessingService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &ProcessingService{db: db, cfg: cfg, fetcher: fetcher, log: log, extract: ExtractLines}
	if strings.TrimSpace(cfg.NotifyOutboxDir) != "" && strings.TrimSpace(cfg.NotifyTo) != "" {
		s.notifier = NewNotifier(cfg.NotifyOutboxDir, cfg.NotifyFrom, cfg.NotifyTo)
	}
	return s
}

type RunOptions struct {
	Force          bool
	TracksCapacity bool
	OutputPath     string
	XLSX           bool
}

type RunResult struct {
	Changed          bool
	Skipped          bool
	RunID            int
	TraceID          string
	Lines            int
	Records          int
	OutputPath       string
	XLSXPath         string
	NotificationPath string
}

// ParseLines runs the normalizer and the accumulator over raw extracted lines.
func ParseLines(raw []string, tracksCapacity bool) ([]internal.Record, []string) {
	opts := registry.Options{TracksCapacity: tracksCapacity}
	cleaned := registry.Normalize(raw, opts)
	return registry.Accumulate(cleaned, opts), cleaned
}

// Run acquires the registry and, when it changed or Force is set, parses it,
// stores the run and writes the CSV export.
func (s *ProcessingService) Run(ctx context.Context, opts RunOptions) (RunResult, error) {
	start := time.Now()
	doc, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return RunResult{}, err
	}
	fetchMs := float64(time.Since(start).Milliseconds())

	log := s.log.WithFields(logrus.Fields{"origin": doc.Origin, "hash": doc.Hash, "changed": doc.Changed})
	if !doc.Changed && !opts.Force {
		log.Info("no new data")
		return RunResult{Skipped: true}, nil
	}

	parseStart := time.Now()
	raw, err := s.extract(doc.Bytes, s.cfg.ExtractMode)
	if err != nil {
		return RunResult{}, fmt.Errorf("extract registry text: %w", err)
	}
	records, cleaned := ParseLines(raw, opts.TracksCapacity)
	parseMs := float64(time.Since(parseStart).Milliseconds())

	docID, err := s.db.InsertDocument(internal.DocumentRow{
		Origin:    doc.Origin,
		Hash:      doc.Hash,
		Size:      len(doc.Bytes),
		RawRef:    doc.CachePath,
		Changed:   doc.Changed,
		FetchedAt: doc.FetchedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return RunResult{}, err
	}

	outputPath := opts.OutputPath
	if strings.TrimSpace(outputPath) == "" {
		outputPath = filepath.Join(s.cfg.OutputDir, fmt.Sprintf("output-%d.csv", doc.FetchedAt.Unix()))
	}
	if err := ExportRecordsCSV(records, opts.TracksCapacity, s.cfg.CSVStrictQuoting, outputPath); err != nil {
		return RunResult{}, err
	}

	result := RunResult{
		Changed:    doc.Changed,
		TraceID:    uuid.NewString(),
		Lines:      len(cleaned),
		Records:    len(records),
		OutputPath: outputPath,
	}
	if opts.XLSX {
		result.XLSXPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".xlsx"
		if err := ExportRecordsXLSX(records, opts.TracksCapacity, result.XLSXPath); err != nil {
			return RunResult{}, err
		}
	}

	timings := map[string]float64{
		"fetchMs": fetchMs,
		"parseMs": parseMs,
		"totalMs": float64(time.Since(start).Milliseconds()),
	}
	result.RunID, err = s.db.InsertRun(internal.RunRow{
		TraceID:        result.TraceID,
		DocumentID:     docID,
		TracksCapacity: opts.TracksCapacity,
		LineCount:      len(cleaned),
		OutputPath:     outputPath,
	}, timings, records)
	if err != nil {
		return RunResult{}, err
	}
	_ = s.db.SetMetadata("registry.last_hash", doc.Hash)
	_ = s.db.SetMetadata("registry.last_run", result.TraceID)

	if doc.Changed && s.notifier != nil {
		path, err := s.notifier.Notify(ChangeNotice{
			TraceID:    result.TraceID,
			Origin:     doc.Origin,
			Hash:       doc.Hash,
			Records:    len(records),
			FetchedAt:  doc.FetchedAt,
			OutputPath: outputPath,
		})
		if err != nil {
			log.WithError(err).Warn("change notification not written")
		} else {
			result.NotificationPath = path
		}
	}

	log.WithFields(logrus.Fields{
		"run":     result.TraceID,
		"lines":   result.Lines,
		"records": result.Records,
		"output":  outputPath,
	}).Info("registry parsed")
	return result, nil
}

// ExportRun rewrites a stored run as CSV or XLSX, chosen by the file extension.
func (s *ProcessingService) ExportRun(runID int, outputPath string) (int, error) {
	run, err := s.db.MustRun(runID)
	if err != nil {
		return 0, err
	}
	records, err := s.db.GetRunRecords(run.ID)
	if err != nil {
		return 0, err
	}
	if strings.EqualFold(filepath.Ext(outputPath), ".xlsx") {
		if err := ExportRecordsXLSX(records, run.TracksCapacity, outputPath); err != nil {
			return 0, err
		}
		return len(records), nil
	}
	if err := ExportRecordsCSV(records, run.TracksCapacity, s.cfg.CSVStrictQuoting, outputPath); err != nil {
		return 0, err
	}
	// The run remembers its most recent CSV.
	if err := s.db.SetRunOutput(run.ID, outputPath); err != nil {
		return 0, err
	}
	return len(records), nil
}
