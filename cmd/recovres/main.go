package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"recovres/internal/config"
	"recovres/internal/listener"
	"recovres/internal/pipeline"
	"recovres/internal/source"
	"recovres/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	log := cfg.Logger()

	cmd := os.Args[1]
	switch cmd {
	case "fetch":
		doc, err := source.NewFetcher(cfg, log).Fetch(context.Background())
		must(err)
		fmt.Printf("fetched origin=%s bytes=%d changed=%t sha256=%s\n", doc.Origin, len(doc.Bytes), doc.Changed, doc.Hash)
		return
	case "parse":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "registry .pdf or .txt line dump")
		capacity := fs.Bool("capacity", cfg.TrackCapacity, "track Max Residents")
		out := fs.String("out", "", "output csv path (default stdout)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		records, _, err := pipeline.ParseFile(*input, cfg.ExtractMode, *capacity)
		must(err)
		if strings.TrimSpace(*out) == "" {
			must(pipeline.WriteCSV(os.Stdout, records, *capacity, cfg.CSVStrictQuoting))
			return
		}
		must(pipeline.ExportRecordsCSV(records, *capacity, cfg.CSVStrictQuoting, *out))
		fmt.Printf("parsed %d records to %s\n", len(records), *out)
		return
	case "lines":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "registry .pdf or .txt line dump")
		capacity := fs.Bool("capacity", cfg.TrackCapacity, "track Max Residents")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		_, cleaned, err := pipeline.ParseFile(*input, cfg.ExtractMode, *capacity)
		must(err)
		for _, line := range cleaned {
			fmt.Println(line)
		}
		return
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	processor := pipeline.NewProcessingService(db, cfg, source.NewFetcher(cfg, log), log)

	switch cmd {
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		force := fs.Bool("force", false, "parse even when the registry is unchanged")
		capacity := fs.Bool("capacity", cfg.TrackCapacity, "track Max Residents")
		out := fs.String("out", "", "output csv path")
		xlsx := fs.Bool("xlsx", cfg.ExportXLSX, "also write an xlsx next to the csv")
		_ = fs.Parse(os.Args[2:])
		res, err := processor.Run(context.Background(), pipeline.RunOptions{
			Force:          *force,
			TracksCapacity: *capacity,
			OutputPath:     *out,
			XLSX:           *xlsx,
		})
		must(err)
		if res.Skipped {
			fmt.Println("no new data")
			return
		}
		fmt.Printf("run done id=%d lines=%d records=%d output=%s\n", res.RunID, res.Lines, res.Records, res.OutputPath)
	case "runs":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 20, "max runs")
		_ = fs.Parse(os.Args[2:])
		runs, err := db.ListRuns(*limit)
		must(err)
		for _, r := range runs {
			fmt.Printf("%d\t%s\t%s\tcapacity=%t\tlines=%d\trecords=%d\t%s\n",
				r.ID, r.CreatedAt, r.TraceID, r.TracksCapacity, r.LineCount, r.RecordCount, r.OutputPath)
		}
	case "export:csv", "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		runID := fs.Int("runId", 0, "run id (default latest)")
		out := fs.String("out", "", "output path")
		_ = fs.Parse(os.Args[2:])
		if *runID == 0 {
			latest, err := db.LatestRun()
			must(err)
			if latest == nil {
				must(fmt.Errorf("no runs stored yet"))
			}
			*runID = latest.ID
		}
		ext := strings.TrimPrefix(cmd, "export:")
		if strings.TrimSpace(*out) == "" {
			*out = filepath.Join(cfg.OutputDir, fmt.Sprintf("run-%d.%s", *runID, ext))
		}
		if !strings.HasSuffix(strings.ToLower(*out), "."+ext) {
			must(fmt.Errorf("--out must end in .%s", ext))
		}
		n, err := processor.ExportRun(*runID, *out)
		must(err)
		fmt.Printf("exported %d records to %s\n", n, *out)
	case "watch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		interval := fs.Duration("interval", time.Duration(cfg.WatchIntervalSec)*time.Second, "poll interval")
		_ = fs.Parse(os.Args[2:])
		cfg.WatchIntervalSec = int(interval.Seconds())

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		must(listener.NewService(processor, cfg, log).Run(ctx))
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: recovres <command>")
	fmt.Println("commands:")
	fmt.Println("  fetch")
	fmt.Println("  run [--force] [--capacity=true] [--out=./out/output.csv] [--xlsx]")
	fmt.Println("  parse --input=./recovresdir.pdf [--capacity=true] [--out=./out/registry.csv]")
	fmt.Println("  lines --input=./recovresdir.pdf")
	fmt.Println("  runs [--limit=20]")
	fmt.Println("  export:csv [--runId=1] [--out=./out/run-1.csv]")
	fmt.Println("  export:xlsx [--runId=1] [--out=./out/run-1.xlsx]")
	fmt.Println("  watch [--interval=1h]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
