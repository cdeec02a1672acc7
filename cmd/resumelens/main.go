// Package main is the ResumeLens CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/resumelens/resumelens/internal/analyze"
	"github.com/resumelens/resumelens/internal/assemble"
	"github.com/resumelens/resumelens/internal/config"
	"github.com/resumelens/resumelens/internal/export"
	"github.com/resumelens/resumelens/internal/extract"
	"github.com/resumelens/resumelens/internal/models"
	"github.com/resumelens/resumelens/internal/scoring"
	"github.com/resumelens/resumelens/internal/scoring/gemini"
	"github.com/resumelens/resumelens/internal/server"
	"github.com/resumelens/resumelens/internal/storage"
	"github.com/resumelens/resumelens/internal/watcher"
	"github.com/resumelens/resumelens/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/resumelens/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development); if that exists it is used,
// so that "resumelens server" from the project dir uses the project's config.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "analyze":
		runAnalyze()
	case "batch":
		runBatch()
	case "history":
		runHistory()
	case "export":
		runExport()
	case "version", "--version", "-v":
		fmt.Printf("resumelens version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds the initialized pipeline pieces.
type Components struct {
	Storage storage.Storage
	Service *analyze.Service
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, withStore bool) (*Components, error) {
	var store storage.Storage
	if withStore {
		s, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		store = s
	}

	strategy, err := buildStrategy(cfg, logger)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}

	extractor := extract.NewExtractor(cfg.Analysis.ExtractTimeout)
	service := analyze.NewService(extractor, strategy, store, logger)

	return &Components{Storage: store, Service: service}, nil
}

func buildStrategy(cfg *config.Config, logger *zap.Logger) (scoring.Strategy, error) {
	switch cfg.Analysis.Strategy {
	case "", "heuristic":
		return assemble.NewHeuristic(scoring.DefaultWeights()), nil
	case "gemini":
		generator, err := gemini.NewGenerator(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini: %w", err)
		}
		return gemini.NewStrategy(generator, logger, 0), nil
	default:
		return nil, fmt.Errorf("unknown analysis strategy %q (use heuristic or gemini)", cfg.Analysis.Strategy)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (file events, extraction details, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
		zap.String("strategy", cfg.Analysis.Strategy),
	)

	components, err := initializeComponents(cfg, logger, true)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()

	var watchSvc *watcher.Watcher
	if len(cfg.Watch.Directories) > 0 {
		jd, err := os.ReadFile(cfg.Watch.JobDescriptionPath)
		if err != nil {
			logger.Fatal("Failed to read job description for watch mode",
				zap.String("path", cfg.Watch.JobDescriptionPath), zap.Error(err))
		}
		runner := watcher.NewRunner(components.Service, string(jd), cfg.Analysis.Workers, logger)

		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.NewWatcher(
			cfg.Watch.Directories,
			cfg.Watch.Extensions,
			cfg.Watch.RecursiveOrDefault(),
			func(path string) {
				if _, err := runner.AnalyzeOne(watchCtx, path); err != nil {
					logger.Warn("watch analyze failed", zap.String("path", path), zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		watchSvc.SyncExistingFiles()
	}

	srv := server.NewServer(components.Service, components.Storage, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	jdPath := fs.String("jd", "", "job description file path (required)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	noSave := fs.Bool("no-save", false, "do not record the analysis in history")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 || *jdPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: resumelens analyze --jd <job-description-file> <resume-file>")
		os.Exit(1)
	}
	resumePath := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, !*noSave)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	jd, err := os.ReadFile(*jdPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read job description: %v\n", err)
		os.Exit(1)
	}
	content, err := os.ReadFile(resumePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read resume: %v\n", err)
		os.Exit(1)
	}

	rec, err := components.Service.AnalyzeFile(context.Background(), resumePath, content, string(jd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rec)
	default:
		printResult(rec)
	}
}

func runBatch() {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	jdPath := fs.String("jd", "", "job description file path (required)")
	outPath := fs.String("out", "", "Excel report output path (default: <export.output_dir>/report-<date>.xlsx)")
	workers := fs.Int("workers", 0, "concurrent analyses (default from config)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 || *jdPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: resumelens batch --jd <job-description-file> <directory>")
		os.Exit(1)
	}
	dir := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	jd, err := os.ReadFile(*jdPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read job description: %v\n", err)
		os.Exit(1)
	}

	paths, err := watcher.ScanDirectory(dir, cfg.Watch.Extensions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to scan directory: %v\n", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "No resumes found in %s (extensions: %s)\n", dir, strings.Join(cfg.Watch.Extensions, ", "))
		os.Exit(1)
	}

	n := cfg.Analysis.Workers
	if *workers > 0 {
		n = *workers
	}
	runner := watcher.NewRunner(components.Service, string(jd), n, logger)
	results := runner.AnalyzePaths(context.Background(), paths)

	var records []*models.AnalysisRecord
	skipped := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "Skipped %s: %v\n", res.Path, res.Err)
			skipped++
			continue
		}
		records = append(records, res.Record)
	}

	out := *outPath
	if out == "" {
		out = filepath.Join(cfg.Export.OutputDir, fmt.Sprintf("report-%s.xlsx", time.Now().Format("2006-01-02-150405")))
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create report directory: %v\n", err)
			os.Exit(1)
		}
	}
	if err := export.WriteReport(records, skipped, out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Analyzed %d resumes (%d skipped); report written to %s\n", len(records), skipped, out)
	for i, rec := range records {
		fmt.Printf("%3d. %-40s %d\n", i+1, rec.ResumeName, rec.Result.ATSScore)
	}
}

func runHistory() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	limit := fs.Int("limit", 20, "number of records to list")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	ctx := context.Background()

	if fs.NArg() > 0 {
		rec, err := store.GetAnalysis(ctx, fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load analysis: %v\n", err)
			os.Exit(1)
		}
		if *outputFormat == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(rec)
			return
		}
		printResult(rec)
		return
	}

	recs, err := store.ListAnalyses(ctx, 0, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list history: %v\n", err)
		os.Exit(1)
	}
	if *outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(recs)
		return
	}
	if len(recs) == 0 {
		fmt.Println("No analyses recorded.")
		return
	}
	for _, rec := range recs {
		marker := ""
		if rec.PreviousID != "" {
			marker = " (re-analysis)"
		}
		fmt.Printf("%s  %-30s score %2d  %s%s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"), rec.ResumeName, rec.Result.ATSScore, rec.ID, marker)
	}
}

// runExport regenerates an Excel report from stored history, without
// re-analyzing anything.
func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	limit := fs.Int("limit", 100, "number of most recent analyses to include")
	outPath := fs.String("out", "", "Excel report output path (default: <export.output_dir>/history-<date>.xlsx)")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	recs, err := store.ListAnalyses(context.Background(), 0, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list history: %v\n", err)
		os.Exit(1)
	}
	if len(recs) == 0 {
		fmt.Fprintln(os.Stderr, "No analyses recorded; nothing to export.")
		os.Exit(1)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Result.ATSScore > recs[j].Result.ATSScore
	})

	out := *outPath
	if out == "" {
		out = filepath.Join(cfg.Export.OutputDir, fmt.Sprintf("history-%s.xlsx", time.Now().Format("2006-01-02-150405")))
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create report directory: %v\n", err)
			os.Exit(1)
		}
	}
	if err := export.WriteReport(recs, 0, out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write report: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d analyses to %s\n", len(recs), out)
}

func printResult(rec *models.AnalysisRecord) {
	r := rec.Result
	fmt.Printf("%s: ATS score %d/100\n\n", rec.ResumeName, r.ATSScore)
	fmt.Printf("Sections: skills %d, experience %d, projects %d, role fit %d\n\n",
		r.SectionScores.Skills, r.SectionScores.Experience, r.SectionScores.Projects, r.SectionScores.RoleAlignment)
	if len(r.MatchedKeywords) > 0 {
		fmt.Printf("Matched:  %s\n", strings.Join(r.MatchedKeywords, ", "))
	}
	if len(r.MissingKeywords) > 0 {
		fmt.Printf("Missing:  %s\n", strings.Join(r.MissingKeywords, ", "))
	}
	if len(r.WeakKeywords) > 0 {
		fmt.Printf("Add first: %s\n", strings.Join(r.WeakKeywords, ", "))
	}
	if len(r.ImprovementSuggestions) > 0 {
		fmt.Println("\nSuggestions:")
		for _, s := range r.ImprovementSuggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	if len(r.OptimizedBullets) > 0 {
		fmt.Println("\nOptimized bullets:")
		for _, b := range r.OptimizedBullets {
			fmt.Printf("  - %s\n", b)
		}
	}
}

func printUsage() {
	fmt.Println(`resumelens - resume vs job description analysis

Usage:
  resumelens server [flags]                      Start the HTTP server
  resumelens analyze [flags] <resume-file>       Analyze one resume
  resumelens batch [flags] <directory>           Analyze a directory, write Excel report
  resumelens history [flags] [id]                Show stored analyses
  resumelens export [flags]                      Write an Excel report from stored history
  resumelens version                             Show version
  resumelens help                                Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/resumelens/config.yaml)
  --debug            Enable debug logging (file events, extraction details, etc.)

Analyze Flags:
  --config string    Config file path
  --jd string        Job description file path (required)
  --output string    Output format: text or json (default: text)
  --no-save          Do not record the analysis in history

Batch Flags:
  --config string    Config file path
  --jd string        Job description file path (required)
  --out string       Excel report output path
  --workers int      Concurrent analyses (default from config)

History Flags:
  --config string    Config file path
  --limit int        Number of records to list (default: 20)
  --output string    Output format: text or json (default: text)

Export Flags:
  --config string    Config file path
  --limit int        Number of most recent analyses to include (default: 100)
  --out string       Excel report output path

Examples:
  resumelens server
  resumelens analyze --jd posting.txt resume.pdf
  resumelens analyze --jd posting.txt --output json resume.docx
  resumelens batch --jd posting.txt ./applicants
  resumelens history
  resumelens history 7b4c1f2e-...
  resumelens export --out candidates.xlsx`)
}
