// Package main provides the Waylight command-line tool: trip analytics
// reporting, the REST API server, database migrations, and backups.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/waylightapp/waylight/internal/api"
	"github.com/waylightapp/waylight/internal/config"
	"github.com/waylightapp/waylight/internal/export"
	"github.com/waylightapp/waylight/internal/lightninglane"
	"github.com/waylightapp/waylight/internal/planning"
	"github.com/waylightapp/waylight/internal/storage"
	"github.com/waylightapp/waylight/internal/storage/repository"
)

var (
	// Application mode flags
	debugMode      = flag.Bool("debug-mode", false, "Enable verbose debug logging")
	debugModeShort = flag.Bool("d", false, "Enable debug logging (shorthand for -debug-mode)")

	// Database configuration flags
	dbPath = flag.String("db-path", "", "Path to the SQLite database (default: ~/.waylight/waylight.db)")

	// API server flags
	serve   = flag.Bool("serve", false, "Run the REST API server")
	apiPort = flag.Int("api-port", 0, "API server port (default from config: 8090)")

	// Export flags
	exportTrip   = flag.String("export-trip", "", "Trip ID to export an analytics report for")
	exportFormat = flag.String("export-format", "json", "Export format: json or csv")
	exportCharts = flag.Bool("export-charts", false, "Also render HTML charts alongside the report")
)

func main() {
	flag.Parse()

	if *debugModeShort {
		*debugMode = true
	}

	// Subcommands before flag-driven modes, matching the usage text.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrationCommand()
			return
		case "backup":
			runBackupCommand()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	if *debugMode {
		cfg.App.DebugMode = true
	}
	if *apiPort > 0 {
		cfg.API.Port = *apiPort
	}

	switch {
	case *serve:
		runServe(cfg)
	case *exportTrip != "":
		runExport(cfg, *exportTrip, *exportFormat, *exportCharts)
	default:
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Waylight - Theme Park Trip Analytics")
	fmt.Println("====================================")
	fmt.Println()
	fmt.Println("Usage: waylight <command|flags>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate    - Run database migrations (up/down/status)")
	fmt.Println("  backup     - Create or restore database backups")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -serve                 Run the REST API server")
	fmt.Println("  -api-port <port>       Override the API listen port")
	fmt.Println("  -export-trip <id>      Export an analytics report for a trip")
	fmt.Println("  -export-format <fmt>   Report format: json or csv")
	fmt.Println("  -export-charts         Render HTML charts alongside the report")
	fmt.Println("  -db-path <path>        SQLite database path")
	fmt.Println("  -debug-mode, -d        Verbose debug logging")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  waylight -serve -api-port 8090")
	fmt.Println("  waylight -export-trip 4f7c... -export-format csv")
	fmt.Println("  waylight migrate up")
	fmt.Println("  waylight backup create")
	fmt.Println()
}

// resolveDBPath picks the database path from the -db-path flag, the
// config file, or the default location, in that order.
func resolveDBPath(cfg *config.Config) string {
	if *dbPath != "" {
		return *dbPath
	}
	path, err := cfg.DatabasePath()
	if err != nil {
		log.Fatalf("Error resolving database path: %v", err)
	}
	return path
}

func openDatabase(cfg *config.Config) *storage.DB {
	path := resolveDBPath(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatalf("Error creating database directory: %v", err)
	}

	dbConfig := storage.DefaultConfig(path)
	dbConfig.AutoMigrate = cfg.Database.AutoMigrate
	db, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	return db
}

func runServe(cfg *config.Config) {
	db := openDatabase(cfg)
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repos := api.Repositories{
		Attractions: repository.NewAttractionRepository(db.Conn()),
		Trips:       repository.NewTripRepository(db.Conn()),
		Party:       repository.NewPartyRepository(db.Conn()),
		Ratings:     repository.NewRatingRepository(db.Conn()),
	}

	// Lightning Lane tables come from config and follow hot-reloads.
	var mu sync.RWMutex
	tables := cfg.Tables()
	currentTables := func() lightninglane.Tables {
		mu.RLock()
		defer mu.RUnlock()
		return tables
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath, err := config.Path()
	if err != nil {
		log.Fatalf("Error resolving config path: %v", err)
	}
	watcher := config.NewWatcher(configPath, func(next *config.Config) {
		mu.Lock()
		tables = next.Tables()
		mu.Unlock()
		log.Printf("Configuration reloaded from %s", configPath)
	})
	go func() {
		if err := watcher.Run(ctx); err != nil {
			log.Printf("Config watcher stopped: %v", err)
		}
	}()

	apiConfig := &api.Config{
		Port:           cfg.API.Port,
		AllowedOrigins: cfg.API.AllowedOrigins,
		RateLimit:      cfg.API.RateLimit,
		RateBurst:      cfg.API.RateBurst,
	}
	server := api.NewServer(apiConfig, repos, currentTables)
	if err := server.Start(); err != nil {
		log.Fatalf("Error starting API server: %v", err)
	}

	fmt.Printf("Waylight API running at http://localhost:%d\n", cfg.API.Port)
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

func runExport(cfg *config.Config, tripID, format string, withCharts bool) {
	db := openDatabase(cfg)
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	ctx := context.Background()
	trips := repository.NewTripRepository(db.Conn())
	party := repository.NewPartyRepository(db.Conn())
	ratingsRepo := repository.NewRatingRepository(db.Conn())
	attractions := repository.NewAttractionRepository(db.Conn())

	trip, err := trips.GetByID(ctx, tripID)
	if err != nil {
		log.Fatalf("Error loading trip %s: %v", tripID, err)
	}
	members, err := party.ListByTrip(ctx, tripID)
	if err != nil {
		log.Fatalf("Error loading traveling party: %v", err)
	}
	ratings, err := ratingsRepo.ListByTrip(ctx, tripID)
	if err != nil {
		log.Fatalf("Error loading ratings: %v", err)
	}
	summaries, err := ratingsRepo.GetSummaries(ctx, tripID)
	if err != nil {
		log.Fatalf("Error loading rating summaries: %v", err)
	}
	catalog, err := repository.LoadCatalog(ctx, attractions)
	if err != nil {
		log.Fatalf("Error loading attraction catalog: %v", err)
	}

	engine := planning.New(catalog)
	parkSummaries := engine.GenerateParkSummaries(ratings, summaries, members, trip)
	conflicts := engine.IdentifyConflicts(ratings, summaries, members)
	efficiencies := engine.GenerateAttractionEfficiencies(ratings, summaries, members)
	recommendations := engine.GenerateRecommendations(parkSummaries, conflicts, trip, efficiencies)

	outDir := cfg.Export.Dir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("Error creating export directory: %v", err)
	}

	switch format {
	case "json":
		report := export.TripReport{
			TripID:          trip.ID,
			TripName:        trip.Name,
			ParkSummaries:   parkSummaries,
			Conflicts:       conflicts,
			Recommendations: recommendations,
		}
		path := filepath.Join(outDir, fmt.Sprintf("trip-%s.json", trip.ID))
		exporter := export.NewExporter(export.Options{
			Format:     export.FormatJSON,
			FilePath:   path,
			PrettyJSON: cfg.Export.PrettyJSON,
			Overwrite:  true,
		})
		if err := exporter.Export(report); err != nil {
			log.Fatalf("Error exporting report: %v", err)
		}
		fmt.Printf("Report written to %s\n", path)

	case "csv":
		files := map[string]interface{}{
			fmt.Sprintf("trip-%s-parks.csv", trip.ID):       export.ParkSummaryRows(parkSummaries),
			fmt.Sprintf("trip-%s-attractions.csv", trip.ID): export.AttractionInsightRows(parkSummaries),
			fmt.Sprintf("trip-%s-conflicts.csv", trip.ID):   export.ConflictRows(conflicts),
		}
		for name, rows := range files {
			path := filepath.Join(outDir, name)
			exporter := export.NewExporter(export.Options{
				Format:    export.FormatCSV,
				FilePath:  path,
				Overwrite: true,
			})
			if err := exporter.Export(rows); err != nil {
				log.Fatalf("Error exporting %s: %v", name, err)
			}
			fmt.Printf("Report written to %s\n", path)
		}

	default:
		log.Fatalf("Unknown export format %q (expected json or csv)", format)
	}

	if withCharts {
		chartCfg := export.DefaultChartConfig()
		chartCfg.Title = trip.Name
		priorityPath := filepath.Join(outDir, fmt.Sprintf("trip-%s-priority.html", trip.ID))
		if err := export.RenderParkPriorityChart(parkSummaries, chartCfg, priorityPath); err != nil {
			log.Fatalf("Error rendering priority chart: %v", err)
		}
		allocationPath := filepath.Join(outDir, fmt.Sprintf("trip-%s-days.html", trip.ID))
		if err := export.RenderDayAllocationChart(parkSummaries, chartCfg, allocationPath); err != nil {
			log.Fatalf("Error rendering allocation chart: %v", err)
		}
		fmt.Printf("Charts written to %s\n", outDir)
	}
}

func runMigrationCommand() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: waylight migrate <up|down|status>")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	path := resolveDBPath(cfg)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatalf("Error creating database directory: %v", err)
	}

	mgr, err := storage.NewMigrationManager(path)
	if err != nil {
		log.Fatalf("Error creating migration manager: %v", err)
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			log.Printf("Error closing migration manager: %v", err)
		}
	}()

	switch os.Args[2] {
	case "up":
		fmt.Println("Applying all pending migrations...")
		if err := mgr.Up(); err != nil {
			log.Fatalf("Error applying migrations: %v", err)
		}
		printMigrationVersion(mgr)

	case "down":
		fmt.Println("Rolling back last migration...")
		if err := mgr.Down(); err != nil {
			log.Fatalf("Error rolling back migration: %v", err)
		}
		printMigrationVersion(mgr)

	case "status", "version":
		printMigrationVersion(mgr)

	default:
		fmt.Printf("Unknown migrate command %q\n", os.Args[2])
		os.Exit(1)
	}
}

func printMigrationVersion(mgr *storage.MigrationManager) {
	version, dirty, err := mgr.Version()
	if err != nil {
		log.Fatalf("Error getting migration version: %v", err)
	}
	if dirty {
		fmt.Printf("Current version: %d (dirty - migration failed or interrupted)\n", version)
	} else {
		fmt.Printf("Current version: %d\n", version)
	}
}

func runBackupCommand() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: waylight backup <create|restore> [path]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	path := resolveDBPath(cfg)
	bm := storage.NewBackupManager(path)

	switch os.Args[2] {
	case "create":
		backupPath, err := bm.Backup(&storage.BackupConfig{VerifyBackup: true})
		if err != nil {
			log.Fatalf("Error creating backup: %v", err)
		}
		fmt.Printf("Backup created: %s\n", backupPath)

	case "restore":
		if len(os.Args) < 4 {
			fmt.Println("Usage: waylight backup restore <backup-path>")
			os.Exit(1)
		}
		if err := bm.Restore(os.Args[3], nil); err != nil {
			log.Fatalf("Error restoring backup: %v", err)
		}
		fmt.Println("Backup restored successfully")

	default:
		fmt.Printf("Unknown backup command %q\n", os.Args[2])
		os.Exit(1)
	}
}
