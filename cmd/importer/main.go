package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/medassist/docfinder/internal/adapters/database"
	"github.com/medassist/docfinder/internal/application/services"
	"github.com/medassist/docfinder/internal/infrastructure/clients/sqlite"
	"github.com/medassist/docfinder/internal/infrastructure/observability"
	"github.com/medassist/docfinder/pkg/config"
)

// One-shot loader: reads the per-(specialty, city) CSV files and replaces
// the contents of the doctors database with them.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	csvDir := flag.String("csv-dir", cfg.Database.CSVDir, "directory containing the dataset CSV files")
	dbPath := flag.String("db", cfg.Database.Path, "path to the doctors database")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall import timeout")
	flag.Parse()

	observability.InitLogger("docfinder-importer", cfg.Env)
	logger := observability.GetLogger()

	dbClient, err := sqlite.NewClient(*dbPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *dbPath).Msg("failed to open doctors database")
	}
	defer dbClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	repo := database.NewDoctorAdapter(dbClient)
	importer := services.NewImportService(repo, *csvDir)

	summary, err := importer.ImportAll(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("import failed")
	}

	logger.Info().
		Int("files_imported", summary.FilesImported).
		Int("files_skipped", summary.FilesSkipped).
		Int("doctors_loaded", summary.DoctorsLoaded).
		Int("rows_rejected", summary.RowsRejected).
		Msg("import complete")

	for _, e := range summary.Errors {
		logger.Warn().Str("detail", e).Msg("import issue")
	}

	if summary.DoctorsLoaded == 0 {
		logger.Warn().Msg("no doctors loaded; check the CSV directory and filename convention")
		os.Exit(1)
	}
}
