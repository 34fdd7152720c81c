package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/medassist/docfinder/internal/application/services"
	"github.com/medassist/docfinder/internal/evaluation"
)

// Scores the deterministic query interpretation against a labeled query set.
// No database or network access is needed.
func main() {
	goldenPath := flag.String("golden", "config/golden_queries.json", "path to the golden queries file")
	flag.Parse()

	queries, err := evaluation.LoadGoldenQueries(*goldenPath)
	if err != nil {
		log.Fatalf("Failed to load golden queries: %v", err)
	}
	if err := evaluation.ValidateGoldenQueries(queries); err != nil {
		log.Fatalf("Invalid golden queries: %v", err)
	}

	mapper := services.NewSymptomMapperService(services.DefaultSymptomMapConfig())
	interpreter := services.NewQueryInterpreterService(services.DefaultInterpreterConfig(), mapper)
	emergency := services.NewEmergencyService(services.DefaultEmergencyConfig())

	runner := evaluation.NewRunner(interpreter, emergency)
	summary := runner.Run(queries)

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatalf("Failed to render summary: %v", err)
	}
	fmt.Println(string(out))

	if summary.IntentAccuracy < 1.0 {
		os.Exit(1)
	}
}
