package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/medassist/docfinder/internal/domain/entities"
	"github.com/medassist/docfinder/internal/domain/repositories"
	"github.com/medassist/docfinder/internal/infrastructure/observability"
	apperrors "github.com/medassist/docfinder/pkg/errors"
	"github.com/medassist/docfinder/pkg/parse"
)

// requiredColumns are the headers every source file must carry. A file
// missing one of them is structurally broken and skipped whole.
var requiredColumns = []string{
	"Doc_names", "Specializations", "Qualifications", "Experiences", "Reviews", "Fees",
}

// ImportSummary reports the outcome of one dataset load.
type ImportSummary struct {
	FilesImported int      `json:"files_imported"`
	FilesSkipped  int      `json:"files_skipped"`
	DoctorsLoaded int      `json:"doctors_loaded"`
	RowsRejected  int      `json:"rows_rejected"`
	Errors        []string `json:"errors,omitempty"`
}

// ImportService loads the doctor dataset from CSV files. Each file covers
// one (specialty, city) pair encoded in its name, e.g. Psychiatrists_isl.csv.
// A malformed file is fatal only to itself; the load continues and the
// failure is counted.
type ImportService struct {
	repo   repositories.DoctorRepository
	csvDir string
}

// NewImportService creates a new import service
func NewImportService(repo repositories.DoctorRepository, csvDir string) *ImportService {
	return &ImportService{
		repo:   repo,
		csvDir: csvDir,
	}
}

// ImportAll clears the dataset and reloads it from every matching CSV file
// in the configured directory.
func (s *ImportService) ImportAll(ctx context.Context) (*ImportSummary, error) {
	logger := observability.LoggerFromContext(ctx)

	entries, err := os.ReadDir(s.csvDir)
	if err != nil {
		return nil, apperrors.NewImportError(fmt.Sprintf("failed to read csv directory %s", s.csvDir), err)
	}

	if err := s.repo.Clear(ctx); err != nil {
		return nil, err
	}

	summary := &ImportSummary{}
	for _, entry := range entries {
		if entry.IsDir() || !isDatasetFile(entry.Name()) {
			continue
		}

		loaded, rejected, err := s.importFile(ctx, entry.Name())
		if err != nil {
			summary.FilesSkipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", entry.Name(), err))
			logger.Error().Err(err).Str("file", entry.Name()).Msg("Skipping dataset file")
			continue
		}

		summary.FilesImported++
		summary.DoctorsLoaded += loaded
		summary.RowsRejected += rejected
		logger.Info().
			Str("file", entry.Name()).
			Int("loaded", loaded).
			Int("rejected", rejected).
			Msg("Imported dataset file")
	}

	logger.Info().
		Int("files", summary.FilesImported).
		Int("doctors", summary.DoctorsLoaded).
		Msg("Dataset import complete")

	return summary, nil
}

func isDatasetFile(name string) bool {
	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, ".csv") {
		return false
	}
	return strings.Contains(lower, "_isl") || strings.Contains(lower, "_lhr")
}

// specialtyFromFilename resolves "Psychiatrists_isl.csv" to Psychiatrist.
func specialtyFromFilename(name string) (entities.Specialty, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	part := strings.SplitN(base, "_", 2)[0]
	part = strings.TrimSuffix(part, "s")

	for _, specialty := range entities.SupportedSpecialties() {
		if strings.EqualFold(part, string(specialty)) {
			return specialty, nil
		}
	}
	return "", fmt.Errorf("unknown specialty %q in filename", part)
}

func cityFromFilename(name string) (entities.City, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "_isl"):
		return entities.CityIslamabad, nil
	case strings.Contains(lower, "_lhr"):
		return entities.CityLahore, nil
	}
	return "", fmt.Errorf("no city code in filename")
}

func (s *ImportService) importFile(ctx context.Context, name string) (loaded, rejected int, err error) {
	specialty, err := specialtyFromFilename(name)
	if err != nil {
		return 0, 0, apperrors.NewImportError("bad filename", err)
	}
	city, err := cityFromFilename(name)
	if err != nil {
		return 0, 0, apperrors.NewImportError("bad filename", err)
	}

	f, err := os.Open(filepath.Join(s.csvDir, name))
	if err != nil {
		return 0, 0, apperrors.NewImportError("failed to open file", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, 0, apperrors.NewImportError("failed to read header", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return 0, 0, err
	}

	var doctors []*entities.Doctor
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// a torn row rejects itself, not the file
			rejected++
			continue
		}

		doctor := rowToDoctor(row, columns, specialty, city)
		if err := doctor.Validate(); err != nil {
			rejected++
			continue
		}
		doctors = append(doctors, doctor)
	}

	if err := s.repo.InsertBatch(ctx, doctors); err != nil {
		return 0, 0, err
	}
	return len(doctors), rejected, nil
}

// mapColumns resolves the index of every required header, failing when a
// required column is structurally absent.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(h)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, apperrors.NewImportError(fmt.Sprintf("missing required column %s", required), nil)
		}
	}
	return columns, nil
}

func rowToDoctor(row []string, columns map[string]int, specialty entities.Specialty, city entities.City) *entities.Doctor {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	reviews, _ := parse.Int(field("Reviews"))
	fee, _ := parse.Int(field("Fees"))
	experience := field("Experiences")
	experienceYears, _ := parse.LeadingInt(experience)

	return &entities.Doctor{
		Name:            field("Doc_names"),
		Specialty:       specialty,
		City:            city,
		Specializations: field("Specializations"),
		Qualifications:  field("Qualifications"),
		Experience:      experience,
		ExperienceYears: experienceYears,
		Reviews:         reviews,
		Fee:             fee,
		Area:            field("Area"),
		HospitalClinic:  field("Hospital_clinic"),
		Phone:           field("Phone"),
		Timings:         field("Timings"),
		ProfileLink:     field("Profile_link"),
	}
}
