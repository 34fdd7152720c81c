package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/medassist/docfinder/internal/domain/entities"
	"github.com/medassist/docfinder/internal/domain/repositories"
	"github.com/medassist/docfinder/internal/infrastructure/observability"
	apperrors "github.com/medassist/docfinder/pkg/errors"
)

// DatasetStats summarizes the loaded dataset for the stats endpoint.
type DatasetStats struct {
	TotalDoctors int                   `json:"total_doctors"`
	Specialties  []entities.Specialty  `json:"specialties"`
	ByCity       map[entities.City]int `json:"by_city"`
}

// DoctorService exposes read access to the doctor dataset for the API
// layer, with filter validation on top of the repository.
type DoctorService struct {
	repo    repositories.DoctorRepository
	ranking *RankingService
}

// NewDoctorService creates a new doctor service
func NewDoctorService(repo repositories.DoctorRepository, ranking *RankingService) *DoctorService {
	return &DoctorService{
		repo:    repo,
		ranking: ranking,
	}
}

// Search returns ranked doctors for an explicit filter.
func (s *DoctorService) Search(ctx context.Context, criteria entities.SearchCriteria) ([]entities.ScoredDoctor, error) {
	ctx, span := observability.StartSpan(ctx, "doctors.search")
	defer span.End()

	if criteria.Specialty != "" && !criteria.Specialty.IsValid() {
		return nil, apperrors.NewValidationError("unsupported specialty")
	}
	if criteria.City != "" && !criteria.City.IsValid() {
		return nil, apperrors.NewValidationError("unsupported city")
	}

	doctors, err := s.repo.Search(ctx, repositories.DoctorFilter{
		Specialty: criteria.Specialty,
		City:      criteria.City,
		MaxFee:    criteria.MaxFee,
	})
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	doctors = FilterByGenderPreference(doctors, criteria.Gender)
	ranked := s.ranking.Rank(doctors, criteria)

	observability.SetSpanAttributes(span, attribute.Int("doctors.results", len(ranked)))
	return ranked, nil
}

// GetByID returns a single doctor record.
func (s *DoctorService) GetByID(ctx context.Context, id int64) (*entities.Doctor, error) {
	ctx, span := observability.StartSpan(ctx, "doctors.get_by_id")
	defer span.End()

	doctor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return doctor, nil
}

// Specialties returns the specialties present in the dataset.
func (s *DoctorService) Specialties(ctx context.Context) ([]entities.Specialty, error) {
	ctx, span := observability.StartSpan(ctx, "doctors.specialties")
	defer span.End()

	specialties, err := s.repo.Specialties(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}
	return specialties, nil
}

// Stats summarizes the dataset: total count, specialties, per-city counts.
func (s *DoctorService) Stats(ctx context.Context) (*DatasetStats, error) {
	ctx, span := observability.StartSpan(ctx, "doctors.stats")
	defer span.End()

	total, err := s.repo.Count(ctx, repositories.DoctorFilter{})
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	specialties, err := s.repo.Specialties(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	byCity := make(map[entities.City]int)
	for _, city := range entities.SupportedCities() {
		count, err := s.repo.Count(ctx, repositories.DoctorFilter{City: city})
		if err != nil {
			observability.RecordError(span, err)
			return nil, err
		}
		byCity[city] = count
	}

	return &DatasetStats{
		TotalDoctors: total,
		Specialties:  specialties,
		ByCity:       byCity,
	}, nil
}
