package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medassist/docfinder/internal/api/handlers"
	"github.com/medassist/docfinder/internal/application/services"
	"github.com/medassist/docfinder/internal/domain/entities"
	apperrors "github.com/medassist/docfinder/pkg/errors"
)

type stubDoctorProvider struct {
	scored       []entities.ScoredDoctor
	doctor       *entities.Doctor
	specialties  []entities.Specialty
	stats        *services.DatasetStats
	err          error
	lastCriteria entities.SearchCriteria
	lastID       int64
}

func (s *stubDoctorProvider) Search(ctx context.Context, criteria entities.SearchCriteria) ([]entities.ScoredDoctor, error) {
	s.lastCriteria = criteria
	if s.err != nil {
		return nil, s.err
	}
	return s.scored, nil
}

func (s *stubDoctorProvider) GetByID(ctx context.Context, id int64) (*entities.Doctor, error) {
	s.lastID = id
	if s.err != nil {
		return nil, s.err
	}
	return s.doctor, nil
}

func (s *stubDoctorProvider) Specialties(ctx context.Context) ([]entities.Specialty, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.specialties, nil
}

func (s *stubDoctorProvider) Stats(ctx context.Context) (*services.DatasetStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.stats, nil
}

func TestDoctorHandler_SearchDoctors(t *testing.T) {
	provider := &stubDoctorProvider{
		scored: []entities.ScoredDoctor{
			{Doctor: &entities.Doctor{ID: 1, Name: "Dr. Sana Khan"}, Score: 520},
		},
	}
	handler := handlers.NewDoctorHandler(provider)

	req := httptest.NewRequest("GET", "/api/doctors?specialty=Psychiatrist&city=Lahore&max_fee=2500", nil)
	w := httptest.NewRecorder()

	handler.SearchDoctors(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.SpecialtyPsychiatrist, provider.lastCriteria.Specialty)
	assert.Equal(t, entities.CityLahore, provider.lastCriteria.City)
	assert.Equal(t, 2500, provider.lastCriteria.MaxFee)

	var response struct {
		Doctors []entities.ScoredDoctor `json:"doctors"`
		Count   int                     `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 1, response.Count)
	assert.Equal(t, "Dr. Sana Khan", response.Doctors[0].Doctor.Name)
}

func TestDoctorHandler_SearchDoctors_BadMaxFee(t *testing.T) {
	handler := handlers.NewDoctorHandler(&stubDoctorProvider{})

	req := httptest.NewRequest("GET", "/api/doctors?max_fee=cheap", nil)
	w := httptest.NewRecorder()

	handler.SearchDoctors(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDoctorHandler_SearchDoctors_ValidationError(t *testing.T) {
	provider := &stubDoctorProvider{err: apperrors.NewValidationError("unsupported specialty")}
	handler := handlers.NewDoctorHandler(provider)

	req := httptest.NewRequest("GET", "/api/doctors?specialty=Cardiologist", nil)
	w := httptest.NewRecorder()

	handler.SearchDoctors(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "unsupported specialty", response["error"])
}

func TestDoctorHandler_GetDoctor(t *testing.T) {
	provider := &stubDoctorProvider{
		doctor: &entities.Doctor{ID: 7, Name: "Dr. Ayesha Malik", Specialty: entities.SpecialtyDermatologist},
	}
	handler := handlers.NewDoctorHandler(provider)

	req := httptest.NewRequest("GET", "/api/doctors/7", nil)
	req.SetPathValue("id", "7")
	w := httptest.NewRecorder()

	handler.GetDoctor(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), provider.lastID)

	var response entities.Doctor
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Dr. Ayesha Malik", response.Name)
}

func TestDoctorHandler_GetDoctor_NotFound(t *testing.T) {
	provider := &stubDoctorProvider{err: apperrors.NewNotFoundError("doctor not found")}
	handler := handlers.NewDoctorHandler(provider)

	req := httptest.NewRequest("GET", "/api/doctors/999", nil)
	req.SetPathValue("id", "999")
	w := httptest.NewRecorder()

	handler.GetDoctor(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDoctorHandler_GetDoctor_BadID(t *testing.T) {
	handler := handlers.NewDoctorHandler(&stubDoctorProvider{})

	req := httptest.NewRequest("GET", "/api/doctors/abc", nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()

	handler.GetDoctor(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDoctorHandler_ListSpecialties(t *testing.T) {
	provider := &stubDoctorProvider{
		specialties: []entities.Specialty{entities.SpecialtyDermatologist, entities.SpecialtyPsychiatrist},
	}
	handler := handlers.NewDoctorHandler(provider)

	req := httptest.NewRequest("GET", "/api/specialties", nil)
	w := httptest.NewRecorder()

	handler.ListSpecialties(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Specialties []entities.Specialty `json:"specialties"`
		Count       int                  `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
}

func TestDoctorHandler_GetStats(t *testing.T) {
	provider := &stubDoctorProvider{
		stats: &services.DatasetStats{
			TotalDoctors: 42,
			Specialties:  []entities.Specialty{entities.SpecialtyUrologist},
			ByCity: map[entities.City]int{
				entities.CityIslamabad: 20,
				entities.CityLahore:    22,
			},
		},
	}
	handler := handlers.NewDoctorHandler(provider)

	req := httptest.NewRequest("GET", "/api/stats", nil)
	w := httptest.NewRecorder()

	handler.GetStats(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response services.DatasetStats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 42, response.TotalDoctors)
	assert.Equal(t, 22, response.ByCity[entities.CityLahore])
}
