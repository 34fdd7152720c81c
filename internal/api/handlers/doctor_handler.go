package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/medassist/docfinder/internal/application/services"
	"github.com/medassist/docfinder/internal/domain/entities"
	apperrors "github.com/medassist/docfinder/pkg/errors"
)

// DoctorProvider defines the dataset read operations used by the handler.
type DoctorProvider interface {
	Search(ctx context.Context, criteria entities.SearchCriteria) ([]entities.ScoredDoctor, error)
	GetByID(ctx context.Context, id int64) (*entities.Doctor, error)
	Specialties(ctx context.Context) ([]entities.Specialty, error)
	Stats(ctx context.Context) (*services.DatasetStats, error)
}

// DoctorHandler handles doctor-dataset HTTP requests
type DoctorHandler struct {
	doctors DoctorProvider
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(doctors DoctorProvider) *DoctorHandler {
	return &DoctorHandler{
		doctors: doctors,
	}
}

// SearchDoctors handles GET /api/doctors
func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	criteria := entities.SearchCriteria{
		Specialty: entities.Specialty(r.URL.Query().Get("specialty")),
		City:      entities.City(r.URL.Query().Get("city")),
		Gender:    r.URL.Query().Get("gender"),
	}

	if raw := r.URL.Query().Get("max_fee"); raw != "" {
		maxFee, err := strconv.Atoi(raw)
		if err != nil || maxFee < 0 {
			respondWithError(w, http.StatusBadRequest, "max_fee must be a non-negative integer")
			return
		}
		criteria.MaxFee = maxFee
	}

	doctors, err := h.doctors.Search(r.Context(), criteria)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// GetDoctor handles GET /api/doctors/:id
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "doctor ID must be an integer")
		return
	}

	doctor, err := h.doctors.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, doctor)
}

// ListSpecialties handles GET /api/specialties
func (h *DoctorHandler) ListSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.doctors.Specialties(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"specialties": specialties,
		"count":       len(specialties),
	})
}

// GetStats handles GET /api/stats
func (h *DoctorHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.doctors.Stats(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeUnavailable:
			respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
