package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/medassist/docfinder/internal/domain/entities"
	"github.com/medassist/docfinder/internal/domain/providers"
	"github.com/medassist/docfinder/internal/domain/repositories"
)

// CachedDoctorAdapter wraps a DoctorRepository with read-through caching.
// The dataset only changes on import, so TTLs are generous.
type CachedDoctorAdapter struct {
	adapter repositories.DoctorRepository
	cache   providers.CacheProvider
}

// NewCachedDoctorAdapter creates a new cached doctor adapter
func NewCachedDoctorAdapter(adapter repositories.DoctorRepository, cache providers.CacheProvider) repositories.DoctorRepository {
	return &CachedDoctorAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	doctorByIDTTL      = 3600
	doctorSearchTTL    = 600
	doctorSpecialtyTTL = 3600
	doctorCountTTL     = 600
)

func doctorCacheKey(id int64) string {
	return fmt.Sprintf("doctor:%d", id)
}

func doctorSearchCacheKey(filter repositories.DoctorFilter) string {
	return fmt.Sprintf("doctors:search:%s:%s:%d", filter.Specialty, filter.City, filter.MaxFee)
}

func doctorCountCacheKey(filter repositories.DoctorFilter) string {
	return fmt.Sprintf("doctors:count:%s:%s:%d", filter.Specialty, filter.City, filter.MaxFee)
}

const doctorSpecialtiesCacheKey = "doctors:specialties"

// InsertBatch writes through to the store and invalidates read caches.
func (a *CachedDoctorAdapter) InsertBatch(ctx context.Context, doctors []*entities.Doctor) error {
	if err := a.adapter.InsertBatch(ctx, doctors); err != nil {
		return err
	}
	a.invalidate()
	return nil
}

// Clear writes through to the store and invalidates read caches.
func (a *CachedDoctorAdapter) Clear(ctx context.Context) error {
	if err := a.adapter.Clear(ctx); err != nil {
		return err
	}
	a.invalidate()
	return nil
}

func (a *CachedDoctorAdapter) invalidate() {
	go func() {
		bgCtx := context.Background()
		for _, pattern := range []string{"doctor:*", "doctors:*"} {
			if err := a.cache.DeletePattern(bgCtx, pattern); err != nil {
				log.Printf("Failed to invalidate doctor cache pattern %s: %v", pattern, err)
			}
		}
	}()
}

// Search retrieves doctors matching the filter with caching.
func (a *CachedDoctorAdapter) Search(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	cacheKey := doctorSearchCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var doctors []*entities.Doctor
		if err := json.Unmarshal(cached, &doctors); err == nil {
			return doctors, nil
		}
		log.Printf("Failed to unmarshal cached doctor search: %v", err)
	}

	doctors, err := a.adapter.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(doctors); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, doctorSearchTTL); err != nil {
				log.Printf("Failed to cache doctor search: %v", err)
			}
		}
	}()

	return doctors, nil
}

// Count returns the number of doctors matching the filter with caching.
func (a *CachedDoctorAdapter) Count(ctx context.Context, filter repositories.DoctorFilter) (int, error) {
	cacheKey := doctorCountCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var count int
		if err := json.Unmarshal(cached, &count); err == nil {
			return count, nil
		}
	}

	count, err := a.adapter.Count(ctx, filter)
	if err != nil {
		return 0, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(count); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, doctorCountTTL); err != nil {
				log.Printf("Failed to cache doctor count: %v", err)
			}
		}
	}()

	return count, nil
}

// Specialties returns the distinct specialties with caching.
func (a *CachedDoctorAdapter) Specialties(ctx context.Context) ([]entities.Specialty, error) {
	if cached, err := a.cache.Get(ctx, doctorSpecialtiesCacheKey); err == nil {
		var specialties []entities.Specialty
		if err := json.Unmarshal(cached, &specialties); err == nil {
			return specialties, nil
		}
	}

	specialties, err := a.adapter.Specialties(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(specialties); err == nil {
			if err := a.cache.Set(bgCtx, doctorSpecialtiesCacheKey, data, doctorSpecialtyTTL); err != nil {
				log.Printf("Failed to cache specialties: %v", err)
			}
		}
	}()

	return specialties, nil
}

// GetByID retrieves a doctor by ID with caching.
func (a *CachedDoctorAdapter) GetByID(ctx context.Context, id int64) (*entities.Doctor, error) {
	cacheKey := doctorCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var doctor entities.Doctor
		if err := json.Unmarshal(cached, &doctor); err == nil {
			return &doctor, nil
		}
	}

	doctor, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(doctor); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, doctorByIDTTL); err != nil {
				log.Printf("Failed to cache doctor %d: %v", id, err)
			}
		}
	}()

	return doctor, nil
}
