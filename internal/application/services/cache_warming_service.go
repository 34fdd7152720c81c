package services

import (
	"context"
	"log"
	"time"

	"github.com/medassist/docfinder/internal/domain/entities"
	"github.com/medassist/docfinder/internal/domain/repositories"
)

// CacheWarmingService pre-populates the cache with the dataset queries every
// session hits sooner or later. It runs reads through the cached repository,
// whose read-through path does the actual caching.
type CacheWarmingService struct {
	repo repositories.DoctorRepository
}

// NewCacheWarmingService creates a new cache warming service. Pass the
// cached repository, not the base adapter.
func NewCacheWarmingService(repo repositories.DoctorRepository) *CacheWarmingService {
	return &CacheWarmingService{repo: repo}
}

// WarmCache runs every (specialty, city) search once plus the specialty
// listing. A failed query is logged and skipped; warming is best-effort.
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	log.Println("Starting cache warming...")

	warmed := 0
	for _, specialty := range entities.SupportedSpecialties() {
		for _, city := range entities.SupportedCities() {
			filter := repositories.DoctorFilter{Specialty: specialty, City: city}
			if _, err := s.repo.Search(ctx, filter); err != nil {
				log.Printf("Failed to warm %s/%s: %v", specialty, city, err)
				continue
			}
			warmed++
		}
	}

	if _, err := s.repo.Specialties(ctx); err != nil {
		log.Printf("Failed to warm specialty listing: %v", err)
	}

	log.Printf("Cache warming completed (%d searches)", warmed)
	return nil
}

// StartPeriodicWarming warms the cache now and then again on every tick
// until the context is cancelled.
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	if err := s.WarmCache(ctx); err != nil {
		log.Printf("Initial cache warming failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("Stopping cache warming service")
				return
			case <-ticker.C:
				if err := s.WarmCache(context.Background()); err != nil {
					log.Printf("Periodic cache warming failed: %v", err)
				}
			}
		}
	}()
	log.Printf("Started periodic cache warming every %v", interval)
}
