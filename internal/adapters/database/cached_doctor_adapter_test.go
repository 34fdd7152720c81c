package database

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/medassist/docfinder/internal/domain/entities"
	"github.com/medassist/docfinder/internal/domain/repositories"
)

// MockCacheProvider is a mock implementation of providers.CacheProvider
type MockCacheProvider struct {
	mock.Mock
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	args := m.Called(ctx, key, value, expirationSeconds)
	return args.Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheProvider) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func TestCachedDoctorAdapter_SearchCacheHit(t *testing.T) {
	cache := new(MockCacheProvider)
	cached := []*entities.Doctor{
		testDoctor("Dr. Cached", entities.SpecialtyNeurologist, entities.CityLahore, 1800),
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	filter := repositories.DoctorFilter{Specialty: entities.SpecialtyNeurologist}
	cache.On("Get", mock.Anything, doctorSearchCacheKey(filter)).Return(data, nil)

	// Underlying repo is nil: a hit must never touch the database.
	adapter := NewCachedDoctorAdapter(nil, cache)

	doctors, err := adapter.Search(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Dr. Cached", doctors[0].Name)
	cache.AssertExpectations(t)
}

func TestCachedDoctorAdapter_SearchCacheMissFallsThrough(t *testing.T) {
	repo := newTestRepo(t)
	seedDoctors(t, repo, []*entities.Doctor{
		testDoctor("Dr. Fresh", entities.SpecialtyUrologist, entities.CityIslamabad, 1200),
	})

	cache := new(MockCacheProvider)
	cache.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("cache miss"))
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	adapter := NewCachedDoctorAdapter(repo, cache)

	doctors, err := adapter.Search(context.Background(), repositories.DoctorFilter{})
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Dr. Fresh", doctors[0].Name)

	// the write-back happens on a goroutine
	time.Sleep(50 * time.Millisecond)
}

func TestCachedDoctorAdapter_CorruptCacheEntryFallsThrough(t *testing.T) {
	repo := newTestRepo(t)
	seedDoctors(t, repo, []*entities.Doctor{
		testDoctor("Dr. Fresh", entities.SpecialtyUrologist, entities.CityIslamabad, 1200),
	})

	cache := new(MockCacheProvider)
	cache.On("Get", mock.Anything, mock.Anything).Return([]byte("{not json"), nil)
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	adapter := NewCachedDoctorAdapter(repo, cache)

	doctors, err := adapter.Search(context.Background(), repositories.DoctorFilter{})
	require.NoError(t, err)
	require.Len(t, doctors, 1)

	time.Sleep(50 * time.Millisecond)
}

func TestCachedDoctorAdapter_ClearInvalidates(t *testing.T) {
	repo := newTestRepo(t)

	cache := new(MockCacheProvider)
	cache.On("DeletePattern", mock.Anything, "doctor:*").Return(nil)
	cache.On("DeletePattern", mock.Anything, "doctors:*").Return(nil)

	adapter := NewCachedDoctorAdapter(repo, cache)
	require.NoError(t, adapter.Clear(context.Background()))

	// invalidation happens on a goroutine
	time.Sleep(50 * time.Millisecond)
	cache.AssertExpectations(t)
}
