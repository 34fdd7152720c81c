package repositories

import (
	"context"

	"github.com/medassist/docfinder/internal/domain/entities"
)

// DoctorRepository defines the interface for doctor data operations.
// The dataset is write-once: InsertBatch and Clear exist for the importer,
// everything else is read-only.
type DoctorRepository interface {
	// InsertBatch inserts validated doctor records
	InsertBatch(ctx context.Context, doctors []*entities.Doctor) error

	// Clear removes all records ahead of a fresh import
	Clear(ctx context.Context) error

	// Search retrieves doctors matching the filter; an empty filter returns
	// the whole table
	Search(ctx context.Context, filter DoctorFilter) ([]*entities.Doctor, error)

	// Count returns the number of doctors matching the filter
	Count(ctx context.Context, filter DoctorFilter) (int, error)

	// Specialties returns the distinct specialties present in the dataset
	Specialties(ctx context.Context) ([]entities.Specialty, error)

	// GetByID retrieves a single doctor by row id
	GetByID(ctx context.Context, id int64) (*entities.Doctor, error)
}

// DoctorFilter defines the hard constraints pushed down to the store.
// Zero values mean "no constraint".
type DoctorFilter struct {
	Specialty entities.Specialty
	City      entities.City
	MaxFee    int
}
