package database

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"

	"github.com/medassist/docfinder/internal/domain/entities"
	"github.com/medassist/docfinder/internal/domain/repositories"
	"github.com/medassist/docfinder/internal/infrastructure/clients/sqlite"
	apperrors "github.com/medassist/docfinder/pkg/errors"
)

var doctorColumns = []interface{}{
	"id", "name", "specialty", "city", "specializations", "qualifications",
	"experience", "experience_years", "reviews", "fee",
	"area", "hospital_clinic", "phone", "timings", "profile_link",
}

// DoctorAdapter implements DoctorRepository on SQLite
type DoctorAdapter struct {
	client *sqlite.Client
	db     *goqu.Database
}

// NewDoctorAdapter creates a new doctor adapter
func NewDoctorAdapter(client *sqlite.Client) repositories.DoctorRepository {
	return &DoctorAdapter{
		client: client,
		db:     goqu.New("sqlite3", client.DB()),
	}
}

// InsertBatch inserts a batch of doctors inside a single transaction.
func (a *DoctorAdapter) InsertBatch(ctx context.Context, doctors []*entities.Doctor) error {
	if len(doctors) == 0 {
		return nil
	}

	records := make([]interface{}, 0, len(doctors))
	for _, d := range doctors {
		records = append(records, goqu.Record{
			"name":             d.Name,
			"specialty":        string(d.Specialty),
			"city":             string(d.City),
			"specializations":  d.Specializations,
			"qualifications":   d.Qualifications,
			"experience":       d.Experience,
			"experience_years": d.ExperienceYears,
			"reviews":          d.Reviews,
			"fee":              d.Fee,
			"area":             d.Area,
			"hospital_clinic":  d.HospitalClinic,
			"phone":            d.Phone,
			"timings":          d.Timings,
			"profile_link":     d.ProfileLink,
		})
	}

	query, args, err := a.db.Insert("doctors").Rows(records...).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	tx, err := a.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		tx.Rollback()
		return apperrors.NewInternalError("failed to insert doctors", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit doctors", err)
	}

	return nil
}

// Clear removes every doctor record ahead of a fresh import.
func (a *DoctorAdapter) Clear(ctx context.Context) error {
	query, args, err := a.db.Delete("doctors").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to clear doctors", err)
	}

	return nil
}

// Search retrieves doctors matching the filter. An empty filter returns
// every doctor in the dataset.
func (a *DoctorAdapter) Search(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	ds := a.db.Select(doctorColumns...).From("doctors")

	if filter.Specialty != "" {
		ds = ds.Where(goqu.Ex{"specialty": string(filter.Specialty)})
	}
	if filter.City != "" {
		ds = ds.Where(goqu.Ex{"city": string(filter.City)})
	}
	if filter.MaxFee > 0 {
		ds = ds.Where(goqu.C("fee").Lte(filter.MaxFee))
	}

	query, args, err := ds.Order(goqu.C("id").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to search doctors", err)
	}
	defer rows.Close()

	doctors := []*entities.Doctor{}
	for rows.Next() {
		doctor := &entities.Doctor{}
		err := rows.Scan(
			&doctor.ID,
			&doctor.Name,
			&doctor.Specialty,
			&doctor.City,
			&doctor.Specializations,
			&doctor.Qualifications,
			&doctor.Experience,
			&doctor.ExperienceYears,
			&doctor.Reviews,
			&doctor.Fee,
			&doctor.Area,
			&doctor.HospitalClinic,
			&doctor.Phone,
			&doctor.Timings,
			&doctor.ProfileLink,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor", err)
		}
		doctors = append(doctors, doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating doctors", err)
	}

	return doctors, nil
}

// Count returns the number of doctors matching the filter.
func (a *DoctorAdapter) Count(ctx context.Context, filter repositories.DoctorFilter) (int, error) {
	ds := a.db.Select(goqu.COUNT("*")).From("doctors")

	if filter.Specialty != "" {
		ds = ds.Where(goqu.Ex{"specialty": string(filter.Specialty)})
	}
	if filter.City != "" {
		ds = ds.Where(goqu.Ex{"city": string(filter.City)})
	}
	if filter.MaxFee > 0 {
		ds = ds.Where(goqu.C("fee").Lte(filter.MaxFee))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count doctors", err)
	}

	return count, nil
}

// Specialties returns the distinct specialties present in the dataset.
func (a *DoctorAdapter) Specialties(ctx context.Context) ([]entities.Specialty, error) {
	query, args, err := a.db.Select(goqu.DISTINCT("specialty")).
		From("doctors").
		Order(goqu.C("specialty").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build specialties query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list specialties", err)
	}
	defer rows.Close()

	specialties := []entities.Specialty{}
	for rows.Next() {
		var specialty entities.Specialty
		if err := rows.Scan(&specialty); err != nil {
			return nil, apperrors.NewInternalError("failed to scan specialty row", err)
		}
		specialties = append(specialties, specialty)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating specialties", err)
	}

	return specialties, nil
}

// GetByID retrieves a single doctor by its row id.
func (a *DoctorAdapter) GetByID(ctx context.Context, id int64) (*entities.Doctor, error) {
	doctors, err := a.searchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(doctors) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("doctor with id %d not found", id))
	}
	return doctors[0], nil
}

func (a *DoctorAdapter) searchByID(ctx context.Context, id int64) ([]*entities.Doctor, error) {
	query, args, err := a.db.Select(doctorColumns...).
		From("doctors").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get doctor", err)
	}
	defer rows.Close()

	var doctors []*entities.Doctor
	for rows.Next() {
		doctor := &entities.Doctor{}
		err := rows.Scan(
			&doctor.ID,
			&doctor.Name,
			&doctor.Specialty,
			&doctor.City,
			&doctor.Specializations,
			&doctor.Qualifications,
			&doctor.Experience,
			&doctor.ExperienceYears,
			&doctor.Reviews,
			&doctor.Fee,
			&doctor.Area,
			&doctor.HospitalClinic,
			&doctor.Phone,
			&doctor.Timings,
			&doctor.ProfileLink,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan doctor", err)
		}
		doctors = append(doctors, doctor)
	}

	return doctors, rows.Err()
}
