package entities

import (
	"fmt"
)

// Specialty is one of the five medical disciplines the system covers.
type Specialty string

const (
	SpecialtyPsychiatrist  Specialty = "Psychiatrist"
	SpecialtyDermatologist Specialty = "Dermatologist"
	SpecialtyNeurologist   Specialty = "Neurologist"
	SpecialtyGynecologist  Specialty = "Gynecologist"
	SpecialtyUrologist     Specialty = "Urologist"
)

// SupportedSpecialties returns all specialties in fixed priority order.
// The order doubles as the symptom-mapping tie-break order.
func SupportedSpecialties() []Specialty {
	return []Specialty{
		SpecialtyPsychiatrist,
		SpecialtyNeurologist,
		SpecialtyDermatologist,
		SpecialtyGynecologist,
		SpecialtyUrologist,
	}
}

// IsValid checks if the specialty is one of the supported set.
func (s Specialty) IsValid() bool {
	switch s {
	case SpecialtyPsychiatrist, SpecialtyDermatologist, SpecialtyNeurologist,
		SpecialtyGynecologist, SpecialtyUrologist:
		return true
	}
	return false
}

// City is one of the two covered cities.
type City string

const (
	CityIslamabad City = "Islamabad"
	CityLahore    City = "Lahore"
)

// SupportedCities returns all covered cities.
func SupportedCities() []City {
	return []City{CityIslamabad, CityLahore}
}

// IsValid checks if the city is one of the supported set.
func (c City) IsValid() bool {
	return c == CityIslamabad || c == CityLahore
}

// Doctor represents a physician record. Records are immutable after import.
type Doctor struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Specialty       Specialty `json:"specialty" db:"specialty"`
	City            City      `json:"city" db:"city"`
	Specializations string    `json:"specializations" db:"specializations"`
	Qualifications  string    `json:"qualifications" db:"qualifications"`
	Experience      string    `json:"experience" db:"experience"`
	ExperienceYears int       `json:"experience_years" db:"experience_years"`
	Reviews         int       `json:"reviews" db:"reviews"`
	Fee             int       `json:"fee" db:"fee"`
	Area            string    `json:"area,omitempty" db:"area"`
	HospitalClinic  string    `json:"hospital_clinic,omitempty" db:"hospital_clinic"`
	Phone           string    `json:"phone,omitempty" db:"phone"`
	Timings         string    `json:"timings,omitempty" db:"timings"`
	ProfileLink     string    `json:"profile_link,omitempty" db:"profile_link"`
}

// Validate enforces the load-time invariants: non-empty name and a
// (specialty, city) pair inside the supported set. Records failing this are
// rejected at import, never stored.
func (d *Doctor) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("doctor name is required")
	}
	if !d.Specialty.IsValid() {
		return fmt.Errorf("unsupported specialty %q", d.Specialty)
	}
	if !d.City.IsValid() {
		return fmt.Errorf("unsupported city %q", d.City)
	}
	if d.ExperienceYears < 0 || d.Reviews < 0 || d.Fee < 0 {
		return fmt.Errorf("numeric fields must be non-negative")
	}
	return nil
}
