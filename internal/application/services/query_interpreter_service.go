package services

import (
	"strings"

	"github.com/medassist/docfinder/internal/domain/entities"
)

// InterpreterConfig holds the lookup tables the interpreter matches
// against. Constructed once at startup and passed in, never mutated
// afterwards.
type InterpreterConfig struct {
	// CityAliases maps lowercase substrings to a supported city.
	// Order matters: earlier entries win.
	CityAliases []CityAlias

	// UnsupportedCities short-circuits the turn when mentioned.
	UnsupportedCities []string

	// SpecialtyAliases maps lowercase substrings to a specialty.
	SpecialtyAliases []SpecialtyAlias

	FemaleWords []string
	MaleWords   []string

	// BudgetWords map price-sensitivity phrases to the fee ceiling.
	BudgetWords      []string
	BudgetFeeCeiling int
}

// CityAlias pairs a lowercase substring with the city it denotes.
type CityAlias struct {
	Token string
	City  entities.City
}

// SpecialtyAlias pairs a lowercase substring with the specialty it denotes.
type SpecialtyAlias struct {
	Token     string
	Specialty entities.Specialty
}

// DefaultInterpreterConfig returns the built-in lookup tables.
func DefaultInterpreterConfig() InterpreterConfig {
	return InterpreterConfig{
		CityAliases: []CityAlias{
			{Token: "islamabad", City: entities.CityIslamabad},
			{Token: "isb", City: entities.CityIslamabad},
			{Token: "isl", City: entities.CityIslamabad},
			{Token: "lahore", City: entities.CityLahore},
			{Token: "lhr", City: entities.CityLahore},
		},
		UnsupportedCities: []string{
			"karachi", "peshawar", "quetta", "multan", "faisalabad", "rawalpindi",
		},
		SpecialtyAliases: []SpecialtyAlias{
			{Token: "psychiatrist", Specialty: entities.SpecialtyPsychiatrist},
			{Token: "dermatologist", Specialty: entities.SpecialtyDermatologist},
			{Token: "skin specialist", Specialty: entities.SpecialtyDermatologist},
			{Token: "skin doctor", Specialty: entities.SpecialtyDermatologist},
			{Token: "neurologist", Specialty: entities.SpecialtyNeurologist},
			{Token: "gynecologist", Specialty: entities.SpecialtyGynecologist},
			{Token: "gynaecologist", Specialty: entities.SpecialtyGynecologist},
			{Token: "urologist", Specialty: entities.SpecialtyUrologist},
		},
		FemaleWords:      []string{"female", "lady", "woman"},
		MaleWords:        []string{"male", "man doctor"},
		BudgetWords:      []string{"cheap", "affordable", "low fee"},
		BudgetFeeCeiling: 3000,
	}
}

// QueryInterpreterService turns free-text user input into structured
// search criteria via case-insensitive keyword matching. Interpretation
// is total: unrecognizable input yields a general_query intent, never
// an error.
type QueryInterpreterService struct {
	cfg    InterpreterConfig
	mapper *SymptomMapperService
}

// NewQueryInterpreterService creates a new query interpreter
func NewQueryInterpreterService(cfg InterpreterConfig, mapper *SymptomMapperService) *QueryInterpreterService {
	return &QueryInterpreterService{
		cfg:    cfg,
		mapper: mapper,
	}
}

// Interpret extracts search criteria from a user message.
func (s *QueryInterpreterService) Interpret(message string) entities.SearchCriteria {
	lower := strings.ToLower(message)

	criteria := entities.SearchCriteria{
		Intent: entities.IntentGeneralQuery,
	}

	criteria.City = s.extractCity(lower)

	// A mention of a city we do not cover ends interpretation; the caller
	// replies with the coverage notice.
	for _, city := range s.cfg.UnsupportedCities {
		if strings.Contains(lower, city) {
			criteria.Intent = entities.IntentUnsupportedCity
			return criteria
		}
	}

	for _, alias := range s.cfg.SpecialtyAliases {
		if strings.Contains(lower, alias.Token) {
			criteria.Specialty = alias.Specialty
			criteria.Intent = entities.IntentDoctorSearch
			break
		}
	}

	// No direct specialty mention: fall back to symptom mapping.
	if criteria.Specialty == "" {
		if specialty, ok := s.mapper.Map(message); ok {
			criteria.Specialty = specialty
			criteria.Intent = entities.IntentSymptomSearch
		}
	}

	criteria.Gender = s.extractGender(lower)

	for _, word := range s.cfg.BudgetWords {
		if strings.Contains(lower, word) {
			criteria.MaxFee = s.cfg.BudgetFeeCeiling
			break
		}
	}

	return criteria
}

func (s *QueryInterpreterService) extractCity(lower string) entities.City {
	for _, alias := range s.cfg.CityAliases {
		if strings.Contains(lower, alias.Token) {
			return alias.City
		}
	}
	return ""
}

func (s *QueryInterpreterService) extractGender(lower string) string {
	for _, word := range s.cfg.FemaleWords {
		if strings.Contains(lower, word) {
			return "female"
		}
	}
	for _, word := range s.cfg.MaleWords {
		if strings.Contains(lower, word) {
			return "male"
		}
	}
	return ""
}
