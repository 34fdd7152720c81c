package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medassist/docfinder/internal/domain/entities"
)

func newTestInterpreter() *QueryInterpreterService {
	mapper := NewSymptomMapperService(DefaultSymptomMapConfig())
	return NewQueryInterpreterService(DefaultInterpreterConfig(), mapper)
}

func TestInterpret_DirectSpecialtyAndCity(t *testing.T) {
	svc := newTestInterpreter()

	criteria := svc.Interpret("I need a psychiatrist in Lahore")

	assert.Equal(t, entities.IntentDoctorSearch, criteria.Intent)
	assert.Equal(t, entities.SpecialtyPsychiatrist, criteria.Specialty)
	assert.Equal(t, entities.CityLahore, criteria.City)
}

func TestInterpret_CityAbbreviations(t *testing.T) {
	svc := newTestInterpreter()

	tests := []struct {
		message  string
		expected entities.City
	}{
		{"dermatologist in islamabad", entities.CityIslamabad},
		{"dermatologist in isb", entities.CityIslamabad},
		{"dermatologist in lhr", entities.CityLahore},
		{"Best dermatologist in LAHORE", entities.CityLahore},
	}

	for _, tt := range tests {
		criteria := svc.Interpret(tt.message)
		assert.Equal(t, tt.expected, criteria.City, "message: %q", tt.message)
	}
}

func TestInterpret_SymptomsMapToSpecialty(t *testing.T) {
	svc := newTestInterpreter()

	criteria := svc.Interpret("Anxiety and panic attacks")

	assert.Equal(t, entities.IntentSymptomSearch, criteria.Intent)
	assert.Equal(t, entities.SpecialtyPsychiatrist, criteria.Specialty)
	assert.Empty(t, criteria.City)
}

func TestInterpret_UnsupportedCity(t *testing.T) {
	svc := newTestInterpreter()

	for _, city := range []string{"Karachi", "peshawar", "Quetta", "Multan", "faisalabad", "Rawalpindi"} {
		criteria := svc.Interpret("I need a doctor in " + city)
		assert.Equal(t, entities.IntentUnsupportedCity, criteria.Intent, "city: %s", city)
	}
}

func TestInterpret_GenderPreference(t *testing.T) {
	svc := newTestInterpreter()

	criteria := svc.Interpret("Female gynecologist near me")
	assert.Equal(t, "female", criteria.Gender)

	criteria = svc.Interpret("lady doctor for skin problems")
	assert.Equal(t, "female", criteria.Gender)

	criteria = svc.Interpret("male urologist in lahore")
	assert.Equal(t, "male", criteria.Gender)

	criteria = svc.Interpret("urologist in lahore")
	assert.Empty(t, criteria.Gender)
}

func TestInterpret_BudgetWordsSetFeeCeiling(t *testing.T) {
	svc := newTestInterpreter()

	criteria := svc.Interpret("cheap dermatologist in lahore")
	assert.Equal(t, 3000, criteria.MaxFee)

	criteria = svc.Interpret("affordable psychiatrist")
	assert.Equal(t, 3000, criteria.MaxFee)

	criteria = svc.Interpret("dermatologist in lahore")
	assert.Zero(t, criteria.MaxFee)
}

func TestInterpret_NoKeywordsIsGeneralQuery(t *testing.T) {
	svc := newTestInterpreter()

	criteria := svc.Interpret("hello there")
	assert.Equal(t, entities.IntentGeneralQuery, criteria.Intent)
	assert.False(t, criteria.HasFilters())

	criteria = svc.Interpret("")
	assert.Equal(t, entities.IntentGeneralQuery, criteria.Intent)
}

func TestInterpret_SpecialtySynonyms(t *testing.T) {
	svc := newTestInterpreter()

	criteria := svc.Interpret("any good skin specialist in islamabad?")
	assert.Equal(t, entities.IntentDoctorSearch, criteria.Intent)
	assert.Equal(t, entities.SpecialtyDermatologist, criteria.Specialty)
}
