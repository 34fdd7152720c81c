package evaluation

import (
	"time"

	"github.com/medassist/docfinder/internal/domain/entities"
)

// GoldenQuery is one labeled test query with its expected interpretation.
// Emergency queries set Emergency and leave the other expectations empty.
type GoldenQuery struct {
	ID                string             `json:"id"`
	Query             string             `json:"query"`
	Emergency         bool               `json:"emergency,omitempty"`
	ExpectedIntent    entities.Intent    `json:"expected_intent,omitempty"`
	ExpectedSpecialty entities.Specialty `json:"expected_specialty,omitempty"`
	ExpectedCity      entities.City      `json:"expected_city,omitempty"`
	Difficulty        string             `json:"difficulty"` // easy, medium, hard
}

// EvalResult holds the evaluation outcome for a single query.
type EvalResult struct {
	QueryID          string
	Query            string
	Intent           entities.Intent
	EmergencyCorrect bool
	IntentCorrect    bool
	SpecialtyCorrect bool
	CityCorrect      bool
	Latency          time.Duration
}

// EvalSummary holds aggregate accuracy across all golden queries.
type EvalSummary struct {
	TotalQueries      int
	EmergencyAccuracy float64
	IntentAccuracy    float64
	SpecialtyAccuracy float64
	CityAccuracy      float64
	AvgLatency        time.Duration
	ByIntent          map[entities.Intent]*IntentSummary
}

// IntentSummary holds accuracy grouped by expected intent.
type IntentSummary struct {
	Count          int
	IntentAccuracy float64
}
