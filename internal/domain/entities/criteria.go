package entities

// Intent classifies what a user turn is asking for.
type Intent string

const (
	IntentDoctorSearch    Intent = "doctor_search"    // specialty named directly
	IntentSymptomSearch   Intent = "symptom_search"   // specialty inferred from symptoms
	IntentGeneralQuery    Intent = "general_query"    // no medical criteria found
	IntentUnsupportedCity Intent = "unsupported_city" // a city outside the covered set
)

// SearchCriteria is the structured filter derived from one user turn.
// Zero values mean "not specified"; interpretation never fails, it just
// leaves fields empty.
type SearchCriteria struct {
	Intent     Intent    `json:"intent"`
	Specialty  Specialty `json:"specialty,omitempty"`
	City       City      `json:"city,omitempty"`
	Gender     string    `json:"gender,omitempty"` // "female" or "male", best-effort only
	MaxFee     int       `json:"max_fee,omitempty"`
	MinReviews int       `json:"min_reviews,omitempty"`
}

// HasFilters reports whether any dataset filter was extracted.
func (c SearchCriteria) HasFilters() bool {
	return c.Specialty != "" || c.City != "" || c.Gender != "" || c.MaxFee > 0 || c.MinReviews > 0
}

// ScoredDoctor pairs a candidate with its ranking score.
type ScoredDoctor struct {
	Doctor    *Doctor            `json:"doctor"`
	Score     float64            `json:"score"`
	Breakdown map[string]float64 `json:"score_breakdown,omitempty"`
}
