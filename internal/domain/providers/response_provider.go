package providers

import (
	"context"

	"github.com/medassist/docfinder/internal/domain/entities"
)

// ComposeRequest is the bounded payload handed to the generation
// collaborator: the user's text, the opaque transcript, and the ranked
// records the reply must be phrased from. The provider must not introduce
// doctors, cities, or specialties beyond this payload.
type ComposeRequest struct {
	UserText   string
	Transcript []entities.TurnMessage
	Criteria   entities.SearchCriteria
	Doctors    []entities.ScoredDoctor
}

// ResponseProvider phrases a human-readable reply from matched records.
// Implementations return an error on failure; the caller degrades to a plain
// listing, it never retries here.
type ResponseProvider interface {
	Compose(ctx context.Context, req ComposeRequest) (string, error)
}
