package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medassist/docfinder/internal/domain/entities"
)

func rankingFixture() []*entities.Doctor {
	return []*entities.Doctor{
		{Name: "Dr. Ayesha Tariq", Specialty: entities.SpecialtyDermatologist, City: entities.CityLahore, Reviews: 120, ExperienceYears: 8, Fee: 900},
		{Name: "Dr. Bilal Aslam", Specialty: entities.SpecialtyDermatologist, City: entities.CityLahore, Reviews: 45, ExperienceYears: 20, Fee: 700},
		{Name: "Dr. Sana Khalid", Specialty: entities.SpecialtyDermatologist, City: entities.CityLahore, Reviews: 300, ExperienceYears: 5, Fee: 2500},
		{Name: "Dr. Omar Farooq", Specialty: entities.SpecialtyDermatologist, City: entities.CityLahore, Reviews: 10, ExperienceYears: 3, Fee: 4000},
		{Name: "Dr. Zara Iqbal", Specialty: entities.SpecialtyDermatologist, City: entities.CityLahore, Reviews: 80, ExperienceYears: 12, Fee: 3500},
	}
}

func TestRank_SortsByScoreDescending(t *testing.T) {
	svc := NewRankingService(DefaultRankingConfig())

	results := svc.Rank(rankingFixture(), entities.SearchCriteria{})

	require.Len(t, results, 5)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	// 300 reviews dominates: 300*10 + 5*5 - 2500*0.01 = 3000
	assert.Equal(t, "Dr. Sana Khalid", results[0].Doctor.Name)
}

func TestRank_ScoreFormula(t *testing.T) {
	svc := NewRankingService(DefaultRankingConfig())

	doctor := &entities.Doctor{
		Name:            "Dr. Test",
		Specialty:       entities.SpecialtyUrologist,
		City:            entities.CityLahore,
		Reviews:         100,
		ExperienceYears: 10,
		Fee:             2000,
	}

	results := svc.Rank([]*entities.Doctor{doctor}, entities.SearchCriteria{})
	require.Len(t, results, 1)
	// 100*10 + 10*5 - 2000*0.01 = 1030
	assert.InDelta(t, 1030.0, results[0].Score, 0.0001)
	assert.InDelta(t, 1000.0, results[0].Breakdown["reviews"], 0.0001)
	assert.InDelta(t, 50.0, results[0].Breakdown["experience"], 0.0001)
	assert.InDelta(t, -20.0, results[0].Breakdown["fee"], 0.0001)
}

func TestRank_Deterministic(t *testing.T) {
	svc := NewRankingService(DefaultRankingConfig())
	criteria := entities.SearchCriteria{City: entities.CityLahore}

	first := svc.Rank(rankingFixture(), criteria)
	second := svc.Rank(rankingFixture(), criteria)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Doctor.Name, second[i].Doctor.Name)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestRank_TieBreaksByReviewsThenName(t *testing.T) {
	svc := NewRankingService(DefaultRankingConfig())

	// Same score, different reviews: reviews decide.
	a := &entities.Doctor{Name: "Dr. A", Specialty: entities.SpecialtyUrologist, City: entities.CityLahore, Reviews: 10, ExperienceYears: 0, Fee: 0}
	b := &entities.Doctor{Name: "Dr. B", Specialty: entities.SpecialtyUrologist, City: entities.CityLahore, Reviews: 0, ExperienceYears: 20, Fee: 0}
	results := svc.Rank([]*entities.Doctor{b, a}, entities.SearchCriteria{})
	require.Len(t, results, 2)
	assert.Equal(t, "Dr. A", results[0].Doctor.Name)

	// Fully identical numbers: name decides.
	c := &entities.Doctor{Name: "Dr. C", Specialty: entities.SpecialtyUrologist, City: entities.CityLahore, Reviews: 5, ExperienceYears: 5, Fee: 100}
	d := &entities.Doctor{Name: "Dr. D", Specialty: entities.SpecialtyUrologist, City: entities.CityLahore, Reviews: 5, ExperienceYears: 5, Fee: 100}
	results = svc.Rank([]*entities.Doctor{d, c}, entities.SearchCriteria{})
	require.Len(t, results, 2)
	assert.Equal(t, "Dr. C", results[0].Doctor.Name)
}

func TestRank_ScoreMonotonicity(t *testing.T) {
	svc := NewRankingService(DefaultRankingConfig())

	base := &entities.Doctor{Name: "Dr. Base", Specialty: entities.SpecialtyUrologist, City: entities.CityLahore, Reviews: 50, ExperienceYears: 10, Fee: 1000}
	moreReviews := &entities.Doctor{Name: "Dr. Reviews", Specialty: entities.SpecialtyUrologist, City: entities.CityLahore, Reviews: 51, ExperienceYears: 10, Fee: 1000}
	moreExperience := &entities.Doctor{Name: "Dr. Exp", Specialty: entities.SpecialtyUrologist, City: entities.CityLahore, Reviews: 50, ExperienceYears: 11, Fee: 1000}
	higherFee := &entities.Doctor{Name: "Dr. Fee", Specialty: entities.SpecialtyUrologist, City: entities.CityLahore, Reviews: 50, ExperienceYears: 10, Fee: 1100}

	score := func(d *entities.Doctor) float64 {
		results := svc.Rank([]*entities.Doctor{d}, entities.SearchCriteria{})
		return results[0].Score
	}

	assert.Greater(t, score(moreReviews), score(base))
	assert.Greater(t, score(moreExperience), score(base))
	assert.Less(t, score(higherFee), score(base))
}

func TestRank_FeeCeilingFilters(t *testing.T) {
	svc := NewRankingService(DefaultRankingConfig())
	criteria := entities.SearchCriteria{
		Specialty: entities.SpecialtyDermatologist,
		City:      entities.CityLahore,
		MaxFee:    1000,
	}

	results := svc.Rank(rankingFixture(), criteria)

	// 900 and 700 survive; 2500, 4000, 3500 exceed the ceiling.
	require.Len(t, results, 2)
	assert.Equal(t, "Dr. Ayesha Tariq", results[0].Doctor.Name)
	assert.Equal(t, "Dr. Bilal Aslam", results[1].Doctor.Name)
}

func TestRank_EmptyCandidates(t *testing.T) {
	svc := NewRankingService(DefaultRankingConfig())

	results := svc.Rank(nil, entities.SearchCriteria{})
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestTop_BoundsResults(t *testing.T) {
	cfg := DefaultRankingConfig()
	cfg.MaxResults = 3
	svc := NewRankingService(cfg)

	results := svc.Top(rankingFixture(), entities.SearchCriteria{})
	assert.Len(t, results, 3)
}

func TestRank_ZeroFeeOutranksCheapFee(t *testing.T) {
	svc := NewRankingService(DefaultRankingConfig())

	unknownFee := &entities.Doctor{Name: "Dr. Unknown", Specialty: entities.SpecialtyUrologist, City: entities.CityLahore, Reviews: 10, Fee: 0}
	cheapFee := &entities.Doctor{Name: "Dr. Cheap", Specialty: entities.SpecialtyUrologist, City: entities.CityLahore, Reviews: 10, Fee: 100}

	results := svc.Rank([]*entities.Doctor{cheapFee, unknownFee}, entities.SearchCriteria{})
	require.Len(t, results, 2)
	// A zero (unknown) fee scores above a small real fee.
	assert.Equal(t, "Dr. Unknown", results[0].Doctor.Name)
}
