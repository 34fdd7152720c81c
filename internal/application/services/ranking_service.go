package services

import (
	"sort"

	"github.com/medassist/docfinder/internal/domain/entities"
)

// RankingConfig holds the scoring weights. Constructed once at startup
// and passed in, never mutated afterwards.
type RankingConfig struct {
	ReviewWeight     float64
	ExperienceWeight float64
	FeeWeight        float64
	MaxResults       int
}

// DefaultRankingConfig returns the production scoring weights.
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		ReviewWeight:     10,
		ExperienceWeight: 5,
		FeeWeight:        0.01,
		MaxResults:       5,
	}
}

// RankingService scores and orders candidate doctors. Rank is a pure
// function of its inputs: identical candidate sets and criteria always
// produce identical ordering.
type RankingService struct {
	cfg RankingConfig
}

// NewRankingService creates a new ranking service
func NewRankingService(cfg RankingConfig) *RankingService {
	return &RankingService{cfg: cfg}
}

// Rank filters out candidates violating hard constraints in the criteria,
// scores the survivors, and returns them in descending score order. Ties
// break by review count descending, then name ascending. An empty
// candidate set yields an empty result, never an error.
func (s *RankingService) Rank(doctors []*entities.Doctor, criteria entities.SearchCriteria) []entities.ScoredDoctor {
	scored := make([]entities.ScoredDoctor, 0, len(doctors))
	for _, d := range doctors {
		if !s.matches(d, criteria) {
			continue
		}
		score, breakdown := s.score(d)
		scored = append(scored, entities.ScoredDoctor{
			Doctor:    d,
			Score:     score,
			Breakdown: breakdown,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Doctor.Reviews != scored[j].Doctor.Reviews {
			return scored[i].Doctor.Reviews > scored[j].Doctor.Reviews
		}
		return scored[i].Doctor.Name < scored[j].Doctor.Name
	})

	return scored
}

// Top returns the ranked head of the candidate set, bounded by MaxResults.
func (s *RankingService) Top(doctors []*entities.Doctor, criteria entities.SearchCriteria) []entities.ScoredDoctor {
	scored := s.Rank(doctors, criteria)
	if s.cfg.MaxResults > 0 && len(scored) > s.cfg.MaxResults {
		scored = scored[:s.cfg.MaxResults]
	}
	return scored
}

func (s *RankingService) matches(d *entities.Doctor, criteria entities.SearchCriteria) bool {
	if criteria.Specialty != "" && d.Specialty != criteria.Specialty {
		return false
	}
	if criteria.City != "" && d.City != criteria.City {
		return false
	}
	if criteria.MaxFee > 0 && d.Fee > criteria.MaxFee {
		return false
	}
	if criteria.MinReviews > 0 && d.Reviews < criteria.MinReviews {
		return false
	}
	return true
}

// score computes reviews*Wr + experienceYears*We - fee*Wf. A zero fee
// means "unknown" in the source data and contributes nothing, which
// advantages records with missing fees over cheap ones; kept as is for
// compatibility with the existing dataset rankings.
func (s *RankingService) score(d *entities.Doctor) (float64, map[string]float64) {
	breakdown := map[string]float64{
		"reviews":    float64(d.Reviews) * s.cfg.ReviewWeight,
		"experience": float64(d.ExperienceYears) * s.cfg.ExperienceWeight,
		"fee":        -float64(d.Fee) * s.cfg.FeeWeight,
	}
	return breakdown["reviews"] + breakdown["experience"] + breakdown["fee"], breakdown
}
