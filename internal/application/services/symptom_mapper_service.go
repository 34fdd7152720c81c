package services

import (
	"strings"

	"github.com/medassist/docfinder/internal/domain/entities"
)

// SymptomMapConfig holds the symptom keyword tables. Constructed once at
// startup and passed in, never mutated afterwards.
type SymptomMapConfig struct {
	Keywords map[entities.Specialty][]string

	// Priority breaks ties when two specialties have the same keyword
	// overlap, so mapping is deterministic.
	Priority []entities.Specialty
}

// DefaultSymptomMapConfig returns the built-in symptom keyword tables.
func DefaultSymptomMapConfig() SymptomMapConfig {
	return SymptomMapConfig{
		Keywords: map[entities.Specialty][]string{
			entities.SpecialtyPsychiatrist: {
				"anxiety", "depression", "panic", "insomnia", "mental health", "stress",
				"bipolar", "ocd", "obsessive", "compulsive", "ptsd", "trauma", "suicide",
				"suicidal", "self harm", "mood swings", "schizophrenia", "psychosis",
				"hallucination", "delusion", "sleep disorder", "eating disorder",
				"anorexia", "bulimia", "adhd", "attention deficit", "anger management",
			},
			entities.SpecialtyDermatologist: {
				"rash", "acne", "eczema", "skin", "itching", "psoriasis", "allergic reaction",
				"hives", "dermatitis", "pigmentation", "melasma", "vitiligo", "warts",
				"moles", "skin tag", "fungal infection", "ringworm", "hair loss",
				"alopecia", "dandruff", "scalp", "nail", "pimples", "blackheads",
				"wrinkles", "aging skin", "dry skin", "oily skin", "sunburn",
			},
			entities.SpecialtyNeurologist: {
				"headache", "migraine", "seizure", "numbness", "tingling", "paralysis",
				"stroke", "epilepsy", "tremor", "parkinsons", "multiple sclerosis",
				"neuropathy", "vertigo", "dizziness", "memory loss", "dementia",
				"alzheimers", "confusion", "weakness", "facial pain", "trigeminal",
				"bells palsy", "sciatica", "nerve pain", "coordination problems",
			},
			entities.SpecialtyGynecologist: {
				"pregnancy", "menstrual", "period", "pcos", "infertility", "pelvic pain",
				"ovarian", "uterine", "vaginal", "cervical", "breast", "menopause",
				"contraception", "miscarriage", "abortion", "prenatal", "postnatal",
				"labor", "delivery", "cesarean", "fibroids", "endometriosis",
				"irregular periods", "painful periods", "heavy bleeding", "discharge",
			},
			entities.SpecialtyUrologist: {
				"urinary", "kidney", "bladder", "prostate", "uti", "stones", "incontinence",
				"frequent urination", "painful urination", "blood in urine", "hematuria",
				"erectile dysfunction", "impotence", "kidney stone", "bladder infection",
				"prostate enlargement", "bph", "urethral", "testicular", "scrotal",
				"male infertility", "penis", "urology",
			},
		},
		Priority: entities.SupportedSpecialties(),
	}
}

// SymptomMapperService maps free-text symptom descriptions to a specialty
// by keyword overlap.
type SymptomMapperService struct {
	keywords map[entities.Specialty][]string
	priority []entities.Specialty
}

// NewSymptomMapperService creates a new symptom mapper
func NewSymptomMapperService(cfg SymptomMapConfig) *SymptomMapperService {
	return &SymptomMapperService{
		keywords: cfg.Keywords,
		priority: cfg.Priority,
	}
}

// Map returns the specialty whose keywords overlap the message most. When
// several specialties tie, the configured priority order decides. The
// second return value is false when no keyword matches at all; the caller
// must ask for clarification rather than guess.
func (s *SymptomMapperService) Map(message string) (entities.Specialty, bool) {
	lower := strings.ToLower(message)

	var best entities.Specialty
	bestScore := 0

	// Iterate in priority order so ties resolve deterministically.
	for _, specialty := range s.priority {
		score := 0
		for _, keyword := range s.keywords[specialty] {
			if strings.Contains(lower, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = specialty
			bestScore = score
		}
	}

	if bestScore == 0 {
		return "", false
	}
	return best, true
}
