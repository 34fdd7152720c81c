package evaluation

import (
	"time"

	"github.com/medassist/docfinder/internal/domain/entities"
)

// Interpreter is the query-understanding surface under evaluation.
type Interpreter interface {
	Interpret(message string) entities.SearchCriteria
}

// EmergencyDetector flags messages that must bypass interpretation.
type EmergencyDetector interface {
	Detect(message string) bool
}

// Runner scores the interpreter and emergency detector against a golden
// query set. It needs no dataset: only the interpretation is evaluated.
type Runner struct {
	interpreter Interpreter
	emergency   EmergencyDetector
}

func NewRunner(interpreter Interpreter, emergency EmergencyDetector) *Runner {
	return &Runner{interpreter: interpreter, emergency: emergency}
}

// Run evaluates every golden query and aggregates accuracy.
func (r *Runner) Run(queries []GoldenQuery) *EvalSummary {
	summary := &EvalSummary{
		TotalQueries: len(queries),
		ByIntent:     make(map[entities.Intent]*IntentSummary),
	}

	var emergencyCorrect, intentCorrect, specialtyCorrect, cityCorrect int
	var nonEmergency int

	for _, gq := range queries {
		start := time.Now()
		detected := r.emergency.Detect(gq.Query)
		criteria := r.interpreter.Interpret(gq.Query)
		latency := time.Since(start)

		res := EvalResult{
			QueryID:          gq.ID,
			Query:            gq.Query,
			Intent:           criteria.Intent,
			EmergencyCorrect: detected == gq.Emergency,
			Latency:          latency,
		}

		if gq.Emergency {
			// Interpretation labels are not checked for emergency queries;
			// detection alone decides the turn.
			res.IntentCorrect = res.EmergencyCorrect
		} else {
			nonEmergency++
			res.IntentCorrect = criteria.Intent == gq.ExpectedIntent
			res.SpecialtyCorrect = criteria.Specialty == gq.ExpectedSpecialty
			res.CityCorrect = criteria.City == gq.ExpectedCity
			if res.SpecialtyCorrect {
				specialtyCorrect++
			}
			if res.CityCorrect {
				cityCorrect++
			}
		}

		if res.EmergencyCorrect {
			emergencyCorrect++
		}
		if res.IntentCorrect {
			intentCorrect++
		}
		summary.AvgLatency += latency

		key := gq.ExpectedIntent
		if gq.Emergency {
			key = "emergency"
		}
		is, ok := summary.ByIntent[key]
		if !ok {
			is = &IntentSummary{}
			summary.ByIntent[key] = is
		}
		is.Count++
		if res.IntentCorrect {
			is.IntentAccuracy++
		}
	}

	if summary.TotalQueries > 0 {
		n := summary.TotalQueries
		summary.EmergencyAccuracy = Accuracy(emergencyCorrect, n)
		summary.IntentAccuracy = Accuracy(intentCorrect, n)
		// Specialty and city labels apply only to non-emergency queries
		summary.SpecialtyAccuracy = Accuracy(specialtyCorrect, nonEmergency)
		summary.CityAccuracy = Accuracy(cityCorrect, nonEmergency)
		summary.AvgLatency /= time.Duration(n)
	}

	for _, is := range summary.ByIntent {
		if is.Count > 0 {
			is.IntentAccuracy /= float64(is.Count)
		}
	}

	return summary
}
