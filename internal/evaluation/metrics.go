package evaluation

import "github.com/medassist/docfinder/internal/domain/entities"

// Accuracy is the fraction of correct outcomes. Returns 0.0 for an empty set.
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(correct) / float64(total)
}

// ConfusionMatrix counts expected-vs-actual intent pairs. Useful for spotting
// which intent the interpreter confuses a query class with.
type ConfusionMatrix struct {
	counts map[entities.Intent]map[entities.Intent]int
	total  int
}

// NewConfusionMatrix creates an empty confusion matrix.
func NewConfusionMatrix() *ConfusionMatrix {
	return &ConfusionMatrix{counts: make(map[entities.Intent]map[entities.Intent]int)}
}

// Add records one (expected, actual) observation.
func (m *ConfusionMatrix) Add(expected, actual entities.Intent) {
	row, ok := m.counts[expected]
	if !ok {
		row = make(map[entities.Intent]int)
		m.counts[expected] = row
	}
	row[actual]++
	m.total++
}

// Count returns the number of observations for an (expected, actual) pair.
func (m *ConfusionMatrix) Count(expected, actual entities.Intent) int {
	return m.counts[expected][actual]
}

// Accuracy returns the fraction of observations on the diagonal.
func (m *ConfusionMatrix) Accuracy() float64 {
	if m.total == 0 {
		return 0.0
	}
	correct := 0
	for intent, row := range m.counts {
		correct += row[intent]
	}
	return float64(correct) / float64(m.total)
}

// Total returns the number of recorded observations.
func (m *ConfusionMatrix) Total() int {
	return m.total
}
