package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medassist/docfinder/internal/domain/entities"
)

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.0, Accuracy(0, 0))
	assert.Equal(t, 0.0, Accuracy(0, 4))
	assert.Equal(t, 0.75, Accuracy(3, 4))
	assert.Equal(t, 1.0, Accuracy(4, 4))
}

func TestConfusionMatrix(t *testing.T) {
	m := NewConfusionMatrix()
	m.Add(entities.IntentDoctorSearch, entities.IntentDoctorSearch)
	m.Add(entities.IntentDoctorSearch, entities.IntentDoctorSearch)
	m.Add(entities.IntentSymptomSearch, entities.IntentGeneralQuery)
	m.Add(entities.IntentGeneralQuery, entities.IntentGeneralQuery)

	assert.Equal(t, 4, m.Total())
	assert.Equal(t, 2, m.Count(entities.IntentDoctorSearch, entities.IntentDoctorSearch))
	assert.Equal(t, 1, m.Count(entities.IntentSymptomSearch, entities.IntentGeneralQuery))
	assert.Equal(t, 0, m.Count(entities.IntentSymptomSearch, entities.IntentSymptomSearch))
	assert.InDelta(t, 0.75, m.Accuracy(), 1e-9)
}

func TestConfusionMatrix_Empty(t *testing.T) {
	m := NewConfusionMatrix()
	assert.Equal(t, 0.0, m.Accuracy())
	assert.Equal(t, 0, m.Total())
}
