package mapper

import (
	"testing"
	"time"

	"vetvox-be/internal/entity"
	"vetvox-be/internal/vocab"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitRoundTrip(t *testing.T) {
	m := NewVisitMapper()

	now := time.Now().Truncate(time.Second)
	updated := now.Add(time.Hour)
	visit := &entity.Visit{
		Id:          uuid.New(),
		VetName:     vocab.VetDrJohnson,
		PatientName: vocab.PatientBella,
		Species:     vocab.SpeciesCat,
		Medications: []vocab.Medication{vocab.MedIbuprofen, vocab.MedAntiInflammatory},
		Notes:       "limping on left hind leg",
		VisitDate:   now,
		UpdatedAt:   &updated,
	}

	back := m.ToEntity(m.ToModel(visit))
	require.NotNil(t, back)
	assert.Equal(t, visit.Id, back.Id)
	assert.Equal(t, visit.VetName, back.VetName)
	assert.Equal(t, visit.PatientName, back.PatientName)
	assert.Equal(t, visit.Species, back.Species)
	assert.Equal(t, visit.Medications, back.Medications)
	assert.Equal(t, visit.Notes, back.Notes)
	require.NotNil(t, back.UpdatedAt)
	assert.True(t, updated.Equal(*back.UpdatedAt))
}

func TestToEntityNeverUpdatedVisit(t *testing.T) {
	m := NewVisitMapper()

	visit := &entity.Visit{
		Id:          uuid.New(),
		VetName:     vocab.VetDrSmith,
		PatientName: vocab.PatientMax,
		Species:     vocab.SpeciesDog,
		Medications: []vocab.Medication{},
		VisitDate:   time.Now(),
	}

	// ToModel pins updated_at to visit_date so autoUpdateTime leaves it
	// alone on insert; the entity treats equality as "never edited".
	model := m.ToModel(visit)
	assert.True(t, model.UpdatedAt.Equal(model.VisitDate))

	back := m.ToEntity(model)
	require.NotNil(t, back)
	assert.Nil(t, back.UpdatedAt)
}

func TestNilSafety(t *testing.T) {
	m := NewVisitMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
	assert.Empty(t, m.ToEntities(nil))
}
