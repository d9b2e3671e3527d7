package extract

import (
	"context"
	"testing"

	"vetvox-be/internal/vocab"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordExtractFullMatch(t *testing.T) {
	s := NewKeywordStrategy()

	analysis, err := s.Extract(context.Background(),
		"Dr. Brown saw Bella the chicken today and prescribed LSD for observation")
	require.NoError(t, err)

	assert.Equal(t, vocab.VetDrBrown, analysis.VetName)
	assert.Equal(t, vocab.PatientBella, analysis.PatientName)
	assert.Equal(t, vocab.SpeciesChicken, analysis.Species)
	assert.Equal(t, []vocab.Medication{vocab.MedLSD}, analysis.Medications)
	assert.Equal(t, 1.0, analysis.Confidence)
	assert.False(t, analysis.LowConfidence())
}

func TestKeywordExtractPartialMatch(t *testing.T) {
	s := NewKeywordStrategy()

	analysis, err := s.Extract(context.Background(), "Checked on Max today, all good")
	require.NoError(t, err)

	assert.Equal(t, vocab.VetUnknown, analysis.VetName)
	assert.Equal(t, vocab.PatientMax, analysis.PatientName)
	assert.Equal(t, vocab.SpeciesUnknown, analysis.Species)
	assert.Equal(t, []vocab.Medication{vocab.MedNone}, analysis.Medications)
	assert.InDelta(t, 1.0/3, analysis.Confidence, 1e-9)
	assert.True(t, analysis.LowConfidence())
}

func TestKeywordExtractNoMatch(t *testing.T) {
	s := NewKeywordStrategy()

	analysis, err := s.Extract(context.Background(), "nothing recognizable here")
	require.NoError(t, err)

	assert.Equal(t, vocab.VetUnknown, analysis.VetName)
	assert.Equal(t, vocab.PatientUnknown, analysis.PatientName)
	assert.Equal(t, vocab.SpeciesUnknown, analysis.Species)
	assert.Equal(t, []vocab.Medication{vocab.MedNone}, analysis.Medications)
	assert.Equal(t, 0.0, analysis.Confidence)
}

func TestKeywordExtractMultipleMedications(t *testing.T) {
	s := NewKeywordStrategy()

	analysis, err := s.Extract(context.Background(),
		"Dr Smith gave the dog ketamine and paracetamol after the procedure")
	require.NoError(t, err)

	assert.Equal(t, vocab.VetDrSmith, analysis.VetName)
	assert.Equal(t, vocab.SpeciesDog, analysis.Species)
	assert.ElementsMatch(t,
		[]vocab.Medication{vocab.MedParacetamol, vocab.MedKetamine},
		analysis.Medications)
}

func TestKeywordExtractEmptyInput(t *testing.T) {
	s := NewKeywordStrategy()

	_, err := s.Extract(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestKeywordExtractPreservesOriginalNotes(t *testing.T) {
	s := NewKeywordStrategy()

	text := "Dr. Davis examined Rocky the monkey"
	analysis, err := s.Extract(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, text, analysis.Notes)
}
