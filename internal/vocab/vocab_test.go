package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVocabularySizes(t *testing.T) {
	assert.Len(t, VetNames(), 5)
	assert.Len(t, PatientNames(), 5)
	assert.Len(t, AllSpecies(), 5)
	assert.Len(t, Medications(), 8)
}

func TestValidMembership(t *testing.T) {
	assert.True(t, VetDrSmith.Valid())
	assert.True(t, PatientLuna.Valid())
	assert.True(t, SpeciesMonkey.Valid())
	assert.True(t, MedAntibioticOintment.Valid())

	assert.False(t, VetName("DR_HOUSE").Valid())
	assert.False(t, PatientName("REX").Valid())
	assert.False(t, Species("DRAGON").Valid())
	assert.False(t, Medication("ASPIRIN").Valid())
}

func TestSentinelsAreNotMembers(t *testing.T) {
	assert.False(t, VetUnknown.Valid())
	assert.False(t, PatientUnknown.Valid())
	assert.False(t, SpeciesUnknown.Valid())
	assert.False(t, MedNone.Valid())
}
