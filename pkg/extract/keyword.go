package extract

import (
	"context"
	"regexp"
	"strings"

	"vetvox-be/internal/vocab"
)

// KeywordStrategy matches the transcript against the vocabularies directly:
// no model, fully deterministic. It predates the LLM strategy and stays
// available behind the same interface for tests and model-free deployments.
type KeywordStrategy struct{}

var _ Strategy = &KeywordStrategy{}

func NewKeywordStrategy() *KeywordStrategy {
	return &KeywordStrategy{}
}

var drPattern = regexp.MustCompile(`(?i)dr\.?\s*(\w+)`)

func (s *KeywordStrategy) Extract(ctx context.Context, text string) (*VisitAnalysis, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}

	upper := strings.ToUpper(trimmed)
	matched := 0

	vet := vocab.VetUnknown
	if m := drPattern.FindStringSubmatch(trimmed); m != nil {
		needle := strings.ToUpper(m[1])
		for _, v := range vocab.VetNames() {
			if strings.Contains(string(v), needle) {
				vet = v
				matched++
				break
			}
		}
	}

	patient := vocab.PatientUnknown
	for _, p := range vocab.PatientNames() {
		if strings.Contains(upper, string(p)) {
			patient = p
			matched++
			break
		}
	}

	species := vocab.SpeciesUnknown
	for _, sp := range vocab.AllSpecies() {
		if strings.Contains(upper, string(sp)) {
			species = sp
			matched++
			break
		}
	}

	meds := make([]vocab.Medication, 0)
	for _, med := range vocab.Medications() {
		if strings.Contains(upper, string(med)) {
			meds = append(meds, med)
		}
	}
	if len(meds) == 0 {
		meds = []vocab.Medication{vocab.MedNone}
	}

	return &VisitAnalysis{
		VetName:     vet,
		PatientName: patient,
		Species:     species,
		Medications: meds,
		Notes:       trimmed,
		Confidence:  float64(matched) / 3,
	}, nil
}
