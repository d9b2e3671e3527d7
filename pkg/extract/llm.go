package extract

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"vetvox-be/internal/vocab"
	"vetvox-be/pkg/llm"
)

// LLMStrategy delegates extraction to a language model and validates its
// output against the fixed schema. One best-effort round trip: no retries.
type LLMStrategy struct {
	provider llm.LLMProvider
	timeout  time.Duration
}

var _ Strategy = &LLMStrategy{}

func NewLLMStrategy(provider llm.LLMProvider, timeout time.Duration) *LLMStrategy {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LLMStrategy{
		provider: provider,
		timeout:  timeout,
	}
}

// wireAnalysis mirrors the JSON shape the prompt demands. Confidence is a
// pointer so a missing field is distinguishable from an explicit zero.
type wireAnalysis struct {
	VetName     string   `json:"vetName"`
	PatientName string   `json:"patientName"`
	Species     string   `json:"species"`
	Medications []string `json:"medications"`
	Notes       string   `json:"notes"`
	Confidence  *float64 `json:"confidence"`
}

func (s *LLMStrategy) Extract(ctx context.Context, text string) (*VisitAnalysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.provider.Chat(ctx,
		[]llm.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		llm.WithTemperature(0.1),
	)
	if err != nil {
		return nil, &RequestError{Message: err.Error(), Err: err}
	}

	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, &MalformedResponseError{Raw: response}
	}

	var wire wireAnalysis
	if err := json.Unmarshal([]byte(jsonContent), &wire); err != nil {
		return nil, &MalformedResponseError{Raw: response}
	}

	return validate(&wire, text)
}

// validate enforces the fixed schema. Unmentioned fields resolve to the
// UNKNOWN/NONE sentinels; anything outside the vocabularies is rejected.
func validate(wire *wireAnalysis, original string) (*VisitAnalysis, error) {
	vet := vocab.VetName(strings.ToUpper(strings.TrimSpace(wire.VetName)))
	if vet == "" {
		vet = vocab.VetUnknown
	}
	if vet != vocab.VetUnknown && !vet.Valid() {
		return nil, &SchemaValidationError{Field: "vetName", Value: wire.VetName}
	}

	patient := vocab.PatientName(strings.ToUpper(strings.TrimSpace(wire.PatientName)))
	if patient == "" {
		patient = vocab.PatientUnknown
	}
	if patient != vocab.PatientUnknown && !patient.Valid() {
		return nil, &SchemaValidationError{Field: "patientName", Value: wire.PatientName}
	}

	species := vocab.Species(strings.ToUpper(strings.TrimSpace(wire.Species)))
	if species == "" {
		species = vocab.SpeciesUnknown
	}
	if species != vocab.SpeciesUnknown && !species.Valid() {
		return nil, &SchemaValidationError{Field: "species", Value: wire.Species}
	}

	meds := make([]vocab.Medication, 0, len(wire.Medications))
	for _, raw := range wire.Medications {
		med := vocab.Medication(strings.ToUpper(strings.TrimSpace(raw)))
		if med == vocab.MedNone {
			continue
		}
		if !med.Valid() {
			return nil, &SchemaValidationError{Field: "medications", Value: raw}
		}
		meds = append(meds, med)
	}
	if len(meds) == 0 {
		meds = []vocab.Medication{vocab.MedNone}
	}

	if wire.Confidence == nil {
		return nil, &SchemaValidationError{Field: "confidence", Value: "missing"}
	}
	confidence := *wire.Confidence
	if confidence < 0 || confidence > 1 {
		return nil, &SchemaValidationError{Field: "confidence", Value: strings.TrimSpace(jsonNumber(confidence))}
	}

	notes := strings.TrimSpace(wire.Notes)
	if notes == "" {
		notes = original
	}

	return &VisitAnalysis{
		VetName:     vet,
		PatientName: patient,
		Species:     species,
		Medications: meds,
		Notes:       notes,
		Confidence:  confidence,
	}, nil
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

// extractJSON pulls the outermost JSON object out of a model response that
// may be wrapped in prose or a markdown fence.
func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
