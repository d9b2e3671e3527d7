package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"vetvox-be/internal/vocab"
	"vetvox-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	response string
	err      error
	messages []llm.Message
}

func (p *fakeProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	p.messages = messages
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func newLLM(response string) (*LLMStrategy, *fakeProvider) {
	p := &fakeProvider{response: response}
	return NewLLMStrategy(p, time.Second), p
}

func TestLLMExtractHappyPath(t *testing.T) {
	s, p := newLLM(`{
		"vetName": "DR_SMITH",
		"patientName": "MAX",
		"species": "DOG",
		"medications": ["AMOXICILLIN"],
		"notes": "Ear infection, started antibiotics.",
		"confidence": 0.92
	}`)

	analysis, err := s.Extract(context.Background(), "Dr Smith saw Max the dog, ear infection, amoxicillin")
	require.NoError(t, err)

	assert.Equal(t, vocab.VetDrSmith, analysis.VetName)
	assert.Equal(t, vocab.PatientMax, analysis.PatientName)
	assert.Equal(t, vocab.SpeciesDog, analysis.Species)
	assert.Equal(t, []vocab.Medication{vocab.MedAmoxicillin}, analysis.Medications)
	assert.Equal(t, "Ear infection, started antibiotics.", analysis.Notes)
	assert.Equal(t, 0.92, analysis.Confidence)
	assert.False(t, analysis.LowConfidence())

	// The system prompt rides along on every call.
	require.Len(t, p.messages, 2)
	assert.Equal(t, "system", p.messages[0].Role)
}

func TestLLMExtractUnwrapsProseAndFences(t *testing.T) {
	s, _ := newLLM("Here is the result:\n```json\n" +
		`{"vetName":"","patientName":"","species":"","medications":[],"notes":"","confidence":0.1}` +
		"\n```\nLet me know if you need anything else.")

	analysis, err := s.Extract(context.Background(), "mumbling")
	require.NoError(t, err)

	assert.Equal(t, vocab.VetUnknown, analysis.VetName)
	assert.Equal(t, vocab.PatientUnknown, analysis.PatientName)
	assert.Equal(t, vocab.SpeciesUnknown, analysis.Species)
	assert.Equal(t, []vocab.Medication{vocab.MedNone}, analysis.Medications)
	assert.True(t, analysis.LowConfidence())
}

func TestLLMExtractEmptyNotesFallBackToOriginal(t *testing.T) {
	s, _ := newLLM(`{"vetName":"UNKNOWN","patientName":"UNKNOWN","species":"UNKNOWN","medications":["NONE"],"notes":"","confidence":0.4}`)

	analysis, err := s.Extract(context.Background(), "original dictation text")
	require.NoError(t, err)
	assert.Equal(t, "original dictation text", analysis.Notes)
}

func TestLLMExtractEmptyInput(t *testing.T) {
	s, _ := newLLM("")
	_, err := s.Extract(context.Background(), "  \n ")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestLLMExtractProviderFailure(t *testing.T) {
	p := &fakeProvider{err: errors.New("connection refused")}
	s := NewLLMStrategy(p, time.Second)

	_, err := s.Extract(context.Background(), "some text")
	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)
}

func TestLLMExtractMalformedResponse(t *testing.T) {
	for _, response := range []string{
		"I could not process that request.",
		"{not valid json",
		"",
	} {
		s, _ := newLLM(response)
		_, err := s.Extract(context.Background(), "some text")
		var malformed *MalformedResponseError
		assert.ErrorAs(t, err, &malformed, "response: %q", response)
	}
}

func TestLLMExtractRejectsOutOfVocabulary(t *testing.T) {
	tests := []struct {
		name     string
		response string
		field    string
	}{
		{
			name:     "invalid vet",
			response: `{"vetName":"DR_HOUSE","patientName":"MAX","species":"DOG","medications":[],"notes":"n","confidence":0.9}`,
			field:    "vetName",
		},
		{
			name:     "invalid species",
			response: `{"vetName":"DR_SMITH","patientName":"MAX","species":"DRAGON","medications":[],"notes":"n","confidence":0.9}`,
			field:    "species",
		},
		{
			name:     "invalid medication",
			response: `{"vetName":"DR_SMITH","patientName":"MAX","species":"DOG","medications":["ASPIRIN"],"notes":"n","confidence":0.9}`,
			field:    "medications",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newLLM(tt.response)
			_, err := s.Extract(context.Background(), "some text")
			var schemaErr *SchemaValidationError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.field, schemaErr.Field)
		})
	}
}

func TestLLMExtractConfidenceValidation(t *testing.T) {
	for _, response := range []string{
		`{"vetName":"DR_SMITH","patientName":"MAX","species":"DOG","medications":[],"notes":"n"}`,
		`{"vetName":"DR_SMITH","patientName":"MAX","species":"DOG","medications":[],"notes":"n","confidence":1.4}`,
		`{"vetName":"DR_SMITH","patientName":"MAX","species":"DOG","medications":[],"notes":"n","confidence":-0.1}`,
	} {
		s, _ := newLLM(response)
		_, err := s.Extract(context.Background(), "some text")
		var schemaErr *SchemaValidationError
		require.ErrorAs(t, err, &schemaErr, "response: %q", response)
		assert.Equal(t, "confidence", schemaErr.Field)
	}
}

func TestLLMExtractNormalizesCase(t *testing.T) {
	s, _ := newLLM(`{"vetName":"dr_brown","patientName":" luna ","species":"cat","medications":["ibuprofen"],"notes":"n","confidence":0.8}`)

	analysis, err := s.Extract(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, vocab.VetDrBrown, analysis.VetName)
	assert.Equal(t, vocab.PatientLuna, analysis.PatientName)
	assert.Equal(t, vocab.SpeciesCat, analysis.Species)
	assert.Equal(t, []vocab.Medication{vocab.MedIbuprofen}, analysis.Medications)
}
