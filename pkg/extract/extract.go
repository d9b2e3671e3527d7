// Package extract maps free-text visit transcripts onto the clinic's closed
// vocabularies. Two interchangeable strategies satisfy the same contract: an
// LLM-backed one and a deterministic keyword matcher.
package extract

import (
	"context"
	"errors"
	"fmt"

	"vetvox-be/internal/vocab"
)

// VisitAnalysis is the structured extraction result. Identity fields may hold
// the UNKNOWN sentinel and medications the NONE sentinel; the caller pre-fills
// a form with it and the clinician reviews before anything is persisted.
type VisitAnalysis struct {
	VetName     vocab.VetName      `json:"vetName"`
	PatientName vocab.PatientName  `json:"patientName"`
	Species     vocab.Species      `json:"species"`
	Medications []vocab.Medication `json:"medications"`
	Notes       string             `json:"notes"`
	Confidence  float64            `json:"confidence"`
}

// ConfidenceThreshold marks results worth a second look. Advisory only: a
// low-confidence analysis is flagged, never rejected.
const ConfidenceThreshold = 0.7

// LowConfidence reports whether the analysis should be flagged for review.
func (a *VisitAnalysis) LowConfidence() bool {
	return a.Confidence < ConfidenceThreshold
}

// Strategy extracts a VisitAnalysis from transcribed text.
type Strategy interface {
	Extract(ctx context.Context, text string) (*VisitAnalysis, error)
}

// ErrEmptyInput rejects input that is blank after trimming.
var ErrEmptyInput = errors.New("transcribed notes cannot be empty")

// MalformedResponseError means the model's output was not parseable as the
// expected structure.
type MalformedResponseError struct {
	Raw string
}

func (e *MalformedResponseError) Error() string {
	return "extraction response is not valid JSON"
}

// SchemaValidationError means the parsed output failed the fixed schema: an
// enum value outside its vocabulary, or a confidence outside [0,1]. There is
// no silent coercion.
type SchemaValidationError struct {
	Field string
	Value string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("extraction field %s has invalid value %q", e.Field, e.Value)
}

// RequestError wraps an upstream transport or non-success failure.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("extraction request failed: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("extraction request failed: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
