package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateVisitRequest struct {
	VetName     string   `json:"vetName" validate:"required"`
	PatientName string   `json:"patientName" validate:"required"`
	Species     string   `json:"species" validate:"required"`
	Medications []string `json:"medications"`
	Notes       string   `json:"notes"`
}

type VisitResponse struct {
	Id          uuid.UUID  `json:"id"`
	VetName     string     `json:"vetName"`
	PatientName string     `json:"patientName"`
	Species     string     `json:"species"`
	Medications []string   `json:"medications"`
	Notes       string     `json:"notes"`
	VisitDate   time.Time  `json:"visitDate"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// UpdateVisitNotesRequest distinguishes "notes absent" (rejected) from
// "notes explicitly empty" (a valid update), hence the pointer.
type UpdateVisitNotesRequest struct {
	Id    uuid.UUID `json:"id" validate:"required"`
	Notes *string   `json:"notes" validate:"required"`
}

type AnalyzeVisitRequest struct {
	TranscribedNotes string `json:"transcribedNotes"`
}

type VisitAnalysisResponse struct {
	VetName       string   `json:"vetName"`
	PatientName   string   `json:"patientName"`
	Species       string   `json:"species"`
	Medications   []string `json:"medications"`
	Notes         string   `json:"notes"`
	Confidence    float64  `json:"confidence"`
	LowConfidence bool     `json:"lowConfidence"`
}
