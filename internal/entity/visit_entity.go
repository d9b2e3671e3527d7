package entity

import (
	"time"

	"github.com/google/uuid"

	"vetvox-be/internal/vocab"
)

type Visit struct {
	Id          uuid.UUID
	VetName     vocab.VetName
	PatientName vocab.PatientName
	Species     vocab.Species
	Medications []vocab.Medication
	Notes       string
	VisitDate   time.Time
	UpdatedAt   *time.Time
}
