package specification

import "gorm.io/gorm"

// NewestFirst orders visits by visit date descending, the default listing order.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("visit_date DESC")
}

// ByVetName filters visits by the attending veterinarian.
type ByVetName struct {
	VetName string
}

func (s ByVetName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("vet_name = ?", s.VetName)
}

// ByPatientName filters visits by patient.
type ByPatientName struct {
	PatientName string
}

func (s ByPatientName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("patient_name = ?", s.PatientName)
}
