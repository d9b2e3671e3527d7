package mapper

import (
	"time"

	"gorm.io/datatypes"

	"vetvox-be/internal/entity"
	"vetvox-be/internal/model"
	"vetvox-be/internal/vocab"
)

type VisitMapper struct{}

func NewVisitMapper() *VisitMapper {
	return &VisitMapper{}
}

func (m *VisitMapper) ToEntity(v *model.Visit) *entity.Visit {
	if v == nil {
		return nil
	}

	var updatedAt *time.Time
	if !v.UpdatedAt.IsZero() && !v.UpdatedAt.Equal(v.VisitDate) {
		t := v.UpdatedAt
		updatedAt = &t
	}

	meds := make([]vocab.Medication, len(v.Medications))
	for i, med := range v.Medications {
		meds[i] = vocab.Medication(med)
	}

	return &entity.Visit{
		Id:          v.Id,
		VetName:     vocab.VetName(v.VetName),
		PatientName: vocab.PatientName(v.PatientName),
		Species:     vocab.Species(v.Species),
		Medications: meds,
		Notes:       v.Notes,
		VisitDate:   v.VisitDate,
		UpdatedAt:   updatedAt,
	}
}

func (m *VisitMapper) ToModel(v *entity.Visit) *model.Visit {
	if v == nil {
		return nil
	}

	// A never-edited visit goes to the database with updated_at pinned to
	// visit_date. GORM's autoUpdateTime skips non-zero values on insert, so
	// the two stay equal until the first real update.
	updatedAt := v.VisitDate
	if v.UpdatedAt != nil {
		updatedAt = *v.UpdatedAt
	}

	meds := make([]string, len(v.Medications))
	for i, med := range v.Medications {
		meds[i] = string(med)
	}

	return &model.Visit{
		Id:          v.Id,
		VetName:     string(v.VetName),
		PatientName: string(v.PatientName),
		Species:     string(v.Species),
		Medications: datatypes.NewJSONSlice(meds),
		Notes:       v.Notes,
		VisitDate:   v.VisitDate,
		UpdatedAt:   updatedAt,
	}
}

func (m *VisitMapper) ToEntities(visits []*model.Visit) []*entity.Visit {
	entities := make([]*entity.Visit, len(visits))
	for i, v := range visits {
		entities[i] = m.ToEntity(v)
	}
	return entities
}
