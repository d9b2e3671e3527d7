package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Visit struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VetName     string                      `gorm:"type:varchar(32);not null"`
	PatientName string                      `gorm:"type:varchar(32);not null"`
	Species     string                      `gorm:"type:varchar(32);not null"`
	Medications datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Notes       string                      `gorm:"type:text"`
	VisitDate   time.Time                   `gorm:"autoCreateTime;index:idx_visits_visit_date,sort:desc"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`
}

func (Visit) TableName() string {
	return "visits"
}
