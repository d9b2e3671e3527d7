package main

import (
	"log"
	"os"
	"time"

	"vetvox-be/internal/model"
	"vetvox-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

// Seeds a handful of sample visits so the dashboard has something to show on
// a fresh install. Safe to re-run: it skips seeding when visits already exist.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	var count int64
	if err := db.Model(&model.Visit{}).Count(&count).Error; err != nil {
		color.Red("Error: Failed to count visits: %v", err)
		os.Exit(1)
	}
	if count > 0 {
		color.Yellow("Skipping: %d visits already present", count)
		return
	}

	now := time.Now()
	visits := []model.Visit{
		{
			Id:          uuid.New(),
			VetName:     "DR_SMITH",
			PatientName: "MAX",
			Species:     "DOG",
			Medications: datatypes.NewJSONSlice([]string{"AMOXICILLIN", "ANTI_INFLAMMATORY"}),
			Notes:       "Annual checkup. Mild inflammation in left paw. Prescribed antibiotics and anti-inflammatory medication.",
			VisitDate:   now.Add(-96 * time.Hour),
		},
		{
			Id:          uuid.New(),
			VetName:     "DR_JOHNSON",
			PatientName: "BELLA",
			Species:     "CAT",
			Medications: datatypes.NewJSONSlice([]string{"PARACETAMOL"}),
			Notes:       "Routine vaccination. Slight fever noticed, prescribed paracetamol for comfort.",
			VisitDate:   now.Add(-72 * time.Hour),
		},
		{
			Id:          uuid.New(),
			VetName:     "DR_WILLIAMS",
			PatientName: "CHARLIE",
			Species:     "MONKEY",
			Medications: datatypes.NewJSONSlice([]string{"ANTIBIOTIC_OINTMENT"}),
			Notes:       "Minor scratch treatment. Applied antibiotic ointment and cleaned wound.",
			VisitDate:   now.Add(-48 * time.Hour),
		},
		{
			Id:          uuid.New(),
			VetName:     "DR_BROWN",
			PatientName: "LUNA",
			Species:     "CHICKEN",
			Medications: datatypes.NewJSONSlice([]string{"IBUPROFEN"}),
			Notes:       "Wing injury assessment. Prescribed pain relief medication.",
			VisitDate:   now.Add(-24 * time.Hour),
		},
		{
			Id:          uuid.New(),
			VetName:     "DR_DAVIS",
			PatientName: "ROCKY",
			Species:     "COW",
			Medications: datatypes.NewJSONSlice([]string{"AMOXICILLIN", "PARACETAMOL"}),
			Notes:       "Digestive issues treatment. Prescribed antibiotics and pain relief.",
			VisitDate:   now.Add(-6 * time.Hour),
		},
	}

	for _, v := range visits {
		// Seeded visits count as never edited.
		v.UpdatedAt = v.VisitDate
		if err := db.Create(&v).Error; err != nil {
			color.Red("Error: Failed to seed visit for %s: %v", v.PatientName, err)
			os.Exit(1)
		}
		color.Cyan("Seeded visit: %s / %s (%s)", v.VetName, v.PatientName, v.Species)
	}

	color.Green("Success: Seeded %d visits.", len(visits))
}
