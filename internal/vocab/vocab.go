package vocab

// The clinic schema is a closed world: veterinarians, patients, species and
// medications are fixed enumerations, extendable only by redeploying.

type VetName string

const (
	VetDrSmith    VetName = "DR_SMITH"
	VetDrJohnson  VetName = "DR_JOHNSON"
	VetDrWilliams VetName = "DR_WILLIAMS"
	VetDrBrown    VetName = "DR_BROWN"
	VetDrDavis    VetName = "DR_DAVIS"

	// VetUnknown is the extraction sentinel for "not mentioned / not confident".
	// It is never a valid value for a persisted visit.
	VetUnknown VetName = "UNKNOWN"
)

type PatientName string

const (
	PatientMax     PatientName = "MAX"
	PatientBella   PatientName = "BELLA"
	PatientCharlie PatientName = "CHARLIE"
	PatientLuna    PatientName = "LUNA"
	PatientRocky   PatientName = "ROCKY"

	PatientUnknown PatientName = "UNKNOWN"
)

type Species string

const (
	SpeciesDog     Species = "DOG"
	SpeciesCat     Species = "CAT"
	SpeciesCow     Species = "COW"
	SpeciesChicken Species = "CHICKEN"
	SpeciesMonkey  Species = "MONKEY"

	SpeciesUnknown Species = "UNKNOWN"
)

type Medication string

const (
	MedParacetamol        Medication = "PARACETAMOL"
	MedAmoxicillin        Medication = "AMOXICILLIN"
	MedIbuprofen          Medication = "IBUPROFEN"
	MedKetamine           Medication = "KETAMINE"
	MedFentanyl           Medication = "FENTANYL"
	MedLSD                Medication = "LSD"
	MedAntiInflammatory   Medication = "ANTI_INFLAMMATORY"
	MedAntibioticOintment Medication = "ANTIBIOTIC_OINTMENT"

	// MedNone is the extraction sentinel for "no medications mentioned".
	MedNone Medication = "NONE"
)

func VetNames() []VetName {
	return []VetName{VetDrSmith, VetDrJohnson, VetDrWilliams, VetDrBrown, VetDrDavis}
}

func PatientNames() []PatientName {
	return []PatientName{PatientMax, PatientBella, PatientCharlie, PatientLuna, PatientRocky}
}

func AllSpecies() []Species {
	return []Species{SpeciesDog, SpeciesCat, SpeciesCow, SpeciesChicken, SpeciesMonkey}
}

func Medications() []Medication {
	return []Medication{
		MedParacetamol, MedAmoxicillin, MedIbuprofen, MedKetamine,
		MedFentanyl, MedLSD, MedAntiInflammatory, MedAntibioticOintment,
	}
}

// Valid reports membership in the enumeration. Sentinels are not members.

func (v VetName) Valid() bool {
	for _, m := range VetNames() {
		if v == m {
			return true
		}
	}
	return false
}

func (p PatientName) Valid() bool {
	for _, m := range PatientNames() {
		if p == m {
			return true
		}
	}
	return false
}

func (s Species) Valid() bool {
	for _, m := range AllSpecies() {
		if s == m {
			return true
		}
	}
	return false
}

func (m Medication) Valid() bool {
	for _, known := range Medications() {
		if m == known {
			return true
		}
	}
	return false
}
