package extract

import (
	"fmt"
	"strings"

	"vetvox-be/internal/vocab"
)

// systemPrompt constrains the model to the closed vocabularies. Built at init
// from the vocab package so the prompt can never drift from the schema.
var systemPrompt = buildSystemPrompt()

func buildSystemPrompt() string {
	var b strings.Builder

	b.WriteString(`You are a veterinary assistant AI that analyzes transcribed notes from veterinary visits.
Your task is to extract key information from the transcribed text and format it according to the available options.

Available options for each field:
`)
	fmt.Fprintf(&b, "- vetName: %s\n", joinVets())
	fmt.Fprintf(&b, "- patientName: %s\n", joinPatients())
	fmt.Fprintf(&b, "- species: %s\n", joinSpecies())
	fmt.Fprintf(&b, "- medications: %s\n", joinMedications())

	b.WriteString(fmt.Sprintf(`
Rules:
1. Only use values from the available options.
2. If a field is not mentioned or you are not confident, use %q (for medications use [%q]).
3. Never guess: an uncertain field is %q, not the most likely option.
4. medications may contain multiple options.
5. Clean up and format the notes to be more professional.
6. Report your overall confidence as a number between 0 and 1.

Return only JSON with this exact shape:
{
  "vetName": string,
  "patientName": string,
  "species": string,
  "medications": string[],
  "notes": string,
  "confidence": number
}`, vocab.VetUnknown, vocab.MedNone, vocab.VetUnknown))

	return b.String()
}

func joinVets() string {
	parts := make([]string, 0)
	for _, v := range vocab.VetNames() {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ", ")
}

func joinPatients() string {
	parts := make([]string, 0)
	for _, p := range vocab.PatientNames() {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ", ")
}

func joinSpecies() string {
	parts := make([]string, 0)
	for _, s := range vocab.AllSpecies() {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}

func joinMedications() string {
	parts := make([]string, 0)
	for _, m := range vocab.Medications() {
		parts = append(parts, string(m))
	}
	return strings.Join(parts, ", ")
}
