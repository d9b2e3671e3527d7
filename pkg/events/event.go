package events

import "time"

// Topic names on the internal bus.
const (
	TopicVisitCreated      = "visit.created"
	TopicVisitNotesUpdated = "visit.notes_updated"
)

// Event is the contract for everything published on the bus.
type Event interface {
	// EventType returns the event's topic (e.g. "visit.created").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func VisitCreated(id, vetName, patientName string) Event {
	return BaseEvent{
		Type: TopicVisitCreated,
		Data: map[string]interface{}{
			"visit_id":     id,
			"vet_name":     vetName,
			"patient_name": patientName,
		},
		OccurredAt: time.Now(),
	}
}

func VisitNotesUpdated(id string) Event {
	return BaseEvent{
		Type: TopicVisitNotesUpdated,
		Data: map[string]interface{}{
			"visit_id": id,
		},
		OccurredAt: time.Now(),
	}
}
