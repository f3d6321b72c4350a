package models

import "time"

// EntryKind discriminates ingest events.
type EntryKind string

const (
	EntryKindCycle   EntryKind = "cycle"
	EntryKindSymptom EntryKind = "symptom"
)

// Entry is one ingest event flowing through the pipeline: either a cycle
// record or a symptom observation, from the HTTP API or the sync gateway.
type Entry struct {
	Kind       EntryKind           `json:"kind"`
	UserID     string              `json:"userId"`
	Cycle      *CycleRecord        `json:"cycle,omitempty"`
	Symptom    *SymptomObservation `json:"symptom,omitempty"`
	ReceivedAt time.Time           `json:"receivedAt"`
}

// Valid reports whether the entry carries the payload its kind promises.
func (e *Entry) Valid() bool {
	if e == nil || e.UserID == "" {
		return false
	}
	switch e.Kind {
	case EntryKindCycle:
		return e.Cycle != nil && !e.Cycle.StartDate.IsZero()
	case EntryKindSymptom:
		return e.Symptom != nil && !e.Symptom.Date.IsZero() && e.Symptom.Type != ""
	default:
		return false
	}
}
