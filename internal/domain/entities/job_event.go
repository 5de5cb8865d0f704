package entities

import "time"

type JobEventType string

const (
	JobEventCreated       JobEventType = "created"
	JobEventStatusChanged JobEventType = "status_changed"
)

// JobEvent announces that a job changed. It carries enough to filter by
// technician; consumers fetch the job for everything else.
type JobEvent struct {
	Type         JobEventType `json:"type"`
	JobID        string       `json:"jobId"`
	Status       JobStatus    `json:"status"`
	TechnicianID string       `json:"technicianId,omitempty"`
	At           time.Time    `json:"at"`
}
