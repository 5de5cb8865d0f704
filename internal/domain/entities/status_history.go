package entities

import "time"

// StatusHistoryEntry is an append-only record of one applied transition,
// including the initial unassigned status written at creation.
//
// Storage model (DynamoDB):
//   - PK: job_id
//   - SK: changed_at#id
type StatusHistoryEntry struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	Status    JobStatus `json:"status"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}
