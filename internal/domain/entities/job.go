package entities

import "time"

// Customer is a snapshot taken when the job is created; it is not a reference.
type Customer struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	AltPhone string `json:"altPhone,omitempty"`
	Address  string `json:"address"`
	Location string `json:"googleLocation,omitempty"`
}

type Device struct {
	Type  string `json:"type"`
	Issue string `json:"issue"`
}

// Job is a single repair visit.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (technician_id-index): technician_id
//
// Status only moves forward along JobStatusOrder and every change is written
// together with its StatusHistoryEntry. Jobs are never deleted.
type Job struct {
	ID            string        `json:"jobId"`
	Customer      Customer      `json:"customer"`
	Device        Device        `json:"device"`
	Notes         string        `json:"notes,omitempty"`
	TimeSlot      string        `json:"timeSlot,omitempty"`
	TechnicianID  string        `json:"technicianId,omitempty"`
	AssignedBy    string        `json:"assignedBy,omitempty"`
	Status        JobStatus     `json:"status"`
	Timeline      Timeline      `json:"timeline"`
	QCBefore      *QCReport     `json:"qcBefore"`
	QCAfter       *QCReport     `json:"qcAfter"`
	Financials    Financials    `json:"financials"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	CreatedBy     string        `json:"createdBy"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// JobFilter narrows job listings. Empty fields match everything.
type JobFilter struct {
	Status       JobStatus
	TechnicianID string
}

func (f JobFilter) Match(j Job) bool {
	if f.Status != "" && j.Status != f.Status {
		return false
	}
	if f.TechnicianID != "" && j.TechnicianID != f.TechnicianID {
		return false
	}
	return true
}

// StatusChange is one accepted transition: the conditional job update plus
// the history entry that must be stored with it.
type StatusChange struct {
	JobID         string
	From          JobStatus
	To            JobStatus
	At            time.Time
	TechnicianID  string
	AssignedBy    string
	QCReport      *QCReport
	Financials    *Financials
	PaymentMethod PaymentMethod
	History       StatusHistoryEntry
}

// Apply returns j with the change applied. It does not check From.
func (c StatusChange) Apply(j Job) Job {
	j.Status = c.To
	j.Timeline.Set(c.To, c.At)
	if c.To == JobStatusQCAfter {
		end := c.At.UTC()
		j.Timeline.JobEndAt = &end
	}
	j.UpdatedAt = c.At.UTC()
	if c.TechnicianID != "" {
		j.TechnicianID = c.TechnicianID
		j.AssignedBy = c.AssignedBy
	}
	if c.QCReport != nil {
		qc := *c.QCReport
		switch c.To {
		case JobStatusQCBefore:
			j.QCBefore = &qc
		case JobStatusQCAfter:
			j.QCAfter = &qc
		}
	}
	if c.Financials != nil {
		j.Financials = *c.Financials
	}
	if c.PaymentMethod != "" {
		j.PaymentMethod = c.PaymentMethod
	}
	return j
}
