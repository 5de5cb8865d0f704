package response

import (
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase"
)

type JobResponse struct {
	JobID         string             `json:"jobId"`
	Customer      entities.Customer  `json:"customer"`
	Device        entities.Device    `json:"device"`
	Notes         string             `json:"notes,omitempty"`
	TimeSlot      string             `json:"timeSlot,omitempty"`
	TechnicianID  string             `json:"technicianId,omitempty"`
	AssignedBy    string             `json:"assignedBy,omitempty"`
	Status        string             `json:"status"`
	Timeline      entities.Timeline  `json:"timeline"`
	QCBefore      *entities.QCReport `json:"qcBefore"`
	QCAfter       *entities.QCReport `json:"qcAfter"`
	ServiceCharge float64            `json:"serviceCharge"`
	PartsCost     float64            `json:"partsCost"`
	GST           float64            `json:"gst"`
	Total         float64            `json:"total"`
	PaymentMethod string             `json:"paymentMethod,omitempty"`
	CreatedBy     string             `json:"createdBy"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

func FromJob(j entities.Job) JobResponse {
	return JobResponse{
		JobID:         j.ID,
		Customer:      j.Customer,
		Device:        j.Device,
		Notes:         j.Notes,
		TimeSlot:      j.TimeSlot,
		TechnicianID:  j.TechnicianID,
		AssignedBy:    j.AssignedBy,
		Status:        string(j.Status),
		Timeline:      j.Timeline,
		QCBefore:      j.QCBefore,
		QCAfter:       j.QCAfter,
		ServiceCharge: j.Financials.ServiceCharge,
		PartsCost:     j.Financials.PartsCost,
		GST:           j.Financials.GST,
		Total:         j.Financials.Total,
		PaymentMethod: string(j.PaymentMethod),
		CreatedBy:     j.CreatedBy,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
}

type JobListResponse struct {
	Jobs  []JobResponse `json:"jobs"`
	Count int           `json:"count"`
}

func FromJobs(jobs []entities.Job) JobListResponse {
	out := JobListResponse{Jobs: make([]JobResponse, 0, len(jobs)), Count: len(jobs)}
	for _, j := range jobs {
		out.Jobs = append(out.Jobs, FromJob(j))
	}
	return out
}

type HistoryEntryResponse struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	Status    string    `json:"status"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
}

func FromHistory(entries []entities.StatusHistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryResponse{
			ID:        e.ID,
			JobID:     e.JobID,
			Status:    string(e.Status),
			ChangedBy: e.ChangedBy,
			ChangedAt: e.ChangedAt,
		})
	}
	return out
}

type AuditResponse struct {
	usecase.AuditReport
	Consistent bool `json:"consistent"`
}

func FromAudit(r usecase.AuditReport) AuditResponse {
	return AuditResponse{AuditReport: r, Consistent: r.Consistent()}
}
