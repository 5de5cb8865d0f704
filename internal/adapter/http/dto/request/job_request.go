package request

import (
	"strings"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase"
)

type CustomerRequest struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	AltPhone       string `json:"altPhone"`
	Address        string `json:"address" binding:"required"`
	GoogleLocation string `json:"googleLocation"`
}

type DeviceRequest struct {
	Type  string `json:"type" binding:"required"`
	Issue string `json:"issue" binding:"required"`
}

// CreateJobRequest is the admin form for a new repair visit.
type CreateJobRequest struct {
	Customer      CustomerRequest `json:"customer" binding:"required"`
	Device        DeviceRequest   `json:"device" binding:"required"`
	Notes         string          `json:"notes"`
	TimeSlot      string          `json:"timeSlot"`
	ServiceCharge float64         `json:"serviceCharge" binding:"gte=0"`
	PartsCost     float64         `json:"partsCost" binding:"gte=0"`
}

func (r CreateJobRequest) ToInput() usecase.CreateJobInput {
	return usecase.CreateJobInput{
		Customer: entities.Customer{
			Name:     r.Customer.Name,
			Phone:    r.Customer.Phone,
			AltPhone: strings.TrimSpace(r.Customer.AltPhone),
			Address:  r.Customer.Address,
			Location: strings.TrimSpace(r.Customer.GoogleLocation),
		},
		Device:        entities.Device{Type: r.Device.Type, Issue: r.Device.Issue},
		Notes:         r.Notes,
		TimeSlot:      r.TimeSlot,
		ServiceCharge: r.ServiceCharge,
		PartsCost:     r.PartsCost,
	}
}

// JobListQuery binds the list and export filters from the query string.
type JobListQuery struct {
	Status       string `form:"status" binding:"omitempty,jobstatus"`
	TechnicianID string `form:"technician_id"`
}

func (q JobListQuery) ToFilter() entities.JobFilter {
	return entities.JobFilter{
		Status:       entities.JobStatus(strings.TrimSpace(q.Status)),
		TechnicianID: strings.TrimSpace(q.TechnicianID),
	}
}

type AssignRequest struct {
	JobID        string `json:"jobId" binding:"required"`
	TechnicianID string `json:"technicianId" binding:"required"`
}
