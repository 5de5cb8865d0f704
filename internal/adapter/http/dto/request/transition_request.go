package request

import (
	"strings"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase"
)

// QCDataRequest mirrors entities.QCReport on the wire. Each check is "ok",
// "not_ok" or null.
type QCDataRequest struct {
	Display      entities.CheckResult `json:"display" binding:"qccheck"`
	FrontCamera  entities.CheckResult `json:"frontCamera" binding:"qccheck"`
	BackCamera   entities.CheckResult `json:"backCamera" binding:"qccheck"`
	FaceID       entities.CheckResult `json:"faceId" binding:"qccheck"`
	EarSpeaker   entities.CheckResult `json:"earSpeaker" binding:"qccheck"`
	Microphone   entities.CheckResult `json:"microphone" binding:"qccheck"`
	DownSpeaker  entities.CheckResult `json:"downSpeaker" binding:"qccheck"`
	Vibrator     entities.CheckResult `json:"vibrator" binding:"qccheck"`
	VolumeButton entities.CheckResult `json:"volumeButton" binding:"qccheck"`
	PowerButton  entities.CheckResult `json:"powerButton" binding:"qccheck"`
	Charging     entities.CheckResult `json:"charging" binding:"qccheck"`
	IMEI         string               `json:"imei"`
	Model        string               `json:"model"`
	Comments     string               `json:"comments"`
}

type FinancialsRequest struct {
	ServiceCharge float64 `json:"serviceCharge" binding:"gte=0"`
	PartsCost     float64 `json:"partsCost" binding:"gte=0"`
}

// TransitionRequest is the body of POST /v1/jobs/transition.
type TransitionRequest struct {
	JobID         string             `json:"jobId" binding:"required"`
	Status        string             `json:"status" binding:"required,jobstatus"`
	QCData        *QCDataRequest     `json:"qcData"`
	PaymentMethod string             `json:"paymentMethod" binding:"omitempty,oneof=cash upi card qr"`
	Financials    *FinancialsRequest `json:"financials"`
}

func (r TransitionRequest) ToUseCase() usecase.TransitionRequest {
	out := usecase.TransitionRequest{
		JobID:         strings.TrimSpace(r.JobID),
		Status:        entities.JobStatus(r.Status),
		PaymentMethod: entities.PaymentMethod(r.PaymentMethod),
	}
	if r.QCData != nil {
		q := entities.QCReport(*r.QCData)
		out.QCData = &q
	}
	if r.Financials != nil {
		out.Financials = &usecase.FinancialsInput{
			ServiceCharge: r.Financials.ServiceCharge,
			PartsCost:     r.Financials.PartsCost,
		}
	}
	return out
}
