package usecase

import (
	"context"
	"errors"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("repairdesk/usecase")

// FinancialsInput carries the client-editable money fields. GST and total are
// always recomputed.
type FinancialsInput struct {
	ServiceCharge float64
	PartsCost     float64
}

// TransitionRequest asks to move a job to its next status.
type TransitionRequest struct {
	JobID         string
	Status        entities.JobStatus
	QCData        *entities.QCReport
	PaymentMethod entities.PaymentMethod
	Financials    *FinancialsInput
}

// ITransitionUseCase is the job status state machine.
//
// A request is checked in this order: caller role, job existence, workflow
// sequence, role permission, attachments. The write is a compare-and-swap on
// the current status so concurrent requests for the same step resolve to one
// winner.
type ITransitionUseCase interface {
	ApplyTransition(ctx context.Context, actorID string, req TransitionRequest) (entities.Job, error)
}

type TransitionUseCase struct {
	roles IRoleAuthority
	statusCommitter
}

var _ ITransitionUseCase = (*TransitionUseCase)(nil)

func NewTransitionUseCase(roles IRoleAuthority, jobs interfaces.IJobRepository, notifier interfaces.IJobNotifier) *TransitionUseCase {
	return &TransitionUseCase{
		roles:           roles,
		statusCommitter: newStatusCommitter(jobs, notifier),
	}
}

// WithObserver sets the sink for transition outcomes.
func (u *TransitionUseCase) WithObserver(o ITransitionObserver) *TransitionUseCase {
	if o != nil {
		u.observer = o
	}
	return u
}

func (u *TransitionUseCase) ApplyTransition(ctx context.Context, actorID string, req TransitionRequest) (job entities.Job, err error) {
	ctx, span := tracer.Start(ctx, "TransitionUseCase.ApplyTransition")
	span.SetAttributes(attribute.String("job.id", req.JobID), attribute.String("job.to", string(req.Status)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	role, err := u.roles.RoleOf(ctx, actorID)
	if err != nil {
		return entities.Job{}, err
	}
	if role == entities.RoleViewer {
		return entities.Job{}, ErrForbidden
	}

	jobID := strings.TrimSpace(req.JobID)
	if jobID == "" {
		return entities.Job{}, invalidPayload("jobId is required")
	}
	current, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return entities.Job{}, storageFailure(err)
	}
	if current.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}

	if !current.Status.CanTransitionTo(req.Status) {
		u.observer.ObserveTransition(current.Status, req.Status, OutcomeRejected)
		return entities.Job{}, ErrInvalidTransition
	}
	if !canAdvance(role, actorID, current) {
		u.observer.ObserveTransition(current.Status, req.Status, OutcomeRejected)
		return entities.Job{}, ErrForbidden
	}
	if req.Status == entities.JobStatusAssigned {
		return entities.Job{}, invalidPayload("assigning a job requires a technician, use the assignment endpoint")
	}

	change, err := buildAttachments(req)
	if err != nil {
		return entities.Job{}, err
	}
	return u.commit(ctx, actorID, current, change)
}

// buildAttachments validates what may ride along with req.Status.
func buildAttachments(req TransitionRequest) (entities.StatusChange, error) {
	change := entities.StatusChange{To: req.Status}

	switch req.Status {
	case entities.JobStatusQCBefore, entities.JobStatusQCAfter:
		if req.QCData == nil {
			return entities.StatusChange{}, invalidPayload("qcData is required for %s", req.Status)
		}
		if err := req.QCData.Validate(); err != nil {
			if errors.Is(err, entities.ErrInvalidQCReport) {
				return entities.StatusChange{}, invalidPayload("%v", err)
			}
			return entities.StatusChange{}, err
		}
		qc := *req.QCData
		change.QCReport = &qc
	default:
		if req.QCData != nil {
			return entities.StatusChange{}, invalidPayload("qcData is only accepted on qc_before and qc_after")
		}
	}

	if req.Status == entities.JobStatusCompleted {
		if !req.PaymentMethod.Valid() {
			return entities.StatusChange{}, invalidPayload("paymentMethod must be one of cash, upi, card, qr")
		}
		change.PaymentMethod = req.PaymentMethod
	} else if req.PaymentMethod != "" {
		return entities.StatusChange{}, invalidPayload("paymentMethod is only accepted on completed")
	}

	if req.Financials != nil {
		if req.Status != entities.JobStatusQCAfter {
			return entities.StatusChange{}, invalidPayload("financials are only accepted on qc_after")
		}
		if req.Financials.ServiceCharge < 0 || req.Financials.PartsCost < 0 {
			return entities.StatusChange{}, invalidPayload("financials must not be negative")
		}
		f := entities.ComputeFinancials(req.Financials.ServiceCharge, req.Financials.PartsCost)
		change.Financials = &f
	}
	return change, nil
}
