package usecase

import (
	"context"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"
	"strings"
)

// IAssignmentUseCase binds a technician to an unassigned job and moves it to
// assigned in the same write.
type IAssignmentUseCase interface {
	Assign(ctx context.Context, actorID, jobID, technicianID string) (entities.Job, error)
}

type AssignmentUseCase struct {
	roles IRoleAuthority
	users interfaces.IUserRepository
	statusCommitter
}

var _ IAssignmentUseCase = (*AssignmentUseCase)(nil)

func NewAssignmentUseCase(roles IRoleAuthority, users interfaces.IUserRepository, jobs interfaces.IJobRepository, notifier interfaces.IJobNotifier) *AssignmentUseCase {
	return &AssignmentUseCase{
		roles:           roles,
		users:           users,
		statusCommitter: newStatusCommitter(jobs, notifier),
	}
}

func (u *AssignmentUseCase) WithObserver(o ITransitionObserver) *AssignmentUseCase {
	if o != nil {
		u.observer = o
	}
	return u
}

func (u *AssignmentUseCase) Assign(ctx context.Context, actorID, jobID, technicianID string) (entities.Job, error) {
	ctx, span := tracer.Start(ctx, "AssignmentUseCase.Assign")
	defer span.End()

	role, err := u.roles.RoleOf(ctx, actorID)
	if err != nil {
		return entities.Job{}, err
	}
	if !canAssign(role) {
		return entities.Job{}, ErrForbidden
	}

	jobID = strings.TrimSpace(jobID)
	technicianID = strings.TrimSpace(technicianID)
	if jobID == "" || technicianID == "" {
		return entities.Job{}, invalidPayload("jobId and technicianId are required")
	}

	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return entities.Job{}, storageFailure(err)
	}
	if job.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	if job.Status != entities.JobStatusUnassigned {
		u.observer.ObserveTransition(job.Status, entities.JobStatusAssigned, OutcomeRejected)
		return entities.Job{}, ErrInvalidTransition
	}

	tech, err := u.users.GetByID(ctx, technicianID)
	if err != nil {
		return entities.Job{}, storageFailure(err)
	}
	if tech.ID == "" {
		return entities.Job{}, ErrTechnicianNotFound
	}
	if tech.Role != entities.RoleTechnician {
		return entities.Job{}, ErrNotATechnician
	}

	return u.commit(ctx, actorID, job, entities.StatusChange{
		To:           entities.JobStatusAssigned,
		TechnicianID: tech.ID,
		AssignedBy:   actorID,
	})
}
