package usecase

import (
	"context"
	"testing"
	"time"

	"repairdesk/internal/adapter/persistence/memory"
	"repairdesk/internal/domain/entities"
)

type fixture struct {
	jobs        *memory.JobStore
	users       *memory.UserStore
	invites     *memory.InviteStore
	roles       *RoleAuthority
	jobUC       *JobUseCase
	transitions *TransitionUseCase
	assignments *AssignmentUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	jobs := memory.NewJobStore()
	users := memory.NewUserStore(
		entities.User{ID: "admin-1", Email: "admin@shop.in", Name: "Asha", Role: entities.RoleAdmin},
		entities.User{ID: "semi-1", Email: "semi@shop.in", Name: "Sunil", Role: entities.RoleSemiAdmin},
		entities.User{ID: "tech-1", Email: "tech1@shop.in", Name: "Tara", Role: entities.RoleTechnician},
		entities.User{ID: "tech-2", Email: "tech2@shop.in", Name: "Tomas", Role: entities.RoleTechnician},
		entities.User{ID: "viewer-1", Email: "view@shop.in", Name: "Vik", Role: entities.RoleViewer},
	)
	roles := NewRoleAuthority(users)

	// A fixed, strictly increasing clock keeps timestamps comparable.
	clock := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	f := &fixture{
		jobs:        jobs,
		users:       users,
		invites:     memory.NewInviteStore(users),
		roles:       roles,
		jobUC:       NewJobUseCase(roles, jobs, jobs, nil),
		transitions: NewTransitionUseCase(roles, jobs, nil),
		assignments: NewAssignmentUseCase(roles, users, jobs, nil),
	}
	f.jobUC.now = tick
	f.transitions.now = tick
	f.assignments.now = tick
	return f
}

func (f *fixture) createJob(t *testing.T) entities.Job {
	t.Helper()
	job, err := f.jobUC.Create(context.Background(), "admin-1", CreateJobInput{
		Customer:      entities.Customer{Name: "Ravi", Phone: "9876543210", Address: "12 MG Road"},
		Device:        entities.Device{Type: "iPhone", Issue: "Screen broken"},
		ServiceCharge: 1000,
		PartsCost:     500,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func validQC() *entities.QCReport {
	return &entities.QCReport{Display: entities.CheckOK, Charging: entities.CheckNotOK, IMEI: "356789012345678", Model: "iPhone 13"}
}

// requestFor builds a valid request for the step out of from.
func requestFor(jobID string, from entities.JobStatus) TransitionRequest {
	next, _ := from.Next()
	req := TransitionRequest{JobID: jobID, Status: next}
	switch next {
	case entities.JobStatusQCBefore, entities.JobStatusQCAfter:
		req.QCData = validQC()
	case entities.JobStatusCompleted:
		req.PaymentMethod = entities.PaymentMethodUPI
	}
	return req
}

// advanceTo drives job to target with tech-1 assigned.
func (f *fixture) advanceTo(t *testing.T, job entities.Job, target entities.JobStatus) entities.Job {
	t.Helper()
	ctx := context.Background()
	var err error
	for job.Status != target {
		if job.Status == entities.JobStatusUnassigned {
			job, err = f.assignments.Assign(ctx, "admin-1", job.ID, "tech-1")
		} else {
			job, err = f.transitions.ApplyTransition(ctx, "tech-1", requestFor(job.ID, job.Status))
		}
		if err != nil {
			t.Fatalf("advance from %s: %v", job.Status, err)
		}
	}
	return job
}
