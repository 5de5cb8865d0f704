package usecase

import (
	"context"
	"errors"
	"testing"

	"repairdesk/internal/domain/entities"
	mock_interfaces "repairdesk/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestAssignmentUseCase_Assign(t *testing.T) {
	ctx := context.Background()

	t.Run("admin assigns a technician", func(t *testing.T) {
		f := newFixture(t)
		job := f.createJob(t)

		got, err := f.assignments.Assign(ctx, "admin-1", job.ID, "tech-1")
		if err != nil {
			t.Fatalf("assign: %v", err)
		}
		if got.Status != entities.JobStatusAssigned || got.TechnicianID != "tech-1" || got.AssignedBy != "admin-1" {
			t.Fatalf("unexpected job: %+v", got)
		}
		if got.Timeline.AssignedAt == nil {
			t.Fatalf("expected assignedAt to be set")
		}
		hist, _ := f.jobs.ListByJobID(ctx, job.ID)
		if len(hist) != 2 || hist[1].Status != entities.JobStatusAssigned || hist[1].ChangedBy != "admin-1" {
			t.Fatalf("unexpected history: %+v", hist)
		}
	})

	t.Run("viewer and technician are forbidden", func(t *testing.T) {
		f := newFixture(t)
		job := f.createJob(t)
		for _, actor := range []string{"viewer-1", "tech-1"} {
			if _, err := f.assignments.Assign(ctx, actor, job.ID, "tech-1"); !errors.Is(err, ErrForbidden) {
				t.Fatalf("%s: expected ErrForbidden, got %v", actor, err)
			}
		}
	})

	t.Run("second assignment is rejected", func(t *testing.T) {
		f := newFixture(t)
		job := f.createJob(t)
		if _, err := f.assignments.Assign(ctx, "admin-1", job.ID, "tech-1"); err != nil {
			t.Fatalf("first assign: %v", err)
		}
		_, err := f.assignments.Assign(ctx, "admin-1", job.ID, "tech-2")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		after, _ := f.jobs.GetByID(ctx, job.ID)
		if after.TechnicianID != "tech-1" {
			t.Fatalf("technician changed to %q", after.TechnicianID)
		}
	})

	t.Run("target must be a technician", func(t *testing.T) {
		f := newFixture(t)
		job := f.createJob(t)
		_, err := f.assignments.Assign(ctx, "admin-1", job.ID, "viewer-1")
		if !errors.Is(err, ErrNotATechnician) {
			t.Fatalf("expected ErrNotATechnician, got %v", err)
		}
		after, _ := f.jobs.GetByID(ctx, job.ID)
		if after.Status != entities.JobStatusUnassigned || after.TechnicianID != "" {
			t.Fatalf("job changed: %+v", after)
		}
	})

	t.Run("unknown technician", func(t *testing.T) {
		f := newFixture(t)
		job := f.createJob(t)
		_, err := f.assignments.Assign(ctx, "admin-1", job.ID, "nobody")
		if !errors.Is(err, ErrTechnicianNotFound) {
			t.Fatalf("expected ErrTechnicianNotFound, got %v", err)
		}
	})

	t.Run("unknown job", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.assignments.Assign(ctx, "semi-1", "missing", "tech-1")
		if !errors.Is(err, ErrJobNotFound) {
			t.Fatalf("expected ErrJobNotFound, got %v", err)
		}
	})

	t.Run("user lookup failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		jobs := mock_interfaces.NewMockIJobRepository(ctrl)
		uc := NewAssignmentUseCase(NewRoleAuthority(users), users, jobs, nil)

		users.EXPECT().GetByID(gomock.Any(), "admin-1").Return(entities.User{ID: "admin-1", Role: entities.RoleAdmin}, nil)
		jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(entities.Job{ID: "job-1", Status: entities.JobStatusUnassigned}, nil)
		users.EXPECT().GetByID(gomock.Any(), "tech-1").Return(entities.User{}, errors.New("db"))

		_, err := uc.Assign(ctx, "admin-1", "job-1", "tech-1")
		if !errors.Is(err, ErrStorageFailure) {
			t.Fatalf("expected ErrStorageFailure, got %v", err)
		}
	})
}
