package usecase

import (
	"context"
	"sort"
	"testing"
	"time"

	"repairdesk/internal/domain/entities"
)

func TestStatusCommitter_ClockStepsBack(t *testing.T) {
	ctx := context.Background()

	for name, skew := range map[string]time.Duration{
		"clock behind":  -time.Second,
		"clock stalled": 0,
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			job := f.advanceTo(t, f.createJob(t), entities.JobStatusAccepted)
			acceptedAt := *job.Timeline.AcceptedAt

			f.transitions.now = func() time.Time { return acceptedAt.Add(skew) }
			// An id that sorts before every uuid makes a timestamp tie visible.
			f.transitions.newID = func() string { return "0" }

			job, err := f.transitions.ApplyTransition(ctx, "tech-1", TransitionRequest{JobID: job.ID, Status: entities.JobStatusWaiting})
			if err != nil {
				t.Fatalf("waiting: %v", err)
			}
			waitingAt := *job.Timeline.WaitingAt
			if want := acceptedAt.Add(time.Microsecond); !waitingAt.Equal(want) {
				t.Fatalf("expected waiting at %v, got %v", want, waitingAt)
			}

			// Read history the way the SQL and DynamoDB stores order it.
			hist, _ := f.jobs.ListByJobID(ctx, job.ID)
			sort.Slice(hist, func(i, k int) bool {
				if !hist[i].ChangedAt.Equal(hist[k].ChangedAt) {
					return hist[i].ChangedAt.Before(hist[k].ChangedAt)
				}
				return hist[i].ID < hist[k].ID
			})
			for i, h := range hist {
				if h.Status != entities.JobStatusOrder[i] {
					t.Fatalf("history[%d] = %s, want %s", i, h.Status, entities.JobStatusOrder[i])
				}
			}

			report, err := f.jobUC.Audit(ctx, "admin-1", job.ID)
			if err != nil {
				t.Fatalf("audit: %v", err)
			}
			if !report.Consistent() {
				t.Fatalf("expected consistent audit, got %+v", report)
			}
		})
	}
}
