package usecase

import (
	"context"
	"errors"
	"log/slog"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"
	"time"

	"github.com/google/uuid"
)

const (
	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// ITransitionObserver receives the outcome of every transition attempt.
type ITransitionObserver interface {
	ObserveTransition(from, to entities.JobStatus, outcome string)
}

type noopObserver struct{}

func (noopObserver) ObserveTransition(entities.JobStatus, entities.JobStatus, string) {}

// statusCommitter is the write path shared by the transition engine and the
// assignment service.
type statusCommitter struct {
	jobs     interfaces.IJobRepository
	notifier interfaces.IJobNotifier
	observer ITransitionObserver
	now      func() time.Time
	newID    func() string
}

func newStatusCommitter(jobs interfaces.IJobRepository, notifier interfaces.IJobNotifier) statusCommitter {
	return statusCommitter{
		jobs:     jobs,
		notifier: notifier,
		observer: noopObserver{},
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID:    uuid.NewString,
	}
}

// commit writes change against job with a compare-and-swap on job.Status.
// change.To and the attachments must already be validated.
func (c *statusCommitter) commit(ctx context.Context, actorID string, job entities.Job, change entities.StatusChange) (entities.Job, error) {
	at := c.now()
	// Each step lands strictly after the previous one, at store precision,
	// so history ordered by (changed_at, id) follows the workflow even if
	// the clock stalls or steps back.
	if prev := job.Timeline.At(job.Status); prev != nil && !at.After(*prev) {
		at = prev.Add(time.Microsecond)
	}

	change.JobID = job.ID
	change.From = job.Status
	change.At = at
	change.History = entities.StatusHistoryEntry{
		ID:        c.newID(),
		JobID:     job.ID,
		Status:    change.To,
		ChangedBy: actorID,
		ChangedAt: at,
	}

	updated, err := c.jobs.ApplyStatusChange(ctx, change)
	if err != nil {
		if errors.Is(err, interfaces.ErrConditionFailed) {
			c.observer.ObserveTransition(change.From, change.To, OutcomeRejected)
			slog.InfoContext(ctx, "[job][usecase] lost status race", "job_id", job.ID, "from", change.From, "to", change.To)
			return entities.Job{}, ErrInvalidTransition
		}
		c.observer.ObserveTransition(change.From, change.To, OutcomeError)
		return entities.Job{}, storageFailure(err)
	}
	c.observer.ObserveTransition(change.From, change.To, OutcomeApplied)

	slog.InfoContext(ctx, "[job][usecase] status changed",
		"job_id", job.ID, "from", change.From, "to", change.To, "actor", actorID)

	c.publish(ctx, entities.JobEvent{
		Type:         entities.JobEventStatusChanged,
		JobID:        updated.ID,
		Status:       updated.Status,
		TechnicianID: updated.TechnicianID,
		At:           at,
	})
	return updated, nil
}

// publish is fire-and-forget: a lost notification never fails the write.
func (c *statusCommitter) publish(ctx context.Context, ev entities.JobEvent) {
	if c.notifier == nil {
		return
	}
	if err := c.notifier.Publish(ctx, ev); err != nil {
		slog.WarnContext(ctx, "[job][usecase] publish job event failed", "job_id", ev.JobID, "err", err)
	}
}
