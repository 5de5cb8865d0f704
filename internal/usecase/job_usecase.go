package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateJobInput is what an admin fills in when opening a job.
type CreateJobInput struct {
	Customer      entities.Customer
	Device        entities.Device
	Notes         string
	TimeSlot      string
	ServiceCharge float64
	PartsCost     float64
}

// AuditReport compares a job's stored timeline with its history.
type AuditReport struct {
	JobID              string               `json:"jobId"`
	Status             entities.JobStatus   `json:"status"`
	Statuses           []entities.JobStatus `json:"statuses"`
	OrderedPrefix      bool                 `json:"orderedPrefix"`
	TimelineConsistent bool                 `json:"timelineConsistent"`
	MatchesTimeline    bool                 `json:"matchesTimeline"`
}

func (r AuditReport) Consistent() bool {
	return r.OrderedPrefix && r.TimelineConsistent && r.MatchesTimeline
}

// IJobUseCase exposes job creation and the read side.
//
// Technicians only ever see jobs bound to them.
type IJobUseCase interface {
	Create(ctx context.Context, actorID string, in CreateJobInput) (entities.Job, error)
	GetByID(ctx context.Context, actorID, id string) (entities.Job, error)
	List(ctx context.Context, actorID string, filter entities.JobFilter) ([]entities.Job, error)
	History(ctx context.Context, actorID, jobID string) ([]entities.StatusHistoryEntry, error)
	Audit(ctx context.Context, actorID, jobID string) (AuditReport, error)
	Export(ctx context.Context, actorID string, filter entities.JobFilter) ([]entities.Job, error)
	Watch(ctx context.Context, actorID string) (<-chan entities.JobEvent, func(), error)
}

type JobUseCase struct {
	roles    IRoleAuthority
	jobs     interfaces.IJobRepository
	history  interfaces.IHistoryRepository
	notifier interfaces.IJobNotifier
	events   interfaces.IJobEventSubscriber
	now      func() time.Time
	newID    func() string
}

var _ IJobUseCase = (*JobUseCase)(nil)

func NewJobUseCase(roles IRoleAuthority, jobs interfaces.IJobRepository, history interfaces.IHistoryRepository, notifier interfaces.IJobNotifier) *JobUseCase {
	return &JobUseCase{
		roles:    roles,
		jobs:     jobs,
		history:  history,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID:    uuid.NewString,
	}
}

// WithSubscriber enables Watch.
func (u *JobUseCase) WithSubscriber(events interfaces.IJobEventSubscriber) *JobUseCase {
	u.events = events
	return u
}

func (u *JobUseCase) Create(ctx context.Context, actorID string, in CreateJobInput) (entities.Job, error) {
	role, err := u.roles.RoleOf(ctx, actorID)
	if err != nil {
		return entities.Job{}, err
	}
	if role != entities.RoleAdmin {
		return entities.Job{}, ErrForbidden
	}

	in.Customer.Name = strings.TrimSpace(in.Customer.Name)
	in.Customer.Phone = strings.TrimSpace(in.Customer.Phone)
	in.Customer.Address = strings.TrimSpace(in.Customer.Address)
	in.Device.Type = strings.TrimSpace(in.Device.Type)
	in.Device.Issue = strings.TrimSpace(in.Device.Issue)
	switch {
	case in.Customer.Name == "", in.Customer.Phone == "", in.Customer.Address == "":
		return entities.Job{}, invalidPayload("customer name, phone and address are required")
	case in.Device.Type == "", in.Device.Issue == "":
		return entities.Job{}, invalidPayload("device type and issue are required")
	case in.ServiceCharge < 0, in.PartsCost < 0:
		return entities.Job{}, invalidPayload("financials must not be negative")
	}

	now := u.now()
	job := entities.Job{
		ID:         u.newID(),
		Customer:   in.Customer,
		Device:     in.Device,
		Notes:      strings.TrimSpace(in.Notes),
		TimeSlot:   strings.TrimSpace(in.TimeSlot),
		Status:     entities.JobStatusUnassigned,
		Financials: entities.ComputeFinancials(in.ServiceCharge, in.PartsCost),
		CreatedBy:  actorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	job.Timeline.Set(entities.JobStatusUnassigned, now)

	first := entities.StatusHistoryEntry{
		ID:        u.newID(),
		JobID:     job.ID,
		Status:    entities.JobStatusUnassigned,
		ChangedBy: actorID,
		ChangedAt: now,
	}
	created, err := u.jobs.Create(ctx, job, first)
	if err != nil {
		return entities.Job{}, storageFailure(err)
	}
	slog.InfoContext(ctx, "[job][usecase] job created", "job_id", created.ID, "actor", actorID)

	if u.notifier != nil {
		ev := entities.JobEvent{Type: entities.JobEventCreated, JobID: created.ID, Status: created.Status, At: now}
		if err := u.notifier.Publish(ctx, ev); err != nil {
			slog.WarnContext(ctx, "[job][usecase] publish job event failed", "job_id", created.ID, "err", err)
		}
	}
	return created, nil
}

func (u *JobUseCase) GetByID(ctx context.Context, actorID, id string) (entities.Job, error) {
	role, err := u.roles.RoleOf(ctx, actorID)
	if err != nil {
		return entities.Job{}, err
	}
	return u.visibleJob(ctx, role, actorID, id)
}

func (u *JobUseCase) visibleJob(ctx context.Context, role entities.Role, actorID, id string) (entities.Job, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Job{}, ErrJobNotFound
	}
	job, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		return entities.Job{}, storageFailure(err)
	}
	if job.ID == "" {
		return entities.Job{}, ErrJobNotFound
	}
	if !canView(role, actorID, job) {
		return entities.Job{}, ErrForbidden
	}
	return job, nil
}

// List returns jobs newest first.
func (u *JobUseCase) List(ctx context.Context, actorID string, filter entities.JobFilter) ([]entities.Job, error) {
	role, err := u.roles.RoleOf(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, invalidPayload("unknown status %q", filter.Status)
	}
	if role == entities.RoleTechnician {
		filter.TechnicianID = actorID
	}

	jobs, err := u.jobs.List(ctx, filter)
	if err != nil {
		return nil, storageFailure(err)
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

// History returns the job's history entries oldest first.
func (u *JobUseCase) History(ctx context.Context, actorID, jobID string) ([]entities.StatusHistoryEntry, error) {
	role, err := u.roles.RoleOf(ctx, actorID)
	if err != nil {
		return nil, err
	}
	job, err := u.visibleJob(ctx, role, actorID, jobID)
	if err != nil {
		return nil, err
	}
	return u.sortedHistory(ctx, job.ID)
}

func (u *JobUseCase) sortedHistory(ctx context.Context, jobID string) ([]entities.StatusHistoryEntry, error) {
	entries, err := u.history.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, storageFailure(err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ChangedAt.Before(entries[j].ChangedAt)
	})
	return entries, nil
}

// Audit replays the history of a job against the canonical order and its
// stored timeline.
func (u *JobUseCase) Audit(ctx context.Context, actorID, jobID string) (AuditReport, error) {
	role, err := u.roles.RoleOf(ctx, actorID)
	if err != nil {
		return AuditReport{}, err
	}
	job, err := u.visibleJob(ctx, role, actorID, jobID)
	if err != nil {
		return AuditReport{}, err
	}
	entries, err := u.sortedHistory(ctx, job.ID)
	if err != nil {
		return AuditReport{}, err
	}

	report := AuditReport{
		JobID:              job.ID,
		Status:             job.Status,
		Statuses:           make([]entities.JobStatus, 0, len(entries)),
		OrderedPrefix:      true,
		TimelineConsistent: job.Timeline.Consistent(job.Status),
		MatchesTimeline:    true,
	}
	for i, e := range entries {
		report.Statuses = append(report.Statuses, e.Status)
		if i >= len(entities.JobStatusOrder) || entities.JobStatusOrder[i] != e.Status {
			report.OrderedPrefix = false
		}
		at := job.Timeline.At(e.Status)
		if at == nil || !at.Equal(e.ChangedAt) {
			report.MatchesTimeline = false
		}
	}
	if len(entries) != job.Status.Index()+1 {
		report.OrderedPrefix = false
	}
	return report, nil
}

// Export returns the same rows as List for the roles allowed to download
// reports. Technicians are refused.
func (u *JobUseCase) Export(ctx context.Context, actorID string, filter entities.JobFilter) ([]entities.Job, error) {
	role, err := u.roles.RoleOf(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if role == entities.RoleTechnician {
		return nil, ErrForbidden
	}
	return u.List(ctx, actorID, filter)
}

// Watch streams job events visible to the actor until ctx is done or the
// returned cancel is called.
func (u *JobUseCase) Watch(ctx context.Context, actorID string) (<-chan entities.JobEvent, func(), error) {
	role, err := u.roles.RoleOf(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	if u.events == nil {
		return nil, nil, fmt.Errorf("%w: no event source configured", ErrStorageFailure)
	}
	src, cancel, err := u.events.Subscribe(ctx)
	if err != nil {
		return nil, nil, storageFailure(err)
	}
	if role != entities.RoleTechnician {
		return src, cancel, nil
	}

	out := make(chan entities.JobEvent)
	go func() {
		defer close(out)
		for ev := range src {
			if ev.TechnicianID != actorID {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				cancel()
				return
			}
		}
	}()
	return out, cancel, nil
}
