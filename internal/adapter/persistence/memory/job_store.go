package memory

import (
	"context"
	"errors"
	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"
	"sort"
	"sync"
)

var errDuplicateID = errors.New("duplicate id")

// JobStore keeps jobs and their history behind one mutex, so a status change
// and its history entry are always observed together.
type JobStore struct {
	mu      sync.Mutex
	jobs    map[string]entities.Job
	history map[string][]entities.StatusHistoryEntry
}

var (
	_ interfaces.IJobRepository     = (*JobStore)(nil)
	_ interfaces.IHistoryRepository = (*JobStore)(nil)
)

func NewJobStore() *JobStore {
	return &JobStore{
		jobs:    make(map[string]entities.Job),
		history: make(map[string][]entities.StatusHistoryEntry),
	}
}

func (s *JobStore) Create(_ context.Context, job entities.Job, first entities.StatusHistoryEntry) (entities.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; ok {
		return entities.Job{}, errDuplicateID
	}
	s.jobs[job.ID] = cloneJob(job)
	s.history[job.ID] = append(s.history[job.ID], first)
	return cloneJob(job), nil
}

func (s *JobStore) GetByID(_ context.Context, id string) (entities.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return entities.Job{}, nil
	}
	return cloneJob(j), nil
}

func (s *JobStore) List(_ context.Context, filter entities.JobFilter) ([]entities.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if filter.Match(j) {
			out = append(out, cloneJob(j))
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out, nil
}

func (s *JobStore) ApplyStatusChange(_ context.Context, change entities.StatusChange) (entities.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[change.JobID]
	if !ok || j.Status != change.From {
		return entities.Job{}, interfaces.ErrConditionFailed
	}
	j = change.Apply(j)
	s.jobs[j.ID] = j
	s.history[j.ID] = append(s.history[j.ID], change.History)
	return cloneJob(j), nil
}

func (s *JobStore) ListByJobID(_ context.Context, jobID string) ([]entities.StatusHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.history[jobID]
	out := make([]entities.StatusHistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

func cloneJob(j entities.Job) entities.Job {
	if j.QCBefore != nil {
		qc := *j.QCBefore
		j.QCBefore = &qc
	}
	if j.QCAfter != nil {
		qc := *j.QCAfter
		j.QCAfter = &qc
	}
	var tl entities.Timeline
	for _, s := range entities.JobStatusOrder {
		if at := j.Timeline.At(s); at != nil {
			tl.Set(s, *at)
		}
	}
	if j.Timeline.JobEndAt != nil {
		end := *j.Timeline.JobEndAt
		tl.JobEndAt = &end
	}
	j.Timeline = tl
	return j
}
