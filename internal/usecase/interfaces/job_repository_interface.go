package interfaces

import (
	"context"
	"errors"
	"repairdesk/internal/domain/entities"
)

// ErrConditionFailed is returned by stores when a conditional write loses:
// the row is missing or no longer in the expected state.
var ErrConditionFailed = errors.New("condition failed")

// IJobRepository abstracts persistence for Job.
//
// Implementations must guarantee that:
//   - Create stores the job and its first history entry together
//   - ApplyStatusChange only succeeds while the stored status equals change.From,
//     and stores the history entry in the same atomic write
//   - GetByID returns an empty Job (ID == "") when nothing is stored
type IJobRepository interface {
	Create(ctx context.Context, job entities.Job, first entities.StatusHistoryEntry) (entities.Job, error)
	GetByID(ctx context.Context, id string) (entities.Job, error)
	List(ctx context.Context, filter entities.JobFilter) ([]entities.Job, error)
	ApplyStatusChange(ctx context.Context, change entities.StatusChange) (entities.Job, error)
}
