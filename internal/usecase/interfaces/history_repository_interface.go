package interfaces

import (
	"context"
	"repairdesk/internal/domain/entities"
)

// IHistoryRepository reads the status history of a job, oldest first.
// Writes only happen through IJobRepository.
type IHistoryRepository interface {
	ListByJobID(ctx context.Context, jobID string) ([]entities.StatusHistoryEntry, error)
}
