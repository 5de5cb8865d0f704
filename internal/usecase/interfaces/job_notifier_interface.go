package interfaces

import (
	"context"
	"repairdesk/internal/domain/entities"
)

// IJobNotifier fans out job change events to live dashboards.
// Events are hints: subscribers re-read the job when they need its state.
type IJobNotifier interface {
	Publish(ctx context.Context, ev entities.JobEvent) error
}

// IJobEventSubscriber delivers events until ctx is done or cancel is called.
type IJobEventSubscriber interface {
	Subscribe(ctx context.Context) (events <-chan entities.JobEvent, cancel func(), err error)
}
