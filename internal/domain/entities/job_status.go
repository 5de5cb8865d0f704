package entities

// JobStatus is a step of the repair workflow.
//
// Domain notes:
//   - The workflow is strictly linear: a job only ever moves to the status right
//     after its current one.
//   - unassigned is the only initial status and completed the only terminal one.
type JobStatus string

const (
	JobStatusUnassigned JobStatus = "unassigned"
	JobStatusAssigned   JobStatus = "assigned"
	JobStatusAccepted   JobStatus = "accepted"
	JobStatusWaiting    JobStatus = "waiting"
	JobStatusEnRoute    JobStatus = "en_route"
	JobStatusDoorstep   JobStatus = "doorstep"
	JobStatusQCBefore   JobStatus = "qc_before"
	JobStatusJobStarted JobStatus = "job_started"
	JobStatusQCAfter    JobStatus = "qc_after"
	JobStatusInvoice    JobStatus = "invoice"
	JobStatusPayment    JobStatus = "payment"
	JobStatusCompleted  JobStatus = "completed"
)

// JobStatusOrder is the canonical workflow order.
var JobStatusOrder = []JobStatus{
	JobStatusUnassigned,
	JobStatusAssigned,
	JobStatusAccepted,
	JobStatusWaiting,
	JobStatusEnRoute,
	JobStatusDoorstep,
	JobStatusQCBefore,
	JobStatusJobStarted,
	JobStatusQCAfter,
	JobStatusInvoice,
	JobStatusPayment,
	JobStatusCompleted,
}

var jobStatusIndex = func() map[JobStatus]int {
	idx := make(map[JobStatus]int, len(JobStatusOrder))
	for i, s := range JobStatusOrder {
		idx[s] = i
	}
	return idx
}()

// Index returns the position of s in JobStatusOrder, or -1 when s is unknown.
func (s JobStatus) Index() int {
	if i, ok := jobStatusIndex[s]; ok {
		return i
	}
	return -1
}

func (s JobStatus) Valid() bool {
	return s.Index() >= 0
}

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted
}

// Next returns the only status reachable from s.
func (s JobStatus) Next() (JobStatus, bool) {
	i := s.Index()
	if i < 0 || i == len(JobStatusOrder)-1 {
		return "", false
	}
	return JobStatusOrder[i+1], true
}

// CanTransitionTo reports whether to is the immediate successor of s.
func (s JobStatus) CanTransitionTo(to JobStatus) bool {
	next, ok := s.Next()
	return ok && next == to
}

// Before reports whether s comes strictly before other in the workflow.
func (s JobStatus) Before(other JobStatus) bool {
	a, b := s.Index(), other.Index()
	return a >= 0 && b >= 0 && a < b
}
