package entities

import "time"

// Timeline holds the moment each status was first reached.
// A field is set if and only if the job has reached that status.
type Timeline struct {
	UnassignedAt *time.Time `json:"unassignedAt"`
	AssignedAt   *time.Time `json:"assignedAt"`
	AcceptedAt   *time.Time `json:"acceptedAt"`
	WaitingAt    *time.Time `json:"waitingAt"`
	EnRouteAt    *time.Time `json:"enRouteAt"`
	DoorstepAt   *time.Time `json:"doorstepAt"`
	QCBeforeAt   *time.Time `json:"qcBeforeAt"`
	JobStartAt   *time.Time `json:"jobStartAt"`
	QCAfterAt    *time.Time `json:"qcAfterAt"`
	InvoiceAt    *time.Time `json:"invoiceAt"`
	PaymentAt    *time.Time `json:"paymentAt"`
	CompletedAt  *time.Time `json:"completedAt"`

	// JobEndAt stops the on-site repair timer. It is stamped together with
	// qc_after and is not a workflow status.
	JobEndAt *time.Time `json:"jobEndAt,omitempty"`
}

func (t *Timeline) field(s JobStatus) **time.Time {
	switch s {
	case JobStatusUnassigned:
		return &t.UnassignedAt
	case JobStatusAssigned:
		return &t.AssignedAt
	case JobStatusAccepted:
		return &t.AcceptedAt
	case JobStatusWaiting:
		return &t.WaitingAt
	case JobStatusEnRoute:
		return &t.EnRouteAt
	case JobStatusDoorstep:
		return &t.DoorstepAt
	case JobStatusQCBefore:
		return &t.QCBeforeAt
	case JobStatusJobStarted:
		return &t.JobStartAt
	case JobStatusQCAfter:
		return &t.QCAfterAt
	case JobStatusInvoice:
		return &t.InvoiceAt
	case JobStatusPayment:
		return &t.PaymentAt
	case JobStatusCompleted:
		return &t.CompletedAt
	}
	return nil
}

// At returns the timestamp recorded for s, or nil.
func (t Timeline) At(s JobStatus) *time.Time {
	f := t.field(s)
	if f == nil {
		return nil
	}
	return *f
}

// Set records at for s. Unknown statuses are ignored.
func (t *Timeline) Set(s JobStatus, at time.Time) {
	f := t.field(s)
	if f == nil {
		return
	}
	v := at.UTC()
	*f = &v
}

// RepairDuration is the time between job start and job end, zero until
// both are recorded.
func (t Timeline) RepairDuration() time.Duration {
	if t.JobStartAt == nil || t.JobEndAt == nil {
		return 0
	}
	return t.JobEndAt.Sub(*t.JobStartAt)
}

// Consistent reports whether exactly the statuses up to current are set and
// their timestamps never decrease in workflow order.
func (t Timeline) Consistent(current JobStatus) bool {
	ci := current.Index()
	if ci < 0 {
		return false
	}
	var prev *time.Time
	for i, s := range JobStatusOrder {
		at := t.At(s)
		if i <= ci {
			if at == nil {
				return false
			}
			if prev != nil && at.Before(*prev) {
				return false
			}
			prev = at
			continue
		}
		if at != nil {
			return false
		}
	}
	return true
}
