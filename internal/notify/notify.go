package notify

import (
	"context"

	"github.com/google/uuid"
)

// Kind classifies outbound notifications about an intervention.
type Kind string

const (
	KindScheduled    Kind = "scheduled"
	KindAllRejected  Kind = "all_rejected"
	KindReminder     Kind = "reminder"
	KindStatusChange Kind = "status_change"
)

type Notification struct {
	InterventionID uuid.UUID `json:"intervention_id"`
	Kind           Kind      `json:"kind"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
}

// Notifier dispatches scheduling outcomes to the outside world. Failures are
// logged and never fail the operation that triggered them.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}
