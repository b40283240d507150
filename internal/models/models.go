package models

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type User struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

type Building struct {
	ID      uuid.UUID `json:"id"`
	TeamID  uuid.UUID `json:"team_id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
	City    string    `json:"city"`
	Lat     *float64  `json:"lat"`
	Lon     *float64  `json:"lon"`
}

type Lot struct {
	ID         uuid.UUID  `json:"id"`
	BuildingID uuid.UUID  `json:"building_id"`
	Reference  string     `json:"reference"`
	Floor      int        `json:"floor"`
	TenantID   *uuid.UUID `json:"tenant_id"`
}

type Intervention struct {
	ID             uuid.UUID          `json:"id"`
	TeamID         uuid.UUID          `json:"team_id"`
	LotID          uuid.UUID          `json:"lot_id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Status         InterventionStatus `json:"status"`
	ScheduledDate  *time.Time         `json:"scheduled_date"`
	SelectedSlotID *uuid.UUID         `json:"selected_slot_id"`
	CreatedBy      uuid.UUID          `json:"created_by"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// Participant is a user attached to an intervention in a given role. All
// scheduling operations authorize against this table, not against the user's
// global role.
type Participant struct {
	InterventionID uuid.UUID `json:"intervention_id"`
	UserID         uuid.UUID `json:"user_id"`
	Role           Role      `json:"role"`
}

// TimeSlot is a proposed visit window. Rows are immutable after insert; only
// the responses attached to them change.
type TimeSlot struct {
	ID             uuid.UUID `json:"id"`
	InterventionID uuid.UUID `json:"intervention_id"`
	SlotDate       time.Time `json:"slot_date"`
	StartTime      string    `json:"start_time"` // HH:MM
	EndTime        string    `json:"end_time"`   // HH:MM
	ProposedBy     uuid.UUID `json:"proposed_by"`
	CreatedAt      time.Time `json:"created_at"`
}

type SlotDecision string

const (
	DecisionAccept SlotDecision = "accept"
	DecisionReject SlotDecision = "reject"
)

// SlotResponse records one responder's decision on one slot. At most one row
// per (slot, responder); later decisions overwrite earlier ones.
type SlotResponse struct {
	ID          uuid.UUID    `json:"id"`
	SlotID      uuid.UUID    `json:"slot_id"`
	ResponderID uuid.UUID    `json:"responder_id"`
	Decision    SlotDecision `json:"decision"`
	Comment     string       `json:"comment"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type MessageKind string

const (
	MessageKindUser     MessageKind = "user"
	MessageKindSystem   MessageKind = "system"
	MessageKindReminder MessageKind = "reminder"
)

type ConversationMessage struct {
	ID             uuid.UUID   `json:"id"`
	InterventionID uuid.UUID   `json:"intervention_id"`
	AuthorID       *uuid.UUID  `json:"author_id"`
	Kind           MessageKind `json:"kind"`
	Body           string      `json:"body"`
	CreatedAt      time.Time   `json:"created_at"`
}

// ScheduledStart combines the slot's date and start time into the timestamp
// written to Intervention.ScheduledDate on resolution.
func (s TimeSlot) ScheduledStart() time.Time {
	t, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return s.SlotDate
	}
	d := s.SlotDate
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}
