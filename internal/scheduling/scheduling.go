package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/seido-app/backend/internal/models"
)

// The decision core is pure: functions take the intervention's slots,
// responses and participants as slices and return a plan of writes. The db
// layer applies plans inside a single transaction.

type SlotInput struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// SlotWindow is a validated proposal entry ready for insertion.
type SlotWindow struct {
	Date  time.Time
	Start string
	End   string
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ParseProposal validates a batch of proposed windows: the list must be
// non-empty, each window well-formed with start before end, and no date in
// the past. Dates compare in UTC, date-only.
func ParseProposal(now time.Time, inputs []SlotInput) ([]SlotWindow, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: slot list must not be empty", ErrValidation)
	}
	today := now.UTC().Truncate(24 * time.Hour)
	out := make([]SlotWindow, 0, len(inputs))
	for i, in := range inputs {
		date, err := time.ParseInLocation(dateLayout, in.Date, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d: invalid date %q", ErrValidation, i, in.Date)
		}
		start, err := time.Parse(timeLayout, in.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d: invalid start time %q", ErrValidation, i, in.StartTime)
		}
		end, err := time.Parse(timeLayout, in.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %d: invalid end time %q", ErrValidation, i, in.EndTime)
		}
		if !start.Before(end) {
			return nil, fmt.Errorf("%w: slot %d: start time must be before end time", ErrValidation, i)
		}
		if date.Before(today) {
			return nil, fmt.Errorf("%w: slot %d: date %s is in the past", ErrValidation, i, in.Date)
		}
		out = append(out, SlotWindow{Date: date, Start: in.StartTime, End: in.EndTime})
	}
	return out, nil
}

func findParticipant(parts []models.Participant, userID uuid.UUID) (models.Participant, bool) {
	for _, p := range parts {
		if p.UserID == userID {
			return p, true
		}
	}
	return models.Participant{}, false
}

// AuthorizeProposer checks that the caller is attached to the intervention
// with a role allowed to propose availability.
func AuthorizeProposer(parts []models.Participant, userID uuid.UUID) error {
	p, ok := findParticipant(parts, userID)
	if !ok {
		return ErrUnauthorized
	}
	if !p.Role.Capabilities().CanPropose {
		return fmt.Errorf("%w: role %s cannot propose slots", ErrUnauthorized, p.Role)
	}
	return nil
}

// AuthorizeResponder checks that the caller may accept or reject slots.
func AuthorizeResponder(parts []models.Participant, userID uuid.UUID) error {
	p, ok := findParticipant(parts, userID)
	if !ok {
		return ErrUnauthorized
	}
	caps := p.Role.Capabilities()
	if !caps.CanAccept && !caps.CanReject {
		return fmt.Errorf("%w: role %s cannot respond to slots", ErrUnauthorized, p.Role)
	}
	return nil
}

// ResponseUpsert is one (slot, responder) decision to write.
type ResponseUpsert struct {
	SlotID   uuid.UUID
	Decision models.SlotDecision
	Comment  string
}

// AcceptPlan is the set of writes resolving an intervention onto one slot:
// an accept on the chosen slot plus a reject on every sibling, the derived
// scheduled timestamp, and whether the call is an idempotent no-op.
type AcceptPlan struct {
	Slot        models.TimeSlot
	Upserts     []ResponseUpsert
	ScheduledAt time.Time
	Noop        bool
}

// PlanAccept computes the resolution for accepting slotID on behalf of
// responder. selected is the intervention's current selected slot, if any.
//
// Re-accepting the already-selected slot succeeds as a no-op; accepting a
// different slot after resolution fails with ErrAlreadyResolved.
func PlanAccept(slots []models.TimeSlot, selected *uuid.UUID, slotID uuid.UUID) (AcceptPlan, error) {
	slot, ok := findSlot(slots, slotID)
	if !ok {
		return AcceptPlan{}, fmt.Errorf("%w: time slot %s", ErrNotFound, slotID)
	}
	if selected != nil {
		if *selected == slotID {
			return AcceptPlan{Slot: slot, ScheduledAt: slot.ScheduledStart(), Noop: true}, nil
		}
		return AcceptPlan{}, ErrAlreadyResolved
	}

	plan := AcceptPlan{Slot: slot, ScheduledAt: slot.ScheduledStart()}
	plan.Upserts = append(plan.Upserts, ResponseUpsert{SlotID: slotID, Decision: models.DecisionAccept})
	for _, s := range slots {
		if s.ID == slotID {
			continue
		}
		plan.Upserts = append(plan.Upserts, ResponseUpsert{SlotID: s.ID, Decision: models.DecisionReject})
	}
	return plan, nil
}

// RejectPlan describes one rejection write and what it resolves.
type RejectPlan struct {
	Slot models.TimeSlot
	// CompletesResponder is true when this rejection leaves the responder
	// with zero accepted and zero pending slots. A comment is mandatory in
	// that case.
	CompletesResponder bool
	// FullyRejected is true when, after this write, every responder has
	// rejected every slot: the intervention reverts to planning.
	FullyRejected bool
}

// PlanReject validates a reject decision for (slotID, responder) and derives
// its consequences. Rejections after global resolution are refused: the
// sibling slots were already auto-rejected, and unpicking the selected slot
// goes through withdrawal, not rejection.
func PlanReject(slots []models.TimeSlot, responses []models.SlotResponse, parts []models.Participant, selected *uuid.UUID, slotID, responder uuid.UUID, comment string) (RejectPlan, error) {
	slot, ok := findSlot(slots, slotID)
	if !ok {
		return RejectPlan{}, fmt.Errorf("%w: time slot %s", ErrNotFound, slotID)
	}
	if selected != nil {
		return RejectPlan{}, ErrAlreadyResolved
	}

	plan := RejectPlan{Slot: slot}
	plan.CompletesResponder = rejectsAllSlots(slots, responses, responder, slotID)
	if plan.CompletesResponder && comment == "" {
		return RejectPlan{}, fmt.Errorf("%w: comment required when rejecting all slots", ErrValidation)
	}
	if plan.CompletesResponder {
		plan.FullyRejected = allRespondersRejected(slots, responses, parts, responder, slotID)
	}
	return plan, nil
}

// CheckWithdraw validates removing the (slotID, responder) response. Allowed
// only before global resolution; the targeted response must exist.
func CheckWithdraw(slots []models.TimeSlot, responses []models.SlotResponse, selected *uuid.UUID, slotID, responder uuid.UUID) error {
	if _, ok := findSlot(slots, slotID); !ok {
		return fmt.Errorf("%w: time slot %s", ErrNotFound, slotID)
	}
	if selected != nil {
		return fmt.Errorf("%w: intervention is already scheduled", ErrConflict)
	}
	if findResponse(responses, slotID, responder) == nil {
		return fmt.Errorf("%w: no response recorded for this slot", ErrNotFound)
	}
	return nil
}

func findSlot(slots []models.TimeSlot, id uuid.UUID) (models.TimeSlot, bool) {
	for _, s := range slots {
		if s.ID == id {
			return s, true
		}
	}
	return models.TimeSlot{}, false
}

func findResponse(responses []models.SlotResponse, slotID, responder uuid.UUID) *models.SlotResponse {
	for i := range responses {
		if responses[i].SlotID == slotID && responses[i].ResponderID == responder {
			return &responses[i]
		}
	}
	return nil
}

// rejectsAllSlots reports whether responder has rejected every slot once a
// reject on pendingSlot is applied.
func rejectsAllSlots(slots []models.TimeSlot, responses []models.SlotResponse, responder, pendingSlot uuid.UUID) bool {
	for _, s := range slots {
		if s.ID == pendingSlot {
			continue
		}
		r := findResponse(responses, s.ID, responder)
		if r == nil || r.Decision != models.DecisionReject {
			return false
		}
	}
	return true
}

// allRespondersRejected reports whether every responding participant has
// rejected every slot, counting a pending reject by pendingResponder on
// pendingSlot as written.
func allRespondersRejected(slots []models.TimeSlot, responses []models.SlotResponse, parts []models.Participant, pendingResponder, pendingSlot uuid.UUID) bool {
	sawResponder := false
	for _, p := range parts {
		if !p.Role.Responder() {
			continue
		}
		sawResponder = true
		for _, s := range slots {
			if p.UserID == pendingResponder && s.ID == pendingSlot {
				continue
			}
			r := findResponse(responses, s.ID, p.UserID)
			if r == nil || r.Decision != models.DecisionReject {
				return false
			}
		}
	}
	return sawResponder
}
