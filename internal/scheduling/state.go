package scheduling

import (
	"github.com/google/uuid"

	"github.com/seido-app/backend/internal/models"
)

// Substate is the scheduling sub-state of an intervention, derived from its
// slots and responses rather than stored.
type Substate string

const (
	SubstateNoSlots     Substate = "no_slots_proposed"
	SubstatePending     Substate = "slots_proposed_pending_responses"
	SubstateScheduled   Substate = "resolved_scheduled"
	SubstateAllRejected Substate = "resolved_all_rejected"
)

// DeriveSubstate computes the sub-state. The selected-slot reference on the
// intervention row is the authoritative resolution marker.
func DeriveSubstate(slots []models.TimeSlot, responses []models.SlotResponse, parts []models.Participant, selected *uuid.UUID) Substate {
	if len(slots) == 0 {
		return SubstateNoSlots
	}
	if selected != nil {
		return SubstateScheduled
	}
	if everyResponderRejectedEverySlot(slots, responses, parts) {
		return SubstateAllRejected
	}
	return SubstatePending
}

func everyResponderRejectedEverySlot(slots []models.TimeSlot, responses []models.SlotResponse, parts []models.Participant) bool {
	sawResponder := false
	for _, p := range parts {
		if !p.Role.Responder() {
			continue
		}
		sawResponder = true
		for _, s := range slots {
			r := findResponse(responses, s.ID, p.UserID)
			if r == nil || r.Decision != models.DecisionReject {
				return false
			}
		}
	}
	return sawResponder
}
