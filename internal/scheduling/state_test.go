package scheduling

import (
	"testing"

	"github.com/seido-app/backend/internal/models"
)

func TestDeriveSubstate(t *testing.T) {
	parts := testParticipants()
	slots := testSlots(2)
	selected := slots[0].ID

	if got := DeriveSubstate(nil, nil, parts, nil); got != SubstateNoSlots {
		t.Fatalf("expected no_slots_proposed, got %s", got)
	}
	if got := DeriveSubstate(slots, nil, parts, nil); got != SubstatePending {
		t.Fatalf("expected pending, got %s", got)
	}
	if got := DeriveSubstate(slots, nil, parts, &selected); got != SubstateScheduled {
		t.Fatalf("expected resolved_scheduled, got %s", got)
	}

	allRejected := []models.SlotResponse{
		{SlotID: slots[0].ID, ResponderID: tenant1, Decision: models.DecisionReject},
		{SlotID: slots[1].ID, ResponderID: tenant1, Decision: models.DecisionReject},
		{SlotID: slots[0].ID, ResponderID: provider1, Decision: models.DecisionReject},
		{SlotID: slots[1].ID, ResponderID: provider1, Decision: models.DecisionReject},
	}
	if got := DeriveSubstate(slots, allRejected, parts, nil); got != SubstateAllRejected {
		t.Fatalf("expected resolved_all_rejected, got %s", got)
	}

	// One response short: still pending.
	partial := allRejected[:3]
	if got := DeriveSubstate(slots, partial, parts, nil); got != SubstatePending {
		t.Fatalf("expected pending with partial rejections, got %s", got)
	}
}
