package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/seido-app/backend/internal/models"
)

var (
	interventionID = uuid.New()
	tenant1        = uuid.New()
	provider1      = uuid.New()
	manager1       = uuid.New()
)

func testParticipants() []models.Participant {
	return []models.Participant{
		{InterventionID: interventionID, UserID: manager1, Role: models.RoleManager},
		{InterventionID: interventionID, UserID: tenant1, Role: models.RoleTenant},
		{InterventionID: interventionID, UserID: provider1, Role: models.RoleProvider},
	}
}

func testSlots(n int) []models.TimeSlot {
	out := make([]models.TimeSlot, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.TimeSlot{
			ID:             uuid.New(),
			InterventionID: interventionID,
			SlotDate:       time.Date(2025, 3, 10+i, 0, 0, 0, 0, time.UTC),
			StartTime:      "14:00",
			EndTime:        "15:00",
			ProposedBy:     manager1,
		})
	}
	return out
}

func TestParseProposal_EmptyList(t *testing.T) {
	_, err := ParseProposal(time.Now(), nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestParseProposal_Malformed(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		input SlotInput
	}{
		{"bad date", SlotInput{Date: "10/03/2025", StartTime: "14:00", EndTime: "15:00"}},
		{"bad start", SlotInput{Date: "2025-03-10", StartTime: "2pm", EndTime: "15:00"}},
		{"bad end", SlotInput{Date: "2025-03-10", StartTime: "14:00", EndTime: ""}},
		{"start equals end", SlotInput{Date: "2025-03-10", StartTime: "14:00", EndTime: "14:00"}},
		{"start after end", SlotInput{Date: "2025-03-10", StartTime: "16:00", EndTime: "15:00"}},
		{"past date", SlotInput{Date: "2025-02-28", StartTime: "14:00", EndTime: "15:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseProposal(now, []SlotInput{tc.input})
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestParseProposal_Valid(t *testing.T) {
	now := time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC)
	windows, err := ParseProposal(now, []SlotInput{
		{Date: "2025-03-10", StartTime: "14:00", EndTime: "15:00"},
		{Date: "2025-03-01", StartTime: "09:00", EndTime: "10:00"}, // today is allowed
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if !windows[0].Date.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", windows[0].Date)
	}
}

func TestAuthorize(t *testing.T) {
	parts := testParticipants()
	stranger := uuid.New()

	if err := AuthorizeProposer(parts, manager1); err != nil {
		t.Fatalf("manager should propose: %v", err)
	}
	if err := AuthorizeProposer(parts, tenant1); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("tenant must not propose, got %v", err)
	}
	if err := AuthorizeProposer(parts, stranger); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("stranger must not propose, got %v", err)
	}
	if err := AuthorizeResponder(parts, tenant1); err != nil {
		t.Fatalf("tenant should respond: %v", err)
	}
	if err := AuthorizeResponder(parts, provider1); err != nil {
		t.Fatalf("provider should respond: %v", err)
	}
	if err := AuthorizeResponder(parts, manager1); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("manager must not respond, got %v", err)
	}
}

func TestPlanAccept_ResolvesAndAutoRejectsSiblings(t *testing.T) {
	slots := testSlots(3)
	plan, err := PlanAccept(slots, nil, slots[0].ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Noop {
		t.Fatalf("expected a real plan, got noop")
	}
	if len(plan.Upserts) != 3 {
		t.Fatalf("expected 3 upserts, got %d", len(plan.Upserts))
	}

	accepts, rejects := 0, 0
	for _, up := range plan.Upserts {
		switch up.Decision {
		case models.DecisionAccept:
			accepts++
			if up.SlotID != slots[0].ID {
				t.Fatalf("accept landed on wrong slot")
			}
		case models.DecisionReject:
			rejects++
		}
	}
	if accepts != 1 || rejects != 2 {
		t.Fatalf("expected 1 accept and 2 rejects, got %d/%d", accepts, rejects)
	}

	want := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	if !plan.ScheduledAt.Equal(want) {
		t.Fatalf("expected scheduled at %v, got %v", want, plan.ScheduledAt)
	}
}

func TestPlanAccept_AlreadyResolvedOtherSlot(t *testing.T) {
	slots := testSlots(2)
	selected := slots[1].ID
	_, err := PlanAccept(slots, &selected, slots[0].ID)
	if !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestPlanAccept_IdempotentOnSelectedSlot(t *testing.T) {
	slots := testSlots(2)
	selected := slots[0].ID
	plan, err := PlanAccept(slots, &selected, slots[0].ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !plan.Noop {
		t.Fatalf("expected noop plan")
	}
	if len(plan.Upserts) != 0 {
		t.Fatalf("noop plan must not carry writes")
	}
}

func TestPlanAccept_UnknownSlot(t *testing.T) {
	slots := testSlots(1)
	_, err := PlanAccept(slots, nil, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlanReject_CommentOptionalWhenSlotsRemain(t *testing.T) {
	slots := testSlots(2)
	plan, err := PlanReject(slots, nil, testParticipants(), nil, slots[0].ID, tenant1, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.CompletesResponder {
		t.Fatalf("one pending slot remains, responder not complete")
	}
	if plan.FullyRejected {
		t.Fatalf("intervention must not resolve")
	}
}

func TestPlanReject_CommentRequiredOnLastSlot(t *testing.T) {
	slots := testSlots(2)
	responses := []models.SlotResponse{
		{SlotID: slots[0].ID, ResponderID: tenant1, Decision: models.DecisionReject},
	}

	_, err := PlanReject(slots, responses, testParticipants(), nil, slots[1].ID, tenant1, "")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	plan, err := PlanReject(slots, responses, testParticipants(), nil, slots[1].ID, tenant1, "Indisponible ces jours")
	if err != nil {
		t.Fatalf("unexpected error with comment: %v", err)
	}
	if !plan.CompletesResponder {
		t.Fatalf("expected responder to be complete")
	}
	// Provider has not responded, so the intervention is not fully rejected.
	if plan.FullyRejected {
		t.Fatalf("provider still pending, must not fully reject")
	}
}

func TestPlanReject_FullRejectionResolves(t *testing.T) {
	slots := testSlots(2)
	responses := []models.SlotResponse{
		{SlotID: slots[0].ID, ResponderID: tenant1, Decision: models.DecisionReject},
		{SlotID: slots[1].ID, ResponderID: tenant1, Decision: models.DecisionReject},
		{SlotID: slots[0].ID, ResponderID: provider1, Decision: models.DecisionReject},
	}

	plan, err := PlanReject(slots, responses, testParticipants(), nil, slots[1].ID, provider1, "no availability")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !plan.CompletesResponder || !plan.FullyRejected {
		t.Fatalf("expected full rejection, got %+v", plan)
	}
}

func TestPlanReject_AfterResolutionFails(t *testing.T) {
	slots := testSlots(2)
	selected := slots[0].ID
	_, err := PlanReject(slots, nil, testParticipants(), &selected, slots[1].ID, tenant1, "late")
	if !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestCheckWithdraw(t *testing.T) {
	slots := testSlots(2)
	responses := []models.SlotResponse{
		{SlotID: slots[0].ID, ResponderID: tenant1, Decision: models.DecisionReject},
	}

	if err := CheckWithdraw(slots, responses, nil, slots[0].ID, tenant1); err != nil {
		t.Fatalf("withdrawal before resolution should succeed: %v", err)
	}

	selected := slots[1].ID
	if err := CheckWithdraw(slots, responses, &selected, slots[0].ID, tenant1); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict after resolution, got %v", err)
	}

	if err := CheckWithdraw(slots, responses, nil, slots[1].ID, tenant1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing response, got %v", err)
	}

	if err := CheckWithdraw(slots, responses, nil, uuid.New(), tenant1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing slot, got %v", err)
	}
}

// Mirrors the two-slot walkthrough: propose two windows, tenant accepts the
// first, and the plan pins the schedule to that window while declining the
// other.
func TestTwoSlotAcceptScenario(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	windows, err := ParseProposal(now, []SlotInput{
		{Date: "2025-03-10", StartTime: "14:00", EndTime: "15:00"},
		{Date: "2025-03-11", StartTime: "09:00", EndTime: "10:00"},
	})
	if err != nil {
		t.Fatalf("proposal failed: %v", err)
	}

	slots := make([]models.TimeSlot, 0, len(windows))
	for _, w := range windows {
		slots = append(slots, models.TimeSlot{
			ID:             uuid.New(),
			InterventionID: interventionID,
			SlotDate:       w.Date,
			StartTime:      w.Start,
			EndTime:        w.End,
			ProposedBy:     manager1,
		})
	}

	plan, err := PlanAccept(slots, nil, slots[0].ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	want := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	if !plan.ScheduledAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, plan.ScheduledAt)
	}

	var slot2Decision models.SlotDecision
	for _, up := range plan.Upserts {
		if up.SlotID == slots[1].ID {
			slot2Decision = up.Decision
		}
	}
	if slot2Decision != models.DecisionReject {
		t.Fatalf("expected second slot auto-rejected, got %q", slot2Decision)
	}
}
