package models

import (
	"testing"
	"time"
)

func mustDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseInterventionStatus(t *testing.T) {
	if _, err := ParseInterventionStatus("planning"); err != nil {
		t.Fatalf("planning should parse: %v", err)
	}
	if _, err := ParseInterventionStatus("PLANNING"); err == nil {
		t.Fatalf("statuses are case sensitive")
	}
	if _, err := ParseInterventionStatus("done"); err == nil {
		t.Fatalf("unknown status must not parse")
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to InterventionStatus
		want     bool
	}{
		{StatusRequested, StatusQuoteRequested, true},
		{StatusRequested, StatusPlanning, true},
		{StatusRequested, StatusScheduled, false},
		{StatusQuoteRequested, StatusPlanning, true},
		{StatusPlanning, StatusScheduled, true},
		{StatusScheduled, StatusPlanning, true}, // reopen on full rejection
		{StatusScheduled, StatusInProgress, true},
		{StatusInProgress, StatusClosedByProvider, true},
		{StatusClosedByProvider, StatusClosedByTenant, true},
		{StatusClosedByTenant, StatusClosedByManager, true},
		{StatusClosedByManager, StatusRequested, false},
		{StatusPlanning, StatusCancelled, true},
		{StatusCancelled, StatusPlanning, false},
		{StatusClosedByManager, StatusCancelled, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestStatusBefore(t *testing.T) {
	if !StatusRequested.Before(StatusPlanning) {
		t.Fatalf("requested should sit before planning")
	}
	if StatusScheduled.Before(StatusPlanning) {
		t.Fatalf("scheduled should not sit before planning")
	}
}

func TestRoleCapabilities(t *testing.T) {
	if !RoleManager.Capabilities().CanPropose || RoleManager.Capabilities().CanAccept {
		t.Fatalf("manager proposes but does not accept")
	}
	if RoleTenant.Capabilities().CanPropose || !RoleTenant.Capabilities().CanAccept {
		t.Fatalf("tenant accepts but does not propose")
	}
	caps := RoleProvider.Capabilities()
	if !caps.CanPropose || !caps.CanAccept || !caps.CanReject {
		t.Fatalf("provider should hold all capabilities")
	}
	if RoleManager.Responder() || !RoleTenant.Responder() || !RoleProvider.Responder() {
		t.Fatalf("responders are tenant and provider")
	}
	if _, err := ParseRole("owner"); err == nil {
		t.Fatalf("unknown role must not parse")
	}
}

func TestScheduledStart(t *testing.T) {
	slot := TimeSlot{
		SlotDate:  mustDate(2025, 3, 10),
		StartTime: "14:00",
	}
	got := slot.ScheduledStart()
	if got.Hour() != 14 || got.Minute() != 0 || got.Day() != 10 {
		t.Fatalf("unexpected scheduled start: %v", got)
	}
}
