package models

import "fmt"

// InterventionStatus is the closed lifecycle enumeration. Transitions are
// validated through CanTransition; call sites never compare raw strings.
type InterventionStatus string

const (
	StatusRequested        InterventionStatus = "requested"
	StatusQuoteRequested   InterventionStatus = "quote_requested"
	StatusPlanning         InterventionStatus = "planning"
	StatusScheduled        InterventionStatus = "scheduled"
	StatusInProgress       InterventionStatus = "in_progress"
	StatusClosedByProvider InterventionStatus = "closed_by_provider"
	StatusClosedByTenant   InterventionStatus = "closed_by_tenant"
	StatusClosedByManager  InterventionStatus = "closed_by_manager"
	StatusCancelled        InterventionStatus = "cancelled"
)

// statusTransitions lists the allowed forward edges. Cancellation is handled
// separately: any non-terminal status may move to cancelled.
var statusTransitions = map[InterventionStatus][]InterventionStatus{
	StatusRequested:        {StatusQuoteRequested, StatusPlanning},
	StatusQuoteRequested:   {StatusPlanning},
	StatusPlanning:         {StatusScheduled},
	StatusScheduled:        {StatusInProgress, StatusPlanning},
	StatusInProgress:       {StatusClosedByProvider},
	StatusClosedByProvider: {StatusClosedByTenant},
	StatusClosedByTenant:   {StatusClosedByManager},
}

// statusRank orders the lifecycle so "not past planning yet" checks do not
// compare strings. Closed variants share the top of the ordering.
var statusRank = map[InterventionStatus]int{
	StatusRequested:        0,
	StatusQuoteRequested:   1,
	StatusPlanning:         2,
	StatusScheduled:        3,
	StatusInProgress:       4,
	StatusClosedByProvider: 5,
	StatusClosedByTenant:   6,
	StatusClosedByManager:  7,
	StatusCancelled:        8,
}

func ParseInterventionStatus(s string) (InterventionStatus, error) {
	st := InterventionStatus(s)
	if _, ok := statusRank[st]; !ok {
		return "", fmt.Errorf("unknown intervention status %q", s)
	}
	return st, nil
}

func (s InterventionStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

func (s InterventionStatus) Terminal() bool {
	switch s {
	case StatusClosedByManager, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the lifecycle allows moving from s to next.
func (s InterventionStatus) CanTransition(next InterventionStatus) bool {
	if next == StatusCancelled {
		return !s.Terminal() && s != StatusClosedByProvider && s != StatusClosedByTenant
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Before reports whether s sits earlier in the lifecycle than other.
func (s InterventionStatus) Before(other InterventionStatus) bool {
	return statusRank[s] < statusRank[other]
}
