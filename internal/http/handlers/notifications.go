package handlers

import (
	"fmt"

	"github.com/seido-app/backend/internal/models"
	"github.com/seido-app/backend/internal/notify"
	"github.com/seido-app/backend/internal/scheduling"
)

// Thread and notification copy for scheduling outcomes.

func acceptedBody(plan scheduling.AcceptPlan) string {
	return fmt.Sprintf("Time slot confirmed: visit scheduled on %s from %s to %s.",
		plan.Slot.SlotDate.Format("2006-01-02"), plan.Slot.StartTime, plan.Slot.EndTime)
}

func allRejectedBody(comment string) string {
	if comment == "" {
		return "All proposed time slots were declined. New availability is needed."
	}
	return fmt.Sprintf("All proposed time slots were declined: %s. New availability is needed.", comment)
}

func notifyStatusChange(iv models.Intervention, next models.InterventionStatus) notify.Notification {
	return notify.Notification{
		InterventionID: iv.ID,
		Kind:           notify.KindStatusChange,
		Title:          "Intervention status changed",
		Body:           fmt.Sprintf("%q moved from %s to %s.", iv.Title, iv.Status, next),
	}
}
