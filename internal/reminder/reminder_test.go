package reminder

import (
	"strings"
	"testing"
	"time"

	"github.com/seido-app/backend/internal/models"
)

func TestReminderBody(t *testing.T) {
	at := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	iv := models.Intervention{Title: "Fuite d'eau salle de bain", ScheduledDate: &at}
	body := ReminderBody(iv)
	if !strings.Contains(body, "2025-03-10 14:00") {
		t.Fatalf("expected schedule timestamp in body, got %q", body)
	}
	if !strings.Contains(body, "Fuite d'eau salle de bain") {
		t.Fatalf("expected title in body, got %q", body)
	}
}

func TestReminderBodyWithoutDate(t *testing.T) {
	body := ReminderBody(models.Intervention{Title: "Chaudière"})
	if !strings.Contains(body, "soon") {
		t.Fatalf("expected fallback wording, got %q", body)
	}
}
