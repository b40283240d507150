package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/seido-app/backend/internal/db"
	"github.com/seido-app/backend/internal/geocode"
	"github.com/seido-app/backend/internal/models"
	"github.com/seido-app/backend/internal/notify"
	"github.com/seido-app/backend/internal/scheduling"
)

type Handler struct {
	Store          *db.Store
	Notifier       notify.Notifier
	Geocoder       geocode.Geocoder
	Validator      *validator.Validate
	Logger         zerolog.Logger
	AdminKey       string
	CountryDefault string
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// writeDomainError maps the scheduling error taxonomy onto HTTP statuses.
// Anything unrecognized is an internal error.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scheduling.ErrValidation):
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, scheduling.ErrUnauthorized):
		writeError(c, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case errors.Is(err, scheduling.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		writeError(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, scheduling.ErrAlreadyResolved):
		writeError(c, http.StatusConflict, "ALREADY_RESOLVED", err.Error(), nil)
	case errors.Is(err, scheduling.ErrConflict):
		writeError(c, http.StatusConflict, "CONFLICT", err.Error(), nil)
	default:
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed", err.Error())
	}
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid "+name, err.Error())
		return uuid.UUID{}, false
	}
	return id, true
}

// schedulingState is everything the decision core needs about one
// intervention, loaded up front by the slot handlers.
type schedulingState struct {
	Intervention models.Intervention
	Participants []models.Participant
	Slots        []models.TimeSlot
	Responses    []models.SlotResponse
}

func (h *Handler) loadSchedulingState(ctx context.Context, id uuid.UUID) (schedulingState, error) {
	var st schedulingState
	iv, err := h.Store.GetIntervention(ctx, id)
	if err != nil {
		return st, err
	}
	parts, err := h.Store.ListParticipants(ctx, id)
	if err != nil {
		return st, err
	}
	slots, err := h.Store.ListSlots(ctx, id)
	if err != nil {
		return st, err
	}
	responses, err := h.Store.ListResponses(ctx, id)
	if err != nil {
		return st, err
	}
	st = schedulingState{Intervention: iv, Participants: parts, Slots: slots, Responses: responses}
	return st, nil
}

// dispatch sends a notification without failing the request.
func (h *Handler) dispatch(ctx context.Context, n notify.Notification) {
	if h.Notifier == nil {
		return
	}
	if err := h.Notifier.Send(ctx, n); err != nil {
		h.Logger.Warn().Err(err).
			Str("intervention_id", n.InterventionID.String()).
			Str("kind", string(n.Kind)).
			Msg("notification dispatch failed")
	}
}
