package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/seido-app/backend/internal/http/middleware"
	"github.com/seido-app/backend/internal/models"
	"github.com/seido-app/backend/internal/scheduling"
)

type ParticipantRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Role   string `json:"role" validate:"required"`
}

type CreateInterventionRequest struct {
	TeamID       string               `json:"team_id" validate:"required,uuid"`
	LotID        string               `json:"lot_id" validate:"required,uuid"`
	Title        string               `json:"title" validate:"required"`
	Description  string               `json:"description"`
	Participants []ParticipantRequest `json:"participants" validate:"required,min=1,dive"`
}

// @Summary Create an intervention
// @Tags interventions
// @Accept json
// @Produce json
// @Success 201 {object} models.Intervention
// @Failure 400 {object} map[string]any
// @Router /api/interventions [post]
func (h *Handler) InterventionCreate(c *gin.Context) {
	actor, ok := middleware.ActorID(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing actor identity", nil)
		return
	}

	var req CreateInterventionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	teamID, _ := uuid.Parse(req.TeamID)
	lotID, _ := uuid.Parse(req.LotID)

	now := time.Now().UTC()
	iv := models.Intervention{
		ID:          uuid.New(),
		TeamID:      teamID,
		LotID:       lotID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusRequested,
		CreatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	parts := make([]models.Participant, 0, len(req.Participants))
	for _, p := range req.Participants {
		role, err := models.ParseRole(p.Role)
		if err != nil {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		userID, _ := uuid.Parse(p.UserID)
		parts = append(parts, models.Participant{InterventionID: iv.ID, UserID: userID, Role: role})
	}

	if err := h.Store.CreateIntervention(c.Request.Context(), iv, parts); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create intervention", err.Error())
		return
	}
	c.JSON(http.StatusCreated, iv)
}

func (h *Handler) InterventionsList(c *gin.Context) {
	status := c.Query("status")
	if status != "" {
		if _, err := models.ParseInterventionStatus(status); err != nil {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
	}
	var teamID *uuid.UUID
	if raw := c.Query("team_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid team_id", err.Error())
			return
		}
		teamID = &id
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.Store.ListInterventions(c.Request.Context(), status, teamID, limit, offset)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list interventions", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "limit": limit, "offset": offset})
}

// @Summary Intervention details with scheduling state
// @Tags interventions
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/interventions/{id} [get]
func (h *Handler) InterventionDetails(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	st, err := h.loadSchedulingState(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Intervention not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load intervention", err.Error())
		return
	}

	messages, err := h.Store.ListMessages(c.Request.Context(), id)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load messages", err.Error())
		return
	}

	substate := scheduling.DeriveSubstate(st.Slots, st.Responses, st.Participants, st.Intervention.SelectedSlotID)
	c.JSON(http.StatusOK, gin.H{
		"intervention": st.Intervention,
		"participants": st.Participants,
		"slots":        st.Slots,
		"responses":    st.Responses,
		"substate":     substate,
		"messages":     messages,
	})
}

type StatusChangeRequest struct {
	Status string `json:"status" validate:"required"`
}

// InterventionStatusChange advances the lifecycle. The transition table is
// the only authority on what is allowed.
func (h *Handler) InterventionStatusChange(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	next, err := models.ParseInterventionStatus(req.Status)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	iv, err := h.Store.GetIntervention(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Intervention not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load intervention", err.Error())
		return
	}

	if !iv.Status.CanTransition(next) {
		writeError(c, http.StatusConflict, "CONFLICT",
			"Transition from "+string(iv.Status)+" to "+string(next)+" is not allowed", nil)
		return
	}

	moved, err := h.Store.UpdateInterventionStatus(c.Request.Context(), id, iv.Status, next)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update status", err.Error())
		return
	}
	if !moved {
		writeError(c, http.StatusConflict, "CONFLICT", "Intervention changed concurrently", nil)
		return
	}

	h.dispatch(c.Request.Context(), notifyStatusChange(iv, next))
	c.JSON(http.StatusOK, gin.H{"success": true, "status": next})
}
