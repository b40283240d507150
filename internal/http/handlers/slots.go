package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/seido-app/backend/internal/http/middleware"
	"github.com/seido-app/backend/internal/notify"
	"github.com/seido-app/backend/internal/scheduling"
)

type ProposeSlotsRequest struct {
	Slots []scheduling.SlotInput `json:"slots" validate:"required,min=1,dive"`
}

// @Summary Propose time slots for an intervention
// @Tags scheduling
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Router /api/interventions/{id}/slots [post]
func (h *Handler) SlotsPropose(c *gin.Context) {
	actor, ok := middleware.ActorID(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing actor identity", nil)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ProposeSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}

	windows, err := scheduling.ParseProposal(time.Now(), req.Slots)
	if err != nil {
		writeDomainError(c, err)
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

	if err := scheduling.AuthorizeProposer(st.Participants, actor); err != nil {
		writeDomainError(c, err)
		return
	}
	if st.Intervention.SelectedSlotID != nil {
		writeDomainError(c, scheduling.ErrAlreadyResolved)
		return
	}
	if st.Intervention.Status.Terminal() {
		writeError(c, http.StatusConflict, "CONFLICT", "Intervention is closed", nil)
		return
	}

	slots, err := h.Store.InsertSlots(c.Request.Context(), st.Intervention, actor, windows)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create slots", err.Error())
		return
	}

	ids := make([]uuid.UUID, 0, len(slots))
	for _, s := range slots {
		ids = append(ids, s.ID)
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "created_slot_ids": ids})
}

// @Summary Accept a proposed time slot
// @Tags scheduling
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/interventions/{id}/slots/{slotID}/accept [post]
func (h *Handler) SlotAccept(c *gin.Context) {
	actor, ok := middleware.ActorID(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing actor identity", nil)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	slotID, ok := parseID(c, "slotID")
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

	if err := scheduling.AuthorizeResponder(st.Participants, actor); err != nil {
		writeDomainError(c, err)
		return
	}

	plan, err := scheduling.PlanAccept(st.Slots, st.Intervention.SelectedSlotID, slotID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if plan.Noop {
		// Re-accepting the selected slot: same resolved state, no new message.
		c.JSON(http.StatusOK, gin.H{"success": true, "scheduled_date": plan.ScheduledAt})
		return
	}

	body := acceptedBody(plan)
	if err := h.Store.ApplyAccept(c.Request.Context(), st.Intervention, actor, plan, body); err != nil {
		writeDomainError(c, err)
		return
	}

	h.dispatch(c.Request.Context(), notify.Notification{
		InterventionID: id,
		Kind:           notify.KindScheduled,
		Title:          "Intervention scheduled",
		Body:           body,
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "scheduled_date": plan.ScheduledAt})
}

type RejectSlotRequest struct {
	Comment string `json:"comment"`
}

// @Summary Reject a proposed time slot
// @Tags scheduling
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/interventions/{id}/slots/{slotID}/reject [post]
func (h *Handler) SlotReject(c *gin.Context) {
	actor, ok := middleware.ActorID(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing actor identity", nil)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	slotID, ok := parseID(c, "slotID")
	if !ok {
		return
	}

	var req RejectSlotRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
			return
		}
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

	if err := scheduling.AuthorizeResponder(st.Participants, actor); err != nil {
		writeDomainError(c, err)
		return
	}

	plan, err := scheduling.PlanReject(st.Slots, st.Responses, st.Participants, st.Intervention.SelectedSlotID, slotID, actor, req.Comment)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	body := ""
	if plan.FullyRejected {
		body = allRejectedBody(req.Comment)
	}
	if err := h.Store.ApplyReject(c.Request.Context(), st.Intervention, actor, slotID, req.Comment, plan.FullyRejected, body); err != nil {
		writeDomainError(c, err)
		return
	}

	if plan.FullyRejected {
		h.dispatch(c.Request.Context(), notify.Notification{
			InterventionID: id,
			Kind:           notify.KindAllRejected,
			Title:          "All time slots rejected",
			Body:           body,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "fully_rejected": plan.FullyRejected})
}

// @Summary Withdraw a slot response
// @Tags scheduling
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/interventions/{id}/slots/{slotID}/response [delete]
func (h *Handler) SlotResponseWithdraw(c *gin.Context) {
	actor, ok := middleware.ActorID(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing actor identity", nil)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	slotID, ok := parseID(c, "slotID")
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

	if err := scheduling.AuthorizeResponder(st.Participants, actor); err != nil {
		writeDomainError(c, err)
		return
	}
	if err := scheduling.CheckWithdraw(st.Slots, st.Responses, st.Intervention.SelectedSlotID, slotID, actor); err != nil {
		writeDomainError(c, err)
		return
	}

	deleted, err := h.Store.DeleteResponse(c.Request.Context(), slotID, actor)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to withdraw response", err.Error())
		return
	}
	if !deleted {
		// The guard in the DELETE lost a race with a resolving accept.
		writeDomainError(c, scheduling.ErrConflict)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
