package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/seido-app/backend/internal/http/middleware"
	"github.com/seido-app/backend/internal/models"
)

func (h *Handler) MessagesList(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := h.Store.GetIntervention(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Intervention not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load intervention", err.Error())
		return
	}

	messages, err := h.Store.ListMessages(c.Request.Context(), id)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list messages", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": messages})
}

type PostMessageRequest struct {
	Body string `json:"body" validate:"required"`
}

func (h *Handler) MessagePost(c *gin.Context) {
	actor, ok := middleware.ActorID(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing actor identity", nil)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	parts, err := h.Store.ListParticipants(c.Request.Context(), id)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load participants", err.Error())
		return
	}
	isParticipant := false
	for _, p := range parts {
		if p.UserID == actor {
			isParticipant = true
			break
		}
	}
	if !isParticipant {
		writeError(c, http.StatusForbidden, "FORBIDDEN", "Only participants may post to the thread", nil)
		return
	}

	msg := models.ConversationMessage{
		ID:             uuid.New(),
		InterventionID: id,
		AuthorID:       &actor,
		Kind:           models.MessageKindUser,
		Body:           req.Body,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.Store.InsertMessage(c.Request.Context(), msg); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to post message", err.Error())
		return
	}
	c.JSON(http.StatusCreated, msg)
}
