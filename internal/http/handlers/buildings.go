package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/seido-app/backend/internal/geocode"
	"github.com/seido-app/backend/internal/models"
)

type CreateTeamRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) TeamCreate(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	team := models.Team{ID: uuid.New(), Name: req.Name}
	if err := h.Store.InsertTeam(c.Request.Context(), team); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create team", err.Error())
		return
	}
	c.JSON(http.StatusCreated, team)
}

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

func (h *Handler) UserCreate(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	user := models.User{ID: uuid.New(), Name: req.Name, Email: req.Email, Role: role}
	if err := h.Store.InsertUser(c.Request.Context(), user); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create user", err.Error())
		return
	}
	c.JSON(http.StatusCreated, user)
}

type CreateBuildingRequest struct {
	TeamID  string `json:"team_id" validate:"required,uuid"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
}

// @Summary Create a building
// @Description The address is geocoded best-effort; coordinates stay empty on failure.
// @Tags buildings
// @Accept json
// @Produce json
// @Success 201 {object} models.Building
// @Failure 400 {object} map[string]any
// @Router /api/buildings [post]
func (h *Handler) BuildingCreate(c *gin.Context) {
	var req CreateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	teamID, _ := uuid.Parse(req.TeamID)
	b := models.Building{
		ID:      uuid.New(),
		TeamID:  teamID,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
	}

	if h.Geocoder != nil {
		query := geocode.BuildQuery(h.CountryDefault, b)
		lat, lon, _, _, err := h.Geocoder.Geocode(c.Request.Context(), query)
		if err != nil {
			h.Logger.Warn().Err(err).Str("query", query).Msg("geocode failed")
		} else {
			b.Lat = &lat
			b.Lon = &lon
		}
	}

	if err := h.Store.InsertBuilding(c.Request.Context(), b); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create building", err.Error())
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *Handler) BuildingsList(c *gin.Context) {
	var teamID *uuid.UUID
	if raw := c.Query("team_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid team_id", err.Error())
			return
		}
		teamID = &id
	}
	items, err := h.Store.ListBuildings(c.Request.Context(), teamID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list buildings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type CreateLotRequest struct {
	BuildingID string  `json:"building_id" validate:"required,uuid"`
	Reference  string  `json:"reference" validate:"required"`
	Floor      int     `json:"floor"`
	TenantID   *string `json:"tenant_id" validate:"omitempty,uuid"`
}

func (h *Handler) LotCreate(c *gin.Context) {
	var req CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	buildingID, _ := uuid.Parse(req.BuildingID)
	lot := models.Lot{
		ID:         uuid.New(),
		BuildingID: buildingID,
		Reference:  req.Reference,
		Floor:      req.Floor,
	}
	if req.TenantID != nil {
		tenantID, _ := uuid.Parse(*req.TenantID)
		lot.TenantID = &tenantID
	}

	if err := h.Store.InsertLot(c.Request.Context(), lot); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create lot", err.Error())
		return
	}
	c.JSON(http.StatusCreated, lot)
}

func (h *Handler) LotsList(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	items, err := h.Store.ListLots(c.Request.Context(), id)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list lots", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
