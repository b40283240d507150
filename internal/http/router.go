package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/seido-app/backend/internal/config"
	"github.com/seido-app/backend/internal/db"
	"github.com/seido-app/backend/internal/geocode"
	"github.com/seido-app/backend/internal/http/handlers"
	"github.com/seido-app/backend/internal/http/middleware"
	"github.com/seido-app/backend/internal/notify"

	_ "github.com/seido-app/backend/docs"
)

func Router(cfg config.Config, store *db.Store, notifier notify.Notifier, geocoder geocode.Geocoder, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Actor-Id", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:          store,
		Notifier:       notifier,
		Geocoder:       geocoder,
		Validator:      validator.New(),
		Logger:         logger,
		AdminKey:       cfg.AdminKey,
		CountryDefault: cfg.CountryDefault,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/interventions", h.InterventionsList)
		api.GET("/interventions/:id", h.InterventionDetails)
		api.GET("/interventions/:id/messages", h.MessagesList)
		api.GET("/buildings", h.BuildingsList)
		api.GET("/buildings/:id/lots", h.LotsList)
	}

	// Scheduling operations act on behalf of an authenticated participant.
	actor := api.Group("")
	actor.Use(middleware.Actor())
	{
		actor.POST("/interventions", h.InterventionCreate)
		actor.POST("/interventions/:id/status", h.InterventionStatusChange)
		actor.POST("/interventions/:id/slots", h.SlotsPropose)
		actor.POST("/interventions/:id/slots/:slotID/accept", h.SlotAccept)
		actor.POST("/interventions/:id/slots/:slotID/reject", h.SlotReject)
		actor.DELETE("/interventions/:id/slots/:slotID/response", h.SlotResponseWithdraw)
		actor.POST("/interventions/:id/messages", h.MessagePost)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/teams", h.TeamCreate)
		admin.POST("/users", h.UserCreate)
		admin.POST("/buildings", h.BuildingCreate)
		admin.POST("/lots", h.LotCreate)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
