package v1

import (
	"github.com/cityverse/backend/internal/config"
	"github.com/cityverse/backend/internal/service"
	"github.com/cityverse/backend/internal/uploader"
	"github.com/cityverse/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title CityVerse Catalog API
// @version 1.0
// @description Travel journal catalog over a remote document collection

// @BasePath /api/v1

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services       *service.Services
	tokenManager   auth.TokenManager
	config         *config.Config
	uploaderClient *uploader.Client
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
	uploaderClient *uploader.Client,
) *Handler {
	return &Handler{
		services:       services,
		tokenManager:   tokenManager,
		config:         config,
		uploaderClient: uploaderClient,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initCountriesRoutes(v1)
	h.initCitiesRoutes(v1)
	h.initImagesRoutes(v1)
}

// authenticated wraps mutation routes behind the bearer-token check when
// auth gating is enabled. Reads stay open either way.
func (h *Handler) authenticated(group *gin.RouterGroup) *gin.RouterGroup {
	if !h.config.Auth.Enabled {
		return group
	}
	authed := group.Group("")
	authed.Use(h.userIdentityMiddleware)
	return authed
}
