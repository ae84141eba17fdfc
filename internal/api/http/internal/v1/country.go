package v1

import (
	"net/http"

	"github.com/cityverse/backend/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) initCountriesRoutes(api *gin.RouterGroup) {
	countries := api.Group("/countries")
	countries.GET("", h.listCountries)

	h.authenticated(countries).POST("", h.createCountry)
}

// @Summary List Countries
// @Tags Countries
// @Description Derived country index: unique country names with city counts
// @Accept  json
// @Produce  json
// @Success 200 {object} []domain.Country
// @Failure 502 {object} ErrorStruct
// @Failure 504 {object} ErrorStruct
// @Router /countries [get]
func (h *Handler) listCountries(c *gin.Context) {
	countries, err := h.services.Catalog.ListCountries(c.Request.Context())
	if err != nil {
		domainErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, countries)
}

type createCountryRequest struct {
	Country     string `json:"country" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// @Summary Add Country
// @Security UserAuth
// @Tags Countries
// @Description Creating a country means creating its founding city; the country then appears in the index
// @Accept  json
// @Produce  json
// @Param input body createCountryRequest true "country and its first city"
// @Success 201 {object} domain.City
// @Failure 400 {object} ValidationErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /countries [post]
func (h *Handler) createCountry(c *gin.Context) {
	var req createCountryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	city, err := h.services.Cities.Create(c.Request.Context(), service.CreateCityInput{
		Name:        req.Name,
		Country:     req.Country,
		Image:       req.Image,
		Description: req.Description,
	})
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, city)
}
