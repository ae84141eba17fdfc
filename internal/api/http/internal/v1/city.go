package v1

import (
	"net/http"

	"github.com/cityverse/backend/internal/domain"
	"github.com/cityverse/backend/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handler) initCitiesRoutes(api *gin.RouterGroup) {
	cities := api.Group("/cities")
	cities.GET("", h.listCities)
	cities.GET("/:id", h.getCity)

	authed := h.authenticated(cities)
	authed.POST("", h.createCity)
	authed.PATCH("/:id", h.updateCity)
	authed.DELETE("/:id", h.deleteCity)

	h.initReviewsRoutes(cities)
}

// @Summary List Cities
// @Tags Cities
// @Description All cities, optionally filtered by exact country match and a text query
// @Accept  json
// @Produce  json
// @Param country query string false "exact country filter (case- and whitespace-sensitive)"
// @Param q query string false "case-insensitive match against name, country, description"
// @Success 200 {object} []domain.City
// @Failure 502 {object} ErrorStruct
// @Failure 504 {object} ErrorStruct
// @Router /cities [get]
func (h *Handler) listCities(c *gin.Context) {
	cities, err := h.services.Catalog.ListCities(c.Request.Context(), c.Query("country"), c.Query("q"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

// @Summary Get City
// @Tags Cities
// @Description One city with computed review stats and the resolved main image
// @Accept  json
// @Produce  json
// @Param id path string true "city id"
// @Success 200 {object} service.CityDetails
// @Failure 404 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /cities/{id} [get]
func (h *Handler) getCity(c *gin.Context) {
	details, err := h.services.Catalog.GetCity(c.Request.Context(), c.Param("id"))
	if err != nil {
		domainErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

type poiRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url"`
}

type createCityRequest struct {
	Name             string       `json:"name" binding:"required"`
	Country          string       `json:"country" binding:"required"`
	Description      string       `json:"description"`
	Image            string       `json:"image"`
	Images           []string     `json:"images"`
	PointsOfInterest []poiRequest `json:"points_of_interest" binding:"dive"`
	AverageRating    *float64     `json:"average_rating"`
}

// @Summary Create City
// @Security UserAuth
// @Tags Cities
// @Description Create a city; the store assigns the id and the response carries it
// @Accept  json
// @Produce  json
// @Param input body createCityRequest true "city fields"
// @Success 201 {object} domain.City
// @Failure 400 {object} ValidationErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /cities [post]
func (h *Handler) createCity(c *gin.Context) {
	var req createCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	city, err := h.services.Cities.Create(c.Request.Context(), service.CreateCityInput{
		Name:             req.Name,
		Country:          req.Country,
		Description:      req.Description,
		Image:            req.Image,
		Images:           req.Images,
		PointsOfInterest: toPOIs(req.PointsOfInterest),
		AverageRating:    req.AverageRating,
	})
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, city)
}

type updateCityRequest struct {
	Name             *string       `json:"name"`
	Country          *string       `json:"country"`
	Description      *string       `json:"description"`
	Image            *string       `json:"image"`
	MainImage        *string       `json:"main_image"`
	Images           *[]string     `json:"images"`
	PointsOfInterest *[]poiRequest `json:"points_of_interest"`
	AverageRating    *float64      `json:"average_rating"`
}

// @Summary Update City
// @Security UserAuth
// @Tags Cities
// @Description Partial update; omitted fields are left untouched server-side
// @Accept  json
// @Produce  json
// @Param id path string true "city id"
// @Param input body updateCityRequest true "fields to change"
// @Success 204
// @Failure 400 {object} ValidationErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /cities/{id} [patch]
func (h *Handler) updateCity(c *gin.Context) {
	var req updateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	input := service.UpdateCityInput{
		Name:          req.Name,
		Country:       req.Country,
		Description:   req.Description,
		Image:         req.Image,
		MainImage:     req.MainImage,
		Images:        req.Images,
		AverageRating: req.AverageRating,
	}
	if req.PointsOfInterest != nil {
		pois := toPOIs(*req.PointsOfInterest)
		input.PointsOfInterest = &pois
	}

	if err := h.services.Cities.Update(c.Request.Context(), c.Param("id"), input); err != nil {
		domainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete City
// @Security UserAuth
// @Tags Cities
// @Description Irreversible; embedded reviews are removed with the record
// @Produce  json
// @Param id path string true "city id"
// @Success 204
// @Failure 404 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /cities/{id} [delete]
func (h *Handler) deleteCity(c *gin.Context) {
	if err := h.services.Cities.Delete(c.Request.Context(), c.Param("id")); err != nil {
		domainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toPOIs(reqs []poiRequest) []domain.PointOfInterest {
	pois := make([]domain.PointOfInterest, 0, len(reqs))
	for _, poi := range reqs {
		pois = append(pois, domain.PointOfInterest{Name: poi.Name, URL: poi.URL})
	}
	return pois
}
