package v1

import (
	"net/http"
	"strconv"

	"github.com/cityverse/backend/internal/domain"
	"github.com/cityverse/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func (h *Handler) initReviewsRoutes(cities *gin.RouterGroup) {
	reviews := h.authenticated(cities.Group("/:id/reviews"))
	reviews.POST("", h.addReview)
	reviews.DELETE("/:index", h.deleteReview)
}

type addReviewRequest struct {
	User    string  `json:"user" binding:"required"`
	Comment string  `json:"comment" binding:"required"`
	Rating  float64 `json:"rating" binding:"required,rating"`
}

// @Summary Add Review
// @Security UserAuth
// @Tags Reviews
// @Description Prepends the review (newest first) and returns the updated sequence
// @Accept  json
// @Produce  json
// @Param id path string true "city id"
// @Param input body addReviewRequest true "review"
// @Success 201 {object} []domain.Review
// @Failure 400 {object} ValidationErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /cities/{id}/reviews [post]
func (h *Handler) addReview(c *gin.Context) {
	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	reviews, err := h.services.Reviews.Add(c.Request.Context(), c.Param("id"), service.AddReviewInput{
		User:    req.User,
		Comment: req.Comment,
		Rating:  req.Rating,
	})
	if err != nil {
		domainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, reviews)
}

// @Summary Delete Review
// @Security UserAuth
// @Tags Reviews
// @Description Removes the review at the given position of the current display order
// @Produce  json
// @Param id path string true "city id"
// @Param index path int true "review position, newest first"
// @Success 200 {object} []domain.Review
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 502 {object} ErrorStruct
// @Router /cities/{id}/reviews/{index} [delete]
func (h *Handler) deleteReview(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		domainErrorResponse(c, errors.Wrap(domain.ErrValidation, "review index must be an integer"))
		return
	}

	reviews, err := h.services.Reviews.DeleteByIndex(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		// within the reviews scope a 404 means the target of the delete
		// is gone, whether the index or the whole city
		if errors.Is(err, domain.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, &ErrorStruct{
				ErrorCode:    ReviewNotFoundCode,
				ErrorMessage: ReviewNotFoundMessage,
			})
			return
		}
		domainErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
