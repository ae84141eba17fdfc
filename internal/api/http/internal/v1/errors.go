package v1

import (
	"errors"
	"net/http"

	"github.com/cityverse/backend/internal/domain"
	"github.com/cityverse/backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	CityNotFoundCode         = 2001
	CityNotFoundMessage      = "city not found"
	ReviewNotFoundCode       = 2002
	ReviewNotFoundMessage    = "review not found"
	StoreUnavailableCode     = 3001
	StoreUnavailableMessage  = "record store unavailable"
	StoreTimeoutCode         = 3002
	StoreTimeoutMessage      = "record store timeout"
	MalformedRecordCode      = 3003
	MalformedRecordMessage   = "record cannot be read"
	ValidationErrorCode      = 6000
	ValidationErrorMessage   = "validation error"

	UploadFailedCode           = 7001
	UploadFailedMessage        = "image upload failed"
	UploadNotConfiguredCode    = 7002
	UploadNotConfiguredMessage = "image upload not configured"
)

type ErrorStruct struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
} // @name ErrorStruct

// domainErrorResponse maps the error taxonomy to an HTTP status and a
// stable error code, so the caller can tell "not found" from "could not
// load" instead of treating every failure identically.
func domainErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, &ErrorStruct{
			ErrorCode:    ValidationErrorCode,
			ErrorMessage: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, &ErrorStruct{
			ErrorCode:    CityNotFoundCode,
			ErrorMessage: CityNotFoundMessage,
		})
	case errors.Is(err, domain.ErrTimeout):
		logger.Error("store request timed out", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, &ErrorStruct{
			ErrorCode:    StoreTimeoutCode,
			ErrorMessage: StoreTimeoutMessage,
		})
	case errors.Is(err, domain.ErrMalformedData):
		logger.Error("remote record is malformed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, &ErrorStruct{
			ErrorCode:    MalformedRecordCode,
			ErrorMessage: MalformedRecordMessage,
		})
	case errors.Is(err, domain.ErrUnavailable):
		logger.Error("store request failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, &ErrorStruct{
			ErrorCode:    StoreUnavailableCode,
			ErrorMessage: StoreUnavailableMessage,
		})
	default:
		logger.Error("unhandled error", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, &ErrorStruct{
			ErrorCode:    UnknownErrorCode,
			ErrorMessage: UnknownErrorMessage,
		})
	}
}
