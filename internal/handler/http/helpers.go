package http

import (
	"errors"
	"net/http"
	"time"

	domainerrors "github.com/CHANDU-143-ashok/mangocropconnect/internal/domain/errors"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/handler/http/dto"
	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/validator"
	"github.com/gin-gonic/gin"
)

// now is the clock used for derived response values.
var now = time.Now

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// MessageHandler centralizes message responses
func MessageHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message})
}

// BindAndValidate binds the JSON body and writes a 400 response when it is malformed or invalid.
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		err = validator.Translate(err)
		var verr *domainerrors.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Fields: verr.Fields})
			return err
		}
		ErrorHandler(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return err
	}
	return nil
}

// HandleUseCaseError maps domain errors to HTTP responses. Unknown errors become a logged 500.
func HandleUseCaseError(c *gin.Context, err error) {
	var verr *domainerrors.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Fields: verr.Fields})
	case errors.Is(err, domainerrors.ErrValidation):
		ErrorHandler(c, http.StatusBadRequest, "Validation failed")
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		ErrorHandler(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domainerrors.ErrUnauthorized):
		ErrorHandler(c, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, domainerrors.ErrForbidden):
		ErrorHandler(c, http.StatusForbidden, "Not authorized to perform this action")
	case errors.Is(err, domainerrors.ErrNotFound):
		ErrorHandler(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, domainerrors.ErrInvalidTransition):
		ErrorHandler(c, http.StatusConflict, "Invalid status transition")
	case errors.Is(err, domainerrors.ErrConflict):
		ErrorHandler(c, http.StatusConflict, "Resource already exists")
	default:
		_ = c.Error(err)
		ErrorHandler(c, http.StatusInternalServerError, "Internal server error")
	}
}
