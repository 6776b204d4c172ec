package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/optourism/firenzecard-backend-go/internal/errs"
)

// Response represents a standard API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError sends a 500 internal server error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// FromError maps known analysis errors onto HTTP status codes and sends
// the response. Unrecognized errors become 500s.
func FromError(c *gin.Context, err error) {
	var granErr *errs.InvalidGranularityError
	if errors.As(err, &granErr) {
		BadRequest(c, granErr.Error())
		return
	}
	var dataErr *errs.DataError
	if errors.As(err, &dataErr) {
		Error(c, http.StatusUnprocessableEntity, dataErr.Error())
		return
	}
	InternalError(c, err.Error())
}
