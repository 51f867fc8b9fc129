package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gigflow/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// HandleError writes err as an error envelope. Application errors keep their
// code and status; anything else is attached to the context for ErrorLogger
// and answered with a 500.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ae := apperr.From(err)
	if ae.HTTPStatus >= http.StatusInternalServerError || ae.Kind == apperr.KindTransactionUnsupported {
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	if details := apperr.DetailsOf(err); details != nil {
		ErrorWithDetails(c, ae.HTTPStatus, ae.Code, ae.Message, details)
		return
	}
	Error(c, ae.HTTPStatus, ae.Code, ae.Message)
}
