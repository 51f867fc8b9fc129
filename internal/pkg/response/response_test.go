package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigflow/internal/pkg/apperr"
)

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func serve(t *testing.T, err error) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", func(c *gin.Context) { HandleError(c, err) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleError_AppError(t *testing.T) {
	conflict := apperr.New(apperr.KindConflict, "GIG_ALREADY_ASSIGNED", "Already assigned")

	w, body := serve(t, conflict)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "GIG_ALREADY_ASSIGNED", body.Error.Code)
}

func TestHandleError_UnknownErrorIsHidden(t *testing.T) {
	w, body := serve(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHandleError_TransactionUnsupportedNeverLeaks(t *testing.T) {
	w, body := serve(t, apperr.ErrTransactionUnsupported)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
}

func TestHandleError_ValidationDetails(t *testing.T) {
	inner := *apperr.ErrValidation
	inner.Details = map[string]string{"Price": "required"}
	sentinel := apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "Price is required")

	w, body := serve(t, apperr.Wrap(sentinel, &inner))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "Price is required", body.Error.Message)
	assert.Equal(t, map[string]string{"Price": "required"}, body.Error.Details)
}

func TestHandleError_NoDetailsKey(t *testing.T) {
	w, _ := serve(t, apperr.New(apperr.KindNotFound, "GIG_NOT_FOUND", "Gig not found"))
	assert.NotContains(t, w.Body.String(), "details")
}
