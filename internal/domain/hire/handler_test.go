package hire

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*gin.Engine, *fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := setup(t, true)
	r := gin.New()
	protected := r.Group("/api/v1")
	protected.Use(func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-Test-User-ID"))
		c.Next()
	})
	NewHandler(f.service(f.tx, 3)).RegisterRoutes(protected)
	return r, f
}

func patch(r http.Handler, path, userID string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodPatch, path, nil)
	req.Header.Set("X-Test-User-ID", userID)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHandler_Hire(t *testing.T) {
	r, f := setupRouter(t)
	owner := f.newUser(t, "owner")
	a := f.newUser(t, "a")
	b := f.newUser(t, "b")
	g := f.newGig(t, owner.ID, "Site")
	win := f.newBid(t, g.ID, a.ID)
	lose := f.newBid(t, g.ID, b.ID)

	w, body := patch(r, "/api/v1/bids/"+win.ID+"/hire", a.ID)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(body))

	w, body = patch(r, "/api/v1/bids/missing/hire", owner.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "BID_NOT_FOUND", errorCode(body))

	w, body = patch(r, "/api/v1/bids/"+win.ID+"/hire", owner.ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Freelancer hired successfully", data["message"])
	assert.EqualValues(t, 1, data["rejectedBidsCount"])
	hired, ok := data["bid"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hired", hired["status"])

	w, body = patch(r, "/api/v1/bids/"+lose.ID+"/hire", owner.ID)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "GIG_ALREADY_ASSIGNED", errorCode(body))
}
