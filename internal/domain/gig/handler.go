package gig

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gigflow/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create posts a gig.
// @Summary		Post a gig
// @Tags		Gigs
// @Security	BearerAuth
// @Param		request	body	CreateGigRequest	true	"Title, description and budget"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}	"Validation error or gig limit reached"
// @Failure		401	{object}	map[string]interface{}
// @Router		/gigs [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	g, err := h.svc.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, g)
}

// List returns open gigs, optionally filtered by ?search=.
// @Summary		Browse open gigs
// @Tags		Gigs
// @Param		search	query	string	false	"Case-insensitive match on title or description"
// @Success		200	{object}	map[string]interface{}
// @Router		/gigs [GET]
func (h *Handler) List(c *gin.Context) {
	rows, err := h.svc.ListOpen(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

// GetByID
// @Summary		Get a gig
// @Tags		Gigs
// @Param		id	path	string	true	"Gig ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/gigs/{id} [GET]
func (h *Handler) GetByID(c *gin.Context) {
	g, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, g)
}

// @Summary		List my gigs
// @Tags		Gigs
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Router		/gigs/my-gigs [GET]
func (h *Handler) ListMine(c *gin.Context) {
	rows, err := h.svc.ListMine(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}
