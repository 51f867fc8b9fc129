package bid

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

// Create submits a bid on an open gig.
// @Summary		Submit a bid
// @Description	A freelancer bids once per gig, never on their own gig, and within the lifetime bid limit.
// @Tags		Bids
// @Security	BearerAuth
// @Param		request	body	CreateBidRequest	true	"gigId, message and price"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}	"Validation error, gig not open, own gig, duplicate or limit reached"
// @Failure		401	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}	"Gig not found"
// @Router		/bids [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	b, err := h.svc.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

// ListForGig returns the bids on a gig to its owner.
// @Summary		List bids for a gig
// @Tags		Bids
// @Security	BearerAuth
// @Param		gigId	path	string	true	"Gig ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}	"Not the gig owner"
// @Failure		404	{object}	map[string]interface{}	"Gig not found"
// @Router		/bids/{gigId} [GET]
func (h *Handler) ListForGig(c *gin.Context) {
	rows, err := h.svc.ListForGig(c.Request.Context(), c.GetString("user_id"), c.Param("gigId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

// @Summary		List gigs I have bid on
// @Tags		Gigs
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Router		/gigs/my-active-gigs [GET]
func (h *Handler) ListActiveGigs(c *gin.Context) {
	rows, err := h.svc.ListActiveGigs(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.HandleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}
