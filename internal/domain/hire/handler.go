package hire

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

// Hire accepts a bid, assigns the gig and rejects every other pending bid.
// @Summary		Hire a freelancer
// @Description	Only the gig owner may hire. Concurrent hires on the same gig: exactly one succeeds, the rest answer 409.
// @Tags		Bids
// @Security	BearerAuth
// @Param		bidId	path	string	true	"Bid ID"
// @Success		200	{object}	map[string]interface{}	"message, bid, gig, rejectedBidsCount"
// @Failure		400	{object}	map[string]interface{}	"Freelancer at capacity"
// @Failure		403	{object}	map[string]interface{}	"Not the gig owner"
// @Failure		404	{object}	map[string]interface{}	"Bid or gig not found"
// @Failure		409	{object}	map[string]interface{}	"Gig already assigned or bid already processed"
// @Router		/bids/{bidId}/hire [PATCH]
func (h *Handler) Hire(c *gin.Context) {
	res, err := h.svc.Hire(c.Request.Context(), c.GetString("user_id"), c.Param("bidId"))
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":           "Freelancer hired successfully",
		"bid":               res.Bid,
		"gig":               res.Gig,
		"rejectedBidsCount": res.RejectedCount,
	})
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.PATCH("/bids/:bidId/hire", h.Hire)
}
