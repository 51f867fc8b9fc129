package bid

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/bids", h.Create)
	protected.GET("/bids/:gigId", h.ListForGig)
	protected.GET("/gigs/my-active-gigs", h.ListActiveGigs)
}
