package gig

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/gigs", h.List)
		public.GET("/gigs/:id", h.GetByID)
	}

	if protected != nil {
		protected.POST("/gigs", h.Create)
		protected.GET("/gigs/my-gigs", h.ListMine)
	}
}
