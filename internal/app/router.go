package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gigflow/internal/config"
	"gigflow/internal/domain/bid"
	"gigflow/internal/domain/gig"
	"gigflow/internal/domain/hire"
	"gigflow/internal/domain/notification"
	"gigflow/internal/middleware"
	"gigflow/internal/pkg/jwt"
	"gigflow/internal/realtime"
)

// Services holds the domain services built over one backend.
type Services struct {
	Gigs          *gig.Service
	Bids          *bid.Service
	Hire          *hire.Service
	Notifications *notification.Service
}

func NewServices(cfg *config.Config, b *Backend, notifier notification.Notifier) *Services {
	notifs := notification.NewService(b.Notifications, notifier)
	return &Services{
		Gigs: gig.NewService(b.Gigs, b.Users, cfg.Limits.MaxGigsPerOwner),
		Bids: bid.NewService(b.Bids, b.Gigs, b.Users, notifs, cfg.Limits.MaxBidsPerFreelancer),
		Hire: hire.NewService(b.Transactor, b.Users, notifs, hire.Config{
			MaxActiveHires:  cfg.Limits.MaxActiveHires,
			FinalizeTimeout: cfg.HireFinalizeTimeout,
		}),
		Notifications: notifs,
	}
}

// NewRouter builds the HTTP surface: /health, /ws and the /api/v1 routes.
func NewRouter(cfg *config.Config, b *Backend, hub *realtime.Hub, jwtService *jwt.Service) *gin.Engine {
	svc := NewServices(cfg, b, hub)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"backend":      b.Name,
			"transactions": b.Transactor.SupportsTransactions(),
		})
	})
	realtime.NewHandler(hub, jwtService, cfg.CORSAllowedOrigins).RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(jwtService))

	gig.NewHandler(svc.Gigs).RegisterRoutes(v1, protected)
	bid.NewHandler(svc.Bids).RegisterRoutes(protected)
	hire.NewHandler(svc.Hire).RegisterRoutes(protected)

	return r
}
