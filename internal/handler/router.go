package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"roadready/internal/domain/user"
	"roadready/internal/handler/api"
	"roadready/internal/handler/middleware"
	"roadready/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth        *api.AuthHandler
	User        *api.UserHandler
	Car         *api.CarHandler
	Reservation *api.ReservationHandler
	Payment     *api.PaymentHandler
	Review      *api.ReviewHandler
}

type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	Logger    *middleware.Logger
	RateLimit *middleware.RateLimiter
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, mw Middlewares) {
	setupMiddleware(engine, cfg, mw)
	setupRoutes(engine, h, mw)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, mw Middlewares) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(mw.Logger.LoggingMiddleware())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, mw Middlewares) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := mw.Auth.RequireAuth()
	adminOnly := mw.Auth.RequireRole(user.RoleAdmin)
	limit := mw.RateLimit.Limit()

	apiGroup := engine.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		addRoutes(authGroup, []route{
			{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register, Mw: []gin.HandlerFunc{limit}},
			{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login, Mw: []gin.HandlerFunc{limit}},
			{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout, Mw: []gin.HandlerFunc{requireAuth}},
			{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me, Mw: []gin.HandlerFunc{requireAuth}},
		})

		users := apiGroup.Group("/user")
		users.Use(requireAuth)
		addRoutes(users, []route{
			{Method: http.MethodGet, Path: "", Handler: h.User.List, Mw: []gin.HandlerFunc{adminOnly}},
			{Method: http.MethodGet, Path: "/:id", Handler: h.User.Get},
		})

		cars := apiGroup.Group("/car")
		addRoutes(cars, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Car.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Car.Get},
			{Method: http.MethodPost, Path: "", Handler: h.Car.Create, Mw: []gin.HandlerFunc{requireAuth, adminOnly, limit}},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Car.Update, Mw: []gin.HandlerFunc{requireAuth, adminOnly, limit}},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Car.Retire, Mw: []gin.HandlerFunc{requireAuth, adminOnly, limit}},
		})

		reservations := apiGroup.Group("/reservation")
		reservations.Use(requireAuth)
		addRoutes(reservations, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create, Mw: []gin.HandlerFunc{limit}},
			{Method: http.MethodGet, Path: "", Handler: h.Reservation.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservation.Cancel, Mw: []gin.HandlerFunc{limit}},
			{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Reservation.Complete, Mw: []gin.HandlerFunc{adminOnly, limit}},
		})

		payments := apiGroup.Group("/payment")
		payments.Use(requireAuth)
		addRoutes(payments, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Payment.Settle, Mw: []gin.HandlerFunc{limit}},
			{Method: http.MethodGet, Path: "", Handler: h.Payment.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Payment.Get},
			{Method: http.MethodPut, Path: "/:id", Handler: h.Payment.Amend},
		})

		reviews := apiGroup.Group("/review")
		addRoutes(reviews, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Review.GetAll},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Review.Get},
			{Method: http.MethodGet, Path: "/car/:carId", Handler: h.Review.GetByCar},
			{Method: http.MethodPost, Path: "", Handler: h.Review.Create, Mw: []gin.HandlerFunc{requireAuth, limit}},
			{Method: http.MethodPut, Path: "", Handler: h.Review.Update, Mw: []gin.HandlerFunc{requireAuth, limit}},
			{Method: http.MethodDelete, Path: "/:id", Handler: h.Review.Delete, Mw: []gin.HandlerFunc{requireAuth, limit}},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
