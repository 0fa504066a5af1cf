package routes

import (
	"time"

	"classmanager/api/handler"
	"classmanager/api/middleware"
	"classmanager/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Users          *handler.UserHandler
	Students       *handler.StudentHandler
	Instructors    *handler.InstructorHandler
	Classes        *handler.ClassHandler
	Health         *handler.HealthHandler
	AuthMiddleware middleware.AuthMiddleware
	LoginRate      *middleware.RateLimiter
	CodeRate       *middleware.RateLimiter
	Gatherer       prometheus.Gatherer
}

type Handlers struct {
	Users       *handler.UserHandler
	Students    *handler.StudentHandler
	Instructors *handler.InstructorHandler
	Classes     *handler.ClassHandler
	Health      *handler.HealthHandler
}

func NewRouter(
	e *echo.Echo,
	handlers Handlers,
	authMiddleware middleware.AuthMiddleware,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
) *Router {
	return &Router{
		Echo:           e,
		Users:          handlers.Users,
		Students:       handlers.Students,
		Instructors:    handlers.Instructors,
		Classes:        handlers.Classes,
		Health:         handlers.Health,
		AuthMiddleware: authMiddleware,
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute, m),
		CodeRate:       middleware.NewRateLimiter(rate.Every(20*time.Second), 3, 10*time.Minute, m),
		Gatherer:       gatherer,
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	if r.Health != nil {
		e.GET("/", r.Health.Banner)
		e.GET("/health", r.Health.Health)
	}
	if r.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(r.Gatherer, promhttp.HandlerOpts{})))
	}

	api := e.Group("/api")

	users := api.Group("/users")
	users.POST("/login", r.Users.Login, r.LoginRate.Middleware())
	users.POST("/request-email-verification", r.Users.RequestEmailVerification, r.CodeRate.Middleware())
	users.POST("/verify-email-code", r.Users.VerifyEmailCode, r.LoginRate.Middleware())
	users.GET("/me", r.Users.Me, r.AuthMiddleware.RequireAuth)
	users.GET("/me/activity", r.Users.Activity, r.AuthMiddleware.RequireAuth)
	users.POST("", r.Users.Create)
	users.GET("", r.Users.List)
	users.GET("/:id", r.Users.Get)
	users.PUT("/:id", r.Users.Update)
	users.DELETE("/:id", r.Users.Delete)

	crud(api.Group("/students"), r.Students.Create, r.Students.List, r.Students.Get, r.Students.Update, r.Students.Delete)
	crud(api.Group("/instructors"), r.Instructors.Create, r.Instructors.List, r.Instructors.Get, r.Instructors.Update, r.Instructors.Delete)
	crud(api.Group("/classes"), r.Classes.Create, r.Classes.List, r.Classes.Get, r.Classes.Update, r.Classes.Delete)
}

func crud(g *echo.Group, create, list, get, update, remove echo.HandlerFunc) {
	g.POST("", create)
	g.GET("", list)
	g.GET("/:id", get)
	g.PUT("/:id", update)
	g.DELETE("/:id", remove)
}
