package server

import (
	"github.com/gin-contrib/cors"
	"go.uber.org/fx"

	"github.com/campushq/campushub/internal/server/api"
	"github.com/campushq/campushub/internal/server/biz"
	"github.com/campushq/campushub/internal/server/middleware"
)

type Handlers struct {
	fx.In

	System      *api.SystemHandlers
	Auth        *api.AuthHandlers
	Users       *api.UserHandlers
	Students    *api.StudentHandlers
	Grades      *api.GradeHandlers
	Enrollments *api.EnrollmentHandlers
}

type Services struct {
	fx.In

	AuthService *biz.AuthService
}

func SetupRoutes(server *Server, handlers Handlers, services Services) {
	server.Use(middleware.AccessLog())
	server.Use(middleware.WithLoggingTracing(server.Config.Trace))

	// Setup CORS middleware at server level if enabled
	if server.Config.CORS.Enabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = server.Config.CORS.AllowedOrigins
		corsConfig.AllowMethods = server.Config.CORS.AllowedMethods
		corsConfig.AllowHeaders = server.Config.CORS.AllowedHeaders
		corsConfig.ExposeHeaders = server.Config.CORS.ExposedHeaders
		corsConfig.AllowCredentials = server.Config.CORS.AllowCredentials
		corsConfig.MaxAge = server.Config.CORS.MaxAge

		corsHandler := cors.New(corsConfig)
		server.Use(corsHandler)
		server.OPTIONS("*any", corsHandler)
	}

	base := server.Group(server.Config.BasePath)

	publicGroup := base.Group("", middleware.WithTimeout(server.Config.RequestTimeout))
	{
		// Health check endpoint - no authentication required
		publicGroup.GET("/health", handlers.System.Health)
		// User Login - DO NOT AUTH
		publicGroup.POST("/v1/auth/signin", handlers.Auth.SignIn)
	}

	// Authenticated routes: every request past WithJWTAuth carries exactly one
	// identity, and every handler goes through the authorization engine.
	v1 := base.Group("/v1",
		middleware.WithTimeout(server.Config.RequestTimeout),
		middleware.WithJWTAuth(services.AuthService),
	)

	{
		v1.POST("/auth/signout", handlers.Auth.SignOut)

		v1.GET("/users/:id", handlers.Users.Get)

		v1.GET("/students/:id", handlers.Students.Get)
		v1.GET("/students/:id/payments/:payment", handlers.Students.GetPayment)

		v1.POST("/grades", handlers.Grades.Create)
		v1.GET("/grades", handlers.Grades.List)

		v1.POST("/enrollments/assignments", handlers.Enrollments.Assign)
		v1.DELETE("/enrollments/assignments", handlers.Enrollments.Unassign)
		v1.POST("/enrollments/guardians", handlers.Enrollments.LinkGuardian)
	}
}
