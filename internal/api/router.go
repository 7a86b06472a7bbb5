package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/payrollhq/payroll-system/docs"
	"github.com/payrollhq/payroll-system/internal/api/handler"
	"github.com/payrollhq/payroll-system/internal/api/middleware"
	"github.com/payrollhq/payroll-system/internal/core/domain"
	"github.com/payrollhq/payroll-system/internal/core/ports"
)

// Services bundles the wired service layer handed to the router. The
// dispatcher is separate from AttendanceService because punch writes go
// through the queue while reads hit the service directly.
type Services struct {
	Tokens      ports.TokenService
	Auth        ports.AuthService
	Employees   ports.EmployeeService
	Departments ports.DepartmentService
	Salaries    ports.SalaryService
	Attendances ports.AttendanceService
	Punches     handler.PunchDispatcher
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, svcs Services, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("payroll"))

	authMW := middleware.Auth(svcs.Tokens, log)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(svcs.Auth)
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	// verify accepts GET and POST to be robust to client method mismatches
	auth.GET("/verify", authHandler.Verify, authMW)
	auth.POST("/verify", authHandler.Verify, authMW)
	auth.POST("/change-password", authHandler.ChangePassword, authMW)

	// --- Protected resource routes ---
	apiGroup := e.Group("/api", authMW)

	employeeHandler := handler.NewEmployeeHandler(svcs.Employees)
	employees := apiGroup.Group("/employees", adminOnly)
	employees.POST("", employeeHandler.Create)
	employees.GET("", employeeHandler.List)
	employees.GET("/:id", employeeHandler.Get)
	employees.PUT("/:id", employeeHandler.Update)
	employees.DELETE("/:id", employeeHandler.Delete)

	departmentHandler := handler.NewDepartmentHandler(svcs.Departments)
	departments := apiGroup.Group("/departments", adminOnly)
	departments.POST("", departmentHandler.Create)
	departments.GET("", departmentHandler.List)
	departments.GET("/:id", departmentHandler.Get)
	departments.PUT("/:id", departmentHandler.Update)
	departments.DELETE("/:id", departmentHandler.Delete)

	salaryHandler := handler.NewSalaryHandler(svcs.Salaries)
	salaries := apiGroup.Group("/salaries", adminOnly)
	salaries.POST("", salaryHandler.Create)
	salaries.GET("/employee/:id", salaryHandler.ListByEmployee)

	attendanceHandler := handler.NewAttendanceHandler(svcs.Punches, svcs.Attendances)
	attendances := apiGroup.Group("/attendances")
	attendances.POST("/punch", attendanceHandler.Punch, middleware.RBAC(domain.RoleAdmin, domain.RoleEmployee))
	attendances.POST("/punch/batch", attendanceHandler.PunchBatch, adminOnly)
	attendances.GET("", attendanceHandler.List, adminOnly)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
