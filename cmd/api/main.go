package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/payrollhq/payroll-system/internal/api"
	"github.com/payrollhq/payroll-system/internal/core/service"
	"github.com/payrollhq/payroll-system/internal/infrastructure/config"
	mongodb "github.com/payrollhq/payroll-system/internal/infrastructure/db/mongo"
	redisdb "github.com/payrollhq/payroll-system/internal/infrastructure/db/redis"
	"github.com/payrollhq/payroll-system/internal/infrastructure/queue"
	"github.com/payrollhq/payroll-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Payroll System API
// @version      1.0
// @description  Employee, payroll and attendance management with token-based authentication.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// Repositories
	userRepo := mongodb.NewUserRepository(db)
	employeeRepo := mongodb.NewEmployeeRepository(db)
	departmentRepo := mongodb.NewDepartmentRepository(db)
	salaryRepo := mongodb.NewSalaryRepository(db)
	attendanceRepo := mongodb.NewAttendanceRepository(db)

	// Services
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, redisdb.NewResetStore(rdb), cfg.BcryptCost, log)
	employeeService := service.NewEmployeeService(employeeRepo, departmentRepo, log)
	departmentService := service.NewDepartmentService(departmentRepo, log)
	salaryService := service.NewSalaryService(salaryRepo, employeeRepo, log)
	attendanceService := service.NewAttendanceService(employeeRepo, attendanceRepo, redisdb.NewDedupChecker(rdb), log)

	// Punch pipeline
	dispatcher := queue.NewDispatcher(cfg.Workers, attendanceService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, api.Services{
		Tokens:      tokenService,
		Auth:        authService,
		Employees:   employeeService,
		Departments: departmentService,
		Salaries:    salaryService,
		Attendances: attendanceService,
		Punches:     dispatcher,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server exited")
}
