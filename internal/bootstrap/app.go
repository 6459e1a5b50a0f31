package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/fleetstack/fleetpoint/internal/auth"
	"github.com/fleetstack/fleetpoint/internal/config"
	"github.com/fleetstack/fleetpoint/internal/database"
	"github.com/fleetstack/fleetpoint/internal/export"
	"github.com/fleetstack/fleetpoint/internal/handler"
	"github.com/fleetstack/fleetpoint/internal/logger"
	"github.com/fleetstack/fleetpoint/internal/repository"
	"github.com/fleetstack/fleetpoint/internal/service"
)

// App wires configuration, database, services and routes together.
type App struct {
	Echo *echo.Echo
	DB   *sql.DB
}

// NewApp creates an App with a fresh echo instance.
func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

// handlers groups everything RegisterRoutes needs.
type handlers struct {
	auth       *handler.AuthHandler
	employees  *handler.EmployeeHandler
	attendance *handler.AttendanceHandler
	trips      *handler.TripHandler
	deductions *handler.DeductionHandler
	users      *handler.UserHandler
	dashboard  *handler.DashboardHandler
	exports    *handler.ExportHandler
}

// Initialize loads config, connects to the database, runs migrations
// and builds the full dependency graph.
func (a *App) Initialize(ctx context.Context) error {
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	dbConfig := database.Config{
		Host:            config.DefaultEnvConfig.DB_HOST,
		Port:            config.DefaultEnvConfig.DB_PORT,
		User:            config.DefaultEnvConfig.DB_USER,
		Password:        config.DefaultEnvConfig.DB_PASSWORD,
		DBName:          config.DefaultEnvConfig.DB_NAME,
		SSLMode:         config.DefaultEnvConfig.DB_SSL_MODE,
		MaxOpenConns:    config.DefaultEnvConfig.DB_MAX_OPEN_CONNS,
		MaxIdleConns:    config.DefaultEnvConfig.DB_MAX_IDLE_CONNS,
		ConnMaxLifetime: config.DefaultEnvConfig.DB_CONN_MAX_LIFETIME,
	}

	db, err := database.NewPostgresDB(ctx, dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.DB = db

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.InfoLog(ctx, "Database ready")

	layout, err := export.LoadLayout(config.DefaultEnvConfig.EXPORT_LAYOUT_PATH)
	if err != nil {
		return fmt.Errorf("failed to load export layout: %w", err)
	}

	// Repositories
	txm := database.NewTxRunner(db)
	userRepo := repository.NewUserRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	attRepo := repository.NewAttendanceRepository(db)
	tripRepo := repository.NewTripRepository(db)
	dedRepo := repository.NewDeductionRepository(db)

	// Services
	tokens := auth.NewTokenManager(
		config.DefaultEnvConfig.JWT_SECRET,
		config.DefaultEnvConfig.TOKEN_TTL,
	)
	policy := service.NewDeductionPolicy(
		config.DefaultEnvConfig.DEDUCTION_BASE_FEE,
		config.DefaultEnvConfig.DEDUCTION_KM_RATE,
	)
	authSvc := service.NewAuthService(userRepo, tokens)
	userSvc := service.NewUserService(userRepo)
	empSvc := service.NewEmployeeService(empRepo)
	attSvc := service.NewAttendanceService(attRepo, empRepo)
	tripSvc := service.NewTripService(txm, tripRepo, attRepo, dedRepo, empRepo, policy)
	dedSvc := service.NewDeductionService(dedRepo, empRepo)
	dashSvc := service.NewDashboardService(empRepo, attRepo, tripRepo, dedRepo)
	exportSvc := service.NewExportService(empRepo, attRepo, tripRepo, dedRepo, layout)

	h := handlers{
		auth:       handler.NewAuthHandler(authSvc),
		employees:  handler.NewEmployeeHandler(empSvc),
		attendance: handler.NewAttendanceHandler(attSvc),
		trips:      handler.NewTripHandler(tripSvc),
		deductions: handler.NewDeductionHandler(dedSvc),
		users:      handler.NewUserHandler(userSvc),
		dashboard:  handler.NewDashboardHandler(dashSvc),
		exports:    handler.NewExportHandler(exportSvc),
	}

	a.RegisterMiddlewares()
	a.RegisterRoutes(tokens, h)

	return nil
}

// RegisterMiddlewares installs the global middleware chain.
func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

// RegisterRoutes mounts the public, authenticated and admin route
// groups.
func (a *App) RegisterRoutes(tokens *auth.TokenManager, h handlers) {
	a.Echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	a.Echo.POST("/auth/login", h.auth.Login)

	api := a.Echo.Group("", auth.Middleware(tokens))

	api.GET("/dashboard", h.dashboard.Summary)

	api.POST("/employees", h.employees.Create)
	api.GET("/employees", h.employees.List)
	api.GET("/employees/:id", h.employees.Get)
	api.PUT("/employees/:id", h.employees.Update)
	api.DELETE("/employees/:id", h.employees.Delete)

	api.POST("/attendance", h.attendance.Create)
	api.GET("/attendance", h.attendance.List)
	api.GET("/attendance/:id", h.attendance.Get)
	api.PUT("/attendance/:id", h.attendance.Update)
	api.DELETE("/attendance/:id", h.attendance.Delete)

	api.POST("/trips", h.trips.Create)
	api.GET("/trips", h.trips.List)
	api.GET("/trips/:id", h.trips.Get)
	api.PUT("/trips/:id", h.trips.Update)
	api.DELETE("/trips/:id", h.trips.Delete)

	api.POST("/deductions", h.deductions.Create)
	api.GET("/deductions", h.deductions.List)
	api.GET("/deductions/:id", h.deductions.Get)
	api.PUT("/deductions/:id", h.deductions.Update)
	api.POST("/deductions/:id/approve", h.deductions.Approve)
	api.POST("/deductions/:id/cancel", h.deductions.Cancel)
	api.DELETE("/deductions/:id", h.deductions.Delete)

	api.GET("/export/:kind", h.exports.Download)

	admin := api.Group("/users", auth.RequireAdmin())
	admin.POST("", h.users.Create)
	admin.GET("", h.users.List)
	admin.GET("/:id", h.users.Get)
	admin.PUT("/:id", h.users.Update)
	admin.DELETE("/:id", h.users.Delete)
}

// Run starts the HTTP server and blocks until it stops.
func (a *App) Run() error {
	defer a.DB.Close()
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
