package app

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"salesdesk/internal/config"
	"salesdesk/internal/handlers"
	"salesdesk/internal/pdf"
	"salesdesk/internal/repositories"
	"salesdesk/internal/routes"
	"salesdesk/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "salesdesk/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	leadRepo := repositories.NewLeadRepository(db)
	teamRepo := repositories.NewTeamRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	permRepo := repositories.NewPermissionRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	leaveRepo := repositories.NewLeaveRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	// Telegram is optional: nil when unconfigured
	var notifier services.AssignmentNotifier
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		tg, err := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.OpsChatID)
		if err != nil {
			log.Printf("[app] telegram disabled: %v", err)
		} else {
			notifier = tg
		}
	}

	employeeService := services.NewEmployeeService(
		employeeRepo, permRepo,
		[]byte(cfg.Auth.JWTSecret),
		time.Duration(cfg.Auth.AccessTTLMins)*time.Minute,
	)
	leadService := services.NewLeadService(leadRepo)
	uploadService := services.NewUploadService(leadRepo, cfg.Upload.MaxRows, cfg.Upload.RequiredCols)
	assignmentService := services.NewAssignmentService(leadRepo, employeeRepo, teamRepo, notifier)
	analyticsService := services.NewAnalyticsService(leadRepo, teamRepo)
	teamService := services.NewTeamService(teamRepo, employeeRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo)
	leaveService := services.NewLeaveService(leaveRepo, employeeRepo, emailService, cfg.Email.HREmail)

	reportGen := pdf.NewReportGenerator(cfg.Reports.Dir)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(employeeService)
	leadHandler := handlers.NewLeadHandler(leadService, uploadService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, teamService, reportGen)
	teamHandler := handlers.NewTeamHandler(teamService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	leaveHandler := handlers.NewLeaveHandler(leaveService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		[]byte(cfg.Auth.JWTSecret),
		handlers.SessionMiddleware(employeeService),
		authHandler,
		leadHandler,
		assignmentHandler,
		analyticsHandler,
		teamHandler,
		attendanceHandler,
		leaveHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
