package main

import (
	"log"
	"os"

	"settlement-service/internal/database"
	"settlement-service/internal/handlers"
	"settlement-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Redis/Asynq Client
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	// Init Services
	uniqueCodeService := services.NewUniqueCodeService(db)
	requestService := services.NewRequestService(db, uniqueCodeService)
	claimService := services.NewClaimService(db, asynqClient)
	proofService := services.NewProofService(db)
	settlementService := services.NewSettlementService()
	decisionService := services.NewDecisionService(db, proofService, settlementService)
	notificationService := services.NewNotificationService(db)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	h := handlers.NewHandlers(
		requestService,
		claimService,
		proofService,
		decisionService,
		notificationService,
		uploadDir,
	)

	// Initialize Gin
	r := gin.Default()

	// Ping endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to the settlement service",
		})
	})

	// Request queue
	r.GET("/requests", h.ListRequests)
	r.GET("/requests/:id", h.GetRequest)
	r.POST("/requests/withdrawals", h.CreateWithdrawal)
	r.POST("/requests/topups", h.CreateTopup)

	// Claim protocol
	r.POST("/requests/:id/claim", h.ClaimRequest)
	r.POST("/requests/:id/release", h.ReleaseRequest)
	r.POST("/requests/:id/force-release", h.ForceReleaseRequest)

	// Proofs and decisions
	r.POST("/requests/:id/proofs/:role", h.UploadProof)
	r.PUT("/requests/:id/status", h.SubmitDecision)

	// Account deletion with balance transfer
	r.DELETE("/accounts/:id/with-balance-transfer", h.DeleteAccountWithTransfer)

	// Notices
	r.GET("/notifications", h.ListNotifications)
	r.POST("/notifications/:id/read", h.MarkNotificationRead)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start Cron Schedulers
	archiveService := services.NewRequestArchiveService(db)
	archiveService.StartScheduler()

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
