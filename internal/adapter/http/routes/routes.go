package routes

import (
	"log"
	"os"
	"strconv"

	_ "corretora_xpto/docs" // This will be auto-generated
	"corretora_xpto/internal/adapter/http/handlers"
	"corretora_xpto/internal/adapter/http/middleware"
	repository2 "corretora_xpto/internal/adapter/persistence/repository"
	"corretora_xpto/internal/infrastructure/database"
	"corretora_xpto/internal/infrastructure/notification"
	"corretora_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	proposalRepo := repository2.NewProposalDynamoRepository(ddb)
	auditRepo := repository2.NewAuditDynamoRepository(ddb)
	goalRepo := repository2.NewGoalDynamoRepository(ddb)

	dispatcher := notification.NewWebhookDispatcher(os.Getenv("NOTIFICATION_WEBHOOK_URL"))
	recorder := usecase.NewAuditRecorder(auditRepo)

	transitionUseCase := usecase.NewTransitionUseCase(proposalRepo, goalRepo, recorder, dispatcher)
	goalUseCase := usecase.NewGoalUseCase(goalRepo, proposalRepo)
	metricsUseCase := usecase.NewMetricsUseCase(proposalRepo, auditRepo, usecase.MetricsConfig{
		SLADays:        getenvInt("SLA_DAYS", usecase.DefaultSLADays),
		StagnationDays: getenvInt("STAGNATION_DAYS", usecase.DefaultStagnationDays),
	})

	proposalHandler := handlers.NewProposalHandler(transitionUseCase)
	goalHandler := handlers.NewGoalHandler(goalUseCase)
	metricsHandler := handlers.NewMetricsHandler(metricsUseCase)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)

	// Rotas autenticadas
	authed := v1.Group("")
	authed.Use(middleware.RequireIdentity())
	addProposalRoutes(authed, proposalHandler, metricsHandler)
	addGoalRoutes(authed, goalHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[routes] invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}
