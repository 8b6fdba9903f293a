package routes

import (
	"log"
	"os"
	"strconv"

	_ "clearpoint_av/docs" // This will be auto-generated
	"clearpoint_av/internal/adapter/http/handlers"
	repository2 "clearpoint_av/internal/adapter/persistence/repository"
	"clearpoint_av/internal/infrastructure/database"
	"clearpoint_av/internal/infrastructure/payments"
	"clearpoint_av/internal/usecase"
	"clearpoint_av/internal/usecase/interfaces"

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

	quoteRepo := repository2.NewQuoteDynamoRepository(ddb)
	resourceRepo := repository2.NewResourceDynamoRepository(ddb)
	paymentRepo := repository2.NewDepositPaymentDynamoRepository(ddb)

	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, resourceRepo)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	paymentUseCase := usecase.NewDepositPaymentUseCase(paymentRepo, quoteRepo, paymentGateway)

	quoteHandler := handlers.NewQuoteHandler(quoteUseCase)
	depositPaymentHandler := handlers.NewDepositPaymentHandler(paymentUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addQuoteRoutes(v1, quoteHandler, depositPaymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
