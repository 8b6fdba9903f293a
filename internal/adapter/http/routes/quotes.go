package routes

import (
	"clearpoint_av/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuotes   = "/quotes"
	PathPayments = "/payments"
)

func addQuoteRoutes(rg *gin.RouterGroup, quoteHandler *handlers.QuoteHandler, paymentHandler *handlers.DepositPaymentHandler) {
	quotes := rg.Group(PathQuotes)
	{
		quotes.POST("", quoteHandler.CreateQuote)
		quotes.GET("", quoteHandler.ListQuotes)
		quotes.POST("/preview", quoteHandler.PreviewTotals)
		quotes.GET("/:quote_id", quoteHandler.GetQuote)
		quotes.PUT("/:quote_id/options", quoteHandler.UpdateOptions)
		quotes.POST("/:quote_id/send", quoteHandler.SendQuote)
		quotes.POST("/:quote_id/accept", quoteHandler.AcceptQuote)
		quotes.POST("/:quote_id/request-changes", quoteHandler.RequestChanges)
		quotes.POST("/:quote_id/views", quoteHandler.RecordView)
	}

	payments := rg.Group(PathPayments)
	{
		// Deposit collection for accepted quotes.
		payments.POST("/:quote_id", paymentHandler.CreateDepositByQuoteID)
		payments.GET("/:quote_id", paymentHandler.GetDepositByQuoteID)
	}
}
