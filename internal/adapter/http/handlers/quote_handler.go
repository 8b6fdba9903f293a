package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	request "clearpoint_av/internal/adapter/http/dto/request"
	response "clearpoint_av/internal/adapter/http/dto/response"
	"clearpoint_av/internal/domain/entities"
	"clearpoint_av/internal/usecase"
	"clearpoint_av/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)
)

// QuoteHandler handles HTTP requests for the quote lifecycle: creation,
// option editing with live totals, sending, revisions and acceptance.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote creates a draft quote with one default option.
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.CreateQuote(c.Request.Context(), usecase.CreateQuoteInput{
		UserID:                     payload.UserID,
		QuoteName:                  payload.QuoteName,
		CustomerID:                 payload.CustomerID,
		CustomerTypeForPricing:     entities.CustomerType(payload.CustomerTypeForPricing),
		PricingModel:               entities.PricingModel(payload.PricingModel),
		ShippingCustomerPercentage: payload.ShippingCustomerPercentage,
		ShippingCompanyPercentage:  payload.ShippingCompanyPercentage,
		TaxRate:                    payload.TaxRate,
		DiscountType:               entities.DiscountType(payload.DiscountType),
		DiscountValue:              payload.DiscountValue,
		ExpirationTimeline:         entities.ExpirationTimeline(payload.ExpirationTimeline),
	})
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

// GetQuote returns one quote by id. Reading a sent quote past its expiry
// flips it to expired.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quoteID := c.Param("quote_id")

	quote, err := h.usecase.GetQuote(c.Request.Context(), quoteID)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// ListQuotes returns every quote belonging to the user_id query parameter.
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	userID := c.Query("user_id")

	quotes, err := h.usecase.ListQuotes(c.Request.Context(), userID)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuoteList(quotes))
}

// UpdateOptions replaces the option tree and returns the quote with totals
// recomputed.
func (h *QuoteHandler) UpdateOptions(c *gin.Context) {
	quoteID := c.Param("quote_id")

	var payload request.UpdateOptionsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.UpdateOptions(c.Request.Context(), quoteID, payload.ToEntities())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// PreviewTotals prices an in-progress quote without persisting anything.
func (h *QuoteHandler) PreviewTotals(c *gin.Context) {
	var payload request.PreviewTotalsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.PreviewTotals(c.Request.Context(), payload.ToQuote())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// SendQuote marks the quote as sent. A resend bumps the revision number and
// records a customer-facing change summary.
func (h *QuoteHandler) SendQuote(c *gin.Context) {
	quoteID := c.Param("quote_id")
	log.Printf("[quote][handler] send start quote_id=%s", quoteID)

	quote, err := h.usecase.SendQuote(c.Request.Context(), quoteID)
	if err != nil {
		log.Printf("[quote][handler] send failed quote_id=%s err=%v", quoteID, err)
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// AcceptQuote records the customer's acceptance of one option.
func (h *QuoteHandler) AcceptQuote(c *gin.Context) {
	quoteID := c.Param("quote_id")

	var payload request.AcceptQuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.AcceptQuote(c.Request.Context(), quoteID, payload.OptionID, payload.Signature)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// RequestChanges moves a sent quote to pending-changes with an optional note.
func (h *QuoteHandler) RequestChanges(c *gin.Context) {
	quoteID := c.Param("quote_id")

	// An empty body is fine: the note is optional.
	var payload request.RequestChangesRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.RequestChanges(c.Request.Context(), quoteID, payload.Note)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// RecordView appends a customer view event to the quote.
func (h *QuoteHandler) RecordView(c *gin.Context) {
	quoteID := c.Param("quote_id")

	quote, err := h.usecase.RecordView(c.Request.Context(), quoteID)
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidQuoteInput), errors.Is(err, usecase.ErrQuoteHasNoOptions):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrOptionNotFound):
		return pkg.NewDomainErrorSimple("OPTION_NOT_FOUND", "Quote option not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteNotEditable):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_EDITABLE", "Quote is no longer editable", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNotSendable):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_SENDABLE", "Quote cannot be sent in its current status", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNotAcceptable):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_ACCEPTABLE", "Quote cannot be accepted in its current status", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
