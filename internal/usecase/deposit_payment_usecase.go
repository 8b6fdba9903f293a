package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"clearpoint_av/internal/domain/entities"
	"clearpoint_av/internal/usecase/interfaces"
)

var (
	ErrDepositPaymentNotFound         = errors.New("deposit payment not found")
	ErrInvalidPaymentQuoteID          = errors.New("invalid quote_id")
	ErrInvalidProviderPayload         = errors.New("invalid payment provider payload")
	ErrQuoteNotAccepted               = errors.New("quote not accepted")
	ErrNoDepositDue                   = errors.New("accepted option has no deposit due")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// IDepositPaymentUseCase encapsulates collecting the deposit (first) invoice
// of an accepted quote through the payment gateway.
type IDepositPaymentUseCase interface {
	CreateAndApprove(ctx context.Context, quoteID string, providerPayload json.RawMessage) (entities.DepositPayment, error)
	GetByID(ctx context.Context, id string) (entities.DepositPayment, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.DepositPayment, error)
}

type DepositPaymentUseCase struct {
	repo      interfaces.IDepositPaymentRepository
	quoteRepo interfaces.IQuoteRepository
	gateway   interfaces.IPaymentGateway
}

var _ IDepositPaymentUseCase = (*DepositPaymentUseCase)(nil)

func NewDepositPaymentUseCase(repo interfaces.IDepositPaymentRepository, quoteRepo interfaces.IQuoteRepository, gateway interfaces.IPaymentGateway) *DepositPaymentUseCase {
	return &DepositPaymentUseCase{repo: repo, quoteRepo: quoteRepo, gateway: gateway}
}

// CreateAndApprove charges the deposit invoice of the accepted option. The
// amount always comes from the totals stored on the accepted option, never
// from the caller's payload.
func (u *DepositPaymentUseCase) CreateAndApprove(ctx context.Context, quoteID string, providerPayload json.RawMessage) (entities.DepositPayment, error) {
	log.Printf("[payment][usecase] create-and-approve start raw_quote_id=%q payload_len=%d", quoteID, len(providerPayload))
	mockMode := isPaymentGatewayMockEnabled()
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.DepositPayment{}, ErrInvalidPaymentQuoteID
	}
	if len(providerPayload) == 0 || !json.Valid(providerPayload) {
		if !mockMode {
			log.Printf("[payment][usecase] invalid payload quote_id=%s", quoteID)
			return entities.DepositPayment{}, ErrInvalidProviderPayload
		}
		providerPayload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured quote_id=%s", quoteID)
		return entities.DepositPayment{}, errors.New("payment gateway not configured")
	}

	q, err := u.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		log.Printf("[payment][usecase] failed loading quote quote_id=%s err=%v", quoteID, err)
		return entities.DepositPayment{}, err
	}
	if q.ID == "" {
		return entities.DepositPayment{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusAccepted {
		log.Printf("[payment][usecase] quote not accepted quote_id=%s status=%s", quoteID, q.Status)
		return entities.DepositPayment{}, ErrQuoteNotAccepted
	}

	option, ok := q.OptionByID(q.AcceptedOptionID)
	if !ok {
		return entities.DepositPayment{}, ErrOptionNotFound
	}
	depositAmount := option.Totals.FirstInvoice
	if depositAmount <= 0 {
		return entities.DepositPayment{}, ErrNoDepositDue
	}
	log.Printf("[payment][usecase] quote loaded quote_id=%s option_id=%s deposit=%.2f", q.ID, option.ID, depositAmount)

	// Mercado Pago uses external_reference to reconcile events; the amount is
	// always the deposit invoice from the accepted option's totals.
	var reqMap map[string]any
	if err := json.Unmarshal(providerPayload, &reqMap); err == nil {
		if !mockMode && !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Printf("[payment][usecase] missing payment_method_id quote_id=%s", quoteID)
			return entities.DepositPayment{}, ErrInvalidProviderPayload
		}
		if !mockMode {
			ensurePayerDefaults(reqMap)
			if !hasPayer(reqMap) {
				log.Printf("[payment][usecase] missing/invalid payer quote_id=%s", quoteID)
				return entities.DepositPayment{}, ErrInvalidProviderPayload
			}
		}

		if _, ok := reqMap["external_reference"]; !ok {
			reqMap["external_reference"] = q.ID
		}
		if _, ok := reqMap["description"]; !ok {
			reqMap["description"] = fmt.Sprintf("Deposit for quote %s", q.QuoteNumber)
		}
		reqMap["transaction_amount"] = depositAmount

		if b, err := json.Marshal(reqMap); err == nil {
			providerPayload = b
		}
	} else {
		log.Printf("[payment][usecase] payload unmarshal failed quote_id=%s err=%v", quoteID, err)
	}

	var providerPaymentID, providerStatus string
	var providerResp json.RawMessage

	if mockMode {
		log.Printf("[payment][usecase] mock mode enabled; skipping external payment gateway quote_id=%s", quoteID)
		providerPaymentID = strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		providerStatus = "approved"
		now := time.Now().UTC().Format(time.RFC3339Nano)
		mockResp := map[string]any{}
		if len(providerPayload) > 0 && json.Valid(providerPayload) {
			_ = json.Unmarshal(providerPayload, &mockResp)
		}
		mockResp["id"] = providerPaymentID
		mockResp["status"] = "approved"
		mockResp["status_detail"] = "accredited"
		mockResp["date_created"] = now
		mockResp["date_approved"] = now
		if _, ok := mockResp["external_reference"]; !ok {
			mockResp["external_reference"] = q.ID
		}
		if _, ok := mockResp["transaction_amount"]; !ok {
			mockResp["transaction_amount"] = depositAmount
		}
		b, mErr := json.Marshal(mockResp)
		if mErr != nil {
			return entities.DepositPayment{}, mErr
		}
		providerResp = b
	} else {
		log.Printf("[payment][usecase] calling payment gateway quote_id=%s", quoteID)
		providerPaymentID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, providerPayload)
		if err != nil {
			log.Printf("[payment][usecase] payment gateway failed quote_id=%s err=%v", quoteID, err)
			switch {
			case isGatewayCustomerNotFound(err):
				return entities.DepositPayment{}, ErrPaymentGatewayCustomerNotFound
			case isGatewayInvalidUsers(err):
				return entities.DepositPayment{}, ErrPaymentGatewayInvalidUsers
			case isGatewayUnauthorized(err):
				return entities.DepositPayment{}, ErrPaymentGatewayUnauthorized
			case isGatewayBadRequest(err):
				return entities.DepositPayment{}, ErrPaymentGatewayBadRequest
			}
			return entities.DepositPayment{}, err
		}
	}
	log.Printf("[payment][usecase] payment gateway success quote_id=%s provider_payment_id=%s provider_status=%s", quoteID, providerPaymentID, providerStatus)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed quote_id=%s err=%v", quoteID, err)
	}

	p := entities.DepositPayment{
		ID:                 providerPaymentID,
		QuoteID:            q.ID,
		Amount:             depositAmount,
		Date:               time.Now().UTC(),
		Status:             entities.PaymentStatusApproved,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed quote_id=%s payment_id=%s err=%v", quoteID, p.ID, err)
		return entities.DepositPayment{}, err
	}
	log.Printf("[payment][usecase] create-and-approve success quote_id=%s payment_id=%s status=%s", quoteID, created.ID, created.Status)
	return created, nil
}

func (u *DepositPaymentUseCase) GetByID(ctx context.Context, id string) (entities.DepositPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.DepositPayment{}, errors.New("invalid payment id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.DepositPayment{}, err
	}
	if p.ID == "" {
		return entities.DepositPayment{}, ErrDepositPaymentNotFound
	}
	return p, nil
}

func (u *DepositPaymentUseCase) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.DepositPayment, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, ErrInvalidPaymentQuoteID
	}
	return u.repo.ListByQuoteID(ctx, quoteID)
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	v, ok := m["payer"]
	if !ok {
		return false
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}

	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	// In sandbox, either payer.id or payer.email may be used. Fill email only
	// when both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_TEST_PAYER_EMAIL")); email != "" {
			payer["email"] = email
		} else if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

func isPaymentGatewayMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("PAYMENT_GATEWAY_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}
