package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the deposit payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// DepositPayment is the first-invoice (deposit) payment collected when a
// customer accepts a quote.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (quote_id-index): quote_id
//
// Provider payload:
//   - ProviderPayloadRaw keeps the original body (JSON) for traceability.
//   - ProviderPayload is an optional parsed representation, useful for
//     querying/debugging. Both are persisted because provider schemas vary.
type DepositPayment struct {
	ID      string        `json:"id"`
	QuoteID string        `json:"quote_id"`
	Amount  float64       `json:"amount"`
	Date    time.Time     `json:"date"`
	Status  PaymentStatus `json:"status"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}
