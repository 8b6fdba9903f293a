package request

import "encoding/json"

// DepositPaymentCreateRequest is the payload for collecting the deposit
// invoice of an accepted quote.
//
// `provider_payload` is stored as-is (raw JSON) to support varying Mercado
// Pago schemas. The transaction amount inside it is ignored; the service
// always charges the deposit from the accepted option's totals.
type DepositPaymentCreateRequest struct {
	ProviderPayload json.RawMessage `json:"provider_payload"`
}
