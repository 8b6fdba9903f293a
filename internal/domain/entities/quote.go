package entities

import "time"

// QuoteStatus represents the lifecycle of a quote.
//
// Domain notes:
//   - draft quotes are editable by sales staff.
//   - sent quotes are visible to the customer and may expire.
//   - pending-changes means the customer asked for revisions.
//   - accepted quotes carry the chosen option and signature.
type QuoteStatus string

const (
	QuoteStatusDraft          QuoteStatus = "draft"
	QuoteStatusSent           QuoteStatus = "sent"
	QuoteStatusPendingChanges QuoteStatus = "pending-changes"
	QuoteStatusAccepted       QuoteStatus = "accepted"
	QuoteStatusExpired        QuoteStatus = "expired"
)

// CustomerType gates the tiered pricing margin brackets.
type CustomerType string

const (
	CustomerTypeResidential CustomerType = "Residential"
	CustomerTypeCommercial  CustomerType = "Commercial"
	CustomerTypeSchool      CustomerType = "School"
)

// PricingModel selects the totals calculation path.
type PricingModel string

const (
	PricingModelCustom PricingModel = "custom"
	PricingModelTiered PricingModel = "tiered"
)

// DiscountType selects how DiscountValue is applied under the custom model.
type DiscountType string

const (
	DiscountTypeFixed      DiscountType = "fixed"
	DiscountTypePercentage DiscountType = "percentage"
)

// ExpirationTimeline controls how long a sent quote stays open.
type ExpirationTimeline string

const (
	ExpirationNever  ExpirationTimeline = "Never"
	Expiration30Days ExpirationTimeline = "30 Days"
	Expiration60Days ExpirationTimeline = "60 Days"
	Expiration90Days ExpirationTimeline = "90 Days"
)

// Days returns the number of days until expiry, or 0 for ExpirationNever.
func (e ExpirationTimeline) Days() int {
	switch e {
	case Expiration30Days:
		return 30
	case Expiration60Days:
		return 60
	case Expiration90Days:
		return 90
	default:
		return 0
	}
}

// QuoteItem is a product placed in an area with a quantity. When
// SellPriceOverride is nil the MSRP is the sell price.
type QuoteItem struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	ModelNumber       string   `json:"model_number,omitempty"`
	Category          string   `json:"category,omitempty"`
	Brand             string   `json:"brand,omitempty"`
	DealerCost        float64  `json:"dealer_cost"`
	MSRP              float64  `json:"msrp"`
	Quantity          int      `json:"quantity"`
	SellPriceOverride *float64 `json:"sell_price_override,omitempty"`
}

// SellPrice returns the effective unit sell price (override wins over MSRP).
func (i QuoteItem) SellPrice() float64 {
	if i.SellPriceOverride != nil {
		return *i.SellPriceOverride
	}
	return i.MSRP
}

// QuoteArea is a named equipment grouping within an option (e.g. a room).
type QuoteArea struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Items []QuoteItem `json:"items"`
}

// QuoteOption is one proposal variant within a quote. Detailed labor
// categories and the simple-labor block are mutually exclusive via
// UseSimpleLabor.
type QuoteOption struct {
	ID                     string          `json:"id"`
	Name                   string          `json:"name"`
	Areas                  []QuoteArea     `json:"areas"`
	LaborCategories        []LaborCategory `json:"labor_categories"`
	ScopeOfWork            string          `json:"scope_of_work"`
	LaborSellPriceOverride *float64        `json:"labor_sell_price_override,omitempty"`
	UseSimpleLabor         bool            `json:"use_simple_labor"`
	SimpleLabor            *SimpleLabor    `json:"simple_labor,omitempty"`

	// Totals is a display cache of the last computed QuoteTotals. It is
	// derived state: recomputed on every option write, never authoritative.
	Totals QuoteTotals `json:"totals"`
}

// ChangeLogEntry records a customer-visible lifecycle event on a quote.
type ChangeLogEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Author      string    `json:"author,omitempty"`
}

// QuoteView records a customer opening a sent quote.
type QuoteView struct {
	Timestamp time.Time `json:"timestamp"`
}

// Quote is the top-level aggregate: an ordered set of options plus the global
// adjustments shared by every option's totals computation.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-index): user_id
type Quote struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	QuoteNumber string      `json:"quote_number"`
	QuoteName   string      `json:"quote_name"`
	Status      QuoteStatus `json:"status"`
	CustomerID  string      `json:"customer_id"`

	CustomerTypeForPricing CustomerType `json:"customer_type_for_pricing"`
	PricingModel           PricingModel `json:"pricing_model"`

	Options []QuoteOption `json:"options"`

	// OriginalOptionsForDiff is the snapshot taken at the last send, used to
	// build customer-facing revision summaries.
	OriginalOptionsForDiff []QuoteOption `json:"original_options_for_diff,omitempty"`

	ShippingCustomerPercentage float64      `json:"shipping_customer_percentage"`
	ShippingCompanyPercentage  float64      `json:"shipping_company_percentage"`
	TaxRate                    float64      `json:"tax_rate"`
	DiscountType               DiscountType `json:"discount_type"`
	DiscountValue              float64      `json:"discount_value"`

	ExpirationTimeline ExpirationTimeline `json:"expiration_timeline"`
	SentAt             *time.Time         `json:"sent_at,omitempty"`
	ExpiresAt          *time.Time         `json:"expires_at,omitempty"`
	AcceptedAt         *time.Time         `json:"accepted_at,omitempty"`
	AcceptedOptionID   string             `json:"accepted_option_id,omitempty"`
	Signature          string             `json:"signature,omitempty"`

	RevisionNumber int              `json:"revision_number"`
	ChangeLog      []ChangeLogEntry `json:"change_log,omitempty"`
	ViewHistory    []QuoteView      `json:"view_history,omitempty"`

	// Subcontractors is the quote-local registry of subcontractor resources
	// that labor categories may assign.
	Subcontractors []LaborResource `json:"subcontractors,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OptionByID returns the option with the given id, if present.
func (q Quote) OptionByID(id string) (QuoteOption, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return QuoteOption{}, false
}
