package request

import (
	"strings"

	"clearpoint_av/internal/domain/entities"

	"github.com/google/uuid"
)

// CreateQuoteRequest is the payload for creating a quote shell. Options start
// from defaults; equipment and labor are edited afterwards.
type CreateQuoteRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	QuoteName  string `json:"quote_name" binding:"required"`
	CustomerID string `json:"customer_id"`

	CustomerTypeForPricing string `json:"customer_type_for_pricing"`
	PricingModel           string `json:"pricing_model"`

	ShippingCustomerPercentage float64 `json:"shipping_customer_percentage"`
	ShippingCompanyPercentage  float64 `json:"shipping_company_percentage"`
	TaxRate                    float64 `json:"tax_rate"`
	DiscountType               string  `json:"discount_type"`
	DiscountValue              float64 `json:"discount_value"`
	ExpirationTimeline         string  `json:"expiration_timeline"`
}

type QuoteItemRequest struct {
	ID                string   `json:"id"`
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description"`
	ModelNumber       string   `json:"model_number"`
	Category          string   `json:"category"`
	Brand             string   `json:"brand"`
	DealerCost        float64  `json:"dealer_cost"`
	MSRP              float64  `json:"msrp"`
	Quantity          int      `json:"quantity" binding:"required"`
	SellPriceOverride *float64 `json:"sell_price_override"`
}

type QuoteAreaRequest struct {
	ID    string             `json:"id"`
	Name  string             `json:"name" binding:"required"`
	Items []QuoteItemRequest `json:"items"`
}

type AssignedResourceRequest struct {
	ResourceID string `json:"resource_id" binding:"required"`
}

type AssignedSubcontractorRequest struct {
	ResourceID      string  `json:"resource_id" binding:"required"`
	EstimatedDays   float64 `json:"estimated_days"`
	ClientDailyRate float64 `json:"client_daily_rate"`
}

type LaborCategoryRequest struct {
	ID                     string                         `json:"id" binding:"required"`
	Name                   string                         `json:"name"`
	ClientRate             float64                        `json:"client_rate"`
	EstimatedTechDays      float64                        `json:"estimated_tech_days"`
	AssignedTechnicians    []AssignedResourceRequest      `json:"assigned_technicians"`
	AssignedSubcontractors []AssignedSubcontractorRequest `json:"assigned_subcontractors"`
}

type SimpleLaborRequest struct {
	NumDays             float64                   `json:"num_days"`
	Rate                float64                   `json:"rate"`
	AssignedTechnicians []AssignedResourceRequest `json:"assigned_technicians"`
}

type QuoteOptionRequest struct {
	ID                     string                 `json:"id"`
	Name                   string                 `json:"name" binding:"required"`
	Areas                  []QuoteAreaRequest     `json:"areas"`
	LaborCategories        []LaborCategoryRequest `json:"labor_categories"`
	ScopeOfWork            string                 `json:"scope_of_work"`
	LaborSellPriceOverride *float64               `json:"labor_sell_price_override"`
	UseSimpleLabor         bool                   `json:"use_simple_labor"`
	SimpleLabor            *SimpleLaborRequest    `json:"simple_labor"`
}

// UpdateOptionsRequest replaces the whole option tree of a quote.
type UpdateOptionsRequest struct {
	Options []QuoteOptionRequest `json:"options" binding:"required"`
}

// SubcontractorRequest adds a quote-local subcontractor to the resource pool.
type SubcontractorRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name" binding:"required"`
	Role     string  `json:"role"`
	CostRate float64 `json:"cost_rate"`
}

// PreviewTotalsRequest carries an in-progress quote for live recalculation.
// Nothing from it is persisted.
type PreviewTotalsRequest struct {
	CustomerTypeForPricing string `json:"customer_type_for_pricing"`
	PricingModel           string `json:"pricing_model"`

	ShippingCustomerPercentage float64 `json:"shipping_customer_percentage"`
	ShippingCompanyPercentage  float64 `json:"shipping_company_percentage"`
	TaxRate                    float64 `json:"tax_rate"`
	DiscountType               string  `json:"discount_type"`
	DiscountValue              float64 `json:"discount_value"`

	Subcontractors []SubcontractorRequest `json:"subcontractors"`
	Options        []QuoteOptionRequest   `json:"options" binding:"required"`
}

type AcceptQuoteRequest struct {
	OptionID  string `json:"option_id" binding:"required"`
	Signature string `json:"signature"`
}

type RequestChangesRequest struct {
	Note string `json:"note"`
}

// ToEntities converts the option tree, minting ids for anything the client
// sent without one.
func (r UpdateOptionsRequest) ToEntities() []entities.QuoteOption {
	return optionsToEntities(r.Options)
}

// ToQuote assembles a transient quote for the pricing preview.
func (r PreviewTotalsRequest) ToQuote() entities.Quote {
	q := entities.Quote{
		CustomerTypeForPricing:     entities.CustomerType(strings.TrimSpace(r.CustomerTypeForPricing)),
		PricingModel:               entities.PricingModel(strings.TrimSpace(r.PricingModel)),
		ShippingCustomerPercentage: r.ShippingCustomerPercentage,
		ShippingCompanyPercentage:  r.ShippingCompanyPercentage,
		TaxRate:                    r.TaxRate,
		DiscountType:               entities.DiscountType(strings.TrimSpace(r.DiscountType)),
		DiscountValue:              r.DiscountValue,
		Options:                    optionsToEntities(r.Options),
	}
	if q.CustomerTypeForPricing == "" {
		q.CustomerTypeForPricing = entities.CustomerTypeResidential
	}
	if q.PricingModel == "" {
		q.PricingModel = entities.PricingModelCustom
	}
	for _, s := range r.Subcontractors {
		q.Subcontractors = append(q.Subcontractors, s.ToEntity())
	}
	return q
}

func (s SubcontractorRequest) ToEntity() entities.LaborResource {
	return entities.LaborResource{
		ID:       ensureID(s.ID),
		Name:     strings.TrimSpace(s.Name),
		Role:     strings.TrimSpace(s.Role),
		Kind:     entities.ResourceKindSubcontractor,
		CostRate: s.CostRate,
	}
}

func optionsToEntities(options []QuoteOptionRequest) []entities.QuoteOption {
	out := make([]entities.QuoteOption, 0, len(options))
	for _, o := range options {
		out = append(out, o.ToEntity())
	}
	return out
}

func (o QuoteOptionRequest) ToEntity() entities.QuoteOption {
	opt := entities.QuoteOption{
		ID:                     ensureID(o.ID),
		Name:                   strings.TrimSpace(o.Name),
		ScopeOfWork:            o.ScopeOfWork,
		LaborSellPriceOverride: o.LaborSellPriceOverride,
		UseSimpleLabor:         o.UseSimpleLabor,
		Areas:                  []entities.QuoteArea{},
	}
	for _, a := range o.Areas {
		opt.Areas = append(opt.Areas, a.ToEntity())
	}
	if len(o.LaborCategories) == 0 {
		opt.LaborCategories = entities.DefaultLaborCategories()
	} else {
		for _, c := range o.LaborCategories {
			opt.LaborCategories = append(opt.LaborCategories, c.ToEntity())
		}
	}
	if o.SimpleLabor != nil {
		opt.SimpleLabor = o.SimpleLabor.ToEntity()
	}
	return opt
}

func (a QuoteAreaRequest) ToEntity() entities.QuoteArea {
	area := entities.QuoteArea{
		ID:    ensureID(a.ID),
		Name:  strings.TrimSpace(a.Name),
		Items: []entities.QuoteItem{},
	}
	for _, i := range a.Items {
		area.Items = append(area.Items, i.ToEntity())
	}
	return area
}

func (i QuoteItemRequest) ToEntity() entities.QuoteItem {
	return entities.QuoteItem{
		ID:                ensureID(i.ID),
		Name:              strings.TrimSpace(i.Name),
		Description:       i.Description,
		ModelNumber:       i.ModelNumber,
		Category:          i.Category,
		Brand:             i.Brand,
		DealerCost:        i.DealerCost,
		MSRP:              i.MSRP,
		Quantity:          i.Quantity,
		SellPriceOverride: i.SellPriceOverride,
	}
}

func (c LaborCategoryRequest) ToEntity() entities.LaborCategory {
	cat := entities.LaborCategory{
		ID:                     entities.LaborCategoryID(strings.TrimSpace(c.ID)),
		Name:                   strings.TrimSpace(c.Name),
		ClientRate:             c.ClientRate,
		EstimatedTechDays:      c.EstimatedTechDays,
		AssignedTechnicians:    []entities.AssignedResource{},
		AssignedSubcontractors: []entities.AssignedSubcontractor{},
	}
	for _, t := range c.AssignedTechnicians {
		cat.AssignedTechnicians = append(cat.AssignedTechnicians, entities.AssignedResource{ResourceID: strings.TrimSpace(t.ResourceID)})
	}
	for _, s := range c.AssignedSubcontractors {
		cat.AssignedSubcontractors = append(cat.AssignedSubcontractors, entities.AssignedSubcontractor{
			ResourceID:      strings.TrimSpace(s.ResourceID),
			EstimatedDays:   s.EstimatedDays,
			ClientDailyRate: s.ClientDailyRate,
		})
	}
	return cat
}

func (s SimpleLaborRequest) ToEntity() *entities.SimpleLabor {
	out := &entities.SimpleLabor{
		NumDays:             s.NumDays,
		Rate:                s.Rate,
		AssignedTechnicians: []entities.AssignedResource{},
	}
	for _, t := range s.AssignedTechnicians {
		out.AssignedTechnicians = append(out.AssignedTechnicians, entities.AssignedResource{ResourceID: strings.TrimSpace(t.ResourceID)})
	}
	return out
}

func ensureID(id string) string {
	if v := strings.TrimSpace(id); v != "" {
		return v
	}
	return uuid.NewString()
}
