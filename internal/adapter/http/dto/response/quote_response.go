package response

import (
	"time"

	"clearpoint_av/internal/domain/entities"
)

type QuoteTotalsResponse struct {
	MaterialCost     float64 `json:"material_cost"`
	LaborCost        float64 `json:"labor_cost"`
	TotalCompanyCost float64 `json:"total_company_cost"`

	CustomerPrice    float64 `json:"customer_price"`
	Discount         float64 `json:"discount"`
	Tax              float64 `json:"tax"`
	FinalPrice       float64 `json:"final_price"`
	MarginPercentage float64 `json:"margin_percentage"`

	MaterialSellPrice float64 `json:"material_sell_price"`
	LaborSellPrice    float64 `json:"labor_sell_price"`
	ShippingCharge    float64 `json:"shipping_charge"`

	FirstInvoice  float64 `json:"first_invoice"`
	SecondInvoice float64 `json:"second_invoice"`
}

type LaborCategoryTotalsResponse struct {
	CustomerCost float64 `json:"customer_cost"`
	CompanyCost  float64 `json:"company_cost"`
	Profit       float64 `json:"profit"`
	GPM          float64 `json:"gpm"`
}

type QuoteItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	ModelNumber string  `json:"model_number,omitempty"`
	Category    string  `json:"category,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	DealerCost  float64 `json:"dealer_cost"`
	MSRP        float64 `json:"msrp"`
	Quantity    int     `json:"quantity"`

	// SellPrice is the effective unit price after any override.
	SellPrice         float64  `json:"sell_price"`
	SellPriceOverride *float64 `json:"sell_price_override,omitempty"`
}

type QuoteAreaResponse struct {
	ID    string              `json:"id"`
	Name  string              `json:"name"`
	Items []QuoteItemResponse `json:"items"`
}

type AssignedResourceResponse struct {
	ResourceID string `json:"resource_id"`
}

type AssignedSubcontractorResponse struct {
	ResourceID      string  `json:"resource_id"`
	EstimatedDays   float64 `json:"estimated_days"`
	ClientDailyRate float64 `json:"client_daily_rate"`
}

type LaborCategoryResponse struct {
	ID                     string                          `json:"id"`
	Name                   string                          `json:"name"`
	ClientRate             float64                         `json:"client_rate"`
	EstimatedTechDays      float64                         `json:"estimated_tech_days"`
	AssignedTechnicians    []AssignedResourceResponse      `json:"assigned_technicians"`
	AssignedSubcontractors []AssignedSubcontractorResponse `json:"assigned_subcontractors"`
	Totals                 LaborCategoryTotalsResponse     `json:"totals"`
}

type SimpleLaborResponse struct {
	NumDays             float64                    `json:"num_days"`
	Rate                float64                    `json:"rate"`
	AssignedTechnicians []AssignedResourceResponse `json:"assigned_technicians"`
}

type QuoteOptionResponse struct {
	ID                     string                  `json:"id"`
	Name                   string                  `json:"name"`
	Areas                  []QuoteAreaResponse     `json:"areas"`
	LaborCategories        []LaborCategoryResponse `json:"labor_categories"`
	ScopeOfWork            string                  `json:"scope_of_work"`
	LaborSellPriceOverride *float64                `json:"labor_sell_price_override,omitempty"`
	UseSimpleLabor         bool                    `json:"use_simple_labor"`
	SimpleLabor            *SimpleLaborResponse    `json:"simple_labor,omitempty"`
	Totals                 QuoteTotalsResponse     `json:"totals"`
}

type ChangeLogEntryResponse struct {
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Author      string    `json:"author,omitempty"`
}

type QuoteViewResponse struct {
	Timestamp time.Time `json:"timestamp"`
}

type SubcontractorResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Role     string  `json:"role,omitempty"`
	CostRate float64 `json:"cost_rate"`
}

type QuoteResponse struct {
	QuoteID     string `json:"quote_id"`
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	QuoteNumber string `json:"quote_number"`
	QuoteName   string `json:"quote_name"`
	Status      string `json:"status"`
	CustomerID  string `json:"customer_id,omitempty"`

	CustomerTypeForPricing string `json:"customer_type_for_pricing"`
	PricingModel           string `json:"pricing_model"`

	Options []QuoteOptionResponse `json:"options"`

	ShippingCustomerPercentage float64 `json:"shipping_customer_percentage"`
	ShippingCompanyPercentage  float64 `json:"shipping_company_percentage"`
	TaxRate                    float64 `json:"tax_rate"`
	DiscountType               string  `json:"discount_type"`
	DiscountValue              float64 `json:"discount_value"`

	ExpirationTimeline string     `json:"expiration_timeline"`
	SentAt             *time.Time `json:"sent_at,omitempty"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	AcceptedAt         *time.Time `json:"accepted_at,omitempty"`
	AcceptedOptionID   string     `json:"accepted_option_id,omitempty"`
	Signature          string     `json:"signature,omitempty"`

	RevisionNumber int                      `json:"revision_number"`
	ChangeLog      []ChangeLogEntryResponse `json:"change_log,omitempty"`
	ViewHistory    []QuoteViewResponse      `json:"view_history,omitempty"`

	Subcontractors []SubcontractorResponse `json:"subcontractors,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	res := QuoteResponse{
		QuoteID:     q.ID,
		ID:          q.ID,
		UserID:      q.UserID,
		QuoteNumber: q.QuoteNumber,
		QuoteName:   q.QuoteName,
		Status:      string(q.Status),
		CustomerID:  q.CustomerID,

		CustomerTypeForPricing: string(q.CustomerTypeForPricing),
		PricingModel:           string(q.PricingModel),

		Options: make([]QuoteOptionResponse, 0, len(q.Options)),

		ShippingCustomerPercentage: q.ShippingCustomerPercentage,
		ShippingCompanyPercentage:  q.ShippingCompanyPercentage,
		TaxRate:                    q.TaxRate,
		DiscountType:               string(q.DiscountType),
		DiscountValue:              q.DiscountValue,

		ExpirationTimeline: string(q.ExpirationTimeline),
		SentAt:             q.SentAt,
		ExpiresAt:          q.ExpiresAt,
		AcceptedAt:         q.AcceptedAt,
		AcceptedOptionID:   q.AcceptedOptionID,
		Signature:          q.Signature,

		RevisionNumber: q.RevisionNumber,

		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	for _, opt := range q.Options {
		res.Options = append(res.Options, fromOption(opt))
	}
	for _, e := range q.ChangeLog {
		res.ChangeLog = append(res.ChangeLog, ChangeLogEntryResponse{Timestamp: e.Timestamp, Description: e.Description, Author: e.Author})
	}
	for _, v := range q.ViewHistory {
		res.ViewHistory = append(res.ViewHistory, QuoteViewResponse{Timestamp: v.Timestamp})
	}
	for _, s := range q.Subcontractors {
		res.Subcontractors = append(res.Subcontractors, SubcontractorResponse{ID: s.ID, Name: s.Name, Role: s.Role, CostRate: s.CostRate})
	}
	return res
}

func FromQuoteList(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}

func fromOption(opt entities.QuoteOption) QuoteOptionResponse {
	res := QuoteOptionResponse{
		ID:                     opt.ID,
		Name:                   opt.Name,
		Areas:                  make([]QuoteAreaResponse, 0, len(opt.Areas)),
		LaborCategories:        make([]LaborCategoryResponse, 0, len(opt.LaborCategories)),
		ScopeOfWork:            opt.ScopeOfWork,
		LaborSellPriceOverride: opt.LaborSellPriceOverride,
		UseSimpleLabor:         opt.UseSimpleLabor,
		Totals:                 fromTotals(opt.Totals),
	}
	for _, area := range opt.Areas {
		res.Areas = append(res.Areas, fromArea(area))
	}
	for _, cat := range opt.LaborCategories {
		res.LaborCategories = append(res.LaborCategories, fromLaborCategory(cat))
	}
	if opt.SimpleLabor != nil {
		sl := SimpleLaborResponse{
			NumDays:             opt.SimpleLabor.NumDays,
			Rate:                opt.SimpleLabor.Rate,
			AssignedTechnicians: fromAssigned(opt.SimpleLabor.AssignedTechnicians),
		}
		res.SimpleLabor = &sl
	}
	return res
}

func fromArea(area entities.QuoteArea) QuoteAreaResponse {
	res := QuoteAreaResponse{ID: area.ID, Name: area.Name, Items: make([]QuoteItemResponse, 0, len(area.Items))}
	for _, item := range area.Items {
		res.Items = append(res.Items, QuoteItemResponse{
			ID:                item.ID,
			Name:              item.Name,
			Description:       item.Description,
			ModelNumber:       item.ModelNumber,
			Category:          item.Category,
			Brand:             item.Brand,
			DealerCost:        item.DealerCost,
			MSRP:              item.MSRP,
			Quantity:          item.Quantity,
			SellPrice:         item.SellPrice(),
			SellPriceOverride: item.SellPriceOverride,
		})
	}
	return res
}

func fromLaborCategory(cat entities.LaborCategory) LaborCategoryResponse {
	res := LaborCategoryResponse{
		ID:                  string(cat.ID),
		Name:                cat.Name,
		ClientRate:          cat.ClientRate,
		EstimatedTechDays:   cat.EstimatedTechDays,
		AssignedTechnicians: fromAssigned(cat.AssignedTechnicians),
		Totals: LaborCategoryTotalsResponse{
			CustomerCost: cat.Totals.CustomerCost,
			CompanyCost:  cat.Totals.CompanyCost,
			Profit:       cat.Totals.Profit,
			GPM:          cat.Totals.GPM,
		},
	}
	for _, s := range cat.AssignedSubcontractors {
		res.AssignedSubcontractors = append(res.AssignedSubcontractors, AssignedSubcontractorResponse{
			ResourceID:      s.ResourceID,
			EstimatedDays:   s.EstimatedDays,
			ClientDailyRate: s.ClientDailyRate,
		})
	}
	return res
}

func fromAssigned(in []entities.AssignedResource) []AssignedResourceResponse {
	out := make([]AssignedResourceResponse, 0, len(in))
	for _, r := range in {
		out = append(out, AssignedResourceResponse{ResourceID: r.ResourceID})
	}
	return out
}

func fromTotals(t entities.QuoteTotals) QuoteTotalsResponse {
	return QuoteTotalsResponse{
		MaterialCost:      t.MaterialCost,
		LaborCost:         t.LaborCost,
		TotalCompanyCost:  t.TotalCompanyCost,
		CustomerPrice:     t.CustomerPrice,
		Discount:          t.Discount,
		Tax:               t.Tax,
		FinalPrice:        t.FinalPrice,
		MarginPercentage:  t.MarginPercentage,
		MaterialSellPrice: t.MaterialSellPrice,
		LaborSellPrice:    t.LaborSellPrice,
		ShippingCharge:    t.ShippingCharge,
		FirstInvoice:      t.FirstInvoice,
		SecondInvoice:     t.SecondInvoice,
	}
}
