package entities

// QuoteTotals is the computed financial snapshot of one quote option. It is a
// pure function output, never mutated in place.
type QuoteTotals struct {
	MaterialCost     float64 `json:"material_cost"`
	LaborCost        float64 `json:"labor_cost"`
	TotalCompanyCost float64 `json:"total_company_cost"`

	// CustomerPrice is the pre-discount subtotal.
	CustomerPrice    float64 `json:"customer_price"`
	Discount         float64 `json:"discount"`
	Tax              float64 `json:"tax"`
	FinalPrice       float64 `json:"final_price"`
	MarginPercentage float64 `json:"margin_percentage"`

	MaterialSellPrice float64 `json:"material_sell_price"`
	LaborSellPrice    float64 `json:"labor_sell_price"`
	ShippingCharge    float64 `json:"shipping_charge"`

	// Two-invoice split: 25% of labor is due at acceptance, 75% at completion.
	FirstInvoice  float64 `json:"first_invoice"`
	SecondInvoice float64 `json:"second_invoice"`
}
