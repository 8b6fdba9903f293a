// Package pricing implements the quote-totals engine: labor and material
// aggregation, the custom and tiered pricing models, and the two-invoice
// split. Every function is pure and side-effect free; callers own caching.
package pricing

import (
	"errors"
	"math"

	"clearpoint_av/internal/domain/entities"
)

// WorkDayHours converts technician day estimates into billable hours.
const WorkDayHours = 8

// DefaultSubcontractorMargin is the target margin applied when a
// subcontractor is first assigned to a labor category.
const DefaultSubcontractorMargin = 25

var ErrMarginOutOfRange = errors.New("margin must be >= 0 and < 100")

type resourceKey struct {
	id   string
	kind entities.ResourceKind
}

// ResourceIndex resolves labor resources by id and kind in O(1). A resource
// missing from the index contributes zero cost, never an error.
type ResourceIndex map[resourceKey]entities.LaborResource

// NewResourceIndex builds a lookup over the combined resource registry
// (technicians plus subcontractors).
func NewResourceIndex(resources []entities.LaborResource) ResourceIndex {
	ix := make(ResourceIndex, len(resources))
	for _, r := range resources {
		ix[resourceKey{id: r.ID, kind: r.Kind}] = r
	}
	return ix
}

func (ix ResourceIndex) lookup(id string, kind entities.ResourceKind) (entities.LaborResource, bool) {
	r, ok := ix[resourceKey{id: id, kind: kind}]
	return r, ok
}

// CalculateLaborCategoryTotals aggregates one labor category.
//
// Technician customer cost multiplies the shared day estimate by the number
// of assigned technicians: every technician in a category works the same
// days at the same client rate. Subcontractor assignments each carry their
// own day count and client rate.
func CalculateLaborCategoryTotals(category entities.LaborCategory, resources ResourceIndex) entities.LaborCategoryTotals {
	techCustomerCost := category.EstimatedTechDays * WorkDayHours * category.ClientRate * float64(len(category.AssignedTechnicians))

	var techCompanyCost float64
	for _, assigned := range category.AssignedTechnicians {
		resource, ok := resources.lookup(assigned.ResourceID, entities.ResourceKindTechnician)
		if !ok {
			continue
		}
		techCompanyCost += resource.CostRate * WorkDayHours * category.EstimatedTechDays
	}

	var subCustomerCost, subCompanyCost float64
	for _, assigned := range category.AssignedSubcontractors {
		subCustomerCost += assigned.ClientDailyRate * assigned.EstimatedDays
		resource, ok := resources.lookup(assigned.ResourceID, entities.ResourceKindSubcontractor)
		if !ok {
			continue
		}
		subCompanyCost += resource.CostRate * assigned.EstimatedDays
	}

	customerCost := techCustomerCost + subCustomerCost
	companyCost := techCompanyCost + subCompanyCost

	return laborTotals(customerCost, companyCost)
}

// CalculateSimpleLaborTotals aggregates the flat day-times-rate labor block.
func CalculateSimpleLaborTotals(option entities.QuoteOption, resources ResourceIndex) entities.LaborCategoryTotals {
	if option.SimpleLabor == nil {
		return entities.LaborCategoryTotals{}
	}
	sl := *option.SimpleLabor

	customerCost := float64(len(sl.AssignedTechnicians)) * sl.NumDays * WorkDayHours * sl.Rate

	var companyCost float64
	for _, assigned := range sl.AssignedTechnicians {
		resource, ok := resources.lookup(assigned.ResourceID, entities.ResourceKindTechnician)
		if !ok {
			continue
		}
		companyCost += resource.CostRate * WorkDayHours * sl.NumDays
	}

	return laborTotals(customerCost, companyCost)
}

func laborTotals(customerCost, companyCost float64) entities.LaborCategoryTotals {
	profit := customerCost - companyCost
	gpm := 0.0
	if customerCost > 0 {
		gpm = profit / customerCost * 100
	}
	return entities.LaborCategoryTotals{
		CustomerCost: customerCost,
		CompanyCost:  companyCost,
		Profit:       profit,
		GPM:          gpm,
	}
}

// laborSummary resolves an option's labor cost and sell price, honoring the
// simple-labor switch and the option-level sell price override.
func laborSummary(option entities.QuoteOption, resources ResourceIndex) (laborCost, laborSellPrice float64) {
	if option.UseSimpleLabor {
		totals := CalculateSimpleLaborTotals(option, resources)
		return totals.CompanyCost, totals.CustomerCost
	}

	for _, category := range option.LaborCategories {
		totals := CalculateLaborCategoryTotals(category, resources)
		laborCost += totals.CompanyCost
		laborSellPrice += totals.CustomerCost
	}
	if option.LaborSellPriceOverride != nil {
		laborSellPrice = *option.LaborSellPriceOverride
	}
	return laborCost, laborSellPrice
}

// materialSummary flattens all area items of an option into total dealer cost
// and sell price. An item's sell price override wins over its MSRP.
func materialSummary(option entities.QuoteOption) (materialCost, materialSellPrice float64) {
	for _, area := range option.Areas {
		for _, item := range area.Items {
			qty := float64(item.Quantity)
			materialCost += item.DealerCost * qty
			materialSellPrice += item.SellPrice() * qty
		}
	}
	return materialCost, materialSellPrice
}

// CalculateCustomTotals computes totals under the custom model: line-item
// sell prices plus labor plus shipping, then the user discount and tax.
func CalculateCustomTotals(option entities.QuoteOption, quote entities.Quote, resources ResourceIndex) entities.QuoteTotals {
	materialCost, materialSellPrice := materialSummary(option)
	laborCost, laborSellPrice := laborSummary(option, resources)

	shippingCharge := materialSellPrice * quote.ShippingCustomerPercentage / 100
	companyShippingCost := materialCost * quote.ShippingCompanyPercentage / 100

	customerPrice := materialSellPrice + laborSellPrice + shippingCharge
	discount := quote.DiscountValue
	if quote.DiscountType == entities.DiscountTypePercentage {
		discount = customerPrice * quote.DiscountValue / 100
	}
	taxableTotal := customerPrice - discount

	tax := taxableTotal * quote.TaxRate / 100
	finalPrice := taxableTotal + tax

	totalCompanyCost := materialCost + laborCost + companyShippingCost
	profit := taxableTotal - totalCompanyCost
	marginPercentage := 0.0
	if taxableTotal > 0 {
		marginPercentage = profit / taxableTotal * 100
	}

	firstInvoice, secondInvoice := splitInvoices(materialSellPrice, shippingCharge, laborSellPrice, customerPrice, discount, quote.TaxRate)

	return entities.QuoteTotals{
		MaterialCost:      materialCost,
		LaborCost:         laborCost,
		TotalCompanyCost:  totalCompanyCost,
		CustomerPrice:     customerPrice,
		Discount:          discount,
		Tax:               tax,
		FinalPrice:        finalPrice,
		MarginPercentage:  marginPercentage,
		MaterialSellPrice: materialSellPrice,
		LaborSellPrice:    laborSellPrice,
		ShippingCharge:    shippingCharge,
		FirstInvoice:      firstInvoice,
		SecondInvoice:     secondInvoice,
	}
}

// CalculateTieredTotals computes totals under the tiered model: the selling
// price is derived from total company cost and a target margin bracket,
// ignoring item-level sell prices and the user discount entirely.
func CalculateTieredTotals(option entities.QuoteOption, quote entities.Quote, resources ResourceIndex) entities.QuoteTotals {
	materialCost, _ := materialSummary(option)
	laborCost, _ := laborSummary(option, resources)

	companyShippingCost := materialCost * quote.ShippingCompanyPercentage / 100
	totalCompanyCost := materialCost + laborCost + companyShippingCost

	if totalCompanyCost <= 0 {
		return entities.QuoteTotals{}
	}

	gpm := targetGPM(totalCompanyCost, quote.CustomerTypeForPricing)
	sellingPrice := totalCompanyCost / (1 - gpm/100)

	// Allocation for invoice/display purposes: material carries a fixed 25%
	// markup and labor absorbs the residual, which may go negative when the
	// material markup exceeds the selling price.
	materialSellPrice := materialCost * 1.25
	shippingCharge := materialSellPrice * quote.ShippingCustomerPercentage / 100
	laborSellPrice := sellingPrice - materialSellPrice - shippingCharge

	customerPrice := sellingPrice
	taxableTotal := customerPrice
	tax := taxableTotal * quote.TaxRate / 100
	finalPrice := taxableTotal + tax

	firstInvoice, secondInvoice := splitInvoices(materialSellPrice, shippingCharge, laborSellPrice, customerPrice, 0, quote.TaxRate)

	return entities.QuoteTotals{
		MaterialCost:      materialCost,
		LaborCost:         laborCost,
		TotalCompanyCost:  totalCompanyCost,
		CustomerPrice:     customerPrice,
		Discount:          0,
		Tax:               tax,
		FinalPrice:        finalPrice,
		MarginPercentage:  gpm,
		MaterialSellPrice: materialSellPrice,
		LaborSellPrice:    laborSellPrice,
		ShippingCharge:    shippingCharge,
		FirstInvoice:      firstInvoice,
		SecondInvoice:     secondInvoice,
	}
}

// targetGPM selects the tiered model's target gross margin. School customers
// always price at 25%; everyone else falls into inclusive cost brackets.
func targetGPM(totalCompanyCost float64, customerType entities.CustomerType) float64 {
	if customerType == entities.CustomerTypeSchool {
		return 25
	}
	switch {
	case totalCompanyCost <= 5000:
		return 45
	case totalCompanyCost <= 15000:
		return 40
	case totalCompanyCost <= 25000:
		return 35
	default:
		return 30
	}
}

// splitInvoices allocates the final price across the deposit and completion
// invoices: material and shipping plus 25% of labor up front, the remaining
// 75% of labor at completion. The discount is distributed proportionally by
// each invoice's share of the pre-discount subtotal.
func splitInvoices(materialSellPrice, shippingCharge, laborSellPrice, customerPrice, discount, taxRate float64) (firstInvoice, secondInvoice float64) {
	if customerPrice <= 0 {
		return 0, 0
	}

	invoice1Subtotal := materialSellPrice + shippingCharge + laborSellPrice*0.25
	invoice2Subtotal := laborSellPrice * 0.75

	invoice1Discount := discount * (invoice1Subtotal / customerPrice)
	invoice2Discount := discount * (invoice2Subtotal / customerPrice)

	invoice1Taxable := invoice1Subtotal - invoice1Discount
	invoice2Taxable := invoice2Subtotal - invoice2Discount

	firstInvoice = invoice1Taxable + invoice1Taxable*taxRate/100
	secondInvoice = invoice2Taxable + invoice2Taxable*taxRate/100
	return firstInvoice, secondInvoice
}

// CalculateTotals dispatches on the quote's pricing model.
func CalculateTotals(option entities.QuoteOption, quote entities.Quote, resources ResourceIndex) entities.QuoteTotals {
	if quote.PricingModel == entities.PricingModelTiered {
		return CalculateTieredTotals(option, quote, resources)
	}
	return CalculateCustomTotals(option, quote, resources)
}

// SubcontractorDailyRate inverts a target margin into the client daily rate:
// rate = ceil(cost / (1 - margin/100)). Margins of 100% or more (or below
// zero) are rejected before they can divide by zero.
func SubcontractorDailyRate(costRate, marginPercent float64) (float64, error) {
	if marginPercent < 0 || marginPercent >= 100 {
		return 0, ErrMarginOutOfRange
	}
	if costRate <= 0 {
		return 0, nil
	}
	return math.Ceil(costRate / (1 - marginPercent/100)), nil
}

// ApplyAreaMarkup returns a copy of the area with every costed item's sell
// price override set to dealerCost * (1 + markup/100). Items with zero dealer
// cost are left untouched.
func ApplyAreaMarkup(area entities.QuoteArea, markupPercent float64) entities.QuoteArea {
	items := make([]entities.QuoteItem, len(area.Items))
	for i, item := range area.Items {
		if item.DealerCost > 0 {
			override := item.DealerCost * (1 + markupPercent/100)
			item.SellPriceOverride = &override
		}
		items[i] = item
	}
	area.Items = items
	return area
}
