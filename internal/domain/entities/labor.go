package entities

// ResourceKind discriminates the labor resource union. Technicians are costed
// hourly, subcontractors per day.
type ResourceKind string

const (
	ResourceKindTechnician    ResourceKind = "technician"
	ResourceKindSubcontractor ResourceKind = "subcontractor"
)

// LaborResource is an entry in the resource registry consulted when costing
// labor. CostRate is an hourly cost for technicians and a daily cost for
// subcontractors.
type LaborResource struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Role     string       `json:"role,omitempty"`
	Kind     ResourceKind `json:"kind"`
	CostRate float64      `json:"cost_rate"`
}

// AssignedResource links a labor category to a technician in the registry.
type AssignedResource struct {
	ResourceID string `json:"resource_id"`
}

// AssignedSubcontractor carries its own day count and client rate, decoupled
// from the category's technician day estimate.
type AssignedSubcontractor struct {
	ResourceID      string  `json:"resource_id"`
	EstimatedDays   float64 `json:"estimated_days"`
	ClientDailyRate float64 `json:"client_daily_rate"`
}

// LaborCategoryID identifies one of the four fixed labor phases.
type LaborCategoryID string

const (
	LaborCategoryDesign      LaborCategoryID = "design"
	LaborCategoryProgramming LaborCategoryID = "programming"
	LaborCategoryPrewire     LaborCategoryID = "prewire"
	LaborCategoryInstall     LaborCategoryID = "install"
)

// LaborCategory is one labor phase of a quote option.
//
// All technicians assigned to a category share the same day estimate and
// client rate (fixed-team model). Subcontractor assignments are independent.
type LaborCategory struct {
	ID                     LaborCategoryID         `json:"id"`
	Name                   string                  `json:"name"`
	ClientRate             float64                 `json:"client_rate"`
	EstimatedTechDays      float64                 `json:"estimated_tech_days"`
	AssignedTechnicians    []AssignedResource      `json:"assigned_technicians"`
	AssignedSubcontractors []AssignedSubcontractor `json:"assigned_subcontractors"`

	// Totals is a display cache of the last computed category totals. It is
	// derived state, recomputed whenever inputs change.
	Totals LaborCategoryTotals `json:"totals"`
}

// SimpleLabor is the flat day-times-rate alternative to detailed categories.
type SimpleLabor struct {
	NumDays             float64            `json:"num_days"`
	Rate                float64            `json:"rate"`
	AssignedTechnicians []AssignedResource `json:"assigned_technicians"`
}

// LaborCategoryTotals is the computed cost/price summary of one labor
// category (or of the simple-labor block).
type LaborCategoryTotals struct {
	CustomerCost float64 `json:"customer_cost"`
	CompanyCost  float64 `json:"company_cost"`
	Profit       float64 `json:"profit"`
	GPM          float64 `json:"gpm"`
}

// DefaultLaborCategories returns the four fixed labor phases with the rates a
// new quote option starts from.
func DefaultLaborCategories() []LaborCategory {
	return []LaborCategory{
		{ID: LaborCategoryDesign, Name: "System Design & Engineering", ClientRate: 150, EstimatedTechDays: 0.5, AssignedTechnicians: []AssignedResource{}, AssignedSubcontractors: []AssignedSubcontractor{}},
		{ID: LaborCategoryProgramming, Name: "Programming", ClientRate: 150, EstimatedTechDays: 0, AssignedTechnicians: []AssignedResource{}, AssignedSubcontractors: []AssignedSubcontractor{}},
		{ID: LaborCategoryPrewire, Name: "Pre-wire", ClientRate: 100, EstimatedTechDays: 0, AssignedTechnicians: []AssignedResource{}, AssignedSubcontractors: []AssignedSubcontractor{}},
		{ID: LaborCategoryInstall, Name: "Installation", ClientRate: 100, EstimatedTechDays: 1, AssignedTechnicians: []AssignedResource{}, AssignedSubcontractors: []AssignedSubcontractor{}},
	}
}
