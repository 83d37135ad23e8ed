package domain

import (
	"fmt"
	"time"
)

// MilestoneStatus is the lifecycle state of a project Milestone.
type MilestoneStatus string

const (
	MilestonePlanned    MilestoneStatus = "planned"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneDelayed    MilestoneStatus = "delayed"
)

// Milestone is a single timeline checkpoint within a ProjectInput.
type Milestone struct {
	TargetDate   time.Time       `json:"target_date"`
	ActualDate   *time.Time      `json:"actual_date,omitempty"`
	Status       MilestoneStatus `json:"status"`
	Deliverables string          `json:"deliverables"`
	Findings     string          `json:"findings"`
}

// InnovationType classifies the kind of innovation a project pursues.
type InnovationType string

const (
	InnovationProduct        InnovationType = "product"
	InnovationProcess        InnovationType = "process"
	InnovationService        InnovationType = "service"
	InnovationOrganizational InnovationType = "organizational"
)

// InnovationScope classifies how widely novel the project's innovation is.
type InnovationScope string

const (
	ScopeCompany  InnovationScope = "company"
	ScopeNational InnovationScope = "national"
	ScopeGlobal   InnovationScope = "global"
)

// InnovationProfile describes the nature and novelty of the project's
// research activity.
type InnovationProfile struct {
	Type        InnovationType  `json:"type"`
	Scope       InnovationScope `json:"scope"`
	Description string          `json:"description"`
}

// Validate flags a recommendation (not an invariant) that the description
// reach 100 characters.
func (p InnovationProfile) Validate() (ok bool, message string) {
	if len(p.Description) < 100 {
		return true, "innovation description is shorter than the recommended 100 characters"
	}
	return true, ""
}

// Methodology describes how the project's research is conducted.
type Methodology struct {
	Systematic      bool     `json:"systematic"`
	Creative        bool     `json:"creative"`
	Innovative      bool     `json:"innovative"`
	ResearchMethods []string `json:"research_methods"`
	RiskFactors     []string `json:"risk_factors"`
}

// PersonnelCostBreakdown groups the personnel-related cost items, split by
// employment form since they carry different legal treatment downstream.
type PersonnelCostBreakdown struct {
	Employment []CostItem `json:"employment"`
	Civil      []CostItem `json:"civil"`
}

// CostBreakdown groups a ProjectInput's cost items by category family.
type CostBreakdown struct {
	Personnel       PersonnelCostBreakdown `json:"personnel"`
	Materials       []CostItem             `json:"materials"`
	Equipment       []CostItem             `json:"equipment"`
	Depreciation    []CostItem             `json:"depreciation"`
	Expertise       []CostItem             `json:"expertise"`
	ExternalService []CostItem             `json:"external_services"`
}

// All flattens the breakdown into a single slice, in family order.
func (c CostBreakdown) All() []CostItem {
	out := make([]CostItem, 0, 16)
	out = append(out, c.Personnel.Employment...)
	out = append(out, c.Personnel.Civil...)
	out = append(out, c.Materials...)
	out = append(out, c.Equipment...)
	out = append(out, c.Depreciation...)
	out = append(out, c.Expertise...)
	out = append(out, c.ExternalService...)
	return out
}

// DocumentationConfig carries per-request generation knobs.
type DocumentationConfig struct {
	UseLLM        bool `json:"use_llm"`
	MaxIterations int  `json:"max_iterations"`
	RenderPDF     bool `json:"render_pdf"`
}

// ProjectInput is the immutable-per-request record a generation is run
// against.
type ProjectInput struct {
	Name         string              `json:"name"`
	InternalCode string              `json:"internal_code"`
	FiscalYear   int                 `json:"fiscal_year"`
	CompanyName  string              `json:"company_name"`
	CompanyNIP   string              `json:"company_nip"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Milestones  []Milestone       `json:"milestones"`
	Innovation  InnovationProfile `json:"innovation"`
	Methodology Methodology       `json:"methodology"`
	Costs       CostBreakdown     `json:"costs"`
	Doc         DocumentationConfig `json:"documentation"`
}

// Validate checks the structural invariants of spec.md §3: NIP checksum,
// fiscal-year bounds, start not after end, and each cost item's own
// validity (category, gross amount, qualified share).
func (p ProjectInput) Validate(now time.Time) (ok bool, messages []string) {
	if nipOK, msg := ValidateNIP(p.CompanyNIP); !nipOK {
		messages = append(messages, "INVALID_NIP: "+msg)
	}
	if fyOK, msg := ValidateFiscalYear(p.FiscalYear, now, false); !fyOK {
		messages = append(messages, msg)
	}
	if p.Start.After(p.End) {
		messages = append(messages, "project start date must not be after end date")
	}
	for _, item := range p.Costs.All() {
		if itemOK, msg := item.Validate(); !itemOK {
			messages = append(messages, fmt.Sprintf("cost item %q: %s", item.Description, msg))
		}
	}
	return len(messages) == 0, messages
}

// TotalGross sums the gross amount across all cost items.
func (p ProjectInput) TotalGross() Money {
	var total Money
	for _, c := range p.Costs.All() {
		total = total.Add(c.Gross)
	}
	return total
}

// TotalDeduction sums the statutory deduction across all cost items.
func (p ProjectInput) TotalDeduction() Money {
	var total Money
	for _, c := range p.Costs.All() {
		total = total.Add(c.Deduction())
	}
	return total
}
