package domain

import "fmt"

// CostCategory is the closed tag set of B+R cost categories.
type CostCategory string

const (
	CostPersonnelEmployment CostCategory = "personnel_employment"
	CostPersonnelCivil      CostCategory = "personnel_civil"
	CostMaterials           CostCategory = "materials"
	CostEquipment           CostCategory = "equipment"
	CostDepreciation        CostCategory = "depreciation"
	CostExpertise           CostCategory = "expertise"
	CostExternalServices    CostCategory = "external_services"
	CostRelatedServices     CostCategory = "related_services"
	CostIPPurchase          CostCategory = "ip_purchase"
	CostOther               CostCategory = "other"
)

// NexusComponent identifies which of the four Nexus formula buckets
// (a, b, c, d) a cost category's qualified amounts contribute to.
type NexusComponent string

const (
	NexusA NexusComponent = "a" // direct B+R costs
	NexusB NexusComponent = "b" // unrelated external costs
	NexusC NexusComponent = "c" // related-party costs
	NexusD NexusComponent = "d" // IP purchase costs
)

// DeductionRate returns the statutory multiplier for a category: 2.0 for
// personnel categories, 1.0 otherwise.
func (c CostCategory) DeductionRate() float64 {
	switch c {
	case CostPersonnelEmployment, CostPersonnelCivil:
		return 2.0
	default:
		return 1.0
	}
}

// NexusComponent returns the Nexus-formula bucket this category's costs
// contribute to. related_services and external_services map to distinct
// buckets (c and b respectively) and must never be merged.
func (c CostCategory) NexusComponent() NexusComponent {
	switch c {
	case CostExternalServices:
		return NexusB
	case CostRelatedServices:
		return NexusC
	case CostIPPurchase:
		return NexusD
	default:
		return NexusA
	}
}

// IsValid reports whether c is one of the closed set of categories.
func (c CostCategory) IsValid() bool {
	switch c {
	case CostPersonnelEmployment, CostPersonnelCivil, CostMaterials, CostEquipment,
		CostDepreciation, CostExpertise, CostExternalServices, CostRelatedServices,
		CostIPPurchase, CostOther:
		return true
	default:
		return false
	}
}

// CategoryDisplayName maps a category to its Polish display name, used by
// single-expense document generation (§4.C5).
var CategoryDisplayName = map[CostCategory]string{
	CostPersonnelEmployment: "Wynagrodzenia z umowy o pracę",
	CostPersonnelCivil:      "Wynagrodzenia z umów cywilnoprawnych",
	CostMaterials:           "Materiały i surowce",
	CostEquipment:           "Sprzęt specjalistyczny",
	CostDepreciation:        "Odpisy amortyzacyjne",
	CostExpertise:           "Ekspertyzy, opinie, usługi doradcze",
	CostExternalServices:    "Usługi obce niepowiązane",
	CostRelatedServices:     "Usługi podmiotów powiązanych",
	CostIPPurchase:          "Nabycie kwalifikowanego IP",
	CostOther:               "Pozostałe koszty kwalifikowane",
}

// CostItem is a single qualified cost entry within ProjectInput.
type CostItem struct {
	Category      CostCategory `json:"category"`
	Description   string       `json:"description"`
	Gross         Money        `json:"gross"`
	QualifiedPct  float64      `json:"qualified_pct"` // fraction of Gross that is B+R-qualified
	Justification string       `json:"justification,omitempty"`
}

// QualifiedGross returns Gross * QualifiedPct.
func (c CostItem) QualifiedGross() Money {
	return c.Gross.Mul(c.QualifiedPct)
}

// Deduction returns the statutory deduction amount: QualifiedGross * rate.
func (c CostItem) Deduction() Money {
	return c.QualifiedGross().Mul(c.Category.DeductionRate())
}

// Validate checks the cost item's internal invariants.
func (c CostItem) Validate() (ok bool, message string) {
	if !c.Category.IsValid() {
		return false, fmt.Sprintf("unknown cost category %q", c.Category)
	}
	if c.Gross < 0 {
		return false, "cost gross amount cannot be negative"
	}
	if ok, msg := ValidatePercent(c.QualifiedPct); !ok {
		return false, msg
	}
	return true, ""
}
