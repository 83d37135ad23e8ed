package template

// DefaultIDs lists the eight built-in templates the documentation core
// registers at minimum (spec.md §4.C4).
var DefaultIDs = []string{
	"project_card",
	"timesheet_monthly",
	"expense_registry",
	"nexus_calculation",
	"br_annual_summary",
	"ip_box_procedure",
	"tax_interpretation_request",
	"br_contract",
}

// RegisterDefaults loads the built-in templates' .hjson fixtures from dir
// (normally "internal/template/testdata", resolved relative to the
// working directory or executable by the caller, matching how the
// prompt library resources directory is resolved at startup) and
// registers each on r.
func RegisterDefaults(r *Registry, dir string) error {
	return LoadFromDirectory(r, dir)
}
