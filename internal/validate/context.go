package validate

// DocumentType classifies the generated document for stage-specific
// structural/legal requirements.
type DocumentType string

const (
	DocProjectCard           DocumentType = "project_card"
	DocTimesheetMonthly      DocumentType = "timesheet_monthly"
	DocExpenseRegistry       DocumentType = "expense_registry"
	DocNexusCalculation      DocumentType = "nexus_calculation"
	DocBRAnnualSummary       DocumentType = "br_annual_summary"
	DocIPBoxProcedure        DocumentType = "ip_box_procedure"
	DocTaxInterpretationReq  DocumentType = "tax_interpretation_request"
	DocBRContract            DocumentType = "br_contract"
)

// formalDocTypes are document types that additionally require a
// statutory legal reference per spec.md §4.C6's legal stage contract.
var formalDocTypes = map[DocumentType]bool{
	DocIPBoxProcedure:       true,
	DocTaxInterpretationReq: true,
	DocBRContract:           true,
}

// Context is threaded through the pipeline's stages; it is never reset
// between stages — each stage only appends to Issues (monotonic per
// spec.md §3).
type Context struct {
	Content       string
	DocType       DocumentType
	ProjectID     string
	FiscalYear    int
	NexusObserved *float64 // recomputed Nexus from discoverable a..d components, if any

	Stage   string
	Results []Result
	Issues  []Issue
}

// NewContext returns an empty Context for a single validation run.
func NewContext(content string, docType DocumentType, projectID string, fiscalYear int) *Context {
	return &Context{Content: content, DocType: docType, ProjectID: projectID, FiscalYear: fiscalYear}
}

// Append records a stage's Result, adding its issues to the aggregated
// list without discarding any prior stage's issues.
func (c *Context) Append(result Result) {
	c.Stage = result.Stage
	c.Results = append(c.Results, result)
	c.Issues = append(c.Issues, result.Issues...)
}

// IsFormal reports whether c.DocType requires a statutory legal
// reference (art. 18d CIT / IP Box).
func (c *Context) IsFormal() bool {
	return formalDocTypes[c.DocType]
}
