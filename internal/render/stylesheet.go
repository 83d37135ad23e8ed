package render

// Stylesheet carries the visual parameters a Paginator applies when
// laying out a page. The actual values are owned by an external
// collaborator (spec.md Non-goals: "exact visual typography... is
// delegated to a stylesheet collaborator") — the three presets below are
// placeholder defaults so the renderer works without one wired in.
type Stylesheet struct {
	Name          string
	BodyFontSize  float64
	HeadingColor  [3]float64 // r, g, b in 0..1
	AccentColor   [3]float64
	MarginPoints  float64
	PageWidthPts  float64
	PageHeightPts float64
}

const (
	StylesheetDefault    = "default"
	StylesheetBRDocument = "br_document"
	StylesheetMinimal    = "minimal"
)

var presets = map[string]Stylesheet{
	StylesheetDefault: {
		Name:          StylesheetDefault,
		BodyFontSize:  10.0,
		HeadingColor:  [3]float64{0.173, 0.243, 0.314},
		AccentColor:   [3]float64{0.204, 0.596, 0.859},
		MarginPoints:  50.0,
		PageWidthPts:  595.28,
		PageHeightPts: 841.89,
	},
	StylesheetBRDocument: {
		Name:          StylesheetBRDocument,
		BodyFontSize:  10.5,
		HeadingColor:  [3]float64{0.05, 0.05, 0.05},
		AccentColor:   [3]float64{0.6, 0.0, 0.0},
		MarginPoints:  60.0,
		PageWidthPts:  595.28,
		PageHeightPts: 841.89,
	},
	StylesheetMinimal: {
		Name:          StylesheetMinimal,
		BodyFontSize:  9.5,
		HeadingColor:  [3]float64{0, 0, 0},
		AccentColor:   [3]float64{0, 0, 0},
		MarginPoints:  40.0,
		PageWidthPts:  595.28,
		PageHeightPts: 841.89,
	},
}

// ResolveStylesheet looks a preset up by name, falling back to the
// default preset for any unrecognised name (spec.md §4.C9).
func ResolveStylesheet(name string) Stylesheet {
	if s, ok := presets[name]; ok {
		return s
	}
	return presets[StylesheetDefault]
}
