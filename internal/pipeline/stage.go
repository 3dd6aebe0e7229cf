package pipeline

// Stage is one fixed step of the simulated pipeline.
//
// Stages are immutable once placed in a [Catalog]; the catalog hands out
// copies.
type Stage struct {
	// ID is the stable key of the stage within its scenario
	// (e.g., "prompt-parsing"). Threat records reference stages by ID.
	ID string

	// Title is the display name (e.g., "Prompt Parsing").
	Title string

	// ShortDescription is the one-line explanation shown for every stage.
	ShortDescription string

	// Summary is the scenario-specific outcome, revealed only once the stage
	// is active or complete.
	Summary string

	// DetailPoints are the ordered bullet points of the expanded detail view.
	DetailPoints []string

	// TechnicalNote is the technical footnote of the detail view.
	TechnicalNote string

	// Illustration is an optional image reference for the detail view.
	Illustration *Illustration
}

// Illustration references an image shown in a stage's detail view.
type Illustration struct {
	Src string
	Alt string
}

// NoIllustration is the explicit "none" value used when a stage has no image.
var NoIllustration = Illustration{}

// IsNone reports whether the illustration is the explicit "none" value.
func (i Illustration) IsNone() bool {
	return i.Src == ""
}
