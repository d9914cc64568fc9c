// Drives the locate, validate, normalize pipeline the way a hover
// surface consumes it: one call per cursor position, yielding either a
// cleaned fragment ready to render or a fixed diagnostic explaining why
// there is nothing to show. Display concerns (popups, dismissal timers)
// belong to the embedding surface, not here.
package svgpreview

import (
	"github.com/GDGVITM/svg-preview/svgcheck"
	"github.com/GDGVITM/svg-preview/svgclean"
	"github.com/GDGVITM/svg-preview/svgfrag"
)

// Diagnostics, one fixed string per structural reason. The two locate
// side outcomes are absences, not validation failures, but the surface
// still needs words for them.
const (
	MsgNoFragment          = "No <svg> element at this position"
	MsgBoundaryMismatch    = "The selection is not a complete <svg> element"
	MsgUnmatchedClosingTag = "A closing tag has no matching opening tag"
	MsgUnbalancedDepth     = "An element is never closed"
	MsgUnterminatedQuote   = "An attribute value quote is never closed"
)

// DiagnosticFor maps a validation reason onto its user-facing message.
func DiagnosticFor(r svgcheck.Reason) string {
	switch r {
	case svgcheck.BoundaryMismatch:
		return MsgBoundaryMismatch
	case svgcheck.UnmatchedClosingTag:
		return MsgUnmatchedClosingTag
	case svgcheck.UnbalancedDepth:
		return MsgUnbalancedDepth
	case svgcheck.UnterminatedQuote:
		return MsgUnterminatedQuote
	}
	return ""
}

// Result is the outcome of one hover cycle. Exactly one of Content and
// Diagnostic is meaningful: Content carries the normalized fragment when
// OK, Diagnostic the fixed message otherwise.
type Result struct {
	OK         bool
	Fragment   svgfrag.Fragment
	Verdict    svgcheck.Verdict
	Content    string
	Diagnostic string
}

// Previewer binds a normalizer configuration to the pipeline.
type Previewer struct {
	normalizer *svgclean.Normalizer
}

// New returns a Previewer using the given normalizer, or defaults when
// nil.
func New(n *svgclean.Normalizer) *Previewer {
	if n == nil {
		n = svgclean.New()
	}
	return &Previewer{normalizer: n}
}

// At runs the pipeline for a cursor position. Normalization is only
// attempted after a valid verdict; an invalid fragment comes back with
// its diagnostic and no content.
func (p *Previewer) At(text string, offset int) Result {
	frag, ok := svgfrag.Locate(text, offset)
	if !ok {
		return Result{Diagnostic: MsgNoFragment}
	}
	verdict := svgcheck.Validate(frag.Content())
	if !verdict.Valid {
		return Result{Fragment: frag, Verdict: verdict, Diagnostic: DiagnosticFor(verdict.Reason)}
	}
	return Result{
		OK:       true,
		Fragment: frag,
		Verdict:  verdict,
		Content:  p.normalizer.Normalize(frag.Content()),
	}
}

// Check validates an already-extracted fragment and returns its verdict
// with the matching diagnostic, empty when valid.
func (p *Previewer) Check(fragmentText string) (svgcheck.Verdict, string) {
	verdict := svgcheck.Validate(fragmentText)
	if verdict.Valid {
		return verdict, ""
	}
	return verdict, DiagnosticFor(verdict.Reason)
}
