package output

import (
	"fmt"
	"io"
	"os"

	"walkthrough/internal/fixtures"
	"walkthrough/internal/scenario"
)

// Printer writes rendered output to a writer.
//
// Create with [NewPrinter] for stdout or [NewPrinterWithWriter] to capture
// output in tests.
type Printer struct {
	out      io.Writer
	renderer *Renderer
}

// NewPrinter creates a [Printer] writing to stdout.
func NewPrinter() *Printer {
	return NewPrinterWithWriter(os.Stdout)
}

// NewPrinterWithWriter creates a [Printer] writing to w.
func NewPrinterWithWriter(w io.Writer) *Printer {
	return &Printer{out: w, renderer: NewRenderer(DefaultWidth)}
}

// SetWidth changes the wrap width of subsequent output.
func (p *Printer) SetWidth(width int) {
	p.renderer = NewRenderer(width)
}

// Renderer returns the renderer used by the printer.
func (p *Printer) Renderer() *Renderer {
	return p.renderer
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// View prints a full session snapshot.
func (p *Printer) View(vm scenario.ViewModel) {
	fmt.Fprintln(p.out, p.renderer.View(vm))
}

// ScenarioList prints the scenario table, or a notice when list is empty.
func (p *Printer) ScenarioList(list []*scenario.Scenario) {
	if len(list) == 0 {
		fmt.Fprintln(p.out, p.renderer.styles.Dim.Render("No scenarios available."))
		return
	}
	fmt.Fprintln(p.out, p.renderer.ScenarioTable(list))
}

// ThreatReport prints every threat of s grouped by stage.
func (p *Printer) ThreatReport(s *scenario.Scenario) {
	fmt.Fprintln(p.out, p.renderer.ThreatReport(s))
}

// Takeaways prints the completion screen.
func (p *Printer) Takeaways(items []fixtures.Takeaway) {
	fmt.Fprintln(p.out, p.renderer.Takeaways(items))
}

// ValidationResult prints one line per scenario loaded from source.
func (p *Printer) ValidationResult(source string, list []*scenario.Scenario) {
	p.Success("%s: %d scenario(s) valid", source, len(list))
	for _, s := range list {
		fmt.Fprintf(p.out, "  %s  %d stages, %d threats\n", s.ID, s.Catalog.Len(), s.Threats.Len())
	}
}

// Success prints a formatted success line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.renderer.styles.Success.Render(IconComplete+" "+fmt.Sprintf(format, args...)))
}

// Error prints a formatted error line.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.out, p.renderer.styles.Error.Render("✗ "+fmt.Sprintf(format, args...)))
}
