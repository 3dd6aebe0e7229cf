package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"walkthrough/internal/detail"
	"walkthrough/internal/fixtures"
	"walkthrough/internal/pipeline"
	"walkthrough/internal/scenario"
	"walkthrough/internal/threat"
)

const (
	// DefaultWidth is used when a renderer is created with an unusable width.
	DefaultWidth = 80

	minWidth = 40
)

// Status icons.
const (
	IconComplete = "✓"
	IconActive   = "▶"
	IconPending  = "○"
)

// NoImageText is shown in a detail view for stages without an illustration.
const NoImageText = "No image available"

// Renderer renders session values to styled strings.
type Renderer struct {
	styles Styles
	width  int
}

// NewRenderer creates a [Renderer] that wraps text at width columns.
func NewRenderer(width int) *Renderer {
	if width < minWidth {
		width = DefaultWidth
	}
	return &Renderer{styles: DefaultStyles, width: width}
}

// Width returns the wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// StatusIcon returns the icon for a stage status.
func StatusIcon(s pipeline.Status) string {
	switch s {
	case pipeline.StatusComplete:
		return IconComplete
	case pipeline.StatusActive:
		return IconActive
	default:
		return IconPending
	}
}

func (r *Renderer) statusStyle(s pipeline.Status) lipgloss.Style {
	switch s {
	case pipeline.StatusComplete:
		return r.styles.Complete
	case pipeline.StatusActive:
		return r.styles.Active
	default:
		return r.styles.Pending
	}
}

func (r *Renderer) severityStyle(s threat.Severity) lipgloss.Style {
	switch s {
	case threat.SeverityHigh:
		return r.styles.High
	case threat.SeverityMedium:
		return r.styles.Medium
	default:
		return r.styles.Low
	}
}

// SeverityLabel renders a severity as a bracketed upper-case tag.
func (r *Renderer) SeverityLabel(s threat.Severity) string {
	return r.severityStyle(s).Render("[" + strings.ToUpper(string(s)) + "]")
}

// wrap word-wraps text to the renderer width minus indent and indents it.
func (r *Renderer) wrap(text string, indent int) string {
	w := r.width - indent
	if w < 10 {
		w = 10
	}
	wrapped := lipgloss.NewStyle().Width(w).Render(text)
	pad := strings.Repeat(" ", indent)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		if line = strings.TrimRight(line, " "); line != "" {
			line = pad + line
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Header renders the scenario title and description.
func (r *Renderer) Header(title, description string) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(title))
	if description != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render(r.wrap(description, 0)))
	}
	return b.String()
}

// Transcript renders the chat messages of a scenario.
func (r *Renderer) Transcript(messages []scenario.Message) string {
	if len(messages) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.styles.Section.Render("CONVERSATION"))
	for _, m := range messages {
		b.WriteString("\n")
		if m.Role == scenario.RoleUser {
			b.WriteString(r.styles.User.Render("You"))
		} else {
			b.WriteString(r.styles.Assistant.Render("Assistant"))
		}
		b.WriteString("\n")
		b.WriteString(r.styles.Base.Render(r.wrap(m.Content, 2)))
	}
	return b.String()
}

// Stages renders the pipeline with a status icon per stage. Summaries are
// printed under every stage that carries one.
func (r *Renderer) Stages(stages []scenario.StageView) string {
	var b strings.Builder
	b.WriteString(r.styles.Section.Render("UNDER THE HOOD"))
	for _, sv := range stages {
		style := r.statusStyle(sv.Status)
		line := fmt.Sprintf("%s %d. %s", StatusIcon(sv.Status), sv.Index+1, sv.Title)
		b.WriteString("\n")
		b.WriteString(style.Render(line))
		if sv.ShortDescription != "" {
			b.WriteString(r.styles.Dim.Render("  " + sv.ShortDescription))
		}
		if sv.Summary != "" {
			b.WriteString("\n")
			b.WriteString(r.styles.Base.Render(r.wrap(sv.Summary, 5)))
		}
	}
	return b.String()
}

// Threats renders a security panel for the given records.
func (r *Renderer) Threats(stageTitle string, records []threat.Record) string {
	var b strings.Builder
	b.WriteString(r.styles.High.Render("SECURITY: " + stageTitle))
	if len(records) == 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render("No known threats at this stage."))
	}
	for _, rec := range records {
		b.WriteString("\n")
		b.WriteString(r.SeverityLabel(rec.Severity))
		b.WriteString(" ")
		b.WriteString(r.styles.Bold.Render(rec.Title))
		if rec.Description != "" {
			b.WriteString("\n")
			b.WriteString(r.styles.Base.Render(r.wrap(rec.Description, 6)))
		}
		if rec.Example != "" {
			b.WriteString("\n")
			b.WriteString(r.styles.Dim.Render(r.wrap("Example: "+rec.Example, 6)))
		}
	}
	return r.styles.DangerPanel.Render(b.String())
}

// Detail renders an open detail view.
func (r *Renderer) Detail(p detail.Payload) string {
	var b strings.Builder
	b.WriteString(r.styles.Header.Render(p.Title))
	for _, point := range p.Points {
		b.WriteString("\n")
		b.WriteString(r.styles.Base.Render(r.wrap("• "+point, 2)))
	}
	if p.TechnicalNote != "" {
		b.WriteString("\n\n")
		b.WriteString(r.styles.Section.Render("Technical note"))
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render(r.wrap(p.TechnicalNote, 2)))
	}
	b.WriteString("\n\n")
	if p.Illustration.IsNone() {
		b.WriteString(r.styles.Muted.Render(NoImageText))
	} else {
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("Image: %s (%s)", p.Illustration.Alt, p.Illustration.Src)))
	}
	return r.styles.Panel.Render(b.String())
}

// Progress renders the one-line position indicator.
func (r *Renderer) Progress(vm scenario.ViewModel) string {
	line := fmt.Sprintf("Stage %d of %d: %s", vm.CurrentIndex+1, vm.StageCount, vm.Current.Title)
	if vm.Terminal {
		line += " (last stage)"
	}
	return r.styles.Active.Render(line)
}

// View renders a full snapshot: header, transcript, pipeline, security
// overlay, open detail and progress line.
func (r *Renderer) View(vm scenario.ViewModel) string {
	sections := []string{r.Header(vm.Title, vm.Description)}
	if t := r.Transcript(vm.Transcript); t != "" {
		sections = append(sections, t)
	}

	if vm.PipelineVisible {
		sections = append(sections, r.Stages(vm.Stages))
		if vm.SecurityVisible {
			sections = append(sections, r.Threats(vm.Current.Title, vm.Threats))
		}
	} else {
		sections = append(sections, r.styles.Dim.Render("Under the hood view is hidden."))
	}

	if vm.Detail != nil {
		sections = append(sections, r.Detail(*vm.Detail))
	}

	sections = append(sections, r.Progress(vm))
	return strings.Join(sections, "\n\n")
}

// Takeaways renders the completion screen.
func (r *Renderer) Takeaways(items []fixtures.Takeaway) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render("Walkthrough complete"))
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render("Key takeaways"))
	for i, item := range items {
		b.WriteString("\n\n")
		b.WriteString(r.styles.Bold.Render(fmt.Sprintf("%d. %s", i+1, item.Title)))
		if item.Description != "" {
			b.WriteString("\n")
			b.WriteString(r.styles.Base.Render(r.wrap(item.Description, 3)))
		}
	}
	return b.String()
}

// ScenarioTable renders a table of scenarios with stage and threat counts.
func (r *Renderer) ScenarioTable(list []*scenario.Scenario) string {
	headers := []string{"ID", "TITLE", "STAGES", "THREATS"}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			s.ID,
			s.Title,
			fmt.Sprintf("%d", s.Catalog.Len()),
			fmt.Sprintf("%d", s.Threats.Len()),
		})
	}
	return r.table(headers, rows)
}

func (r *Renderer) table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(r.styles.Section.Render(padRight(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}

	total := 2 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	b.WriteString("\n")
	b.WriteString(r.styles.Muted.Render(strings.Repeat("─", total)))

	for _, row := range rows {
		b.WriteString("\n")
		for i, cell := range row {
			if i < len(row)-1 {
				cell = padRight(cell, widths[i]) + "  "
			}
			b.WriteString(r.styles.Base.Render(cell))
		}
	}
	return b.String()
}

// ThreatReport renders every threat of s grouped by stage, followed by
// per-severity counts.
func (r *Renderer) ThreatReport(s *scenario.Scenario) string {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(s.Title + " threats"))

	for i, stage := range s.Catalog.Stages() {
		records := s.Threats.ThreatsFor(stage.ID)
		b.WriteString("\n\n")
		b.WriteString(r.styles.Header.Render(fmt.Sprintf("%d. %s", i+1, stage.Title)))
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf(" (%d)", len(records))))
		for _, rec := range records {
			b.WriteString("\n  ")
			b.WriteString(r.SeverityLabel(rec.Severity))
			b.WriteString(" ")
			b.WriteString(r.styles.Base.Render(rec.Title))
		}
	}

	counts := s.Threats.CountBySeverity()
	parts := make([]string, 0, len(threat.Severities))
	for _, sev := range threat.Severities {
		parts = append(parts, r.severityStyle(sev).Render(fmt.Sprintf("%s: %d", sev, counts[sev])))
	}
	b.WriteString("\n\n")
	b.WriteString(strings.Join(parts, "  "))
	return b.String()
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
