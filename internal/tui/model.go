// Package tui is the interactive terminal host for a walkthrough session.
//
// [Model] is a Bubble Tea model that drives one [scenario.Controller] from key
// presses and renders its snapshot with the output package. Moving past the
// last stage shows a completion screen with the takeaways.
//
// Key types:
//   - [Model] - the Bubble Tea model
//   - [KeyMap] - key bindings, also used for the help footer
//   - [Options] - renderer, takeaways and clipboard hooks
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"walkthrough/internal/detail"
	"walkthrough/internal/fixtures"
	"walkthrough/internal/output"
	"walkthrough/internal/scenario"
	"walkthrough/internal/sequencer"
)

// Options configures a [Model].
type Options struct {
	// Renderer renders views. Defaults to an 80 column renderer.
	Renderer *output.Renderer

	// Takeaways are listed on the completion screen.
	Takeaways []fixtures.Takeaway

	// Clipboard writes text to the system clipboard. Defaults to clipboard.WriteAll.
	Clipboard func(string) error
}

// copyResultMsg reports the outcome of a clipboard write.
type copyResultMsg struct {
	err error
}

// Model is the Bubble Tea model for one session.
type Model struct {
	ctrl      *scenario.Controller
	renderer  *output.Renderer
	takeaways []fixtures.Takeaway
	writeClip func(string) error

	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	ready    bool

	complete bool
	status   string
}

// New creates a [Model] driving ctrl.
func New(ctrl *scenario.Controller, opts Options) Model {
	if opts.Renderer == nil {
		opts.Renderer = output.NewRenderer(output.DefaultWidth)
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	return Model{
		ctrl:      ctrl,
		renderer:  opts.Renderer,
		takeaways: opts.Takeaways,
		writeClip: opts.Clipboard,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		viewport:  viewport.New(0, 0),
	}
}

// Controller returns the driven controller.
func (m Model) Controller() *scenario.Controller {
	return m.ctrl
}

// Complete reports whether the completion screen is shown.
func (m Model) Complete() bool {
	return m.complete
}

// Status returns the transient status line.
func (m Model) Status() string {
	return m.status
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-footerHeight, 1)
		m.ready = true
		m.refresh()
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Copy failed: %v", msg.err)
		} else {
			m.status = "Details copied to clipboard"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.complete {
		if key.Matches(msg, m.keys.Previous) {
			m.complete = false
			m.refresh()
		}
		return m, nil
	}

	m.status = ""
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Next):
		if m.ctrl.IsTerminal() {
			m.ctrl.DismissDetail()
			m.complete = true
		} else {
			m.ctrl.Advance()
		}

	case key.Matches(msg, m.keys.Previous):
		m.ctrl.Retreat()

	case key.Matches(msg, m.keys.Jump):
		n, _ := strconv.Atoi(msg.String())
		if err := m.ctrl.JumpTo(n - 1); err != nil {
			m.status = describe(err)
		}

	case key.Matches(msg, m.keys.Detail):
		if _, err := m.ctrl.RequestDetail(m.ctrl.CurrentIndex()); err != nil {
			m.status = describe(err)
		}

	case key.Matches(msg, m.keys.Dismiss):
		m.ctrl.DismissDetail()

	case key.Matches(msg, m.keys.Pipeline):
		m.ctrl.TogglePipeline()

	case key.Matches(msg, m.keys.Security):
		m.ctrl.ToggleSecurity()

	case key.Matches(msg, m.keys.Copy):
		payload, ok := m.ctrl.Detail()
		if !ok {
			m.status = "Open details first"
			break
		}
		cmd = m.copyCmd(DetailText(payload))

	default:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, cmd
}

func (m Model) copyCmd(text string) tea.Cmd {
	write := m.writeClip
	return func() tea.Msg {
		return copyResultMsg{err: write(text)}
	}
}

// refresh re-renders the body into the viewport.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.body())
	m.viewport.GotoTop()
}

func (m Model) body() string {
	if m.complete {
		return m.renderer.Takeaways(m.takeaways)
	}
	return m.renderer.View(m.ctrl.Snapshot())
}

// footerHeight is the number of rows reserved below the viewport.
const footerHeight = 3

var statusStyle = lipgloss.NewStyle().Foreground(output.DefaultTheme.Warning)

// View implements tea.Model.
func (m Model) View() string {
	content := m.body()
	if m.ready {
		content = m.viewport.View()
	}

	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func describe(err error) string {
	switch {
	case errors.Is(err, sequencer.ErrOutOfRange):
		return "No such stage"
	case errors.Is(err, scenario.ErrStageNotReached):
		return "That stage has not been reached yet"
	default:
		return err.Error()
	}
}

// DetailText formats a detail payload as plain text for the clipboard.
func DetailText(p detail.Payload) string {
	var b strings.Builder
	b.WriteString(p.Title)
	b.WriteString("\n")
	for _, point := range p.Points {
		b.WriteString("- ")
		b.WriteString(point)
		b.WriteString("\n")
	}
	if p.TechnicalNote != "" {
		b.WriteString("\n")
		b.WriteString(p.TechnicalNote)
		b.WriteString("\n")
	}
	if p.Illustration.IsNone() {
		b.WriteString("\n")
		b.WriteString(output.NoImageText)
	} else {
		fmt.Fprintf(&b, "\nImage: %s (%s)", p.Illustration.Alt, p.Illustration.Src)
	}
	return b.String()
}
