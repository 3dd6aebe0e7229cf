package scenario

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"walkthrough/internal/detail"
	"walkthrough/internal/pipeline"
	"walkthrough/internal/sequencer"
	"walkthrough/internal/threat"
)

// ErrStageNotReached indicates a detail view was requested for a pending stage.
var ErrStageNotReached = errors.New("stage not reached")

// Options configures a new [Controller].
type Options struct {
	// ShowPipeline is the initial "under the hood" visibility.
	ShowPipeline bool

	// ShowSecurity is the initial security-overlay visibility.
	ShowSecurity bool

	// Logger receives debug lines for navigation. Nil discards them.
	Logger *slog.Logger
}

// Controller is one walkthrough session over a [Scenario].
//
// The controller is synchronous and not safe for concurrent use. Every state
// change publishes a fresh [ViewModel] to subscribers registered with
// [Controller.Subscribe].
type Controller struct {
	id       string
	scenario *Scenario
	seq      *sequencer.Sequencer
	logger   *slog.Logger

	showPipeline bool
	showSecurity bool

	// detail is the open detail view, nil when none is open.
	detail *detail.Payload

	subscribers []func(ViewModel)
}

// NewController starts a session over s positioned at the first stage.
func NewController(s *Scenario, opts Options) (*Controller, error) {
	if s == nil || s.Catalog == nil || s.Threats == nil {
		return nil, fmt.Errorf("failed to start session: scenario is not initialized")
	}

	seq, err := sequencer.New(s.Catalog.Len())
	if err != nil {
		return nil, fmt.Errorf("failed to start session for %q: %w", s.ID, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Controller{
		id:           uuid.NewString(),
		scenario:     s,
		seq:          seq,
		showPipeline: opts.ShowPipeline,
		showSecurity: opts.ShowSecurity,
	}
	c.logger = logger.With("session", c.id, "scenario", s.ID)
	seq.SetChangeCallback(c.onMove)

	c.logger.Debug("session started", "stages", s.Catalog.Len(), "threats", s.Threats.Len())
	return c, nil
}

// SessionID returns the unique id of this session.
func (c *Controller) SessionID() string {
	return c.id
}

// Scenario returns the scenario this session runs.
func (c *Controller) Scenario() *Scenario {
	return c.scenario
}

// StageCount returns the number of stages in the pipeline.
func (c *Controller) StageCount() int {
	return c.seq.Len()
}

// CurrentIndex returns the index of the active stage.
func (c *Controller) CurrentIndex() int {
	return c.seq.Current()
}

// CurrentStage returns the active stage.
func (c *Controller) CurrentStage() pipeline.Stage {
	s, _ := c.scenario.Catalog.At(c.seq.Current())
	return s
}

// Status returns the derived status of the stage at index.
func (c *Controller) Status(index int) pipeline.Status {
	return c.seq.Status(index)
}

// IsTerminal reports whether the last stage is active. Hosts use it to offer
// the "scenario complete" transition instead of another advance.
func (c *Controller) IsTerminal() bool {
	return c.seq.IsTerminal()
}

// PipelineVisible reports whether the pipeline view is shown.
func (c *Controller) PipelineVisible() bool {
	return c.showPipeline
}

// SecurityVisible reports whether the security overlay is enabled.
func (c *Controller) SecurityVisible() bool {
	return c.showSecurity
}

// VisibleThreats returns the threats of the stage at index that may be shown.
//
// The result is empty unless the security flag is on and the stage is active
// or complete. Indices outside the pipeline also yield an empty result.
func (c *Controller) VisibleThreats(index int) []threat.Record {
	if !c.showSecurity || !c.seq.InRange(index) || !c.seq.Status(index).Reached() {
		return []threat.Record{}
	}
	stage, _ := c.scenario.Catalog.At(index)
	return c.scenario.Threats.ThreatsFor(stage.ID)
}

// RequestDetail opens the detail view of the stage at index.
//
// Returns an error wrapping [sequencer.ErrOutOfRange] for an invalid index and
// [ErrStageNotReached] for a pending stage. In both cases the open detail view
// is left as it was.
func (c *Controller) RequestDetail(index int) (detail.Payload, error) {
	if !c.seq.InRange(index) {
		return detail.Payload{}, fmt.Errorf("%w: %d not in [0, %d]", sequencer.ErrOutOfRange, index, c.seq.Len()-1)
	}
	stage, _ := c.scenario.Catalog.At(index)
	if !c.seq.Status(index).Reached() {
		return detail.Payload{}, fmt.Errorf("%w: %q is pending", ErrStageNotReached, stage.ID)
	}

	p := detail.Resolve(stage)
	c.detail = &p
	c.logger.Debug("detail opened", "stage", stage.ID)
	c.publish()
	return p, nil
}

// Detail returns the open detail view. The second result is false when none is open.
func (c *Controller) Detail() (detail.Payload, bool) {
	if c.detail == nil {
		return detail.Payload{}, false
	}
	return *c.detail, true
}

// DismissDetail closes the open detail view, if any.
func (c *Controller) DismissDetail() {
	if c.detail == nil {
		return
	}
	c.detail = nil
	c.publish()
}

// Advance moves to the next stage and closes the detail view. At the last
// stage the pointer stays put.
func (c *Controller) Advance() {
	c.seq.Next()
	c.DismissDetail()
}

// Retreat moves to the previous stage and closes the detail view. At the
// first stage the pointer stays put.
func (c *Controller) Retreat() {
	c.seq.Previous()
	c.DismissDetail()
}

// JumpTo moves directly to the stage at index and closes the detail view.
//
// Returns an error wrapping [sequencer.ErrOutOfRange] for an invalid index;
// pointer and detail view are then unchanged.
func (c *Controller) JumpTo(index int) error {
	if err := c.seq.GoTo(index); err != nil {
		return err
	}
	c.DismissDetail()
	return nil
}

// SetPipelineVisible shows or hides the pipeline view.
func (c *Controller) SetPipelineVisible(visible bool) {
	if c.showPipeline == visible {
		return
	}
	c.showPipeline = visible
	c.publish()
}

// SetSecurityVisible enables or disables the security overlay.
func (c *Controller) SetSecurityVisible(visible bool) {
	if c.showSecurity == visible {
		return
	}
	c.showSecurity = visible
	c.publish()
}

// TogglePipeline flips the pipeline visibility.
func (c *Controller) TogglePipeline() {
	c.SetPipelineVisible(!c.showPipeline)
}

// ToggleSecurity flips the security overlay.
func (c *Controller) ToggleSecurity() {
	c.SetSecurityVisible(!c.showSecurity)
}

// Subscribe registers fn to receive a snapshot after every state change.
func (c *Controller) Subscribe(fn func(ViewModel)) {
	c.subscribers = append(c.subscribers, fn)
}

// onMove runs after every successful sequencer move.
func (c *Controller) onMove(previous, current int) {
	c.detail = nil
	c.logger.Debug("stage changed", "from", previous, "to", current)
	c.publish()
}

func (c *Controller) publish() {
	if len(c.subscribers) == 0 {
		return
	}
	vm := c.Snapshot()
	for _, fn := range c.subscribers {
		fn(vm)
	}
}
