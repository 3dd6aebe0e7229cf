package scenario

import (
	"walkthrough/internal/detail"
	"walkthrough/internal/pipeline"
	"walkthrough/internal/threat"
)

// StageView is the presentable state of one stage.
type StageView struct {
	Index            int
	ID               string
	Title            string
	ShortDescription string
	Status           pipeline.Status

	// Summary is empty for pending stages.
	Summary string
}

// ViewModel is a snapshot of a session for renderers. It shares no mutable
// state with the controller.
type ViewModel struct {
	SessionID   string
	ScenarioID  string
	Title       string
	Description string
	Transcript  []Message

	CurrentIndex int
	StageCount   int
	Current      StageView
	Terminal     bool

	PipelineVisible bool
	SecurityVisible bool

	// Stages is nil while the pipeline view is hidden.
	Stages []StageView

	// Threats are the visible threats of the current stage. The security
	// overlay sits inside the pipeline view, so this is empty while the
	// pipeline is hidden even if security is enabled.
	Threats []threat.Record

	// Detail is the open detail view, nil when none is open.
	Detail *detail.Payload
}

// Snapshot computes the current [ViewModel].
func (c *Controller) Snapshot() ViewModel {
	current := c.seq.Current()
	vm := ViewModel{
		SessionID:       c.id,
		ScenarioID:      c.scenario.ID,
		Title:           c.scenario.Title,
		Description:     c.scenario.Description,
		Transcript:      append([]Message(nil), c.scenario.Transcript...),
		CurrentIndex:    current,
		StageCount:      c.seq.Len(),
		Current:         c.stageView(current),
		Terminal:        c.seq.IsTerminal(),
		PipelineVisible: c.showPipeline,
		SecurityVisible: c.showSecurity,
		Threats:         []threat.Record{},
	}

	if c.showPipeline {
		vm.Stages = make([]StageView, c.seq.Len())
		for i := range vm.Stages {
			vm.Stages[i] = c.stageView(i)
		}
		vm.Threats = c.VisibleThreats(current)
	}

	if c.detail != nil {
		d := *c.detail
		d.Points = append([]string{}, c.detail.Points...)
		vm.Detail = &d
	}

	return vm
}

func (c *Controller) stageView(index int) StageView {
	stage, _ := c.scenario.Catalog.At(index)
	status := c.seq.Status(index)
	sv := StageView{
		Index:            index,
		ID:               stage.ID,
		Title:            stage.Title,
		ShortDescription: stage.ShortDescription,
		Status:           status,
	}
	if status.Reached() {
		sv.Summary = stage.Summary
	}
	return sv
}
