package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walkthrough/internal/pipeline"
)

func TestSnapshot_PipelineHidden(t *testing.T) {
	c := newController(t, Options{ShowSecurity: true})

	vm := c.Snapshot()
	assert.Equal(t, "email", vm.ScenarioID)
	assert.Equal(t, "Email Assistant", vm.Title)
	assert.Len(t, vm.Transcript, 2)
	assert.False(t, vm.PipelineVisible)
	assert.Nil(t, vm.Stages)
	assert.Empty(t, vm.Threats, "security overlay is nested in the pipeline view")
	assert.Equal(t, "parse", vm.Current.ID)
	assert.Equal(t, 6, vm.StageCount)
}

func TestSnapshot_PipelineShown(t *testing.T) {
	c := newController(t, Options{ShowPipeline: true, ShowSecurity: true})
	require.NoError(t, c.JumpTo(1))

	vm := c.Snapshot()
	require.Len(t, vm.Stages, 6)

	assert.Equal(t, pipeline.StatusComplete, vm.Stages[0].Status)
	assert.Equal(t, "summary of parse", vm.Stages[0].Summary)
	assert.Equal(t, pipeline.StatusActive, vm.Stages[1].Status)
	assert.Equal(t, "summary of context", vm.Stages[1].Summary)
	for _, sv := range vm.Stages[2:] {
		assert.Equal(t, pipeline.StatusPending, sv.Status)
		assert.Empty(t, sv.Summary, "pending stage %s must not reveal its summary", sv.ID)
	}

	require.Len(t, vm.Threats, 1)
	assert.Equal(t, "Data Leakage", vm.Threats[0].Title)
	assert.Nil(t, vm.Detail)
	assert.False(t, vm.Terminal)
}

func TestSnapshot_DetailIsCopied(t *testing.T) {
	c := newController(t, Options{})
	_, err := c.RequestDetail(0)
	require.NoError(t, err)

	vm := c.Snapshot()
	require.NotNil(t, vm.Detail)
	vm.Detail.Points[0] = "mutated"

	d, _ := c.Detail()
	assert.Equal(t, "parse point", d.Points[0])
}

func TestSnapshot_Terminal(t *testing.T) {
	c := newController(t, Options{})
	require.NoError(t, c.JumpTo(5))
	assert.True(t, c.Snapshot().Terminal)
}
