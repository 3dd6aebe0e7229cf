package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walkthrough/internal/sequencer"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{in: "next", want: Action{Kind: ActionNext}},
		{in: " Previous ", want: Action{Kind: ActionPrevious}},
		{in: "prev", want: Action{Kind: ActionPrevious}},
		{in: "back", want: Action{Kind: ActionPrevious}},
		{in: "goto:3", want: Action{Kind: ActionGoTo, Index: 3}},
		{in: "goto:-1", want: Action{Kind: ActionGoTo, Index: -1}},
		{in: "detail:0", want: Action{Kind: ActionDetail}},
		{in: "dismiss", want: Action{Kind: ActionDismiss}},
		{in: "hood", want: Action{Kind: ActionTogglePipeline}},
		{in: "security", want: Action{Kind: ActionToggleSecurity}},
		{in: "goto", wantErr: true},
		{in: "goto:x", wantErr: true},
		{in: "next:1", wantErr: true},
		{in: "jump:2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownAction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseActions(t *testing.T) {
	got, err := ParseActions("next, next,,detail:1,dismiss")
	require.NoError(t, err)
	assert.Equal(t, []Action{
		{Kind: ActionNext},
		{Kind: ActionNext},
		{Kind: ActionDetail, Index: 1},
		{Kind: ActionDismiss},
	}, got)

	_, err = ParseActions("next,bogus")
	assert.ErrorIs(t, err, ErrUnknownAction)

	none, err := ParseActions("")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "next", Action{Kind: ActionNext}.String())
	assert.Equal(t, "goto:4", Action{Kind: ActionGoTo, Index: 4}.String())
}

func TestDispatch(t *testing.T) {
	c := newController(t, Options{})

	actions, err := ParseActions("next,next,detail:1,hood,security")
	require.NoError(t, err)
	for _, a := range actions {
		require.NoError(t, c.Dispatch(a), a.String())
	}

	assert.Equal(t, 2, c.CurrentIndex())
	assert.True(t, c.PipelineVisible())
	assert.True(t, c.SecurityVisible())
	d, open := c.Detail()
	require.True(t, open)
	assert.Equal(t, "context", d.StageID)

	require.NoError(t, c.Dispatch(Action{Kind: ActionDismiss}))
	_, open = c.Detail()
	assert.False(t, open)

	assert.ErrorIs(t, c.Dispatch(Action{Kind: ActionDetail, Index: 4}), ErrStageNotReached)
	assert.ErrorIs(t, c.Dispatch(Action{Kind: ActionGoTo, Index: 6}), sequencer.ErrOutOfRange)
	assert.ErrorIs(t, c.Dispatch(Action{Kind: "teleport"}), ErrUnknownAction)

	require.NoError(t, c.Dispatch(Action{Kind: ActionPrevious}))
	assert.Equal(t, 1, c.CurrentIndex())
}
