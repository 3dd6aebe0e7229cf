package scenario

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownAction indicates an action string that cannot be parsed.
var ErrUnknownAction = errors.New("unknown action")

// ActionKind enumerates the navigation requests a host can make.
type ActionKind string

// Action kinds.
const (
	ActionNext           ActionKind = "next"
	ActionPrevious       ActionKind = "previous"
	ActionGoTo           ActionKind = "goto"
	ActionDetail         ActionKind = "detail"
	ActionDismiss        ActionKind = "dismiss"
	ActionTogglePipeline ActionKind = "hood"
	ActionToggleSecurity ActionKind = "security"
)

// Action is one host request. Index is used by [ActionGoTo] and [ActionDetail].
type Action struct {
	Kind  ActionKind
	Index int
}

func (a Action) String() string {
	switch a.Kind {
	case ActionGoTo, ActionDetail:
		return fmt.Sprintf("%s:%d", a.Kind, a.Index)
	default:
		return string(a.Kind)
	}
}

// ParseAction parses one action such as "next", "goto:3" or "detail:0".
// "prev" and "back" are accepted for previous.
func ParseAction(s string) (Action, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(strings.ToLower(s)), ":")

	var kind ActionKind
	switch name {
	case "next":
		kind = ActionNext
	case "previous", "prev", "back":
		kind = ActionPrevious
	case "goto":
		kind = ActionGoTo
	case "detail":
		kind = ActionDetail
	case "dismiss":
		kind = ActionDismiss
	case "hood":
		kind = ActionTogglePipeline
	case "security":
		kind = ActionToggleSecurity
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}

	needsIndex := kind == ActionGoTo || kind == ActionDetail
	if needsIndex != hasArg {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
	if !needsIndex {
		return Action{Kind: kind}, nil
	}

	index, err := strconv.Atoi(arg)
	if err != nil {
		return Action{}, fmt.Errorf("%w: %q: index must be an integer", ErrUnknownAction, s)
	}
	return Action{Kind: kind, Index: index}, nil
}

// ParseActions parses a comma-separated list of actions. Empty entries are skipped.
func ParseActions(s string) ([]Action, error) {
	var actions []Action
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		a, err := ParseAction(part)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// Dispatch applies a to the session.
//
// Navigation and detail errors are returned unchanged so callers can match
// them with [errors.Is].
func (c *Controller) Dispatch(a Action) error {
	switch a.Kind {
	case ActionNext:
		c.Advance()
	case ActionPrevious:
		c.Retreat()
	case ActionGoTo:
		return c.JumpTo(a.Index)
	case ActionDetail:
		_, err := c.RequestDetail(a.Index)
		return err
	case ActionDismiss:
		c.DismissDetail()
	case ActionTogglePipeline:
		c.TogglePipeline()
	case ActionToggleSecurity:
		c.ToggleSecurity()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}
	return nil
}
