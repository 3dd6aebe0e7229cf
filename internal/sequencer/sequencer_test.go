package sequencer

import (
	"errors"
	"testing"

	"walkthrough/internal/pipeline"
)

func mustNew(t *testing.T, n int) *Sequencer {
	t.Helper()
	s, err := New(n)
	if err != nil {
		t.Fatalf("New(%d) err = %v", n, err)
	}
	return s
}

func TestNew(t *testing.T) {
	s := mustNew(t, 6)
	if s.Current() != 0 {
		t.Errorf("Current() = %d, want 0", s.Current())
	}
	if s.Len() != 6 {
		t.Errorf("Len() = %d, want 6", s.Len())
	}

	for _, n := range []int{0, -1} {
		if _, err := New(n); !errors.Is(err, ErrNoStages) {
			t.Errorf("New(%d) err = %v, want ErrNoStages", n, err)
		}
	}
}

func TestStatus_ExhaustiveAndExclusive(t *testing.T) {
	s := mustNew(t, 6)
	for current := 0; current < 6; current++ {
		if err := s.GoTo(current); err != nil {
			t.Fatalf("GoTo(%d) err = %v", current, err)
		}
		for i := 0; i < 6; i++ {
			got := s.Status(i)
			var want pipeline.Status
			switch {
			case i < current:
				want = pipeline.StatusComplete
			case i == current:
				want = pipeline.StatusActive
			default:
				want = pipeline.StatusPending
			}
			if got != want {
				t.Errorf("current=%d Status(%d) = %q, want %q", current, i, got, want)
			}
		}
	}
}

func TestGoTo_OutOfRange(t *testing.T) {
	s := mustNew(t, 6)
	if err := s.GoTo(3); err != nil {
		t.Fatalf("GoTo(3) err = %v", err)
	}

	for _, target := range []int{-1, 6, 100} {
		err := s.GoTo(target)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("GoTo(%d) err = %v, want ErrOutOfRange", target, err)
		}
		if s.Current() != 3 {
			t.Errorf("GoTo(%d) changed Current() to %d", target, s.Current())
		}
	}
}

func TestNextPrevious_RoundTrip(t *testing.T) {
	s := mustNew(t, 6)
	for start := 1; start < 5; start++ {
		if err := s.GoTo(start); err != nil {
			t.Fatalf("GoTo(%d) err = %v", start, err)
		}
		s.Next()
		s.Previous()
		if s.Current() != start {
			t.Errorf("next/previous from %d ended at %d", start, s.Current())
		}
	}
}

func TestNextPrevious_Boundaries(t *testing.T) {
	s := mustNew(t, 3)

	s.Previous()
	if s.Current() != 0 {
		t.Errorf("Previous() at 0 moved to %d", s.Current())
	}

	if err := s.GoTo(2); err != nil {
		t.Fatalf("GoTo(2) err = %v", err)
	}
	s.Next()
	s.Next()
	if s.Current() != 2 {
		t.Errorf("Next() at last stage moved to %d", s.Current())
	}
	if !s.IsTerminal() {
		t.Error("IsTerminal() = false at last stage")
	}
}

func TestSingleStagePipeline(t *testing.T) {
	s := mustNew(t, 1)
	if !s.IsTerminal() {
		t.Error("single stage should be terminal from the start")
	}
	s.Next()
	s.Previous()
	if s.Current() != 0 {
		t.Errorf("Current() = %d, want 0", s.Current())
	}
}

func TestAdvanceToTerminal(t *testing.T) {
	s := mustNew(t, 6)
	for i := 0; i < 5; i++ {
		if s.IsTerminal() {
			t.Fatalf("terminal too early at %d", s.Current())
		}
		s.Next()
	}
	if s.Current() != 5 || !s.IsTerminal() {
		t.Fatalf("after five Next() Current() = %d terminal = %v", s.Current(), s.IsTerminal())
	}
	for i := 0; i < 5; i++ {
		if s.Status(i) != pipeline.StatusComplete {
			t.Errorf("Status(%d) = %q, want complete", i, s.Status(i))
		}
	}
	if s.Status(5) != pipeline.StatusActive {
		t.Errorf("Status(5) = %q, want active", s.Status(5))
	}
}

func TestChangeCallback(t *testing.T) {
	s := mustNew(t, 3)

	type move struct{ from, to int }
	var moves []move
	s.SetChangeCallback(func(previous, current int) {
		moves = append(moves, move{previous, current})
	})

	s.Previous()  // edge, no callback
	s.Next()      // 0 -> 1
	_ = s.GoTo(7) // rejected, no callback
	_ = s.GoTo(1) // same index still reported
	s.Next()      // 1 -> 2
	s.Next()      // edge, no callback
	_ = s.GoTo(0) // 2 -> 0

	want := []move{{0, 1}, {1, 1}, {1, 2}, {2, 0}}
	if len(moves) != len(want) {
		t.Fatalf("got %d callbacks %v, want %v", len(moves), moves, want)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("callback %d = %v, want %v", i, moves[i], want[i])
		}
	}

	s.SetChangeCallback(nil)
	s.Next()
	if len(moves) != len(want) {
		t.Error("callback still invoked after removal")
	}
}
