package sim

import "github.com/plus3/orrery/ecs"

// FocusState is the index of the tracked body. Count mirrors the registry
// size and is only used for wrapping.
type FocusState struct {
	Index int
	Count int
}

// Advance moves focus to the next body, wrapping to the first.
func (f *FocusState) Advance() {
	if f.Count == 0 {
		return
	}
	f.Index = (f.Index + 1) % f.Count
}

// Retreat moves focus to the previous body, wrapping to the last.
func (f *FocusState) Retreat() {
	if f.Count == 0 {
		return
	}
	f.Index = (f.Index - 1 + f.Count) % f.Count
}

// FocusCommand is one key event.
type FocusCommand int

const (
	FocusAdvance FocusCommand = iota
	FocusRetreat
)

// FocusInput queues key events between ticks.
type FocusInput struct {
	Pending []FocusCommand
}

// Push queues cmd. Every pushed command is applied exactly once.
func (in *FocusInput) Push(cmd FocusCommand) {
	in.Pending = append(in.Pending, cmd)
}

// FocusInputSystem applies queued focus commands in arrival order.
type FocusInputSystem struct {
	Input ecs.Singleton[FocusInput]
	Focus ecs.Singleton[FocusState]
}

func (s *FocusInputSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.Get()
	focus := s.Focus.Get()
	for _, cmd := range in.Pending {
		switch cmd {
		case FocusAdvance:
			focus.Advance()
		case FocusRetreat:
			focus.Retreat()
		}
	}
	in.Pending = in.Pending[:0]
}
