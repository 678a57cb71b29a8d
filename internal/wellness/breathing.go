package wellness

import (
	"context"
	"time"
)

// Phase is one step of the breathing cycle.
type Phase string

const (
	PhaseInhale Phase = "inhale"
	PhaseHold   Phase = "hold"
	PhaseExhale Phase = "exhale"
)

// Cycle is the 4-7-8 pattern, in order.
var Cycle = []struct {
	Phase   Phase
	Seconds int
}{
	{PhaseInhale, 4},
	{PhaseHold, 7},
	{PhaseExhale, 8},
}

var instructions = map[Phase]string{
	PhaseInhale: "Breathe in slowly...",
	PhaseHold:   "Hold your breath...",
	PhaseExhale: "Breathe out slowly...",
}

func Instruction(p Phase) string {
	return instructions[p]
}

// Tick is one second of the exercise. Remaining counts down to 1.
type Tick struct {
	Cycle     int
	Phase     Phase
	Remaining int
}

// Breathing runs a number of 4-7-8 cycles, calling OnTick once per second.
type Breathing struct {
	Cycles int
	OnTick func(Tick)
	After  func(time.Duration) <-chan time.Time
}

// Run blocks until all cycles finish or ctx is done. Cycles <= 0 runs until
// ctx is done.
func (b *Breathing) Run(ctx context.Context) error {
	after := b.After
	if after == nil {
		after = time.After
	}

	for n := 1; b.Cycles <= 0 || n <= b.Cycles; n++ {
		for _, step := range Cycle {
			for left := step.Seconds; left > 0; left-- {
				if b.OnTick != nil {
					b.OnTick(Tick{Cycle: n, Phase: step.Phase, Remaining: left})
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-after(time.Second):
				}
			}
		}
	}
	return nil
}
