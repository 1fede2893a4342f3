// Package activity runs the stack of screens: one active screen at a time,
// advanced by discrete ticks, drawing only while it holds the render gate.
package activity

import (
	"context"

	"github.com/rook-computer/inkpoint/internal/input"
	"github.com/rook-computer/inkpoint/internal/render"
)

// Activity is one navigable screen.
type Activity interface {
	Name() string
	// Start enters the screen. State is initialized here; nothing survives
	// from a previous activation.
	Start(ctx context.Context) error
	Stop() error
	// Loop handles the input of one tick.
	Loop(ctx context.Context)
	// Render draws the screen. The frame is committed when lock is released.
	Render(lock *render.Lock)
	// TakeUpdate reports and clears a pending redraw request.
	TakeUpdate() bool
}

// Host is what a running activity may ask of the manager.
type Host interface {
	Gate() *render.Gate
	Input() *input.Mapper
	Push(a Activity)
	Back()
	Exit(err error)
}

// Base carries the redraw request flag. Embed it in activities.
type Base struct {
	dirty bool
}

// RequestUpdate asks for a redraw on the next render pass.
func (b *Base) RequestUpdate() { b.dirty = true }

func (b *Base) TakeUpdate() bool {
	dirty := b.dirty
	b.dirty = false
	return dirty
}
