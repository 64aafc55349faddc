package input

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/profile"
)

// clickSlop is how far, in pixels, the pointer may travel between press
// and release for the release to count as a click.
const clickSlop = 3

// Handler receives routed pointer and key events. *scene.Scene implements
// it.
type Handler interface {
	Move(x, y float32)
	Press(b profile.Button, mods profile.Modifier, x, y float32) profile.MouseAction
	Drag(x, y float32)
	Release(x, y float32)
	Click(b profile.Button, mods profile.Modifier, clicks int, x, y float32) profile.ClickAction
	Wheel(mods profile.Modifier, delta float32) profile.MouseAction
	Key(name string, mods profile.Modifier) (profile.KeyboardAction, error)
}

// Dispatcher tracks the button state across events and turns button
// presses into drags, releases and clicks.
type Dispatcher struct {
	h       Handler
	pressed profile.Button
	pressX  float32
	pressY  float32
	moved   bool
}

// NewDispatcher returns a dispatcher routing to h.
func NewDispatcher(h Handler) *Dispatcher {
	return &Dispatcher{h: h}
}

// Dispatch routes events to the handler. Window and quit events are left
// to the caller.
func (d *Dispatcher) Dispatch(events []Event) {
	for _, e := range events {
		d.Handle(e)
	}
}

// Handle routes a single event.
func (d *Dispatcher) Handle(e Event) {
	switch e.Type {
	case EventMouseMove:
		if d.pressed == profile.ButtonNone {
			d.h.Move(e.MouseX, e.MouseY)
			return
		}
		if math32.Abs(e.MouseX-d.pressX) > clickSlop || math32.Abs(e.MouseY-d.pressY) > clickSlop {
			d.moved = true
		}
		d.h.Drag(e.MouseX, e.MouseY)

	case EventMouseDown:
		// a second button ends the gesture of the first
		if d.pressed != profile.ButtonNone {
			d.h.Release(e.MouseX, e.MouseY)
		}
		d.pressed = e.Button
		d.pressX, d.pressY = e.MouseX, e.MouseY
		d.moved = false
		a := d.h.Press(e.Button, e.Mods, e.MouseX, e.MouseY)
		logger.Named("input").Debug("press",
			zap.Stringer("button", e.Button), zap.Stringer("mods", e.Mods), zap.Stringer("action", a))

	case EventMouseUp:
		if e.Button != d.pressed {
			return
		}
		d.pressed = profile.ButtonNone
		d.h.Release(e.MouseX, e.MouseY)
		if !d.moved && e.Clicks > 0 {
			d.h.Click(e.Button, e.Mods, e.Clicks, e.MouseX, e.MouseY)
		}

	case EventMouseWheel:
		d.h.Wheel(e.Mods, e.Wheel)

	case EventKeyDown:
		a, err := d.h.Key(e.Key, e.Mods)
		if err != nil {
			logger.Named("input").Debug("key action failed",
				zap.String("key", e.Key), zap.Stringer("action", a), zap.Error(err))
		}
	}
}
