// Package input turns SDL2 events into scene pointer and key events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/scenekit/pkg/profile"
)

// EventType classifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event is a processed input event. Pointer positions are in window
// coordinates with y pointing down.
type Event struct {
	Type   EventType
	Key    string
	Mods   profile.Modifier
	Width  int
	Height int
	MouseX float32
	MouseY float32
	Button profile.Button
	Clicks int
	Wheel  float32
}

// Input polls SDL and keeps the events of the last Update.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events. It returns true when the window was closed.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			name, ok := keyName(e.Keysym.Sym)
			if !ok {
				continue
			}
			i.events = append(i.events, Event{
				Type: EventKeyDown,
				Key:  name,
				Mods: modifiers(e.Keysym.Mod),
			})

		case *sdl.MouseMotionEvent:
			i.events = append(i.events, Event{
				Type:   EventMouseMove,
				MouseX: float32(e.X),
				MouseY: float32(e.Y),
				Mods:   modifiers(uint16(sdl.GetModState())),
			})

		case *sdl.MouseButtonEvent:
			ev := Event{
				MouseX: float32(e.X),
				MouseY: float32(e.Y),
				Button: button(e.Button),
				Clicks: int(e.Clicks),
				Mods:   modifiers(uint16(sdl.GetModState())),
			}
			if ev.Button == profile.ButtonNone {
				continue
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				ev.Type = EventMouseDown
			} else {
				ev.Type = EventMouseUp
			}
			i.events = append(i.events, ev)

		case *sdl.MouseWheelEvent:
			delta := float32(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				delta = -delta
			}
			if delta == 0 {
				continue
			}
			i.events = append(i.events, Event{
				Type:  EventMouseWheel,
				Wheel: delta,
				Mods:  modifiers(uint16(sdl.GetModState())),
			})
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

func button(b uint8) profile.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return profile.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return profile.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return profile.ButtonRight
	default:
		return profile.ButtonNone
	}
}

func modifiers(mod uint16) profile.Modifier {
	var m profile.Modifier
	if mod&uint16(sdl.KMOD_SHIFT) != 0 {
		m |= profile.ModShift
	}
	if mod&uint16(sdl.KMOD_CTRL) != 0 {
		m |= profile.ModCtrl
	}
	if mod&uint16(sdl.KMOD_ALT) != 0 {
		m |= profile.ModAlt
	}
	if mod&uint16(sdl.KMOD_GUI) != 0 {
		m |= profile.ModMeta
	}
	return m
}

var namedKeys = map[sdl.Keycode]string{
	sdl.K_LEFT:      "ARROW_LEFT",
	sdl.K_RIGHT:     "ARROW_RIGHT",
	sdl.K_UP:        "ARROW_UP",
	sdl.K_DOWN:      "ARROW_DOWN",
	sdl.K_SPACE:     "SPACE",
	sdl.K_RETURN:    "ENTER",
	sdl.K_ESCAPE:    "ESCAPE",
	sdl.K_TAB:       "TAB",
	sdl.K_BACKSPACE: "BACKSPACE",
	sdl.K_DELETE:    "DELETE",
	// "+" shares the "=" key on most layouts
	sdl.K_EQUALS:   "PLUS",
	sdl.K_PLUS:     "PLUS",
	sdl.K_KP_PLUS:  "PLUS",
	sdl.K_MINUS:    "MINUS",
	sdl.K_KP_MINUS: "MINUS",
	sdl.K_F1:       "F1",
	sdl.K_F2:       "F2",
	sdl.K_F3:       "F3",
	sdl.K_F4:       "F4",
	sdl.K_F5:       "F5",
	sdl.K_F6:       "F6",
	sdl.K_F7:       "F7",
	sdl.K_F8:       "F8",
	sdl.K_F9:       "F9",
	sdl.K_F10:      "F10",
	sdl.K_F11:      "F11",
	sdl.K_F12:      "F12",
}

// keyName returns the profile name of a key: a named key or a single
// printable character.
func keyName(k sdl.Keycode) (string, bool) {
	if name, ok := namedKeys[k]; ok {
		return name, true
	}
	if k > ' ' && k < 0x7f {
		return string(rune(k)), true
	}
	return "", false
}
