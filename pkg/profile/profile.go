// Package profile holds camera profiles: named binding tables that map
// pointer, wheel, click and key shortcuts to actions, together with the
// interaction mode that decides which actions are legal.
package profile

import (
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/errs"
)

// Profile is one control scheme. Binding calls overwrite existing bindings
// and report whether they did.
type Profile struct {
	name string
	mode Mode

	cameraMouse map[MouseShortcut]MouseAction
	frameMouse  map[MouseShortcut]MouseAction
	cameraWheel map[Modifier]MouseAction
	frameWheel  map[Modifier]MouseAction
	clicks      map[ClickShortcut]ClickAction
	keys        map[KeyShortcut]KeyboardAction
}

// New returns a profile with the default bindings of mode.
func New(name string, mode Mode) *Profile {
	p := NewEmpty(name, mode)
	p.applyDefaults()
	return p
}

// NewEmpty returns a profile without any binding.
func NewEmpty(name string, mode Mode) *Profile {
	return &Profile{
		name:        name,
		mode:        mode,
		cameraMouse: make(map[MouseShortcut]MouseAction),
		frameMouse:  make(map[MouseShortcut]MouseAction),
		cameraWheel: make(map[Modifier]MouseAction),
		frameWheel:  make(map[Modifier]MouseAction),
		clicks:      make(map[ClickShortcut]ClickAction),
		keys:        make(map[KeyShortcut]KeyboardAction),
	}
}

// Name returns the profile name.
func (p *Profile) Name() string { return p.name }

// Mode returns the profile mode.
func (p *Profile) Mode() Mode { return p.mode }

// Reset replaces every binding with the defaults of the mode.
func (p *Profile) Reset() {
	p.Clear()
	p.applyDefaults()
}

// Clear removes every binding.
func (p *Profile) Clear() {
	clear(p.cameraMouse)
	clear(p.frameMouse)
	clear(p.cameraWheel)
	clear(p.frameWheel)
	clear(p.clicks)
	clear(p.keys)
}

func (p *Profile) illegal(table string, shortcut, action any) error {
	return errs.Configuration.New("%s action %v is not allowed in %s profile %q (shortcut %v)",
		table, action, p.mode, p.name, shortcut)
}

func (p *Profile) logBind(table string, shortcut, action any, replaced bool) {
	l := logger.Named("profile")
	fields := []zap.Field{
		zap.String("profile", p.name),
		zap.String("table", table),
		zap.Any("shortcut", shortcut),
		zap.Any("action", action),
	}
	if replaced {
		l.Debug("binding replaced", fields...)
		return
	}
	l.Debug("binding added", fields...)
}

// BindCameraMouse binds a drag shortcut to a camera action.
func (p *Profile) BindCameraMouse(s MouseShortcut, a MouseAction) (replaced bool, err error) {
	if !p.mode.AllowsCameraMouse(a) {
		return false, p.illegal("camera mouse", s, a)
	}
	return bind(p, "camera mouse", p.cameraMouse, s, a), nil
}

// BindFrameMouse binds a drag shortcut to an interactive frame action.
func (p *Profile) BindFrameMouse(s MouseShortcut, a MouseAction) (replaced bool, err error) {
	if !p.mode.AllowsFrameMouse(a) {
		return false, p.illegal("frame mouse", s, a)
	}
	return bind(p, "frame mouse", p.frameMouse, s, a), nil
}

// BindCameraWheel binds the wheel, with the given modifiers, to a camera action.
func (p *Profile) BindCameraWheel(mods Modifier, a MouseAction) (replaced bool, err error) {
	if !p.mode.AllowsCameraWheel(a) {
		return false, p.illegal("camera wheel", mods, a)
	}
	return bind(p, "camera wheel", p.cameraWheel, mods, a), nil
}

// BindFrameWheel binds the wheel, with the given modifiers, to a frame action.
func (p *Profile) BindFrameWheel(mods Modifier, a MouseAction) (replaced bool, err error) {
	if !p.mode.AllowsFrameWheel(a) {
		return false, p.illegal("frame wheel", mods, a)
	}
	return bind(p, "frame wheel", p.frameWheel, mods, a), nil
}

// BindClick binds a click shortcut to a click action.
func (p *Profile) BindClick(s ClickShortcut, a ClickAction) (replaced bool, err error) {
	if s.Clicks < 1 {
		return false, errs.Configuration.New("click shortcut %v needs at least one click", s)
	}
	if !p.mode.AllowsClick(a) {
		return false, p.illegal("click", s, a)
	}
	return bind(p, "click", p.clicks, s, a), nil
}

// BindKey binds a key shortcut to a keyboard action. Path actions must be
// bound to digit keys; the digit is the path id.
func (p *Profile) BindKey(s KeyShortcut, a KeyboardAction) (replaced bool, err error) {
	if !p.mode.AllowsKey(a) {
		return false, p.illegal("key", s, a)
	}
	if _, ok := s.Digit(); a.IsPathAction() && !ok {
		return false, errs.Configuration.New("path action %v needs a digit key, got %v", a, s)
	}
	return bind(p, "key", p.keys, s, a), nil
}

func bind[K comparable, A comparable](p *Profile, table string, m map[K]A, k K, a A) bool {
	_, replaced := m[k]
	m[k] = a
	p.logBind(table, k, a, replaced)
	return replaced
}

// UnbindCameraMouse removes a camera drag binding and reports whether it existed.
func (p *Profile) UnbindCameraMouse(s MouseShortcut) bool { return unbind(p.cameraMouse, s) }

// UnbindFrameMouse removes a frame drag binding and reports whether it existed.
func (p *Profile) UnbindFrameMouse(s MouseShortcut) bool { return unbind(p.frameMouse, s) }

// UnbindCameraWheel removes a camera wheel binding and reports whether it existed.
func (p *Profile) UnbindCameraWheel(mods Modifier) bool { return unbind(p.cameraWheel, mods) }

// UnbindFrameWheel removes a frame wheel binding and reports whether it existed.
func (p *Profile) UnbindFrameWheel(mods Modifier) bool { return unbind(p.frameWheel, mods) }

// UnbindClick removes a click binding and reports whether it existed.
func (p *Profile) UnbindClick(s ClickShortcut) bool { return unbind(p.clicks, s) }

// UnbindKey removes a key binding and reports whether it existed.
func (p *Profile) UnbindKey(s KeyShortcut) bool { return unbind(p.keys, s) }

func unbind[K comparable, A any](m map[K]A, k K) bool {
	_, ok := m[k]
	delete(m, k)
	return ok
}

// CameraMouseAction returns the camera action bound to s, or NoAction.
func (p *Profile) CameraMouseAction(s MouseShortcut) MouseAction { return p.cameraMouse[s] }

// FrameMouseAction returns the frame action bound to s, or NoAction.
func (p *Profile) FrameMouseAction(s MouseShortcut) MouseAction { return p.frameMouse[s] }

// CameraWheelAction returns the camera wheel action for mods, or NoAction.
func (p *Profile) CameraWheelAction(mods Modifier) MouseAction { return p.cameraWheel[mods] }

// FrameWheelAction returns the frame wheel action for mods, or NoAction.
func (p *Profile) FrameWheelAction(mods Modifier) MouseAction { return p.frameWheel[mods] }

// ClickAction returns the action bound to s, or ClickNone.
func (p *Profile) ClickAction(s ClickShortcut) ClickAction { return p.clicks[s] }

// KeyAction returns the action bound to s, or KeyNone.
func (p *Profile) KeyAction(s KeyShortcut) KeyboardAction { return p.keys[s] }

// IsCameraMouseBound reports whether any shortcut is bound to a on the camera.
func (p *Profile) IsCameraMouseBound(a MouseAction) bool {
	for _, bound := range p.cameraMouse {
		if bound == a {
			return true
		}
	}
	return false
}

// CameraMouseBindings returns a copy of the camera drag table.
func (p *Profile) CameraMouseBindings() map[MouseShortcut]MouseAction { return copyMap(p.cameraMouse) }

// FrameMouseBindings returns a copy of the frame drag table.
func (p *Profile) FrameMouseBindings() map[MouseShortcut]MouseAction { return copyMap(p.frameMouse) }

// CameraWheelBindings returns a copy of the camera wheel table.
func (p *Profile) CameraWheelBindings() map[Modifier]MouseAction { return copyMap(p.cameraWheel) }

// FrameWheelBindings returns a copy of the frame wheel table.
func (p *Profile) FrameWheelBindings() map[Modifier]MouseAction { return copyMap(p.frameWheel) }

// ClickBindings returns a copy of the click table.
func (p *Profile) ClickBindings() map[ClickShortcut]ClickAction { return copyMap(p.clicks) }

// KeyBindings returns a copy of the key table.
func (p *Profile) KeyBindings() map[KeyShortcut]KeyboardAction { return copyMap(p.keys) }

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
