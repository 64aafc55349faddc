package scene

import (
	"github.com/Faultbox/scenekit/pkg/interaction"
	"github.com/Faultbox/scenekit/pkg/profile"
)

// thirdPerson reports whether input goes to the avatar.
func (s *Scene) thirdPerson() bool {
	return s.avatar != nil && s.CurrentProfile().Mode() == profile.ThirdPerson
}

// frameTarget returns the frame controller that receives pointer input,
// or nil when input goes to the camera.
func (s *Scene) frameTarget() *interaction.Controller {
	if s.thirdPerson() {
		return s.avatar.Controller
	}
	return s.grabber
}

// Move tracks the pointer while no button is down and updates the grabber.
func (s *Scene) Move(x, y float32) {
	s.pointerX, s.pointerY = x, y
	if s.active != nil || s.thirdPerson() {
		return
	}
	s.grabber = s.grabbers.Grabber(x, y)
}

// Press starts the gesture bound to (b, mods) in the active profile: the
// frame table when a frame grabs the pointer, the camera table otherwise.
// It returns the action started, NoAction when nothing is bound.
func (s *Scene) Press(b profile.Button, mods profile.Modifier, x, y float32) profile.MouseAction {
	s.pointerX, s.pointerY = x, y
	if s.active != nil {
		s.active.Release(x, y)
		s.active = nil
	}

	p := s.CurrentProfile()
	shortcut := profile.MouseShortcut{Button: b, Mods: mods}
	target := s.frameTarget()
	var a profile.MouseAction
	if target != nil {
		a = p.FrameMouseAction(shortcut)
	} else {
		target = s.cameraCtl
		a = p.CameraMouseAction(shortcut)
	}
	if a == profile.NoAction {
		return a
	}
	target.Press(a, x, y)
	s.active = target
	return a
}

// Drag moves the pointer of the gesture in progress.
func (s *Scene) Drag(x, y float32) {
	s.pointerX, s.pointerY = x, y
	if s.active != nil {
		s.active.Drag(x, y)
	}
}

// Release ends the gesture in progress.
func (s *Scene) Release(x, y float32) {
	s.pointerX, s.pointerY = x, y
	if s.active == nil {
		return
	}
	s.active.Release(x, y)
	s.active = nil
}

// Wheel applies the wheel action bound to mods. Positive delta moves
// towards the scene. It returns the action applied.
func (s *Scene) Wheel(mods profile.Modifier, delta float32) profile.MouseAction {
	p := s.CurrentProfile()
	if s.thirdPerson() {
		a := p.FrameWheelAction(mods)
		if a != profile.NoAction {
			s.avatar.Wheel(a, delta)
		}
		return a
	}
	if s.grabber != nil {
		a := p.FrameWheelAction(mods)
		if a != profile.NoAction {
			s.grabber.Wheel(a, delta)
		}
		return a
	}
	a := p.CameraWheelAction(mods)
	if a != profile.NoAction {
		s.cameraCtl.Wheel(a, delta)
	}
	return a
}

// DoubleClick is Click with two clicks.
func (s *Scene) DoubleClick(b profile.Button, mods profile.Modifier, x, y float32) profile.ClickAction {
	return s.Click(b, mods, 2, x, y)
}

// Click runs the click action bound to (b, mods, clicks). It does not
// touch the gesture in progress. It returns the action run.
func (s *Scene) Click(b profile.Button, mods profile.Modifier, clicks int, x, y float32) profile.ClickAction {
	s.pointerX, s.pointerY = x, y
	a := s.CurrentProfile().ClickAction(profile.ClickShortcut{Button: b, Mods: mods, Clicks: clicks})
	s.RunClickAction(a, x, y)
	return a
}

// Key runs the keyboard action bound to the named key with mods. It
// returns the action run and the error of path actions.
func (s *Scene) Key(name string, mods profile.Modifier) (profile.KeyboardAction, error) {
	shortcut := profile.Key(name, mods)
	a := s.CurrentProfile().KeyAction(shortcut)
	if a == profile.KeyNone {
		return a, nil
	}
	if a.IsPathAction() {
		id, _ := shortcut.Digit()
		return a, s.RunPathAction(a, id)
	}
	s.RunKeyAction(a)
	return a, nil
}
