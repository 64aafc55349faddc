package profile

import (
	"fmt"

	"github.com/Faultbox/scenekit/pkg/errs"
)

// Mode is the coarse control scheme of a profile. It picks the default
// bindings and restricts which actions may be bound.
type Mode int

const (
	Arcball Mode = iota
	WheeledArcball
	CAD
	FirstPerson
	ThirdPerson
)

var modeNames = [...]string{
	Arcball:        "ARCBALL",
	WheeledArcball: "WHEELED_ARCBALL",
	CAD:            "CAD",
	FirstPerson:    "FIRST_PERSON",
	ThirdPerson:    "THIRD_PERSON",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name such as "FIRST_PERSON".
func ParseMode(s string) (Mode, error) {
	i, ok := lookup(modeNames[:], s)
	if !ok {
		return Arcball, errs.Configuration.New("unknown profile mode %q", s)
	}
	return Mode(i), nil
}

func actionSet(actions ...MouseAction) map[MouseAction]bool {
	set := make(map[MouseAction]bool, len(actions)+1)
	set[NoAction] = true
	for _, a := range actions {
		set[a] = true
	}
	return set
}

var (
	arcballCamera = actionSet(Rotate, Zoom, Translate, Roll, ScreenRotate, ScreenTranslate, ZoomOnRegion)
	cadCamera     = actionSet(CadRotate, Zoom, Translate, ScreenTranslate, ZoomOnRegion)
	flyCamera     = actionSet(MoveForward, MoveBackward, LookAround, Drive, Roll, Zoom, Translate, ScreenTranslate)

	objectFrame = actionSet(Rotate, Zoom, Translate, Roll, ScreenRotate, ScreenTranslate)
	avatarFrame = actionSet(MoveForward, MoveBackward, LookAround, Drive, Roll, Rotate, Zoom, Translate,
		ScreenRotate, ScreenTranslate)

	wheelActions = actionSet(Zoom, Roll, MoveForward, MoveBackward)
)

// AllowsCameraMouse reports whether a drag may move the camera with a.
// Third person cameras follow the avatar and cannot be dragged.
func (m Mode) AllowsCameraMouse(a MouseAction) bool {
	switch m {
	case Arcball, WheeledArcball:
		return arcballCamera[a]
	case CAD:
		return cadCamera[a]
	case FirstPerson:
		return flyCamera[a]
	default:
		return a == NoAction
	}
}

// AllowsFrameMouse reports whether a drag may move an interactive frame
// with a. In third person the avatar accepts first person actions too.
func (m Mode) AllowsFrameMouse(a MouseAction) bool {
	if m == ThirdPerson {
		return avatarFrame[a]
	}
	return objectFrame[a]
}

// AllowsCameraWheel reports whether the wheel may move the camera with a.
func (m Mode) AllowsCameraWheel(a MouseAction) bool {
	return wheelActions[a] && m.AllowsCameraMouse(a)
}

// AllowsFrameWheel reports whether the wheel may move a frame with a.
func (m Mode) AllowsFrameWheel(a MouseAction) bool {
	return wheelActions[a] && m.AllowsFrameMouse(a)
}

// AllowsClick reports whether a click may trigger a. Third person profiles
// only act on the avatar, never directly on the camera.
func (m Mode) AllowsClick(a ClickAction) bool {
	if m != ThirdPerson {
		return true
	}
	switch a {
	case ClickNone, ClickSelect, ClickAlignFrame, ClickCenterFrame:
		return true
	default:
		return false
	}
}

// AllowsKey reports whether a key may trigger a.
func (m Mode) AllowsKey(a KeyboardAction) bool {
	switch a {
	case KeyIncreaseAzimuth, KeyDecreaseAzimuth, KeyIncreaseInclination, KeyDecreaseInclination,
		KeyIncreaseTrackingDistance, KeyDecreaseTrackingDistance:
		return m == ThirdPerson
	case KeyShowAll, KeyInterpolateToFitScene, KeyInterpolateToZoomOnPixel, KeyArpFromPixel, KeyResetArp,
		KeyMoveCameraLeft, KeyMoveCameraRight, KeyMoveCameraUp, KeyMoveCameraDown,
		KeyIncreaseRotationSensitivity, KeyDecreaseRotationSensitivity,
		KeyAddKeyFrameToPath, KeyPlayPath, KeyDeletePath, KeyResetPath:
		return m != ThirdPerson
	default:
		return true
	}
}

// applyDefaults fills an empty profile with the bindings of its mode.
func (p *Profile) applyDefaults() {
	bindMouse := func(table map[MouseShortcut]MouseAction, b Button, mods Modifier, a MouseAction) {
		table[MouseShortcut{Button: b, Mods: mods}] = a
	}
	bindKey := func(key string, mods Modifier, a KeyboardAction) {
		p.keys[Key(key, mods)] = a
	}
	click := func(b Button, mods Modifier, a ClickAction) {
		p.clicks[ClickShortcut{Button: b, Mods: mods, Clicks: 2}] = a
	}

	// common keys
	bindKey(" ", ModNone, KeyNextProfile)
	bindKey("e", ModNone, KeyCameraType)
	bindKey("m", ModNone, KeyAnimation)

	if p.mode == ThirdPerson {
		bindMouse(p.frameMouse, ButtonLeft, ModNone, MoveForward)
		bindMouse(p.frameMouse, ButtonMiddle, ModNone, LookAround)
		bindMouse(p.frameMouse, ButtonRight, ModNone, MoveBackward)
		bindMouse(p.frameMouse, ButtonLeft, ModShift, Roll)
		bindMouse(p.frameMouse, ButtonMiddle, ModShift, Drive)
		p.frameWheel[ModNone] = Zoom

		bindKey("ARROW_LEFT", ModNone, KeyDecreaseAzimuth)
		bindKey("ARROW_RIGHT", ModNone, KeyIncreaseAzimuth)
		bindKey("ARROW_UP", ModNone, KeyIncreaseInclination)
		bindKey("ARROW_DOWN", ModNone, KeyDecreaseInclination)
		bindKey("+", ModNone, KeyIncreaseTrackingDistance)
		bindKey("-", ModNone, KeyDecreaseTrackingDistance)
		bindKey("+", ModShift, KeyIncreaseFlySpeed)
		bindKey("-", ModShift, KeyDecreaseFlySpeed)
		return
	}

	// frames are manipulated the same way in every other mode
	bindMouse(p.frameMouse, ButtonLeft, ModNone, Rotate)
	bindMouse(p.frameMouse, ButtonMiddle, ModNone, Zoom)
	bindMouse(p.frameMouse, ButtonRight, ModNone, Translate)
	bindMouse(p.frameMouse, ButtonMiddle, ModShift, ScreenTranslate)
	bindMouse(p.frameMouse, ButtonRight, ModShift, ScreenRotate)
	p.frameWheel[ModNone] = Zoom

	switch p.mode {
	case Arcball:
		bindMouse(p.cameraMouse, ButtonLeft, ModNone, Rotate)
		bindMouse(p.cameraMouse, ButtonMiddle, ModNone, Zoom)
		bindMouse(p.cameraMouse, ButtonRight, ModNone, Translate)
		bindMouse(p.cameraMouse, ButtonLeft, ModShift, ZoomOnRegion)
		bindMouse(p.cameraMouse, ButtonMiddle, ModShift, ScreenTranslate)
		bindMouse(p.cameraMouse, ButtonRight, ModShift, ScreenRotate)
	case WheeledArcball:
		bindMouse(p.cameraMouse, ButtonLeft, ModNone, Rotate)
		bindMouse(p.cameraMouse, ButtonMiddle, ModNone, ScreenTranslate)
		bindMouse(p.cameraMouse, ButtonRight, ModNone, Translate)
		bindMouse(p.cameraMouse, ButtonLeft, ModShift, ZoomOnRegion)
		bindMouse(p.cameraMouse, ButtonRight, ModShift, ScreenRotate)
		p.cameraWheel[ModNone] = Zoom
		p.cameraWheel[ModShift] = Roll
	case CAD:
		bindMouse(p.cameraMouse, ButtonLeft, ModNone, CadRotate)
		bindMouse(p.cameraMouse, ButtonMiddle, ModNone, Zoom)
		bindMouse(p.cameraMouse, ButtonRight, ModNone, Translate)
		bindMouse(p.cameraMouse, ButtonLeft, ModShift, ZoomOnRegion)
		bindMouse(p.cameraMouse, ButtonMiddle, ModShift, ScreenTranslate)
		p.cameraWheel[ModNone] = Zoom
	case FirstPerson:
		bindMouse(p.cameraMouse, ButtonLeft, ModNone, MoveForward)
		bindMouse(p.cameraMouse, ButtonMiddle, ModNone, LookAround)
		bindMouse(p.cameraMouse, ButtonRight, ModNone, MoveBackward)
		bindMouse(p.cameraMouse, ButtonLeft, ModShift, Roll)
		bindMouse(p.cameraMouse, ButtonMiddle, ModShift, Drive)
		bindMouse(p.cameraMouse, ButtonRight, ModShift, ScreenTranslate)
		p.cameraWheel[ModNone] = MoveForward
		bindKey("+", ModNone, KeyIncreaseFlySpeed)
		bindKey("-", ModNone, KeyDecreaseFlySpeed)
	}

	click(ButtonLeft, ModNone, ClickAlignCamera)
	click(ButtonMiddle, ModNone, ClickShowAll)
	click(ButtonRight, ModNone, ClickZoomToFit)
	click(ButtonLeft, ModShift, ClickAlignFrame)
	click(ButtonMiddle, ModShift, ClickCenterFrame)
	click(ButtonRight, ModShift, ClickCenterScene)
	click(ButtonLeft, ModAlt, ClickZoomOnPixel)
	click(ButtonMiddle, ModAlt, ClickArpFromPixel)
	click(ButtonRight, ModAlt, ClickResetArp)
	p.clicks[ClickShortcut{Button: ButtonLeft, Clicks: 1}] = ClickSelect

	bindKey("s", ModNone, KeyInterpolateToFitScene)
	bindKey("s", ModShift, KeyShowAll)
	bindKey("z", ModNone, KeyInterpolateToZoomOnPixel)
	bindKey("a", ModNone, KeyArpFromPixel)
	bindKey("r", ModNone, KeyResetArp)
	bindKey("ARROW_LEFT", ModNone, KeyMoveCameraLeft)
	bindKey("ARROW_RIGHT", ModNone, KeyMoveCameraRight)
	bindKey("ARROW_UP", ModNone, KeyMoveCameraUp)
	bindKey("ARROW_DOWN", ModNone, KeyMoveCameraDown)
	bindKey("+", ModCtrl, KeyIncreaseRotationSensitivity)
	bindKey("-", ModCtrl, KeyDecreaseRotationSensitivity)
	for d := 1; d <= 5; d++ {
		digit := string(rune('0' + d))
		bindKey(digit, ModNone, KeyPlayPath)
		bindKey(digit, ModCtrl, KeyAddKeyFrameToPath)
		bindKey(digit, ModAlt, KeyDeletePath)
		bindKey(digit, ModShift, KeyResetPath)
	}
}
