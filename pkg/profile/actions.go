package profile

import (
	"fmt"
	"strings"

	"github.com/Faultbox/scenekit/pkg/errs"
)

// MouseAction is what a drag or wheel gesture does to the camera or to a frame.
type MouseAction int

const (
	NoAction MouseAction = iota
	Rotate
	CadRotate
	Zoom
	Translate
	MoveForward
	MoveBackward
	LookAround
	Drive
	Roll
	ScreenRotate
	ScreenTranslate
	ZoomOnRegion
)

var mouseActionNames = [...]string{
	NoAction:        "NO_ACTION",
	Rotate:          "ROTATE",
	CadRotate:       "CAD_ROTATE",
	Zoom:            "ZOOM",
	Translate:       "TRANSLATE",
	MoveForward:     "MOVE_FORWARD",
	MoveBackward:    "MOVE_BACKWARD",
	LookAround:      "LOOK_AROUND",
	Drive:           "DRIVE",
	Roll:            "ROLL",
	ScreenRotate:    "SCREEN_ROTATE",
	ScreenTranslate: "SCREEN_TRANSLATE",
	ZoomOnRegion:    "ZOOM_ON_REGION",
}

func (a MouseAction) String() string {
	if a >= 0 && int(a) < len(mouseActionNames) {
		return mouseActionNames[a]
	}
	return fmt.Sprintf("MouseAction(%d)", int(a))
}

// IsRotation reports whether the action belongs to the arcball family.
func (a MouseAction) IsRotation() bool {
	return a == Rotate || a == CadRotate || a == ScreenRotate || a == Roll
}

// IsFirstPerson reports whether the action moves the frame like a vehicle.
func (a MouseAction) IsFirstPerson() bool {
	return a == MoveForward || a == MoveBackward || a == LookAround || a == Drive
}

// ParseMouseAction parses an action name such as "SCREEN_TRANSLATE".
func ParseMouseAction(s string) (MouseAction, error) {
	i, ok := lookup(mouseActionNames[:], s)
	if !ok {
		return NoAction, errs.Configuration.New("unknown mouse action %q", s)
	}
	return MouseAction(i), nil
}

// ClickAction is what a click gesture triggers.
type ClickAction int

const (
	ClickNone ClickAction = iota
	ClickZoomOnPixel
	ClickZoomToFit
	ClickSelect
	ClickArpFromPixel
	ClickResetArp
	ClickCenterFrame
	ClickCenterScene
	ClickShowAll
	ClickAlignFrame
	ClickAlignCamera
)

var clickActionNames = [...]string{
	ClickNone:         "NO_CLICK_ACTION",
	ClickZoomOnPixel:  "ZOOM_ON_PIXEL",
	ClickZoomToFit:    "ZOOM_TO_FIT",
	ClickSelect:       "SELECT",
	ClickArpFromPixel: "ARP_FROM_PIXEL",
	ClickResetArp:     "RESET_ARP",
	ClickCenterFrame:  "CENTER_FRAME",
	ClickCenterScene:  "CENTER_SCENE",
	ClickShowAll:      "SHOW_ALL",
	ClickAlignFrame:   "ALIGN_FRAME",
	ClickAlignCamera:  "ALIGN_CAMERA",
}

func (a ClickAction) String() string {
	if a >= 0 && int(a) < len(clickActionNames) {
		return clickActionNames[a]
	}
	return fmt.Sprintf("ClickAction(%d)", int(a))
}

// ParseClickAction parses a click action name such as "ALIGN_CAMERA".
func ParseClickAction(s string) (ClickAction, error) {
	i, ok := lookup(clickActionNames[:], s)
	if !ok {
		return ClickNone, errs.Configuration.New("unknown click action %q", s)
	}
	return ClickAction(i), nil
}

// KeyboardAction is what a key shortcut triggers.
type KeyboardAction int

const (
	KeyNone KeyboardAction = iota
	KeyNextProfile
	KeyCameraType
	KeyAnimation
	KeyShowAll
	KeyInterpolateToFitScene
	KeyInterpolateToZoomOnPixel
	KeyArpFromPixel
	KeyResetArp
	KeyMoveCameraLeft
	KeyMoveCameraRight
	KeyMoveCameraUp
	KeyMoveCameraDown
	KeyIncreaseRotationSensitivity
	KeyDecreaseRotationSensitivity
	KeyIncreaseFlySpeed
	KeyDecreaseFlySpeed
	KeyIncreaseAzimuth
	KeyDecreaseAzimuth
	KeyIncreaseInclination
	KeyDecreaseInclination
	KeyIncreaseTrackingDistance
	KeyDecreaseTrackingDistance
	KeyAddKeyFrameToPath
	KeyPlayPath
	KeyDeletePath
	KeyResetPath
)

var keyboardActionNames = [...]string{
	KeyNone:                        "NO_KEYBOARD_ACTION",
	KeyNextProfile:                 "CAMERA_PROFILE",
	KeyCameraType:                  "CAMERA_TYPE",
	KeyAnimation:                   "ANIMATION",
	KeyShowAll:                     "SHOW_ALL",
	KeyInterpolateToFitScene:       "INTERPOLATE_TO_FIT_SCENE",
	KeyInterpolateToZoomOnPixel:    "INTERPOLATE_TO_ZOOM_ON_PIXEL",
	KeyArpFromPixel:                "ARP_FROM_PIXEL",
	KeyResetArp:                    "RESET_ARP",
	KeyMoveCameraLeft:              "MOVE_CAMERA_LEFT",
	KeyMoveCameraRight:             "MOVE_CAMERA_RIGHT",
	KeyMoveCameraUp:                "MOVE_CAMERA_UP",
	KeyMoveCameraDown:              "MOVE_CAMERA_DOWN",
	KeyIncreaseRotationSensitivity: "INCREASE_ROTATION_SENSITIVITY",
	KeyDecreaseRotationSensitivity: "DECREASE_ROTATION_SENSITIVITY",
	KeyIncreaseFlySpeed:            "INCREASE_FLY_SPEED",
	KeyDecreaseFlySpeed:            "DECREASE_FLY_SPEED",
	KeyIncreaseAzimuth:             "INCREASE_AZIMUTH",
	KeyDecreaseAzimuth:             "DECREASE_AZIMUTH",
	KeyIncreaseInclination:         "INCREASE_INCLINATION",
	KeyDecreaseInclination:         "DECREASE_INCLINATION",
	KeyIncreaseTrackingDistance:    "INCREASE_TRACKING_DISTANCE",
	KeyDecreaseTrackingDistance:    "DECREASE_TRACKING_DISTANCE",
	KeyAddKeyFrameToPath:           "ADD_KEYFRAME_TO_PATH",
	KeyPlayPath:                    "PLAY_PATH",
	KeyDeletePath:                  "DELETE_PATH",
	KeyResetPath:                   "RESET_PATH",
}

func (a KeyboardAction) String() string {
	if a >= 0 && int(a) < len(keyboardActionNames) {
		return keyboardActionNames[a]
	}
	return fmt.Sprintf("KeyboardAction(%d)", int(a))
}

// IsPathAction reports whether the action addresses a camera path. Path
// actions take the path id from the digit key they are bound to.
func (a KeyboardAction) IsPathAction() bool {
	return a == KeyAddKeyFrameToPath || a == KeyPlayPath || a == KeyDeletePath || a == KeyResetPath
}

// ParseKeyboardAction parses a keyboard action name such as "PLAY_PATH".
func ParseKeyboardAction(s string) (KeyboardAction, error) {
	i, ok := lookup(keyboardActionNames[:], s)
	if !ok {
		return KeyNone, errs.Configuration.New("unknown keyboard action %q", s)
	}
	return KeyboardAction(i), nil
}

func lookup(names []string, s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, true
		}
	}
	return 0, false
}
