package scene

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/camera"
	"github.com/Faultbox/scenekit/pkg/errs"
	"github.com/Faultbox/scenekit/pkg/profile"
)

const (
	// keyStep is how far, in pixels, the arrow keys move the camera.
	keyStep = 10
	// scaleStep multiplies or divides sensitivities, speeds and distances.
	scaleStep = 1.2
	// angleStep is the avatar azimuth and inclination increment.
	angleStep = math32.Pi / 32
)

// RunClickAction runs a at pixel (x, y). Frame actions apply to the frame
// under the pointer, or to the avatar in third person.
func (s *Scene) RunClickAction(a profile.ClickAction, x, y float32) {
	switch a {
	case profile.ClickNone:
	case profile.ClickZoomOnPixel:
		s.camera.InterpolateToZoomOnPixel(x, y)
	case profile.ClickZoomToFit:
		s.camera.InterpolateToFitScene()
	case profile.ClickSelect:
		s.selected = s.frameTarget()
	case profile.ClickArpFromPixel:
		s.arpFromPixel(x, y)
	case profile.ClickResetArp:
		s.camera.ResetArcballReferencePoint()
	case profile.ClickCenterFrame:
		if t := s.frameTarget(); t != nil {
			t.Frame().ProjectOnLine(s.camera.Position(), s.camera.ViewDirection())
		}
	case profile.ClickCenterScene:
		s.camera.CenterScene()
	case profile.ClickShowAll:
		s.camera.ShowEntireScene()
	case profile.ClickAlignFrame:
		if t := s.frameTarget(); t != nil {
			t.Frame().AlignWithFrame(s.camera.Frame(), false)
		}
	case profile.ClickAlignCamera:
		s.camera.AlignWithFrame(nil, true)
	}
}

func (s *Scene) arpFromPixel(x, y float32) bool {
	p, ok := s.camera.PointUnderPixel(x, y)
	if ok {
		s.camera.SetArcballReferencePoint(p)
	}
	return ok
}

// RunKeyAction runs a keyboard action that is not a path action. Pixel
// based actions use the last pointer position.
func (s *Scene) RunKeyAction(a profile.KeyboardAction) {
	switch a {
	case profile.KeyNextProfile:
		s.NextProfile()
	case profile.KeyCameraType:
		if s.camera.Type() == camera.Perspective {
			s.camera.SetType(camera.Orthographic)
		} else {
			s.camera.SetType(camera.Perspective)
		}
	case profile.KeyAnimation:
		s.ToggleAnimation()
	case profile.KeyShowAll:
		s.camera.ShowEntireScene()
	case profile.KeyInterpolateToFitScene:
		s.camera.InterpolateToFitScene()
	case profile.KeyInterpolateToZoomOnPixel:
		s.camera.InterpolateToZoomOnPixel(s.pointerX, s.pointerY)
	case profile.KeyArpFromPixel:
		s.arpFromPixel(s.pointerX, s.pointerY)
	case profile.KeyResetArp:
		s.camera.ResetArcballReferencePoint()
	case profile.KeyMoveCameraLeft:
		s.cameraCtl.TranslateByPixels(keyStep, 0)
	case profile.KeyMoveCameraRight:
		s.cameraCtl.TranslateByPixels(-keyStep, 0)
	case profile.KeyMoveCameraUp:
		s.cameraCtl.TranslateByPixels(0, keyStep)
	case profile.KeyMoveCameraDown:
		s.cameraCtl.TranslateByPixels(0, -keyStep)
	case profile.KeyIncreaseRotationSensitivity:
		s.cameraCtl.ScaleRotationSensitivity(scaleStep)
	case profile.KeyDecreaseRotationSensitivity:
		s.cameraCtl.ScaleRotationSensitivity(1 / scaleStep)
	case profile.KeyIncreaseFlySpeed:
		s.scaleFlySpeed(scaleStep)
	case profile.KeyDecreaseFlySpeed:
		s.scaleFlySpeed(1 / scaleStep)
	}

	if s.avatar == nil {
		return
	}
	switch a {
	case profile.KeyIncreaseAzimuth:
		s.avatar.SetAzimuth(s.avatar.Azimuth() + angleStep)
	case profile.KeyDecreaseAzimuth:
		s.avatar.SetAzimuth(s.avatar.Azimuth() - angleStep)
	case profile.KeyIncreaseInclination:
		s.avatar.SetInclination(s.avatar.Inclination() + angleStep)
	case profile.KeyDecreaseInclination:
		s.avatar.SetInclination(s.avatar.Inclination() - angleStep)
	case profile.KeyIncreaseTrackingDistance:
		s.avatar.SetTrackingDistance(s.avatar.TrackingDistance() * scaleStep)
	case profile.KeyDecreaseTrackingDistance:
		s.avatar.SetTrackingDistance(s.avatar.TrackingDistance() / scaleStep)
	}
}

func (s *Scene) scaleFlySpeed(f float32) {
	s.cameraCtl.SetFlySpeed(s.cameraCtl.FlySpeed() * f)
	if s.avatar != nil {
		s.avatar.SetFlySpeed(s.avatar.FlySpeed() * f)
	}
}

// RunPathAction runs a path action on camera path id.
func (s *Scene) RunPathAction(a profile.KeyboardAction, id int) error {
	var err error
	switch a {
	case profile.KeyAddKeyFrameToPath:
		s.camera.AddKeyFrameToPath(id)
	case profile.KeyPlayPath:
		err = s.camera.PlayPath(id)
	case profile.KeyDeletePath:
		s.camera.DeletePath(id)
	case profile.KeyResetPath:
		err = s.camera.ResetPath(id)
	default:
		return errs.Configuration.New("%v is not a path action", a)
	}
	if err != nil {
		logger.Named("scene").Debug("path action failed",
			zap.Stringer("action", a), zap.Int("path", id), zap.Error(err))
	}
	return err
}
