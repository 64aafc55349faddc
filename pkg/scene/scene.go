// Package scene is the host-facing entry point. A Scene owns the camera,
// its interaction controller and the grabbable frames, routes pointer and
// key events through the active camera profile, and drives everything from
// a single Tick call per rendered frame.
package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/camera"
	"github.com/Faultbox/scenekit/pkg/errs"
	"github.com/Faultbox/scenekit/pkg/frame"
	"github.com/Faultbox/scenekit/pkg/interaction"
	"github.com/Faultbox/scenekit/pkg/math"
	"github.com/Faultbox/scenekit/pkg/profile"
)

// Renderer is the drawing collaborator. The scene uploads matrices to it
// and asks it for the viewport size.
type Renderer interface {
	ViewportSize() (width, height int)
	SetMatrices(projection, view math.Mat4)
	ApplyTransform(model math.Mat4)
}

// DefaultAnimationPeriod is the animation callback period in seconds.
const DefaultAnimationPeriod = float32(1) / 60

// Scene routes input to the camera and the interactive frames. It is not
// safe for concurrent use.
type Scene struct {
	renderer  Renderer
	camera    *camera.Camera
	cameraCtl *interaction.Controller
	settings  interaction.Settings
	grabbers  interaction.Registry
	avatar    *interaction.AvatarFrame

	profiles []*profile.Profile
	current  int
	// pose restored when leaving third person
	beforeThirdPerson frame.Pose

	grabber  *interaction.Controller
	active   *interaction.Controller
	selected *interaction.Controller
	pointerX float32
	pointerY float32

	drawing bool
	onDraw  func(*Scene)

	onAnimate       func(*Scene)
	animationPeriod float32
	animationTime   float32
	animating       bool
}

// New returns a scene drawing through r, with one profile per mode except
// third person, which is added by SetAvatar. The arcball profile is active.
func New(r Renderer, s interaction.Settings) *Scene {
	cam := camera.New()
	sc := &Scene{
		renderer:        r,
		camera:          cam,
		cameraCtl:       interaction.NewCameraController(cam, s),
		settings:        s,
		animationPeriod: DefaultAnimationPeriod,
	}
	for _, m := range []profile.Mode{profile.Arcball, profile.WheeledArcball, profile.CAD, profile.FirstPerson} {
		sc.profiles = append(sc.profiles, profile.New(m.String(), m))
	}
	sc.syncViewport()
	cam.ShowEntireScene()
	return sc
}

// Camera returns the scene camera.
func (s *Scene) Camera() *camera.Camera { return s.camera }

// CameraController returns the controller driving the camera.
func (s *Scene) CameraController() *interaction.Controller { return s.cameraCtl }

// Renderer returns the drawing collaborator.
func (s *Scene) Renderer() Renderer { return s.renderer }

// Grabbers returns the registry of grabbable frames.
func (s *Scene) Grabbers() *interaction.Registry { return &s.grabbers }

// AddFrame makes f grabbable and returns its controller.
func (s *Scene) AddFrame(f *frame.Frame) *interaction.Controller {
	c := interaction.NewFrameController(f, s.camera, s.settings)
	s.grabbers.Add(c)
	return c
}

// RemoveFrame unregisters c. It reports whether c was registered.
func (s *Scene) RemoveFrame(c *interaction.Controller) bool {
	if s.grabber == c {
		s.grabber = nil
	}
	if s.selected == c {
		s.selected = nil
	}
	if s.active == c {
		s.active = nil
	}
	return s.grabbers.Remove(c)
}

// Grabber returns the frame controller under the pointer, if any.
func (s *Scene) Grabber() *interaction.Controller { return s.grabber }

// Selected returns the frame picked by the last select click, if any.
func (s *Scene) Selected() *interaction.Controller { return s.selected }

// Avatar returns the third person avatar, if any.
func (s *Scene) Avatar() *interaction.AvatarFrame { return s.avatar }

// SetAvatar makes f the third person avatar and registers a third person
// profile when none exists.
func (s *Scene) SetAvatar(f *frame.Frame) *interaction.AvatarFrame {
	if s.avatar != nil {
		s.grabbers.Remove(s.avatar.Controller)
	}
	s.avatar = interaction.NewAvatarFrame(f, s.camera, s.settings)
	s.grabbers.Add(s.avatar.Controller)
	if s.indexOfMode(profile.ThirdPerson) < 0 {
		s.profiles = append(s.profiles, profile.New(profile.ThirdPerson.String(), profile.ThirdPerson))
	}
	return s.avatar
}

// ClearAvatar removes the avatar together with every third person profile.
func (s *Scene) ClearAvatar() {
	if s.avatar == nil {
		return
	}
	if s.CurrentProfile().Mode() == profile.ThirdPerson {
		s.switchTo(s.firstDrivable())
	}
	current := s.CurrentProfile()
	kept := s.profiles[:0]
	for _, p := range s.profiles {
		if p.Mode() != profile.ThirdPerson {
			kept = append(kept, p)
		}
	}
	s.profiles = kept
	s.current = s.indexOf(current.Name())
	s.RemoveFrame(s.avatar.Controller)
	s.avatar = nil
}

// PointerPosition returns the last known pointer position.
func (s *Scene) PointerPosition() (float32, float32) { return s.pointerX, s.pointerY }

// syncViewport copies the renderer viewport into the camera.
func (s *Scene) syncViewport() {
	w, h := s.renderer.ViewportSize()
	if w <= 0 || h <= 0 {
		return
	}
	if w != s.camera.ScreenWidth() || h != s.camera.ScreenHeight() {
		s.camera.SetScreenSize(w, h)
	}
}

// BeginDraw opens the draw scope: the viewport is read back and the camera
// matrices are uploaded.
func (s *Scene) BeginDraw() error {
	if s.drawing {
		return errs.State.New("BeginDraw called twice without EndDraw")
	}
	s.drawing = true
	s.syncViewport()
	s.renderer.SetMatrices(s.camera.ProjectionMatrix(), s.camera.ViewMatrix())
	return nil
}

// EndDraw closes the draw scope.
func (s *Scene) EndDraw() error {
	if !s.drawing {
		return errs.State.New("EndDraw called without BeginDraw")
	}
	s.drawing = false
	return nil
}

// IsDrawing reports whether a draw scope is open.
func (s *Scene) IsDrawing() bool { return s.drawing }

// ApplyTransform hands the world matrix of f to the renderer. It is only
// valid inside the draw scope.
func (s *Scene) ApplyTransform(f *frame.Frame) error {
	if !s.drawing {
		return errs.State.New("ApplyTransform called outside the draw scope")
	}
	s.renderer.ApplyTransform(f.WorldMatrix())
	return nil
}

// SetDrawHandler sets the callback run by Draw inside the draw scope.
func (s *Scene) SetDrawHandler(fn func(*Scene)) { s.onDraw = fn }

// Draw runs one draw scope around the draw handler.
func (s *Scene) Draw() error {
	if err := s.BeginDraw(); err != nil {
		return err
	}
	if s.onDraw != nil {
		s.onDraw(s)
	}
	return s.EndDraw()
}

// SetAnimationHandler sets the callback run every period seconds of Tick
// time while animation is on.
func (s *Scene) SetAnimationHandler(fn func(*Scene), period float32) error {
	if period <= 0 {
		return errs.Configuration.New("animation period must be positive, got %v", period)
	}
	s.onAnimate = fn
	s.animationPeriod = period
	s.animationTime = 0
	return nil
}

// StartAnimation turns the animation callback on.
func (s *Scene) StartAnimation() { s.animating = true }

// StopAnimation turns the animation callback off.
func (s *Scene) StopAnimation() {
	s.animating = false
	s.animationTime = 0
}

// ToggleAnimation flips the animation state.
func (s *Scene) ToggleAnimation() {
	if s.animating {
		s.StopAnimation()
		return
	}
	s.StartAnimation()
}

// IsAnimating reports whether the animation callback is on.
func (s *Scene) IsAnimating() bool { return s.animating }

// Tick advances spinning, flying, camera transitions, playing paths, the
// third person follow and the animation callback by dt seconds.
func (s *Scene) Tick(dt float32) {
	s.cameraCtl.Tick(dt)
	for _, c := range s.grabbers.All() {
		c.Tick(dt)
	}
	s.camera.Tick(dt)

	if s.avatar != nil && s.CurrentProfile().Mode() == profile.ThirdPerson && !s.camera.IsInterpolating() {
		s.camera.LookFrom(s.avatar.CameraPosition(), s.avatar.Target(), s.avatar.UpVector())
	}

	if s.animating && s.onAnimate != nil {
		s.animationTime += dt
		for s.animationTime >= s.animationPeriod {
			s.animationTime -= s.animationPeriod
			s.onAnimate(s)
		}
	}
}

func logProfile(msg string, p *profile.Profile, fields ...zap.Field) {
	fields = append(fields, zap.String("profile", p.Name()), zap.Stringer("mode", p.Mode()))
	logger.Named("scene").Info(msg, fields...)
}
