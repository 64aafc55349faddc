// Package viewer implements the sceneview main loop: it owns the window,
// the GL renderer and the scene, and feeds SDL input into the scene.
package viewer

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/config"
	"github.com/Faultbox/scenekit/internal/engine/debug"
	"github.com/Faultbox/scenekit/internal/engine/input"
	"github.com/Faultbox/scenekit/internal/engine/renderer"
	"github.com/Faultbox/scenekit/internal/engine/window"
	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/frame"
	"github.com/Faultbox/scenekit/pkg/interaction"
	"github.com/Faultbox/scenekit/pkg/math"
	"github.com/Faultbox/scenekit/pkg/scene"
)

// pathSamples is the number of segments drawn per camera path.
const pathSamples = 64

// Viewer is the sceneview application.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	dispatch *input.Dispatcher
	scene    *scene.Scene
	shots    *debug.Screenshots
	// capture after the next draw
	capture bool

	boxes  []*interaction.Controller
	avatar *frame.Frame
	// avatar walk angle
	walk float32
}

// New creates the window, the renderer and a demo scene configured by cfg.
func New(cfg *config.Config) (*Viewer, error) {
	log := logger.Named("viewer")
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	v := &Viewer{config: cfg}

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		PixelScale: v.window.PixelScale(),
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.scene = scene.New(v.renderer, cfg.Interaction.Settings)
	v.scene.Camera().SetDepthSource(v.renderer)
	v.populate()
	if err := cfg.ApplyTo(v.scene); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to apply configuration: %w", err)
	}
	v.scene.SetDrawHandler(v.draw)
	if err := v.scene.SetAnimationHandler(v.animate, scene.DefaultAnimationPeriod); err != nil {
		v.Close()
		return nil, err
	}

	v.shots = debug.NewScreenshots("screenshots", "sceneview")
	v.input = input.New()
	v.dispatch = input.NewDispatcher(v.scene)

	log.Info("viewer initialized", zap.Strings("profiles", v.scene.ProfileNames()))
	return v, nil
}

// populate builds the demo hierarchy: a row of boxes, one of them carrying
// a child, and an avatar walking in a circle.
func (v *Viewer) populate() {
	radius := v.config.Camera.SceneRadius
	for i := -1; i <= 1; i++ {
		f := frame.NewAt(math.Vec3{X: float32(i) * radius * 0.5}, math.QuatIdentity())
		f.SetName(fmt.Sprintf("box%d", i+1))
		v.boxes = append(v.boxes, v.scene.AddFrame(f))
	}

	child := frame.NewAt(math.Vec3{Z: radius * 0.25}, math.QuatFromAxisAngle(math.Vec3{Z: 1}, math32.Pi/4))
	child.SetName("child")
	// the parent is fresh, there is no cycle to reject
	_ = child.SetReferenceFrame(v.boxes[1].Frame())
	v.boxes = append(v.boxes, v.scene.AddFrame(child))

	v.avatar = frame.NewAt(math.Vec3{X: radius * 0.75}, math.QuatIdentity())
	v.avatar.SetName("avatar")
	v.scene.SetAvatar(v.avatar)
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	log := logger.Named("viewer")
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	var minFrame time.Duration
	if v.config.Window.FPSLimit > 0 {
		minFrame = time.Second / time.Duration(v.config.Window.FPSLimit)
	}

	log.Info("starting main loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		v.scene.Tick(float32(dt))

		v.renderer.Begin()
		if err := v.scene.Draw(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if v.capture {
			v.capture = false
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if spent := time.Since(now); spent < minFrame {
			window.Delay(uint32((minFrame - spent).Milliseconds()))
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, e := range v.input.Events() {
		switch {
		case e.Type == input.EventWindowResize:
			w, h := v.window.Size()
			v.renderer.Resize(w, h, v.window.PixelScale())
		case e.Type == input.EventKeyDown && e.Key == "ESCAPE":
			v.running = false
		case e.Type == input.EventKeyDown && e.Key == "F1":
			v.dumpProfile()
		case e.Type == input.EventKeyDown && e.Key == "F2":
			v.capture = true
		default:
			v.dispatch.Handle(e)
		}
	}
}

// dumpProfile logs the bindings of the active profile.
func (v *Viewer) dumpProfile() {
	p := v.scene.CurrentProfile()
	logger.Named("viewer").Info("active profile\n" + spew.Sdump(p.Tables()))
}

func (v *Viewer) screenshot() {
	log := logger.Named("viewer")
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.shots.Save(pixels, w, h)
	if err != nil {
		log.Warn("screenshot failed", zap.Error(err))
		return
	}
	log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Named("viewer").Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) animate(*scene.Scene) {
	v.walk += scene.DefaultAnimationPeriod * 0.5
	r := v.config.Camera.SceneRadius * 0.75
	v.avatar.SetPosition(math.Vec3{X: r * math32.Cos(v.walk), Y: r * math32.Sin(v.walk)})
	v.avatar.SetOrientation(math.QuatFromAxisAngle(math.Vec3{Z: 1}, v.walk+math32.Pi/2))
}

func (v *Viewer) draw(s *scene.Scene) {
	radius := s.Camera().SceneRadius()
	v.renderer.Grid(radius, 10, renderer.Gray)
	v.renderer.Axes(radius * 0.2)

	for _, c := range v.boxes {
		if err := s.ApplyTransform(c.Frame()); err != nil {
			logger.Named("viewer").Debug("draw outside scope", zap.Error(err))
			return
		}
		color := renderer.White
		switch c {
		case s.Grabber():
			color = renderer.Green
		case s.Selected():
			color = renderer.Red
		}
		size := radius * 0.1
		v.renderer.WireBox(math.Vec3{X: -size, Y: -size, Z: -size}, math.Vec3{X: size, Y: size, Z: size}, color)
		v.renderer.Axes(size * 1.5)
	}

	if err := s.ApplyTransform(v.avatar); err == nil {
		v.renderer.Axes(radius * 0.15)
	}

	v.renderer.ResetTransform()
	for _, id := range s.Camera().PathIDs() {
		v.drawPath(s, id)
	}
}

// drawPath draws the trajectory of camera path id.
func (v *Viewer) drawPath(s *scene.Scene, id int) {
	path := s.Camera().Path(id)
	if path == nil || path.NumberOfKeyFrames() < 2 {
		return
	}
	points := make([]math.Vec3, 0, pathSamples+1)
	for i := 0; i <= pathSamples; i++ {
		t := path.FirstTime() + path.Duration()*float32(i)/pathSamples
		pose, err := path.PoseAt(t)
		if err != nil {
			return
		}
		points = append(points, pose.Position)
	}
	v.renderer.Polyline(points, renderer.Blue)
}
