package interaction

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	. "github.com/onsi/gomega"

	"github.com/Faultbox/scenekit/pkg/camera"
	"github.com/Faultbox/scenekit/pkg/errs"
	"github.com/Faultbox/scenekit/pkg/frame"
	"github.com/Faultbox/scenekit/pkg/math"
	"github.com/Faultbox/scenekit/pkg/profile"
)

const eps = 1e-3

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newCameraController() (*Controller, *camera.Camera, *fakeClock) {
	cam := camera.New()
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := NewCameraController(cam, DefaultSettings())
	c.SetClock(clock.Now)
	return c, cam, clock
}

func newObjectController(cam *camera.Camera, clock *fakeClock) *Controller {
	c := NewFrameController(frame.New(), cam, DefaultSettings())
	c.SetClock(clock.Now)
	return c
}

func TestArcballQuaternion(t *testing.T) {
	g := NewGomegaWithT(t)

	q := arcballQuaternion(330, 240, 330, 240, 320, 240, 640, 480, 1)
	g.Expect(q.ApproxEqualRotation(math.QuatIdentity(), 1e-6)).To(BeTrue())

	q = arcballQuaternion(320, 240, 384, 240, 320, 240, 640, 480, 1)
	g.Expect(q.Angle()).To(BeNumerically(">", 0))
	g.Expect(q.Axis().ApproxEqual(math.YAxis, eps)).To(BeTrue(), "dragging right turns around +Y")

	g.Expect(projectOnBall(0, 0)).To(BeNumerically("==", 1))
	g.Expect(projectOnBall(2, 0)).To(BeNumerically("==", 0))
}

func TestOrbitKeepsDistanceToSceneCenter(t *testing.T) {
	g := NewGomegaWithT(t)
	c, cam, clock := newCameraController()
	before := cam.DistanceToSceneCenter()
	start := cam.Orientation()

	c.Press(profile.Rotate, 330, 240)
	clock.advance(10 * time.Millisecond)
	c.Drag(330, 280)

	g.Expect(cam.DistanceToSceneCenter()).To(BeNumerically("~", before, eps))
	g.Expect(cam.Position().Length()).To(BeNumerically("~", before, eps))
	g.Expect(start.Inverse().Mul(cam.Orientation()).Angle()).To(BeNumerically(">", 0))
}

func TestZeroDragIsIdentity(t *testing.T) {
	g := NewGomegaWithT(t)
	c, cam, _ := newCameraController()
	start := cam.Frame().Pose()

	c.Press(profile.Rotate, 400, 300)
	c.Drag(400, 300)
	c.Release(400, 300)

	g.Expect(cam.Orientation().ApproxEqualRotation(start.Orientation, 1e-6)).To(BeTrue())
	g.Expect(cam.Position().ApproxEqual(start.Position, 1e-6)).To(BeTrue())
	g.Expect(c.IsSpinning()).To(BeFalse())
}

func TestFastReleaseSpinsWithDamping(t *testing.T) {
	g := NewGomegaWithT(t)
	c, cam, clock := newCameraController()
	distance := cam.DistanceToSceneCenter()

	c.Press(profile.Rotate, 330, 240)
	clock.advance(10 * time.Millisecond)
	c.Drag(330, 280)
	c.Release(330, 280)
	g.Expect(c.IsSpinning()).To(BeTrue())
	g.Expect(c.IsActive()).To(BeFalse())

	angle := c.SpinningQuaternion().Angle()
	before := cam.Orientation()
	c.Tick(0.016)
	g.Expect(c.SpinningQuaternion().Angle()).To(BeNumerically("~", angle*c.Settings().DampingFactor, 1e-5))
	g.Expect(before.ApproxEqualRotation(cam.Orientation(), 1e-6)).To(BeFalse())
	g.Expect(cam.DistanceToSceneCenter()).To(BeNumerically("~", distance, eps))

	for i := 0; i < 1000 && c.IsSpinning(); i++ {
		c.Tick(0.016)
	}
	g.Expect(c.IsSpinning()).To(BeFalse())
	g.Expect(c.SpinningQuaternion().Angle()).To(BeNumerically(">", 0), "the last quaternion is kept")
}

func TestSlowReleaseDoesNotSpin(t *testing.T) {
	g := NewGomegaWithT(t)
	c, _, clock := newCameraController()

	c.Press(profile.Rotate, 330, 240)
	clock.advance(10 * time.Millisecond)
	c.Drag(330, 280)
	clock.advance(200 * time.Millisecond)
	c.Release(330, 280)
	g.Expect(c.IsSpinning()).To(BeFalse())

	c.Press(profile.Rotate, 330, 240)
	clock.advance(time.Second)
	c.Drag(331, 240)
	c.Release(331, 240)
	g.Expect(c.IsSpinning()).To(BeFalse(), "one pixel per second is below the spinning sensitivity")
}

func TestPressStopsSpinning(t *testing.T) {
	g := NewGomegaWithT(t)
	c, _, _ := newCameraController()

	c.StartSpinning(math.QuatFromAxisAngle(math.YAxis, 0.1))
	g.Expect(c.IsSpinning()).To(BeTrue())
	c.Press(profile.Translate, 10, 10)
	g.Expect(c.IsSpinning()).To(BeFalse())
}

func TestSpinRespectsConstraint(t *testing.T) {
	g := NewGomegaWithT(t)
	_, cam, clock := newCameraController()
	obj := newObjectController(cam, clock)
	locked := frame.NewLocalConstraint()
	locked.SetRotationConstraintType(frame.Forbidden)
	obj.Frame().SetConstraint(locked)

	obj.Press(profile.Rotate, 330, 240)
	clock.advance(10 * time.Millisecond)
	obj.Drag(330, 280)
	obj.Release(330, 280)
	for i := 0; i < 10; i++ {
		obj.Tick(0.016)
	}
	g.Expect(obj.Frame().Orientation().ApproxEqualRotation(math.QuatIdentity(), 1e-6)).To(BeTrue())
}

func TestObjectRotationFollowsPointer(t *testing.T) {
	g := NewGomegaWithT(t)
	_, cam, clock := newCameraController()
	obj := newObjectController(cam, clock)

	obj.Press(profile.Rotate, 320, 240)
	obj.Drag(384, 240)

	// the front of the object turns right: +Z moves towards +X
	front := obj.Frame().InverseTransformOf(math.ZAxis)
	g.Expect(front.X).To(BeNumerically(">", 0))
}

func TestCameraTranslateFollowsPointer(t *testing.T) {
	g := NewGomegaWithT(t)
	c, cam, _ := newCameraController()

	c.Press(profile.Translate, 320, 240)
	c.Drag(420, 200)

	p := cam.ProjectedCoordinatesOf(math.Vec3{})
	g.Expect(p.X).To(BeNumerically("~", 420, 0.5))
	g.Expect(p.Y).To(BeNumerically("~", 200, 0.5))
}

func TestObjectTranslateFollowsPointer(t *testing.T) {
	g := NewGomegaWithT(t)
	_, cam, clock := newCameraController()
	obj := newObjectController(cam, clock)

	obj.Press(profile.Translate, 320, 240)
	obj.Drag(370, 210)

	p := cam.ProjectedCoordinatesOf(obj.Frame().Position())
	g.Expect(p.X).To(BeNumerically("~", 370, 0.5))
	g.Expect(p.Y).To(BeNumerically("~", 210, 0.5))
}

func TestScreenTranslateLocksDirection(t *testing.T) {
	g := NewGomegaWithT(t)
	c, cam, _ := newCameraController()

	c.Press(profile.ScreenTranslate, 300, 300)
	c.Drag(310, 302)
	c.Drag(310, 380)

	g.Expect(cam.Position().X).To(BeNumerically("<", 0))
	g.Expect(cam.Position().Y).To(BeNumerically("~", 0, 1e-6))
}

func TestZoom(t *testing.T) {
	g := NewGomegaWithT(t)
	c, cam, _ := newCameraController()
	d := cam.DistanceToSceneCenter()

	c.Press(profile.Zoom, 320, 240)
	c.Drag(320, 290)
	c.Release(320, 290)
	d2 := d * (1 - 50.0/480)
	g.Expect(cam.DistanceToSceneCenter()).To(BeNumerically("~", d2, eps))

	c.Wheel(profile.Zoom, 1)
	g.Expect(cam.DistanceToSceneCenter()).To(BeNumerically("~", d2*0.9, eps))

	c.Wheel(profile.MoveBackward, 1)
	g.Expect(cam.DistanceToSceneCenter()).To(BeNumerically(">", d2*0.9))
}

func TestWheelRoll(t *testing.T) {
	g := NewGomegaWithT(t)
	c, cam, _ := newCameraController()

	c.Wheel(profile.Roll, 1)
	g.Expect(cam.ViewDirection().ApproxEqual(math.Vec3{Z: -1}, eps)).To(BeTrue())
	g.Expect(cam.UpVector().ApproxEqual(math.YAxis, eps)).To(BeFalse())
	g.Expect(c.FlyUpVector().ApproxEqual(cam.UpVector(), eps)).To(BeTrue())
}

func TestFlying(t *testing.T) {
	g := NewGomegaWithT(t)
	c, cam, _ := newCameraController()
	z := cam.Position().Z

	c.Press(profile.MoveForward, 320, 240)
	c.Tick(0.5)
	g.Expect(cam.Position().Z).To(BeNumerically("~", z-0.5*c.FlySpeed(), eps))

	c.Release(320, 240)
	c.Tick(1)
	g.Expect(cam.Position().Z).To(BeNumerically("~", z-0.5*c.FlySpeed(), eps))

	c.Press(profile.MoveBackward, 320, 240)
	c.Tick(0.5)
	c.Release(320, 240)
	g.Expect(cam.Position().Z).To(BeNumerically("~", z, eps))
}

func TestLookAroundAndDrive(t *testing.T) {
	g := NewGomegaWithT(t)
	c, cam, _ := newCameraController()
	pos := cam.Position()

	c.Press(profile.LookAround, 320, 240)
	c.Drag(384, 240)
	c.Tick(1)
	c.Release(384, 240)
	g.Expect(cam.ViewDirection().X).To(BeNumerically(">", 0), "dragging right looks right")
	g.Expect(cam.Position().ApproxEqual(pos, 1e-6)).To(BeTrue())

	c.Press(profile.Drive, 320, 240)
	c.Drag(320, 140)
	c.Tick(1)
	g.Expect(cam.Position().Sub(pos).Dot(cam.ViewDirection())).To(BeNumerically(">", 0), "dragging up drives forward")
}

func TestZoomOnRegion(t *testing.T) {
	g := NewGomegaWithT(t)
	c, cam, _ := newCameraController()
	d := cam.DistanceToSceneCenter()

	_, ok := c.ZoomRegion()
	g.Expect(ok).To(BeFalse())

	c.Press(profile.ZoomOnRegion, 400, 300)
	c.Drag(240, 180)
	rect, ok := c.ZoomRegion()
	g.Expect(ok).To(BeTrue())
	g.Expect(rect).To(Equal(camera.ScreenRect{X: 240, Y: 180, Width: 160, Height: 120}))

	c.Release(240, 180)
	g.Expect(cam.IsInterpolating()).To(BeTrue())
	cam.Tick(camera.DefaultInterpolationDuration)
	g.Expect(cam.DistanceToSceneCenter()).To(BeNumerically("<", d))
}

func TestScreenRotateTurnsAroundViewAxis(t *testing.T) {
	g := NewGomegaWithT(t)
	c, cam, _ := newCameraController()

	c.Press(profile.ScreenRotate, 420, 240)
	c.Drag(320, 140)
	g.Expect(cam.ViewDirection().ApproxEqual(math.Vec3{Z: -1}, eps)).To(BeTrue())
	g.Expect(cam.UpVector().Dot(math.YAxis)).To(BeNumerically("~", 0, eps), "a quarter turn")
}

func TestCadRotateKeepsHorizonLevel(t *testing.T) {
	g := NewGomegaWithT(t)
	c, cam, _ := newCameraController()

	c.Press(profile.CadRotate, 320, 240)
	c.Drag(400, 240)
	c.Drag(450, 200)
	g.Expect(cam.RightVector().Y).To(BeNumerically("~", 0, eps))
	g.Expect(cam.DistanceToSceneCenter()).To(BeNumerically("~", 1/math32.Sin(camera.DefaultFieldOfView/2), eps))
}

func TestGrabsPointer(t *testing.T) {
	g := NewGomegaWithT(t)
	c, cam, clock := newCameraController()
	obj := newObjectController(cam, clock)

	g.Expect(obj.GrabsPointer(325, 240)).To(BeTrue())
	g.Expect(obj.GrabsPointer(340, 240)).To(BeFalse())
	g.Expect(c.GrabsPointer(320, 240)).To(BeFalse())
}

func TestRegistry(t *testing.T) {
	g := NewGomegaWithT(t)
	_, cam, clock := newCameraController()
	a := newObjectController(cam, clock)
	b := newObjectController(cam, clock)
	b.Frame().SetPosition(math.Vec3{X: 1})
	bx := cam.ProjectedCoordinatesOf(b.Frame().Position()).X

	var r Registry
	r.Add(a)
	r.Add(b)
	r.Add(a)
	g.Expect(r.Len()).To(Equal(2))
	g.Expect(r.Grabber(bx, 240)).To(BeIdenticalTo(b))
	g.Expect(r.Grabber(320, 240)).To(BeIdenticalTo(a))
	g.Expect(r.Grabber(50, 50)).To(BeNil())

	g.Expect(r.Remove(a)).To(BeTrue())
	g.Expect(r.Remove(a)).To(BeFalse())
	g.Expect(r.All()).To(ConsistOf(b))
	r.Clear()
	g.Expect(r.Len()).To(BeZero())
}

func TestAvatarFrame(t *testing.T) {
	g := NewGomegaWithT(t)
	cam := camera.New()
	a := NewAvatarFrame(frame.New(), cam, DefaultSettings())

	g.Expect(a.TrackingDistance()).To(BeNumerically("~", 0.5, 1e-6))
	eye := a.CameraPosition()
	g.Expect(eye.Length()).To(BeNumerically("~", 0.5, eps))
	g.Expect(eye.Y).To(BeNumerically("~", 0.5*math32.Sin(DefaultInclination), eps))
	g.Expect(eye.Z).To(BeNumerically(">", 0), "the camera sits behind the avatar")

	pose := a.CameraPose()
	look := pose.Orientation.Rotate(math.Vec3{Z: -1})
	g.Expect(look.ApproxEqual(a.Target().Sub(eye).Normalize(), eps)).To(BeTrue())

	a.SetInclination(3)
	g.Expect(a.Inclination()).To(BeNumerically("<", math32.Pi/2))
	a.SetAzimuth(3 * math32.Pi / 2)
	g.Expect(a.Azimuth()).To(BeNumerically("~", -math32.Pi/2, eps))

	a.Wheel(profile.Zoom, 1)
	g.Expect(a.TrackingDistance()).To(BeNumerically("~", 0.45, 1e-5))
	a.Wheel(profile.Zoom, -1000)
	g.Expect(a.TrackingDistance()).To(BeNumerically("==", 5))
	a.Wheel(profile.Zoom, 1000)
	g.Expect(a.TrackingDistance()).To(BeNumerically("~", 0.05, 1e-6))
}

func TestAvatarFollowsItsFrame(t *testing.T) {
	g := NewGomegaWithT(t)
	a := NewAvatarFrame(frame.New(), camera.New(), DefaultSettings())
	before := a.CameraPosition()

	a.Frame().SetPosition(math.Vec3{X: 2, Z: -3})
	g.Expect(a.CameraPosition().Sub(before).ApproxEqual(math.Vec3{X: 2, Z: -3}, eps)).To(BeTrue())

	a.Press(profile.MoveForward, 320, 240)
	a.Tick(1)
	a.Release(320, 240)
	g.Expect(a.Target().Z).To(BeNumerically("~", -3-a.FlySpeed(), eps))
}

func TestSettingsValidate(t *testing.T) {
	g := NewGomegaWithT(t)
	g.Expect(DefaultSettings().Validate()).To(Succeed())

	s := DefaultSettings()
	s.DampingFactor = 1
	s.FlySpeed = 0
	err := s.Validate()
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())
	g.Expect(err.Error()).To(ContainSubstring("damping_factor"))
	g.Expect(err.Error()).To(ContainSubstring("fly_speed"))
}
