// Package keyframe turns a sequence of timed poses into a smooth,
// time-parameterized path and plays it back on a frame.
//
// Positions follow a cubic Hermite spline with Catmull-Rom tangents scaled
// by the keyframe spacing, so the curve is C1 in time. Orientations follow
// a spherical spline (squad). Both pass exactly through every keyframe.
package keyframe

import (
	"sort"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/internal/logger"
	"github.com/Faultbox/scenekit/pkg/errs"
	"github.com/Faultbox/scenekit/pkg/frame"
	"github.com/Faultbox/scenekit/pkg/math"
)

// KeyFrame is a pose at a time. A keyframe created from a frame re-reads
// that frame's pose every time the path is sampled.
type KeyFrame struct {
	Time float32

	pose  frame.Pose
	frame *frame.Frame
}

// Pose returns the keyframe pose.
func (k KeyFrame) Pose() frame.Pose {
	if k.frame != nil {
		return k.frame.Pose()
	}
	return k.pose
}

// Frame returns the live frame the keyframe follows, or nil.
func (k KeyFrame) Frame() *frame.Frame { return k.frame }

// Interpolator holds a keyframe path and a playback clock.
type Interpolator struct {
	keyFrames []KeyFrame
	driven    *frame.Frame

	time    float32
	speed   float32
	loop    bool
	running bool

	onFinished func()

	// spline cache, rebuilt when dirty or when live keyframes exist
	dirty     bool
	positions []math.Vec3
	tangents  []math.Vec3
	rotations []math.Quat
	quatTgs   []math.Quat
	scalings  []math.Vec3
}

// New returns an empty interpolator driving f. f may be nil, in which case
// the path can only be sampled.
func New(f *frame.Frame) *Interpolator {
	return &Interpolator{driven: f, speed: 1, dirty: true}
}

// Frame returns the driven frame.
func (ip *Interpolator) Frame() *frame.Frame { return ip.driven }

// SetFrame changes the driven frame.
func (ip *Interpolator) SetFrame(f *frame.Frame) { ip.driven = f }

// AddKeyFrame appends a pose at time t. Times must be strictly increasing;
// otherwise the path is left unchanged and a configuration error is returned.
func (ip *Interpolator) AddKeyFrame(p frame.Pose, t float32) error {
	return ip.add(KeyFrame{Time: t, pose: p})
}

// AddKeyFrameFrom appends a keyframe that follows f.
func (ip *Interpolator) AddKeyFrameFrom(f *frame.Frame, t float32) error {
	if f == nil {
		return errs.Configuration.New("keyframe frame is nil")
	}
	return ip.add(KeyFrame{Time: t, frame: f})
}

// AddKeyFrameAuto appends a pose one second after the last keyframe, or at
// time zero for an empty path.
func (ip *Interpolator) AddKeyFrameAuto(p frame.Pose) {
	t := float32(0)
	if n := len(ip.keyFrames); n > 0 {
		t = ip.keyFrames[n-1].Time + 1
	}
	// cannot fail: t is past the last keyframe
	_ = ip.AddKeyFrame(p, t)
}

func (ip *Interpolator) add(k KeyFrame) error {
	if n := len(ip.keyFrames); n > 0 && k.Time <= ip.keyFrames[n-1].Time {
		return errs.Configuration.New("keyframe time %v is not after %v", k.Time, ip.keyFrames[n-1].Time)
	}
	if math32.IsNaN(k.Time) || math32.IsInf(k.Time, 0) {
		return errs.Configuration.New("keyframe time %v is not finite", k.Time)
	}
	ip.keyFrames = append(ip.keyFrames, k)
	ip.dirty = true
	return nil
}

// RemoveKeyFrame deletes the keyframe at index i.
func (ip *Interpolator) RemoveKeyFrame(i int) error {
	if i < 0 || i >= len(ip.keyFrames) {
		return errs.Configuration.New("keyframe index %d out of range [0, %d)", i, len(ip.keyFrames))
	}
	ip.keyFrames = append(ip.keyFrames[:i], ip.keyFrames[i+1:]...)
	ip.dirty = true
	if len(ip.keyFrames) < 2 {
		ip.Stop()
	}
	return nil
}

// Clear stops playback and removes every keyframe.
func (ip *Interpolator) Clear() {
	ip.Stop()
	ip.keyFrames = nil
	ip.time = 0
	ip.dirty = true
}

// KeyFrames returns a copy of the keyframes.
func (ip *Interpolator) KeyFrames() []KeyFrame {
	out := make([]KeyFrame, len(ip.keyFrames))
	copy(out, ip.keyFrames)
	return out
}

// NumberOfKeyFrames returns the number of keyframes.
func (ip *Interpolator) NumberOfKeyFrames() int { return len(ip.keyFrames) }

// FirstTime returns the time of the first keyframe, or 0.
func (ip *Interpolator) FirstTime() float32 {
	if len(ip.keyFrames) == 0 {
		return 0
	}
	return ip.keyFrames[0].Time
}

// LastTime returns the time of the last keyframe, or 0.
func (ip *Interpolator) LastTime() float32 {
	if len(ip.keyFrames) == 0 {
		return 0
	}
	return ip.keyFrames[len(ip.keyFrames)-1].Time
}

// Duration returns LastTime - FirstTime.
func (ip *Interpolator) Duration() float32 { return ip.LastTime() - ip.FirstTime() }

// Time returns the playback clock.
func (ip *Interpolator) Time() float32 { return ip.time }

// SetTime moves the playback clock without updating the frame.
func (ip *Interpolator) SetTime(t float32) { ip.time = t }

// Speed returns the playback speed multiplier.
func (ip *Interpolator) Speed() float32 { return ip.speed }

// SetSpeed sets how many path seconds elapse per tick second. Negative
// values play the path backwards.
func (ip *Interpolator) SetSpeed(s float32) { ip.speed = s }

// Loop reports whether playback wraps at the ends.
func (ip *Interpolator) Loop() bool { return ip.loop }

// SetLoop sets whether playback wraps at the ends or stops there.
func (ip *Interpolator) SetLoop(loop bool) { ip.loop = loop }

// IsRunning reports whether Tick advances the clock.
func (ip *Interpolator) IsRunning() bool { return ip.running }

// SetOnFinished registers fn, called when non-looping playback reaches an end.
func (ip *Interpolator) SetOnFinished(fn func()) { ip.onFinished = fn }

// Start begins playback. Playback that already reached the end of the path
// restarts from the other end.
func (ip *Interpolator) Start() error {
	if len(ip.keyFrames) < 2 {
		return errs.InsufficientKeyframes.New("path has %d keyframes, need 2", len(ip.keyFrames))
	}
	if ip.speed >= 0 && ip.time >= ip.LastTime() {
		ip.time = ip.FirstTime()
	}
	if ip.speed < 0 && ip.time <= ip.FirstTime() {
		ip.time = ip.LastTime()
	}
	if ip.time < ip.FirstTime() || ip.time > ip.LastTime() {
		ip.time = ip.FirstTime()
	}
	ip.running = true
	logger.Named("keyframe").Debug("playback started",
		zap.Int("keyframes", len(ip.keyFrames)), zap.Float32("time", ip.time))
	return nil
}

// Stop pauses playback. It is idempotent.
func (ip *Interpolator) Stop() {
	if ip.running {
		logger.Named("keyframe").Debug("playback stopped", zap.Float32("time", ip.time))
	}
	ip.running = false
}

// Toggle starts a stopped path and stops a running one.
func (ip *Interpolator) Toggle() error {
	if ip.running {
		ip.Stop()
		return nil
	}
	return ip.Start()
}

// Reset stops playback and rewinds to the first keyframe, moving the frame there.
func (ip *Interpolator) Reset() {
	ip.Stop()
	ip.time = ip.FirstTime()
	ip.apply()
}

// Tick advances the clock by dt seconds times the speed and moves the
// driven frame. It does nothing while stopped.
func (ip *Interpolator) Tick(dt float32) {
	if !ip.running {
		return
	}
	if len(ip.keyFrames) < 2 {
		ip.Stop()
		return
	}

	ip.time += dt * ip.speed
	first, last := ip.FirstTime(), ip.LastTime()

	finished := false
	switch {
	case ip.time > last:
		if ip.loop {
			ip.time = ip.wrap(ip.time)
		} else {
			ip.time = last
			finished = true
		}
	case ip.time < first:
		if ip.loop {
			ip.time = ip.wrap(ip.time)
		} else {
			ip.time = first
			finished = true
		}
	}

	ip.apply()

	if finished {
		ip.Stop()
		if ip.onFinished != nil {
			ip.onFinished()
		}
	}
}

func (ip *Interpolator) apply() {
	if ip.driven == nil || len(ip.keyFrames) < 2 {
		return
	}
	p, err := ip.PoseAt(ip.time)
	if err != nil {
		return
	}
	ip.driven.SetPose(p)
}

// wrap maps t into [first, last]; times outside it come back into
// [first, last).
func (ip *Interpolator) wrap(t float32) float32 {
	first, d := ip.FirstTime(), ip.Duration()
	if d <= 0 {
		return first
	}
	r := math32.Mod(t-first, d)
	if r < 0 {
		r += d
	}
	return first + r
}

// PoseAt samples the path at time t. With looping enabled t wraps around the
// path, otherwise it is clamped to the first and last keyframe.
func (ip *Interpolator) PoseAt(t float32) (frame.Pose, error) {
	n := len(ip.keyFrames)
	if n < 2 {
		return frame.Pose{}, errs.InsufficientKeyframes.New("path has %d keyframes, need 2", n)
	}
	first, last := ip.FirstTime(), ip.LastTime()
	switch {
	case t < first || t > last:
		if ip.loop {
			t = ip.wrap(t)
		} else {
			t = math32.Max(first, math32.Min(t, last))
		}
	}

	ip.update()

	// i is the segment [i, i+1] that contains t.
	i := sort.Search(n, func(k int) bool { return ip.keyFrames[k].Time > t }) - 1
	if i < 0 {
		i = 0
	}
	if i >= n-1 {
		i = n - 2
	}

	t0, t1 := ip.keyFrames[i].Time, ip.keyFrames[i+1].Time
	h := t1 - t0
	s := (t - t0) / h

	return frame.Pose{
		Position:    hermite(ip.positions[i], ip.tangents[i], ip.positions[i+1], ip.tangents[i+1], h, s),
		Orientation: math.Squad(ip.rotations[i], ip.quatTgs[i], ip.quatTgs[i+1], ip.rotations[i+1], s),
		Magnitude:   ip.scalings[i].Lerp(ip.scalings[i+1], s),
	}, nil
}

// hermite evaluates the cubic Hermite segment at s in [0, 1]. Tangents are
// per unit time, h is the segment duration.
func hermite(p0, m0, p1, m1 math.Vec3, h, s float32) math.Vec3 {
	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	return p0.Scale(h00).
		Add(m0.Scale(h10 * h)).
		Add(p1.Scale(h01)).
		Add(m1.Scale(h11 * h))
}

func (ip *Interpolator) hasLiveKeyFrames() bool {
	for _, k := range ip.keyFrames {
		if k.frame != nil {
			return true
		}
	}
	return false
}

// update rebuilds the spline coefficients.
func (ip *Interpolator) update() {
	if !ip.dirty && !ip.hasLiveKeyFrames() {
		return
	}
	n := len(ip.keyFrames)
	ip.positions = ip.positions[:0]
	ip.rotations = ip.rotations[:0]
	ip.scalings = ip.scalings[:0]

	for i, k := range ip.keyFrames {
		p := k.Pose()
		q := p.Orientation.Normalize()
		// keep consecutive orientations in one hemisphere
		if i > 0 && ip.rotations[i-1].Dot(q) < 0 {
			q = q.Negate()
		}
		m := p.Magnitude
		if m == (math.Vec3{}) {
			m = math.Vec3{X: 1, Y: 1, Z: 1}
		}
		ip.positions = append(ip.positions, p.Position)
		ip.rotations = append(ip.rotations, q)
		ip.scalings = append(ip.scalings, m)
	}

	ip.tangents = ip.tangents[:0]
	ip.quatTgs = ip.quatTgs[:0]
	for i := 0; i < n; i++ {
		prev, next := i-1, i+1
		if prev < 0 {
			prev = 0
		}
		if next > n-1 {
			next = n - 1
		}
		dt := ip.keyFrames[next].Time - ip.keyFrames[prev].Time
		ip.tangents = append(ip.tangents, ip.positions[next].Sub(ip.positions[prev]).Scale(1/dt))
		ip.quatTgs = append(ip.quatTgs, math.SquadTangent(ip.rotations[prev], ip.rotations[i], ip.rotations[next]))
	}
	ip.dirty = false
}
