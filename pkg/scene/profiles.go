package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/scenekit/pkg/camera"
	"github.com/Faultbox/scenekit/pkg/errs"
	"github.com/Faultbox/scenekit/pkg/profile"
)

// CurrentProfile returns the active camera profile.
func (s *Scene) CurrentProfile() *profile.Profile { return s.profiles[s.current] }

// Profile returns the registered profile called name, or nil.
func (s *Scene) Profile(name string) *profile.Profile {
	if i := s.indexOf(name); i >= 0 {
		return s.profiles[i]
	}
	return nil
}

// ProfileNames returns the registered profile names in cycling order.
func (s *Scene) ProfileNames() []string {
	names := make([]string, len(s.profiles))
	for i, p := range s.profiles {
		names[i] = p.Name()
	}
	return names
}

func (s *Scene) indexOf(name string) int {
	for i, p := range s.profiles {
		if p.Name() == name {
			return i
		}
	}
	return -1
}

func (s *Scene) indexOfMode(m profile.Mode) int {
	for i, p := range s.profiles {
		if p.Mode() == m {
			return i
		}
	}
	return -1
}

// firstDrivable returns the index of the first profile that is not third
// person. There always is one.
func (s *Scene) firstDrivable() int {
	for i, p := range s.profiles {
		if p.Mode() != profile.ThirdPerson {
			return i
		}
	}
	return 0
}

// RegisterProfile adds p at the end of the cycling order. Names are unique.
func (s *Scene) RegisterProfile(p *profile.Profile) error {
	if p == nil {
		return errs.Configuration.New("nil profile")
	}
	if s.indexOf(p.Name()) >= 0 {
		return errs.Configuration.New("profile %q is already registered", p.Name())
	}
	s.profiles = append(s.profiles, p)
	logProfile("profile registered", p)
	return nil
}

// UnregisterProfile removes the profile called name. The last profile that
// keeps the camera drivable, that is not third person, cannot be removed.
// Removing the active profile activates the next one.
func (s *Scene) UnregisterProfile(name string) error {
	i := s.indexOf(name)
	if i < 0 {
		return errs.Configuration.New("no profile %q", name)
	}
	p := s.profiles[i]
	if p.Mode() != profile.ThirdPerson {
		drivable := 0
		for _, other := range s.profiles {
			if other.Mode() != profile.ThirdPerson {
				drivable++
			}
		}
		if drivable == 1 {
			return errs.State.New("cannot unregister %q, the last profile that drives the camera", name)
		}
	}

	if i == s.current {
		s.switchTo(s.nextIndex(i, func(q *profile.Profile) bool { return q != p }))
	}
	current := s.CurrentProfile()
	s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
	s.current = s.indexOf(current.Name())
	logProfile("profile unregistered", p)
	return nil
}

// SetProfile activates the profile called name. Activating a third person
// profile needs an avatar.
func (s *Scene) SetProfile(name string) error {
	i := s.indexOf(name)
	if i < 0 {
		return errs.Configuration.New("no profile %q", name)
	}
	if s.profiles[i].Mode() == profile.ThirdPerson && s.avatar == nil {
		return errs.State.New("profile %q needs an avatar", name)
	}
	s.switchTo(i)
	return nil
}

// NextProfile activates the next usable profile in cycling order.
func (s *Scene) NextProfile() {
	s.switchTo(s.nextIndex(s.current, func(*profile.Profile) bool { return true }))
}

// nextIndex returns the first index after from whose profile is usable and
// accepted by ok, wrapping around. It returns from when there is none.
func (s *Scene) nextIndex(from int, ok func(*profile.Profile) bool) int {
	for step := 1; step <= len(s.profiles); step++ {
		i := (from + step) % len(s.profiles)
		p := s.profiles[i]
		if p.Mode() == profile.ThirdPerson && s.avatar == nil {
			continue
		}
		if ok(p) {
			return i
		}
	}
	return from
}

// switchTo activates profile i. Entering or leaving third person moves the
// camera with a smooth transition.
func (s *Scene) switchTo(i int) {
	if i == s.current {
		return
	}
	from := s.profiles[s.current].Mode()
	to := s.profiles[i].Mode()

	s.cancelGesture()
	s.current = i

	switch {
	case to == profile.ThirdPerson && from != profile.ThirdPerson:
		s.beforeThirdPerson = s.camera.Frame().Pose()
		s.camera.InterpolateTo(s.avatar.CameraPose(), camera.DefaultInterpolationDuration)
	case from == profile.ThirdPerson && to != profile.ThirdPerson:
		s.camera.InterpolateTo(s.beforeThirdPerson, camera.DefaultInterpolationDuration)
	}
	if to == profile.FirstPerson {
		s.cameraCtl.SetFlyUpVector(s.camera.UpVector())
	}

	logProfile("profile activated", s.profiles[i], zap.Stringer("previous_mode", from))
}

// cancelGesture drops the gesture in progress and any residual motion.
func (s *Scene) cancelGesture() {
	if s.active != nil {
		s.active.Release(s.pointerX, s.pointerY)
		s.active = nil
	}
	s.cameraCtl.StopSpinning()
	for _, c := range s.grabbers.All() {
		c.StopSpinning()
	}
}
