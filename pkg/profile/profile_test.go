package profile

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/Faultbox/scenekit/pkg/errs"
)

var allModes = []Mode{Arcball, WheeledArcball, CAD, FirstPerson, ThirdPerson}

func TestDefaultBindingsAreLegal(t *testing.T) {
	for _, m := range allModes {
		t.Run(m.String(), func(t *testing.T) {
			p := New("test", m)
			for s, a := range p.CameraMouseBindings() {
				if !m.AllowsCameraMouse(a) {
					t.Errorf("camera %v -> %v not allowed", s, a)
				}
			}
			for s, a := range p.FrameMouseBindings() {
				if !m.AllowsFrameMouse(a) {
					t.Errorf("frame %v -> %v not allowed", s, a)
				}
			}
			for mods, a := range p.CameraWheelBindings() {
				if !m.AllowsCameraWheel(a) {
					t.Errorf("camera wheel %v -> %v not allowed", mods, a)
				}
			}
			for s, a := range p.ClickBindings() {
				if !m.AllowsClick(a) {
					t.Errorf("click %v -> %v not allowed", s, a)
				}
			}
			for s, a := range p.KeyBindings() {
				if !m.AllowsKey(a) {
					t.Errorf("key %v -> %v not allowed", s, a)
				}
			}
		})
	}
}

func TestModeDefaults(t *testing.T) {
	g := NewGomegaWithT(t)
	left := MouseShortcut{Button: ButtonLeft}

	g.Expect(New("a", Arcball).CameraMouseAction(left)).To(Equal(Rotate))
	g.Expect(New("a", Arcball).CameraWheelAction(ModNone)).To(Equal(NoAction))
	g.Expect(New("w", WheeledArcball).CameraWheelAction(ModNone)).To(Equal(Zoom))
	g.Expect(New("c", CAD).CameraMouseAction(left)).To(Equal(CadRotate))
	g.Expect(New("f", FirstPerson).CameraMouseAction(left)).To(Equal(MoveForward))

	third := New("t", ThirdPerson)
	g.Expect(third.CameraMouseBindings()).To(BeEmpty())
	g.Expect(third.FrameMouseAction(left)).To(Equal(MoveForward))
	g.Expect(third.KeyAction(Key("ARROW_LEFT", ModNone))).To(Equal(KeyDecreaseAzimuth))
}

func TestBindReportsReplacement(t *testing.T) {
	g := NewGomegaWithT(t)
	p := NewEmpty("p", Arcball)
	s := MouseShortcut{Button: ButtonRight, Mods: ModCtrl}

	replaced, err := p.BindCameraMouse(s, Translate)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(replaced).To(BeFalse())

	replaced, err = p.BindCameraMouse(s, ScreenRotate)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(replaced).To(BeTrue())
	g.Expect(p.CameraMouseAction(s)).To(Equal(ScreenRotate), "last write wins")

	g.Expect(p.UnbindCameraMouse(s)).To(BeTrue())
	g.Expect(p.UnbindCameraMouse(s)).To(BeFalse())
	g.Expect(p.CameraMouseAction(s)).To(Equal(NoAction))
}

func TestIllegalBindingsLeaveTablesUntouched(t *testing.T) {
	g := NewGomegaWithT(t)
	left := MouseShortcut{Button: ButtonLeft}

	arc := New("arc", Arcball)
	_, err := arc.BindCameraMouse(left, MoveForward)
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())
	g.Expect(arc.CameraMouseAction(left)).To(Equal(Rotate))

	third := New("third", ThirdPerson)
	_, err = third.BindCameraMouse(left, Rotate)
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())
	_, err = third.BindClick(ClickShortcut{Button: ButtonLeft, Clicks: 2}, ClickAlignCamera)
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())
	_, err = third.BindKey(Key("s", ModNone), KeyShowAll)
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())

	_, err = arc.BindCameraWheel(ModNone, Translate)
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())
	_, err = arc.BindKey(Key("ARROW_UP", ModNone), KeyIncreaseAzimuth)
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())
	_, err = arc.BindClick(ClickShortcut{Button: ButtonLeft}, ClickShowAll)
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())
}

func TestPathActionsNeedDigits(t *testing.T) {
	g := NewGomegaWithT(t)
	p := NewEmpty("p", FirstPerson)

	_, err := p.BindKey(Key("k", ModCtrl), KeyAddKeyFrameToPath)
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())

	_, err = p.BindKey(Key("7", ModCtrl), KeyAddKeyFrameToPath)
	g.Expect(err).NotTo(HaveOccurred())
	id, ok := Key("7", ModCtrl).Digit()
	g.Expect(ok).To(BeTrue())
	g.Expect(id).To(Equal(7))
}

func TestResetAndClear(t *testing.T) {
	g := NewGomegaWithT(t)
	p := New("p", CAD)
	defaults := p.Tables()

	p.Clear()
	g.Expect(p.CameraMouseBindings()).To(BeEmpty())
	g.Expect(p.KeyBindings()).To(BeEmpty())

	p.Reset()
	g.Expect(p.Tables()).To(Equal(defaults))
}

func TestParseShortcuts(t *testing.T) {
	g := NewGomegaWithT(t)

	ms, err := ParseMouseShortcut("shift+ctrl+Right")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ms).To(Equal(MouseShortcut{Button: ButtonRight, Mods: ModShift | ModCtrl}))
	g.Expect(ms.String()).To(Equal("SHIFT+CTRL+RIGHT"))

	cs, err := ParseClickShortcut("ALT+LEFT*2")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cs).To(Equal(ClickShortcut{Button: ButtonLeft, Mods: ModAlt, Clicks: 2}))
	cs, err = ParseClickShortcut("MIDDLE")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cs.Clicks).To(Equal(1))

	mods, err := ParseWheelShortcut("CTRL+WHEEL")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(mods).To(Equal(ModCtrl))

	ks, err := ParseKeyShortcut("CTRL+1")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ks).To(Equal(KeyShortcut{Key: "1", Mods: ModCtrl}))
	ks, err = ParseKeyShortcut("CTRL++")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ks).To(Equal(KeyShortcut{Key: "PLUS", Mods: ModCtrl}))
	ks, err = ParseKeyShortcut("S")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ks.Key).To(Equal("s"))
	ks, err = ParseKeyShortcut("arrow_left")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ks.Key).To(Equal("ARROW_LEFT"))

	bad := []func() error{
		func() error { _, err := ParseMouseShortcut("HYPER+LEFT"); return err },
		func() error { _, err := ParseMouseShortcut("SHIFT+"); return err },
		func() error { _, err := ParseMouseShortcut("WHEEL"); return err },
		func() error { _, err := ParseClickShortcut("LEFT*0"); return err },
		func() error { _, err := ParseClickShortcut("LEFT*x"); return err },
		func() error { _, err := ParseWheelShortcut("LEFT"); return err },
		func() error { _, err := ParseKeyShortcut("NOT_A_KEY"); return err },
	}
	for i, fn := range bad {
		g.Expect(errs.IsConfiguration(fn())).To(BeTrue(), "case %d", i)
	}
}

func TestParseActionNames(t *testing.T) {
	g := NewGomegaWithT(t)

	for a := NoAction; a <= ZoomOnRegion; a++ {
		got, err := ParseMouseAction(a.String())
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(got).To(Equal(a))
	}
	for a := ClickNone; a <= ClickAlignCamera; a++ {
		got, err := ParseClickAction(a.String())
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(got).To(Equal(a))
	}
	for a := KeyNone; a <= KeyResetPath; a++ {
		got, err := ParseKeyboardAction(a.String())
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(got).To(Equal(a))
	}
	for _, m := range allModes {
		got, err := ParseMode(m.String())
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(got).To(Equal(m))
	}

	_, err := ParseMouseAction("FLY")
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())
	_, err = ParseMode("ORBIT")
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())
	g.Expect(MouseAction(99).String()).To(Equal("MouseAction(99)"))
}

func TestTablesRoundTrip(t *testing.T) {
	g := NewGomegaWithT(t)

	for _, m := range allModes {
		p := New("p", m)
		back, err := FromTables(p.Tables())
		g.Expect(err).NotTo(HaveOccurred(), "mode %v", m)
		g.Expect(back.Mode()).To(Equal(m))
		g.Expect(back.CameraMouseBindings()).To(Equal(p.CameraMouseBindings()))
		g.Expect(back.FrameMouseBindings()).To(Equal(p.FrameMouseBindings()))
		g.Expect(back.CameraWheelBindings()).To(Equal(p.CameraWheelBindings()))
		g.Expect(back.ClickBindings()).To(Equal(p.ClickBindings()))
		g.Expect(back.KeyBindings()).To(Equal(p.KeyBindings()))
	}
}

func TestFromTables(t *testing.T) {
	g := NewGomegaWithT(t)

	p, err := FromTables(Tables{
		Name:     "custom",
		Mode:     "ARCBALL",
		Defaults: true,
		CameraMouse: map[string]string{
			"SHIFT+LEFT": "TRANSLATE",
		},
		Clicks: map[string]string{"LEFT*2": "CENTER_SCENE"},
		Keys:   map[string]string{"CTRL+9": "ADD_KEYFRAME_TO_PATH"},
	})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(p.Name()).To(Equal("custom"))
	g.Expect(p.CameraMouseAction(MouseShortcut{Button: ButtonLeft, Mods: ModShift})).To(Equal(Translate))
	g.Expect(p.CameraMouseAction(MouseShortcut{Button: ButtonLeft})).To(Equal(Rotate))
	g.Expect(p.ClickAction(ClickShortcut{Button: ButtonLeft, Clicks: 2})).To(Equal(ClickCenterScene))
	g.Expect(p.KeyAction(Key("9", ModCtrl))).To(Equal(KeyAddKeyFrameToPath))

	_, err = FromTables(Tables{
		Name: "broken",
		Mode: "CAD",
		CameraMouse: map[string]string{
			"LEFT":       "ROTATE",
			"HYPER+LEFT": "ZOOM",
		},
		Keys: map[string]string{"k": "PLAY_PATH"},
	})
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())
	g.Expect(err.Error()).To(ContainSubstring("ROTATE"))
	g.Expect(err.Error()).To(ContainSubstring("HYPER"))
	g.Expect(err.Error()).To(ContainSubstring("digit"))

	_, err = FromTables(Tables{Mode: "CAD"})
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())
	_, err = FromTables(Tables{Name: "x", Mode: "ORBIT"})
	g.Expect(errs.IsConfiguration(err)).To(BeTrue())
}
