package profile

import (
	"sort"

	"go.uber.org/multierr"

	"github.com/Faultbox/scenekit/pkg/errs"
)

// Tables is the textual form of a profile used in configuration files.
// Keys are shortcuts such as "SHIFT+LEFT", "CTRL+WHEEL", "LEFT*2" or
// "CTRL+1"; values are action names.
type Tables struct {
	Name string `yaml:"name"`
	Mode string `yaml:"mode"`
	// Defaults starts from the mode defaults instead of empty tables.
	Defaults bool `yaml:"defaults"`

	CameraMouse map[string]string `yaml:"camera_mouse,omitempty"`
	FrameMouse  map[string]string `yaml:"frame_mouse,omitempty"`
	CameraWheel map[string]string `yaml:"camera_wheel,omitempty"`
	FrameWheel  map[string]string `yaml:"frame_wheel,omitempty"`
	Clicks      map[string]string `yaml:"clicks,omitempty"`
	Keys        map[string]string `yaml:"keys,omitempty"`
}

// FromTables builds a profile from its textual form. Every invalid entry is
// reported; the profile is only returned when all entries are valid.
func FromTables(t Tables) (*Profile, error) {
	if t.Name == "" {
		return nil, errs.Configuration.New("profile without a name")
	}
	mode, err := ParseMode(t.Mode)
	if err != nil {
		return nil, errs.Configuration.Wrap(err, "profile %q", t.Name)
	}

	p := NewEmpty(t.Name, mode)
	if t.Defaults {
		p.applyDefaults()
	}

	var all error
	each(t.CameraMouse, func(k, v string) {
		multierr.AppendInto(&all, bindText(k, v, ParseMouseShortcut, ParseMouseAction, p.BindCameraMouse))
	})
	each(t.FrameMouse, func(k, v string) {
		multierr.AppendInto(&all, bindText(k, v, ParseMouseShortcut, ParseMouseAction, p.BindFrameMouse))
	})
	each(t.CameraWheel, func(k, v string) {
		multierr.AppendInto(&all, bindText(k, v, ParseWheelShortcut, ParseMouseAction, p.BindCameraWheel))
	})
	each(t.FrameWheel, func(k, v string) {
		multierr.AppendInto(&all, bindText(k, v, ParseWheelShortcut, ParseMouseAction, p.BindFrameWheel))
	})
	each(t.Clicks, func(k, v string) {
		multierr.AppendInto(&all, bindText(k, v, ParseClickShortcut, ParseClickAction, p.BindClick))
	})
	each(t.Keys, func(k, v string) {
		multierr.AppendInto(&all, bindText(k, v, ParseKeyShortcut, ParseKeyboardAction, p.BindKey))
	})

	if all != nil {
		return nil, errs.Configuration.Wrap(all, "profile %q", t.Name)
	}
	return p, nil
}

// each visits m in key order so reported errors are stable.
func each(m map[string]string, fn func(k, v string)) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fn(k, m[k])
	}
}

func bindText[S, A any](
	shortcut, action string,
	parseShortcut func(string) (S, error),
	parseAction func(string) (A, error),
	bind func(S, A) (bool, error),
) error {
	s, err := parseShortcut(shortcut)
	if err != nil {
		return err
	}
	a, err := parseAction(action)
	if err != nil {
		return err
	}
	_, err = bind(s, a)
	return err
}

// Tables returns the textual form of the profile.
func (p *Profile) Tables() Tables {
	t := Tables{
		Name:        p.name,
		Mode:        p.mode.String(),
		CameraMouse: make(map[string]string, len(p.cameraMouse)),
		FrameMouse:  make(map[string]string, len(p.frameMouse)),
		CameraWheel: make(map[string]string, len(p.cameraWheel)),
		FrameWheel:  make(map[string]string, len(p.frameWheel)),
		Clicks:      make(map[string]string, len(p.clicks)),
		Keys:        make(map[string]string, len(p.keys)),
	}
	for s, a := range p.cameraMouse {
		t.CameraMouse[s.String()] = a.String()
	}
	for s, a := range p.frameMouse {
		t.FrameMouse[s.String()] = a.String()
	}
	for m, a := range p.cameraWheel {
		t.CameraWheel[withMods(m, "WHEEL")] = a.String()
	}
	for m, a := range p.frameWheel {
		t.FrameWheel[withMods(m, "WHEEL")] = a.String()
	}
	for s, a := range p.clicks {
		t.Clicks[s.String()] = a.String()
	}
	for s, a := range p.keys {
		t.Keys[s.String()] = a.String()
	}
	return t
}
