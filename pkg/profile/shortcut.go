package profile

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Faultbox/scenekit/pkg/errs"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

var buttonNames = [...]string{
	ButtonNone:   "NONE",
	ButtonLeft:   "LEFT",
	ButtonMiddle: "MIDDLE",
	ButtonRight:  "RIGHT",
}

func (b Button) String() string {
	if b >= 0 && int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

// Modifier is a bitmask of keyboard modifiers held during a gesture.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta

	ModNone Modifier = 0
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModShift, "SHIFT"},
	{ModCtrl, "CTRL"},
	{ModAlt, "ALT"},
	{ModMeta, "META"},
}

func (m Modifier) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m&mn.mod != 0 {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "+")
}

func parseModifier(s string) (Modifier, bool) {
	switch s {
	case "CONTROL":
		return ModCtrl, true
	case "CMD", "SUPER":
		return ModMeta, true
	}
	for _, mn := range modifierNames {
		if mn.name == s {
			return mn.mod, true
		}
	}
	return ModNone, false
}

// MouseShortcut is a button pressed with a modifier mask.
type MouseShortcut struct {
	Button Button
	Mods   Modifier
}

func (s MouseShortcut) String() string { return withMods(s.Mods, s.Button.String()) }

// ClickShortcut is a button clicked Clicks times with a modifier mask.
type ClickShortcut struct {
	Button Button
	Mods   Modifier
	Clicks int
}

func (s ClickShortcut) String() string {
	return withMods(s.Mods, s.Button.String()) + "*" + strconv.Itoa(s.Clicks)
}

// KeyShortcut is a key typed with a modifier mask. Printable keys are a
// single lowercase character; other keys use names such as "SPACE" or
// "ARROW_LEFT".
type KeyShortcut struct {
	Key  string
	Mods Modifier
}

func (s KeyShortcut) String() string { return withMods(s.Mods, s.Key) }

// Digit returns the value of a digit key.
func (s KeyShortcut) Digit() (int, bool) {
	if len(s.Key) == 1 && s.Key[0] >= '0' && s.Key[0] <= '9' {
		return int(s.Key[0] - '0'), true
	}
	return 0, false
}

// Named keys understood by ParseKeyShortcut.
var keyNames = map[string]bool{
	"SPACE": true, "ENTER": true, "ESCAPE": true, "TAB": true, "BACKSPACE": true, "DELETE": true,
	"ARROW_LEFT": true, "ARROW_RIGHT": true, "ARROW_UP": true, "ARROW_DOWN": true,
	"PLUS": true, "MINUS": true,
	"F1": true, "F2": true, "F3": true, "F4": true, "F5": true, "F6": true,
	"F7": true, "F8": true, "F9": true, "F10": true, "F11": true, "F12": true,
}

// Key returns the canonical key shortcut for a key name or a printable
// character.
func Key(name string, mods Modifier) KeyShortcut {
	return KeyShortcut{Key: canonicalKey(name), Mods: mods}
}

func canonicalKey(name string) string {
	switch name {
	case " ":
		return "SPACE"
	case "+":
		return "PLUS"
	case "-":
		return "MINUS"
	}
	if utf8.RuneCountInString(name) == 1 {
		return strings.ToLower(name)
	}
	return strings.ToUpper(name)
}

func withMods(m Modifier, s string) string {
	if m == ModNone {
		return s
	}
	return m.String() + "+" + s
}

// splitMods splits "SHIFT+CTRL+X" into the modifier mask and "X".
func splitMods(s string) (Modifier, string, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	// a trailing "+" key, as in "CTRL++"
	if n := len(parts); n >= 2 && parts[n-1] == "" && parts[n-2] == "" {
		parts = append(parts[:n-2], "+")
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		m, ok := parseModifier(strings.ToUpper(strings.TrimSpace(p)))
		if !ok {
			return ModNone, "", errs.Configuration.New("unknown modifier %q in %q", p, s)
		}
		mods |= m
	}
	last := strings.TrimSpace(parts[len(parts)-1])
	if last == "" {
		return ModNone, "", errs.Configuration.New("missing key or button in %q", s)
	}
	return mods, last, nil
}

func parseButton(s string) (Button, error) {
	i, ok := lookup(buttonNames[1:], s)
	if !ok {
		return ButtonNone, errs.Configuration.New("unknown button %q", s)
	}
	return Button(i + 1), nil
}

// ParseMouseShortcut parses shortcuts such as "LEFT" or "SHIFT+RIGHT".
func ParseMouseShortcut(s string) (MouseShortcut, error) {
	mods, rest, err := splitMods(s)
	if err != nil {
		return MouseShortcut{}, err
	}
	b, err := parseButton(rest)
	if err != nil {
		return MouseShortcut{}, err
	}
	return MouseShortcut{Button: b, Mods: mods}, nil
}

// ParseWheelShortcut parses "WHEEL" or a modified wheel such as "CTRL+WHEEL".
func ParseWheelShortcut(s string) (Modifier, error) {
	mods, rest, err := splitMods(s)
	if err != nil {
		return ModNone, err
	}
	if strings.ToUpper(rest) != "WHEEL" {
		return ModNone, errs.Configuration.New("wheel shortcut %q does not end with WHEEL", s)
	}
	return mods, nil
}

// ParseClickShortcut parses shortcuts such as "LEFT", "LEFT*2" or
// "ALT+RIGHT*2". The click count defaults to one.
func ParseClickShortcut(s string) (ClickShortcut, error) {
	mods, rest, err := splitMods(s)
	if err != nil {
		return ClickShortcut{}, err
	}
	clicks := 1
	if i := strings.IndexByte(rest, '*'); i >= 0 {
		clicks, err = strconv.Atoi(strings.TrimSpace(rest[i+1:]))
		if err != nil || clicks < 1 {
			return ClickShortcut{}, errs.Configuration.New("invalid click count in %q", s)
		}
		rest = strings.TrimSpace(rest[:i])
	}
	b, err := parseButton(rest)
	if err != nil {
		return ClickShortcut{}, err
	}
	return ClickShortcut{Button: b, Mods: mods, Clicks: clicks}, nil
}

// ParseKeyShortcut parses shortcuts such as "s", "SHIFT+s", "CTRL+1" or
// "ARROW_LEFT".
func ParseKeyShortcut(s string) (KeyShortcut, error) {
	mods, rest, err := splitMods(s)
	if err != nil {
		return KeyShortcut{}, err
	}
	key := canonicalKey(rest)
	if utf8.RuneCountInString(key) != 1 && !keyNames[key] {
		return KeyShortcut{}, errs.Configuration.New("unknown key %q in %q", rest, s)
	}
	return KeyShortcut{Key: key, Mods: mods}, nil
}
