package errs

import (
	"errors"
	"testing"

	"github.com/joomcode/errorx"
)

func TestTypes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   func(error) bool
	}{
		{"configuration", Configuration.New("cycle"), IsConfiguration},
		{"geometry", Geometry.New("singular"), IsGeometry},
		{"state", State.New("no frame"), IsState},
		{"keyframes", InsufficientKeyframes.New("1 keyframe"), IsInsufficientKeyframes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.is(tt.err) {
				t.Errorf("%v not recognised by its helper", tt.err)
			}
			if tt.name != "state" && IsState(tt.err) {
				t.Errorf("%v misclassified as state error", tt.err)
			}
		})
	}
}

func TestDecoratedKeepsType(t *testing.T) {
	err := errorx.Decorate(Geometry.New("singular"), "unproject")
	if !IsGeometry(err) {
		t.Errorf("decorated error lost its type: %v", err)
	}
	if IsGeometry(errors.New("plain")) {
		t.Error("plain error classified as geometry")
	}
}

func TestFrameProperty(t *testing.T) {
	err := Configuration.New("cycle").WithProperty(PropertyFrame, "arm")
	v, ok := errorx.ExtractProperty(err, PropertyFrame)
	if !ok || v != "arm" {
		t.Errorf("ExtractProperty = %v, %v", v, ok)
	}
}
