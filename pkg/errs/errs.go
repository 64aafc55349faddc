// Package errs defines the error taxonomy shared by the scene packages.
//
// Every error returned by the frame, keyframe, camera, profile and scene
// packages is an *errorx.Error of one of the types below, so callers can
// branch with the Is helpers instead of matching strings.
package errs

import "github.com/joomcode/errorx"

var (
	// Namespace groups all scene errors.
	Namespace = errorx.NewNamespace("scene")

	// Configuration is returned when a caller asks for an invalid setup:
	// a reference cycle, a non-increasing keyframe time, a binding that the
	// active mode does not allow.
	Configuration = Namespace.NewType("configuration")

	// Geometry is returned when a computation has no defined result,
	// such as unprojecting through a singular matrix.
	Geometry = Namespace.NewType("geometry")

	// State is returned for operations invoked out of order.
	State = Namespace.NewType("state")

	// InsufficientKeyframes is returned when a path is evaluated with fewer
	// than two keyframes.
	InsufficientKeyframes = Namespace.NewType("insufficient_keyframes")
)

// PropertyFrame carries the name of the frame involved in an error.
var PropertyFrame = errorx.RegisterProperty("frame")

func IsConfiguration(err error) bool { return errorx.IsOfType(err, Configuration) }

func IsGeometry(err error) bool { return errorx.IsOfType(err, Geometry) }

func IsState(err error) bool { return errorx.IsOfType(err, State) }

func IsInsufficientKeyframes(err error) bool {
	return errorx.IsOfType(err, InsufficientKeyframes)
}
