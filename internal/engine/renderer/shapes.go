package renderer

import "github.com/Faultbox/scenekit/pkg/math"

// Axes draws the X, Y and Z axes of the current model frame.
func (r *Renderer) Axes(length float32) {
	o := math.Vec3{}
	r.DrawLines([]Vertex{
		{o, Red}, {math.Vec3{X: length}, Red},
		{o, Green}, {math.Vec3{Y: length}, Green},
		{o, Blue}, {math.Vec3{Z: length}, Blue},
	})
}

// Grid draws a square grid of the given half size in the XY plane of the
// current model frame.
func (r *Renderer) Grid(size float32, divisions int, c Color) {
	if divisions < 1 {
		divisions = 1
	}
	lines := make([]Vertex, 0, 4*(divisions+1))
	step := 2 * size / float32(divisions)
	for i := 0; i <= divisions; i++ {
		t := -size + float32(i)*step
		lines = append(lines,
			Vertex{math.Vec3{X: t, Y: -size}, c}, Vertex{math.Vec3{X: t, Y: size}, c},
			Vertex{math.Vec3{X: -size, Y: t}, c}, Vertex{math.Vec3{X: size, Y: t}, c},
		)
	}
	r.DrawLines(lines)
}

// WireBox draws the edges of an axis aligned box.
func (r *Renderer) WireBox(lo, hi math.Vec3, c Color) {
	corner := func(i int) math.Vec3 {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		return p
	}
	lines := make([]Vertex, 0, 24)
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				lines = append(lines, Vertex{corner(i), c}, Vertex{corner(i | bit), c})
			}
		}
	}
	r.DrawLines(lines)
}

// Polyline draws consecutive points joined by segments.
func (r *Renderer) Polyline(points []math.Vec3, c Color) {
	if len(points) < 2 {
		return
	}
	lines := make([]Vertex, 0, 2*(len(points)-1))
	for i := 1; i < len(points); i++ {
		lines = append(lines, Vertex{points[i-1], c}, Vertex{points[i], c})
	}
	r.DrawLines(lines)
}
