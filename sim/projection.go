package sim

import "math"

var worldUp = Vec3{Y: 1}

// Lens is a perspective projection. FOV is the vertical field of view in
// degrees.
type Lens struct {
	FOV  float64 `mapstructure:"fov"`
	Near float64 `mapstructure:"near"`
	Far  float64 `mapstructure:"far"`
}

// DefaultLens is a 75 degree lens clipping at 0.1 and 2000.
func DefaultLens() Lens {
	return Lens{FOV: 75, Near: 0.1, Far: 2000}
}

// Projector maps world points to screen pixels for one camera pose.
type Projector struct {
	eye                   Vec3
	right, up, forward    Vec3
	focal                 float64
	halfWidth, halfHeight float64
	near, far             float64
}

// NewProjector builds the view basis for pose and the screen scale for a
// width by height target.
func NewProjector(pose CameraPose, lens Lens, width, height int) *Projector {
	forward := pose.LookAt.Sub(pose.Position).Normalize()
	if forward == (Vec3{}) {
		forward = Vec3{Z: -1}
	}
	right := forward.Cross(worldUp).Normalize()
	if right == (Vec3{}) {
		right = Vec3{X: 1}
	}
	up := right.Cross(forward)

	h := float64(height) / 2
	return &Projector{
		eye:        pose.Position,
		right:      right,
		up:         up,
		forward:    forward,
		focal:      h / math.Tan(lens.FOV*math.Pi/360),
		halfWidth:  float64(width) / 2,
		halfHeight: h,
		near:       lens.Near,
		far:        lens.Far,
	}
}

// Project returns the screen position of p and its view depth. ok is false
// when p lies outside the near and far planes.
func (pr *Projector) Project(p Vec3) (x, y, depth float64, ok bool) {
	d := p.Sub(pr.eye)
	depth = d.Dot(pr.forward)
	if depth < pr.near || depth > pr.far {
		return 0, 0, depth, false
	}
	scale := pr.focal / depth
	x = pr.halfWidth + d.Dot(pr.right)*scale
	y = pr.halfHeight - d.Dot(pr.up)*scale
	return x, y, depth, true
}

// ScreenRadius converts a world radius at depth to pixels.
func (pr *Projector) ScreenRadius(radius, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return radius * pr.focal / depth
}
