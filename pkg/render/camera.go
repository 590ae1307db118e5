package render

import (
	"math"

	"github.com/additionsdigital/gradientfollow/pkg/math3d"
)

// Camera represents a perspective camera with position and orientation.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (Euler angles in radians)
	Pitch float64 // Rotation around X axis (look up/down)
	Yaw   float64 // Rotation around Y axis (look left/right)
	Roll  float64 // Rotation around Z axis (tilt)

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	viewProj math3d.Mat4
	dirty    bool
}

// NewCamera creates a perspective camera at the origin looking down -Z.
func NewCamera(fov, aspect, near, far float64) *Camera {
	return &Camera{
		FOV:         fov,
		AspectRatio: aspect,
		Near:        near,
		Far:         far,
		dirty:       true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.dirty = true
}

// SetDistance moves the camera along its current direction from the origin
// so that it sits dist away from it. A camera at the origin moves onto +Z.
func (c *Camera) SetDistance(dist float64) {
	dir := c.Position.Normalize()
	if dir == (math3d.Vec3{}) {
		dir = math3d.V3(0, 0, 1)
	}
	c.SetPosition(dir.Scale(dist))
}

// Distance returns how far the camera is from the world origin.
func (c *Camera) Distance() float64 {
	return c.Position.Len()
}

// SetRoll sets the rotation around the view axis.
func (c *Camera) SetRoll(roll float64) {
	c.Roll = roll
	c.dirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.dirty = true
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	rot := math3d.RotateZ(-c.Roll).
		Mul(math3d.RotateX(-c.Pitch)).
		Mul(math3d.RotateY(-c.Yaw))
	return rot.Mul(math3d.Translate(c.Position.Negate()))
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
}

// ViewProjectionMatrix returns projection * view, recomputed only after the
// camera changed.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	if c.dirty {
		c.viewProj = c.ProjectionMatrix().Mul(c.ViewMatrix())
		c.dirty = false
	}
	return c.viewProj
}

// WorldToScreen projects a world point onto a screen of the given size.
// visible is false for points behind the camera or outside the frustum.
func (c *Camera) WorldToScreen(worldPos math3d.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clip := c.ViewProjectionMatrix().MulVec4(math3d.V4FromV3(worldPos, 1))
	if clip.W <= 0 {
		return 0, 0, 0, false
	}

	ndc := clip.PerspectiveDivide()
	if math.Abs(ndc.X) > 1 || math.Abs(ndc.Y) > 1 || math.Abs(ndc.Z) > 1 {
		return 0, 0, 0, false
	}

	x = (ndc.X + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc.Y) * 0.5 * float64(screenHeight) // Y is flipped
	return x, y, ndc.Z, true
}
