// Package camera implements the orbit camera around the cube: a perspective
// projection and a view that circles the origin on a sphere.
package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

// Projection and orbit limits.
const (
	FovY        = 0.8 // radians
	Near        = 1.0
	Far         = 260.0
	MinDistance = 110.0
	MaxDistance = 210.0
	MinPolar    = 10.0
	MaxPolar    = 170.0

	RotateSensitivity    = 0.01
	RotateKeySensitivity = 10.0
	ZoomSensitivity      = 1.0
)

// Key is a held orbit key.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
)

// Pose is the camera's place on its sphere. RotationX is the polar angle
// from +y in degrees, RotationY the azimuth in degrees.
type Pose struct {
	RotationX float64
	RotationY float64
	Distance  float64
}

// Poses.
var (
	// DefaultPose looks at the near face with the screen centre over its
	// centre cell.
	DefaultPose = Pose{RotationX: 78, RotationY: 258, Distance: 150}
	// IsoPose views the left, top and near faces equally.
	IsoPose = PoseFromPosition(mgl64.Vec3{-95, 95, 95})
)

// PoseByName resolves a preset name. Unknown names fall back to the default.
func PoseByName(name string) Pose {
	if name == "iso" {
		return IsoPose
	}
	return DefaultPose
}

// PoseFromPosition computes the pose of a camera at p looking at the origin.
func PoseFromPosition(p mgl64.Vec3) Pose {
	d := p.Len()
	ry := -mgl64.RadToDeg(math.Atan2(p.Z(), p.X()))
	if ry < 0 {
		ry += 360
	}
	return Pose{
		RotationX: mgl64.RadToDeg(math.Acos(p.Y() / d)),
		RotationY: ry,
		Distance:  d,
	}
}

// Position returns the world position for the pose.
func (p Pose) Position() mgl64.Vec3 {
	rx := mgl64.DegToRad(p.RotationX)
	ry := mgl64.DegToRad(p.RotationY)
	return mgl64.Vec3{
		math.Sin(rx) * math.Cos(ry) * p.Distance,
		math.Cos(rx) * p.Distance,
		-math.Sin(rx) * math.Sin(ry) * p.Distance,
	}
}

// Camera is an orbit camera with inertia. Drag, zoom and key input only
// set offsets; Update applies them and lets them decay.
type Camera struct {
	aspect  float64
	pose    Pose
	enabled bool

	offX, velX float64
	offY, velY float64
	zoom, zvel float64
	spring     harmonica.Spring

	keys map[Key]bool
}

// New returns an enabled camera at pose with the given aspect ratio.
func New(aspect float64, pose Pose) *Camera {
	if aspect <= 0 {
		aspect = 1
	}
	return &Camera{
		aspect:  aspect,
		pose:    pose,
		enabled: true,
		spring:  harmonica.NewSpring(harmonica.FPS(60), 12.0, 1.0),
		keys:    make(map[Key]bool),
	}
}

// SetAspect updates the projection aspect ratio.
func (c *Camera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.aspect = aspect
	}
}

// SetEnabled turns orbit input on or off. The gesture resolver disables the
// camera while a cube drag is in progress.
func (c *Camera) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// Enabled reports whether orbit input is accepted.
func (c *Camera) Enabled() bool {
	return c.enabled
}

// Pose returns the current pose.
func (c *Camera) Pose() Pose {
	return c.pose
}

// SetPose jumps to a pose and drops any inertia.
func (c *Camera) SetPose(p Pose) {
	c.pose = p
	c.offX, c.velX, c.offY, c.velY, c.zoom, c.zvel = 0, 0, 0, 0, 0, 0
	c.clamp()
}

// Drag orbits by a pointer delta in pixels.
func (c *Camera) Drag(dx, dy float64) {
	if !c.enabled {
		return
	}
	c.offX += -dy * RotateSensitivity
	c.offY += -dx * RotateSensitivity
}

// Zoom moves toward (negative dir) or away from (positive dir) the cube.
func (c *Camera) Zoom(dir float64) {
	if !c.enabled {
		return
	}
	c.zoom = dir * ZoomSensitivity
}

// PressKey marks an orbit key as held.
func (c *Camera) PressKey(k Key) {
	c.keys[k] = true
}

// ReleaseKey marks an orbit key as released.
func (c *Camera) ReleaseKey(k Key) {
	delete(c.keys, k)
}

// Update applies held keys and pending offsets for one frame.
func (c *Camera) Update() {
	var dx, dy float64
	for k := range c.keys {
		switch k {
		case KeyRight:
			dx -= RotateKeySensitivity
		case KeyLeft:
			dx += RotateKeySensitivity
		case KeyDown:
			dy -= RotateKeySensitivity
		case KeyUp:
			dy += RotateKeySensitivity
		}
	}
	if dx != 0 || dy != 0 {
		c.Drag(dx, dy)
	}

	c.pose.RotationX += c.offX
	c.pose.RotationY += c.offY
	c.pose.Distance += c.zoom
	c.offX, c.velX = settle(c.spring.Update(c.offX, c.velX, 0))
	c.offY, c.velY = settle(c.spring.Update(c.offY, c.velY, 0))
	c.zoom, c.zvel = settle(c.spring.Update(c.zoom, c.zvel, 0))
	c.clamp()
}

// Settled reports whether all inertia has died out.
func (c *Camera) Settled() bool {
	return c.offX == 0 && c.offY == 0 && c.zoom == 0
}

func settle(pos, vel float64) (float64, float64) {
	const eps = 1e-6
	if math.Abs(pos) < eps && math.Abs(vel) < eps {
		return 0, 0
	}
	return pos, vel
}

func (c *Camera) clamp() {
	c.pose.RotationY = math.Mod(c.pose.RotationY, 360)
	if c.pose.RotationY < 0 {
		c.pose.RotationY += 360
	}
	if c.pose.RotationX >= MaxPolar {
		c.pose.RotationX = MaxPolar
		c.offX, c.velX = 0, 0
	} else if c.pose.RotationX <= MinPolar {
		c.pose.RotationX = MinPolar
		c.offX, c.velX = 0, 0
	}
	if c.pose.Distance >= MaxDistance {
		c.pose.Distance = MaxDistance
		c.zoom, c.zvel = 0, 0
	} else if c.pose.Distance <= MinDistance {
		c.pose.Distance = MinDistance
		c.zoom, c.zvel = 0, 0
	}
}

// Position returns the camera's world position.
func (c *Camera) Position() mgl64.Vec3 {
	return c.pose.Position()
}

// View returns the view matrix, looking at the origin with +y up.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position(), mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 1, 0})
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(FovY, c.aspect, Near, Far)
}

// ViewProjection returns projection x view.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}
