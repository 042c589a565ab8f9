// Package camera provides the live orbit camera rig the show loop drives.
// The rig is the stand-in for the interactive render layer: it owns the
// actual camera pose, receives manual orbit/pan/zoom input, and is where
// view transitions land.
package camera

import (
	gomath "math"

	"github.com/stagecue/stagecue/internal/stage"
	"github.com/stagecue/stagecue/pkg/math"
)

// Rig orbits around a target point in spherical coordinates.
type Rig struct {
	// Target point to orbit around
	Target math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from target
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Field of view in degrees
	FOV float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// onManualMove fires on any direct orbit/pan/zoom interaction, so
	// the active-view pointer can be invalidated.
	onManualMove func()
}

// NewRig creates a rig with the default stage framing.
func NewRig(fov float32) *Rig {
	return &Rig{
		Distance:        20.0,
		RotationX:       0.25,
		RotationY:       0.0,
		FOV:             fov,
		MinDistance:     2.0,
		MaxDistance:     100.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// SetOnManualMove registers the callback fired by manual interaction.
func (r *Rig) SetOnManualMove(fn func()) {
	r.onManualMove = fn
}

// Position returns the camera position in world space.
func (r *Rig) Position() math.Vec3 {
	x := r.Distance * float32(gomath.Cos(float64(r.RotationX))*gomath.Sin(float64(r.RotationY)))
	y := r.Distance * float32(gomath.Sin(float64(r.RotationX)))
	z := r.Distance * float32(gomath.Cos(float64(r.RotationX))*gomath.Cos(float64(r.RotationY)))

	return math.Vec3{
		X: r.Target.X + x,
		Y: r.Target.Y + y,
		Z: r.Target.Z + z,
	}
}

// Pose returns the rig state as a camera pose.
func (r *Rig) Pose() stage.CameraPose {
	return stage.CameraPose{
		Position: r.Position(),
		Target:   r.Target,
		FOV:      r.FOV,
	}
}

// SetPose drives the rig to an exact pose, converting the position back
// into spherical coordinates around the new target. View transitions
// apply their per-frame tween through here.
func (r *Rig) SetPose(pose stage.CameraPose) {
	r.Target = pose.Target
	r.FOV = pose.FOV

	offset := pose.Position.Sub(pose.Target)
	dist := offset.Length()
	if dist == 0 {
		r.Distance = 0
		return
	}
	r.Distance = dist
	r.RotationX = float32(gomath.Asin(float64(offset.Y / dist)))
	r.RotationY = float32(gomath.Atan2(float64(offset.X), float64(offset.Z)))
}

// ViewMatrix returns the view matrix for this camera.
func (r *Rig) ViewMatrix() math.Mat4 {
	up := math.Vec3{Y: 1}
	return math.LookAt(r.Position(), r.Target, up)
}

// ProjectionMatrix returns the perspective projection for the rig.
func (r *Rig) ProjectionMatrix(aspect float32) math.Mat4 {
	fovRadians := r.FOV * gomath.Pi / 180
	return math.Perspective(fovRadians, aspect, 0.1, 1000)
}

// HandleDrag updates rotation based on mouse drag delta.
func (r *Rig) HandleDrag(deltaX, deltaY float32) {
	r.RotationY -= deltaX * r.DragSensitivity
	r.RotationX += deltaY * r.DragSensitivity
	r.RotationX = math.Clamp(r.RotationX, r.MinPitch, r.MaxPitch)
	r.manualMove()
}

// HandleZoom updates distance based on scroll wheel delta.
func (r *Rig) HandleZoom(delta float32) {
	r.Distance -= delta * r.Distance * r.ZoomSensitivity
	r.Distance = math.Clamp(r.Distance, r.MinDistance, r.MaxDistance)
	r.manualMove()
}

// HandlePan moves the orbit target in the camera's ground plane.
func (r *Rig) HandlePan(forward, right, up float32) {
	// Speed scales with distance for consistent feel
	speed := r.Distance * 0.01

	dirX := float32(gomath.Sin(float64(r.RotationY)))
	dirZ := float32(gomath.Cos(float64(r.RotationY)))

	rightX := float32(gomath.Cos(float64(r.RotationY)))
	rightZ := float32(-gomath.Sin(float64(r.RotationY)))

	r.Target.X += (-dirX*forward + rightX*right) * speed
	r.Target.Z += (-dirZ*forward + rightZ*right) * speed
	r.Target.Y += up * speed
	r.manualMove()
}

func (r *Rig) manualMove() {
	if r.onManualMove != nil {
		r.onManualMove()
	}
}
