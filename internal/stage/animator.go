package stage

import (
	"time"

	"github.com/stagecue/stagecue/pkg/math"
)

// CameraAnimator tweens the live camera toward a newly activated view.
// All progress state lives in this struct and advances through explicit
// Tick(now) calls, so the animation survives a demand-driven render loop:
// while Active() returns true the loop must keep rendering.
type CameraAnimator struct {
	duration time.Duration

	active    bool
	startTime time.Time
	start     CameraPose
	end       CameraPose
}

// NewCameraAnimator creates an inactive animator with the given fixed
// transition duration.
func NewCameraAnimator(duration time.Duration) *CameraAnimator {
	return &CameraAnimator{duration: duration}
}

// Start begins a transition from the current live pose to the target.
// Starting again mid-flight retargets from wherever the camera is now.
func (a *CameraAnimator) Start(now time.Time, from, to CameraPose) {
	a.active = true
	a.startTime = now
	a.start = from
	a.end = to
}

// Stop abandons an in-flight transition, leaving the camera wherever the
// last tick put it. Manual orbit input interrupts transitions this way.
func (a *CameraAnimator) Stop() {
	a.active = false
}

// Active reports whether a transition is in flight. An active animator is
// itself a reason to keep the render loop running.
func (a *CameraAnimator) Active() bool {
	return a.active
}

// Tick advances the tween and returns the pose for this frame. Once
// progress reaches 1 the animator goes inactive and further ticks keep
// returning the end pose unchanged.
func (a *CameraAnimator) Tick(now time.Time) CameraPose {
	if !a.active {
		return a.end
	}

	progress := float32(1)
	if a.duration > 0 {
		progress = math.Clamp(float32(now.Sub(a.startTime))/float32(a.duration), 0, 1)
	}
	eased := math.EaseOutCubic(progress)

	pose := CameraPose{
		Position: a.start.Position.Lerp(a.end.Position, eased),
		Target:   a.start.Target.Lerp(a.end.Target, eased),
		FOV:      math.Lerp(a.start.FOV, a.end.FOV, eased),
	}

	if progress >= 1 {
		a.active = false
	}
	return pose
}

// ObjectLerpConfig tunes the distance-adaptive object transitions.
type ObjectLerpConfig struct {
	// DistanceFactor converts travel distance into transition seconds.
	DistanceFactor float32
	// MinSeconds and MaxSeconds bound the transition length: big jumps
	// take longer, small nudges settle fast.
	MinSeconds float32
	MaxSeconds float32
}

// DefaultObjectLerpConfig mirrors the tuning stage shows were authored
// against.
func DefaultObjectLerpConfig() ObjectLerpConfig {
	return ObjectLerpConfig{DistanceFactor: 0.1, MinSeconds: 0.5, MaxSeconds: 1.5}
}

const (
	settleDistance = 1e-3
	settleDot      = 1 - 1e-6
)

// ObjectAnimator chases an object's resolved world transform. Unlike the
// camera tween it has no fixed end state: every tick it moves the
// displayed pose a time-scaled fraction toward wherever the target is
// right now, so a target mid-cue-change is followed smoothly. Rotation
// interpolates as a quaternion to take the shortest arc.
type ObjectAnimator struct {
	cfg ObjectLerpConfig

	initialized bool
	lastTick    time.Time

	position math.Vec3
	rotation math.Quat
	scale    math.Vec3
}

// NewObjectAnimator creates an animator that snaps to the first target
// it sees.
func NewObjectAnimator(cfg ObjectLerpConfig) *ObjectAnimator {
	return &ObjectAnimator{cfg: cfg}
}

// DisplayPose is what the render layer should draw this frame.
type DisplayPose struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// Tick advances the chase toward the target world transform and returns
// the pose to draw plus whether the animator is still settling (a reason
// to keep rendering).
func (a *ObjectAnimator) Tick(now time.Time, target Transform) (DisplayPose, bool) {
	targetRot := math.QuatFromEuler(target.Rotation)

	if !a.initialized {
		a.initialized = true
		a.lastTick = now
		a.position = target.Position
		a.rotation = targetRot
		a.scale = target.Scale
		return DisplayPose{Position: a.position, Rotation: a.rotation, Scale: a.scale}, false
	}

	dt := float32(now.Sub(a.lastTick).Seconds())
	a.lastTick = now
	a.scale = target.Scale

	distance := a.position.Distance(target.Position)
	duration := math.Clamp(distance*a.cfg.DistanceFactor, a.cfg.MinSeconds, a.cfg.MaxSeconds)

	fraction := math.Clamp(dt/duration, 0, 1)
	a.position = a.position.Lerp(target.Position, fraction)
	a.rotation = a.rotation.Slerp(targetRot, fraction)

	settling := a.position.Distance(target.Position) > settleDistance ||
		absDot(a.rotation, targetRot) < settleDot
	if !settling {
		a.position = target.Position
		a.rotation = targetRot
	}

	return DisplayPose{Position: a.position, Rotation: a.rotation, Scale: a.scale}, settling
}

func absDot(a, b math.Quat) float32 {
	d := a.Dot(b)
	if d < 0 {
		return -d
	}
	return d
}
