// Package picking provides ray casting for click selection on stage.
package picking

import (
	gomath "math"

	"github.com/stagecue/stagecue/internal/stage"
	"github.com/stagecue/stagecue/pkg/math"
)

// Ray represents a ray in 3D space with origin and normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// ScreenRay converts screen pixel coordinates into a world-space ray
// from the camera pose. The FOV is the vertical field of view in
// degrees, matching the projection the pose renders with.
func ScreenRay(pose stage.CameraPose, screenX, screenY, viewportW, viewportH float32) Ray {
	// Convert screen coords to normalized device coords (-1 to 1)
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH // Flip Y

	forward := pose.Target.Sub(pose.Position).Normalize()
	right := forward.Cross(math.Vec3{Y: 1}).Normalize()
	up := right.Cross(forward)

	aspect := viewportW / viewportH
	tanHalf := float32(gomath.Tan(float64(pose.FOV) * gomath.Pi / 360))

	dir := forward.
		Add(right.Scale(ndcX * tanHalf * aspect)).
		Add(up.Scale(ndcY * tanHalf)).
		Normalize()

	return Ray{Origin: pose.Position, Direction: dir}
}

// IntersectPlaneY intersects the ray with a horizontal plane at the
// given Y level. Used for dropping new objects onto the stage floor.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}

	x = r.Origin.X + t*r.Direction.X
	z = r.Origin.Z + t*r.Direction.Z
	return x, z, true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection
// occurred. If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	axes := [3]struct {
		origin, dir, min, max float32
	}{
		{r.Origin.X, r.Direction.X, box.Min.X, box.Max.X},
		{r.Origin.Y, r.Direction.Y, box.Min.Y, box.Max.Y},
		{r.Origin.Z, r.Direction.Z, box.Min.Z, box.Max.Z},
	}

	for _, a := range axes {
		if a.dir == 0 {
			if a.origin < a.min || a.origin > a.max {
				return 0, false
			}
			continue
		}
		t1 := (a.min - a.origin) / a.dir
		t2 := (a.max - a.origin) / a.dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}

	// Return entry point, or exit point if starting inside
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// ObjectAABB builds the world-space box for an object's displayed pose:
// a unit cube scaled and translated. Rotation is ignored, which keeps
// picking cheap and is close enough for stage-sized objects.
func ObjectAABB(position, scale math.Vec3) AABB {
	half := math.Vec3{
		X: abs(scale.X) * 0.5,
		Y: abs(scale.Y) * 0.5,
		Z: abs(scale.Z) * 0.5,
	}
	return AABB{
		Min: position.Sub(half),
		Max: position.Add(half),
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
