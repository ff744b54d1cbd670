package anim

import (
	"math"

	"github.com/lineagekit/lineage/pkg/layout"
)

// Partial returns the polyline prefix covering the given fraction of the
// total arc length. Interpolation is by length, not by point count, so lines
// with uneven segment density grow at constant visual speed. progress is
// clamped to [0, 1]; 0 yields nil, 1 yields the full polyline.
func Partial(points []layout.Point, progress float64) []layout.Point {
	if len(points) == 0 || progress <= 0 {
		return nil
	}
	if progress >= 1 || len(points) == 1 {
		return points
	}

	total := pathLength(points)
	if total == 0 {
		return points
	}
	target := total * progress

	out := make([]layout.Point, 0, len(points))
	out = append(out, points[0])
	walked := 0.0
	for i := 1; i < len(points); i++ {
		seg := dist(points[i-1], points[i])
		if walked+seg >= target {
			t := 0.0
			if seg > 0 {
				t = (target - walked) / seg
			}
			out = append(out, lerp(points[i-1], points[i], t))
			return out
		}
		walked += seg
		out = append(out, points[i])
	}
	return out
}

// PointAt returns the point at arc-length fraction progress along the
// polyline.
func PointAt(points []layout.Point, progress float64) layout.Point {
	p := Partial(points, progress)
	if len(p) == 0 {
		if len(points) > 0 {
			return points[0]
		}
		return layout.Point{}
	}
	return p[len(p)-1]
}

func pathLength(points []layout.Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += dist(points[i-1], points[i])
	}
	return total
}

func dist(a, b layout.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func lerp(a, b layout.Point, t float64) layout.Point {
	return layout.Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}
