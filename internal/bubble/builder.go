/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package bubble

// Outline construction for a rounded card with a filleted arrow notch.
//
// The outline is laid out once for an arrow on the top edge, in a local frame
// whose origin is the top-left corner of the body and whose x axis runs along
// the arrow edge. Every other direction is the same layout rotated by a
// quarter turn multiple; rotation keeps the clockwise winding intact.

import (
	"math"

	"bubblekit/internal/vector"
)

// MinTipRadius is the floor applied to Arrow.TipRadius; the fillet
// derivation divides by it.
const MinTipRadius = 0.1

// Fillet is the rounding of the arrow apex: a circle of Radius tangent to
// both slanted edges, centered L below the apex on the arrow axis.
type Fillet struct {
	Radius float32 // effective tip radius
	L      float32 // apex to fillet center
	Theta  float32 // half angle of the fillet arc, measured from the arrow axis
	TX     float32 // tangent point offset across the axis
	TY     float32 // tangent point offset from the apex along the axis
}

// FilletOf derives the apex fillet for a.
func FilletOf(a Arrow) Fillet {
	r := float64(max(a.TipRadius, MinTipRadius))
	w, h := float64(a.Width), float64(a.Height)
	l := r / w * 2 * math.Sqrt(w*w/4+h*h)
	// r/l is at most 1 analytically; rounding can push it past for flat arrows.
	theta := math.Acos(math.Max(-1, math.Min(1, r/l)))
	return Fillet{
		Radius: float32(r),
		L:      float32(l),
		Theta:  float32(theta),
		TX:     float32(r * math.Sin(theta)),
		TY:     float32(l - r*math.Cos(theta)),
	}
}

// BodyRect returns bounds without the strip occupied by the arrow.
func BodyRect(bounds vector.Rect, s Style) vector.Rect {
	h := s.Arrow.Height
	r := bounds
	switch s.Direction {
	case Top:
		r.Y += h
		r.H -= h
	case Bottom:
		r.H -= h
	case Left:
		r.X += h
		r.W -= h
	case Right:
		r.W -= h
	}
	return r
}

// AnchorOffset returns the arrow center line position along its edge,
// measured from the body's left corner (top/bottom arrows) or top corner
// (left/right arrows). Offsets outside the edge are returned as is.
func AnchorOffset(body vector.Rect, s Style) float32 {
	extent := body.W
	if !s.Direction.Horizontal() {
		extent = body.H
	}
	return s.Anchor.offset(extent)
}

// frame maps the top-arrow layout onto one direction.
type frame struct {
	cos, sin float64 // exact quarter-turn rotation
	corner   func(vector.Rect) vector.Pt
	// reversed is set when the local x axis runs against the axis anchors
	// are measured on.
	reversed bool
}

var frames = [...]frame{
	Top:    {cos: 1, sin: 0, corner: func(r vector.Rect) vector.Pt { return vector.Pt{X: r.X, Y: r.Y} }},
	Bottom: {cos: -1, sin: 0, corner: func(r vector.Rect) vector.Pt { return vector.Pt{X: r.MaxX(), Y: r.MaxY()} }, reversed: true},
	Left:   {cos: 0, sin: -1, corner: func(r vector.Rect) vector.Pt { return vector.Pt{X: r.X, Y: r.MaxY()} }, reversed: true},
	Right:  {cos: 0, sin: 1, corner: func(r vector.Rect) vector.Pt { return vector.Pt{X: r.MaxX(), Y: r.Y} }},
}

// pen emits local-frame geometry into a world-space path.
type pen struct {
	path   vector.Path
	f      frame
	ox, oy float64
	rot    float64
}

func (p *pen) world(x, y float64) (float32, float32) {
	return float32(p.ox + p.f.cos*x - p.f.sin*y), float32(p.oy + p.f.sin*x + p.f.cos*y)
}

func (p *pen) moveTo(x, y float64) { p.path.MoveTo(p.world(x, y)) }
func (p *pen) lineTo(x, y float64) { p.path.LineTo(p.world(x, y)) }

// arc adds a clockwise arc; angles are local and rotated into world space.
func (p *pen) arc(cx, cy, r, start, end float64) {
	x, y := p.world(cx, cy)
	a := normAngle(start + p.rot)
	p.path.Arc(x, y, float32(r), float32(a), float32(a+end-start), true)
}

// corner draws the quarter circle opening a side and the straight run to
// the point where the next corner begins.
func (p *pen) corner(cx, cy, r, start, toX, toY float64) {
	p.arc(cx, cy, r, start, start+math.Pi/2)
	p.lineTo(toX, toY)
}

// Build returns the closed clockwise outline of a bubble filling bounds.
// No validation is performed: radii larger than the rectangle allows give
// self-overlapping geometry rather than an error.
func Build(bounds vector.Rect, s Style) vector.Path {
	body := BodyRect(bounds, s)
	f := frames[s.Direction%4]

	along, across := float64(body.W), float64(body.H)
	if !s.Direction.Horizontal() {
		along, across = across, along
	}
	a := float64(AnchorOffset(body, s))
	if f.reversed {
		a = along - a
	}
	fl := FilletOf(s.Arrow)
	cr := float64(s.CornerRadius)
	w, h := float64(s.Arrow.Width), float64(s.Arrow.Height)
	r, l, theta := float64(fl.Radius), float64(fl.L), float64(fl.Theta)
	tx, ty := float64(fl.TX), float64(fl.TY)

	o := f.corner(body)
	p := &pen{f: f, ox: float64(o.X), oy: float64(o.Y), rot: math.Atan2(f.sin, f.cos)}

	p.moveTo(along-cr, 0)
	p.corner(along-cr, cr, cr, -math.Pi/2, along, across-cr)
	p.corner(along-cr, across-cr, cr, 0, cr, across)
	p.corner(cr, across-cr, cr, math.Pi/2, 0, cr)

	// arrow side: leading corner, then the notch, then back to the start
	p.arc(cr, cr, cr, math.Pi, 3*math.Pi/2)
	p.lineTo(a-w/2, 0)
	p.lineTo(a-tx, -h+ty)
	p.arc(a, -h+l, r, -math.Pi/2-theta, -math.Pi/2+theta)
	p.lineTo(a+w/2, 0)
	p.lineTo(along-cr, 0)
	p.path.Close()
	return p.path
}

// normAngle maps a into (-π, π].
func normAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
