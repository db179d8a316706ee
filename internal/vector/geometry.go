/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Basic 2D geometry and transforms for resolution-independent drawing.
// Coordinates are screen-oriented: x grows right, y grows down.
// Float values use float32 to align with UI toolkits; trigonometry runs in float64.

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float32 }

func (p Pt) Add(q Pt) Pt        { return Pt{p.X + q.X, p.Y + q.Y} }
func (p Pt) Sub(q Pt) Pt        { return Pt{p.X - q.X, p.Y - q.Y} }
func (p Pt) Scale(s float32) Pt { return Pt{p.X * s, p.Y * s} }
func (p Pt) Dist(q Pt) float32  { return hypot(p.X-q.X, p.Y-q.Y) }

// Near reports whether p and q differ by at most eps on each axis.
func (p Pt) Near(q Pt, eps float32) bool {
	return abs32(p.X-q.X) <= eps && abs32(p.Y-q.Y) <= eps
}

// Size is a width/height pair.
type Size struct{ W, H float32 }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt       { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt       { return Pt{r.X + r.W, r.Y + r.H} }
func (r Rect) MaxX() float32 { return r.X + r.W }
func (r Rect) MaxY() float32 { return r.Y + r.H }
func (r Rect) Center() Pt    { return Pt{r.X + r.W/2, r.Y + r.H/2} }
func (r Rect) Size() Size    { return Size{r.W, r.H} }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Inset returns a rectangle inset by dx,dy on all sides (negative grows).
func (r Rect) Inset(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
}

// Affine2D represents a 2D affine transform as matrix:
// | a c e |
// | b d f |
// | 0 0 1 |
// stored as [a b c d e f].
type Affine2D struct{ A, B, C, D, E, F float32 }

var Identity = Affine2D{A: 1, D: 1}

func (m Affine2D) Mul(n Affine2D) Affine2D {
	return Affine2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Affine2D) Apply(p Pt) Pt {
	return Pt{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// ApplyVec applies only the linear part (no translation).
func (m Affine2D) ApplyVec(p Pt) Pt {
	return Pt{X: m.A*p.X + m.C*p.Y, Y: m.B*p.X + m.D*p.Y}
}

func (m Affine2D) Det() float32 { return m.A*m.D - m.B*m.C }

// Invert returns the inverse transform, or Identity when m is singular.
func (m Affine2D) Invert() Affine2D {
	det := m.Det()
	if det == 0 {
		return Identity
	}
	invDet := 1 / det
	return Affine2D{
		A: m.D * invDet,
		B: -m.B * invDet,
		C: -m.C * invDet,
		D: m.A * invDet,
		E: (m.C*m.F - m.D*m.E) * invDet,
		F: (m.B*m.E - m.A*m.F) * invDet,
	}
}

func Translate(tx, ty float32) Affine2D { return Affine2D{A: 1, D: 1, E: tx, F: ty} }
func Scale(sx, sy float32) Affine2D     { return Affine2D{A: sx, D: sy} }

// Rotate rotates by rad; with y pointing down a positive angle turns clockwise on screen.
func Rotate(rad float32) Affine2D {
	c := float32(math.Cos(float64(rad)))
	s := float32(math.Sin(float64(rad)))
	return Affine2D{A: c, B: s, C: -s, D: c}
}

// RotateAbout rotates by rad around p.
func RotateAbout(rad float32, p Pt) Affine2D {
	return Translate(p.X, p.Y).Mul(Rotate(rad)).Mul(Translate(-p.X, -p.Y))
}

func hypot(dx, dy float32) float32 { return float32(math.Hypot(float64(dx), float64(dy))) }

func abs32(v float32) float32 { return float32(math.Abs(float64(v))) }
