/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// Path commands and shapes.

type PathOp uint8

const (
	MoveTo PathOp = iota
	LineTo
	QuadTo  // quadratic bezier (cx, cy, x, y)
	CubicTo // cubic bezier (cx1, cy1, cx2, cy2, x, y)
	Arc     // circular arc (cx, cy, r, startAngle, endAngle), direction in Clockwise
	Close
)

type PathCmd struct {
	Op   PathOp
	Data [6]float32 // enough for cubic; unused slots are zero
	// Clockwise is only meaningful for Arc. On a y-down screen clockwise means
	// increasing angle, the same convention UIKit and the HTML canvas use.
	Clockwise bool
}

type Path struct{ Cmds []PathCmd }

func (p *Path) MoveTo(x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: MoveTo, Data: [6]float32{x, y}})
}
func (p *Path) LineTo(x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: LineTo, Data: [6]float32{x, y}})
}
func (p *Path) QuadTo(cx, cy, x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: QuadTo, Data: [6]float32{cx, cy, x, y}})
}
func (p *Path) CubicTo(cx1, cy1, cx2, cy2, x, y float32) {
	p.Cmds = append(p.Cmds, PathCmd{Op: CubicTo, Data: [6]float32{cx1, cy1, cx2, cy2, x, y}})
}

// Arc appends a circular arc around (cx, cy). If the current point is not the
// arc's start point, renderers join them with a straight segment first.
func (p *Path) Arc(cx, cy, r, start, end float32, clockwise bool) {
	p.Cmds = append(p.Cmds, PathCmd{Op: Arc, Data: [6]float32{cx, cy, r, start, end}, Clockwise: clockwise})
}
func (p *Path) Close() { p.Cmds = append(p.Cmds, PathCmd{Op: Close}) }

// Center returns the center of an Arc command.
func (c PathCmd) Center() Pt { return Pt{c.Data[0], c.Data[1]} }

// Radius returns the radius of an Arc command.
func (c PathCmd) Radius() float32 { return c.Data[2] }

// ArcPoints returns the start and end points of an Arc command.
func (c PathCmd) ArcPoints() (start, end Pt) {
	return c.pointAt(float64(c.Data[3])), c.pointAt(float64(c.Data[3]) + c.Sweep())
}

func (c PathCmd) pointAt(angle float64) Pt {
	r := float64(c.Data[2])
	return Pt{
		X: c.Data[0] + float32(r*math.Cos(angle)),
		Y: c.Data[1] + float32(r*math.Sin(angle)),
	}
}

// Sweep returns the signed angle covered by an Arc command. Coinciding start
// and end angles give 0. Otherwise clockwise arcs sweep within (0, 2π] and
// counter-clockwise arcs within [-2π, 0), so a full turn keeps its 2π.
func (c PathCmd) Sweep() float64 {
	d := float64(c.Data[4]) - float64(c.Data[3])
	if math.Abs(d) < 1e-6 {
		return 0
	}
	if c.Clockwise {
		for d < 0 {
			d += 2 * math.Pi
		}
	} else {
		for d > 0 {
			d -= 2 * math.Pi
		}
	}
	return d
}

// endPoint returns where the pen rests after c, given the subpath start.
func (c PathCmd) endPoint(cur, subStart Pt) Pt {
	switch c.Op {
	case MoveTo, LineTo:
		return Pt{c.Data[0], c.Data[1]}
	case QuadTo:
		return Pt{c.Data[2], c.Data[3]}
	case CubicTo:
		return Pt{c.Data[4], c.Data[5]}
	case Arc:
		_, e := c.ArcPoints()
		return e
	case Close:
		return subStart
	}
	return cur
}

// Start returns the first MoveTo point, if any.
func (p Path) Start() (Pt, bool) {
	for _, c := range p.Cmds {
		if c.Op == MoveTo {
			return Pt{c.Data[0], c.Data[1]}, true
		}
	}
	return Pt{}, false
}

// End returns the current point after the last drawing command, ignoring a
// trailing Close so callers can check that a contour returns to its start.
func (p Path) End() Pt {
	var cur, subStart Pt
	for _, c := range p.Cmds {
		if c.Op == Close {
			continue
		}
		cur = c.endPoint(cur, subStart)
		if c.Op == MoveTo {
			subStart = cur
		}
	}
	return cur
}

// Count returns the number of commands with the given op.
func (p Path) Count(op PathOp) int {
	n := 0
	for _, c := range p.Cmds {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Arcs returns the Arc commands in path order.
func (p Path) Arcs() []PathCmd {
	var out []PathCmd
	for _, c := range p.Cmds {
		if c.Op == Arc {
			out = append(out, c)
		}
	}
	return out
}

type extent struct{ minX, minY, maxX, maxY float32 }

func newExtent() extent { return extent{+1e9, +1e9, -1e9, -1e9} }

func (e *extent) add(p Pt) {
	e.minX = min(e.minX, p.X)
	e.minY = min(e.minY, p.Y)
	e.maxX = max(e.maxX, p.X)
	e.maxY = max(e.maxY, p.Y)
}

func (e extent) rect() Rect {
	if e.minX > e.maxX || e.minY > e.maxY {
		return Rect{}
	}
	return Rect{X: e.minX, Y: e.minY, W: e.maxX - e.minX, H: e.maxY - e.minY}
}

// Bounds returns an axis-aligned bounding box of the path. Bezier segments are
// approximated by their control points; arcs contribute their exact extrema.
func (p Path) Bounds() Rect {
	ext := newExtent()
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo, LineTo:
			ext.add(Pt{c.Data[0], c.Data[1]})
		case QuadTo:
			ext.add(Pt{c.Data[0], c.Data[1]})
			ext.add(Pt{c.Data[2], c.Data[3]})
		case CubicTo:
			ext.add(Pt{c.Data[0], c.Data[1]})
			ext.add(Pt{c.Data[2], c.Data[3]})
			ext.add(Pt{c.Data[4], c.Data[5]})
		case Arc:
			s, e := c.ArcPoints()
			ext.add(s)
			ext.add(e)
			a0 := float64(c.Data[3])
			a1 := a0 + c.Sweep()
			if a1 < a0 {
				a0, a1 = a1, a0
			}
			for k := math.Ceil(a0 / (math.Pi / 2)); k*math.Pi/2 <= a1; k++ {
				ext.add(c.pointAt(k * math.Pi / 2))
			}
		case Close:
			// no-op for bounds
		}
	}
	return ext.rect()
}

// Flatten converts the path into closed or open polylines, one per subpath.
// tol is the maximum distance between a curve and its chords; <= 0 uses 0.25.
func (p Path) Flatten(tol float32) [][]Pt {
	if tol <= 0 {
		tol = 0.25
	}
	var out [][]Pt
	var poly []Pt
	var cur, subStart Pt
	flush := func() {
		if len(poly) > 1 {
			out = append(out, poly)
		}
		poly = nil
	}
	push := func(q Pt) {
		if len(poly) == 0 {
			poly = append(poly, cur)
		}
		if poly[len(poly)-1] != q {
			poly = append(poly, q)
		}
		cur = q
	}
	for _, c := range p.Cmds {
		switch c.Op {
		case MoveTo:
			flush()
			cur = Pt{c.Data[0], c.Data[1]}
			subStart = cur
			poly = []Pt{cur}
		case LineTo:
			push(Pt{c.Data[0], c.Data[1]})
		case QuadTo:
			p0, p1, p2 := cur, Pt{c.Data[0], c.Data[1]}, Pt{c.Data[2], c.Data[3]}
			n := curveSteps(p0.Dist(p1)+p1.Dist(p2), tol)
			for i := 1; i <= n; i++ {
				t := float32(i) / float32(n)
				u := 1 - t
				push(p0.Scale(u * u).Add(p1.Scale(2 * u * t)).Add(p2.Scale(t * t)))
			}
		case CubicTo:
			p0, p1, p2, p3 := cur, Pt{c.Data[0], c.Data[1]}, Pt{c.Data[2], c.Data[3]}, Pt{c.Data[4], c.Data[5]}
			n := curveSteps(p0.Dist(p1)+p1.Dist(p2)+p2.Dist(p3), tol)
			for i := 1; i <= n; i++ {
				t := float32(i) / float32(n)
				u := 1 - t
				push(p0.Scale(u * u * u).Add(p1.Scale(3 * u * u * t)).Add(p2.Scale(3 * u * t * t)).Add(p3.Scale(t * t * t)))
			}
		case Arc:
			a0 := float64(c.Data[3])
			sweep := c.Sweep()
			n := arcSteps(float64(c.Data[2]), sweep, float64(tol))
			for i := 0; i <= n; i++ {
				push(c.pointAt(a0 + sweep*float64(i)/float64(n)))
			}
		case Close:
			if len(poly) > 0 && poly[len(poly)-1] != subStart {
				poly = append(poly, subStart)
			}
			flush()
			cur = subStart
		}
	}
	flush()
	return out
}

func curveSteps(length, tol float32) int {
	n := int(math.Ceil(math.Sqrt(float64(length / tol))))
	return max(1, min(n, 256))
}

func arcSteps(r, sweep, tol float64) int {
	if r <= tol || sweep == 0 {
		return 1
	}
	step := 2 * math.Acos(1-tol/r)
	n := int(math.Ceil(math.Abs(sweep) / step))
	return max(1, min(n, 1024))
}

// SignedArea returns the shoelace area of the flattened path. With y pointing
// down a positive value means the contour runs clockwise on screen.
func (p Path) SignedArea() float32 {
	var sum float64
	for _, poly := range p.Flatten(0.01) {
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			sum += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
		}
	}
	return float32(sum / 2)
}

// Cubics returns an equivalent path in which every Arc is replaced by cubic
// Bezier segments of at most 90 degrees, for backends without a circular arc
// primitive.
func (p Path) Cubics() Path {
	var out Path
	var cur, subStart Pt
	for _, c := range p.Cmds {
		if c.Op != Arc {
			out.Cmds = append(out.Cmds, c)
			next := c.endPoint(cur, subStart)
			if c.Op == MoveTo {
				subStart = next
			}
			cur = next
			continue
		}
		s, e := c.ArcPoints()
		if len(out.Cmds) == 0 {
			out.MoveTo(s.X, s.Y)
			subStart = s
		} else if s != cur {
			out.LineTo(s.X, s.Y)
		}
		sweep := c.Sweep()
		if sweep == 0 || c.Data[2] == 0 {
			if e != s {
				out.LineTo(e.X, e.Y)
			}
			cur = e
			continue
		}
		n := int(math.Ceil(math.Abs(sweep)/(math.Pi/2) - 1e-6))
		step := sweep / float64(n)
		a := float64(c.Data[3])
		for i := 0; i < n; i++ {
			out.arcSegment(c, a, a+step)
			a += step
		}
		cur = e
	}
	return out
}

// arcSegment appends one cubic approximating the arc of c from a1 to a2.
func (p *Path) arcSegment(c PathCmd, a1, a2 float64) {
	r := float64(c.Data[2])
	k := 4.0 / 3.0 * math.Tan((a2-a1)/4)
	cos1, sin1 := math.Cos(a1), math.Sin(a1)
	cos2, sin2 := math.Cos(a2), math.Sin(a2)
	cx, cy := float64(c.Data[0]), float64(c.Data[1])

	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2
	p.CubicTo(
		float32(x1-k*r*sin1), float32(y1+k*r*cos1),
		float32(x2+k*r*sin2), float32(y2-k*r*cos2),
		float32(x2), float32(y2),
	)
}

// Transform maps every command through m. Arcs assume m is a similarity
// (rotation, uniform scale, reflection, translation); a reflection flips the
// arc direction.
func (p Path) Transform(m Affine2D) Path {
	out := Path{Cmds: make([]PathCmd, 0, len(p.Cmds))}
	for _, c := range p.Cmds {
		n := c
		switch c.Op {
		case MoveTo, LineTo, QuadTo, CubicTo:
			for i := 0; i < pointCount(c.Op); i++ {
				q := m.Apply(Pt{c.Data[2*i], c.Data[2*i+1]})
				n.Data[2*i], n.Data[2*i+1] = q.X, q.Y
			}
		case Arc:
			ctr := m.Apply(c.Center())
			det := m.Det()
			a0 := mapAngle(m, float64(c.Data[3]))
			a1 := a0 + c.Sweep()
			if det < 0 {
				a1 = a0 - c.Sweep()
			}
			n.Data = [6]float32{ctr.X, ctr.Y, c.Data[2] * float32(math.Sqrt(math.Abs(float64(det)))), float32(a0), float32(a1)}
			n.Clockwise = c.Clockwise != (det < 0)
		}
		out.Cmds = append(out.Cmds, n)
	}
	return out
}

func pointCount(op PathOp) int {
	switch op {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	}
	return 0
}

func mapAngle(m Affine2D, a float64) float64 {
	v := m.ApplyVec(Pt{float32(math.Cos(a)), float32(math.Sin(a))})
	return math.Atan2(float64(v.Y), float64(v.X))
}
