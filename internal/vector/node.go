/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

type baseNode struct {
	xf     Affine2D
	fill   Fill
	stroke Stroke
}

func (b *baseNode) Transform() Affine2D     { return b.xf }
func (b *baseNode) SetTransform(m Affine2D) { b.xf = m }
func (b *baseNode) Fill() Fill              { return b.fill }
func (b *baseNode) Stroke() Stroke          { return b.stroke }

// PathNode references a path geometry.
type PathNode struct {
	baseNode
	path  Path
	bbox  Rect   // cached bounds before transform
	polys [][]Pt // cached flattening for hit tests
}

func NewPath(p Path, f Fill, s Stroke) *PathNode {
	return &PathNode{baseNode: baseNode{xf: Identity, fill: f, stroke: s}, path: p, bbox: p.Bounds(), polys: p.Flatten(0.25)}
}

// Path returns the node geometry with the node transform applied.
func (n *PathNode) Path() Path { return n.path.Transform(n.xf) }

func (n *PathNode) Bounds() Rect {
	ext := newExtent()
	b := n.bbox
	for _, c := range []Pt{{b.X, b.Y}, {b.X + b.W, b.Y}, {b.X, b.Y + b.H}, {b.X + b.W, b.Y + b.H}} {
		ext.add(n.xf.Apply(c))
	}
	return ext.rect()
}

// Hit tests p against the filled area using the node's fill rule.
func (n *PathNode) Hit(p Pt) bool {
	q := n.xf.Invert().Apply(p)
	if !n.bbox.Contains(q) {
		return false
	}
	winding := 0
	for _, poly := range n.polys {
		winding += windingNumber(poly, q)
	}
	if n.fill.Rule == EvenOdd {
		return winding%2 != 0
	}
	return winding != 0
}

// windingNumber counts signed crossings of a rightward ray from q.
func windingNumber(poly []Pt, q Pt) int {
	w := 0
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		if a.Y <= q.Y {
			if b.Y > q.Y && cross(a, b, q) > 0 {
				w++
			}
		} else if b.Y <= q.Y && cross(a, b, q) < 0 {
			w--
		}
	}
	return w
}

func cross(a, b, q Pt) float32 { return (b.X-a.X)*(q.Y-a.Y) - (q.X-a.X)*(b.Y-a.Y) }
