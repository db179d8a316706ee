/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"bubblekit/internal/vector"

	xvector "golang.org/x/image/vector"
)

// RenderPNG rasterizes p onto a transparent image covering the outline plus
// margin, at opt.Scale pixels per unit.
func RenderPNG(p vector.Path, paint Paint, opt Options) *image.RGBA {
	scale := opt.Scale
	if scale <= 0 {
		scale = 1
	}
	box := canvas(p, paint, opt)
	w := int(math.Ceil(float64(box.W * scale)))
	h := int(math.Ceil(float64(box.H * scale)))
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))

	// world -> pixel
	m := vector.Scale(scale, scale).Mul(vector.Translate(-box.X, -box.Y))
	px := p.Transform(m)

	z := xvector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	z.DrawOp = draw.Over
	if paint.Fill.A > 0 {
		toRasterizer(px.Cubics(), z)
		z.Draw(img, img.Bounds(), image.NewUniform(paint.Fill.NRGBA()), image.Point{})
	}
	if paint.stroked() {
		z.Reset(img.Bounds().Dx(), img.Bounds().Dy())
		z.DrawOp = draw.Over
		strokeOutline(z, px.Flatten(0.1), paint.BorderWidth*scale/2)
		z.Draw(img, img.Bounds(), image.NewUniform(paint.Border.NRGBA()), image.Point{})
	}
	return img
}

// WritePNG renders p and encodes it to w.
func WritePNG(w io.Writer, p vector.Path, paint Paint, opt Options) error {
	if err := png.Encode(w, RenderPNG(p, paint, opt)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func toRasterizer(p vector.Path, z *xvector.Rasterizer) {
	for _, c := range p.Cmds {
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			z.MoveTo(d[0], d[1])
		case vector.LineTo:
			z.LineTo(d[0], d[1])
		case vector.QuadTo:
			z.QuadTo(d[0], d[1], d[2], d[3])
		case vector.CubicTo:
			z.CubeTo(d[0], d[1], d[2], d[3], d[4], d[5])
		case vector.Close:
			z.ClosePath()
		}
	}
}

// strokeOutline covers the band of half-width hw around each polyline as a
// union of edge quads and round joins. The rasterizer adds coverage with
// sign, so every piece is emitted with the same (positive) winding.
func strokeOutline(z *xvector.Rasterizer, polys [][]vector.Pt, hw float32) {
	if hw <= 0 {
		return
	}
	for _, poly := range polys {
		for i := 0; i+1 < len(poly); i++ {
			a, b := poly[i], poly[i+1]
			d := b.Sub(a)
			l := d.Dist(vector.Pt{})
			if l == 0 {
				continue
			}
			n := vector.Pt{X: -d.Y / l * hw, Y: d.X / l * hw}
			fillPolygon(z, []vector.Pt{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
		}
		for _, q := range poly {
			fillPolygon(z, disc(q, hw))
		}
	}
}

func disc(c vector.Pt, r float32) []vector.Pt {
	const n = 16
	out := make([]vector.Pt, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / n
		out[i] = vector.Pt{X: c.X + r*float32(math.Cos(a)), Y: c.Y + r*float32(math.Sin(a))}
	}
	return out
}

func fillPolygon(z *xvector.Rasterizer, pts []vector.Pt) {
	var area float32
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		area += p.X*q.Y - q.X*p.Y
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	z.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		z.LineTo(p.X, p.Y)
	}
	z.ClosePath()
}
