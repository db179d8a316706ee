/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"bubblekit/internal/bubble"
	"bubblekit/internal/vector"
)

func sample() (vector.Path, bubble.Style) {
	s := bubble.DefaultStyle()
	return bubble.Build(vector.R(0, 0, 120, 60), s), s
}

func TestSVGPathData_DefaultBubble(t *testing.T) {
	p, _ := sample()
	d := SVGPathData(p)
	if !strings.HasPrefix(d, "M110 5 A10 10 0 0 1 120 15 L120 50 A10 10 0 0 1 110 60") {
		t.Fatalf("unexpected prefix: %q", d)
	}
	if !strings.HasSuffix(d, " Z") {
		t.Fatalf("path data not closed: %q", d)
	}
	if n := strings.Count(d, "A3 3 0 0 1 "); n != 1 {
		t.Fatalf("want one tip arc, got %d in %q", n, d)
	}
	if n := strings.Count(d, "A10 10 0 0 1 "); n != 4 {
		t.Fatalf("want four corner arcs, got %d in %q", n, d)
	}
	if strings.Contains(d, "-0 ") || strings.Contains(d, "e-") {
		t.Fatalf("badly formatted number in %q", d)
	}
}

func TestSVGPathData_ArcsWithoutLeadingMove(t *testing.T) {
	var p vector.Path
	p.Arc(0, 0, 10, 0, 2*math.Pi, true)
	if got, want := SVGPathData(p), "M10 0 A10 10 0 0 1 -10 0 A10 10 0 0 1 10 0"; got != want {
		t.Fatalf("full circle = %q, want %q", got, want)
	}

	var q vector.Path
	q.MoveTo(0, 0)
	q.Arc(20, 0, 5, math.Pi/2, -math.Pi/2, false)
	q.Arc(0, 0, 0, 0, 1, true)
	if got, want := SVGPathData(q), "M0 0 L20 5 A5 5 0 0 0 20 -5 L0 0"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNum(t *testing.T) {
	cases := map[float32]string{0: "0", 1.5: "1.5", -2: "-2", 1.23456: "1.235", -0.0001: "0", 100: "100"}
	for v, want := range cases {
		if got := num(v); got != want {
			t.Fatalf("num(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestWriteSVG_Document(t *testing.T) {
	p, s := sample()
	s = s.With(bubble.WithBorder(vector.Color{R: 0x33, G: 0x66, B: 0x99, A: 0x80}), bubble.WithBorderWidth(1.5))
	var buf bytes.Buffer
	if err := WriteSVG(&buf, p, PaintOf(s), Options{Margin: 2}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<?xml version="1.0"`,
		`<path d="M110 5 `,
		`fill="#ffffff"`,
		`stroke="#336699"`,
		`stroke-width="1.5"`,
		`stroke-opacity="0.502"`,
		`stroke-linejoin="round"`,
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q:\n%s", want, out)
		}
	}
	// 2 margin + 0.75 half border on the left
	if !strings.Contains(out, `viewBox="-2.75 `) {
		t.Fatalf("viewBox not padded:\n%s", out)
	}
}

func TestRenderPNG_FillsInsideOnly(t *testing.T) {
	p, s := sample()
	red := vector.Color{R: 255, A: 255}
	img := RenderPNG(p, PaintOf(s.With(bubble.WithFill(red))), Options{Scale: 1})

	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 59 {
		t.Fatalf("image size = %v", b)
	}
	// outline bounds start at the top of the rounded tip, y = L - r
	top := float32(3.0/10*2*math.Sqrt(50)) - 3
	at := func(x, y float32) (uint8, uint8) {
		c := img.RGBAAt(int(x), int(y-top))
		return c.R, c.A
	}
	if r, a := at(60, 30); r != 255 || a != 255 {
		t.Fatalf("body center not filled: r=%d a=%d", r, a)
	}
	if _, a := at(60, 3.5); a == 0 {
		t.Fatalf("arrow interior not filled")
	}
	if _, a := at(20, 3); a != 0 {
		t.Fatalf("strip beside the arrow painted: a=%d", a)
	}
	if _, a := at(0.5, 5.5); a != 0 {
		t.Fatalf("rounded corner painted: a=%d", a)
	}
}

func TestRenderPNG_Border(t *testing.T) {
	p, s := sample()
	s = s.With(
		bubble.WithFill(vector.Color{R: 255, A: 255}),
		bubble.WithBorder(vector.Black),
		bubble.WithBorderWidth(2),
	)
	img := RenderPNG(p, PaintOf(s), Options{Scale: 1})
	// canvas starts one unit (half the border) outside the outline bounds
	c := img.RGBAAt(1, 29)
	if c.R > 8 || c.A != 255 {
		t.Fatalf("left edge not stroked: %+v", c)
	}
	if c := img.RGBAAt(61, 29); c.R != 255 || c.G != 0 {
		t.Fatalf("interior not red: %+v", c)
	}
}

func TestRenderPNG_ScaleAndMargin(t *testing.T) {
	p, s := sample()
	img := RenderPNG(p, PaintOf(s), Options{Scale: 2, Margin: 5})
	if b := img.Bounds(); b.Dx() != 260 {
		t.Fatalf("width = %d, want 260", b.Dx())
	}
	if c := img.RGBAAt(4, 4); c.A != 0 {
		t.Fatalf("margin painted: %+v", c)
	}
}

func TestWritePNG_Encodes(t *testing.T) {
	p, s := sample()
	var buf bytes.Buffer
	if err := WritePNG(&buf, p, PaintOf(s), Options{}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("not a png")
	}
}
