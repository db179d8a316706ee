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
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"bubblekit/internal/vector"
)

// SVGPathData returns p as an SVG "d" attribute. Arcs become elliptical arc
// commands with equal radii; the sweep flag is 1 for clockwise arcs, which
// matches the y-down coordinate system. Numbers are rounded to 3 decimals.
func SVGPathData(p vector.Path) string {
	var b strings.Builder
	var cur, sub vector.Pt
	first := true
	cmd := func(op string, pts ...float32) {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		b.WriteString(op)
		for i, v := range pts {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(num(v))
		}
	}
	for _, c := range p.Cmds {
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			cmd("M", d[0], d[1])
			cur = vector.Pt{X: d[0], Y: d[1]}
			sub = cur
		case vector.LineTo:
			cmd("L", d[0], d[1])
			cur = vector.Pt{X: d[0], Y: d[1]}
		case vector.QuadTo:
			cmd("Q", d[0], d[1], d[2], d[3])
			cur = vector.Pt{X: d[2], Y: d[3]}
		case vector.CubicTo:
			cmd("C", d[0], d[1], d[2], d[3], d[4], d[5])
			cur = vector.Pt{X: d[4], Y: d[5]}
		case vector.Arc:
			s, e := c.ArcPoints()
			switch {
			case first:
				cmd("M", s.X, s.Y)
				sub = s
			case !s.Near(cur, 1e-4):
				cmd("L", s.X, s.Y)
			}
			sweep := c.Sweep()
			r := c.Radius()
			flag := float32(0)
			if sweep > 0 {
				flag = 1
			}
			switch {
			case r == 0 || sweep == 0:
				if !e.Near(s, 1e-4) {
					cmd("L", e.X, e.Y)
				}
			case math.Abs(sweep) > 2*math.Pi-1e-4:
				// a full circle has coincident end points; split it
				mid := c.Center().Sub(s.Sub(c.Center()))
				cmd("A", r, r, 0, 0, flag, mid.X, mid.Y)
				cmd("A", r, r, 0, 0, flag, e.X, e.Y)
			default:
				large := float32(0)
				if math.Abs(sweep) > math.Pi+1e-5 {
					large = 1
				}
				cmd("A", r, r, 0, large, flag, e.X, e.Y)
			}
			cur = e
		case vector.Close:
			cmd("Z")
			cur = sub
		}
	}
	return b.String()
}

// WriteSVG writes a standalone SVG document sized to the outline.
func WriteSVG(w io.Writer, p vector.Path, paint Paint, opt Options) error {
	box := canvas(p, paint, opt)
	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%s\" height=\"%s\" viewBox=\"%s %s %s %s\">\n",
		num(box.W), num(box.H), num(box.X), num(box.Y), num(box.W), num(box.H))
	wf("  <path d=\"%s\"%s%s/>\n", SVGPathData(p), fillAttrs(paint.Fill), strokeAttrs(paint))
	wf("</svg>\n")
	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func fillAttrs(c vector.Color) string {
	if c.A == 0 {
		return ` fill="none"`
	}
	s := fmt.Sprintf(` fill="%s"`, svgColor(c))
	if c.A < 255 {
		s += fmt.Sprintf(` fill-opacity="%s"`, num(float32(c.A)/255))
	}
	return s
}

func strokeAttrs(p Paint) string {
	if !p.stroked() {
		return ""
	}
	s := fmt.Sprintf(` stroke="%s" stroke-width="%s" stroke-linejoin="round" stroke-linecap="round"`, svgColor(p.Border), num(p.BorderWidth))
	if p.Border.A < 255 {
		s += fmt.Sprintf(` stroke-opacity="%s"`, num(float32(p.Border.A)/255))
	}
	return s
}

func svgColor(c vector.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// num formats v with at most 3 decimals and no trailing zeros.
func num(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', 3, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}
