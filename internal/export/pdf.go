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
	"io"

	"github.com/jung-kurt/gofpdf"

	"bubblekit/internal/vector"
)

// newPDF lays p out on a single page in points sized to the outline.
// The page origin is top-left, matching the path coordinates.
func newPDF(p vector.Path, paint Paint, opt Options) *gofpdf.Fpdf {
	box := canvas(p, paint, opt)
	size := gofpdf.SizeType{Wd: float64(max(box.W, 1)), Ht: float64(max(box.H, 1))}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: size})
	pdf.SetTitle("Bubble", false)
	pdf.SetCreator("bubblekit", false)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", size)

	pts := p.Transform(vector.Translate(-box.X, -box.Y)).Cubics()
	alpha := uint8(255)
	setAlpha := func(a uint8) {
		if a != alpha {
			pdf.SetAlpha(float64(a)/255, "Normal")
			alpha = a
		}
	}
	// fill and border carry their own opacity
	if paint.Fill.A > 0 {
		setFillColor(pdf, paint.Fill)
		setAlpha(paint.Fill.A)
		tracePath(pdf, pts)
		pdf.DrawPath("F")
	}
	if paint.stroked() {
		setDrawColor(pdf, paint.Border)
		pdf.SetLineWidth(float64(paint.BorderWidth))
		pdf.SetLineJoinStyle("round")
		pdf.SetLineCapStyle("round")
		setAlpha(paint.Border.A)
		tracePath(pdf, pts)
		pdf.DrawPath("D")
	}
	return pdf
}

func tracePath(pdf *gofpdf.Fpdf, p vector.Path) {
	for _, c := range p.Cmds {
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			pdf.MoveTo(float64(d[0]), float64(d[1]))
		case vector.LineTo:
			pdf.LineTo(float64(d[0]), float64(d[1]))
		case vector.QuadTo:
			pdf.CurveTo(float64(d[0]), float64(d[1]), float64(d[2]), float64(d[3]))
		case vector.CubicTo:
			pdf.CurveBezierCubicTo(float64(d[0]), float64(d[1]), float64(d[2]), float64(d[3]), float64(d[4]), float64(d[5]))
		case vector.Close:
			pdf.ClosePath()
		}
	}
}

// WritePDF writes a one-page PDF of p to w.
func WritePDF(w io.Writer, p vector.Path, paint Paint, opt Options) error {
	pdf := newPDF(p, paint, opt)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func WritePDFFile(path string, p vector.Path, paint Paint, opt Options) error {
	if err := newPDF(p, paint, opt).OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}
