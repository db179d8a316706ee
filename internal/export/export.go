/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes bubble outlines as SVG, PNG or PDF.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bubblekit/internal/bubble"
	applog "bubblekit/internal/log"
	"bubblekit/internal/vector"
)

// Paint is the presentation taken from a bubble style.
type Paint struct {
	Fill        vector.Color
	Border      vector.Color
	BorderWidth float32
}

func PaintOf(s bubble.Style) Paint {
	return Paint{Fill: s.Fill, Border: s.Border, BorderWidth: s.BorderWidth}
}

func (p Paint) stroked() bool { return p.BorderWidth > 0 && p.Border.A > 0 }

// Options apply to every format. Scale only affects PNG.
type Options struct {
	Scale  float32 // pixels per unit; <= 0 means 1
	Margin float32 // padding around the outline
}

// canvas returns the exported area: the outline bounds grown by the margin
// and half the border width.
func canvas(p vector.Path, paint Paint, opt Options) vector.Rect {
	pad := max(opt.Margin, 0)
	if paint.stroked() {
		pad += paint.BorderWidth / 2
	}
	return p.Bounds().Inset(-pad, -pad)
}

type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
	PDF Format = "pdf"
)

var ErrUnknownFormat = errors.New("unknown export format")

// FormatOf picks the format from the file extension, falling back to def.
func FormatOf(path string, def string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		ext = strings.ToLower(strings.TrimSpace(def))
	}
	switch Format(ext) {
	case SVG, PNG, PDF:
		return Format(ext), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

// ToFile writes p to path in the given format, creating parent directories.
func ToFile(path string, f Format, p vector.Path, paint Paint, opt Options) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure out dir: %w", err)
		}
	}
	l := applog.WithOperation(applog.WithComponent("export"), string(f))
	var err error
	switch f {
	case SVG:
		err = writeFile(path, func(fh *os.File) error { return WriteSVG(fh, p, paint, opt) })
	case PNG:
		err = writeFile(path, func(fh *os.File) error { return WritePNG(fh, p, paint, opt) })
	case PDF:
		err = WritePDFFile(path, p, paint, opt)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		l.Error("export failed", "path", path, "err", err)
		return err
	}
	l.Info("exported", "path", path)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := write(fh); err != nil {
		_ = fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}
