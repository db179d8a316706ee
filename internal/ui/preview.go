/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package ui hosts the interactive bubble preview. The window itself needs
// the fyne build tag; the model behind it is plain Go.
package ui

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"strings"
	"time"

	"bubblekit/internal/bubble"
	"bubblekit/internal/config"
	"bubblekit/internal/export"
	applog "bubblekit/internal/log"
	"bubblekit/internal/undo"
	"bubblekit/internal/vector"
)

// Options seed the preview.
type Options struct {
	Style bubble.Style
	Size  vector.Size // bubble bounds; zero means 240x120
	Scale float32     // raster scale; <= 0 means 2
}

// model owns the bubble shown in the preview and turns control changes into
// style updates.
type model struct {
	b     *bubble.Bubble
	scale float32
	log   *slog.Logger
	hist  *undo.History[bubble.Style]
	now   func() time.Time
}

func newModel(o Options) *model {
	size := o.Size
	if size.W <= 0 || size.H <= 0 {
		size = vector.Size{W: 240, H: 120}
	}
	scale := o.Scale
	if scale <= 0 {
		scale = 2
	}
	return &model{
		b:     bubble.New(vector.R(0, 0, size.W, size.H), bubble.WithStyle(o.Style)),
		scale: scale,
		log:   applog.WithComponent("ui"),
		hist:  undo.NewHistory[bubble.Style](undo.Config{}),
		now:   time.Now,
	}
}

// update records the current style for undo before applying opts.
func (m *model) update(opts ...bubble.Option) {
	m.hist.Push(m.b.Style(), m.now())
	m.b.Update(opts...)
}

func (m *model) undo() bool {
	s, ok := m.hist.Undo(m.b.Style())
	if ok {
		m.b.Update(bubble.WithStyle(s))
	}
	return ok
}

func (m *model) redo() bool {
	s, ok := m.hist.Redo(m.b.Style())
	if ok {
		m.b.Update(bubble.WithStyle(s))
	}
	return ok
}

func (m *model) setDirection(s string) error {
	d, err := bubble.ParseDirection(s)
	if err != nil {
		return err
	}
	m.update(bubble.WithDirection(d))
	return nil
}

func (m *model) setAnchor(s string) error {
	a, err := bubble.ParseAnchor(s)
	if err != nil {
		return err
	}
	m.update(bubble.WithAnchor(a))
	return nil
}

// set applies a numeric control by name.
func (m *model) set(name string, v float32) {
	var opt bubble.Option
	switch name {
	case "corner":
		opt = bubble.WithCornerRadius(v)
	case "arrow-w":
		opt = bubble.WithArrowWidth(v)
	case "arrow-h":
		opt = bubble.WithArrowHeight(v)
	case "tip":
		opt = bubble.WithArrowTipRadius(v)
	case "border":
		opt = bubble.WithBorderWidth(v)
	default:
		m.log.Warn("unknown control", slog.String("name", name))
		return
	}
	m.update(opt)
}

func (m *model) resize(w, h float32) {
	if w > 0 && h > 0 {
		m.b.SetBounds(vector.R(0, 0, w, h))
	}
}

func (m *model) image() *image.RGBA {
	return export.RenderPNG(m.b.Path(), export.PaintOf(m.b.Style()), export.Options{Scale: m.scale, Margin: 4})
}

// exportTo writes the current bubble; the format follows the name's extension.
func (m *model) exportTo(name string, write func(f export.Format, p vector.Path, paint export.Paint, o export.Options) error) error {
	f, err := export.FormatOf(name, "png")
	if err != nil {
		return err
	}
	err = write(f, m.b.Path(), export.PaintOf(m.b.Style()), export.Options{Scale: m.scale, Margin: 4})
	if err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	m.log.Info("preview exported", slog.String("name", name))
	return nil
}

// saveDefaults writes the current style as the configured default. It returns
// the environment variables that will keep overriding saved fields.
func (m *model) saveDefaults() ([]string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.Bubble.SetStyle(m.b.Style())
	if err := config.Save(cfg); err != nil {
		return nil, fmt.Errorf("save defaults: %w", err)
	}
	var shadowed []string
	for _, key := range []string{"bubble.corner_radius", "bubble.direction", "bubble.anchor"} {
		if env, ok := config.EnvOverrideFor(key); ok {
			shadowed = append(shadowed, env)
		}
	}
	m.log.Info("defaults saved", slog.Int("env_overrides", len(shadowed)))
	return shadowed, nil
}

func (m *model) status() string {
	s := m.b.Style()
	b := m.b.Bounds()
	f := bubble.FilletOf(s.Arrow)
	return strings.Join([]string{
		fmt.Sprintf("%gx%g", b.W, b.H),
		"arrow " + s.Direction.String() + " @ " + s.Anchor.String(),
		fmt.Sprintf("radius %g", s.CornerRadius),
		fmt.Sprintf("tip %.2f (θ %.1f°)", f.Radius, f.Theta*180/math.Pi),
	}, " · ")
}
