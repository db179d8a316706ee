/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package stylepack reads and writes named bubble style presets.
//
// A preset file is JSON validated against an embedded schema:
//
//	{"version": 1, "styles": {"hint": {"corner_radius": 6, "direction": "left"}}}
//
// Fields left out keep their bubble.DefaultStyle value. A pack is a zip with
// presets.json at its root plus a short manifest.
package stylepack

import (
	"archive/zip"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"bubblekit/internal/bubble"
	applog "bubblekit/internal/log"
	"bubblekit/internal/vector"
)

//go:embed schema.json
var schemaJSON []byte

const (
	presetsEntry  = "presets.json"
	manifestEntry = "stylepack.manifest.txt"
)

var ErrInvalid = errors.New("invalid style presets")

type arrowDoc struct {
	Width     *float32 `json:"width,omitempty"`
	Height    *float32 `json:"height,omitempty"`
	TipRadius *float32 `json:"tip_radius,omitempty"`
}

type styleDoc struct {
	CornerRadius *float32  `json:"corner_radius,omitempty"`
	Arrow        *arrowDoc `json:"arrow,omitempty"`
	Direction    string    `json:"direction,omitempty"`
	Anchor       string    `json:"anchor,omitempty"`
	Fill         string    `json:"fill,omitempty"`
	Border       string    `json:"border,omitempty"`
	BorderWidth  *float32  `json:"border_width,omitempty"`
}

type fileDoc struct {
	Version int                 `json:"version"`
	Styles  map[string]styleDoc `json:"styles"`
}

// Validate checks data against the preset schema. The returned error wraps
// ErrInvalid and lists every violation.
func Validate(data []byte) error {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Parse validates data and returns the styles it names.
func Parse(data []byte) (map[string]bubble.Style, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	out := make(map[string]bubble.Style, len(doc.Styles))
	for name, sd := range doc.Styles {
		s, err := sd.style()
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		out[name] = s
	}
	return out, nil
}

func (d styleDoc) style() (bubble.Style, error) {
	var opts []bubble.Option
	if d.CornerRadius != nil {
		opts = append(opts, bubble.WithCornerRadius(*d.CornerRadius))
	}
	if a := d.Arrow; a != nil {
		if a.Width != nil {
			opts = append(opts, bubble.WithArrowWidth(*a.Width))
		}
		if a.Height != nil {
			opts = append(opts, bubble.WithArrowHeight(*a.Height))
		}
		if a.TipRadius != nil {
			opts = append(opts, bubble.WithArrowTipRadius(*a.TipRadius))
		}
	}
	if d.Direction != "" {
		dir, err := bubble.ParseDirection(d.Direction)
		if err != nil {
			return bubble.Style{}, err
		}
		opts = append(opts, bubble.WithDirection(dir))
	}
	if d.Anchor != "" {
		a, err := bubble.ParseAnchor(d.Anchor)
		if err != nil {
			return bubble.Style{}, err
		}
		opts = append(opts, bubble.WithAnchor(a))
	}
	for _, c := range []struct {
		v   string
		opt func(vector.Color) bubble.Option
	}{{d.Fill, bubble.WithFill}, {d.Border, bubble.WithBorder}} {
		if c.v == "" {
			continue
		}
		col, err := vector.ParseColor(c.v)
		if err != nil {
			return bubble.Style{}, err
		}
		opts = append(opts, c.opt(col))
	}
	if d.BorderWidth != nil {
		opts = append(opts, bubble.WithBorderWidth(*d.BorderWidth))
	}
	return bubble.DefaultStyle().With(opts...), nil
}

func docOf(s bubble.Style) styleDoc {
	cr, bw := s.CornerRadius, s.BorderWidth
	w, h, tr := s.Arrow.Width, s.Arrow.Height, s.Arrow.TipRadius
	return styleDoc{
		CornerRadius: &cr,
		Arrow:        &arrowDoc{Width: &w, Height: &h, TipRadius: &tr},
		Direction:    s.Direction.String(),
		Anchor:       s.Anchor.String(),
		Fill:         s.Fill.Hex(),
		Border:       s.Border.Hex(),
		BorderWidth:  &bw,
	}
}

// Marshal encodes styles as a preset document that Parse accepts.
func Marshal(styles map[string]bubble.Style) ([]byte, error) {
	doc := fileDoc{Version: 1, Styles: make(map[string]styleDoc, len(styles))}
	for name, s := range styles {
		doc.Styles[name] = docOf(s)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode presets: %w", err)
	}
	return append(data, '\n'), nil
}

// Load reads presets from a .json file or from a .zip pack.
func Load(path string) (map[string]bubble.Style, error) {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "load").With(slog.String("path", path))
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		data, err = readPack(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	styles, err := Parse(data)
	if err != nil {
		l.Warn("presets rejected", slog.Any("err", err))
		return nil, err
	}
	l.Debug("presets loaded", slog.Int("styles", len(styles)))
	return styles, nil
}

func readPack(path string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()
	for _, f := range r.File {
		if f.Name != presetsEntry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(io.LimitReader(rc, 1<<20))
	}
	return nil, fmt.Errorf("pack has no %s", presetsEntry)
}

// Save writes styles as a JSON preset file.
func Save(path string, styles map[string]bubble.Style) error {
	data, err := Marshal(styles)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure presets dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write presets: %w", err)
	}
	return nil
}

// ExportPack writes styles into a zip pack at destZipPath, replacing any
// existing file.
func ExportPack(destZipPath string, styles map[string]bubble.Style) error {
	l := applog.WithOperation(applog.WithComponent("stylepack"), "export")
	if strings.TrimSpace(destZipPath) == "" {
		return errors.New("destZipPath is required")
	}
	data, err := Marshal(styles)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}
	_ = os.Remove(destZipPath)
	zf, err := os.Create(destZipPath)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	zw := zip.NewWriter(zf)

	names := make([]string, 0, len(styles))
	for n := range styles {
		names = append(names, n)
	}
	sort.Strings(names)
	manifest := fmt.Sprintf("Bubble style pack\nCreated: %s\nStyles: %s\n", time.Now().Format(time.RFC3339), strings.Join(names, ", "))

	for _, e := range []struct {
		name string
		body []byte
	}{{manifestEntry, []byte(manifest)}, {presetsEntry, data}} {
		w, err := zw.Create(e.name)
		if err == nil {
			_, err = w.Write(e.body)
		}
		if err != nil {
			_ = zw.Close()
			_ = zf.Close()
			return fmt.Errorf("add %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		_ = zf.Close()
		return fmt.Errorf("finish zip: %w", err)
	}
	if err := zf.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	l.Info("style pack exported", slog.Int("styles", len(names)), slog.String("zip", destZipPath))
	return nil
}
