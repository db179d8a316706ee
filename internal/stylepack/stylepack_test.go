/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package stylepack

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bubblekit/internal/bubble"
	"bubblekit/internal/vector"
)

const sampleDoc = `{
  "version": 1,
  "styles": {
    "hint": {"corner_radius": 6, "direction": "left", "anchor": "start:12", "arrow": {"width": 14}},
    "alert": {"fill": "#ffeeee", "border": "#cc0000", "border_width": 1.5},
    "plain": {}
  }
}`

func TestParse_AppliesOverDefaults(t *testing.T) {
	styles, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(styles) != 3 {
		t.Fatalf("got %d styles", len(styles))
	}
	hint := styles["hint"]
	if hint.CornerRadius != 6 || hint.Direction != bubble.Left || hint.Anchor != bubble.FromStart(12) {
		t.Fatalf("hint = %+v", hint)
	}
	if hint.Arrow.Width != 14 || hint.Arrow.Height != 5 || hint.Arrow.TipRadius != 3 {
		t.Fatalf("hint arrow = %+v", hint.Arrow)
	}
	alert := styles["alert"]
	if alert.Fill != (vector.Color{R: 0xff, G: 0xee, B: 0xee, A: 0xff}) || alert.BorderWidth != 1.5 || alert.CornerRadius != 10 {
		t.Fatalf("alert = %+v", alert)
	}
	if styles["plain"] != bubble.DefaultStyle() {
		t.Fatalf("empty preset should equal the default style")
	}
}

func TestParse_SchemaRejects(t *testing.T) {
	cases := map[string]string{
		"unknown direction": `{"styles": {"a": {"direction": "north"}}}`,
		"negative radius":   `{"styles": {"a": {"corner_radius": -1}}}`,
		"zero arrow width":  `{"styles": {"a": {"arrow": {"width": 0}}}}`,
		"bad anchor":        `{"styles": {"a": {"anchor": "middle"}}}`,
		"bad color":         `{"styles": {"a": {"fill": "#12345"}}}`,
		"unknown field":     `{"styles": {"a": {"shadow": true}}}`,
		"missing styles":    `{"version": 1}`,
		"not json":          `{styles`,
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
}

func TestValidate_ReportsField(t *testing.T) {
	err := Validate([]byte(`{"styles": {"a": {"direction": "north"}}}`))
	if err == nil || !strings.Contains(err.Error(), "direction") {
		t.Fatalf("error should name the field: %v", err)
	}
}

func TestSaveLoad_JSON(t *testing.T) {
	in, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sub", "presets.json")
	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for name, s := range in {
		if out[name] != s {
			t.Fatalf("%s: got %+v, want %+v", name, out[name], s)
		}
	}
}

func TestExportPack_LoadsBack(t *testing.T) {
	in := map[string]bubble.Style{
		"down": bubble.DefaultStyle().With(bubble.WithDirection(bubble.Bottom), bubble.WithAnchor(bubble.FromEnd(20))),
	}
	zipPath := filepath.Join(t.TempDir(), "pack.zip")
	if err := ExportPack(zipPath, in); err != nil {
		t.Fatalf("ExportPack: %v", err)
	}
	out, err := Load(zipPath)
	if err != nil {
		t.Fatalf("Load pack: %v", err)
	}
	if out["down"] != in["down"] {
		t.Fatalf("got %+v, want %+v", out["down"], in["down"])
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	bogus := filepath.Join(t.TempDir(), "bogus.zip")
	if err := os.WriteFile(bogus, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bogus); err == nil {
		t.Fatalf("expected error for bogus pack")
	}
	if err := ExportPack("  ", nil); err == nil {
		t.Fatalf("expected error for empty destination")
	}
}
