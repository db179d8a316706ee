/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"math"
	"testing"
)

func TestRectContainsAndInset(t *testing.T) {
	r := R(10, 20, 100, 50)
	if !r.Contains(Pt{10, 20}) || !r.Contains(Pt{110, 70}) {
		t.Fatalf("expected edge points to be contained")
	}
	in := r.Inset(5, 5)
	if in.X != 15 || in.Y != 25 || in.W != 90 || in.H != 40 {
		t.Fatalf("unexpected inset: %+v", in)
	}
	if c := r.Center(); c != (Pt{60, 45}) {
		t.Fatalf("unexpected center: %+v", c)
	}
}

func TestAffineBasic(t *testing.T) {
	m := Translate(10, 5).Mul(Scale(2, 3))
	p := m.Apply(Pt{1, 1})
	if p.X != 12 || p.Y != 8 { // (1*2+10, 1*3+5)
		t.Fatalf("unexpected transform result: %+v", p)
	}
	back := m.Invert().Apply(p)
	if !back.Near(Pt{1, 1}, 1e-5) {
		t.Fatalf("inverse did not round-trip: %+v", back)
	}
}

func TestRotateAbout(t *testing.T) {
	m := RotateAbout(math.Pi, Pt{5, 5})
	p := m.Apply(Pt{0, 0})
	if !p.Near(Pt{10, 10}, 1e-4) {
		t.Fatalf("unexpected rotation: %+v", p)
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"#fff":      White,
		"000000":    Black,
		"#11223344": {0x11, 0x22, 0x33, 0x44},
		"clear":     Transparent,
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseColor(%q) = %+v, want %+v", in, got, want)
		}
	}
	if _, err := ParseColor("#12345"); err == nil {
		t.Fatalf("expected error for malformed color")
	}
	if h := (Color{0x11, 0x22, 0x33, 0x44}).Hex(); h != "#11223344" {
		t.Fatalf("Hex = %q", h)
	}
	if h := White.Hex(); h != "#ffffff" {
		t.Fatalf("Hex = %q", h)
	}
}
