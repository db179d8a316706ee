/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package bubble

import (
	"testing"

	"bubblekit/internal/vector"
)

func TestStyle_WithDoesNotMutateReceiver(t *testing.T) {
	base := DefaultStyle()
	next := base.With(WithCornerRadius(4), WithArrowWidth(20), WithFill(vector.Black), nil)
	if base != DefaultStyle() {
		t.Fatalf("receiver changed: %+v", base)
	}
	if next.CornerRadius != 4 || next.Arrow.Width != 20 || next.Fill != vector.Black {
		t.Fatalf("options not applied: %+v", next)
	}
	if next.Arrow.Height != 5 || next.Arrow.TipRadius != 3 || next.Direction != Top {
		t.Fatalf("untouched fields lost: %+v", next)
	}
}

func TestStyle_OptionsApplyInOrder(t *testing.T) {
	other := DefaultStyle().With(WithDirection(Right))
	s := DefaultStyle().With(WithCornerRadius(1), WithStyle(other), WithArrowHeight(9))
	if s.CornerRadius != 10 || s.Direction != Right || s.Arrow.Height != 9 {
		t.Fatalf("got %+v", s)
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"top": Top, " Bottom ": Bottom, "LEFT": Left, "right": Right, "up": Top, "down": Bottom} {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Fatalf("ParseDirection(%q) = %v, %v", in, got, err)
		}
		if _, err := ParseDirection(got.String()); err != nil {
			t.Fatalf("String() of %v does not parse back: %v", got, err)
		}
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}

func TestParseAnchor(t *testing.T) {
	cases := map[string]Anchor{
		"":          Centered(),
		"center":    Centered(),
		"start:12":  FromStart(12),
		"left:3.5":  FromStart(3.5),
		"end: 20":   FromEnd(20),
		"BOTTOM:0":  FromEnd(0),
		"top:-4":    FromStart(-4),
		"right:1e1": FromEnd(10),
	}
	for in, want := range cases {
		got, err := ParseAnchor(in)
		if err != nil || got != want {
			t.Fatalf("ParseAnchor(%q) = %+v, %v; want %+v", in, got, err, want)
		}
		back, err := ParseAnchor(got.String())
		if err != nil || back != got {
			t.Fatalf("round trip of %+v via %q gave %+v, %v", got, got.String(), back, err)
		}
	}
	for _, bad := range []string{"middle", "start", "start:x", "side:4"} {
		if _, err := ParseAnchor(bad); err == nil {
			t.Fatalf("ParseAnchor(%q) should fail", bad)
		}
	}
}
