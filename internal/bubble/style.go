/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package bubble

import (
	"fmt"
	"strconv"
	"strings"

	"bubblekit/internal/vector"
)

// Direction names the body edge the arrow protrudes from.
type Direction uint8

const (
	Top Direction = iota
	Bottom
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "direction(" + strconv.Itoa(int(d)) + ")"
}

// Horizontal reports whether the arrow sits on a horizontal edge (top or bottom).
func (d Direction) Horizontal() bool { return d == Top || d == Bottom }

// ParseDirection accepts top, bottom, left or right (case-insensitive).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "up":
		return Top, nil
	case "bottom", "down":
		return Bottom, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Top, fmt.Errorf("unknown direction %q", s)
}

// AnchorKind selects how Anchor.Distance is interpreted.
type AnchorKind uint8

const (
	// AnchorCenter places the arrow at the midpoint of its edge.
	AnchorCenter AnchorKind = iota
	// AnchorStart measures from the left (top/bottom edge) or top (left/right edge) corner.
	AnchorStart
	// AnchorEnd measures from the right or bottom corner.
	AnchorEnd
)

// Anchor positions the arrow's center line along its edge. The zero value is centered.
type Anchor struct {
	Kind     AnchorKind
	Distance float32
}

func Centered() Anchor            { return Anchor{} }
func FromStart(d float32) Anchor  { return Anchor{Kind: AnchorStart, Distance: d} }
func FromEnd(d float32) Anchor    { return Anchor{Kind: AnchorEnd, Distance: d} }
func (a Anchor) IsCentered() bool { return a.Kind == AnchorCenter }

func (a Anchor) offset(extent float32) float32 {
	switch a.Kind {
	case AnchorStart:
		return a.Distance
	case AnchorEnd:
		return extent - a.Distance
	}
	return extent / 2
}

func (a Anchor) String() string {
	d := strconv.FormatFloat(float64(a.Distance), 'f', -1, 32)
	switch a.Kind {
	case AnchorStart:
		return "start:" + d
	case AnchorEnd:
		return "end:" + d
	}
	return "center"
}

// ParseAnchor accepts "center", "start:<d>" or "end:<d>". The edge names
// left/top are accepted for start and right/bottom for end.
func ParseAnchor(s string) (Anchor, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == "center" || v == "centre" {
		return Centered(), nil
	}
	name, num, ok := strings.Cut(v, ":")
	if !ok {
		return Anchor{}, fmt.Errorf("invalid anchor %q: want center, start:<d> or end:<d>", s)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(num), 32)
	if err != nil {
		return Anchor{}, fmt.Errorf("invalid anchor distance %q: %w", num, err)
	}
	switch strings.TrimSpace(name) {
	case "start", "left", "top":
		return FromStart(float32(d)), nil
	case "end", "right", "bottom":
		return FromEnd(float32(d)), nil
	}
	return Anchor{}, fmt.Errorf("invalid anchor edge %q", name)
}

// Arrow is the isosceles pointer triangle. Width is the base along the edge,
// Height the protrusion, TipRadius the apex rounding (floored to 0.1 when built).
type Arrow struct {
	Width     float32
	Height    float32
	TipRadius float32
}

// Style fully describes one bubble. It is a value: updates produce a new Style.
type Style struct {
	CornerRadius float32
	Arrow        Arrow
	Direction    Direction
	Anchor       Anchor

	// Presentation only; the builder never reads these.
	Fill        vector.Color
	Border      vector.Color
	BorderWidth float32
}

// DefaultStyle returns a white card with a small centered arrow on top.
func DefaultStyle() Style {
	return Style{
		CornerRadius: 10,
		Arrow:        Arrow{Width: 10, Height: 5, TipRadius: 3},
		Direction:    Top,
		Anchor:       Centered(),
		Fill:         vector.White,
		Border:       vector.Transparent,
		BorderWidth:  0,
	}
}

// Option overrides one field of a Style.
type Option func(*Style)

// With returns a copy of s with opts applied in order; s itself is untouched.
func (s Style) With(opts ...Option) Style {
	for _, o := range opts {
		if o != nil {
			o(&s)
		}
	}
	return s
}

func WithCornerRadius(r float32) Option   { return func(s *Style) { s.CornerRadius = r } }
func WithArrowWidth(w float32) Option     { return func(s *Style) { s.Arrow.Width = w } }
func WithArrowHeight(h float32) Option    { return func(s *Style) { s.Arrow.Height = h } }
func WithArrowTipRadius(r float32) Option { return func(s *Style) { s.Arrow.TipRadius = r } }
func WithArrow(a Arrow) Option            { return func(s *Style) { s.Arrow = a } }
func WithDirection(d Direction) Option    { return func(s *Style) { s.Direction = d } }
func WithAnchor(a Anchor) Option          { return func(s *Style) { s.Anchor = a } }
func WithFill(c vector.Color) Option      { return func(s *Style) { s.Fill = c } }
func WithBorder(c vector.Color) Option    { return func(s *Style) { s.Border = c } }
func WithBorderWidth(w float32) Option    { return func(s *Style) { s.BorderWidth = w } }
func WithStyle(other Style) Option        { return func(s *Style) { *s = other } }
