/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package bubble

import "bubblekit/internal/vector"

// Insets is padding between the body edges and its content.
type Insets struct{ Top, Left, Bottom, Right float32 }

func UniformInsets(v float32) Insets { return Insets{Top: v, Left: v, Bottom: v, Right: v} }

// Fit computes bubble bounds (at the origin) that hold content plus insets
// inside the body, and the content origin within those bounds. The arrow
// height is added on the arrow's axis and the origin is pushed past the
// arrow strip for top and left arrows.
func Fit(content vector.Size, in Insets, s Style) (vector.Rect, vector.Pt) {
	w := content.W + in.Left + in.Right
	h := content.H + in.Top + in.Bottom
	origin := vector.Pt{X: in.Left, Y: in.Top}
	ah := s.Arrow.Height
	switch s.Direction {
	case Top:
		h += ah
		origin.Y += ah
	case Bottom:
		h += ah
	case Left:
		w += ah
		origin.X += ah
	case Right:
		w += ah
	}
	return vector.R(0, 0, w, h), origin
}
