/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package bubble

import (
	"log/slog"
	"sync"

	applog "bubblekit/internal/log"
	"bubblekit/internal/vector"
)

// Bubble keeps the current bounds, style and outline of one on-screen bubble.
// Every change replaces the style with a merged copy and rebuilds the outline
// from scratch; the last outline is the only cached state.
// It is safe for concurrent use.
type Bubble struct {
	mu     sync.RWMutex
	bounds vector.Rect
	style  Style
	path   vector.Path
	log    *slog.Logger
}

// New creates a bubble over bounds with DefaultStyle overridden by opts.
func New(bounds vector.Rect, opts ...Option) *Bubble {
	b := &Bubble{bounds: bounds, style: DefaultStyle().With(opts...), log: applog.WithComponent("bubble")}
	b.rebuildLocked("new")
	return b
}

// Update applies opts on top of the current style and returns the new style.
func (b *Bubble) Update(opts ...Option) Style {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.style = b.style.With(opts...)
	b.rebuildLocked("update")
	return b.style
}

// SetBounds moves or resizes the bubble.
func (b *Bubble) SetBounds(r vector.Rect) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bounds = r
	b.rebuildLocked("bounds")
}

// FitContent sizes the bubble around content (already measured by the
// caller) and returns where the content's top-left corner goes.
func (b *Bubble) FitContent(content vector.Size, in Insets) vector.Pt {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, origin := Fit(content, in, b.style)
	b.bounds = vector.R(b.bounds.X, b.bounds.Y, r.W, r.H)
	b.rebuildLocked("fit")
	return origin.Add(b.bounds.Min())
}

func (b *Bubble) rebuildLocked(reason string) {
	b.path = Build(b.bounds, b.style)
	b.log.Debug("outline rebuilt",
		slog.String("reason", reason),
		slog.String("direction", b.style.Direction.String()),
		slog.String("anchor", b.style.Anchor.String()),
		slog.Int("cmds", len(b.path.Cmds)),
	)
}

func (b *Bubble) Style() Style {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.style
}

func (b *Bubble) Bounds() vector.Rect {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bounds
}

// BodyRect returns the card area without the arrow strip.
func (b *Bubble) BodyRect() vector.Rect {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return BodyRect(b.bounds, b.style)
}

// Path returns a copy of the last built outline.
func (b *Bubble) Path() vector.Path {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return vector.Path{Cmds: append([]vector.PathCmd(nil), b.path.Cmds...)}
}

// Node returns the outline with its paint, ready for a renderer.
func (b *Bubble) Node() *vector.PathNode {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return NodeFor(vector.Path{Cmds: append([]vector.PathCmd(nil), b.path.Cmds...)}, b.style)
}

// NodeFor pairs an outline with the fill and border from s. Borders use round
// joins so the arrow tip and corners stay smooth.
func NodeFor(p vector.Path, s Style) *vector.PathNode {
	fill := vector.Fill{Color: s.Fill, Rule: vector.NonZero, Enabled: s.Fill.A > 0}
	stroke := vector.Stroke{
		Color:   s.Border,
		Width:   s.BorderWidth,
		Cap:     vector.CapRound,
		Join:    vector.JoinRound,
		Enabled: s.BorderWidth > 0,
	}
	return vector.NewPath(p, fill, stroke)
}
