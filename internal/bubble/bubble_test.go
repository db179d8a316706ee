/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package bubble

import (
	"sync"
	"testing"

	"bubblekit/internal/vector"
)

func TestBubble_UpdateRebuildsAndKeepsOtherFields(t *testing.T) {
	b := New(vector.R(0, 0, 120, 60), WithCornerRadius(6))
	before := b.Path()

	s := b.Update(WithDirection(Left), WithAnchor(FromStart(12)))
	if s.CornerRadius != 6 || s.Direction != Left || s.Anchor != FromStart(12) {
		t.Fatalf("merged style = %+v", s)
	}
	after := b.Path()
	if len(after.Cmds) != len(before.Cmds) {
		t.Fatalf("command count changed: %d -> %d", len(before.Cmds), len(after.Cmds))
	}
	if after.Cmds[0] == before.Cmds[0] {
		t.Fatalf("outline was not rebuilt after a direction change")
	}
	want := Build(vector.R(0, 0, 120, 60), s)
	for i := range want.Cmds {
		if after.Cmds[i] != want.Cmds[i] {
			t.Fatalf("command %d: host %+v, builder %+v", i, after.Cmds[i], want.Cmds[i])
		}
	}
}

func TestBubble_PathIsACopy(t *testing.T) {
	b := New(vector.R(0, 0, 80, 40))
	p := b.Path()
	p.Cmds[0].Data[0] = -999
	if b.Path().Cmds[0].Data[0] == -999 {
		t.Fatalf("caller mutation leaked into the bubble")
	}
}

func TestBubble_SetBounds(t *testing.T) {
	b := New(vector.R(0, 0, 80, 40))
	b.SetBounds(vector.R(10, 10, 200, 100))
	if b.Bounds() != vector.R(10, 10, 200, 100) {
		t.Fatalf("bounds = %+v", b.Bounds())
	}
	if body := b.BodyRect(); body != vector.R(10, 15, 200, 95) {
		t.Fatalf("body = %+v", body)
	}
	if bb := b.Path().Bounds(); bb.X < 9.99 || bb.MaxX() > 210.01 || bb.Y < 9.99 || bb.MaxY() > 110.01 {
		t.Fatalf("outline %+v escapes bounds", bb)
	}
}

func TestBubble_FitContent(t *testing.T) {
	b := New(vector.R(30, 40, 1, 1), WithDirection(Left))
	origin := b.FitContent(vector.Size{W: 100, H: 20}, UniformInsets(8))
	if b.Bounds() != vector.R(30, 40, 121, 36) {
		t.Fatalf("bounds = %+v", b.Bounds())
	}
	if origin != (vector.Pt{X: 30 + 13, Y: 40 + 8}) {
		t.Fatalf("origin = %+v", origin)
	}
}

func TestBubble_NodeHitTest(t *testing.T) {
	b := New(vector.R(0, 0, 120, 60))
	n := b.Node()
	if !n.Fill().Enabled || n.Fill().Rule != vector.NonZero {
		t.Fatalf("fill = %+v, want enabled non-zero", n.Fill())
	}
	if n.Stroke().Enabled {
		t.Fatalf("zero-width border should be disabled")
	}
	if !n.Hit(vector.Pt{X: 60, Y: 30}) {
		t.Fatalf("body center should hit")
	}
	if !n.Hit(vector.Pt{X: 60, Y: 3}) {
		t.Fatalf("point inside the arrow should hit")
	}
	if n.Hit(vector.Pt{X: 20, Y: 2}) {
		t.Fatalf("strip beside the arrow should miss")
	}
	if n.Hit(vector.Pt{X: 0.5, Y: 5.5}) {
		t.Fatalf("point cut off by the rounded corner should miss")
	}
}

func TestBubble_ConcurrentUse(t *testing.T) {
	b := New(vector.R(0, 0, 120, 60))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			b.Update(WithDirection(directions[i%4]), WithCornerRadius(float32(i)))
		}(i)
		go func() {
			defer wg.Done()
			p := b.Path()
			if p.Count(vector.Arc) != 5 {
				t.Errorf("got %d arcs", p.Count(vector.Arc))
			}
		}()
	}
	wg.Wait()
}

func TestBubble_NodePairsPathWithItsStyle(t *testing.T) {
	b := New(vector.R(0, 0, 120, 60))
	top := []Option{WithDirection(Top), WithBorderWidth(1), WithBorder(vector.Black)}
	bottom := []Option{WithDirection(Bottom), WithBorderWidth(2), WithBorder(vector.Black)}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if (i+j)%2 == 0 {
					b.Update(top...)
				} else {
					b.Update(bottom...)
				}
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				n := b.Node()
				tipY := n.Path().Cmds[10].Center().Y
				if w := n.Stroke().Width; (w == 1) != (tipY < 30) {
					t.Errorf("border width %v paired with tip at y=%v", w, tipY)
					return
				}
			}
		}()
	}
	wg.Wait()
}
