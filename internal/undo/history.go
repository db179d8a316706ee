/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package undo keeps bounded undo/redo history of immutable values.
package undo

import (
	"sync"
	"time"
)

// Config controls depth and coalescing.
type Config struct {
	// MaxDepth limits kept undo steps; 0 means 100.
	MaxDepth int
	// MinInterval merges pushes closer together than this into one step, so a
	// slider drag undoes as a whole. 0 means 250ms; negative disables merging.
	MinInterval time.Duration
}

type entry[T any] struct {
	v  T
	ts time.Time
}

// History records the state before each change. It is safe for concurrent use.
type History[T any] struct {
	cfg  Config
	mu   sync.Mutex
	undo []entry[T]
	redo []T
}

func NewHistory[T any](cfg Config) *History[T] {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 100
	}
	if cfg.MinInterval == 0 {
		cfg.MinInterval = 250 * time.Millisecond
	}
	return &History[T]{cfg: cfg}
}

// Push records before, the state about to be replaced, and clears redo. A push
// within MinInterval of the previous one keeps the earlier state instead.
func (h *History[T]) Push(before T, ts time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.redo = nil
	if n := len(h.undo); n > 0 && h.cfg.MinInterval > 0 && ts.Sub(h.undo[n-1].ts) < h.cfg.MinInterval {
		h.undo[n-1].ts = ts
		return
	}
	h.undo = append(h.undo, entry[T]{v: before, ts: ts})
	if extra := len(h.undo) - h.cfg.MaxDepth; extra > 0 {
		h.undo = append([]entry[T]{}, h.undo[extra:]...)
	}
}

// Undo returns the previous state and remembers current for Redo.
func (h *History[T]) Undo(current T) (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.undo)
	if n == 0 {
		var zero T
		return zero, false
	}
	e := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, current)
	return e.v, true
}

// Redo reverses the last Undo.
func (h *History[T]) Redo(current T) (T, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := len(h.redo)
	if n == 0 {
		var zero T
		return zero, false
	}
	v := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, entry[T]{v: current})
	return v, true
}

// Depth returns the number of available undo and redo steps.
func (h *History[T]) Depth() (undo, redo int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo), len(h.redo)
}

func (h *History[T]) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo, h.redo = nil, nil
}
