//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"bubblekit/internal/crash"
	"bubblekit/internal/export"
	applog "bubblekit/internal/log"
	"bubblekit/internal/vector"
	"bubblekit/internal/version"
)

// Run opens the preview window and blocks until it is closed.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting preview", slog.String("version", version.Version))
	defer crash.Recover(&crash.Context{Command: "ui"})

	a := app.NewWithID("bubblekit")
	w, _ := buildWindow(a, newModel(opts))
	w.ShowAndRun()
	return nil
}

// previewUI is the widget set of one preview window.
type previewUI struct {
	img     *canvas.Image
	status  *widget.Label
	dir     *widget.Select
	anchor  *widget.Entry
	sliders map[string]*widget.Slider
	width   *widget.Entry
	height  *widget.Entry
	undo    *widget.Button
	redo    *widget.Button
}

func buildWindow(a fyne.App, m *model) (fyne.Window, *previewUI) {
	w := a.NewWindow("Bubble preview")
	prefs := a.Preferences()
	w.Resize(fyne.NewSize(
		float32(max(prefs.IntWithFallback("window.width", 900), 480)),
		float32(max(prefs.IntWithFallback("window.height", 560), 320)),
	))
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	ui := &previewUI{
		img:     canvas.NewImageFromImage(m.image()),
		status:  widget.NewLabel(m.status()),
		sliders: map[string]*widget.Slider{},
	}
	ui.img.FillMode = canvas.ImageFillContain
	ui.img.SetMinSize(fyne.NewSize(320, 200))

	refresh := func() {
		ui.img.Image = m.image()
		ui.img.Refresh()
		ui.status.SetText(m.status())
	}
	syncing := false
	sync := func() {
		syncing = true
		defer func() { syncing = false }()
		st := m.b.Style()
		ui.dir.SetSelected(st.Direction.String())
		ui.anchor.SetText(st.Anchor.String())
		for name, v := range map[string]float32{
			"corner": st.CornerRadius, "arrow-w": st.Arrow.Width, "arrow-h": st.Arrow.Height,
			"tip": st.Arrow.TipRadius, "border": st.BorderWidth,
		} {
			ui.sliders[name].SetValue(float64(v))
		}
	}
	report := func(err error) {
		if err != nil {
			ui.status.SetText(err.Error())
		}
	}

	s := m.b.Style()
	ui.dir = widget.NewSelect([]string{"top", "bottom", "left", "right"}, func(v string) {
		if syncing {
			return
		}
		report(m.setDirection(v))
		refresh()
	})

	ui.anchor = widget.NewEntry()
	ui.anchor.SetText(s.Anchor.String())
	ui.anchor.SetPlaceHolder("center | start:N | end:N")
	ui.anchor.OnSubmitted = func(v string) {
		if err := m.setAnchor(v); err != nil {
			report(err)
			return
		}
		refresh()
	}

	form := widget.NewForm(
		widget.NewFormItem("Direction", ui.dir),
		widget.NewFormItem("Anchor", ui.anchor),
	)
	for _, c := range []struct {
		name, label string
		min, max    float64
		value       float32
	}{
		{"corner", "Corner radius", 0, 40, s.CornerRadius},
		{"arrow-w", "Arrow width", 1, 60, s.Arrow.Width},
		{"arrow-h", "Arrow height", 1, 40, s.Arrow.Height},
		{"tip", "Tip radius", 0, 10, s.Arrow.TipRadius},
		{"border", "Border width", 0, 8, s.BorderWidth},
	} {
		sl := widget.NewSlider(c.min, c.max)
		sl.Step = 0.5
		sl.SetValue(float64(c.value))
		name := c.name
		sl.OnChanged = func(v float64) {
			if syncing {
				return
			}
			m.set(name, float32(v))
			refresh()
		}
		ui.sliders[name] = sl
		form.Append(c.label, sl)
	}

	b := m.b.Bounds()
	ui.width, ui.height = widget.NewEntry(), widget.NewEntry()
	ui.width.SetText(strconv.FormatFloat(float64(b.W), 'f', -1, 32))
	ui.height.SetText(strconv.FormatFloat(float64(b.H), 'f', -1, 32))
	resize := func(string) {
		bw, err1 := strconv.ParseFloat(strings.TrimSpace(ui.width.Text), 32)
		bh, err2 := strconv.ParseFloat(strings.TrimSpace(ui.height.Text), 32)
		if err1 != nil || err2 != nil {
			report(fmt.Errorf("size must be numeric"))
			return
		}
		m.resize(float32(bw), float32(bh))
		refresh()
	}
	ui.width.OnSubmitted, ui.height.OnSubmitted = resize, resize
	form.Append("Size", container.NewGridWithColumns(2, ui.width, ui.height))

	exportBtn := widget.NewButton("Export…", func() {
		dialog.ShowFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				report(err)
				return
			}
			defer func() { _ = wc.Close() }()
			report(m.exportTo(wc.URI().Name(), func(f export.Format, p vector.Path, paint export.Paint, o export.Options) error {
				switch f {
				case export.SVG:
					return export.WriteSVG(wc, p, paint, o)
				case export.PDF:
					return export.WritePDF(wc, p, paint, o)
				}
				return export.WritePNG(wc, p, paint, o)
			}))
		}, w)
	})

	step := func(f func() bool) func() {
		return func() {
			if f() {
				sync()
				refresh()
			}
		}
	}
	ui.undo = widget.NewButton("Undo", step(m.undo))
	ui.redo = widget.NewButton("Redo", step(m.redo))
	history := container.NewGridWithColumns(2, ui.undo, ui.redo)

	saveBtn := widget.NewButton("Save as default", func() {
		shadowed, err := m.saveDefaults()
		switch {
		case err != nil:
			report(err)
		case len(shadowed) > 0:
			ui.status.SetText("Saved; still overridden by " + strings.Join(shadowed, ", "))
		default:
			ui.status.SetText("Saved as default")
		}
	})

	// initial values must not reach the history
	sync()

	side := container.NewVBox(form, history, exportBtn, saveBtn)
	w.SetContent(container.NewBorder(nil, ui.status, side, nil, ui.img))
	return w, ui
}
