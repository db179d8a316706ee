/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"bubblekit/internal/bubble"
	"bubblekit/internal/config"
	"bubblekit/internal/crash"
	"bubblekit/internal/export"
	applog "bubblekit/internal/log"
	"bubblekit/internal/stylepack"
	"bubblekit/internal/ui"
	"bubblekit/internal/vector"
	"bubblekit/internal/version"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "bubble: speech bubble outlines with a rounded arrow")
	fmt.Fprintf(w, "Version: %s\n\n", version.String())
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  bubble version|-v|--version              Show version")
	fmt.Fprintln(w, "  bubble render [flags] <out.svg|.png|.pdf>  Write the outline to a file")
	fmt.Fprintln(w, "  bubble path [flags]                        Print SVG path data")
	fmt.Fprintln(w, "  bubble ui [flags]                          Launch the preview (build with -tags fyne)")
	fmt.Fprintln(w, "\nRun 'bubble render -help' for flags.")
}

func main() {
	applog.Init(applog.FromEnv())
	cc := &crash.Context{Args: os.Args[1:]}
	defer crash.Recover(cc)

	code := run(os.Args[1:], os.Stdout, os.Stderr, cc)
	_ = applog.Close()
	if code != 0 {
		os.Exit(code)
	}
}

// run executes one command and returns the exit status.
func run(args []string, stdout, stderr io.Writer, cc *crash.Context) int {
	l := applog.WithComponent("cli")
	if len(args) == 0 {
		usage(stdout)
		return 0
	}
	cmd, rest := args[0], args[1:]
	cc.Command = cmd
	l.Debug("start", slog.String("cmd", cmd), slog.Int("args", len(rest)))

	switch cmd {
	case "version", "--version", "-v":
		fmt.Fprintln(stdout, version.String())
		return 0
	case "help", "-help", "--help":
		usage(stdout)
		return 0
	case "render", "path", "ui":
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		usage(stderr)
		return 2
	}

	job, err := parseJob(cmd, rest, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}
	cc.Fields = map[string]string{
		"style":  describe(job.style),
		"bounds": fmt.Sprintf("%gx%g", job.size.W, job.size.H),
	}

	switch cmd {
	case "path":
		p := bubble.Build(vector.R(0, 0, job.size.W, job.size.H), job.style)
		fmt.Fprintln(stdout, export.SVGPathData(p))
		return 0
	case "ui":
		if err := ui.Run(ui.Options{Style: job.style, Size: job.size, Scale: job.opts.Scale}); err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		return 0
	}

	if job.out == "" {
		fmt.Fprintln(stderr, "render requires an output file")
		return 2
	}
	f, err := export.FormatOf(job.out, job.format)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}
	p := bubble.Build(vector.R(0, 0, job.size.W, job.size.H), job.style)
	if err := export.ToFile(job.out, f, p, export.PaintOf(job.style), job.opts); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	fmt.Fprintf(stdout, "Wrote %s\n", job.out)
	return 0
}

type job struct {
	style  bubble.Style
	size   vector.Size
	opts   export.Options
	format string
	out    string
}

// parseJob resolves the style in order: config file and environment, then
// the named preset, then flags given on the command line.
func parseJob(cmd string, args []string, stderr io.Writer) (job, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath     = fs.String("config", "", "config file (default: user config, or $BUBBLE_CONFIG)")
		presetsPath = fs.String("presets", "", "preset file (.json or .zip pack)")
		preset      = fs.String("preset", "", "preset name")
		w           = fs.Float64("w", 120, "bubble width")
		h           = fs.Float64("h", 60, "bubble height")
		radius      = fs.Float64("radius", 0, "corner radius")
		arrowW      = fs.Float64("arrow-w", 0, "arrow base width")
		arrowH      = fs.Float64("arrow-h", 0, "arrow height")
		tip         = fs.Float64("tip", 0, "arrow tip radius (min 0.1)")
		dir         = fs.String("dir", "", "arrow edge: top, bottom, left, right")
		anchor      = fs.String("anchor", "", "arrow position: center, start:N or end:N")
		fill        = fs.String("fill", "", "fill color (#rrggbb[aa])")
		border      = fs.String("border", "", "border color")
		borderW     = fs.Float64("border-width", 0, "border width")
		scale       = fs.Float64("scale", 0, "PNG pixels per unit")
		margin      = fs.Float64("margin", 0, "padding around the bubble (default from config)")
		format      = fs.String("format", "", "svg, png or pdf when the output has no extension")
	)
	if err := fs.Parse(args); err != nil {
		return job{}, err
	}

	var (
		cfg config.AppConfig
		err error
	)
	if *cfgPath != "" {
		cfg, err = config.LoadFile(*cfgPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return job{}, err
	}
	applog.Init(cfg.Logging.LogOptions())

	style, err := cfg.Bubble.Style()
	if err != nil {
		return job{}, fmt.Errorf("config: %w", err)
	}
	name := firstNonEmpty(*preset, cfg.Bubble.Preset)
	if name != "" {
		file := firstNonEmpty(*presetsPath, cfg.Bubble.PresetsFile)
		if file == "" {
			return job{}, fmt.Errorf("preset %q requested but no preset file given", name)
		}
		styles, err := stylepack.Load(file)
		if err != nil {
			return job{}, err
		}
		s, ok := styles[name]
		if !ok {
			return job{}, fmt.Errorf("preset %q not found in %s", name, file)
		}
		style = s
	}

	j := job{
		size:   vector.Size{W: float32(*w), H: float32(*h)},
		opts:   export.Options{Scale: cfg.Render.Scale, Margin: cfg.Render.Margin},
		format: cfg.Render.Format,
		out:    fs.Arg(0),
	}
	var opts []bubble.Option
	var ferr error
	fs.Visit(func(f *flag.Flag) {
		if ferr != nil {
			return
		}
		switch f.Name {
		case "radius":
			opts = append(opts, bubble.WithCornerRadius(float32(*radius)))
		case "arrow-w":
			opts = append(opts, bubble.WithArrowWidth(float32(*arrowW)))
		case "arrow-h":
			opts = append(opts, bubble.WithArrowHeight(float32(*arrowH)))
		case "tip":
			opts = append(opts, bubble.WithArrowTipRadius(float32(*tip)))
		case "border-width":
			opts = append(opts, bubble.WithBorderWidth(float32(*borderW)))
		case "dir":
			d, err := bubble.ParseDirection(*dir)
			ferr = err
			opts = append(opts, bubble.WithDirection(d))
		case "anchor":
			a, err := bubble.ParseAnchor(*anchor)
			ferr = err
			opts = append(opts, bubble.WithAnchor(a))
		case "fill":
			c, err := vector.ParseColor(*fill)
			ferr = err
			opts = append(opts, bubble.WithFill(c))
		case "border":
			c, err := vector.ParseColor(*border)
			ferr = err
			opts = append(opts, bubble.WithBorder(c))
		case "scale":
			j.opts.Scale = float32(*scale)
		case "margin":
			j.opts.Margin = float32(*margin)
		case "format":
			j.format = *format
		}
	})
	if ferr != nil {
		return job{}, ferr
	}
	j.style = style.With(opts...)
	if j.size.W <= 0 || j.size.H <= 0 {
		return job{}, fmt.Errorf("bubble size must be positive, got %gx%g", j.size.W, j.size.H)
	}
	if fs.NArg() > 1 {
		return job{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args()[1:], " "))
	}
	return j, nil
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func describe(s bubble.Style) string {
	return fmt.Sprintf("corner=%g arrow=%gx%g tip=%g dir=%s anchor=%s",
		s.CornerRadius, s.Arrow.Width, s.Arrow.Height, s.Arrow.TipRadius, s.Direction, s.Anchor)
}
