/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"bubblekit/internal/bubble"
	applog "bubblekit/internal/log"
	"bubblekit/internal/vector"
)

// AppConfig is the user configuration persisted as YAML in the user scope.
// Environment variables are read-only overrides applied after the file.
//
// config_version: bump when the structure changes incompatibly.

type ArrowConfig struct {
	Width     float32 `yaml:"width"`
	Height    float32 `yaml:"height"`
	TipRadius float32 `yaml:"tip_radius"`
}

// BubbleConfig is the default bubble style. Colors use #rrggbb[aa] or a name.
type BubbleConfig struct {
	CornerRadius float32     `yaml:"corner_radius"`
	Arrow        ArrowConfig `yaml:"arrow"`
	Direction    string      `yaml:"direction"`
	Anchor       string      `yaml:"anchor"` // center | start:<d> | end:<d>
	Fill         string      `yaml:"fill"`
	Border       string      `yaml:"border"`
	BorderWidth  float32     `yaml:"border_width"`
	Preset       string      `yaml:"preset,omitempty"`
	PresetsFile  string      `yaml:"presets_file,omitempty"`
}

type RenderConfig struct {
	Scale  float32 `yaml:"scale"`  // raster pixels per unit
	Format string  `yaml:"format"` // svg | png | pdf, used when the output has no extension
	Margin float32 `yaml:"margin"` // padding around the bubble in exported documents
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Bubble        BubbleConfig  `yaml:"bubble"`
	Render        RenderConfig  `yaml:"render"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults; the bubble section mirrors
// bubble.DefaultStyle.
func Defaults() AppConfig {
	d := bubble.DefaultStyle()
	return AppConfig{
		ConfigVersion: 1,
		Bubble: BubbleConfig{
			CornerRadius: d.CornerRadius,
			Arrow:        ArrowConfig{Width: d.Arrow.Width, Height: d.Arrow.Height, TipRadius: d.Arrow.TipRadius},
			Direction:    d.Direction.String(),
			Anchor:       d.Anchor.String(),
			Fill:         d.Fill.Hex(),
			Border:       d.Border.Hex(),
			BorderWidth:  d.BorderWidth,
		},
		Render:  RenderConfig{Scale: 2, Format: "svg", Margin: 4},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigFile   = "BUBBLE_CONFIG"
	EnvCornerRadius = "BUBBLE_CORNER_RADIUS"
	EnvDirection    = "BUBBLE_DIRECTION"
	EnvAnchor       = "BUBBLE_ANCHOR"
	EnvScale        = "BUBBLE_SCALE"
	EnvLogLevel     = "BUBBLE_LOG_LEVEL"
	EnvLogFormat    = "BUBBLE_LOG_FORMAT"
	EnvLogSource    = "BUBBLE_LOG_SOURCE"
	EnvLogFile      = "BUBBLE_LOG_FILE"
)

// ConfigPath returns the per-user config file path, or the BUBBLE_CONFIG
// value when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigFile)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "Bubblekit")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "Bubblekit")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "bubblekit")
		} else if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "bubblekit")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file if present, then applies env overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path. A missing file yields defaults; a
// malformed one is an error.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return Defaults(), fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg, data)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes cfg to ConfigPath.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// mergeInto copies the values set in the file over dst. Numbers are taken
// whenever their key is present, so an explicit 0 corner radius survives.
func mergeInto(dst, src *AppConfig, raw []byte) {
	present := presentKeys(raw)
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}

	b, sb := &dst.Bubble, &src.Bubble
	if present["bubble.corner_radius"] {
		b.CornerRadius = sb.CornerRadius
	}
	if present["bubble.arrow.width"] {
		b.Arrow.Width = sb.Arrow.Width
	}
	if present["bubble.arrow.height"] {
		b.Arrow.Height = sb.Arrow.Height
	}
	if present["bubble.arrow.tip_radius"] {
		b.Arrow.TipRadius = sb.Arrow.TipRadius
	}
	if present["bubble.border_width"] {
		b.BorderWidth = sb.BorderWidth
	}
	setString(&b.Direction, sb.Direction, true)
	setString(&b.Anchor, sb.Anchor, true)
	setString(&b.Fill, sb.Fill, true)
	setString(&b.Border, sb.Border, true)
	setString(&b.Preset, sb.Preset, false)
	setString(&b.PresetsFile, sb.PresetsFile, false)

	if src.Render.Scale > 0 {
		dst.Render.Scale = src.Render.Scale
	}
	if present["render.margin"] {
		dst.Render.Margin = src.Render.Margin
	}
	setString(&dst.Render.Format, src.Render.Format, true)

	setString(&dst.Logging.Level, src.Logging.Level, true)
	setString(&dst.Logging.Format, src.Logging.Format, true)
	dst.Logging.Source = src.Logging.Source
	setString(&dst.Logging.File, src.Logging.File, false)
}

func setString(dst *string, v string, lower bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	if lower {
		v = strings.ToLower(v)
	}
	*dst = v
}

// presentKeys lists the dotted keys of all scalars in a YAML document.
func presentKeys(raw []byte) map[string]bool {
	out := map[string]bool{}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil || len(doc.Content) == 0 {
		return out
	}
	var walk func(n *yaml.Node, prefix string)
	walk = func(n *yaml.Node, prefix string) {
		if n.Kind != yaml.MappingNode {
			out[prefix] = true
			return
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			walk(n.Content[i+1], key)
		}
	}
	walk(doc.Content[0], "")
	return out
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvCornerRadius)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			cfg.Bubble.CornerRadius = float32(f)
		}
	}
	setString(&cfg.Bubble.Direction, os.Getenv(EnvDirection), true)
	setString(&cfg.Bubble.Anchor, os.Getenv(EnvAnchor), true)
	if v := strings.TrimSpace(os.Getenv(EnvScale)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			cfg.Render.Scale = float32(f)
		}
	}
	setString(&cfg.Logging.Level, os.Getenv(EnvLogLevel), true)
	setString(&cfg.Logging.Format, os.Getenv(EnvLogFormat), true)
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	setString(&cfg.Logging.File, os.Getenv(EnvLogFile), false)
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env := map[string]string{
		"bubble.corner_radius": EnvCornerRadius,
		"bubble.direction":     EnvDirection,
		"bubble.anchor":        EnvAnchor,
		"render.scale":         EnvScale,
		"logging.level":        EnvLogLevel,
		"logging.format":       EnvLogFormat,
		"logging.source":       EnvLogSource,
		"logging.file":         EnvLogFile,
	}[key]
	if env == "" || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

// Style converts the bubble section into a bubble.Style.
func (c BubbleConfig) Style() (bubble.Style, error) {
	dir, err := bubble.ParseDirection(c.Direction)
	if err != nil {
		return bubble.Style{}, fmt.Errorf("bubble.direction: %w", err)
	}
	anchor, err := bubble.ParseAnchor(c.Anchor)
	if err != nil {
		return bubble.Style{}, fmt.Errorf("bubble.anchor: %w", err)
	}
	fill, err := vector.ParseColor(c.Fill)
	if err != nil {
		return bubble.Style{}, fmt.Errorf("bubble.fill: %w", err)
	}
	border, err := vector.ParseColor(c.Border)
	if err != nil {
		return bubble.Style{}, fmt.Errorf("bubble.border: %w", err)
	}
	return bubble.Style{
		CornerRadius: c.CornerRadius,
		Arrow:        bubble.Arrow{Width: c.Arrow.Width, Height: c.Arrow.Height, TipRadius: c.Arrow.TipRadius},
		Direction:    dir,
		Anchor:       anchor,
		Fill:         fill,
		Border:       border,
		BorderWidth:  c.BorderWidth,
	}, nil
}

// SetStyle stores s in the bubble section, keeping preset settings.
func (c *BubbleConfig) SetStyle(s bubble.Style) {
	c.CornerRadius = s.CornerRadius
	c.Arrow = ArrowConfig{Width: s.Arrow.Width, Height: s.Arrow.Height, TipRadius: s.Arrow.TipRadius}
	c.Direction = s.Direction.String()
	c.Anchor = s.Anchor.String()
	c.Fill = s.Fill.Hex()
	c.Border = s.Border.Hex()
	c.BorderWidth = s.BorderWidth
}

// LogOptions maps the logging section onto logger options.
func (l LoggingConfig) LogOptions() applog.Options {
	return applog.Options{Level: l.Level, Format: l.Format, AddSource: l.Source, File: l.File}
}
