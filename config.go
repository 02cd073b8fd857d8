package drawer

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the drawer.toml configuration file. It covers everything a host
// application typically tunes without code: stop heights, snap behavior,
// dimming, transition timing, and the automatic display-mode thresholds.
type Config struct {
	Heights    HeightsConfig    `toml:"heights"`
	Snap       SnapConfig       `toml:"snap"`
	Dimming    DimmingConfig    `toml:"dimming"`
	Transition TransitionConfig `toml:"transition"`
	Layout     LayoutConfig     `toml:"layout"`
}

type HeightsConfig struct {
	Collapsed         float32 `toml:"collapsed"`
	PartiallyRevealed float32 `toml:"partially_revealed"`
}

type SnapConfig struct {
	// Mode is "nearest" or "threshold".
	Mode string `toml:"mode"`
	// Threshold is the dead-zone in points for threshold mode.
	Threshold float32 `toml:"threshold"`
}

type DimmingConfig struct {
	MaxOpacity float32 `toml:"max_opacity"`
}

type TransitionConfig struct {
	// DurationMillis is the settling animation length.
	DurationMillis int `toml:"duration_millis"`
	// Easing is one of the EasingByName keys ("ease-out", "cubic", ...).
	Easing string `toml:"easing"`
}

type LayoutConfig struct {
	// Mode is "drawer", "panel", "compact", or "automatic".
	Mode string `toml:"mode"`
	// Positions restricts the supported set ("collapsed",
	// "partiallyRevealed", "open", "closed"). Empty means all.
	Positions []string `toml:"positions"`
	// Automatic-mode width thresholds, in points.
	PanelMinWidth   float32 `toml:"panel_min_width"`
	CompactMaxWidth float32 `toml:"compact_max_width"`
}

// DefaultConfig returns the library defaults.
func DefaultConfig() Config {
	return Config{
		Heights: HeightsConfig{
			Collapsed:         DefaultCollapsedHeight,
			PartiallyRevealed: DefaultPartialHeight,
		},
		Snap: SnapConfig{
			Mode:      "nearest",
			Threshold: DefaultSnapThreshold,
		},
		Dimming: DimmingConfig{
			MaxOpacity: DefaultMaxDimmingOpacity,
		},
		Transition: TransitionConfig{
			DurationMillis: int(DefaultAnimationDuration / time.Millisecond),
			Easing:         "ease-out",
		},
		Layout: LayoutConfig{
			Mode:            "automatic",
			PanelMinWidth:   DefaultBreakpoints().PanelMinWidth,
			CompactMaxWidth: DefaultBreakpoints().CompactMaxWidth,
		},
	}
}

// LoadConfig loads a drawer configuration from path. A missing file returns
// the defaults; a malformed file returns the defaults and an error.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig writes the configuration to path.
func SaveConfig(path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// snapMode maps the configured mode name to a SnapMode, defaulting to
// nearest on unrecognized input.
func (c SnapConfig) snapMode() SnapMode {
	if c.Mode == "threshold" {
		return SnapNearestUnlessExceeded
	}
	return SnapNearest
}

// Apply installs the configuration on an engine. Unset or out-of-range
// values keep the engine's current settings; there is no error path -
// configuration problems degrade to defaults per the engine's error model.
func (c Config) Apply(d *Drawer) {
	if collapsed := c.Heights.Collapsed; collapsed > 0 {
		d.content.CollapsedHeight = func(float32) float32 { return collapsed }
	}
	if partial := c.Heights.PartiallyRevealed; partial > 0 {
		d.content.PartialHeight = func(float32) float32 { return partial }
	}

	switch c.Snap.Mode {
	case "", "nearest", "threshold":
	default:
		d.log.Warnf("drawer: unrecognized snap mode %q, using nearest", c.Snap.Mode)
	}
	d.SetSnapMode(c.Snap.snapMode(), c.Snap.Threshold)
	d.SetMaxDimmingOpacity(c.Dimming.MaxOpacity)
	d.SetTransition(time.Duration(c.Transition.DurationMillis)*time.Millisecond, EasingByName(c.Transition.Easing))

	if len(c.Layout.Positions) > 0 {
		positions := make([]Position, 0, len(c.Layout.Positions))
		for _, name := range c.Layout.Positions {
			positions = append(positions, PositionFor(name))
		}
		// Install the restriction as the content's answer so it survives
		// later supported-set re-polls, the same way the heights do.
		d.content.SupportedPositions = func() []Position { return positions }
		d.pollSupportedPositions()
	}

	b := d.breakpoints
	if c.Layout.PanelMinWidth > 0 {
		b.PanelMinWidth = c.Layout.PanelMinWidth
	}
	if c.Layout.CompactMaxWidth > 0 {
		b.CompactMaxWidth = c.Layout.CompactMaxWidth
	}
	d.breakpoints = b
	d.SetDisplayMode(DisplayModeFor(c.Layout.Mode))
}
