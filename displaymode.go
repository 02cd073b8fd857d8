package drawer

// DisplayMode selects the drawer's overall presentation.
type DisplayMode int

const (
	// ModeAutomatic resolves to one of the concrete modes from the
	// container size at layout time.
	ModeAutomatic DisplayMode = iota

	// ModeDrawer is the standard full-width bottom sheet.
	ModeDrawer

	// ModePanel floats the drawer as a side panel on wide containers.
	ModePanel

	// ModeCompact is a small floating panel for narrow devices.
	ModeCompact
)

// String returns the mode name used in configuration files and logs.
func (m DisplayMode) String() string {
	switch m {
	case ModeAutomatic:
		return "automatic"
	case ModeDrawer:
		return "drawer"
	case ModePanel:
		return "panel"
	case ModeCompact:
		return "compact"
	default:
		return "unknown"
	}
}

// DisplayModeFor maps a mode name to a DisplayMode, defaulting to
// ModeAutomatic on unrecognized input.
func DisplayModeFor(name string) DisplayMode {
	switch name {
	case "drawer":
		return ModeDrawer
	case "panel":
		return ModePanel
	case "compact":
		return ModeCompact
	default:
		return ModeAutomatic
	}
}

// Breakpoints holds the container-width thresholds used to resolve
// ModeAutomatic. Widths are in points. Resolution is mobile-first: a
// container at or above PanelMinWidth hosts a side panel, one below
// CompactMaxWidth gets the compact floating panel, and everything in
// between uses the full-width drawer.
type Breakpoints struct {
	PanelMinWidth   float32 // ≥768pt by default
	CompactMaxWidth float32 // <375pt by default
}

// DefaultBreakpoints returns the standard thresholds. 768pt matches the
// common tablet/landscape boundary; 375pt is the narrowest mainstream
// phone width.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{
		PanelMinWidth:   768,
		CompactMaxWidth: 375,
	}
}

// Resolve maps a configured mode and container width to a concrete mode.
// Non-automatic modes pass through unchanged.
func (b Breakpoints) Resolve(mode DisplayMode, containerWidth float32) DisplayMode {
	if mode != ModeAutomatic {
		return mode
	}
	if containerWidth >= b.PanelMinWidth {
		return ModePanel
	}
	if containerWidth < b.CompactMaxWidth {
		return ModeCompact
	}
	return ModeDrawer
}
