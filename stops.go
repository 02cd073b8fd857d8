package drawer

// Default stop heights, in points. Used whenever the drawer's content does
// not supply its own heights.
const (
	// DefaultCollapsedHeight is the height of the drawer's header strip.
	DefaultCollapsedHeight float32 = 68

	// DefaultPartialHeight is the height of the half-revealed drawer.
	DefaultPartialHeight float32 = 264
)

// Insets describes the safe-area insets of the drawer's container, in
// points. The bottom inset is forwarded to content height callbacks and to
// observers alongside every signal.
type Insets struct {
	Top, Right, Bottom, Left float32
}

// ContentConfig is how the drawer's content customizes geometry and
// behavior. All fields are optional; nil fields resolve to the library
// defaults. This replaces runtime capability probing of the content with
// plain "content value if set, else default" resolution.
type ContentConfig struct {
	// CollapsedHeight returns the collapsed stop height given the bottom
	// safe-area inset. Nil or non-positive results fall back to
	// DefaultCollapsedHeight.
	CollapsedHeight func(bottomSafeArea float32) float32

	// PartialHeight returns the partially-revealed stop height given the
	// bottom safe-area inset. Nil or non-positive results fall back to
	// DefaultPartialHeight.
	PartialHeight func(bottomSafeArea float32) float32

	// SupportedPositions returns the set of positions the content supports.
	// Nil, or a call yielding an empty set, resolves to AllPositions
	// (CompactPositions in compact display mode).
	SupportedPositions func() []Position
}

// collapsedHeight resolves the collapsed stop height.
func (c ContentConfig) collapsedHeight(bottomSafeArea float32) float32 {
	if c.CollapsedHeight != nil {
		if h := c.CollapsedHeight(bottomSafeArea); h > 0 {
			return h
		}
	}
	return DefaultCollapsedHeight
}

// partialHeight resolves the partially-revealed stop height.
func (c ContentConfig) partialHeight(bottomSafeArea float32) float32 {
	if c.PartialHeight != nil {
		if h := c.PartialHeight(bottomSafeArea); h > 0 {
			return h
		}
	}
	return DefaultPartialHeight
}

// StopTable maps each supported position (excluding Closed) to its stop: the
// drawer height, in points, at which that position rests. Only the set of
// values and their minimum matter to the snapping engine; iteration order is
// insignificant.
type StopTable map[Position]float32

// Lowest returns the smallest stop in the table, or 0 for an empty table.
func (t StopTable) Lowest() float32 {
	first := true
	var lowest float32
	for _, v := range t {
		if first || v < lowest {
			lowest = v
			first = false
		}
	}
	return lowest
}

// computeStops builds the stop table for the current layout. Closed never
// has a stop; its target geometry is the drawer fully below the bottom edge.
// A table is never empty: if the supported set somehow excludes every open
// position, the Collapsed default is used so the engine always has a floor.
func computeStops(content ContentConfig, supported []Position, containerHeight float32, insets Insets, mode DisplayMode) StopTable {
	stops := make(StopTable, 3)

	for _, p := range supported {
		switch p {
		case Collapsed:
			stops[Collapsed] = content.collapsedHeight(insets.Bottom)
		case PartiallyRevealed:
			stops[PartiallyRevealed] = content.partialHeight(insets.Bottom)
		case Open:
			open := containerHeight - insets.Top
			if mode == ModePanel || mode == ModeCompact {
				// Floating panels keep clear of the bottom inset too.
				open -= insets.Bottom
			}
			if open < 0 {
				open = 0
			}
			stops[Open] = open
		}
	}

	if len(stops) == 0 {
		stops[Collapsed] = content.collapsedHeight(insets.Bottom)
	}
	return stops
}
