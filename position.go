// Package drawer implements a bottom-sheet drawer container for mobile UIs:
// a finite set of resting positions (stops) layered over a continuous,
// gesture-driven scroll offset. The package owns the position state machine,
// the drag-end snapping decision, and the derived UI signals (dimming
// opacity, fullscreen progress, distance from bottom) that a host toolkit
// renders from.
//
// The engine is single-threaded by design: every method must be called from
// the host toolkit's UI thread, in direct response to input callbacks,
// layout passes, or frame ticks.
package drawer

import "strings"

// Position identifies one of the drawer's resting places.
// Positions are ordered by rank: Collapsed < PartiallyRevealed < Open < Closed.
// The rank ordering is used for directional "advance to next position" walks.
type Position int

const (
	// Collapsed shows only the drawer's header strip above the bottom edge.
	Collapsed Position = iota

	// PartiallyRevealed shows roughly the top half of the drawer's content.
	PartiallyRevealed

	// Open extends the drawer to the full available container height.
	Open

	// Closed hides the drawer entirely. Closed is only reachable
	// programmatically - drag gestures never settle on it.
	Closed
)

// String returns the position name used in configuration files and logs.
func (p Position) String() string {
	switch p {
	case Collapsed:
		return "collapsed"
	case PartiallyRevealed:
		return "partiallyRevealed"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// valid reports whether p is one of the four defined positions.
func (p Position) valid() bool {
	return p >= Collapsed && p <= Closed
}

// PositionFor maps a position name to a Position, case-insensitively.
// Unrecognized or empty names map to Collapsed. This exists to bridge
// string properties from visual builders into the enum.
func PositionFor(name string) Position {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "collapsed":
		return Collapsed
	case "partiallyrevealed", "partially_revealed":
		return PartiallyRevealed
	case "open":
		return Open
	case "closed":
		return Closed
	default:
		return Collapsed
	}
}

// PositionAt converts a raw integer into a Position, clamping out-of-range
// values to Collapsed. The clamp is silent; Drawer.PositionAt reports it
// through the engine's diagnostics.
func PositionAt(raw int) Position {
	p := Position(raw)
	if !p.valid() {
		return Collapsed
	}
	return p
}

// AllPositions returns the full default supported set.
func AllPositions() []Position {
	return []Position{Collapsed, PartiallyRevealed, Open, Closed}
}

// CompactPositions returns the reduced supported set used in compact
// display mode, where the half-revealed stop is too cramped to be useful.
func CompactPositions() []Position {
	return []Position{Collapsed, Open, Closed}
}

// normalizePositions deduplicates and orders a supported set by rank,
// dropping invalid entries. Returns nil for an effectively empty input.
func normalizePositions(positions []Position) []Position {
	var seen [Closed + 1]bool
	for _, p := range positions {
		if p.valid() {
			seen[p] = true
		}
	}
	var out []Position
	for p := Collapsed; p <= Closed; p++ {
		if seen[p] {
			out = append(out, p)
		}
	}
	return out
}

// containsPosition reports whether p is in the ordered set.
func containsPosition(positions []Position, p Position) bool {
	for _, q := range positions {
		if q == p {
			return true
		}
	}
	return false
}

// lowestOpenPosition returns the lowest-ranked non-Closed position in the
// set. A set holding only Closed yields Closed (the sole member wins over
// the invariant-breaking alternative); an empty set yields Collapsed.
func lowestOpenPosition(positions []Position) Position {
	for _, p := range positions {
		if p != Closed {
			return p
		}
	}
	if len(positions) > 0 {
		return positions[0]
	}
	return Collapsed
}
