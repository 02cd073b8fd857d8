package drawer

import (
	"io"
	"time"

	"github.com/agiangrant/drawer/internal/diag"
)

// Engine defaults.
const (
	// DefaultMaxDimmingOpacity is the dimming overlay's ceiling.
	DefaultMaxDimmingOpacity float32 = 0.5

	// DefaultSnapThreshold is the dead-zone, in points, for
	// SnapNearestUnlessExceeded.
	DefaultSnapThreshold float32 = 20

	// DefaultAnimationDuration is how long a position transition takes.
	DefaultAnimationDuration = 300 * time.Millisecond
)

// positionEpsilon is the tolerance for matching a stop value back to the
// position that produced it. Stops are points, so sub-millipoint differences
// are floating-point noise.
const positionEpsilon float32 = 1e-3

// dimmingEpsilon is the opacity below which the dimming overlay stops
// intercepting touches.
const dimmingEpsilon float32 = 0.01

// SnapMode selects the drag-end settling behavior.
type SnapMode int

const (
	// SnapNearest settles on whichever stop is closest to where the
	// toolkit's inertia would have ended - simple and predictable.
	SnapNearest SnapMode = iota

	// SnapNearestUnlessExceeded requires a drag to travel past a dead-zone
	// threshold before advancing a full position, mimicking physical
	// detents. Once the nearest stop already disagrees with the current
	// position the threshold no longer applies.
	SnapNearestUnlessExceeded
)

// Drawer is the position engine: it owns the supported-position set, the
// stop table for the current layout, the live 1-D scroll offset, and the
// drag-end snapping decision. All methods must run on the host toolkit's
// UI thread.
type Drawer struct {
	content ContentConfig

	supported []Position
	current   Position

	// offset is the distance the drawer's visible edge has been dragged
	// above its lowest stop. Negative only while animating toward Closed.
	offset         float32
	lastDragTarget float32
	dragging       bool

	snapMode      SnapMode
	snapThreshold float32

	displayMode  DisplayMode // as configured, possibly automatic
	resolvedMode DisplayMode
	breakpoints  Breakpoints

	containerWidth  float32
	containerHeight float32
	insets          Insets

	stops StopTable

	maxDimmingOpacity        float32
	allowsUserPositionChange bool
	dragEnabled              bool

	duration time.Duration
	easing   EasingFunc

	registry *AnimationRegistry
	active   *Animation

	// changingPosition suppresses re-entrant position changes from layout
	// recalculation triggered while a transition is being applied.
	changingPosition bool

	observers []registeredObserver

	log *diag.Logger
}

// New creates a drawer engine for the given content. The engine starts at
// the lowest supported non-Closed position with library defaults for
// everything the content does not customize.
func New(content ContentConfig) *Drawer {
	d := &Drawer{
		content:                  content,
		snapMode:                 SnapNearest,
		snapThreshold:            DefaultSnapThreshold,
		displayMode:              ModeAutomatic,
		resolvedMode:             ModeDrawer,
		breakpoints:              DefaultBreakpoints(),
		maxDimmingOpacity:        DefaultMaxDimmingOpacity,
		allowsUserPositionChange: true,
		duration:                 DefaultAnimationDuration,
		easing:                   EaseOutCubic,
		registry:                 NewAnimationRegistry(),
		log:                      diag.New(io.Discard, diag.LevelWarn),
	}
	d.pollSupportedPositions()
	d.current = lowestOpenPosition(d.supported)
	d.offset = d.offsetFor(d.current)
	return d
}

// ============================================================================
// Accessors and configuration
// ============================================================================

// CurrentPosition returns the position the drawer last settled on.
func (d *Drawer) CurrentPosition() Position { return d.current }

// ScrollOffset returns the live 1-D scroll offset.
func (d *Drawer) ScrollOffset() float32 { return d.offset }

// IsDragging reports whether a drag gesture is in progress.
func (d *Drawer) IsDragging() bool { return d.dragging }

// IsAnimating reports whether a position transition is in flight.
func (d *Drawer) IsAnimating() bool { return d.active != nil }

// SupportedPositions returns a copy of the current supported set, ordered
// by rank.
func (d *Drawer) SupportedPositions() []Position {
	out := make([]Position, len(d.supported))
	copy(out, d.supported)
	return out
}

// Stops returns a copy of the current stop table.
func (d *Drawer) Stops() StopTable {
	out := make(StopTable, len(d.stops))
	for p, v := range d.stops {
		out[p] = v
	}
	return out
}

// ResolvedDisplayMode returns the concrete display mode after automatic
// resolution.
func (d *Drawer) ResolvedDisplayMode() DisplayMode { return d.resolvedMode }

// Registry exposes the animation registry so the host loop can tick it.
func (d *Drawer) Registry() *AnimationRegistry { return d.registry }

// Tick advances in-flight animations. Call once per frame from the host
// loop. Returns true while animations remain active.
func (d *Drawer) Tick(now time.Time) bool {
	return d.registry.Tick(now)
}

// PositionAt converts a raw integer into a Position. Out-of-range values
// clamp to Collapsed with a diagnostic; hosts feeding serialized or
// builder-sourced values should construct positions through here rather
// than the package-level helper so the clamp is visible.
func (d *Drawer) PositionAt(raw int) Position {
	p := Position(raw)
	if !p.valid() {
		d.log.Warnf("drawer: position %d out of range, using %v", raw, Collapsed)
		return Collapsed
	}
	return p
}

// SetSnapMode configures the drag-end settling behavior. A non-positive
// threshold keeps the current one.
func (d *Drawer) SetSnapMode(mode SnapMode, threshold float32) {
	d.snapMode = mode
	if threshold > 0 {
		d.snapThreshold = threshold
	}
}

// SetMaxDimmingOpacity sets the dimming overlay ceiling, clamped to 0-1.
func (d *Drawer) SetMaxDimmingOpacity(opacity float32) {
	d.maxDimmingOpacity = clamp01(opacity)
}

// SetAllowsUserPositionChange enables or disables drag-driven transitions.
// Programmatic SetPosition calls are unaffected.
func (d *Drawer) SetAllowsUserPositionChange(allowed bool) {
	d.allowsUserPositionChange = allowed
}

// SetTransition configures the settling animation. Zero duration or nil
// easing keep the current values.
func (d *Drawer) SetTransition(duration time.Duration, easing EasingFunc) {
	if duration > 0 {
		d.duration = duration
	}
	if easing != nil {
		d.easing = easing
	}
}

// SetDiagnosticOutput routes engine diagnostics (rejected requests,
// degenerate geometry) to w. The default sink discards them.
func (d *Drawer) SetDiagnosticOutput(w io.Writer) {
	d.log = diag.New(w, d.log.Level())
}

// SetDiagnosticLevel adjusts diagnostic verbosity.
func (d *Drawer) SetDiagnosticLevel(level diag.Level) {
	d.log.SetLevel(level)
}

// ============================================================================
// Layout inputs
// ============================================================================

// SetContainerSize feeds the container bounds from the host layout pass.
func (d *Drawer) SetContainerSize(width, height float32) {
	d.containerWidth = width
	d.containerHeight = height
	d.relayout()
}

// SetSafeAreaInsets feeds the container's safe-area insets.
func (d *Drawer) SetSafeAreaInsets(insets Insets) {
	d.insets = insets
	d.relayout()
}

// SetDisplayMode configures the presentation mode. ModeAutomatic resolves
// from the container width at layout time.
func (d *Drawer) SetDisplayMode(mode DisplayMode) {
	d.displayMode = mode
	d.relayout()
}

// SetBreakpoints overrides the automatic-mode width thresholds.
func (d *Drawer) SetBreakpoints(b Breakpoints) {
	d.breakpoints = b
	d.relayout()
}

// SetSupportedPositionsNeedsUpdate re-polls the content's supported-position
// configuration. Call after the content's answer changes.
func (d *Drawer) SetSupportedPositionsNeedsUpdate() {
	d.pollSupportedPositions()
}

// relayout resolves the display mode, recomputes stops, and pins the offset
// to the current position's stop. It never starts a transition: pinning is
// skipped while a drag or animation owns the offset.
func (d *Drawer) relayout() {
	resolved := d.breakpoints.Resolve(d.displayMode, d.containerWidth)
	modeChanged := resolved != d.resolvedMode
	d.resolvedMode = resolved

	if modeChanged {
		d.notifyDisplayMode()
		// The default supported set depends on the mode, so re-resolve it.
		d.pollSupportedPositions()
		return
	}

	d.recomputeStops()
}

// pollSupportedPositions re-reads the content configuration and applies it.
func (d *Drawer) pollSupportedPositions() {
	var positions []Position
	if d.content.SupportedPositions != nil {
		positions = d.content.SupportedPositions()
	}
	d.setSupportedPositions(positions)
}

// defaultPositions is the fallback set when the content supplies nothing.
func (d *Drawer) defaultPositions() []Position {
	if d.resolvedMode == ModeCompact {
		return CompactPositions()
	}
	return AllPositions()
}

// setSupportedPositions installs a new supported set, restoring the
// current-position invariant and refreshing layout-derived state.
func (d *Drawer) setSupportedPositions(positions []Position) {
	norm := normalizePositions(positions)
	if len(norm) == 0 {
		if positions != nil {
			d.log.Warnf("drawer: empty supported-position set rejected, using %v", d.defaultPositions())
		}
		norm = d.defaultPositions()
	}
	d.supported = norm

	retargeted := false
	if !containsPosition(d.supported, d.current) {
		target := lowestOpenPosition(d.supported)
		if d.resolvedMode == ModeCompact && d.current == PartiallyRevealed && containsPosition(d.supported, Open) {
			// A half-revealed drawer forced into the compact set reads
			// better fully open than snapped shut.
			target = Open
		}
		d.current = target
		retargeted = true
	}

	// With one reachable position there is nothing to drag between.
	open := 0
	for _, p := range d.supported {
		if p != Closed {
			open++
		}
	}
	d.dragEnabled = open > 1

	d.recomputeStops()
	if retargeted {
		d.notifyPosition()
	}
}

// recomputeStops rebuilds the stop table and re-pins the offset.
func (d *Drawer) recomputeStops() {
	d.stops = computeStops(d.content, d.supported, d.containerHeight, d.insets, d.resolvedMode)

	if d.dragging || d.active != nil || d.changingPosition {
		return
	}
	if target := d.offsetFor(d.current); target != d.offset {
		d.offset = target
		d.emitSignals()
	}
}

// offsetFor converts a position into its scroll-offset target. Closed has
// no stop; its target puts the drawer's visible edge at the bottom.
func (d *Drawer) offsetFor(p Position) float32 {
	lowest := d.stops.Lowest()
	if p == Closed {
		return -lowest
	}
	if v, ok := d.stops[p]; ok {
		return v - lowest
	}
	return d.offset
}

// ============================================================================
// Position transitions
// ============================================================================

// SetPosition moves the drawer to a supported position. Requests for
// unsupported positions are rejected with a diagnostic: no state change, no
// notifications, completion invoked with finished=false. With animated set,
// the transition runs through the animation registry and completion reports
// whether it ran to the end or was superseded; otherwise the offset and
// state update synchronously and observers are notified before return.
func (d *Drawer) SetPosition(p Position, animated bool, completion func(finished bool)) {
	if !containsPosition(d.supported, p) {
		d.log.Warnf("drawer: setPosition(%v) rejected, supported positions are %v", p, d.supported)
		if completion != nil {
			completion(false)
		}
		return
	}

	target := d.offsetFor(p)
	d.cancelActive()

	if !animated {
		d.changingPosition = true
		d.offset = target
		d.current = p
		d.changingPosition = false
		d.emitSignals()
		d.notifyPosition()
		if completion != nil {
			completion(true)
		}
		return
	}

	from := d.offset
	var anim *Animation
	anim = d.registry.Animate().
		Duration(d.duration).
		Easing(d.easing).
		OnComplete(func(finished bool) {
			if d.active == anim {
				d.active = nil
			}
			if finished {
				d.current = p
				d.notifyPosition()
			}
			if completion != nil {
				completion(finished)
			}
		}).
		Tween(from, target, func(value float32) {
			d.changingPosition = true
			d.offset = value
			d.changingPosition = false
			d.emitSignals()
		})
	d.active = anim
}

// cancelActive supersedes the in-flight transition, if any. Its completion
// callback fires with finished=false on the next tick.
func (d *Drawer) cancelActive() {
	if d.active != nil {
		d.active.Cancel()
		d.active = nil
	}
}

// Bounce plays a cosmetic up-and-down hop of the given height to draw
// attention to the drawer. Only meaningful while resting in Collapsed or
// PartiallyRevealed outside panel mode; anywhere else it is a diagnostic
// no-op. speedMultiplier scales playback rate (1 = normal).
func (d *Drawer) Bounce(height, speedMultiplier float32) {
	if d.resolvedMode == ModePanel {
		d.log.Warnf("drawer: bounce ignored in panel display mode")
		return
	}
	if d.current != Collapsed && d.current != PartiallyRevealed {
		d.log.Warnf("drawer: bounce ignored in position %v", d.current)
		return
	}
	if d.dragging || d.active != nil {
		d.log.Debugf("drawer: bounce ignored while offset is in motion")
		return
	}
	if height <= 0 {
		return
	}
	if speedMultiplier <= 0 {
		speedMultiplier = 1
	}

	base := d.offset
	duration := time.Duration(float32(time.Second) / speedMultiplier)

	var anim *Animation
	anim = d.registry.Animate().
		Duration(duration).
		Easing(EaseLinear).
		OnComplete(func(finished bool) {
			if d.active == anim {
				d.active = nil
			}
			if finished {
				d.offset = base
				d.emitSignals()
			}
		}).
		Custom(func(progress float64) {
			// Up with ease-out, back down with a slight settle.
			var hop float32
			if progress < 0.5 {
				t := float32(progress) * 2
				hop = height * t * (2 - t)
			} else {
				t := (float32(progress) - 0.5) * 2
				hop = height * (1 - t*t)
			}
			d.offset = base + hop
			d.emitSignals()
		})
	d.active = anim
}

// ============================================================================
// Drag lifecycle
// ============================================================================

// DragDidBegin enters the dragging state. Returns false (and leaves the
// engine untouched) when user position changes are disabled or only one
// position is reachable.
func (d *Drawer) DragDidBegin() bool {
	if d.changingPosition {
		return false
	}
	if !d.allowsUserPositionChange || !d.dragEnabled {
		d.log.Debugf("drawer: drag ignored (user changes allowed=%v, draggable=%v)", d.allowsUserPositionChange, d.dragEnabled)
		return false
	}
	d.cancelActive()
	d.dragging = true
	return true
}

// DragDidScroll feeds one scroll tick. Derived signals are recomputed and
// observers notified synchronously.
func (d *Drawer) DragDidScroll(offset float32) {
	if !d.dragging {
		return
	}
	d.offset = offset
	d.emitSignals()
}

// DragWillEndAt captures the toolkit's proposed inertial end offset and
// returns the offset the toolkit must decelerate to instead. The engine
// always answers with the current offset: native inertia is halted and the
// snap animation owns all settling motion.
func (d *Drawer) DragWillEndAt(velocity, proposedTarget float32) (overrideTarget float32) {
	if !d.dragging {
		return d.offset
	}
	_ = velocity
	d.lastDragTarget = proposedTarget
	return d.offset
}

// DragDidEnd leaves the dragging state and snaps to the decided position.
func (d *Drawer) DragDidEnd() {
	if !d.dragging {
		return
	}
	d.dragging = false
	d.SetPosition(d.snapTarget(), true, nil)
}

// snapTarget runs the drag-end snap decision: find the stop nearest to
// where the toolkit's inertia pointed, map it back to a position, then
// apply the snap mode.
func (d *Drawer) snapTarget() Position {
	type stopEntry struct {
		pos   Position
		value float32
	}
	var entries []stopEntry
	for _, p := range []Position{Open, PartiallyRevealed, Collapsed} {
		if !containsPosition(d.supported, p) {
			continue
		}
		if v, ok := d.stops[p]; ok {
			entries = append(entries, stopEntry{p, v})
		}
	}

	lowest := d.stops.Lowest()
	distanceFromBottom := lowest + d.lastDragTarget

	// Seed the running minimum with the lowest stop so an empty or
	// all-tied table resolves to the floor.
	closest := lowest
	best := abs32(lowest - distanceFromBottom)
	for _, e := range entries {
		if dd := abs32(e.value - distanceFromBottom); dd < best {
			best = dd
			closest = e.value
		}
	}

	closestPos := d.current
	switch {
	case d.stopMatches(Open, closest):
		closestPos = Open
	case d.stopMatches(Collapsed, closest):
		closestPos = Collapsed
	case containsPosition(d.supported, PartiallyRevealed):
		closestPos = PartiallyRevealed
	}

	mode := d.snapMode
	if closestPos != d.current {
		// The drag clearly crossed into another position's zone; honor it
		// without the threshold gate.
		mode = SnapNearest
	}
	currentStop, haveCurrentStop := d.stops[d.current]
	if !haveCurrentStop {
		// Mid-transition after a supported-set change the current position
		// has no stop to measure the threshold from.
		mode = SnapNearest
	}

	if mode == SnapNearest {
		return closestPos
	}

	distance := currentStop - distanceFromBottom
	if abs32(distance) <= d.snapThreshold {
		return d.current
	}
	if distance < 0 {
		for p := d.current + 1; p <= Open; p++ {
			if p != Closed && containsPosition(d.supported, p) {
				return p
			}
		}
	} else {
		for p := d.current - 1; p >= Collapsed; p-- {
			if p != Closed && containsPosition(d.supported, p) {
				return p
			}
		}
	}
	return d.current
}

// stopMatches reports whether value equals the stop of a supported position,
// within epsilon.
func (d *Drawer) stopMatches(p Position, value float32) bool {
	if !containsPosition(d.supported, p) {
		return false
	}
	v, ok := d.stops[p]
	return ok && abs32(v-value) < positionEpsilon
}

// ============================================================================
// Derived signals
// ============================================================================

// FullscreenProgress returns the 0-1 progress from PartiallyRevealed toward
// Open, or 0 when Open is unsupported. When the partial and open stops
// coincide the progress jumps straight to 1 past the threshold instead of
// dividing by zero. In the compact set, which has no partial stop, progress
// ramps from the lowest stop.
func (d *Drawer) FullscreenProgress() float32 {
	if !containsPosition(d.supported, Open) {
		return 0
	}
	openStop, ok := d.stops[Open]
	if !ok {
		return 0
	}
	lowest := d.stops.Lowest()
	partialStop, ok := d.stops[PartiallyRevealed]
	if !ok {
		partialStop = lowest
	}

	threshold := partialStop - lowest
	if d.offset <= threshold {
		return 0
	}
	denom := openStop - partialStop
	if denom <= 0 {
		return 1
	}
	return clamp01((d.offset - threshold) / denom)
}

// DimmingOpacity returns the dimming overlay opacity for the current offset.
func (d *Drawer) DimmingOpacity() float32 {
	return d.FullscreenProgress() * d.maxDimmingOpacity
}

// DimmingInteractionEnabled reports whether the dimming overlay should
// intercept touches. Enabled only while visibly dimmed.
func (d *Drawer) DimmingInteractionEnabled() bool {
	return d.DimmingOpacity() > dimmingEpsilon
}

// DistanceFromBottom returns the drawer's visible-edge height above the
// container's bottom edge.
func (d *Drawer) DistanceFromBottom() float32 {
	return d.offset + d.stops.Lowest()
}

// emitSignals recomputes and notifies every offset-derived signal.
func (d *Drawer) emitSignals() {
	d.notifyDistance(d.DistanceFromBottom())
	if containsPosition(d.supported, Open) {
		d.notifyProgress(d.FullscreenProgress())
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
