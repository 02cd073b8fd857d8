package drawer

import "sync"

// ============================================================================
// Gesture Events
// ============================================================================

// DragPhase identifies a moment in the drag gesture lifecycle.
type DragPhase uint8

const (
	// DragBegan - the user touched down on the drawer's scrollable region.
	DragBegan DragPhase = iota + 1

	// DragChanged - a scroll tick while the finger is down.
	DragChanged

	// DragWillEnd - the finger lifted; the toolkit proposes an inertial
	// target offset and velocity for the settling motion.
	DragWillEnd

	// DragEnded - the toolkit reports the gesture as finished.
	DragEnded
)

// DragEvent carries one drag lifecycle callback from the host toolkit.
// Events are pooled: call Release when done processing.
type DragEvent struct {
	Phase DragPhase

	// Offset is the current 1-D scroll offset, for DragChanged.
	Offset float32

	// Velocity is the toolkit's reported vertical velocity, for DragWillEnd.
	Velocity float32

	// ProposedTarget is the toolkit's inertial end offset, for DragWillEnd.
	ProposedTarget float32
}

// NewDragEvent creates a drag event. Uses an object pool since scroll ticks
// arrive every frame during a drag.
func NewDragEvent(phase DragPhase, offset float32) *DragEvent {
	e := dragEventPool.Get().(*DragEvent)
	e.Phase = phase
	e.Offset = offset
	e.Velocity = 0
	e.ProposedTarget = 0
	return e
}

// Release returns the event to the pool.
func (e *DragEvent) Release() {
	dragEventPool.Put(e)
}

var dragEventPool = sync.Pool{
	New: func() any {
		return &DragEvent{}
	},
}

// HandleDrag dispatches a gesture event to the engine's drag lifecycle.
// For DragWillEnd events it returns the offset the toolkit should decelerate
// to; the engine always answers with the current offset, halting native
// inertia so that settling motion stays under the engine's control.
func (d *Drawer) HandleDrag(e *DragEvent) (overrideTarget float32) {
	switch e.Phase {
	case DragBegan:
		d.DragDidBegin()
	case DragChanged:
		d.DragDidScroll(e.Offset)
	case DragWillEnd:
		return d.DragWillEndAt(e.Velocity, e.ProposedTarget)
	case DragEnded:
		d.DragDidEnd()
	}
	return d.offset
}
