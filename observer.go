package drawer

import "sync/atomic"

// ObserverID identifies a registered observer for removal.
type ObserverID uint64

var nextObserverID atomic.Uint64

func newObserverID() ObserverID {
	return ObserverID(nextObserverID.Add(1))
}

// Observer receives the drawer's outbound signals. All callbacks fire
// synchronously on the UI thread, from within the engine call that caused
// the change. Observers are owned by the engine for the lifetime of the
// registration; there is no weak-reference distinction.
type Observer interface {
	// PositionDidChange fires when the drawer settles on a new position,
	// whether by snapping or programmatically.
	PositionDidChange(position Position, bottomSafeArea float32)

	// FullscreenProgressChanged reports the 0-1 progress from
	// PartiallyRevealed toward Open. Only fired while Open is supported.
	FullscreenProgressChanged(progress, bottomSafeArea float32)

	// DistanceFromBottomChanged reports the drawer's visible-edge height
	// above the container's bottom edge.
	DistanceFromBottomChanged(distance, bottomSafeArea float32)

	// DisplayModeChanged fires when the resolved display mode changes.
	DisplayModeChanged(mode DisplayMode)
}

// ObserverFuncs adapts plain functions into an Observer. Nil fields are
// skipped, so callers only wire the signals they care about.
type ObserverFuncs struct {
	OnPositionDidChange         func(position Position, bottomSafeArea float32)
	OnFullscreenProgressChanged func(progress, bottomSafeArea float32)
	OnDistanceFromBottomChanged func(distance, bottomSafeArea float32)
	OnDisplayModeChanged        func(mode DisplayMode)
}

func (o ObserverFuncs) PositionDidChange(position Position, bottomSafeArea float32) {
	if o.OnPositionDidChange != nil {
		o.OnPositionDidChange(position, bottomSafeArea)
	}
}

func (o ObserverFuncs) FullscreenProgressChanged(progress, bottomSafeArea float32) {
	if o.OnFullscreenProgressChanged != nil {
		o.OnFullscreenProgressChanged(progress, bottomSafeArea)
	}
}

func (o ObserverFuncs) DistanceFromBottomChanged(distance, bottomSafeArea float32) {
	if o.OnDistanceFromBottomChanged != nil {
		o.OnDistanceFromBottomChanged(distance, bottomSafeArea)
	}
}

func (o ObserverFuncs) DisplayModeChanged(mode DisplayMode) {
	if o.OnDisplayModeChanged != nil {
		o.OnDisplayModeChanged(mode)
	}
}

type registeredObserver struct {
	id       ObserverID
	observer Observer
}

// AddObserver registers an observer and returns its removal handle.
func (d *Drawer) AddObserver(o Observer) ObserverID {
	id := newObserverID()
	d.observers = append(d.observers, registeredObserver{id: id, observer: o})
	return id
}

// RemoveObserver unregisters a previously added observer.
func (d *Drawer) RemoveObserver(id ObserverID) {
	for i, reg := range d.observers {
		if reg.id == id {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

func (d *Drawer) notifyPosition() {
	for _, reg := range d.observers {
		reg.observer.PositionDidChange(d.current, d.insets.Bottom)
	}
}

func (d *Drawer) notifyProgress(progress float32) {
	for _, reg := range d.observers {
		reg.observer.FullscreenProgressChanged(progress, d.insets.Bottom)
	}
}

func (d *Drawer) notifyDistance(distance float32) {
	for _, reg := range d.observers {
		reg.observer.DistanceFromBottomChanged(distance, d.insets.Bottom)
	}
}

func (d *Drawer) notifyDisplayMode() {
	for _, reg := range d.observers {
		reg.observer.DisplayModeChanged(d.resolvedMode)
	}
}
