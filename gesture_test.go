package drawer

import "testing"

func TestDragEventPoolResetsFields(t *testing.T) {
	e := NewDragEvent(DragWillEnd, 0)
	e.Velocity = 900
	e.ProposedTarget = 400
	e.Release()

	e2 := NewDragEvent(DragChanged, 150)
	if e2.Phase != DragChanged || e2.Offset != 150 {
		t.Errorf("event = %+v, want phase=DragChanged offset=150", e2)
	}
	if e2.Velocity != 0 || e2.ProposedTarget != 0 {
		t.Errorf("recycled event kept stale fields: %+v", e2)
	}
	e2.Release()
}

func TestHandleDragDrivesLifecycle(t *testing.T) {
	d := New(testContent())
	d.SetContainerSize(600, 500)

	begin := NewDragEvent(DragBegan, 0)
	d.HandleDrag(begin)
	begin.Release()
	if !d.IsDragging() {
		t.Fatal("expected dragging after DragBegan")
	}

	move := NewDragEvent(DragChanged, 192)
	d.HandleDrag(move)
	move.Release()
	if got := d.ScrollOffset(); got != 192 {
		t.Errorf("offset = %v, want 192", got)
	}

	willEnd := NewDragEvent(DragWillEnd, 0)
	willEnd.Velocity = 600
	willEnd.ProposedTarget = 192
	if got := d.HandleDrag(willEnd); got != 192 {
		t.Errorf("override target = %v, want current offset 192", got)
	}
	willEnd.Release()

	end := NewDragEvent(DragEnded, 0)
	d.HandleDrag(end)
	end.Release()
	settle(d)

	if got := d.CurrentPosition(); got != PartiallyRevealed {
		t.Errorf("position = %v, want PartiallyRevealed", got)
	}
}
