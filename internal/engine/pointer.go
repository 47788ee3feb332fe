package engine

import "squareengine/internal/canvas"

// HandlePointer drives the Running<->Paused state machine from spec
// §4.6. It is the callback passed to a canvas.PointerSource; it only
// touches engine-owned state and never suspends, so it is safe to call
// directly from the host's event dispatch.
func (e *Engine) HandlePointer(kind canvas.PointerKind, ev canvas.PointerEvent) {
	switch e.state {
	case Running:
		if kind == canvas.PointerDown {
			e.state = Paused
			e.pressPos = ev
			e.reportHitTest()
		}
	case Paused:
		switch kind {
		case canvas.PointerMove:
			e.pressPos = ev
			e.reportHitTest()
		case canvas.PointerUp:
			e.state = Running
			e.hitSet = nil
		}
	}
}

// State reports the current input FSM state.
func (e *Engine) State() InputState {
	return e.state
}

func (e *Engine) reportHitTest() {
	ids := e.HitIndices(e.pressPos.X, e.pressPos.Y)
	e.hitSet = ids
	if len(ids) > 0 {
		e.hitSink.SetHitIndex(ids[0], true)
	} else {
		e.hitSink.SetHitIndex(0, false)
	}
}
