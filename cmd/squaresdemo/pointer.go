package main

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"squareengine/internal/canvas"
)

// glfwPointerSource adapts GLFW's cursor-position and mouse-button
// callbacks into canvas.PointerSource. The whole window is the canvas,
// so client coordinates already are canvas coordinates — no bounding
// rect translation is needed (a real embedded canvas would subtract its
// element offset here; failing to resolve one is the InputError case
// from spec §7).
type glfwPointerSource struct {
	window *glfw.Window
}

func newGLFWPointerSource(window *glfw.Window) *glfwPointerSource {
	return &glfwPointerSource{window: window}
}

func (p *glfwPointerSource) OnPointer(handle func(kind canvas.PointerKind, ev canvas.PointerEvent)) {
	p.window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := w.GetCursorPos()
		ev := canvas.PointerEvent{X: x, Y: y}
		switch action {
		case glfw.Press:
			handle(canvas.PointerDown, ev)
		case glfw.Release:
			handle(canvas.PointerUp, ev)
		}
	})

	p.window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		handle(canvas.PointerMove, canvas.PointerEvent{X: x, Y: y})
	})
}

// consoleHitIndexSink prints the current hit-index to stdout, standing
// in for the DOM element (id "hit-indices") spec §6 describes.
type consoleHitIndexSink struct{}

func (consoleHitIndexSink) SetHitIndex(objectID uint32, found bool) {
	if found {
		fmt.Printf("hit-indices: %d\n", objectID)
	} else {
		fmt.Println("hit-indices: None")
	}
}
