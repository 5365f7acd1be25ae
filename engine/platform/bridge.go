package platform

import "github.com/spaghettifunk/starlet/engine/core"

// EventTarget receives the input and resize notifications routed from the
// native callbacks. The engine implements it.
type EventTarget interface {
	OnKey(event core.KeyEvent)
	OnScroll(event core.ScrollEvent)
	OnButton(event core.MouseButtonEvent)
	UpdateViewport(width, height int)
}

// The trampolines below are stateless: the native layer resolves the target
// from the window and passes it in. A nil target means the callback fired
// before the context pointer was installed, so the event is dropped.

func errorCallback(code int, description string) {
	core.LogErrorOp("Backend", "error", "%s (code %d)", description, code)
}

func keyCallback(target EventTarget, key core.Key, scancode int, action core.Action, mods core.ModifierKey) {
	if target == nil {
		return
	}
	target.OnKey(core.KeyEvent{Key: key, Action: action, Mods: mods})
}

func framebufferSizeCallback(target EventTarget, width, height int) {
	if target == nil {
		return
	}
	target.UpdateViewport(width, height)
}

func scrollCallback(target EventTarget, xOffset, yOffset float64) {
	if target == nil {
		return
	}
	target.OnScroll(core.ScrollEvent{DX: xOffset, DY: yOffset})
}

func mouseButtonCallback(target EventTarget, button core.MouseButton, action core.Action, mods core.ModifierKey) {
	if target == nil {
		return
	}
	target.OnButton(core.MouseButtonEvent{Button: button, Action: action, Mods: mods})
}
