package core

import "github.com/spaghettifunk/starlet/engine/containers"

const initialQueueSize = 32

// CursorSource is anything that can report the cursor position in window coordinates.
type CursorSource interface {
	CursorPos() (float64, float64)
}

// Mouse state structure
type MouseState struct {
	X       float64
	Y       float64
	Buttons [MouseButtonLast + 1]bool
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KeyLast + 1]bool
}

// InputManager accumulates the events delivered by the platform callbacks
// between two frames. The engine drains the queues once per frame.
type InputManager struct {
	keyEvents    *containers.RingQueue[KeyEvent]
	scrollEvents *containers.RingQueue[ScrollEvent]
	buttonEvents *containers.RingQueue[MouseButtonEvent]

	keyboard KeyboardState
	mouse    MouseState

	mouseSampled bool
	mouseDX      float64
	mouseDY      float64
	scrollDX     float64
	scrollDY     float64

	cursorLocked bool
}

func NewInputManager() *InputManager {
	return &InputManager{
		keyEvents:    containers.NewRingQueue[KeyEvent](initialQueueSize),
		scrollEvents: containers.NewRingQueue[ScrollEvent](initialQueueSize),
		buttonEvents: containers.NewRingQueue[MouseButtonEvent](initialQueueSize),
	}
}

// Reset drops everything accumulated since the last frame. Held keys and
// buttons are kept since their release has not been observed yet.
func (im *InputManager) Reset() {
	im.keyEvents.Clear()
	im.scrollEvents.Clear()
	im.buttonEvents.Clear()
	im.mouseDX, im.mouseDY = 0, 0
	im.scrollDX, im.scrollDY = 0, 0
}

func (im *InputManager) OnKey(event KeyEvent) {
	if event.Key >= 0 && event.Key <= KeyLast {
		switch event.Action {
		case ActionPress:
			im.keyboard.Keys[event.Key] = true
		case ActionRelease:
			im.keyboard.Keys[event.Key] = false
		}
	}
	im.keyEvents.Enqueue(event)
}

func (im *InputManager) OnScroll(event ScrollEvent) {
	im.scrollDX += event.DX
	im.scrollDY += event.DY
	im.scrollEvents.Enqueue(event)
}

func (im *InputManager) OnButton(event MouseButtonEvent) {
	if event.Button >= 0 && event.Button <= MouseButtonLast {
		switch event.Action {
		case ActionPress:
			im.mouse.Buttons[event.Button] = true
		case ActionRelease:
			im.mouse.Buttons[event.Button] = false
		}
	}
	im.buttonEvents.Enqueue(event)
}

// UpdateMousePosition samples the cursor and records the movement since the
// previous sample. The first sample produces no movement.
func (im *InputManager) UpdateMousePosition(source CursorSource) {
	if source == nil {
		return
	}
	x, y := source.CursorPos()
	if im.mouseSampled {
		im.mouseDX = x - im.mouse.X
		im.mouseDY = y - im.mouse.Y
	}
	im.mouse.X, im.mouse.Y = x, y
	im.mouseSampled = true
}

// ConsumeKeyEvents returns the queued key events in arrival order and empties the queue.
func (im *InputManager) ConsumeKeyEvents() []KeyEvent {
	return im.keyEvents.Drain()
}

// ConsumeButtonEvents returns the queued mouse button events in arrival order and empties the queue.
func (im *InputManager) ConsumeButtonEvents() []MouseButtonEvent {
	return im.buttonEvents.Drain()
}

// ConsumeScrollEvents returns the queued scroll events in arrival order and empties the queue.
func (im *InputManager) ConsumeScrollEvents() []ScrollEvent {
	return im.scrollEvents.Drain()
}

func (im *InputManager) IsKeyDown(key Key) bool {
	if key < 0 || key > KeyLast {
		return false
	}
	return im.keyboard.Keys[key]
}

func (im *InputManager) IsButtonDown(button MouseButton) bool {
	if button < 0 || button > MouseButtonLast {
		return false
	}
	return im.mouse.Buttons[button]
}

func (im *InputManager) MousePosition() (float64, float64) {
	return im.mouse.X, im.mouse.Y
}

// MouseDelta is the cursor movement observed by the last UpdateMousePosition.
func (im *InputManager) MouseDelta() (float64, float64) {
	return im.mouseDX, im.mouseDY
}

// ScrollDelta is the summed scroll offset received since the last Reset.
func (im *InputManager) ScrollDelta() (float64, float64) {
	return im.scrollDX, im.scrollDY
}

func (im *InputManager) SetCursorLocked(locked bool) {
	im.cursorLocked = locked
}

func (im *InputManager) CursorLocked() bool {
	return im.cursorLocked
}
