package core

// Key, action, modifier and button codes share the GLFW numbering so the
// platform layer can convert with a plain cast.

type Key int

const (
	KeyUnknown      Key = -1
	KeySpace        Key = 32
	KeyA            Key = 65
	KeyC            Key = 67
	KeyD            Key = 68
	KeyE            Key = 69
	KeyP            Key = 80
	KeyQ            Key = 81
	KeyS            Key = 83
	KeyW            Key = 87
	KeyEscape       Key = 256
	KeyLeftShift    Key = 340
	KeyLeftControl  Key = 341
	KeyRightShift   Key = 344
	KeyRightControl Key = 345
	KeyLast         Key = 348
)

type Action int

const (
	ActionRelease Action = 0
	ActionPress   Action = 1
	ActionRepeat  Action = 2
)

// Label returns the human readable name of a press or release. Any other
// action is reported as not labelled.
func (a Action) Label() (string, bool) {
	switch a {
	case ActionPress:
		return "Pressed", true
	case ActionRelease:
		return "Released", true
	default:
		return "", false
	}
}

type ModifierKey int

const (
	ModShift   ModifierKey = 0x0001
	ModControl ModifierKey = 0x0002
	ModAlt     ModifierKey = 0x0004
	ModSuper   ModifierKey = 0x0008
)

type MouseButton int

const (
	MouseButtonLeft   MouseButton = 0
	MouseButtonRight  MouseButton = 1
	MouseButtonMiddle MouseButton = 2
	MouseButton4      MouseButton = 3
	MouseButton5      MouseButton = 4
	MouseButtonLast   MouseButton = 7
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "Left"
	case MouseButtonRight:
		return "Right"
	case MouseButtonMiddle:
		return "Middle"
	case MouseButton4:
		return "Side_Forward"
	case MouseButton5:
		return "Side_Backward"
	default:
		return "Unknown"
	}
}

type KeyEvent struct {
	Key    Key
	Action Action
	Mods   ModifierKey
}

type ScrollEvent struct {
	DX float64
	DY float64
}

type MouseButtonEvent struct {
	Button MouseButton
	Action Action
	Mods   ModifierKey
}
