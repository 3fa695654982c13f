package core

type Button uint8

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_SHIFT     KeyCode = 0x10
	KEY_PAUSE     KeyCode = 0x13
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_END       KeyCode = 0x23
	KEY_HOME      KeyCode = 0x24
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_INSERT    KeyCode = 0x2D
	KEY_DELETE    KeyCode = 0x2E
	KEY_0         KeyCode = 0x30
	KEY_9         KeyCode = 0x39
	KEY_A         KeyCode = 0x41
	KEY_L         KeyCode = 0x4C
	KEY_P         KeyCode = 0x50
	KEY_R         KeyCode = 0x52
	KEY_Z         KeyCode = 0x5A
	KEY_F1        KeyCode = 0x70
	KEY_F12       KeyCode = 0x7B
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEYS_MAX_KEYS KeyCode = 0xFF
)

// Mouse state structure
type MouseState struct {
	X       float64
	Y       float64
	Buttons [BUTTON_MAX_BUTTONS]bool // button states (pressed/released)
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS + 1]bool
}

// InputState holds current and previous states for keyboard and mouse,
// built from the events of each frame.
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState
}

func NewInputState() *InputState {
	return &InputState{}
}

// Update copies the current states to the previous ones, then applies the
// frame's events.
func (s *InputState) Update(events []Event) {
	s.KeyboardPrevious = s.KeyboardCurrent
	s.MousePrevious = s.MouseCurrent

	for _, e := range events {
		switch e.Code {
		case EVENT_CODE_KEY_PRESSED, EVENT_CODE_KEY_RELEASED:
			if e.KeyCode <= KEYS_MAX_KEYS {
				s.KeyboardCurrent.Keys[e.KeyCode] = e.Code == EVENT_CODE_KEY_PRESSED
			}
		case EVENT_CODE_BUTTON_PRESSED, EVENT_CODE_BUTTON_RELEASED:
			if e.Button < BUTTON_MAX_BUTTONS {
				s.MouseCurrent.Buttons[e.Button] = e.Code == EVENT_CODE_BUTTON_PRESSED
			}
		case EVENT_CODE_MOUSE_MOVED:
			s.MouseCurrent.X = e.X
			s.MouseCurrent.Y = e.Y
		}
	}
}

// keyboard input
func (s *InputState) IsKeyDown(key KeyCode) bool {
	return s.KeyboardCurrent.Keys[key]
}

func (s *InputState) IsKeyUp(key KeyCode) bool {
	return !s.KeyboardCurrent.Keys[key]
}

func (s *InputState) WasKeyDown(key KeyCode) bool {
	return s.KeyboardPrevious.Keys[key]
}

func (s *InputState) WasKeyUp(key KeyCode) bool {
	return !s.KeyboardPrevious.Keys[key]
}

// KeyPressed reports a key that went down during this frame.
func (s *InputState) KeyPressed(key KeyCode) bool {
	return s.IsKeyDown(key) && s.WasKeyUp(key)
}

// mouse input
func (s *InputState) IsButtonDown(button Button) bool {
	return s.MouseCurrent.Buttons[button]
}

func (s *InputState) WasButtonDown(button Button) bool {
	return s.MousePrevious.Buttons[button]
}

func (s *InputState) MousePosition() (float64, float64) {
	return s.MouseCurrent.X, s.MouseCurrent.Y
}

func (s *InputState) PreviousMousePosition() (float64, float64) {
	return s.MousePrevious.X, s.MousePrevious.Y
}
