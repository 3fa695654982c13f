package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/toolbox/engine/core"
)

var specialKeys = map[glfw.Key]core.KeyCode{
	glfw.KeyBackspace:    core.KEY_BACKSPACE,
	glfw.KeyTab:          core.KEY_TAB,
	glfw.KeyEnter:        core.KEY_ENTER,
	glfw.KeyPause:        core.KEY_PAUSE,
	glfw.KeyEscape:       core.KEY_ESCAPE,
	glfw.KeySpace:        core.KEY_SPACE,
	glfw.KeyEnd:          core.KEY_END,
	glfw.KeyHome:         core.KEY_HOME,
	glfw.KeyLeft:         core.KEY_LEFT,
	glfw.KeyUp:           core.KEY_UP,
	glfw.KeyRight:        core.KEY_RIGHT,
	glfw.KeyDown:         core.KEY_DOWN,
	glfw.KeyInsert:       core.KEY_INSERT,
	glfw.KeyDelete:       core.KEY_DELETE,
	glfw.KeyLeftShift:    core.KEY_LSHIFT,
	glfw.KeyRightShift:   core.KEY_RSHIFT,
	glfw.KeyLeftControl:  core.KEY_LCONTROL,
	glfw.KeyRightControl: core.KEY_RCONTROL,
}

// translateKey maps a GLFW key to the engine key codes. Letters and digits
// share their ASCII value in both.
func translateKey(key glfw.Key) (core.KeyCode, bool) {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ, key >= glfw.Key0 && key <= glfw.Key9:
		return core.KeyCode(key), true
	case key >= glfw.KeyF1 && key <= glfw.KeyF12:
		return core.KEY_F1 + core.KeyCode(key-glfw.KeyF1), true
	}
	code, ok := specialKeys[key]
	return code, ok
}
