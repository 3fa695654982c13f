package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/toolbox/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Platform owns the window and turns GLFW callbacks into engine events.
// It also implements core.Clock on top of the GLFW timer.
type Platform struct {
	Window *glfw.Window
	events *core.EventManager
}

func New(events *core.EventManager) *Platform {
	return &Platform{
		Window: nil,
		events: events,
	}
}

func (p *Platform) Startup(applicationName string, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	p.Window = window

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetScrollCallback(p.scrollCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetCloseCallback(p.closeCallback)
	p.Window.Show()

	glfw.SetTime(0)
	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages lets GLFW run the window callbacks. Meant to be registered
// as the first pre frame update, ahead of the event poll.
func (p *Platform) PumpMessages() error {
	glfw.PollEvents()
	return nil
}

// Now returns the seconds since Startup, read from the GLFW monotonic timer.
func (p *Platform) Now() float64 {
	return glfw.GetTime()
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	code, ok := translateKey(key)
	if !ok {
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		p.events.Push(core.Event{Code: core.EVENT_CODE_KEY_PRESSED, KeyCode: code})
	case glfw.Release:
		p.events.Push(core.Event{Code: core.EVENT_CODE_KEY_RELEASED, KeyCode: code})
	}
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	code := core.EVENT_CODE_BUTTON_PRESSED
	if action == glfw.Release {
		code = core.EVENT_CODE_BUTTON_RELEASED
	}
	if button > glfw.MouseButtonMiddle {
		return
	}
	p.events.Push(core.Event{Code: code, Button: core.Button(button)})
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	p.events.Push(core.Event{Code: core.EVENT_CODE_MOUSE_MOVED, X: xpos, Y: ypos})
}

func (p *Platform) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	p.events.Push(core.Event{Code: core.EVENT_CODE_MOUSE_WHEEL, X: xoff, Y: yoff})
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	p.events.Push(core.Event{Code: core.EVENT_CODE_RESIZED, Width: width, Height: height})
}

func (p *Platform) closeCallback(w *glfw.Window) {
	p.events.Push(core.Event{Code: core.EVENT_CODE_APPLICATION_QUIT})
}
