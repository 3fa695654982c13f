package core

import (
	"fmt"

	"github.com/spaghettifunk/toolbox/engine/containers"
)

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. KeyCode is set.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. KeyCode is set.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed. Button is set.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released. Button is set.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved. X and Y are set.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel. X and Y hold the scroll offsets.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed from the OS. Width and Height are set.
	EVENT_CODE_RESIZED EventCode = 0x08

	MAX_EVENT_CODE EventCode = 0xFF
)

type Event struct {
	Code    EventCode
	KeyCode KeyCode
	Button  Button
	X       float64
	Y       float64
	Width   int
	Height  int
	// Free for application defined events.
	Data interface{}
}

func (e Event) String() string {
	return fmt.Sprintf("Event(code=0x%02x)", uint16(e.Code))
}

// DefaultEventQueueSize bounds the events buffered between two polls.
const DefaultEventQueueSize = 1024

// EventManager collects events pushed by the platform and hands them out
// once per frame. Poll must be called at the start of every frame.
type EventManager struct {
	pending *containers.RingQueue[Event]
	events  []Event
	dropped int
}

func NewEventManager(queueSize int) *EventManager {
	if queueSize <= 0 {
		queueSize = DefaultEventQueueSize
	}
	return &EventManager{
		pending: containers.NewRingQueue[Event](queueSize),
	}
}

// Push queues an event for the next Poll. Events are dropped when the
// queue is full.
func (em *EventManager) Push(e Event) {
	if err := em.pending.Enqueue(e); err != nil {
		em.dropped++
		LogWarn("event queue full, dropping %s (%d dropped so far)", e, em.dropped)
	}
}

// Poll replaces the current frame's events with everything pushed since the last poll.
func (em *EventManager) Poll() {
	em.events = em.pending.Drain()
}

// IsEvent reports whether the current frame has an event with the given code.
func (em *EventManager) IsEvent(code EventCode) bool {
	for _, e := range em.events {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Handle calls fn once for every event of the current frame matching code.
func (em *EventManager) Handle(code EventCode, fn func()) {
	for _, e := range em.events {
		if e.Code == code {
			fn()
		}
	}
}

// HandleWith is Handle with the matching event passed along.
func (em *EventManager) HandleWith(code EventCode, fn func(Event)) {
	for _, e := range em.events {
		if e.Code == code {
			fn(e)
		}
	}
}

// Events returns the events of the current frame.
func (em *EventManager) Events() []Event {
	return em.events
}

func (em *EventManager) Dropped() int {
	return em.dropped
}
