package timing

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/toolbox/engine/core"
)

// TimerCollection owns a set of timeout timers addressed by caller chosen ids.
type TimerCollection struct {
	clock  core.Clock
	timers map[string]*TimeoutTimer
}

func NewTimerCollection(clock core.Clock) *TimerCollection {
	if clock == nil {
		clock = core.SystemClock
	}
	return &TimerCollection{
		clock:  clock,
		timers: make(map[string]*TimeoutTimer),
	}
}

// Create adds a timer under id. An existing entry keeps its configuration.
func (tc *TimerCollection) Create(id string, duration float64, callback TimeoutCallback, startImmediately bool) {
	if _, ok := tc.timers[id]; ok {
		return
	}
	tc.timers[id] = NewTimeoutTimer(tc.clock, duration, callback, startImmediately)
	core.LogDebug("timer %q created (duration=%.3fs)", id, duration)
}

// CreateUnique adds a timer under a generated id and returns the id.
func (tc *TimerCollection) CreateUnique(duration float64, callback TimeoutCallback, startImmediately bool) string {
	id := core.NewIdentifier()
	tc.Create(id, duration, callback, startImmediately)
	return id
}

func (tc *TimerCollection) Delete(id string) {
	if _, ok := tc.timers[id]; !ok {
		return
	}
	delete(tc.timers, id)
	core.LogDebug("timer %q deleted", id)
}

func (tc *TimerCollection) Exists(id string) bool {
	_, ok := tc.timers[id]
	return ok
}

func (tc *TimerCollection) Len() int {
	return len(tc.timers)
}

func (tc *TimerCollection) IDs() []string {
	ids := make([]string, 0, len(tc.timers))
	for id := range tc.timers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (tc *TimerCollection) Lookup(id string) (*TimeoutTimer, bool) {
	t, ok := tc.timers[id]
	return t, ok
}

func (tc *TimerCollection) Get(id string) (*TimeoutTimer, error) {
	t, ok := tc.timers[id]
	if !ok {
		return nil, fmt.Errorf("%w: timer %q does not exist", core.ErrNotFound, id)
	}
	return t, nil
}

// All returns a snapshot of the collection.
func (tc *TimerCollection) All() map[string]*TimeoutTimer {
	out := make(map[string]*TimeoutTimer, len(tc.timers))
	for id, t := range tc.timers {
		out[id] = t
	}
	return out
}

// TickAll ticks every timer once, in id order. Callbacks may add, remove or
// reset timers: only ids present when the call began are visited, and ids
// removed meanwhile are skipped. The first callback error stops the pass.
func (tc *TimerCollection) TickAll() error {
	for _, id := range tc.IDs() {
		t, ok := tc.Lookup(id)
		if !ok {
			continue
		}
		wasTimedOut := t.IsTimedOut()
		if err := t.Tick(); err != nil {
			return fmt.Errorf("timer %q: %w", id, err)
		}
		if !wasTimedOut && t.IsTimedOut() {
			core.LogDebug("timer %q timed out", id)
		}
	}
	return nil
}

// Active returns a snapshot of the timers currently counting.
func (tc *TimerCollection) Active() map[string]*TimeoutTimer {
	out := make(map[string]*TimeoutTimer)
	for id, t := range tc.timers {
		if t.IsActive() {
			out[id] = t
		}
	}
	return out
}

func (tc *TimerCollection) IsActive(id string) (bool, error) {
	t, err := tc.Get(id)
	if err != nil {
		return false, err
	}
	return t.IsActive(), nil
}

func (tc *TimerCollection) IsTimedOut(id string) (bool, error) {
	t, err := tc.Get(id)
	if err != nil {
		return false, err
	}
	return t.IsTimedOut(), nil
}

func (tc *TimerCollection) Elapsed(id string) (float64, error) {
	t, err := tc.Get(id)
	if err != nil {
		return 0, err
	}
	return t.Elapsed(), nil
}

func (tc *TimerCollection) String() string {
	return fmt.Sprintf("TimerCollection(count=%d active=%d)", tc.Len(), len(tc.Active()))
}
