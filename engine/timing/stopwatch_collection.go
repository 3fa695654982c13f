package timing

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/toolbox/engine/core"
)

// StopwatchCollection owns a set of stopwatches addressed by caller chosen ids.
type StopwatchCollection struct {
	clock       core.Clock
	stopwatches map[string]*Stopwatch
}

func NewStopwatchCollection(clock core.Clock) *StopwatchCollection {
	if clock == nil {
		clock = core.SystemClock
	}
	return &StopwatchCollection{
		clock:       clock,
		stopwatches: make(map[string]*Stopwatch),
	}
}

// Create adds a stopwatch under id. An existing entry is left untouched.
func (sc *StopwatchCollection) Create(id string, startImmediately bool) {
	if _, ok := sc.stopwatches[id]; ok {
		return
	}
	sc.stopwatches[id] = NewStopwatch(sc.clock, startImmediately)
	core.LogDebug("stopwatch %q created", id)
}

// CreateUnique adds a stopwatch under a generated id and returns the id.
func (sc *StopwatchCollection) CreateUnique(startImmediately bool) string {
	id := core.NewIdentifier()
	sc.Create(id, startImmediately)
	return id
}

func (sc *StopwatchCollection) Delete(id string) {
	if _, ok := sc.stopwatches[id]; !ok {
		return
	}
	delete(sc.stopwatches, id)
	core.LogDebug("stopwatch %q deleted", id)
}

func (sc *StopwatchCollection) Exists(id string) bool {
	_, ok := sc.stopwatches[id]
	return ok
}

func (sc *StopwatchCollection) Len() int {
	return len(sc.stopwatches)
}

// IDs returns every id in ascending order.
func (sc *StopwatchCollection) IDs() []string {
	ids := make([]string, 0, len(sc.stopwatches))
	for id := range sc.stopwatches {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Lookup returns the stopwatch under id, if any.
func (sc *StopwatchCollection) Lookup(id string) (*Stopwatch, bool) {
	sw, ok := sc.stopwatches[id]
	return sw, ok
}

func (sc *StopwatchCollection) Get(id string) (*Stopwatch, error) {
	sw, ok := sc.stopwatches[id]
	if !ok {
		return nil, fmt.Errorf("%w: stopwatch %q does not exist", core.ErrNotFound, id)
	}
	return sw, nil
}

// All returns a snapshot of the collection.
func (sc *StopwatchCollection) All() map[string]*Stopwatch {
	return sc.filter(func(*Stopwatch) bool { return true })
}

func (sc *StopwatchCollection) ResetAll(startImmediately bool) {
	for _, sw := range sc.stopwatches {
		sw.Reset(startImmediately)
	}
}

// StartAll starts every stopwatch. It stops at the first failure; entries
// are visited in id order so the ones before the failing id were started.
func (sc *StopwatchCollection) StartAll(initialOffset float64) error {
	return sc.each(func(sw *Stopwatch) error {
		return sw.Start(initialOffset)
	})
}

// StopAll stops every stopwatch and reports the elapsed time of each one.
// On failure the returned map holds the entries stopped so far.
func (sc *StopwatchCollection) StopAll(returnElapsed bool) (map[string]float64, error) {
	elapsed := make(map[string]float64, len(sc.stopwatches))
	for _, id := range sc.IDs() {
		e, err := sc.stopwatches[id].Stop(returnElapsed)
		if err != nil {
			return elapsed, fmt.Errorf("stopwatch %q: %w", id, err)
		}
		elapsed[id] = e
	}
	return elapsed, nil
}

func (sc *StopwatchCollection) PauseAll() error {
	return sc.each(func(sw *Stopwatch) error {
		_, err := sw.Pause(false)
		return err
	})
}

func (sc *StopwatchCollection) ResumeAll() error {
	return sc.each(func(sw *Stopwatch) error {
		return sw.Resume()
	})
}

func (sc *StopwatchCollection) each(fn func(*Stopwatch) error) error {
	for _, id := range sc.IDs() {
		if err := fn(sc.stopwatches[id]); err != nil {
			return fmt.Errorf("stopwatch %q: %w", id, err)
		}
	}
	return nil
}

func (sc *StopwatchCollection) filter(keep func(*Stopwatch) bool) map[string]*Stopwatch {
	out := make(map[string]*Stopwatch)
	for id, sw := range sc.stopwatches {
		if keep(sw) {
			out[id] = sw
		}
	}
	return out
}

func (sc *StopwatchCollection) FilterPaused() map[string]*Stopwatch {
	return sc.filter((*Stopwatch).IsPaused)
}

func (sc *StopwatchCollection) FilterRunning() map[string]*Stopwatch {
	return sc.filter((*Stopwatch).IsRunning)
}

func (sc *StopwatchCollection) IsPaused(id string) (bool, error) {
	sw, err := sc.Get(id)
	if err != nil {
		return false, err
	}
	return sw.IsPaused(), nil
}

func (sc *StopwatchCollection) IsRunning(id string) (bool, error) {
	sw, err := sc.Get(id)
	if err != nil {
		return false, err
	}
	return sw.IsRunning(), nil
}

func (sc *StopwatchCollection) Elapsed(id string) (float64, error) {
	sw, err := sc.Get(id)
	if err != nil {
		return 0, err
	}
	return sw.Elapsed(), nil
}

func (sc *StopwatchCollection) Laps(id string) ([]float64, error) {
	sw, err := sc.Get(id)
	if err != nil {
		return nil, err
	}
	return sw.Laps(), nil
}

func (sc *StopwatchCollection) LapDurations(id string) ([]float64, error) {
	sw, err := sc.Get(id)
	if err != nil {
		return nil, err
	}
	return sw.LapDurations(), nil
}

func (sc *StopwatchCollection) String() string {
	return fmt.Sprintf("StopwatchCollection(count=%d running=%d)", sc.Len(), len(sc.FilterRunning()))
}
