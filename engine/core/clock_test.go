package core

import "testing"

func TestManualClock(t *testing.T) {
	c := NewManualClock(1.5)

	c.Advance(2)
	if c.Now() != 3.5 {
		t.Errorf("expected 3.5, got %v", c.Now())
	}
	c.Set(10)
	if c.Now() != 10 {
		t.Errorf("expected 10, got %v", c.Now())
	}
}

func TestSystemClockIsMonotonic(t *testing.T) {
	a := SystemClock.Now()
	b := SystemClock.Now()
	if b < a {
		t.Errorf("system clock went backwards: %v then %v", a, b)
	}
}

func TestFrameClock(t *testing.T) {
	src := NewManualClock(5)
	c := NewFrameClock(src)

	src.Advance(1)
	c.Update()
	if c.Elapsed() != 0 {
		t.Errorf("a clock that was never started should not move, got %v", c.Elapsed())
	}

	c.Start()
	src.Advance(0.5)
	c.Update()
	if c.Elapsed() != 0.5 {
		t.Errorf("expected 0.5, got %v", c.Elapsed())
	}

	c.Stop()
	src.Advance(3)
	c.Update()
	if c.Elapsed() != 0.5 {
		t.Errorf("stopped clock should keep its elapsed time, got %v", c.Elapsed())
	}
}

func TestClockFunc(t *testing.T) {
	var c Clock = ClockFunc(func() float64 { return 42 })
	if c.Now() != 42 {
		t.Errorf("expected 42, got %v", c.Now())
	}
}
