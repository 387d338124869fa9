// Package frame drives per-frame update-and-render passes on a single execution stream.
package frame

import "time"

// Handle identifies an outstanding frame request. Zero means none.
type Handle uint64

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop cancels the callback. Returns false if it already ran or was stopped.
	Stop() bool
}

// Host is the single execution stream that delivers frames and timers.
// Every callback runs to completion before the next one starts, so code
// scheduled through a Host never needs locking.
type Host interface {
	// RequestFrame runs fn once at the next display refresh.
	RequestFrame(fn func()) Handle
	// CancelFrame drops an outstanding request. Unknown handles are ignored.
	CancelFrame(h Handle)
	// AfterFunc runs fn once after d of real time.
	AfterFunc(d time.Duration, fn func()) Timer
	// Now returns the host clock.
	Now() time.Time
}

// TickFunc performs one update-and-render pass.
// Returning false ends the tick chain and marks the scheduler stopped.
type TickFunc func() bool

// Scheduler keeps at most one frame request outstanding, and only while
// both running and visible.
type Scheduler struct {
	host    Host
	tick    TickFunc
	running bool
	visible bool
	handle  Handle
}

// New creates a stopped, visible scheduler.
func New(host Host, tick TickFunc) *Scheduler {
	return &Scheduler{
		host:    host,
		tick:    tick,
		visible: true,
	}
}

// Start begins producing ticks. Calling Start while running does nothing.
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.request()
}

// Stop cancels any outstanding tick. Safe to call repeatedly.
func (s *Scheduler) Stop() {
	s.running = false
	s.cancel()
}

// SetVisible opens or closes the visibility gate. Hiding pauses the tick
// chain without clearing running, so showing again resumes it.
func (s *Scheduler) SetVisible(visible bool) {
	if visible == s.visible {
		return
	}
	s.visible = visible
	if !visible {
		s.cancel()
		return
	}
	s.request()
}

// Running reports whether ticks have been started and not stopped.
func (s *Scheduler) Running() bool { return s.running }

// Visible reports the visibility gate.
func (s *Scheduler) Visible() bool { return s.visible }

// Pending reports whether a tick is outstanding.
func (s *Scheduler) Pending() bool { return s.handle != 0 }

// request schedules the next tick if none is outstanding and the gate is open.
func (s *Scheduler) request() {
	if s.handle != 0 || !s.running || !s.visible {
		return
	}
	s.handle = s.host.RequestFrame(s.run)
}

func (s *Scheduler) cancel() {
	if s.handle == 0 {
		return
	}
	s.host.CancelFrame(s.handle)
	s.handle = 0
}

// run is the frame callback. The tick may call Start, Stop or SetVisible itself.
func (s *Scheduler) run() {
	s.handle = 0
	if !s.running || !s.visible {
		return
	}
	if !s.tick() {
		s.running = false
		s.cancel()
		return
	}
	s.request()
}
