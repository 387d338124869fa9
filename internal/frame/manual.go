package frame

import (
	"sort"
	"time"
)

// ManualHost is a Host driven explicitly by its owner. Frames are delivered
// by Frame and timers fire by Advance, which makes runs reproducible for
// tests and headless replays.
type ManualHost struct {
	now    time.Time
	next   Handle
	frames map[Handle]func()
	timers []*manualTimer
	seq    uint64
}

type manualTimer struct {
	at      time.Time
	seq     uint64
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManualHost creates a host whose clock starts at start.
func NewManualHost(start time.Time) *ManualHost {
	return &ManualHost{
		now:    start,
		frames: make(map[Handle]func()),
	}
}

// RequestFrame implements Host.
func (h *ManualHost) RequestFrame(fn func()) Handle {
	h.next++
	h.frames[h.next] = fn
	return h.next
}

// CancelFrame implements Host.
func (h *ManualHost) CancelFrame(handle Handle) {
	delete(h.frames, handle)
}

// AfterFunc implements Host.
func (h *ManualHost) AfterFunc(d time.Duration, fn func()) Timer {
	h.seq++
	t := &manualTimer{at: h.now.Add(d), seq: h.seq, fn: fn}
	h.timers = append(h.timers, t)
	return t
}

// Now implements Host.
func (h *ManualHost) Now() time.Time {
	return h.now
}

// PendingFrames returns the number of outstanding frame requests.
func (h *ManualHost) PendingFrames() int {
	return len(h.frames)
}

// PendingTimers returns the number of timers that have neither fired nor been stopped.
func (h *ManualHost) PendingTimers() int {
	n := 0
	for _, t := range h.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Frame delivers every frame request outstanding at the time of the call,
// in request order. Requests made by those callbacks wait for the next Frame.
func (h *ManualHost) Frame() int {
	if len(h.frames) == 0 {
		return 0
	}
	handles := make([]Handle, 0, len(h.frames))
	for handle := range h.frames {
		handles = append(handles, handle)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	ran := 0
	for _, handle := range handles {
		fn, ok := h.frames[handle]
		if !ok {
			continue // Cancelled by an earlier callback in this batch
		}
		delete(h.frames, handle)
		fn()
		ran++
	}
	return ran
}

// Frames calls Frame n times.
func (h *ManualHost) Frames(n int) {
	for i := 0; i < n; i++ {
		h.Frame()
	}
}

// Advance moves the clock forward by d, firing due timers in deadline order.
// Timers armed by a firing callback fire within the same call when they fall due.
func (h *ManualHost) Advance(d time.Duration) {
	end := h.now.Add(d)
	for {
		t := h.nextDue(end)
		if t == nil {
			break
		}
		h.now = t.at
		t.fired = true
		t.fn()
	}
	h.now = end
	h.compact()
}

func (h *ManualHost) nextDue(end time.Time) *manualTimer {
	var due *manualTimer
	for _, t := range h.timers {
		if t.stopped || t.fired || t.at.After(end) {
			continue
		}
		if due == nil || t.at.Before(due.at) || (t.at.Equal(due.at) && t.seq < due.seq) {
			due = t
		}
	}
	return due
}

func (h *ManualHost) compact() {
	kept := h.timers[:0]
	for _, t := range h.timers {
		if !t.stopped && !t.fired {
			kept = append(kept, t)
		}
	}
	h.timers = kept
}

// Ensure ManualHost satisfies Host.
var _ Host = (*ManualHost)(nil)
