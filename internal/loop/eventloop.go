package loop

import (
	"context"
	"slices"
	"time"

	"github.com/tomz197/playground/internal/frame"
)

// Hooks are called by the EventLoop around the frame callbacks of each tick.
type Hooks struct {
	// Input runs first in every tick, before any frame callback.
	Input func()
	// Present runs last in every tick, after all frame callbacks.
	Present func() error
}

// EventLoop is a frame.Host backed by a single goroutine. Frame callbacks,
// timer callbacks and hooks all run on the goroutine that called Run, one at
// a time. Post is the only method that may be called from other goroutines.
type EventLoop struct {
	frameTime time.Duration
	tasks     chan func()
	done      chan struct{}
	stopped   bool

	frames  map[frame.Handle]func()
	next    frame.Handle
	handles []frame.Handle // Scratch buffer for tick
}

// NewEventLoop creates a loop that ticks every frameTime.
func NewEventLoop(frameTime time.Duration) *EventLoop {
	return &EventLoop{
		frameTime: frameTime,
		tasks:     make(chan func(), 64),
		done:      make(chan struct{}),
		frames:    make(map[frame.Handle]func()),
	}
}

// Post queues fn to run on the loop goroutine between ticks.
// Posts made after the loop has returned are dropped.
func (l *EventLoop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// RequestFrame implements frame.Host.
func (l *EventLoop) RequestFrame(fn func()) frame.Handle {
	l.next++
	l.frames[l.next] = fn
	return l.next
}

// CancelFrame implements frame.Host.
func (l *EventLoop) CancelFrame(h frame.Handle) {
	delete(l.frames, h)
}

// AfterFunc implements frame.Host. The callback is posted to the loop when
// the timer expires; stopping the timer before the post runs still cancels it.
func (l *EventLoop) AfterFunc(d time.Duration, fn func()) frame.Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.done {
				return
			}
			t.done = true
			fn()
		})
	})
	return t
}

// Now implements frame.Host.
func (l *EventLoop) Now() time.Time {
	return time.Now()
}

// Stop makes Run return after the current step. Must be called on the loop goroutine.
func (l *EventLoop) Stop() {
	l.stopped = true
}

// Run drives the loop until ctx is cancelled, Stop is called or a hook fails.
func (l *EventLoop) Run(ctx context.Context, hooks Hooks) error {
	defer close(l.done)

	ticker := time.NewTicker(l.frameTime)
	defer ticker.Stop()

	for !l.stopped {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.tasks:
			fn()
		case <-ticker.C:
			if err := l.Tick(hooks); err != nil {
				return err
			}
		}
	}
	return nil
}

// Tick runs one refresh: the input hook, every frame callback outstanding
// when the tick began (in request order), then the present hook.
// Frames requested during the tick wait for the next one.
func (l *EventLoop) Tick(hooks Hooks) error {
	if hooks.Input != nil {
		hooks.Input()
	}

	l.handles = l.handles[:0]
	for h := range l.frames {
		l.handles = append(l.handles, h)
	}
	slices.Sort(l.handles)
	for _, h := range l.handles {
		fn, ok := l.frames[h]
		if !ok {
			continue // Cancelled earlier in this tick
		}
		delete(l.frames, h)
		fn()
	}

	if hooks.Present != nil {
		return hooks.Present()
	}
	return nil
}

// loopTimer is only touched on the loop goroutine, apart from the
// time.Timer it wraps.
type loopTimer struct {
	timer *time.Timer
	done  bool
}

func (t *loopTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.timer.Stop()
	return true
}

// Ensure EventLoop satisfies frame.Host.
var _ frame.Host = (*EventLoop)(nil)
