package loop

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/tomz197/playground/internal/frame"
)

func TestTickOrder(t *testing.T) {
	l := NewEventLoop(time.Millisecond)
	var got []string
	l.RequestFrame(func() { got = append(got, "a") })
	l.RequestFrame(func() {
		got = append(got, "b")
		l.RequestFrame(func() { got = append(got, "late") })
	})

	hooks := Hooks{
		Input:   func() { got = append(got, "input") },
		Present: func() error { got = append(got, "present"); return nil },
	}
	if err := l.Tick(hooks); err != nil {
		t.Fatal(err)
	}
	want := []string{"input", "a", "b", "present"}
	if !slices.Equal(got, want) {
		t.Fatalf("first tick = %v, want %v", got, want)
	}

	got = got[:0]
	l.Tick(hooks)
	want = []string{"input", "late", "present"}
	if !slices.Equal(got, want) {
		t.Fatalf("second tick = %v, want %v", got, want)
	}
}

func TestCancelWithinTick(t *testing.T) {
	l := NewEventLoop(time.Millisecond)
	ran := false
	var second frame.Handle
	l.RequestFrame(func() { l.CancelFrame(second) })
	second = l.RequestFrame(func() { ran = true })
	l.Tick(Hooks{})
	if ran {
		t.Fatal("frame cancelled earlier in the tick still ran")
	}
}

func runWithTimeout(t *testing.T, l *EventLoop, hooks Hooks) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := l.Run(ctx, hooks); err != nil {
		t.Fatal(err)
	}
	if ctx.Err() != nil {
		t.Fatal("loop did not stop before the deadline")
	}
}

func TestTimerRunsOnLoop(t *testing.T) {
	l := NewEventLoop(time.Millisecond)
	fired := false
	l.AfterFunc(5*time.Millisecond, func() {
		fired = true
		l.Stop()
	})
	runWithTimeout(t, l, Hooks{})
	if !fired {
		t.Fatal("timer never fired")
	}
}

func TestStoppedTimerNeverRuns(t *testing.T) {
	l := NewEventLoop(time.Millisecond)
	fired := false
	tm := l.AfterFunc(time.Millisecond, func() { fired = true })
	if !tm.Stop() {
		t.Fatal("Stop on a pending timer returned false")
	}
	if tm.Stop() {
		t.Fatal("second Stop returned true")
	}
	l.AfterFunc(20*time.Millisecond, l.Stop)
	runWithTimeout(t, l, Hooks{})
	if fired {
		t.Fatal("stopped timer fired")
	}
}

func TestSchedulerOnEventLoop(t *testing.T) {
	l := NewEventLoop(time.Millisecond)
	ticks := 0
	s := frame.New(l, func() bool {
		ticks++
		return ticks < 3
	})
	s.Start()

	presents := 0
	runWithTimeout(t, l, Hooks{Present: func() error {
		presents++
		if presents == 5 {
			l.Stop()
		}
		return nil
	}})
	if ticks != 3 {
		t.Fatalf("ticks = %d, want 3", ticks)
	}
	if s.Running() || s.Pending() {
		t.Fatal("scheduler still live after its tick ended the chain")
	}
}

func TestPostAfterRunIsDropped(t *testing.T) {
	l := NewEventLoop(time.Millisecond)
	l.AfterFunc(time.Millisecond, l.Stop)
	runWithTimeout(t, l, Hooks{})

	done := make(chan struct{})
	go func() {
		l.Post(func() {})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Post blocked after the loop returned")
	}
}
