package input

import (
	"bufio"
	"strconv"
	"time"
)

// DefaultKeyHold is how long a key is considered "held" after its last press.
// Terminals only report presses, so holding is inferred from auto-repeat.
const DefaultKeyHold = 80 * time.Millisecond

// Action is a discrete key command.
type Action int

const (
	ActionStart      Action = iota // Space or Enter
	ActionFeed                     // f
	ActionPlay                     // p
	ActionPet                      // h
	ActionSwitchPane               // Tab
	ActionQuit                     // q or Ctrl-C
)

// EventKind distinguishes the discrete events delivered with an Input.
type EventKind int

const (
	EventKey EventKind = iota
	EventMousePress
	EventMouseDrag
	EventMouseRelease
	EventFocusIn
	EventFocusOut
)

// Event is one discrete occurrence since the previous poll.
// Mouse positions are 1-based terminal cells.
type Event struct {
	Kind   EventKind
	Action Action // EventKey only
	Button int    // Mouse events only: 0 left, 1 middle, 2 right
	Col    int
	Row    int
}

// Input represents the current frame's input state.
type Input struct {
	Quit   bool
	Left   bool // Held
	Right  bool // Held
	Events []Event
	Closed bool // The underlying reader has ended
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	hold    time.Duration
	state   keyState
	pending []byte // Incomplete escape sequence carried to the next poll
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// A non-positive hold uses DefaultKeyHold.
func StartStream(r *bufio.Reader, hold time.Duration) *Stream {
	s := newStream(hold)
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream(hold time.Duration) *Stream {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	return &Stream{
		ch:   make(chan byte, 256),
		hold: hold,
	}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys, mouse reports and focus changes.
// Uses key state persistence to allow detecting held keys.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.parse(buf, time.Now())
	in.Closed = s.closed
	return in
}

// parse interprets buf and reports held keys as of now.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	var in Input

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 == len(buf) {
			// The introducer may arrive with the next read
			s.pending = append(s.pending[:0], b)
			break
		}
		if b == '\x1b' && (buf[i+1] == '[' || buf[i+1] == 'O') {
			params, final, next := parseEscape(buf, i)
			if next < 0 {
				// Wait for the rest of the sequence
				s.pending = append(s.pending[:0], buf[i:]...)
				break
			}
			s.applySequence(&in, buf[i+1], params, final, now)
			i = next - 1
			continue
		}
		s.applyByte(&in, b, now)
	}

	in.Left = now.Sub(s.state.left) < s.hold
	in.Right = now.Sub(s.state.right) < s.hold
	return in
}

// parseEscape reads a CSI (ESC [) or SS3 (ESC O) sequence starting at buf[i].
// It returns the parameter bytes, the final byte and the index just past the
// sequence, or next = -1 when buf ends before the final byte.
func parseEscape(buf []byte, i int) (params []byte, final byte, next int) {
	j := i + 2
	if buf[i+1] == 'O' {
		if j >= len(buf) {
			return nil, 0, -1
		}
		return nil, buf[j], j + 1
	}
	start := j
	for ; j < len(buf); j++ {
		if c := buf[j]; c >= 0x40 && c <= 0x7e {
			return buf[start:j], c, j + 1
		}
	}
	return nil, 0, -1
}

func (s *Stream) applySequence(in *Input, intro byte, params []byte, final byte, now time.Time) {
	if intro == '[' && len(params) > 0 && params[0] == '<' {
		if ev, ok := parseSGRMouse(params[1:], final); ok {
			in.Events = append(in.Events, ev)
		}
		return
	}
	switch final {
	case 'C': // Right arrow
		s.state.right = now
	case 'D': // Left arrow
		s.state.left = now
	case 'I':
		if intro == '[' {
			in.Events = append(in.Events, Event{Kind: EventFocusIn})
		}
	case 'O':
		if intro == '[' {
			in.Events = append(in.Events, Event{Kind: EventFocusOut})
		}
	}
}

// parseSGRMouse decodes the "b;x;y" body of an SGR mouse report.
func parseSGRMouse(body []byte, final byte) (Event, bool) {
	var fields [3]int
	n := 0
	start := 0
	for k := 0; k <= len(body); k++ {
		if k < len(body) && body[k] != ';' {
			continue
		}
		if n == len(fields) {
			return Event{}, false
		}
		v, err := strconv.Atoi(string(body[start:k]))
		if err != nil {
			return Event{}, false
		}
		fields[n] = v
		n++
		start = k + 1
	}
	if n != len(fields) {
		return Event{}, false
	}

	code := fields[0]
	if code&64 != 0 {
		return Event{}, false // Wheel
	}
	ev := Event{Button: code & 3, Col: fields[1], Row: fields[2]}
	switch {
	case final == 'm':
		ev.Kind = EventMouseRelease
	case final != 'M':
		return Event{}, false
	case code&32 != 0:
		ev.Kind = EventMouseDrag
	default:
		ev.Kind = EventMousePress
	}
	return ev, true
}

// applyByte updates held keys or emits an action for a single byte.
func (s *Stream) applyByte(in *Input, b byte, now time.Time) {
	action := func(a Action) {
		in.Events = append(in.Events, Event{Kind: EventKey, Action: a})
	}
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
		action(ActionQuit)
	case 'a', 'A':
		s.state.left = now
	case 'd', 'D':
		s.state.right = now
	case ' ', '\n', '\r':
		action(ActionStart)
	case 'f', 'F':
		action(ActionFeed)
	case 'p', 'P':
		action(ActionPlay)
	case 'h', 'H':
		action(ActionPet)
	case '\t':
		action(ActionSwitchPane)
	}
}

// ResetHeld forgets every held key, e.g. when the terminal loses focus and
// the key-up would never be seen.
func (s *Stream) ResetHeld() {
	s.state = keyState{}
}
