package arcade

// Key is a direction key the player can hold.
type Key int

const (
	KeyLeft  Key = iota // Left arrow
	KeyRight            // Right arrow
	KeyA
	KeyD
)

// Direction is the resolved horizontal intent for a tick.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

// Input is the set of held direction keys plus at most one active touch zone.
type Input struct {
	held  [4]bool
	touch Direction
}

// Press marks k as held.
func (in *Input) Press(k Key) {
	if k >= 0 && int(k) < len(in.held) {
		in.held[k] = true
	}
}

// Release marks k as no longer held.
func (in *Input) Release(k Key) {
	if k >= 0 && int(k) < len(in.held) {
		in.held[k] = false
	}
}

// Held reports whether k is held.
func (in Input) Held(k Key) bool {
	return k >= 0 && int(k) < len(in.held) && in.held[k]
}

// Touch activates the zone under a pointer at x on a surface of the given
// display width: the left half steers left, the right half steers right.
// A new touch replaces the previous one.
func (in *Input) Touch(x, width float64) {
	if x < width/2 {
		in.touch = DirLeft
	} else {
		in.touch = DirRight
	}
}

// EndTouch clears the touch zone.
func (in *Input) EndTouch() {
	in.touch = DirNone
}

// Clear drops all held keys and the touch zone.
func (in *Input) Clear() {
	*in = Input{}
}

// Direction resolves the held state. Right wins when both sides are held.
func (in Input) Direction() Direction {
	left := in.Held(KeyLeft) || in.Held(KeyA) || in.touch == DirLeft
	right := in.Held(KeyRight) || in.Held(KeyD) || in.touch == DirRight
	switch {
	case right:
		return DirRight
	case left:
		return DirLeft
	default:
		return DirNone
	}
}
