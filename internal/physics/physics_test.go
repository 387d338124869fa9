package physics

import (
	"math"
	"testing"
)

func TestRectOverlaps(t *testing.T) {
	player := Rect{X: 100, Y: 100, W: 30, H: 30}
	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"identical", player, true},
		{"partial top-left", Rect{X: 90, Y: 90, W: 20, H: 20}, true},
		{"contained", Rect{X: 110, Y: 110, W: 5, H: 5}, true},
		{"touching right edge", Rect{X: 130, Y: 100, W: 20, H: 30}, false},
		{"touching left edge", Rect{X: 70, Y: 100, W: 30, H: 30}, false},
		{"touching top edge", Rect{X: 100, Y: 70, W: 30, H: 30}, false},
		{"touching bottom edge", Rect{X: 100, Y: 130, W: 30, H: 30}, false},
		{"far away", Rect{X: 0, Y: 0, W: 10, H: 10}, false},
		{"one unit inside", Rect{X: 129, Y: 129, W: 10, H: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := player.Overlaps(tt.o); got != tt.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", tt.o, got, tt.want)
			}
			if got := tt.o.Overlaps(player); got != tt.want {
				t.Errorf("reverse Overlaps(%+v) = %v, want %v", tt.o, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Errorf("Clamp(-3) = %v, want 0", got)
	}
	if got := Clamp(13, 0, 10); got != 10 {
		t.Errorf("Clamp(13) = %v, want 10", got)
	}
	if got := Clamp(4, 0, 10); got != 4 {
		t.Errorf("Clamp(4) = %v, want 4", got)
	}
}

func TestSeekStopsInsideArriveRadius(t *testing.T) {
	x, y, dx, moved := Seek(0, 0, 3, 4, 1.5, 5)
	if moved || x != 0 || y != 0 || dx != 0 {
		t.Fatalf("Seek at distance 5 moved to (%v,%v) dx=%v", x, y, dx)
	}
}

func TestSeekMovesAlongUnitVector(t *testing.T) {
	x, y, dx, moved := Seek(0, 0, 30, 40, 5, 5)
	if !moved {
		t.Fatal("expected movement")
	}
	if math.Abs(x-3) > 1e-9 || math.Abs(y-4) > 1e-9 {
		t.Errorf("Seek = (%v,%v), want (3,4)", x, y)
	}
	if dx != 30 {
		t.Errorf("dx = %v, want 30", dx)
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(0, 0, 3, 4); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}
