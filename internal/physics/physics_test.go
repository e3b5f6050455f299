package physics

import "testing"

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name       string
		x1, y1, r1 float64
		x2, y2, r2 float64
		want       bool
	}{
		{"same center", 0, 0, 1, 0, 0, 1, true},
		{"apart", 0, 0, 1, 10, 0, 1, false},
		{"touching is not overlap", 0, 0, 1, 2, 0, 1, false},
		{"just inside", 0, 0, 1, 1.99, 0, 1, true},
		{"diagonal", 0, 0, 3, 3, 4, 2.01, true},
		{"diagonal touching", 0, 0, 3, 3, 4, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CirclesOverlap(tt.x1, tt.y1, tt.r1, tt.x2, tt.y2, tt.r2); got != tt.want {
				t.Errorf("CirclesOverlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpritesCollideUsesHalfWidths(t *testing.T) {
	// Half widths 18 + 15 = 33.
	if !SpritesCollide(30, 30, 36, 30, 62, 30) {
		t.Error("distance 32 should collide")
	}
	if SpritesCollide(30, 30, 36, 30, 63, 30) {
		t.Error("distance 33 should not collide")
	}
}

func TestWithinBox(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   bool
	}{
		{"center", 320, 240, true},
		{"left edge", 270, 240, false},
		{"inside left", 271, 240, true},
		{"top edge", 320, 260, false},
		{"inside top", 320, 259.5, true},
		{"outside", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinBox(tt.px, tt.py, 320, 240, 50, 20); got != tt.want {
				t.Errorf("WithinBox(%v, %v) = %v, want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestDistanceSquared(t *testing.T) {
	if d := DistanceSquared(1, 1, 4, 5); d != 25 {
		t.Errorf("DistanceSquared = %v, want 25", d)
	}
}
