package trivia

import "testing"

func TestWinningIndex(t *testing.T) {
	// 8 slices of 45 degrees each. The pointer sits at the top; a rotation
	// of r degrees puts slice ((360-r%360)%360)/45 under it.
	tests := []struct {
		rotation string
		deg      int
		want     int
	}{
		{"no offset", 4 * 360, 0},
		{"one degree", 4*360 + 1, 7},
		{"mid first slice backwards", 4*360 + 44, 7},
		{"exactly one slice", 4*360 + 45, 7},
		{"half turn", 4*360 + 180, 4},
		{"last degree", 4*360 + 359, 0},
		{"quarter turn", 4*360 + 90, 6},
	}
	for _, tt := range tests {
		t.Run(tt.rotation, func(t *testing.T) {
			if got := WinningIndex(tt.deg, 8); got != tt.want {
				t.Errorf("WinningIndex(%d, 8) = %d, want %d", tt.deg, got, tt.want)
			}
		})
	}
}

func TestWinningIndexInRange(t *testing.T) {
	n := len(WheelSlices)
	for deg := 0; deg < 360; deg++ {
		idx := WinningIndex(wheelMinTurns*360+deg, n)
		if idx < 0 || idx >= n {
			t.Fatalf("rotation %d: index %d out of range [0,%d)", deg, idx, n)
		}
	}
}

func TestSpinRotation(t *testing.T) {
	for i := 0; i < 100; i++ {
		r := SpinRotation()
		if r < wheelMinTurns*360 || r >= (wheelMinTurns+1)*360 {
			t.Fatalf("SpinRotation() = %d, want at least %d full turns plus under one",
				r, wheelMinTurns)
		}
	}
}
