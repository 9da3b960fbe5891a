package camera

import (
	"math"
	"testing"
)

func TestParseMode(t *testing.T) {
	for _, name := range []string{"keys", "Pointer", " auto "} {
		if _, err := ParseMode(name); err != nil {
			t.Errorf("ParseMode(%q): %v", name, err)
		}
	}
	if _, err := ParseMode("joystick"); err == nil {
		t.Error("ParseMode(joystick) succeeded")
	}
}

func TestStepScrollsOppositeToMovement(t *testing.T) {
	rig := NewRig(0, 800, 200)

	delta := rig.Step(1, 0.5)
	if delta != -100 {
		t.Fatalf("delta = %v, want -100", delta)
	}
	if rig.Travelled != 100 {
		t.Fatalf("travelled = %v, want 100", rig.Travelled)
	}
	if rig.X() != 0 || rig.ViewportWidth() != 800 {
		t.Fatalf("view moved: x=%v width=%v", rig.X(), rig.ViewportWidth())
	}

	if delta := rig.Step(-1, 0.25); delta != 50 {
		t.Fatalf("delta = %v, want 50", delta)
	}
	if delta := rig.Step(0, 1); delta != 0 {
		t.Fatalf("idle delta = %v, want 0", delta)
	}
}

func TestStepClampsAxis(t *testing.T) {
	rig := NewRig(0, 800, 100)
	if delta := rig.Step(5, 1); delta != -100 {
		t.Fatalf("delta = %v, want -100", delta)
	}
}

func TestStepSmoothing(t *testing.T) {
	rig := NewRig(0, 800, 100)
	rig.Smoothness = 0.5

	if delta := rig.Step(1, 1); delta != -50 {
		t.Fatalf("first delta = %v, want -50", delta)
	}
	if delta := rig.Step(1, 1); delta != -75 {
		t.Fatalf("second delta = %v, want -75", delta)
	}
	if delta := rig.Step(0, 1); delta != -37.5 {
		t.Fatalf("coasting delta = %v, want -37.5", delta)
	}
}

func TestPointerAxis(t *testing.T) {
	tests := []struct {
		name     string
		x, width int
		deadzone float64
		want     float64
	}{
		{"center", 500, 1000, 0.1, 0},
		{"inside deadzone", 540, 1000, 0.1, 0},
		{"right edge", 1000, 1000, 0.1, 1},
		{"left edge", 0, 1000, 0.1, -1},
		{"beyond screen", 2400, 1000, 0, 1},
		{"halfway right", 750, 1000, 0, 0.5},
		{"zero width", 10, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointerAxis(tt.x, tt.width, tt.deadzone)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("PointerAxis(%d, %d, %v) = %v, want %v", tt.x, tt.width, tt.deadzone, got, tt.want)
			}
		})
	}
}
