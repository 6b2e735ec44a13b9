package engine

import "testing"

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		direction string
		dx, dy    int
		ok        bool
	}{
		{"up", 0, -1, true},
		{"down", 0, 1, true},
		{"left", -1, 0, true},
		{"right", 1, 0, true},
		{"", 0, 0, false},
		{"UP", 0, 0, false},
		{"upleft", 0, 0, false},
		{"north", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.direction, func(t *testing.T) {
			dx, dy, ok := DirectionDelta(tt.direction)
			if dx != tt.dx || dy != tt.dy || ok != tt.ok {
				t.Errorf("DirectionDelta(%q) = (%d,%d,%v), want (%d,%d,%v)",
					tt.direction, dx, dy, ok, tt.dx, tt.dy, tt.ok)
			}
		})
	}
}

func TestDirections_AllUnitVectors(t *testing.T) {
	for _, direction := range Directions {
		dx, dy, ok := DirectionDelta(direction)
		if !ok {
			t.Errorf("Direction %q not recognized by DirectionDelta", direction)
		}
		if dx*dx+dy*dy != 1 {
			t.Errorf("Direction %q is not a unit vector: (%d,%d)", direction, dx, dy)
		}
	}
}

func TestCellKindValues(t *testing.T) {
	kinds := map[CellKind]string{
		Wall:   "wall",
		Empty:  "empty",
		Pellet: "pellet",
		Power:  "power",
	}
	for kind, want := range kinds {
		if string(kind) != want {
			t.Errorf("Expected cell kind %q, got %q", want, string(kind))
		}
	}
}
