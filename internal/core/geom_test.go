package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"last cell", 29, 24, true},
		{"left of rect", 9, 15, false},
		{"above rect", 15, 9, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(3, 4, 5, 6)
	if r.Right() != 8 {
		t.Errorf("Right() = %d, expected 8", r.Right())
	}
	if r.Bottom() != 10 {
		t.Errorf("Bottom() = %d, expected 10", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{15, 0, 10, 10},
		{7, 7, 7, 7},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(2, 9) != 2 || Min(9, 2) != 2 {
		t.Error("Min should return the smaller value")
	}
	if Max(2, 9) != 9 || Max(9, 2) != 9 {
		t.Error("Max should return the larger value")
	}
}

func TestVarietyColorWraps(t *testing.T) {
	n := len(tilePalette)
	if VarietyColor(0) != VarietyColor(n) {
		t.Errorf("VarietyColor(%d) should wrap to VarietyColor(0)", n)
	}
	if VarietyColor(0) == VarietyColor(1) {
		t.Error("adjacent varieties should use different colors")
	}
	if VarietyColor(-1) != VarietyColor(1) {
		t.Error("negative varieties should not panic and mirror positives")
	}
}

func TestInputFrame(t *testing.T) {
	f := Frame(ActionLeft, ActionConfirm)
	if !f.Has(ActionLeft) || !f.Has(ActionConfirm) {
		t.Fatal("Frame should set every given action")
	}
	if f.Has(ActionHint) {
		t.Error("unset action reported as triggered")
	}
	f.Clear()
	if !f.Empty() {
		t.Error("Clear should remove all actions")
	}

	var zero InputFrame
	if zero.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionDetonate)
	if !zero.Has(ActionDetonate) {
		t.Error("Set on zero frame should allocate")
	}
	if ActionDetonate.String() != "Detonate" {
		t.Errorf("String() = %q, expected Detonate", ActionDetonate.String())
	}
}

func TestRuntimeConfigSeconds(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Seconds(1.5); got != 90 {
		t.Errorf("Seconds(1.5) = %d, expected 90", got)
	}
	cfg.TickRate = 0
	if got := cfg.Seconds(2); got != 120 {
		t.Errorf("Seconds(2) with zero rate = %d, expected 120", got)
	}
}
