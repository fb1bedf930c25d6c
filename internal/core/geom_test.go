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
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		val, n, expected int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 0},
		{-1, 5, 4},
		{-6, 5, 4},
		{3, 0, 0},
	}

	for _, tc := range tests {
		result := Wrap(tc.val, tc.n)
		if result != tc.expected {
			t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.val, tc.n, result, tc.expected)
		}
	}
}
