package app

import "testing"

func TestMoveSaturates(t *testing.T) {
	c := Cursor{}
	c = MoveUp(c, 5, 3)
	if c.Selected != 0 {
		t.Errorf("MoveUp at top moved to %d", c.Selected)
	}

	c = Cursor{Selected: 4, Offset: 2}
	c = MoveDown(c, 5, 3)
	if c.Selected != 4 {
		t.Errorf("MoveDown at bottom moved to %d", c.Selected)
	}
}

func TestNextPrevWrap(t *testing.T) {
	c := Cursor{Selected: 4, Offset: 2}
	c = Next(c, 5, 3)
	if c.Selected != 0 || c.Offset != 0 {
		t.Errorf("Next at bottom = %+v, want wrap to top", c)
	}

	c = Prev(c, 5, 3)
	if c.Selected != 4 {
		t.Errorf("Prev at top = %+v, want wrap to bottom", c)
	}
	if c.Offset != 2 {
		t.Errorf("Prev offset = %d, want window ending at selection", c.Offset)
	}
}

func TestPageClamped(t *testing.T) {
	c := Cursor{Selected: 1}
	c = PageUp(c, 10, 4)
	if c.Selected != 0 {
		t.Errorf("PageUp near top = %d, want 0", c.Selected)
	}

	c = Cursor{Selected: 8, Offset: 5}
	c = PageDown(c, 10, 4)
	if c.Selected != 9 {
		t.Errorf("PageDown near bottom = %d, want 9", c.Selected)
	}
}

func TestHomeEnd(t *testing.T) {
	c := Cursor{Selected: 7, Offset: 5}
	c = Home(c, 10, 4)
	if c.Selected != 0 || c.Offset != 0 {
		t.Errorf("Home = %+v", c)
	}

	c = End(c, 10, 4)
	if c.Selected != 9 {
		t.Errorf("End selected = %d", c.Selected)
	}
	if c.Offset != 6 {
		t.Errorf("End offset = %d, want 6", c.Offset)
	}
}

func TestEnsureVisible(t *testing.T) {
	tests := []struct {
		name   string
		in     Cursor
		length int
		window int
		want   Cursor
	}{
		{"already visible", Cursor{Selected: 2, Offset: 1}, 10, 4, Cursor{Selected: 2, Offset: 1}},
		{"above window", Cursor{Selected: 1, Offset: 3}, 10, 4, Cursor{Selected: 1, Offset: 1}},
		{"below window", Cursor{Selected: 8, Offset: 2}, 10, 4, Cursor{Selected: 8, Offset: 5}},
		{"list shrank", Cursor{Selected: 9, Offset: 6}, 4, 4, Cursor{Selected: 3, Offset: 0}},
		{"empty list", Cursor{Selected: 5, Offset: 3}, 0, 4, Cursor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnsureVisible(tt.in, tt.length, tt.window)
			if got != tt.want {
				t.Errorf("EnsureVisible(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnsureVisibleIdempotent(t *testing.T) {
	cursors := []Cursor{
		{Selected: 0, Offset: 0},
		{Selected: 9, Offset: 0},
		{Selected: 3, Offset: 7},
		{Selected: 15, Offset: 2},
	}
	for _, c := range cursors {
		once := EnsureVisible(c, 10, 4)
		twice := EnsureVisible(once, 10, 4)
		if once != twice {
			t.Errorf("EnsureVisible not idempotent for %+v: %+v then %+v", c, once, twice)
		}
	}
}
