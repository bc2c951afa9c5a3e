package app

// Cursor is the selection and scroll position over the current repository
// list. Selected stays within [0, length) while the list is non-empty, and
// the visible window [Offset, Offset+window) always contains Selected after
// any navigation operation.
type Cursor struct {
	Selected int
	Offset   int
}

// MoveUp moves the selection up one row, saturating at the top
func MoveUp(c Cursor, length, window int) Cursor {
	if c.Selected > 0 {
		c.Selected--
	}
	return EnsureVisible(c, length, window)
}

// MoveDown moves the selection down one row, saturating at the bottom
func MoveDown(c Cursor, length, window int) Cursor {
	if c.Selected < length-1 {
		c.Selected++
	}
	return EnsureVisible(c, length, window)
}

// Next moves the selection down one row, wrapping to the top at the end.
// Used by minimal-mode callers; arrow keys use the saturating variants.
func Next(c Cursor, length, window int) Cursor {
	if length > 0 {
		c.Selected = (c.Selected + 1) % length
	}
	return EnsureVisible(c, length, window)
}

// Prev moves the selection up one row, wrapping to the bottom at the top
func Prev(c Cursor, length, window int) Cursor {
	if length > 0 {
		if c.Selected == 0 {
			c.Selected = length - 1
		} else {
			c.Selected--
		}
	}
	return EnsureVisible(c, length, window)
}

// PageUp moves the selection up by one window, clamped to the first row
func PageUp(c Cursor, length, window int) Cursor {
	c.Selected -= window
	if c.Selected < 0 {
		c.Selected = 0
	}
	return EnsureVisible(c, length, window)
}

// PageDown moves the selection down by one window, clamped to the last row
func PageDown(c Cursor, length, window int) Cursor {
	c.Selected += window
	if c.Selected > length-1 {
		c.Selected = length - 1
	}
	if c.Selected < 0 {
		c.Selected = 0
	}
	return EnsureVisible(c, length, window)
}

// Home jumps to the first row
func Home(c Cursor, length, window int) Cursor {
	c.Selected = 0
	return EnsureVisible(c, length, window)
}

// End jumps to the last row
func End(c Cursor, length, window int) Cursor {
	if length > 0 {
		c.Selected = length - 1
	}
	return EnsureVisible(c, length, window)
}

// EnsureVisible scrolls the window so the selection is inside it. It is
// idempotent and self-healing: it also repairs a cursor left pointing past
// the end of a list that shrank underneath it.
func EnsureVisible(c Cursor, length, window int) Cursor {
	if length <= 0 {
		return Cursor{}
	}
	if window < 1 {
		window = 1
	}
	if c.Selected >= length {
		c.Selected = length - 1
	}
	if c.Selected < 0 {
		c.Selected = 0
	}
	if c.Selected < c.Offset {
		c.Offset = c.Selected
	}
	if c.Selected >= c.Offset+window {
		c.Offset = c.Selected - window + 1
	}
	if c.Offset < 0 {
		c.Offset = 0
	}
	return c
}
