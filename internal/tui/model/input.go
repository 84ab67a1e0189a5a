package model

import "unicode/utf8"

// TextInput is a single line editor. Typed characters are always appended;
// the cursor only decides what Delete removes.
type TextInput struct {
	Value  string
	Cursor int
}

// Len is the length of Value in runes.
func (t *TextInput) Len() int {
	return utf8.RuneCountInString(t.Value)
}

// Insert appends r and moves the cursor one step right.
func (t *TextInput) Insert(r rune) {
	t.Value += string(r)
	t.Right()
}

// Delete removes the rune before the cursor.
func (t *TextInput) Delete() {
	if t.Cursor == 0 {
		return
	}
	runes := []rune(t.Value)
	t.Value = string(runes[:t.Cursor-1]) + string(runes[t.Cursor:])
	t.Left()
}

// Left moves the cursor left, stopping at 0.
func (t *TextInput) Left() {
	t.Cursor = clamp(t.Cursor-1, 0, t.Len())
}

// Right moves the cursor right, stopping at Len.
func (t *TextInput) Right() {
	t.Cursor = clamp(t.Cursor+1, 0, t.Len())
}

// AtStart reports whether the cursor is before the first rune.
func (t *TextInput) AtStart() bool { return t.Cursor == 0 }

// AtEnd reports whether the cursor is after the last rune.
func (t *TextInput) AtEnd() bool { return t.Cursor >= t.Len() }

// Reset clears the value and the cursor.
func (t *TextInput) Reset() {
	t.Value = ""
	t.Cursor = 0
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
