package document

import "testing"

func TestInsertText_AppendsWithoutSelection(t *testing.T) {
	d := Parse("<b>ab</b>")
	if !d.InsertText("c") {
		t.Fatalf("expected change")
	}
	if got := d.Markup(); got != "<b>abc</b>" {
		t.Fatalf("markup=%q, want %q", got, "<b>abc</b>")
	}
	if start, _, _ := d.SelectionOffsets(); start != 3 {
		t.Fatalf("caret=%d, want 3", start)
	}
}

func TestInsertText_ReplacesSelection(t *testing.T) {
	d := Parse("hello")
	d.SetSelection(1, 4)
	d.InsertText("EY\r\n")
	if got := d.Text(); got != "hEY\no" {
		t.Fatalf("text=%q, want %q", got, "hEY\no")
	}
	if start, end, _ := d.SelectionOffsets(); start != 4 || end != 4 {
		t.Fatalf("caret=(%d,%d), want (4,4)", start, end)
	}
}

func TestInsertText_EmptyDocument(t *testing.T) {
	d := New()
	d.InsertText("hi")
	if got := d.Markup(); got != "hi" {
		t.Fatalf("markup=%q, want %q", got, "hi")
	}
}

func TestInsertText_PendingFontSizeWrapsTypedText(t *testing.T) {
	d := New()
	mustApply(t, d, FontSize(20))

	d.InsertText("hi")
	d.InsertText("!")
	want := `<span style="font-size: 20px">hi!</span>`
	if got := d.Markup(); got != want {
		t.Fatalf("markup=%q, want %q", got, want)
	}
	if got := d.FormatState().FontSize; got != 20 {
		t.Fatalf("font size=%d, want 20", got)
	}
}

func TestInsertText_PendingColorSkipsColoredRun(t *testing.T) {
	d := Parse(`<span style="color: #00ff00">g</span>`)
	mustApply(t, d, Color("#f00"))

	d.InsertText("x")
	want := `<span style="color: #00ff00">gx</span>`
	if got := d.Markup(); got != want {
		t.Fatalf("markup=%q, want %q", got, want)
	}
}

func TestInsertText_GraphemeOffsets(t *testing.T) {
	d := Parse("👍🏽ab")
	d.SetSelection(0, 1)
	mustApply(t, d, Bold())
	if got := d.Markup(); got != "<b>👍🏽</b>ab" {
		t.Fatalf("markup=%q, want %q", got, "<b>👍🏽</b>ab")
	}
	d.SetCaret(1)
	d.InsertText("!")
	if got := d.Text(); got != "👍🏽!ab" {
		t.Fatalf("text=%q, want %q", got, "👍🏽!ab")
	}
}

func TestDeleteBackward_PrunesEmptyMarks(t *testing.T) {
	d := Parse("a<b>c</b>")
	d.SetCaret(2)
	if !d.DeleteBackward() {
		t.Fatalf("expected change")
	}
	if got := d.Markup(); got != "a" {
		t.Fatalf("markup=%q, want %q", got, "a")
	}
	if start, _, _ := d.SelectionOffsets(); start != 1 {
		t.Fatalf("caret=%d, want 1", start)
	}
}

func TestDeleteBackward_KeepsTypingInPrecedingMark(t *testing.T) {
	d := Parse("<b>ab</b>c")
	d.SetCaret(3)
	d.DeleteBackward()
	d.InsertText("!")
	if got := d.Markup(); got != "<b>ab!</b>" {
		t.Fatalf("markup=%q, want %q", got, "<b>ab!</b>")
	}
}

func TestDeleteBackward_AtStartIsNoOp(t *testing.T) {
	d := Parse("ab")
	d.SetCaret(0)
	if d.DeleteBackward() {
		t.Fatalf("expected no change")
	}
	if d.Version() != 0 {
		t.Fatalf("version=%d, want 0", d.Version())
	}
}

func TestDeleteForward_Selection(t *testing.T) {
	d := Parse("he<i>ll</i>o")
	d.SetSelection(1, 4)
	d.DeleteForward()
	if got := d.Markup(); got != "ho" {
		t.Fatalf("markup=%q, want %q", got, "ho")
	}
	d.SetCaret(0)
	d.DeleteForward()
	if got := d.Text(); got != "o" {
		t.Fatalf("text=%q, want %q", got, "o")
	}
}

func TestMoveCaret(t *testing.T) {
	d := Parse("abc")

	d.MoveCaret(1, false)
	assertSelection(t, d, 0, 0)

	d.MoveCaret(2, true)
	assertSelection(t, d, 0, 2)

	d.MoveCaret(1, false)
	assertSelection(t, d, 2, 2)

	d.MoveToEnd(true)
	assertSelection(t, d, 2, 3)

	d.MoveToStart(false)
	assertSelection(t, d, 0, 0)

	d.MoveCaret(-4, false)
	assertSelection(t, d, 0, 0)
}

func assertSelection(t *testing.T, d *Document, start, end int) {
	t.Helper()
	gotStart, gotEnd, ok := d.SelectionOffsets()
	if !ok || gotStart != start || gotEnd != end {
		t.Fatalf("selection=(%d,%d,%v), want (%d,%d,true)", gotStart, gotEnd, ok, start, end)
	}
}
