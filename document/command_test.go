package document

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustApply(t *testing.T, d *Document, cmd Command) Result {
	t.Helper()
	res, err := d.Apply(cmd)
	if err != nil {
		t.Fatalf("Apply(%v): %v", cmd.Op, err)
	}
	return res
}

func TestToggleBold_WrapsThenUnwraps(t *testing.T) {
	d := Parse("Hello world")
	d.SetSelection(0, 5)

	res := mustApply(t, d, Bold())
	if diff := cmp.Diff("<b>Hello</b> world", res.Markup); diff != "" {
		t.Fatalf("after first toggle (-want +got):\n%s", diff)
	}
	if !res.Changed || !res.Format.Bold {
		t.Fatalf("result=%+v, want changed and bold", res)
	}

	res = mustApply(t, d, Bold())
	if diff := cmp.Diff("Hello world", res.Markup); diff != "" {
		t.Fatalf("after second toggle (-want +got):\n%s", diff)
	}
	if res.Format.Bold {
		t.Fatalf("expected bold inactive after second toggle")
	}
	if start, end, _ := d.SelectionOffsets(); start != 0 || end != 5 {
		t.Fatalf("selection=(%d,%d), want (0,5)", start, end)
	}
}

func TestToggle_IdempotentOverUnchangedRange(t *testing.T) {
	inputs := []string{
		"Hello world",
		"a<b>bc</b>d",
		"<i>abc</i>def",
		"x" + inlineCodeOpenTag + "yz</code>w",
	}
	cmds := []Command{Bold(), Italic(), InlineCode()}
	for _, in := range inputs {
		for _, cmd := range cmds {
			d := Parse(in)
			d.SetSelection(1, 3)
			mustApply(t, d, cmd)
			res := mustApply(t, d, cmd)
			if diff := cmp.Diff(in, res.Markup); diff != "" {
				t.Fatalf("%v twice over %q (-want +got):\n%s", cmd.Op, in, diff)
			}
			if got := d.Text(); got != Parse(in).Text() {
				t.Fatalf("text changed to %q", got)
			}
		}
	}
}

func TestToggleBold_PartiallyBoldRangeBecomesOneMark(t *testing.T) {
	d := Parse("a<b>bc</b>d")
	d.SetSelection(0, 4)
	res := mustApply(t, d, Bold())
	if diff := cmp.Diff("<b>abcd</b>", res.Markup); diff != "" {
		t.Fatalf("markup (-want +got):\n%s", diff)
	}
}

func TestToggleItalic_AcrossBoundaryUsesFallback(t *testing.T) {
	d := Parse("a<b>bc</b>d")
	d.SetSelection(2, 4)

	res := mustApply(t, d, Italic())
	if diff := cmp.Diff("a<b>b</b><i><b>c</b>d</i>", res.Markup); diff != "" {
		t.Fatalf("after wrap (-want +got):\n%s", diff)
	}
	res = mustApply(t, d, Italic())
	if diff := cmp.Diff("a<b>bc</b>d", res.Markup); diff != "" {
		t.Fatalf("after unwrap (-want +got):\n%s", diff)
	}
}

func TestSurround_RejectsDifferentParents(t *testing.T) {
	d := Parse("a<b>b</b>")
	runs := d.Root().TextRuns()
	w := newElement(KindItalic)
	err := surround(pointBefore(runs[0]), pointAfter(runs[1]), w, w)
	if !errors.Is(err, errCrossBoundary) {
		t.Fatalf("err=%v, want %v", err, errCrossBoundary)
	}
	if got := d.Markup(); got != "a<b>b</b>" {
		t.Fatalf("markup changed to %q", got)
	}
}

func TestToggleInlineCode_UnwrapsSelectedToken(t *testing.T) {
	d := Parse("see " + inlineCodeOpenTag + "[id]</code> now")
	d.SetSelection(4, 8)
	res := mustApply(t, d, InlineCode())
	if diff := cmp.Diff("see [id] now", res.Markup); diff != "" {
		t.Fatalf("markup (-want +got):\n%s", diff)
	}
}

func TestToggleInlineCode_CollapsedInsertsEmptyMarkForTyping(t *testing.T) {
	d := Parse("ab")
	d.SetCaret(1)

	res := mustApply(t, d, InlineCode())
	if want := "a" + inlineCodeOpenTag + "</code>b"; res.Markup != want {
		t.Fatalf("markup=%q, want %q", res.Markup, want)
	}
	if !res.Format.InlineCode {
		t.Fatalf("expected inline code active at the caret")
	}
	if got := d.Text(); got != "ab" {
		t.Fatalf("text=%q, want %q", got, "ab")
	}

	d.InsertText("x")
	if want := "a" + inlineCodeOpenTag + "x</code>b"; d.Markup() != want {
		t.Fatalf("markup=%q, want %q", d.Markup(), want)
	}
}

func TestToggleBold_CollapsedTwiceRestoresMarkup(t *testing.T) {
	d := Parse("ab")
	d.SetCaret(1)
	mustApply(t, d, Bold())
	res := mustApply(t, d, Bold())
	if res.Markup != "ab" {
		t.Fatalf("markup=%q, want %q", res.Markup, "ab")
	}
	if res.Format.Bold {
		t.Fatalf("expected bold inactive")
	}
}

func TestToggleBold_CollapsedInsideMarkStepsOut(t *testing.T) {
	d := Parse("<b>abcd</b>")
	d.SetCaret(2)
	mustApply(t, d, Bold())
	d.InsertText("x")
	if diff := cmp.Diff("<b>ab</b>x<b>cd</b>", d.Markup()); diff != "" {
		t.Fatalf("markup (-want +got):\n%s", diff)
	}
}

func TestToggleInlineCode_NoOpInsideCodeBlock(t *testing.T) {
	in := codeBlockOpenTag + "<code>abc</code></pre>"
	d := Parse(in)
	d.SetSelection(0, 2)
	res := mustApply(t, d, InlineCode())
	if res.Changed || res.Markup != in {
		t.Fatalf("result=%+v, want unchanged", res)
	}
}

func TestToggle_NoSelectionIsNoOp(t *testing.T) {
	d := Parse("abc")
	for _, cmd := range []Command{Bold(), Italic(), InlineCode(), CodeBlock()} {
		res := mustApply(t, d, cmd)
		if res.Changed {
			t.Fatalf("%v changed markup without a selection", cmd.Op)
		}
	}
}

func TestToggleCodeBlock_WrapThenFlatten(t *testing.T) {
	d := Parse("one two")
	d.SetSelection(0, 3)

	res := mustApply(t, d, CodeBlock())
	want := codeBlockOpenTag + "<code>one</code></pre> two"
	if diff := cmp.Diff(want, res.Markup); diff != "" {
		t.Fatalf("after wrap (-want +got):\n%s", diff)
	}
	if !res.Format.CodeBlock || res.Format.InlineCode {
		t.Fatalf("format=%+v, want code block only", res.Format)
	}

	res = mustApply(t, d, CodeBlock())
	if diff := cmp.Diff("one two", res.Markup); diff != "" {
		t.Fatalf("after flatten (-want +got):\n%s", diff)
	}
}

func TestToggleCodeBlock_FlattenDropsNestedMarks(t *testing.T) {
	d := Parse("x" + codeBlockOpenTag + "<code>a<b>b</b>c</code></pre>")
	d.SetCaret(2)
	res := mustApply(t, d, CodeBlock())
	if res.Markup != "xabc" {
		t.Fatalf("markup=%q, want %q", res.Markup, "xabc")
	}
}

func TestToggleCodeBlock_CollapsedInsertsEmptyBlock(t *testing.T) {
	d := Parse("ab")
	d.SetCaret(2)
	res := mustApply(t, d, CodeBlock())
	want := "ab" + codeBlockOpenTag + "<code></code></pre>"
	if res.Markup != want {
		t.Fatalf("markup=%q, want %q", res.Markup, want)
	}
	d.InsertText("go")
	want = "ab" + codeBlockOpenTag + "<code>go</code></pre>"
	if d.Markup() != want {
		t.Fatalf("markup=%q, want %q", d.Markup(), want)
	}
}

func TestStepFontSize_CollapsedMovesAlongLadder(t *testing.T) {
	d := Parse("Hello")
	d.SetCaret(2)
	if i, _ := d.FormatState().LadderIndex(); i != 1 {
		t.Fatalf("initial ladder index=%d, want 1", i)
	}

	mustApply(t, d, StepSize(1))
	res := mustApply(t, d, StepSize(1))
	if res.Format.FontSize != 20 {
		t.Fatalf("font size=%d, want 20", res.Format.FontSize)
	}
	if i, ok := res.Format.LadderIndex(); !ok || i != 3 {
		t.Fatalf("ladder index=(%d,%v), want (3,true)", i, ok)
	}
	if res.Changed || res.Markup != "Hello" {
		t.Fatalf("collapsed size change touched markup: %+v", res)
	}
}

func TestStepFontSize_LadderEnds(t *testing.T) {
	for i := range FontSizeLadder {
		d := New()
		mustApply(t, d, FontSize(FontSizeLadder[i]))

		up := mustApply(t, d, StepSize(1)).Format
		if got, _ := up.LadderIndex(); got != min(i+1, 4) {
			t.Fatalf("from %d up: index=%d, want %d", i, got, min(i+1, 4))
		}

		mustApply(t, d, FontSize(FontSizeLadder[i]))
		down := mustApply(t, d, StepSize(-1)).Format
		if got, _ := down.LadderIndex(); got != max(i-1, 0) {
			t.Fatalf("from %d down: index=%d, want %d", i, got, max(i-1, 0))
		}
	}
}

func TestStepFontSize_OffLadderClampsToNearest(t *testing.T) {
	cases := []struct {
		from, dir, want int
	}{
		{from: 17, dir: 1, want: 18},
		{from: 17, dir: -1, want: 16},
		{from: 30, dir: 1, want: 24},
		{from: 30, dir: -1, want: 24},
		{from: 10, dir: 1, want: 14},
		{from: 10, dir: -1, want: 14},
	}
	for _, tc := range cases {
		d := New()
		mustApply(t, d, FontSize(tc.from))
		got := mustApply(t, d, StepSize(tc.dir)).Format.FontSize
		if got != tc.want {
			t.Fatalf("step %d from %d: got %d, want %d", tc.dir, tc.from, got, tc.want)
		}
	}
}

func TestStepFontSize_RangeReplacesSpan(t *testing.T) {
	d := Parse("Hello")
	d.SetSelection(0, 5)

	res := mustApply(t, d, StepSize(1))
	if want := `<span style="font-size: 18px">Hello</span>`; res.Markup != want {
		t.Fatalf("markup=%q, want %q", res.Markup, want)
	}
	res = mustApply(t, d, StepSize(1))
	if want := `<span style="font-size: 20px">Hello</span>`; res.Markup != want {
		t.Fatalf("markup=%q, want %q", res.Markup, want)
	}
	if res.Format.FontSize != 20 {
		t.Fatalf("font size=%d, want 20", res.Format.FontSize)
	}
}

func TestSetColor_RangeWrapsAndNormalizesHex(t *testing.T) {
	d := Parse("abc")
	d.SetSelection(1, 2)
	res := mustApply(t, d, Color("#F00"))
	if want := `a<span style="color: #ff0000">b</span>c`; res.Markup != want {
		t.Fatalf("markup=%q, want %q", res.Markup, want)
	}
	if res.Format.Color != "#ff0000" {
		t.Fatalf("color=%q, want #ff0000", res.Format.Color)
	}
}

func TestApply_InvalidArguments(t *testing.T) {
	d := Parse("abc")
	d.SetSelection(0, 3)
	if _, err := d.Apply(FontSize(0)); !errors.Is(err, ErrInvalidFontSize) {
		t.Fatalf("err=%v, want %v", err, ErrInvalidFontSize)
	}
	if _, err := d.Apply(Color("red")); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("err=%v, want %v", err, ErrInvalidColor)
	}
	if got := d.Markup(); got != "abc" {
		t.Fatalf("markup=%q, want unchanged", got)
	}
}

func TestApply_VersionBumpsOnlyOnChange(t *testing.T) {
	d := Parse("abc")
	d.SetSelection(0, 1)
	mustApply(t, d, Bold())
	if d.Version() != 1 {
		t.Fatalf("version=%d, want 1", d.Version())
	}
	d.SetCaret(1)
	mustApply(t, d, FontSize(20))
	if d.Version() != 1 {
		t.Fatalf("version=%d, want unchanged", d.Version())
	}
}

func TestFormatState_WalksAncestors(t *testing.T) {
	d := Parse(`<span style="font-size: 18px"><b><i>x</i></b></span>` +
		inlineCodeOpenTag + "y</code>" +
		codeBlockOpenTag + "<b><code>z</code></b></pre>")

	if got, want := d.FormatState(), (FormatState{FontSize: 16, Color: "#000000"}); got != want {
		t.Fatalf("no selection: %+v, want %+v", got, want)
	}

	cases := []struct {
		offset int
		want   FormatState
	}{
		{offset: 0, want: FormatState{Bold: true, Italic: true, FontSize: 18, Color: "#000000"}},
		{offset: 1, want: FormatState{InlineCode: true, FontSize: 16, Color: "#000000"}},
		{offset: 2, want: FormatState{Bold: true, CodeBlock: true, FontSize: 16, Color: "#000000"}},
	}
	for _, tc := range cases {
		d.SetCaret(tc.offset)
		if diff := cmp.Diff(tc.want, d.FormatState()); diff != "" {
			t.Fatalf("offset %d (-want +got):\n%s", tc.offset, diff)
		}
	}
}
