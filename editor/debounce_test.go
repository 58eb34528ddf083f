package editor

import (
	"testing"
	"time"
)

func TestDebouncer_OnlyLatestTickFires(t *testing.T) {
	d := newDebouncer(time.Millisecond)
	first := d.schedule()().(autoFormatMsg)
	second := d.schedule()().(autoFormatMsg)

	if d.fire(first) {
		t.Fatalf("stale tick fired")
	}
	if !d.fire(second) {
		t.Fatalf("current tick did not fire")
	}
	if d.fire(second) {
		t.Fatalf("tick fired twice")
	}
}

func TestDebouncer_CancelInvalidatesPendingTick(t *testing.T) {
	d := newDebouncer(time.Millisecond)
	msg := d.schedule()().(autoFormatMsg)
	d.cancel()
	if d.pending || d.fire(msg) {
		t.Fatalf("cancelled tick fired")
	}
}

func TestDebouncer_InstancesDoNotShareTicks(t *testing.T) {
	a := newDebouncer(time.Millisecond)
	b := newDebouncer(time.Millisecond)
	msg := a.schedule()().(autoFormatMsg)
	b.schedule()
	if b.fire(msg) {
		t.Fatalf("tick from another instance fired")
	}
}
