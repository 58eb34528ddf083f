package editor

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastDebounceID atomic.Int64

// autoFormatMsg fires when a debounce window elapses.
type autoFormatMsg struct {
	id  int64
	tag int
}

// debouncer keeps at most one auto-format pass pending. Every schedule or
// cancel bumps tag, which invalidates ticks already in flight.
type debouncer struct {
	id      int64
	tag     int
	delay   time.Duration
	pending bool
}

func newDebouncer(delay time.Duration) debouncer {
	return debouncer{id: lastDebounceID.Add(1), delay: delay}
}

func (d *debouncer) schedule() tea.Cmd {
	if d.delay < 0 {
		return nil
	}
	d.tag++
	d.pending = true
	id, tag := d.id, d.tag
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return autoFormatMsg{id: id, tag: tag}
	})
}

func (d *debouncer) cancel() {
	d.tag++
	d.pending = false
}

// fire reports whether msg is the current tick and clears the pending state.
func (d *debouncer) fire(msg autoFormatMsg) bool {
	if msg.id != d.id || msg.tag != d.tag || !d.pending {
		return false
	}
	d.pending = false
	return true
}
