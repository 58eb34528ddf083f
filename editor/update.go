package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/scriptedit/document"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.closed {
		return m, nil
	}

	km := m.cfg.KeyMap

	// Claimed shortcuts never reach the host.
	switch {
	case key.Matches(msg, km.Bold):
		return m.Exec(document.Bold()), nil
	case key.Matches(msg, km.Italic):
		return m.Exec(document.Italic()), nil
	case key.Matches(msg, km.InlineCode):
		return m.Exec(document.InlineCode()), nil
	}

	if m.cfg.OnKeyDown != nil && m.cfg.OnKeyDown(msg) {
		// The host may have changed the document or selection.
		m.commit()
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.doc.InsertText(string(msg.Runes))
		return m.edited()
	}

	d := m.doc
	switch {
	case key.Matches(msg, km.Left):
		d.MoveCaret(-1, false)
	case key.Matches(msg, km.Right):
		d.MoveCaret(1, false)
	case key.Matches(msg, km.ShiftLeft):
		d.MoveCaret(-1, true)
	case key.Matches(msg, km.ShiftRight):
		d.MoveCaret(1, true)
	case key.Matches(msg, km.Home):
		d.MoveToStart(false)
	case key.Matches(msg, km.End):
		d.MoveToEnd(false)
	case key.Matches(msg, km.ShiftHome):
		d.MoveToStart(true)
	case key.Matches(msg, km.ShiftEnd):
		d.MoveToEnd(true)

	case key.Matches(msg, km.Backspace):
		if d.DeleteBackward() {
			return m.edited()
		}
	case key.Matches(msg, km.Delete):
		if d.DeleteForward() {
			return m.edited()
		}
	case key.Matches(msg, km.Enter):
		d.InsertText("\n")
		return m.edited()

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		if m.cutSelection() {
			return m.edited()
		}
	case key.Matches(msg, km.Paste):
		if m.pasteClipboard() {
			return m.edited()
		}

	default:
		if msg.Type == tea.KeyTab {
			d.InsertText("\t")
			return m.edited()
		}
		if msg.Type == tea.KeySpace {
			d.InsertText(" ")
			return m.edited()
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			d.InsertText(string(msg.Runes))
			return m.edited()
		}
	}

	m.commit()
	return m, nil
}

// edited commits a text edit and restarts the auto-format window.
func (m Model) edited() (Model, tea.Cmd) {
	m.commit()
	return m, m.debounce.schedule()
}

func (m Model) selectedText() string {
	start, end, ok := m.doc.SelectionOffsets()
	if !ok || start == end {
		return ""
	}
	return m.doc.TextIn(start, end)
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s := m.selectedText()
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		m.log.Warn("clipboard write failed", zap.Error(err))
	}
}

func (m Model) cutSelection() bool {
	if m.cfg.Clipboard == nil {
		return false
	}
	s := m.selectedText()
	if s == "" {
		return false
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		m.log.Warn("clipboard write failed", zap.Error(err))
		return false
	}
	return m.doc.DeleteBackward()
}

func (m Model) pasteClipboard() bool {
	if m.cfg.Clipboard == nil {
		return false
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.log.Warn("clipboard read failed", zap.Error(err))
		return false
	}
	if s == "" {
		return false
	}
	return m.doc.InsertText(s)
}
