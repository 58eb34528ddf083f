package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/scriptedit/document"
)

// Model is a Bubble Tea component that renders and edits a rich-text
// document.
type Model struct {
	cfg Config
	doc *document.Document
	log *zap.Logger

	focused bool
	closed  bool

	viewport   viewport.Model
	cursorLine int

	// markup is the serialization after the last commit.
	markup string
	// lastEmitted is the last markup handed to or received from the host.
	lastEmitted string
	lastFormat  document.FormatState

	debounce debouncer
}

func New(cfg Config) Model {
	cfg = normalizeConfig(cfg)
	m := Model{
		cfg:         cfg,
		doc:         document.Parse(cfg.Content),
		log:         cfg.Logger,
		focused:     cfg.AutoFocus,
		viewport:    viewport.New(0, 0),
		lastEmitted: cfg.Content,
		debounce:    newDebouncer(cfg.AutoFormatDelay),
	}
	if m.focused {
		m.doc.MoveToEnd(false)
	}
	m.markup = m.doc.Markup()
	m.lastFormat = m.doc.FormatState()
	m.rebuildContent()
	return m
}

// Document returns the underlying document. Mutations made through it are
// picked up on the next Update.
func (m Model) Document() *document.Document { return m.doc }

// Content returns the current serialized markup.
func (m Model) Content() string { return m.doc.Markup() }

// FormatState returns the formatting active at the selection anchor.
func (m Model) FormatState() document.FormatState { return m.doc.FormatState() }

// AutoFormatPending reports whether an auto-format pass is scheduled.
func (m Model) AutoFormatPending() bool { return m.debounce.pending }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		if _, ok := m.doc.Selection(); !ok {
			m.doc.MoveToEnd(false)
			m.notifyFormat()
		}
		m.rebuildContent()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// SetContent replaces the document when s differs from the markup the editor
// last emitted. The replace drops the selection and any pending auto-format
// pass. It never calls OnContentChange.
func (m Model) SetContent(s string) Model {
	if s == m.lastEmitted {
		return m
	}
	m.doc = document.Parse(s)
	m.lastEmitted = s
	m.markup = m.doc.Markup()
	m.debounce.cancel()
	m.log.Debug("content replaced by host", zap.Int("bytes", len(s)))
	m.notifyFormat()
	m.rebuildContent()
	return m
}

// Exec applies a formatting command to the current selection.
func (m Model) Exec(cmd document.Command) Model {
	if m.closed {
		return m
	}
	if _, err := m.doc.Apply(cmd); err != nil {
		m.log.Warn("command rejected", zap.Stringer("op", cmd.Op), zap.Error(err))
		return m
	}
	m.commit()
	return m
}

// Close cancels the pending auto-format pass. A closed model ignores input.
func (m Model) Close() Model {
	m.closed = true
	m.debounce.cancel()
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case autoFormatMsg:
		return m.runAutoFormat(msg), nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	default:
		// Pick up mutations the host made through Document.
		m.commit()
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

func (m Model) runAutoFormat(msg autoFormatMsg) Model {
	if m.closed || !m.debounce.fire(msg) {
		m.log.Debug("stale auto-format tick dropped", zap.Int("tag", msg.tag))
		return m
	}
	res, err := m.doc.AutoFormat()
	if err != nil {
		m.log.Warn("auto-format pass aborted", zap.Error(err))
		return m
	}
	if res.Changed {
		m.commit()
	}
	return m
}

// commit reports a changed document to the host and refreshes the view.
func (m *Model) commit() {
	if markup := m.doc.Markup(); markup != m.markup {
		m.markup = markup
		m.lastEmitted = markup
		if m.cfg.OnContentChange != nil {
			m.cfg.OnContentChange(markup)
		}
	}
	m.notifyFormat()
	m.rebuildContent()
}

func (m *Model) notifyFormat() {
	st := m.doc.FormatState()
	if st == m.lastFormat {
		return
	}
	m.lastFormat = st
	if m.cfg.OnFormatChange != nil {
		m.cfg.OnFormatChange(st)
	}
}

func (m *Model) rebuildContent() {
	content, cursorLine := m.renderContent()
	m.cursorLine = cursorLine
	m.viewport.SetContent(content)
	m.followCursor()
}

func (m *Model) followCursor() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 || !m.focused {
		return
	}

	y := m.viewport.YOffset
	if m.cursorLine < y {
		m.viewport.SetYOffset(m.cursorLine)
		return
	}
	if m.cursorLine >= y+h {
		m.viewport.SetYOffset(m.cursorLine - h + 1)
	}
}
