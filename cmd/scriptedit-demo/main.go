package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/scriptedit"
	"github.com/iw2rmb/scriptedit/document"
	"github.com/iw2rmb/scriptedit/editor"
)

// systemClipboard adapts the OS clipboard to editor.Clipboard.
type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }
func (systemClipboard) WriteText(s string) error  { return clipboard.WriteAll(s) }

var palette = []string{"#000000", "#d73a49", "#22863a", "#005cc5"}

type status struct {
	format  document.FormatState
	changes int
}

type model struct {
	editor editor.Model
	status *status
	log    *zap.Logger
	color  int
}

func newModel(cfg demoConfig, log *zap.Logger) model {
	st := &status{}
	ecfg := editor.Config{
		Content:         cfg.InitialContent,
		Placeholder:     "Type a call script. Use [token] for placeholders.",
		AutoFocus:       true,
		AutoFormatDelay: cfg.AutoFormatDelay,
		Style:           editor.DefaultStyle(),
		Clipboard:       systemClipboard{},
		Logger:          log,
		OnContentChange: func(markup string) {
			st.changes++
			log.Debug("content changed", zap.Int("bytes", len(markup)))
		},
		OnFormatChange: func(fs document.FormatState) { st.format = fs },
		OnKeyDown: func(msg tea.KeyMsg) bool {
			log.Debug("key passed through", zap.String("key", msg.String()))
			return false
		},
	}
	m := model{editor: editor.New(ecfg), status: st, log: log}
	st.format = m.editor.FormatState()
	return m
}

func (m model) Init() tea.Cmd { return m.editor.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor = m.editor.SetSize(msg.Width, editorHeight(msg.Height))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			m.editor = m.editor.Close()
			return m, tea.Quit
		case "esc":
			if m.editor.Focused() {
				m.editor = m.editor.Blur()
			} else {
				m.editor = m.editor.Focus()
			}
			return m, nil
		case "ctrl+k":
			m.editor = m.editor.Exec(document.CodeBlock())
			return m, nil
		case "alt+up":
			m.editor = m.editor.Exec(document.StepSize(1))
			return m, nil
		case "alt+down":
			m.editor = m.editor.Exec(document.StepSize(-1))
			return m, nil
		case "alt+l":
			m.color = (m.color + 1) % len(palette)
			m.editor = m.editor.Exec(document.Color(palette[m.color]))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) View() string {
	fs := m.status.format
	flags := []string{}
	for _, f := range []struct {
		on   bool
		name string
	}{
		{fs.Bold, "bold"},
		{fs.Italic, "italic"},
		{fs.InlineCode, "code"},
		{fs.CodeBlock, "block"},
	} {
		if f.on {
			flags = append(flags, f.name)
		}
	}
	size := fmt.Sprintf("%dpx", fs.FontSize)
	if _, ok := fs.LadderIndex(); !ok {
		size += " (off ladder)"
	}

	bar := strings.Join([]string{
		"",
		fmt.Sprintf("format: [%s] size: %s color: %s changes: %d",
			strings.Join(flags, " "), size, fs.Color, m.status.changes),
		"ctrl+b bold  alt+i italic  alt+c code  ctrl+k block  alt+↑/↓ size  alt+l color  esc focus  ctrl+q quit",
	}, "\n")
	return m.editor.View() + bar
}

func editorHeight(total int) int {
	h := total - 3
	if h < 0 {
		return 0
	}
	return h
}

func main() {
	cfg := loadConfig()
	log := newFileLogger(cfg.LogFilePath, cfg.Debug)
	defer func() { _ = log.Sync() }()
	log.Info("starting demo", zap.String("version", scriptedit.Version()))

	p := tea.NewProgram(newModel(cfg, log), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
