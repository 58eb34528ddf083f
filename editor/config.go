package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/iw2rmb/scriptedit/document"
)

// DefaultAutoFormatDelay is the idle period after the last edit before the
// auto-format pass runs.
const DefaultAutoFormatDelay = time.Second

// Config configures the editor Model.
type Config struct {
	// Content is the initial serialized markup.
	Content string
	// Placeholder is rendered while the document has no visible text.
	Placeholder string
	// AutoFocus focuses the editor on creation and puts the caret at the end.
	AutoFocus bool

	// OnContentChange receives the new markup after every committed mutation.
	// It is never called for content set by the host.
	OnContentChange func(markup string)
	// OnFormatChange receives the format state whenever it changes.
	OnFormatChange func(state document.FormatState)
	// OnKeyDown sees every key the editor does not claim, before native
	// editing. Returning true consumes the key.
	OnKeyDown func(msg tea.KeyMsg) bool

	// AutoFormatDelay is the debounce window of the auto-format pass.
	// Zero means DefaultAutoFormatDelay; a negative value disables the pass.
	AutoFormatDelay time.Duration

	KeyMap KeyMap
	Style  Style

	// Optional clipboard used for copy/cut/paste.
	Clipboard Clipboard

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

func normalizeConfig(cfg Config) Config {
	if cfg.AutoFormatDelay == 0 {
		cfg.AutoFormatDelay = DefaultAutoFormatDelay
	}
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}
