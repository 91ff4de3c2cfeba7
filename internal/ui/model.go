package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/texterhq/texter-go/internal/core/domain"
	"github.com/texterhq/texter-go/internal/core/service"
	"github.com/texterhq/texter-go/internal/telemetry/logger"
)

// mode selects what the keyboard currently drives.
type mode int

const (
	modeEdit mode = iota
	modeRecovery
	modeSaveAs
	modeOpen
	modeConfirmClose
	modeConfirmQuit
)

// Model is the Bubble Tea model for the editor.
type Model struct {
	svc  *service.Editor
	ctx  context.Context
	keys keyMap

	ta    textarea.Model
	input textinput.Model

	mode     mode
	activeID string
	message  string

	// recoveryCount is the orphan count from the startup scan; it
	// drives the aggregated prompt shown before anything else.
	recoveryCount int

	width  int
	height int
}

// New creates the UI model. recoveryCount comes from the editor's
// Startup scan; a nonzero count opens the recovery prompt first.
func New(svc *service.Editor, recoveryCount int) Model {
	ta := textarea.New()
	ta.Placeholder = "Start typing…"
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.Focus()

	input := textinput.New()
	input.Placeholder = "path/to/file.txt"

	m := Model{
		svc:           svc,
		ctx:           context.Background(),
		keys:          defaultKeyMap(),
		ta:            ta,
		input:         input,
		recoveryCount: recoveryCount,
	}

	if recoveryCount > 0 {
		m.mode = modeRecovery
	} else {
		m.openFreshDocument()
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// active returns the currently displayed document, or nil.
func (m *Model) active() *domain.Document {
	if m.activeID == "" {
		return nil
	}
	doc, err := m.svc.Get(m.ctx, m.activeID)
	if err != nil {
		return nil
	}
	return doc
}

// openFreshDocument creates an untitled document and focuses it.
func (m *Model) openFreshDocument() {
	doc, err := m.svc.NewDocument(m.ctx)
	if err != nil {
		logger.Error("new document failed", "error", err)
		m.message = "could not create document"
		return
	}
	m.focusDocument(doc)
}

// focusDocument loads a document into the textarea.
func (m *Model) focusDocument(doc *domain.Document) {
	m.activeID = doc.ID
	m.ta.SetValue(doc.Content)
	m.ta.CursorEnd()
}

// cycleDocument moves focus by delta through the creation-ordered list.
func (m *Model) cycleDocument(delta int) {
	docs := m.svc.List(m.ctx)
	if len(docs) < 2 {
		return
	}

	idx := 0
	for i, doc := range docs {
		if doc.ID == m.activeID {
			idx = i
			break
		}
	}

	idx = (idx + delta + len(docs)) % len(docs)
	m.focusDocument(docs[idx])
}
