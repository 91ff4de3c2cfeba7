package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/texterhq/texter-go/internal/core/domain"
	"github.com/texterhq/texter-go/internal/core/service"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ta.SetWidth(msg.Width)
		// Tab bar + status line take a row each.
		m.ta.SetHeight(msg.Height - 2)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeRecovery:
			return m.updateRecovery(msg)
		case modeSaveAs, modeOpen:
			return m.updatePathPrompt(msg)
		case modeConfirmClose, modeConfirmQuit:
			return m.updateConfirm(msg)
		default:
			return m.updateEdit(msg)
		}
	}

	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// updateRecovery handles the aggregated recovery prompt.
func (m Model) updateRecovery(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		docs, err := m.svc.RecoveryDecision(m.ctx, true)
		if err != nil {
			m.message = "recovery failed"
		}
		m.mode = modeEdit
		if len(docs) > 0 {
			m.focusDocument(docs[0])
		} else {
			m.openFreshDocument()
		}
		return m, nil

	case "n", "N", "esc":
		// Declined: the orphans stay on disk for a later run.
		if _, err := m.svc.RecoveryDecision(m.ctx, false); err != nil {
			m.message = "recovery failed"
		}
		m.mode = modeEdit
		m.openFreshDocument()
		return m, nil

	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// updatePathPrompt handles the save-as and open path inputs.
func (m Model) updatePathPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		path := m.input.Value()
		if path == "" {
			return m, nil
		}
		prompt := m.mode
		m.mode = modeEdit
		m.input.Blur()

		if prompt == modeOpen {
			doc, err := m.svc.OpenDocument(m.ctx, &service.OpenDocumentRequest{Path: path})
			if err != nil {
				m.message = "open failed: " + domain.GetErrorCode(err)
				return m, nil
			}
			m.focusDocument(doc)
			m.message = "opened " + doc.Title
			return m, nil
		}

		doc, err := m.svc.SaveAs(m.ctx, &service.SaveAsRequest{ID: m.activeID, Path: path})
		if err != nil {
			m.message = "save failed: " + domain.GetErrorCode(err)
			return m, nil
		}
		m.message = "saved " + doc.Title
		return m, nil

	case "esc":
		m.mode = modeEdit
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateConfirm handles the discard-changes confirmations.
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	confirm := m.mode

	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = modeEdit
		if confirm == modeConfirmQuit {
			m.svc.ExitConfirmed(m.ctx)
			return m, tea.Quit
		}
		return m.closeActive()

	case "n", "N", "esc":
		m.mode = modeEdit
		return m, nil
	}
	return m, nil
}

// updateEdit handles normal editing keys.
func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.New):
		m.openFreshDocument()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		m.mode = modeOpen
		m.input.SetValue("")
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m.saveActive()

	case key.Matches(msg, m.keys.Close):
		doc := m.active()
		if doc != nil && doc.Dirty {
			m.mode = modeConfirmClose
			return m, nil
		}
		return m.closeActive()

	case key.Matches(msg, m.keys.Quit):
		if m.anyDirty() {
			m.mode = modeConfirmQuit
			return m, nil
		}
		m.svc.ExitConfirmed(m.ctx)
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextDoc):
		m.cycleDocument(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevDoc):
		m.cycleDocument(-1)
		return m, nil

	case msg.String() == "ctrl+c":
		if m.anyDirty() {
			m.mode = modeConfirmQuit
			return m, nil
		}
		m.svc.ExitConfirmed(m.ctx)
		return m, tea.Quit
	}

	// Everything else edits the buffer.
	var cmd tea.Cmd
	before := m.ta.Value()
	m.ta, cmd = m.ta.Update(msg)

	if after := m.ta.Value(); after != before && m.activeID != "" {
		if err := m.svc.Edit(m.ctx, &service.EditRequest{ID: m.activeID, Content: after}); err != nil {
			m.message = "edit rejected: " + domain.GetErrorCode(err)
		}
	}

	return m, cmd
}

// saveActive saves the focused document, falling back to the path
// prompt for documents that were never saved.
func (m Model) saveActive() (tea.Model, tea.Cmd) {
	if m.activeID == "" {
		return m, nil
	}

	doc, err := m.svc.Save(m.ctx, m.activeID)
	if err != nil {
		if domain.IsDomainError(err, "TX-DOC-4002") {
			m.mode = modeSaveAs
			m.input.SetValue("")
			m.input.Focus()
			return m, nil
		}
		m.message = "save failed: " + domain.GetErrorCode(err)
		return m, nil
	}

	m.message = "saved " + doc.Title
	return m, nil
}

// closeActive closes the focused document and moves focus to a neighbor.
func (m Model) closeActive() (tea.Model, tea.Cmd) {
	if m.activeID == "" {
		return m, nil
	}

	if err := m.svc.CloseConfirmed(m.ctx, m.activeID); err != nil {
		m.message = "close failed: " + domain.GetErrorCode(err)
		return m, nil
	}

	docs := m.svc.List(m.ctx)
	if len(docs) == 0 {
		m.svc.ExitConfirmed(m.ctx)
		return m, tea.Quit
	}

	m.focusDocument(docs[len(docs)-1])
	return m, nil
}

// anyDirty reports whether any open document has unsaved changes.
func (m *Model) anyDirty() bool {
	for _, doc := range m.svc.List(m.ctx) {
		if doc.Dirty {
			return true
		}
	}
	return false
}
