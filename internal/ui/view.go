package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	switch m.mode {
	case modeRecovery:
		return m.viewRecoveryPrompt()
	case modeSaveAs:
		return m.viewPathPrompt("Save as")
	case modeOpen:
		return m.viewPathPrompt("Open file")
	case modeConfirmClose:
		return m.viewConfirm("Discard unsaved changes in this document?")
	case modeConfirmQuit:
		return m.viewConfirm("Unsaved changes exist. Quit anyway?")
	}

	return m.tabBar() + "\n" + m.ta.View() + "\n" + m.statusLine()
}

// viewRecoveryPrompt renders the one aggregated recovery question.
func (m Model) viewRecoveryPrompt() string {
	noun := "documents"
	if m.recoveryCount == 1 {
		noun = "document"
	}

	body := fmt.Sprintf(
		"Found %d unsaved %s from a previous session.\n\nRecover? (y/n)",
		m.recoveryCount, noun,
	)
	return m.centered(promptStyle.Render(body))
}

func (m Model) viewPathPrompt(title string) string {
	body := title + "\n\n" + m.input.View() + "\n\nenter to accept, esc to cancel"
	return m.centered(promptStyle.Render(body))
}

func (m Model) viewConfirm(question string) string {
	return m.centered(promptStyle.Render(question + " (y/n)"))
}

func (m Model) centered(block string) string {
	if m.width == 0 {
		return block
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

// tabBar renders one tab per open document in creation order.
func (m Model) tabBar() string {
	docs := m.svc.List(m.ctx)

	tabs := make([]string, 0, len(docs))
	for _, doc := range docs {
		label := doc.DisplayTitle()
		if doc.Recovered {
			label = recoveredMark + " " + doc.Title
		}
		if doc.Dirty {
			label += " " + dirtyMark
		}

		style := tabStyle
		if doc.ID == m.activeID {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(label))
	}

	return strings.Join(tabs, " ")
}

// statusLine renders word/char/line counts and the last message.
func (m Model) statusLine() string {
	doc := m.active()
	if doc == nil {
		return ""
	}

	stats := doc.Stats()
	line := statusStyle.Render(fmt.Sprintf(
		"%s — %d words  %d chars  %d lines",
		doc.DisplayTitle(), stats.Words, stats.Chars, stats.Lines,
	))

	if m.message != "" {
		line += "  " + messageStyle.Render(m.message)
	}
	return line
}
