package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		barWidth := msg.Width - 8
		if barWidth > 60 {
			barWidth = 60
		}
		if barWidth > 0 {
			m.cycleBar.Width = barWidth
		}
		return m, nil

	case clearCelebrationMsg:
		m.celebration = ""
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateConfirmReset:
			return m.updateConfirmReset(msg)
		case StateJournal:
			return m.updateJournal(msg)
		default:
			return m.updateCounting(msg)
		}
	}

	if m.state == StateJournal && m.journalForm != nil {
		form, cmd := m.journalForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.journalForm = f
		}
		return m, cmd
	}

	return m, nil
}

func (m Model) updateCounting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Tap):
		outcome, err := m.service.Tap(m.current().ID)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.refresh()
		if outcome.Celebrate {
			return m, m.celebrate(outcome)
		}

	case key.Matches(msg, m.keys.Undo):
		if _, err := m.service.UndoTap(m.current().ID); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.refresh()

	case key.Matches(msg, m.keys.Reset):
		m.state = StateConfirmReset

	case key.Matches(msg, m.keys.Next):
		m.index = (m.index + 1) % len(m.counters)
		m.refresh()

	case key.Matches(msg, m.keys.Prev):
		m.index = (m.index - 1 + len(m.counters)) % len(m.counters)
		m.refresh()

	case key.Matches(msg, m.keys.Journal):
		m.journalForm = m.newJournalForm()
		m.state = StateJournal
		return m, m.journalForm.Init()
	}

	return m, nil
}

func (m Model) updateConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if _, err := m.service.ResetCycle(m.current().ID); err != nil {
			m.errMsg = err.Error()
		}
		m.refresh()
		m.state = StateCounting
	case "n", "N", "q", "esc":
		m.state = StateCounting
	}
	return m, nil
}

func (m Model) updateJournal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.state = StateCounting
		m.journalForm = nil
		return m, nil
	}

	form, cmd := m.journalForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.journalForm = f
	}

	if m.journalForm.State == huh.StateCompleted {
		if m.journalText != "" {
			if _, err := m.service.AddJournalEntry(m.current().ID, "", m.journalText); err != nil {
				m.errMsg = err.Error()
			}
		}
		m.state = StateCounting
		m.journalForm = nil
	}

	return m, cmd
}
