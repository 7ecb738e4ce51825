package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateConfirmReset:
		return m.viewConfirmReset()
	case StateJournal:
		if m.journalForm != nil {
			return docStyle.Render(m.journalForm.View())
		}
	}

	return m.viewCounting()
}

func (m Model) viewCounting() string {
	counter := m.current()

	title := titleStyle
	if counter.Color != "" {
		title = title.Foreground(lipgloss.Color(counter.Color))
	}

	nav := ""
	if len(m.counters) > 1 {
		nav = fmt.Sprintf("  (%d/%d)", m.index+1, len(m.counters))
	}

	lines := []string{
		title.Render(counter.Name) + nav,
	}
	if counter.Mantra != "" {
		lines = append(lines, mantraStyle.Render(counter.Mantra))
	}

	percent := 0.0
	if m.summary.CycleLength > 0 {
		percent = float64(m.summary.CurrentCount) / float64(m.summary.CycleLength)
	}

	lines = append(lines,
		"",
		countStyle.Render(fmt.Sprintf("%d / %d", m.summary.CurrentCount, m.summary.CycleLength)),
		m.cycleBar.ViewAs(percent),
		"",
		m.viewGoal(),
		streakStyle.Render(fmt.Sprintf("Streak: %d day(s)", m.streak)),
	)

	if m.celebration != "" {
		lines = append(lines, "", celebrationStyle.Render(m.celebration))
	}
	if m.errMsg != "" {
		lines = append(lines, "", dangerStyle.Render(m.errMsg))
	}

	lines = append(lines, "", m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewGoal() string {
	goal := fmt.Sprintf("Today: %d/%d cycles", m.summary.TodayCompletedCycles, m.summary.DailyGoal)
	if m.summary.TodayCompletedCycles >= m.summary.DailyGoal {
		return goalMetStyle.Render(goal + "  ✓ goal met")
	}
	return goal
}

func (m Model) viewConfirmReset() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("End this session and reset the bead count?"),
			"Today's completed cycles are kept.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
