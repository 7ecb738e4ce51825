package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pbrahmapurd/japa/internal/models"
	"github.com/pbrahmapurd/japa/internal/practice"
)

type SessionState int

const (
	StateCounting SessionState = iota
	StateConfirmReset
	StateJournal
)

// celebrations rotate each time a cycle completes.
var celebrations = []string{
	"Cycle complete. Om shanti.",
	"Another round offered.",
	"The beads have come full circle.",
	"Steady practice, steady mind.",
}

type Model struct {
	service *practice.Service

	counters []models.Counter
	index    int

	summary       practice.Summary
	streak        int
	state         SessionState
	keys          KeyMap
	help          help.Model
	cycleBar      progress.Model
	celebration   string
	celebrationIx int
	journalForm   *huh.Form
	journalText   string
	errMsg        string
	quitting      bool
	width         int
	height        int
}

// clearCelebrationMsg removes the celebration banner after it has been shown.
type clearCelebrationMsg struct{}

func NewModel(service *practice.Service, counter models.Counter) Model {
	counters, err := service.Counters()
	if err != nil || len(counters) == 0 {
		counters = []models.Counter{counter}
	}

	index := 0
	for i, c := range counters {
		if c.ID == counter.ID {
			index = i
			break
		}
	}

	m := Model{
		service:  service,
		counters: counters,
		index:    index,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		cycleBar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) current() models.Counter {
	return m.counters[m.index]
}

// refresh re-reads today's summary and streak for the current counter.
func (m *Model) refresh() {
	summary, err := m.service.TodaySummary(m.current().ID)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.summary = summary

	streak, err := m.service.Streak(m.current().ID)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.streak = streak
	m.errMsg = ""
}

// celebrate rotates through the celebration lines and schedules its removal.
func (m *Model) celebrate(outcome practice.TapOutcome) tea.Cmd {
	line := celebrations[m.celebrationIx%len(celebrations)]
	m.celebrationIx++

	if len(outcome.NewMilestones) > 0 {
		line = "Milestone unlocked: " + outcome.NewMilestones[0].Name + "!"
	}
	m.celebration = line

	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearCelebrationMsg{}
	})
}

func (m *Model) newJournalForm() *huh.Form {
	m.journalText = ""
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Reflection").
				Description("A note on today's practice").
				Value(&m.journalText),
		),
	).WithTheme(huh.ThemeDracula())
}
