package engine

import (
	"sort"
	"time"

	"github.com/pbrahmapurd/japa/internal/constants"
	"github.com/pbrahmapurd/japa/internal/models"
)

// ComputeStreak returns the number of consecutive goal-met days ending at
// today, or at yesterday when today's goal is not yet met. Today counts live
// from todayCompletedCycles; prior days come from the archived GoalAchieved
// flags. A day with no history entry is a gap and stops the walk.
func ComputeStreak(history []models.HistoryEntry, todayCompletedCycles, dailyGoal int, today string) int {
	achieved := achievedDates(history, todayCompletedCycles, dailyGoal, today)

	cursor, err := time.Parse(constants.DateFormat, today)
	if err != nil {
		return 0
	}

	// Today being incomplete does not zero the streak; start counting from
	// yesterday in that case.
	if !achieved[today] {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for achieved[cursor.Format(constants.DateFormat)] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// ComputeLongestStreak returns the longest run of consecutive goal-met days
// anywhere in the retained history, including a live achievement today.
func ComputeLongestStreak(history []models.HistoryEntry, todayCompletedCycles, dailyGoal int, today string) int {
	achieved := achievedDates(history, todayCompletedCycles, dailyGoal, today)

	dates := make([]time.Time, 0, len(achieved))
	for day := range achieved {
		d, err := time.Parse(constants.DateFormat, day)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 0, 0
	for i, d := range dates {
		if i > 0 && dates[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

func achievedDates(history []models.HistoryEntry, todayCompletedCycles, dailyGoal int, today string) map[string]bool {
	achieved := make(map[string]bool, len(history)+1)
	for _, entry := range history {
		if entry.GoalAchieved {
			achieved[entry.Date] = true
		}
	}
	if dailyGoal > 0 && todayCompletedCycles >= dailyGoal {
		achieved[today] = true
	}
	return achieved
}
