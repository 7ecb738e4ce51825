package engine

import (
	"time"

	"github.com/pbrahmapurd/japa/internal/constants"
	"github.com/pbrahmapurd/japa/internal/models"
)

// MilestoneResult is the outcome of a milestone evaluation pass.
type MilestoneResult struct {
	Milestones    []models.Milestone
	NewlyAchieved []models.Milestone
}

// DefaultMilestones returns the milestone table with nothing achieved yet.
func DefaultMilestones() []models.Milestone {
	milestones := make([]models.Milestone, 0, len(constants.MilestoneThresholds))
	for _, threshold := range constants.MilestoneThresholds {
		milestones = append(milestones, models.Milestone{
			ThresholdDays: threshold.Days,
			Name:          threshold.Name,
		})
	}
	return milestones
}

// EvaluateMilestones marks every not-yet-achieved milestone whose threshold
// the streak has reached, stamping AchievedAt once. Achievement is permanent:
// a milestone already achieved is never reverted, regardless of the current
// streak.
func EvaluateMilestones(milestones []models.Milestone, currentStreak int, now time.Time) MilestoneResult {
	updated := make([]models.Milestone, len(milestones))
	copy(updated, milestones)

	var newlyAchieved []models.Milestone
	for i := range updated {
		if updated[i].Achieved {
			continue
		}
		if currentStreak >= updated[i].ThresholdDays {
			achievedAt := now
			updated[i].Achieved = true
			updated[i].AchievedAt = &achievedAt
			newlyAchieved = append(newlyAchieved, updated[i])
		}
	}

	return MilestoneResult{Milestones: updated, NewlyAchieved: newlyAchieved}
}
