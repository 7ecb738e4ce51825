package engine

import (
	"testing"
	"time"
)

func TestEvaluateMilestones_FlipsReachedThresholds(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	result := EvaluateMilestones(DefaultMilestones(), 7, now)

	for _, m := range result.Milestones {
		wantAchieved := m.ThresholdDays <= 7
		if m.Achieved != wantAchieved {
			t.Errorf("milestone %d days: Achieved = %v, want %v", m.ThresholdDays, m.Achieved, wantAchieved)
		}
		if m.Achieved && (m.AchievedAt == nil || !m.AchievedAt.Equal(now)) {
			t.Errorf("milestone %d days: AchievedAt not stamped", m.ThresholdDays)
		}
	}
	if len(result.NewlyAchieved) != 3 {
		t.Errorf("newly achieved = %d, want 3 (1, 3, 7 days)", len(result.NewlyAchieved))
	}
}

func TestEvaluateMilestones_AchievementIsPermanent(t *testing.T) {
	firstPass := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
	result := EvaluateMilestones(DefaultMilestones(), 7, firstPass)

	// Streak breaks to zero: nothing may revert, and AchievedAt stays put.
	later := firstPass.AddDate(0, 0, 10)
	afterBreak := EvaluateMilestones(result.Milestones, 0, later)

	if len(afterBreak.NewlyAchieved) != 0 {
		t.Errorf("newly achieved after break = %d, want 0", len(afterBreak.NewlyAchieved))
	}
	for _, m := range afterBreak.Milestones {
		if m.ThresholdDays <= 7 {
			if !m.Achieved {
				t.Errorf("milestone %d days reverted to unachieved", m.ThresholdDays)
			}
			if m.AchievedAt == nil || !m.AchievedAt.Equal(firstPass) {
				t.Errorf("milestone %d days: AchievedAt rewritten", m.ThresholdDays)
			}
		}
	}
}

func TestEvaluateMilestones_InputNotMutated(t *testing.T) {
	original := DefaultMilestones()

	EvaluateMilestones(original, 108, time.Now())

	for _, m := range original {
		if m.Achieved {
			t.Fatal("EvaluateMilestones mutated its input")
		}
	}
}

func TestDefaultMilestones_AscendingUniqueThresholds(t *testing.T) {
	milestones := DefaultMilestones()
	for i := 1; i < len(milestones); i++ {
		if milestones[i].ThresholdDays <= milestones[i-1].ThresholdDays {
			t.Fatalf("thresholds not strictly ascending at index %d", i)
		}
	}
}
