package constants

// MilestoneThreshold defines a streak length that unlocks a named milestone.
type MilestoneThreshold struct {
	Days int
	Name string
}

// MilestoneThresholds is the ordered table of streak milestones. Thresholds
// are ascending and unique; achievement is permanent once reached.
var MilestoneThresholds = []MilestoneThreshold{
	{Days: 1, Name: "First Step"},
	{Days: 3, Name: "Taking Root"},
	{Days: 7, Name: "One Week Strong"},
	{Days: 21, Name: "Habit Formed"},
	{Days: 30, Name: "One Month Devoted"},
	{Days: 60, Name: "Steady Flame"},
	{Days: 108, Name: "Sacred Cycle"},
}
