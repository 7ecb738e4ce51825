package cli

import "fmt"

type StreakCmd struct {
	Counter string `help:"Counter name or ID (default: active counter)."`
}

func (c *StreakCmd) Run(ctx *Context) error {
	counter, err := ctx.ResolveCounter(c.Counter)
	if err != nil {
		return err
	}

	current, err := ctx.Service.Streak(counter.ID)
	if err != nil {
		return err
	}
	longest, err := ctx.Service.LongestStreak(counter.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", counter.Name)
	fmt.Printf("  Current streak: %d day(s)\n", current)
	fmt.Printf("  Longest streak: %d day(s)\n", longest)
	return nil
}

type MilestonesCmd struct {
	Counter string `help:"Counter name or ID (default: active counter)."`
}

func (c *MilestonesCmd) Run(ctx *Context) error {
	counter, err := ctx.ResolveCounter(c.Counter)
	if err != nil {
		return err
	}

	milestones, err := ctx.Service.Milestones(counter.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Milestones for %s:\n\n", counter.Name)
	for _, m := range milestones {
		status := "[ ]"
		achieved := ""
		if m.Achieved {
			status = "[x]"
			if m.AchievedAt != nil {
				achieved = fmt.Sprintf("  (achieved %s)", m.AchievedAt.Format("2006-01-02"))
			}
		}
		fmt.Printf("%s %3d days  %s%s\n", status, m.ThresholdDays, m.Name, achieved)
	}
	return nil
}
