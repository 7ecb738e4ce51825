package cli

import (
	"fmt"
)

type TapCmd struct {
	Counter string `help:"Counter name or ID (default: active counter)."`
	Count   int    `help:"Number of taps to record." default:"1"`
}

func (c *TapCmd) Run(ctx *Context) error {
	if c.Count < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	counter, err := ctx.ResolveCounter(c.Counter)
	if err != nil {
		return err
	}

	for i := 0; i < c.Count; i++ {
		outcome, err := ctx.Service.Tap(counter.ID)
		if err != nil {
			return err
		}

		if outcome.CycleCompleted {
			fmt.Printf("Cycle complete! %s today.\n", formatGoal(outcome.Progress.TodayCompletedCycles, counter.DailyGoal))
			if outcome.Celebrate && outcome.Progress.TodayCompletedCycles == counter.DailyGoal {
				fmt.Printf("Daily goal met. Streak: %d day(s).\n", outcome.Streak)
			}
			for _, m := range outcome.NewMilestones {
				fmt.Printf("Milestone unlocked: %s (%d days)\n", m.Name, m.ThresholdDays)
			}
		}
	}

	summary, err := ctx.Service.TodaySummary(counter.ID)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s %d/%d\n", counter.Name, renderBar(summary.CurrentCount, summary.CycleLength, 20), summary.CurrentCount, summary.CycleLength)
	return nil
}

type UndoCmd struct {
	Counter string `help:"Counter name or ID (default: active counter)."`
}

func (c *UndoCmd) Run(ctx *Context) error {
	counter, err := ctx.ResolveCounter(c.Counter)
	if err != nil {
		return err
	}

	progress, err := ctx.Service.UndoTap(counter.ID)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s %d/%d\n", counter.Name, renderBar(progress.CurrentCount, counter.CycleLength, 20), progress.CurrentCount, counter.CycleLength)
	return nil
}

type ResetCmd struct {
	Counter string `help:"Counter name or ID (default: active counter)."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	counter, err := ctx.ResolveCounter(c.Counter)
	if err != nil {
		return err
	}

	progress, err := ctx.Service.ResetCycle(counter.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Session ended. Today: %s.\n", formatGoal(progress.TodayCompletedCycles, counter.DailyGoal))
	return nil
}
