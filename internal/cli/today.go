package cli

import "fmt"

type TodayCmd struct {
	Counter string `help:"Counter name or ID (default: active counter)."`
	All     bool   `help:"Show every counter, not just one."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	if c.All {
		counters, err := ctx.Service.Counters()
		if err != nil {
			return err
		}
		if len(counters) == 0 {
			fmt.Println("No counters found. Add one with 'japa counter add'.")
			return nil
		}
		fmt.Printf("Practice for %s:\n\n", ctx.Clock.Today())
		for _, counter := range counters {
			if err := printSummary(ctx, counter.ID); err != nil {
				return err
			}
		}
		return nil
	}

	counter, err := ctx.ResolveCounter(c.Counter)
	if err != nil {
		return err
	}
	fmt.Printf("Practice for %s:\n\n", ctx.Clock.Today())
	return printSummary(ctx, counter.ID)
}

func printSummary(ctx *Context, counterID string) error {
	summary, err := ctx.Service.TodaySummary(counterID)
	if err != nil {
		return err
	}

	goalMark := " "
	if summary.TodayCompletedCycles >= summary.DailyGoal {
		goalMark = "x"
	}
	fmt.Printf("[%s] %s\n", goalMark, summary.Name)
	if summary.Mantra != "" {
		fmt.Printf("    %s\n", summary.Mantra)
	}
	fmt.Printf("    %s %d/%d in cycle, %s\n",
		renderBar(summary.CurrentCount, summary.CycleLength, 20),
		summary.CurrentCount, summary.CycleLength,
		formatGoal(summary.TodayCompletedCycles, summary.DailyGoal))
	return nil
}
