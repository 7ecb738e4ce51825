package cli

import "fmt"

type LogCmd struct {
	Counter string `help:"Counter name or ID (default: active counter)."`
	Days    int    `help:"Number of days to show." default:"14"`
}

func (c *LogCmd) Run(ctx *Context) error {
	counter, err := ctx.ResolveCounter(c.Counter)
	if err != nil {
		return err
	}

	history, err := ctx.Service.History(counter.ID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("No history yet. Days are archived after their first tap of the next day.")
		return nil
	}

	if c.Days > 0 && len(history) > c.Days {
		history = history[:c.Days]
	}

	fmt.Printf("History for %s (most recent first):\n\n", counter.Name)
	for _, entry := range history {
		mark := " "
		if entry.GoalAchieved {
			mark = "x"
		}
		fmt.Printf("%s [%s] %s %s\n",
			entry.Date, mark,
			renderBar(entry.CompletedCycles, counter.DailyGoal, 10),
			formatGoal(entry.CompletedCycles, counter.DailyGoal))
	}
	return nil
}
