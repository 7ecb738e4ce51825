package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/pbrahmapurd/japa/internal/clock"
)

type CounterAddCmd struct {
	Name        string `arg:"" optional:"" help:"Counter name. Omit to fill in a form."`
	Mantra      string `help:"Mantra or intention text shown while counting."`
	Color       string `help:"Display color (hex, e.g. #D4AF37)."`
	CycleLength int    `help:"Taps per cycle." default:"108"`
	DailyGoal   int    `help:"Cycles per day to keep the streak." default:"3"`
}

func (c *CounterAddCmd) Run(ctx *Context) error {
	name := c.Name
	mantra := c.Mantra
	color := c.Color
	cycleLength := c.CycleLength
	dailyGoal := c.DailyGoal

	if name == "" {
		cycleStr := strconv.Itoa(cycleLength)
		goalStr := strconv.Itoa(dailyGoal)
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Name").
					Value(&name).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("counter name cannot be empty")
						}
						return nil
					}),
				huh.NewInput().
					Title("Mantra").
					Description("Optional text shown while counting").
					Value(&mantra),
				huh.NewInput().
					Title("Cycle length").
					Description("Taps per cycle (a mala is 108)").
					Value(&cycleStr).
					Validate(validatePositiveInt),
				huh.NewInput().
					Title("Daily goal").
					Description("Cycles per day to keep the streak").
					Value(&goalStr).
					Validate(validatePositiveInt),
			),
		).WithTheme(huh.ThemeDracula())

		if err := form.Run(); err != nil {
			return err
		}
		cycleLength, _ = strconv.Atoi(cycleStr)
		dailyGoal, _ = strconv.Atoi(goalStr)
	}

	counter, err := ctx.Service.CreateCounter(strings.TrimSpace(name), color, strings.TrimSpace(mantra), cycleLength, dailyGoal)
	if err != nil {
		return err
	}

	fmt.Printf("Added counter: %s (cycle %d, goal %d/day)\n", counter.Name, counter.CycleLength, counter.DailyGoal)
	return nil
}

func validatePositiveInt(s string) error {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	if i < 1 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

type CounterListCmd struct{}

func (c *CounterListCmd) Run(ctx *Context) error {
	counters, err := ctx.Service.Counters()
	if err != nil {
		return err
	}
	if len(counters) == 0 {
		fmt.Println("No counters found. Add one with 'japa counter add'.")
		return nil
	}

	active, _ := ctx.Service.ActiveCounter()
	for _, counter := range counters {
		marker := "  "
		if counter.ID == active.ID {
			marker = "* "
		}
		line := fmt.Sprintf("%s%s (cycle %d, goal %d/day)", marker, counter.Name, counter.CycleLength, counter.DailyGoal)
		if counter.Mantra != "" {
			line += fmt.Sprintf("  %q", counter.Mantra)
		}
		fmt.Println(line)
	}
	return nil
}

type CounterEditCmd struct {
	Counter     string `arg:"" help:"Counter name or ID."`
	Name        string `help:"New name."`
	Mantra      string `help:"New mantra text."`
	Color       string `help:"New display color."`
	CycleLength int    `help:"New taps per cycle." default:"0"`
	DailyGoal   int    `help:"New cycles per day." default:"0"`
}

func (c *CounterEditCmd) Run(ctx *Context) error {
	counter, err := ctx.ResolveCounter(c.Counter)
	if err != nil {
		return err
	}

	if c.Name != "" {
		counter.Name = c.Name
	}
	if c.Mantra != "" {
		counter.Mantra = c.Mantra
	}
	if c.Color != "" {
		counter.Color = c.Color
	}
	if c.CycleLength > 0 {
		counter.CycleLength = c.CycleLength
	}
	if c.DailyGoal > 0 {
		counter.DailyGoal = c.DailyGoal
	}

	updated, err := ctx.Service.UpdateCounter(counter)
	if err != nil {
		return err
	}
	fmt.Printf("Updated counter: %s (cycle %d, goal %d/day)\n", updated.Name, updated.CycleLength, updated.DailyGoal)
	fmt.Println("Goal changes apply from today; past days keep the goal they were scored against.")
	return nil
}

type CounterDeleteCmd struct {
	Counter string `arg:"" help:"Counter name or ID."`
	Force   bool   `help:"Skip confirmation."`
}

func (c *CounterDeleteCmd) Run(ctx *Context) error {
	counter, err := ctx.ResolveCounter(c.Counter)
	if err != nil {
		return err
	}

	if !c.Force {
		fmt.Printf("Delete counter %q? Its live progress and milestones will be removed.\n", counter.Name)
		fmt.Print("Continue? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Service.DeleteCounter(counter.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted counter: %s\n", counter.Name)
	return nil
}

type CounterUseCmd struct {
	Counter string `arg:"" help:"Counter name or ID to make active."`
}

func (c *CounterUseCmd) Run(ctx *Context) error {
	counter, err := ctx.ResolveCounter(c.Counter)
	if err != nil {
		return err
	}
	if err := ctx.Service.SetActiveCounter(counter.ID); err != nil {
		return err
	}
	fmt.Printf("Active counter: %s\n", counter.Name)
	return nil
}

type TimezoneCmd struct {
	Zone string `arg:"" optional:"" help:"IANA timezone name, e.g. Asia/Kolkata. Omit to show the current setting."`
}

func (c *TimezoneCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	if c.Zone == "" {
		zone := settings.Timezone
		if zone == "" {
			zone = "Local (system default)"
		}
		fmt.Printf("Timezone: %s\n", zone)
		fmt.Printf("Today is %s\n", ctx.Clock.Today())
		return nil
	}

	if err := validateZone(c.Zone); err != nil {
		return err
	}
	settings.Timezone = c.Zone
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}
	fmt.Printf("Timezone set to %s. Day boundaries follow this zone from now on.\n", c.Zone)
	return nil
}

func validateZone(zone string) error {
	if _, err := clock.LoadLocation(zone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", zone, err)
	}
	return nil
}
