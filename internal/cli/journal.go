package cli

import (
	"fmt"
	"strings"
)

type JournalAddCmd struct {
	Reflection string `arg:"" help:"Reflection text."`
	Counter    string `help:"Attach to a counter (name or ID)."`
	Date       string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *JournalAddCmd) Run(ctx *Context) error {
	counterID := ""
	if c.Counter != "" {
		counter, err := ctx.ResolveCounter(c.Counter)
		if err != nil {
			return err
		}
		counterID = counter.ID
	}

	entry, err := ctx.Service.AddJournalEntry(counterID, c.Date, strings.TrimSpace(c.Reflection))
	if err != nil {
		return err
	}
	fmt.Printf("Journaled for %s.\n", entry.Day)
	return nil
}

type JournalListCmd struct {
	Counter string `help:"Show entries for one counter (name or ID)."`
	Limit   int    `help:"Maximum entries to show." default:"10"`
}

func (c *JournalListCmd) Run(ctx *Context) error {
	counterID := ""
	if c.Counter != "" {
		counter, err := ctx.ResolveCounter(c.Counter)
		if err != nil {
			return err
		}
		counterID = counter.ID
	}

	entries, err := ctx.Service.JournalEntries(counterID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No journal entries found.")
		return nil
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	for _, entry := range entries {
		fmt.Printf("%s  %s\n", entry.Day, entry.Reflection)
	}
	return nil
}
