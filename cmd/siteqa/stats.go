package main

import (
	"fmt"

	"github.com/mwestrik/siteqa"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Store.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "database: %s\n", deps.DBPath)
	fmt.Fprintf(deps.Stdout, "chunks:   %d\n", stats.Chunks)
	return nil
}
