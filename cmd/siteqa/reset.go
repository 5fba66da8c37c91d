package main

import (
	"fmt"

	"github.com/mwestrik/siteqa"
)

// Run executes the reset command.
func (c *ResetCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintln(deps.Stderr, "this deletes all indexed content; re-run with --force to confirm")
		return siteqa.Errorf(siteqa.EINVALID, "reset requires --force")
	}

	if err := deps.Store.Reset(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "index cleared")
	return nil
}
