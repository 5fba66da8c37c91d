package main

import (
	"fmt"

	"github.com/mwestrik/siteqa"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Retriever.Ask(deps.Ctx, c.Question, c.TopK)
	if err != nil {
		if siteqa.ErrorCode(err) == siteqa.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "error: no indexed content. Run 'siteqa ingest URL' first.")
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", siteqa.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Answer)
	if len(answer.Sources) > 0 {
		fmt.Fprintln(deps.Stdout, "\nSources:")
		for _, src := range answer.Sources {
			fmt.Fprintf(deps.Stdout, "  %s\n", src)
		}
	}
	return nil
}
