package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/litcrawl"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	body, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	page := &litcrawl.Page{
		URL:        c.URL,
		StatusCode: 200,
		Body:       body,
		Seed:       c.Seed,
	}

	verdict, err := deps.Processor.Process(deps.Ctx, page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", litcrawl.ErrorMessage(err))
		return err
	}

	if !verdict.Accepted() {
		fmt.Fprintf(deps.Stdout, "rejected: %s\n", verdict.Reason)
		return nil
	}

	out, err := json.MarshalIndent(verdict.Article, "", "  ")
	if err != nil {
		return fmt.Errorf("encode article: %w", err)
	}
	fmt.Fprintln(deps.Stdout, "accepted")
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
