package main

import (
	"fmt"

	"github.com/fwojciec/litcrawl/yaml"
)

// Run executes the show-config command.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	if err := yaml.WriteConfig(deps.Stdout, deps.Config); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
