package main

import "fmt"

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		return fmt.Errorf("clearing deletes all data; re-run with --force to confirm")
	}

	if err := deps.Store.Clear(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Database cleared (%s)\n", deps.Store.Path())
	return nil
}
