package main

import (
	"fmt"

	"github.com/openfiscal/munidocs"
)

// Run executes the rename command.
func (c *RenameCmd) Run(deps *Dependencies) error {
	entities, err := selectEntities(deps.Entities, c.Entity, 0)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", munidocs.ErrorMessage(err))
		return err
	}

	var renamed, failed int
	for _, entity := range entities {
		res, err := deps.Runner.RenameExisting(deps.Ctx, entity)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  %s: %s\n", entity.Name, munidocs.ErrorMessage(err))
			failed++
			continue
		}
		renamed += res.Renamed
		failed += res.Failed
		fmt.Fprintf(deps.Stdout, "  %s: %d renamed, %d failed\n", entity.Name, res.Renamed, res.Failed)
	}

	fmt.Fprintf(deps.Stdout, "Done: %d renamed, %d failed\n", renamed, failed)
	return nil
}
