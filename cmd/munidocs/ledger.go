package main

import (
	"fmt"
	"sort"

	"github.com/openfiscal/munidocs"
)

// Run executes the ledger command.
func (c *LedgerCmd) Run(deps *Dependencies) error {
	entity, err := deps.Entities.FindEntity(c.Entity)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", munidocs.ErrorMessage(err))
		return err
	}

	records, err := deps.Ledger.Records(deps.Ctx, entity.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", munidocs.ErrorMessage(err))
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "No ledger entries for %q.\n", entity.Name)
		return nil
	}

	filenames := make([]string, 0, len(records))
	for filename := range records {
		filenames = append(filenames, filename)
	}
	sort.Strings(filenames)

	for _, filename := range filenames {
		rec := records[filename]
		fmt.Fprintf(deps.Stdout, "%s\n", filename)
		fmt.Fprintf(deps.Stdout, "  source: %s\n", rec.Discovery.SourceURL)
		if rec.Discovery.Strategy != "" {
			fmt.Fprintf(deps.Stdout, "  strategy: %s\n", rec.Discovery.Strategy)
		}
		if rec.Renamed() {
			fmt.Fprintf(deps.Stdout, "  renamed: %s -> %s (%s %s, %s)\n",
				rec.OriginalFilename, rec.StandardizedFilename,
				rec.DocumentType, rec.DocumentYear, rec.Confidence)
		} else {
			fmt.Fprintln(deps.Stdout, "  renamed: pending")
		}
	}
	return nil
}
