package main

import (
	"fmt"
	"sort"

	"github.com/openfiscal/munidocs"
)

// Run executes the cache stats command.
func (c *CacheStatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Cache.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", munidocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Entities:   %d\n", stats.Entities)
	fmt.Fprintf(deps.Stdout, "Documents:  %d\n", stats.Documents)
	fmt.Fprintf(deps.Stdout, "Per entity: %.1f\n", stats.AvgPerEnt)
	return nil
}

// Run executes the cache list command.
func (c *CacheListCmd) Run(deps *Dependencies) error {
	if c.Entity != "" {
		return c.listEntity(deps, c.Entity)
	}

	names, err := deps.Cache.EntityNames(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", munidocs.ErrorMessage(err))
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(deps.Stdout, "Cache is empty. Run 'munidocs fetch' to populate it.")
		return nil
	}

	for _, name := range names {
		rec, err := deps.Cache.Lookup(deps.Ctx, name)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", munidocs.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %d documents  (%s)\n", rec.Entity, len(rec.Documents), rec.Method)
	}
	return nil
}

func (c *CacheListCmd) listEntity(deps *Dependencies, name string) error {
	rec, err := deps.Cache.Lookup(deps.Ctx, name)
	if err != nil {
		if munidocs.ErrorCode(err) == munidocs.ENOTFOUND {
			fmt.Fprintf(deps.Stdout, "No cached documents for %q.\n", name)
			return nil
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", munidocs.ErrorMessage(err))
		return err
	}

	keys := make([]string, 0, len(rec.Documents))
	for key := range rec.Documents {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", key, rec.Documents[key])
	}
	return nil
}
