package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/openfiscal/munidocs"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	entities, err := selectEntities(deps.Entities, c.Entity, c.Top)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", munidocs.ErrorMessage(err))
		return err
	}
	if len(entities) == 0 {
		fmt.Fprintln(deps.Stdout, "No municipalities configured. Add entries to the roster file first.")
		return nil
	}

	summary, err := deps.Runner.Run(deps.Ctx, entities)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", munidocs.ErrorMessage(err))
		return err
	}

	var downloaded, present, renamed, failed, errored int
	for _, res := range summary.Results {
		if res.Err != nil {
			errored++
			fmt.Fprintf(deps.Stderr, "  %s: %s\n", res.Entity, munidocs.ErrorMessage(res.Err))
			continue
		}
		downloaded += res.Downloaded
		present += res.AlreadyPresent
		renamed += res.Renamed
		failed += res.Failed

		source := "discovery"
		if res.CacheHit {
			source = "cache"
		}
		fmt.Fprintf(deps.Stdout, "  %s: %d documents (%s), %d new, %d already present\n",
			res.Entity, res.Discovered, source, res.Downloaded, res.AlreadyPresent)
	}

	fmt.Fprintf(deps.Stdout, "Done in %s: %d downloaded, %d already present, %d renamed, %d failed, %d entities errored\n",
		summary.Duration.Round(time.Millisecond), downloaded, present, renamed, failed, errored)
	return nil
}

// selectEntities resolves the roster subset a command operates on: the named
// entities when given, else the top N by population, else everything.
func selectEntities(service munidocs.EntityService, names []string, top int) ([]munidocs.Entity, error) {
	if len(names) > 0 {
		entities := make([]munidocs.Entity, 0, len(names))
		for _, name := range names {
			entity, err := service.FindEntity(strings.TrimSpace(name))
			if err != nil {
				return nil, err
			}
			entities = append(entities, *entity)
		}
		return entities, nil
	}

	entities := service.Entities()
	if top > 0 {
		sort.SliceStable(entities, func(i, j int) bool {
			return entities[i].Population > entities[j].Population
		})
		if top < len(entities) {
			entities = entities[:top]
		}
	}
	return entities, nil
}
