package main

import "fmt"

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	for _, id := range deps.Sites.IDs() {
		site, err := deps.Sites.Get(id)
		if err != nil {
			return fail(deps, err)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", site.ID, site.Name, site.BaseURL)
	}
	return nil
}
