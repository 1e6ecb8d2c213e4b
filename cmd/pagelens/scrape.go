package main

import (
	"encoding/json"
	"fmt"

	"github.com/pagelens/pagelens"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	req := &pagelens.Request{
		URL:         c.URL,
		Mode:        pagelens.Mode(c.Mode),
		TargetTypes: c.Targets,
	}

	result, err := deps.Scraper.Scrape(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	if c.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
