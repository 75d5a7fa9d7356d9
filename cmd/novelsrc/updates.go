package main

import (
	"fmt"

	"github.com/fwojciec/novelsrc/feed"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the updates command.
func (c *UpdatesCmd) Run(deps *Dependencies) error {
	cfg, err := deps.loadSource(c.Source)
	if err != nil {
		return fail(deps, err)
	}
	fetcher, err := deps.Fetchers(cfg.UseCloudflareBypass)
	if err != nil {
		return fail(deps, err)
	}
	defer fetcher.Close()

	updates, err := feed.NewReader(fetcher).Updates(deps.Ctx, cfg)
	if err != nil {
		return fail(deps, err)
	}
	if len(updates) == 0 {
		fmt.Fprintf(deps.Stdout, "No updates in the feed of %q.\n", cfg.Name)
		return nil
	}
	if c.Limit > 0 && len(updates) > c.Limit {
		updates = updates[:c.Limit]
	}

	t := newTable(deps.Stdout, "Published", "Title", "URL")
	for _, u := range updates {
		t.AppendRow(table.Row{formatDate(u.PublishedAt), u.Title, u.URL})
	}
	t.Render()
	return nil
}
