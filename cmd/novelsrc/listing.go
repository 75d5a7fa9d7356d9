package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/scrape"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the popular command.
func (c *PopularCmd) Run(deps *Dependencies) error {
	return runListing(deps, c.Source, scrape.ListingPopular, "", c.Page, c.Pages, c.JSON)
}

// Run executes the latest command.
func (c *LatestCmd) Run(deps *Dependencies) error {
	return runListing(deps, c.Source, scrape.ListingLatest, "", c.Page, c.Pages, c.JSON)
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	return runListing(deps, c.Source, scrape.ListingSearch, c.Query, c.Page, 0, c.JSON)
}

// runListing prints one listing page, or walks up to pages pages from the
// first when pages is positive.
func runListing(deps *Dependencies, ref string, kind scrape.ListingKind, query string, page, pages int, asJSON bool) error {
	cfg, err := deps.loadSource(ref)
	if err != nil {
		return fail(deps, err)
	}
	s, fetcher, err := deps.scraper(cfg, "")
	if err != nil {
		return fail(deps, err)
	}
	defer fetcher.Close()

	var items []novelsrc.NovelItem
	if pages > 0 {
		err = s.WalkListing(deps.Ctx, cfg, kind, query, pages, func(lp *novelsrc.ListingPage) error {
			items = append(items, lp.Items...)
			return nil
		})
	} else {
		var lp *novelsrc.ListingPage
		lp, err = s.Listing(deps.Ctx, cfg, kind, query, page)
		if lp != nil {
			items = lp.Items
		}
	}
	if err != nil {
		return fail(deps, err)
	}

	if asJSON {
		if items == nil {
			items = []novelsrc.NovelItem{}
		}
		return printJSON(deps.Stdout, items)
	}
	if len(items) == 0 {
		fmt.Fprintf(deps.Stdout, "No novels found on the %s listing.\n", kind)
		return nil
	}
	t := newTable(deps.Stdout, "#", "Title", "URL")
	for i, item := range items {
		t.AppendRow(table.Row{i + 1, item.Title, item.URL})
	}
	t.Render()
	return nil
}

// Run executes the novel command.
func (c *NovelCmd) Run(deps *Dependencies) error {
	cfg, err := deps.loadSource(c.Source)
	if err != nil {
		return fail(deps, err)
	}
	s, fetcher, err := deps.scraper(cfg, "")
	if err != nil {
		return fail(deps, err)
	}
	defer fetcher.Close()

	novel, err := s.Novel(deps.Ctx, cfg, c.URL)
	if err != nil {
		return fail(deps, err)
	}
	if c.JSON {
		return printJSON(deps.Stdout, novel)
	}

	t := newTable(deps.Stdout)
	t.AppendRow(table.Row{"Title", novel.Title})
	t.AppendRow(table.Row{"Author", novel.Author})
	if novel.Artist != "" {
		t.AppendRow(table.Row{"Artist", novel.Artist})
	}
	t.AppendRow(table.Row{"Status", novel.Status})
	t.AppendRow(table.Row{"Genres", strings.Join(novel.Genres, ", ")})
	if novel.NovelID != "" {
		t.AppendRow(table.Row{"ID", novel.NovelID})
	}
	t.AppendRow(table.Row{"Cover", novel.Cover})
	t.AppendRow(table.Row{"URL", novel.URL})
	t.Render()

	if novel.Description != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", novel.Description)
	}
	return nil
}

// Run executes the chapters command.
func (c *ChaptersCmd) Run(deps *Dependencies) error {
	cfg, err := deps.loadSource(c.Source)
	if err != nil {
		return fail(deps, err)
	}
	s, fetcher, err := deps.scraper(cfg, "")
	if err != nil {
		return fail(deps, err)
	}
	defer fetcher.Close()

	list, err := s.Chapters(deps.Ctx, cfg, c.URL)
	if err != nil {
		return fail(deps, err)
	}
	if c.JSON {
		return printJSON(deps.Stdout, list)
	}
	if list.Empty() {
		fmt.Fprintln(deps.Stdout, "No chapters found.")
		return nil
	}

	t := newTable(deps.Stdout, "#", "Name", "Released", "URL")
	for _, ch := range list.Chapters {
		t.AppendRow(table.Row{ch.Position, ch.Name, formatDate(ch.ReleasedAt), ch.URL})
	}
	t.Render()
	return nil
}
