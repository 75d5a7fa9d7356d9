package main

import (
	"fmt"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/etree"
)

// Run executes the sitemap command.
func (c *SitemapCmd) Run(deps *Dependencies) error {
	filter, err := novelsrc.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		return fail(deps, err)
	}
	cfg, err := deps.loadSource(c.Source)
	if err != nil {
		return fail(deps, err)
	}
	fetcher, err := deps.Fetchers(cfg.UseCloudflareBypass)
	if err != nil {
		return fail(deps, err)
	}
	defer fetcher.Close()

	urls, err := etree.NewSitemapService(fetcher).DiscoverURLs(deps.Ctx, cfg, filter)
	if err != nil {
		return fail(deps, err)
	}
	if len(urls) == 0 {
		fmt.Fprintf(deps.Stderr, "No sitemap URLs found for %q.\n", cfg.Name)
		return nil
	}
	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}
