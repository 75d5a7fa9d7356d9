package main

import (
	"fmt"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/scrape"
)

// Run executes the probe command.
func (c *ProbeCmd) Run(deps *Dependencies) error {
	plain, err := deps.Fetchers(false)
	if err != nil {
		return fail(deps, err)
	}
	defer plain.Close()

	// Without Chrome the probe still reports on server-rendered sites.
	var browser novelsrc.Fetcher
	if b, err := deps.Fetchers(true); err == nil {
		defer b.Close()
		browser = b
	} else if deps.Logger != nil {
		deps.Logger.Warn("browser unavailable", "error", err)
	}

	p, err := scrape.ProbeSource(deps.Ctx, c.URL, plain, browser, deps.Detector, newExtractor(c.Extractor))
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Framework:           %s\n", p.Framework)
	fmt.Fprintf(deps.Stdout, "useCloudflareBypass: %t\n", p.NeedsBrowser)
	fmt.Fprintf(deps.Stdout, "Reason:              %s\n", p.Reason)
	return nil
}
