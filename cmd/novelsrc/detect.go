package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/classify"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the detect command.
func (c *DetectCmd) Run(deps *Dependencies) error {
	html, err := c.page(deps)
	if err != nil {
		return fail(deps, err)
	}

	framework := deps.Detector.Detect(html)
	fmt.Fprintln(deps.Stdout, framework)

	if !c.Scores {
		return nil
	}
	t := newTable(deps.Stdout, "Framework", "Hits", "Keywords")
	for _, s := range classify.NewDetector().Scores(html) {
		t.AppendRow(table.Row{s.Framework, len(s.Hits), strings.Join(s.Hits, ", ")})
	}
	t.Render()
	return nil
}

// page reads the target from disk, or fetches it when it is a URL.
func (c *DetectCmd) page(deps *Dependencies) (string, error) {
	if !strings.HasPrefix(c.Target, "http://") && !strings.HasPrefix(c.Target, "https://") {
		data, err := os.ReadFile(c.Target)
		if err != nil {
			if os.IsNotExist(err) {
				return "", novelsrc.Errorf(novelsrc.ENOTFOUND, "file %q not found", c.Target)
			}
			return "", err
		}
		return string(data), nil
	}

	fetcher, err := deps.Fetchers(false)
	if err != nil {
		return "", err
	}
	defer fetcher.Close()
	return fetcher.Fetch(deps.Ctx, novelsrc.Request{Method: novelsrc.MethodGet, URL: c.Target})
}
