package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/classify"
	"github.com/fwojciec/novelsrc/fs"
	"github.com/fwojciec/novelsrc/preset"
	"github.com/fwojciec/novelsrc/suggest"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the frameworks command.
func (c *FrameworksCmd) Run(deps *Dependencies) error {
	presets := make(map[novelsrc.SiteFramework]bool)
	for _, f := range preset.Frameworks() {
		presets[f] = true
	}

	t := newTable(deps.Stdout, "Framework", "Preset", "Keywords")
	for _, f := range suggest.NewLibrary().AvailableFrameworks() {
		hasPreset := "no"
		if presets[f] {
			hasPreset = "yes"
		}
		t.AppendRow(table.Row{f, hasPreset, strings.Join(classify.Keywords(f), ", ")})
	}
	t.Render()
	return nil
}

// Run executes the suggest command.
func (c *SuggestCmd) Run(deps *Dependencies) error {
	framework, err := novelsrc.ParseSiteFramework(c.Framework)
	if err != nil {
		return fail(deps, err)
	}
	step, err := novelsrc.ParseWizardStep(c.Step)
	if err != nil {
		return fail(deps, err)
	}

	lib := suggest.NewLibrary()
	if c.HTML == "" {
		suggestions := lib.Suggest(framework, step)
		if len(suggestions) == 0 {
			return fail(deps, novelsrc.Errorf(novelsrc.ENOTFOUND, "no suggestions for %s at step %s", framework, step))
		}
		t := newTable(deps.Stdout, "Priority", "Selector", "Label")
		for _, s := range suggestions {
			t.AppendRow(table.Row{s.Priority, s.Selector, s.Label})
		}
		t.Render()
		return nil
	}

	data, err := os.ReadFile(c.HTML)
	if err != nil {
		return fail(deps, err)
	}
	evals := lib.Evaluate(deps.Engine, string(data), framework, step)
	if len(evals) == 0 {
		return fail(deps, novelsrc.Errorf(novelsrc.ENOTFOUND, "no suggestions for %s at step %s", framework, step))
	}
	t := newTable(deps.Stdout, "Priority", "Selector", "Matches", "Sample")
	for _, e := range evals {
		t.AppendRow(table.Row{e.Priority, e.Selector, e.Matches, e.Sample})
	}
	t.Render()
	return nil
}

// Run executes the template command.
func (c *TemplateCmd) Run(deps *Dependencies) error {
	framework, err := novelsrc.ParseSiteFramework(c.Framework)
	if err != nil {
		return fail(deps, err)
	}
	cfg, err := preset.New(framework, c.Name, c.BaseURL)
	if err != nil {
		return fail(deps, err)
	}

	if c.Output != "" {
		if err := fs.SaveConfig(c.Output, cfg); err != nil {
			return fail(deps, err)
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s configuration %q to %s\n", framework, cfg.Name, c.Output)
		return nil
	}

	data, err := fs.EncodeConfig(cfg, fs.Format(c.Format))
	if err != nil {
		return fail(deps, err)
	}
	_, err = deps.Stdout.Write(data)
	return err
}

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	cfg, err := fs.LoadConfig(c.File)
	if err != nil {
		return fail(deps, err)
	}
	fmt.Fprintf(deps.Stdout, "%s: valid %s configuration %q\n", c.File, cfg.Framework(), cfg.Name)
	return nil
}
