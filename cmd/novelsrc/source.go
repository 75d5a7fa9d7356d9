package main

import (
	"fmt"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/fs"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the source add command.
func (c *SourceAddCmd) Run(deps *Dependencies) error {
	cfg, err := fs.LoadConfig(c.File)
	if err != nil {
		return fail(deps, err)
	}

	existing, err := deps.Sources.FindSourceByName(deps.Ctx, cfg.Name)
	switch {
	case err == nil && !c.Force:
		fmt.Fprintf(deps.Stderr, "error: source %q already exists. Use --force to replace it.\n", cfg.Name)
		return novelsrc.Errorf(novelsrc.ECONFLICT, "source %q already exists", cfg.Name)
	case err == nil:
		updated, err := deps.Sources.UpdateSource(deps.Ctx, existing.ID, cfg)
		if err != nil {
			return fail(deps, err)
		}
		fmt.Fprintf(deps.Stdout, "Replaced source %q (%s)\n", cfg.Name, updated.ID)
		return nil
	case novelsrc.ErrorCode(err) != novelsrc.ENOTFOUND:
		return fail(deps, err)
	}

	source := &novelsrc.Source{Config: cfg}
	if err := deps.Sources.CreateSource(deps.Ctx, source); err != nil {
		return fail(deps, err)
	}
	fmt.Fprintf(deps.Stdout, "Added source %q (%s)\n", cfg.Name, source.ID)
	return nil
}

// Run executes the source list command.
func (c *SourceListCmd) Run(deps *Dependencies) error {
	var filter novelsrc.SourceFilter
	if c.Type != "" {
		framework, err := novelsrc.ParseSiteFramework(c.Type)
		if err != nil {
			return fail(deps, err)
		}
		filter.SourceType = &framework
	}
	if c.Language != "" {
		filter.Language = &c.Language
	}

	sources, err := deps.Sources.FindSources(deps.Ctx, filter)
	if err != nil {
		return fail(deps, err)
	}
	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources found. Use 'novelsrc source add' to store one.")
		return nil
	}

	t := newTable(deps.Stdout, "Name", "Type", "Language", "Base URL", "ID")
	for _, s := range sources {
		t.AppendRow(table.Row{s.Config.Name, s.Config.Framework(), s.Config.Language, s.Config.BaseURL, s.ID})
	}
	t.Render()
	return nil
}

// Run executes the source show command.
func (c *SourceShowCmd) Run(deps *Dependencies) error {
	source, err := deps.Sources.FindSourceByName(deps.Ctx, c.Name)
	if err != nil {
		return fail(deps, err)
	}
	data, err := fs.EncodeConfig(source.Config, fs.Format(c.Format))
	if err != nil {
		return fail(deps, err)
	}
	_, err = deps.Stdout.Write(data)
	return err
}

// Run executes the source delete command.
func (c *SourceDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return novelsrc.Errorf(novelsrc.EINVALID, "use --force to confirm deletion")
	}

	source, err := deps.Sources.FindSourceByName(deps.Ctx, c.Name)
	if novelsrc.ErrorCode(err) == novelsrc.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: source %q not found. Use 'novelsrc source list' to see stored sources.\n", c.Name)
		return err
	}
	if err != nil {
		return fail(deps, err)
	}

	if err := deps.Sources.DeleteSource(deps.Ctx, source.ID); err != nil {
		return fail(deps, err)
	}
	fmt.Fprintf(deps.Stdout, "Deleted source %q\n", c.Name)
	return nil
}
