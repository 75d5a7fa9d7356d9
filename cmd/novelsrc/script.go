package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/novelsrc/otto"
)

// Run executes the script command.
func (c *ScriptCmd) Run(deps *Dependencies) error {
	src, err := os.ReadFile(c.File)
	if err != nil {
		return fail(deps, err)
	}

	fetcher, err := deps.Fetchers(false)
	if err != nil {
		return fail(deps, err)
	}
	defer fetcher.Close()

	opts := []otto.Option{otto.WithFetcher(fetcher)}
	if deps.Logger != nil {
		opts = append(opts, otto.WithLogger(deps.Logger))
	}
	host, err := otto.NewHost(opts...)
	if err != nil {
		return fail(deps, err)
	}
	if err := host.Load(deps.Ctx, string(src)); err != nil {
		return fail(deps, err)
	}

	out, err := host.Call(deps.Ctx, c.Function, c.Args...)
	if err != nil {
		return fail(deps, err)
	}
	fmt.Fprintln(deps.Stdout, out)
	return nil
}
