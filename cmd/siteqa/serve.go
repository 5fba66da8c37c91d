package main

import (
	"fmt"
	"net/http"

	"github.com/mwestrik/siteqa/api"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	addr := deps.Addr
	if c.Addr != "" {
		addr = c.Addr
	}

	server := api.NewServer(deps.Pipeline, deps.Retriever, deps.Crawler, deps.Store, deps.DBPath, deps.Logger)

	fmt.Fprintf(deps.Stdout, "listening on %s (db: %s)\n", addr, deps.DBPath)
	return http.ListenAndServe(addr, server)
}
