// Package main is the entry point for the cinecli application.
package main

import (
	"github.com/cinecli/cinecli/cmd"
	"github.com/cinecli/cinecli/config"
	"github.com/cinecli/cinecli/internal/cache"
	"github.com/cinecli/cinecli/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Prune expired preview caches without delaying startup.
	go cache.CollectGarbage()

	cmd.Execute()
}
