// Package main is the entry point for oddbit.
package main

import (
	"github.com/samber/lo"
	"github.com/syirilrakhulh/oddbit-player/cmd"
	"github.com/syirilrakhulh/oddbit-player/config"
	"github.com/syirilrakhulh/oddbit-player/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
