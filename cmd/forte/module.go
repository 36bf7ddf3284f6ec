package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/forte/debugs"
	"github.com/reusee/forte/forteconfigs"
	"github.com/reusee/forte/logs"
)

type Module struct {
	dscope.Module
	Configs forteconfigs.Module
	Debugs  debugs.Module
	Logs    logs.Module
}
