package forteconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/forte/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
