package forteconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/forte/cmds"
	"github.com/reusee/forte/configs"
	"github.com/reusee/forte/logs"
)

//go:embed schema.cue
var schema string

var configFlag = cmds.Collect[string]("-config", "load a config file, may repeat")

func init() {
	cmds.Define("-no-config", cmds.Func(func() {
		noDefaultConfigs = true
	}).Desc("ignore forte.cue files in default locations"))
}

var noDefaultConfigs bool

var filenames = []string{
	"forte.cue",
	".forte.cue",
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {

	var paths []string
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	// explicit
	paths = append(paths, *configFlag...)

	if !noDefaultConfigs {
		paths = append(paths, defaultPaths()...)
	}

	return configs.NewLoader(paths, schema)
}

func defaultPaths() (paths []string) {
	var dirs []string

	// working directory
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}

	// user config dir
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "forte"))
	}

	// system wide dir
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}
