package app

import (
	"github.com/sugipamo/project-cph-sub010/internal/registry"
	"github.com/sugipamo/project-cph-sub010/modules/docker"
	"github.com/sugipamo/project-cph-sub010/modules/fileop"
	"github.com/sugipamo/project-cph-sub010/modules/oj"
	"github.com/sugipamo/project-cph-sub010/modules/python"
	"github.com/sugipamo/project-cph-sub010/modules/shell"
)

// coreModules is the definitive list of driver modules compiled into the
// binary.
var coreModules = []registry.Module{
	&shell.Module{},
	&fileop.Module{},
	&python.Module{},
	&docker.Module{},
	&oj.Module{},
}
