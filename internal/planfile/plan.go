// Package planfile loads workflow plans from HCL files. A plan is a
// named sequence of step blocks; step labels become step names, explicit
// depends_on entries and result references in attribute values both turn
// into ordering dependencies.
package planfile

import (
	"github.com/sugipamo/project-cph-sub010/internal/builder"
)

// Plan is a named workflow: the ordered steps decoded from one or more
// plan files.
type Plan struct {
	Name  string
	Steps []builder.Step
}

// StepTypes returns the distinct request types the plan's steps resolve
// to, in first-use order. The app validates driver coverage with this.
func (p *Plan) StepTypes() []string {
	var types []string
	seen := make(map[string]struct{})
	for _, s := range p.Steps {
		t := builder.RequestType(s.Type)
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	return types
}
