package builder

import (
	"errors"
	"fmt"
)

// StepType identifies what a workflow step does.
type StepType string

const (
	TypeShell      StepType = "shell"
	TypeMkdir      StepType = "mkdir"
	TypeTouch      StepType = "touch"
	TypeCopy       StepType = "copy"
	TypeMove       StepType = "move"
	TypeRemove     StepType = "remove"
	TypeRmtree     StepType = "rmtree"
	TypePython     StepType = "python"
	TypeDockerRun  StepType = "docker_run"
	TypeDockerExec StepType = "docker_exec"
	TypeDockerCp   StepType = "docker_cp"
	TypeOJ         StepType = "oj"
)

var knownStepTypes = map[StepType]struct{}{
	TypeShell:      {},
	TypeMkdir:      {},
	TypeTouch:      {},
	TypeCopy:       {},
	TypeMove:       {},
	TypeRemove:     {},
	TypeRmtree:     {},
	TypePython:     {},
	TypeDockerRun:  {},
	TypeDockerExec: {},
	TypeDockerCp:   {},
	TypeOJ:         {},
}

// KnownStepType reports whether t is a recognized step type.
func KnownStepType(t StepType) bool {
	_, ok := knownStepTypes[t]
	return ok
}

// Step is one declarative workflow entry before graph construction.
// Name is optional; DependsOn entries reference other steps by name.
type Step struct {
	Type         StepType
	Cmd          []string
	Cwd          string
	Name         string
	DependsOn    []string
	AllowFailure bool
	ShowOutput   bool
}

// ParseSteps validates raw step maps, as decoded from a plan file, into
// typed steps. Every finding is collected; the joined error reports all
// invalid steps at once.
func ParseSteps(raw []map[string]any) ([]Step, error) {
	steps := make([]Step, 0, len(raw))
	var errs []error

	for i, m := range raw {
		typ := stringField(m, "type")
		if typ == "" {
			errs = append(errs, fmt.Errorf("step %d: missing 'type' field", i))
			continue
		}
		if !KnownStepType(StepType(typ)) {
			errs = append(errs, fmt.Errorf("step %d: invalid type '%s'", i, typ))
			continue
		}

		cmd, ok := stringSliceField(m, "cmd")
		if !ok {
			errs = append(errs, fmt.Errorf("step %d: field 'cmd' must be a list of strings", i))
			continue
		}
		dependsOn, ok := stringSliceField(m, "depends_on")
		if !ok {
			errs = append(errs, fmt.Errorf("step %d: field 'depends_on' must be a list of strings", i))
			continue
		}

		steps = append(steps, Step{
			Type:         StepType(typ),
			Cmd:          cmd,
			Cwd:          stringField(m, "cwd"),
			Name:         stringField(m, "name"),
			DependsOn:    dependsOn,
			AllowFailure: boolField(m, "allow_failure"),
			ShowOutput:   boolField(m, "show_output"),
		})
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return steps, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func boolField(m map[string]any, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

// stringSliceField accepts both []string and []any-of-string values; a
// missing key yields a nil slice and ok.
func stringSliceField(m map[string]any, key string) ([]string, bool) {
	v, present := m[key]
	if !present || v == nil {
		return nil, true
	}
	switch vv := v.(type) {
	case []string:
		out := make([]string, len(vv))
		copy(out, vv)
		return out, true
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
