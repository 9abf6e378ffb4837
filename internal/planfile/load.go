package planfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/sugipamo/project-cph-sub010/internal/builder"
	"github.com/sugipamo/project-cph-sub010/internal/ctxlog"
)

// fileRoot decodes the top-level blocks of one plan file.
type fileRoot struct {
	Plans  []*planBlock `hcl:"plan,block"`
	Remain hcl.Body     `hcl:",remain"`
}

type planBlock struct {
	Name  string       `hcl:"name,label"`
	Steps []*stepBlock `hcl:"step,block"`
}

type stepBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// Load reads every plan block reachable from path, which may be a single
// .hcl file or a directory searched recursively. Multiple plan blocks
// merge into one plan: the first block names it, steps append in file
// order.
func Load(ctx context.Context, path string) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findPlanFiles(path)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl plan files found at %s", path)
	}
	logger.Debug("Discovered plan files.", "count", len(files))

	parser := hclparse.NewParser()
	var name string
	var steps []*stepBlock

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse plan file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode plan file %s: %w", file, diags)
		}

		for _, p := range root.Plans {
			if name == "" {
				name = p.Name
			} else {
				logger.Debug("Merging additional plan block.", "plan", p.Name, "file", file)
			}
			steps = append(steps, p.Steps...)
		}
	}

	if len(steps) == 0 {
		return nil, fmt.Errorf("no plan blocks found at %s", path)
	}

	known := make(map[string]struct{}, len(steps))
	for _, s := range steps {
		if _, dup := known[s.Name]; dup {
			return nil, fmt.Errorf("duplicate step '%s'", s.Name)
		}
		known[s.Name] = struct{}{}
	}

	evalCtx := stepEvalContext(steps)
	raws := make([]map[string]any, 0, len(steps))
	for _, s := range steps {
		raw, err := decodeStep(s, evalCtx, known)
		if err != nil {
			return nil, err
		}
		raws = append(raws, raw)
	}

	parsed, err := builder.ParseSteps(raws)
	if err != nil {
		return nil, err
	}
	logger.Debug("Plan loaded.", "plan", name, "steps", len(parsed))
	return &Plan{Name: name, Steps: parsed}, nil
}

// findPlanFiles resolves path into the list of .hcl files to parse,
// deduplicated, in walk order.
func findPlanFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("plan path %s does not exist", path)
		}
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	if !info.IsDir() {
		if filepath.Ext(path) != ".hcl" {
			return nil, nil
		}
		return []string{path}, nil
	}

	var files []string
	seen := make(map[string]struct{})
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(p) != ".hcl" {
			return nil
		}
		if _, wasSeen := seen[p]; !wasSeen {
			files = append(files, p)
			seen[p] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
