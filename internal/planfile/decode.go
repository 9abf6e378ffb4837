package planfile

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/sugipamo/project-cph-sub010/internal/request"
)

// stepEvalContext exposes every step label as an HCL variable whose
// attributes evaluate to the runtime placeholder syntax. Authors can
// write compile.result.stdout unquoted or "{{compile.result.stdout}}"
// in a string; both end up as the same placeholder text, substituted
// with real outcomes during execution.
func stepEvalContext(steps []*stepBlock) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(steps))
	for _, s := range steps {
		short := make(map[string]cty.Value)
		result := make(map[string]cty.Value)
		for field := range (&request.Outcome{}).Fields() {
			short[field] = cty.StringVal(fmt.Sprintf("{{%s.%s}}", s.Name, field))
			result[field] = cty.StringVal(fmt.Sprintf("{{%s.result.%s}}", s.Name, field))
		}
		short["result"] = cty.ObjectVal(result)
		vars[s.Name] = cty.ObjectVal(short)
	}
	return &hcl.EvalContext{Variables: vars}
}

// decodeStep evaluates one step block into the raw map the builder
// validates, collecting implicit dependencies from both HCL traversals
// and placeholder text along the way.
func decodeStep(s *stepBlock, evalCtx *hcl.EvalContext, known map[string]struct{}) (map[string]any, error) {
	attrs, diags := s.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("step '%s': %w", s.Name, diags)
	}

	raw := make(map[string]any, len(attrs)+1)
	var implicit []string

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		attr := attrs[name]
		for _, traversal := range attr.Expr.Variables() {
			root := traversal.RootName()
			if _, ok := known[root]; ok && root != s.Name {
				implicit = append(implicit, root)
			}
		}

		val, moreDiags := attr.Expr.Value(evalCtx)
		if moreDiags.HasErrors() {
			return nil, fmt.Errorf("step '%s': attribute '%s': %w", s.Name, name, moreDiags)
		}
		converted, err := ctyToGo(val)
		if err != nil {
			return nil, fmt.Errorf("step '%s': attribute '%s': %w", s.Name, name, err)
		}
		raw[name] = converted

		implicit = append(implicit, textReferences(converted, known, s.Name)...)
	}

	// The block label is the step's name, whatever the attributes say.
	raw["name"] = s.Name

	if err := mergeDependsOn(raw, implicit, known, s.Name); err != nil {
		return nil, err
	}
	return raw, nil
}

// textReferences collects placeholder names out of already-converted
// attribute values that resolve to known steps other than self.
func textReferences(value any, known map[string]struct{}, self string) []string {
	var refs []string
	switch v := value.(type) {
	case string:
		for _, name := range request.References(v) {
			if _, ok := known[name]; ok && name != self {
				refs = append(refs, name)
			}
		}
	case []any:
		for _, item := range v {
			refs = append(refs, textReferences(item, known, self)...)
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			refs = append(refs, textReferences(v[k], known, self)...)
		}
	}
	return refs
}

// mergeDependsOn folds implicit dependencies into the declared
// depends_on list, explicit entries first, and verifies every declared
// entry names a real step. A depends_on value of the wrong type is left
// alone for step parsing to report.
func mergeDependsOn(raw map[string]any, implicit []string, known map[string]struct{}, self string) error {
	explicit, coercible := dependsOnList(raw)
	if !coercible {
		return nil
	}
	for _, dep := range explicit {
		if _, ok := known[dep]; !ok {
			return fmt.Errorf("step '%s' depends on non-existent step '%s'", self, dep)
		}
	}

	merged := make([]string, 0, len(explicit)+len(implicit))
	seen := make(map[string]struct{}, len(explicit)+len(implicit))
	for _, dep := range append(explicit, implicit...) {
		if _, dup := seen[dep]; dup {
			continue
		}
		seen[dep] = struct{}{}
		merged = append(merged, dep)
	}
	if len(merged) > 0 {
		raw["depends_on"] = merged
	}
	return nil
}

func dependsOnList(raw map[string]any) ([]string, bool) {
	v, present := raw["depends_on"]
	if !present || v == nil {
		return nil, true
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// ctyToGo lowers an evaluated HCL value into plain Go values for the
// builder's raw step maps.
func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, fmt.Errorf("value is not known at load time")
	}
	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString(), nil
	case t == cty.Bool:
		return v.True(), nil
	case t == cty.Number:
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return int(i), nil
		}
		f, _ := bf.Float64()
		return f, nil
	case t.IsTupleType(), t.IsListType(), t.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			conv, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, conv)
		}
		return out, nil
	case t.IsObjectType(), t.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			conv, err := ctyToGo(ev)
			if err != nil {
				return nil, err
			}
			out[kv.AsString()] = conv
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported attribute type %s", t.FriendlyName())
}
