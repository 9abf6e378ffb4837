package request

import (
	"fmt"
	"regexp"
)

// References lists the node part of every placeholder in text, without
// duplicates. Plan loading uses this to turn result references into
// implicit dependencies.
func References(text string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, re := range []*regexp.Regexp{resultPlaceholderRe, fieldPlaceholderRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if _, dup := seen[m[1]]; dup {
				continue
			}
			seen[m[1]] = struct{}{}
			names = append(names, m[1])
		}
	}
	return names
}

// RenameReferences rewrites the node part of each placeholder through
// rename; names without a mapping stay as they are.
func RenameReferences(text string, rename map[string]string) string {
	text = resultPlaceholderRe.ReplaceAllStringFunc(text, func(match string) string {
		parts := resultPlaceholderRe.FindStringSubmatch(match)
		id, ok := rename[parts[1]]
		if !ok {
			return match
		}
		return fmt.Sprintf("{{%s.result.%s}}", id, parts[2])
	})
	return fieldPlaceholderRe.ReplaceAllStringFunc(text, func(match string) string {
		parts := fieldPlaceholderRe.FindStringSubmatch(match)
		id, ok := rename[parts[1]]
		if !ok {
			return match
		}
		return fmt.Sprintf("{{%s.%s}}", id, parts[2])
	})
}

// RenamedReferences returns a copy of the request with every placeholder
// node mapped through rename. Plans reference steps by name while
// execution results are keyed by node id; the builder applies the
// name-to-id mapping once, at build time.
func (r *Request) RenamedReferences(rename map[string]string) *Request {
	out := *r
	out.Cwd = RenameReferences(r.Cwd, rename)
	out.Image = RenameReferences(r.Image, rename)
	out.Container = RenameReferences(r.Container, rename)
	if len(r.Cmd) > 0 {
		out.Cmd = make([]string, len(r.Cmd))
		for i, arg := range r.Cmd {
			out.Cmd[i] = RenameReferences(arg, rename)
		}
	}
	if len(r.Env) > 0 {
		out.Env = make(map[string]string, len(r.Env))
		for k, v := range r.Env {
			out.Env[k] = RenameReferences(v, rename)
		}
	}
	return &out
}
