package request

import "regexp"

// Placeholder forms, longest first so {{id.result.field}} never gets
// half-eaten by the short form.
var (
	resultPlaceholderRe = regexp.MustCompile(`\{\{(\w+)\.result\.(\w+)\}\}`)
	fieldPlaceholderRe  = regexp.MustCompile(`\{\{(\w+)\.(\w+)\}\}`)
)

// Substitute expands outcome placeholders in text. Both {{id.result.field}}
// and {{id.field}} resolve against the outcome recorded for the full node
// id; a placeholder whose node or field is unknown stays verbatim so the
// failure is visible downstream instead of silently becoming empty.
func Substitute(text string, results map[string]*Outcome) string {
	text = replacePlaceholders(text, resultPlaceholderRe, results)
	text = replacePlaceholders(text, fieldPlaceholderRe, results)
	return text
}

func replacePlaceholders(text string, re *regexp.Regexp, results map[string]*Outcome) string {
	return re.ReplaceAllStringFunc(text, func(match string) string {
		parts := re.FindStringSubmatch(match)
		id, field := parts[1], parts[2]
		outcome, ok := results[id]
		if !ok || outcome == nil {
			return match
		}
		value, ok := outcome.Fields()[field]
		if !ok {
			return match
		}
		return value
	})
}

// Substituted returns a copy of the request with placeholders expanded in
// every substitutable field. The receiver is never modified.
func (r *Request) Substituted(results map[string]*Outcome) *Request {
	out := *r
	out.Cwd = Substitute(r.Cwd, results)
	out.Image = Substitute(r.Image, results)
	out.Container = Substitute(r.Container, results)
	if len(r.Cmd) > 0 {
		out.Cmd = make([]string, len(r.Cmd))
		for i, arg := range r.Cmd {
			out.Cmd[i] = Substitute(arg, results)
		}
	}
	if len(r.Env) > 0 {
		out.Env = make(map[string]string, len(r.Env))
		for k, v := range r.Env {
			out.Env[k] = Substitute(v, results)
		}
	}
	return &out
}
