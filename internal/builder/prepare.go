package builder

import (
	"path"
	"strings"
)

// ResolvePreparation inserts an allow-failure mkdir step ahead of the
// first step writing into each directory, so workflows do not have to
// declare scaffolding by hand. Each directory is prepared at most once.
func ResolvePreparation(steps []Step) []Step {
	resolved := make([]Step, 0, len(steps))
	prepared := make(map[string]struct{})

	for _, s := range steps {
		if dir := preparationDir(s); dir != "" {
			if _, done := prepared[dir]; !done {
				resolved = append(resolved, Step{
					Type:         TypeMkdir,
					Cmd:          []string{dir},
					AllowFailure: true,
				})
				prepared[dir] = struct{}{}
			}
		}
		resolved = append(resolved, s)
	}
	return resolved
}

// preparationDir returns the directory a step writes into, or "" when
// nothing needs preparing.
func preparationDir(s Step) string {
	if len(s.Cmd) == 0 {
		return ""
	}
	switch s.Type {
	case TypeTouch:
		return extractDirectory(s.Cmd[0])
	case TypeCopy, TypeMove:
		return extractDirectory(s.Cmd[len(s.Cmd)-1])
	}
	return ""
}

// DedupeSteps drops duplicate mkdir steps targeting a directory already
// created earlier in the sequence. Other step types pass through.
func DedupeSteps(steps []Step) []Step {
	optimized := make([]Step, 0, len(steps))
	seenMkdirs := make(map[string]struct{})

	for _, s := range steps {
		if s.Type == TypeMkdir && len(s.Cmd) > 0 {
			if _, seen := seenMkdirs[s.Cmd[0]]; seen {
				continue
			}
			seenMkdirs[s.Cmd[0]] = struct{}{}
		}
		optimized = append(optimized, s)
	}
	return optimized
}

// extractDirectory returns the parent directory of a slash-separated
// path, or "" when the path has no meaningful parent. Plans always use
// forward slashes.
func extractDirectory(p string) string {
	if !strings.Contains(p, "/") {
		return ""
	}
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}
