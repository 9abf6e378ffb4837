package builder

// Resources is the on-disk footprint of one step, used for dependency
// inference.
type Resources struct {
	CreatesFiles []string
	CreatesDirs  []string
	ReadsFiles   []string
	RequiresDirs []string
}

// StepResources derives what a step creates and consumes. Step types
// without a declarative footprint (shell, python, docker, oj) report
// nothing; their ordering comes from explicit depends_on entries.
func StepResources(s Step) Resources {
	var r Resources

	switch s.Type {
	case TypeTouch:
		if len(s.Cmd) > 0 {
			r.CreatesFiles = append(r.CreatesFiles, s.Cmd[0])
			if dir := extractDirectory(s.Cmd[0]); dir != "" {
				r.RequiresDirs = append(r.RequiresDirs, dir)
			}
		}
	case TypeMkdir:
		if len(s.Cmd) > 0 {
			r.CreatesDirs = append(r.CreatesDirs, s.Cmd[0])
		}
	case TypeCopy, TypeMove:
		if len(s.Cmd) >= 2 {
			r.ReadsFiles = append(r.ReadsFiles, s.Cmd[0])
			r.CreatesFiles = append(r.CreatesFiles, s.Cmd[1])
			if dir := extractDirectory(s.Cmd[1]); dir != "" {
				r.RequiresDirs = append(r.RequiresDirs, dir)
			}
		}
	}
	return r
}
