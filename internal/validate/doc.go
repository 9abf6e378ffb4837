// Package validate gates a dependency graph before execution. Three
// independent checks cover structural integrity, weak connectivity and
// execution feasibility; each returns a Result whose errors make the
// graph unusable while warnings and suggestions stay advisory.
//
// The checks accept raw node and edge slices rather than a built graph
// so they can run before construction and report problems, duplicate
// ids included, that the constructor would reject outright.
package validate
