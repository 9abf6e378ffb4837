package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/sugipamo/project-cph-sub010/internal/ctxlog"
	"github.com/sugipamo/project-cph-sub010/internal/request"
)

// Module is the interface driver packages implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the drivers for a single application instance.
type Registry struct {
	drivers map[string]request.Driver
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		drivers: make(map[string]request.Driver),
	}
}

// Register adds a driver under its request type. Registering the same
// type twice is a wiring bug, so it panics; startup panics are recovered
// at the top of main.
func (r *Registry) Register(d request.Driver) {
	t := d.Type()
	if _, exists := r.drivers[t]; exists {
		panic(fmt.Sprintf("driver for request type '%s' already registered", t))
	}
	slog.Debug("Registering request driver.", "type", t)
	r.drivers[t] = d
}

// Driver looks up the driver for a request type.
func (r *Registry) Driver(t string) (request.Driver, bool) {
	d, ok := r.drivers[t]
	return d, ok
}

// Types returns the registered request types, sorted.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.drivers))
	for t := range r.drivers {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Dispatch routes a request to its driver.
func (r *Registry) Dispatch(ctx context.Context, req *request.Request) (*request.Outcome, error) {
	d, ok := r.drivers[req.Type]
	if !ok {
		return nil, fmt.Errorf("unsupported request type: %s", req.Type)
	}
	return d.Execute(ctx, req)
}

// Validate checks that every request type used by the plan has a
// registered driver. Registered drivers the plan never uses are only
// logged, since a fat binary serving a small plan is normal.
func (r *Registry) Validate(ctx context.Context, usedTypes []string) error {
	logger := ctxlog.FromContext(ctx)

	var errs []string
	used := make(map[string]struct{}, len(usedTypes))
	for _, t := range usedTypes {
		used[t] = struct{}{}
		if _, ok := r.drivers[t]; !ok {
			errs = append(errs, fmt.Sprintf("no driver registered for request type '%s'", t))
		}
	}
	for _, t := range r.Types() {
		if _, ok := used[t]; !ok {
			logger.Debug("Driver registered but unused by this plan.", "type", t)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("driver validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
