package service

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

const (
	StatusUp   = "up"
	StatusDown = "down"
)

// PingFunc reports whether one dependency is reachable.
type PingFunc func(ctx context.Context) error

type HealthChecker struct {
	names  []string
	checks map[string]PingFunc
}

func NewHealthChecker(checks map[string]PingFunc) *HealthChecker {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return &HealthChecker{names: names, checks: checks}
}

// Check pings every dependency concurrently and waits for all of them.
// It returns the per-dependency status and the first failure, if any.
func (h *HealthChecker) Check(ctx context.Context) (map[string]string, error) {
	statuses := make([]string, len(h.names))
	var g errgroup.Group

	for i, name := range h.names {
		i, name := i, name
		g.Go(func() error {
			if err := h.checks[name](ctx); err != nil {
				statuses[i] = StatusDown
				return fmt.Errorf("%s: %w", name, err)
			}
			statuses[i] = StatusUp
			return nil
		})
	}
	err := g.Wait()

	result := make(map[string]string, len(h.names))
	for i, name := range h.names {
		result[name] = statuses[i]
	}
	return result, err
}
