package collection

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/collectionkit/errors"
)

// Priority is an opaque scheduling hint. The engine never branches on it: it
// is handed to the Launcher and exposed to operations through their context.
type Priority int

const (
	PriorityUnspecified Priority = iota
	PriorityBackground
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityUserInitiated
)

var priorityNames = map[Priority]string{
	PriorityUnspecified:   "unspecified",
	PriorityBackground:    "background",
	PriorityLow:           "low",
	PriorityMedium:        "medium",
	PriorityHigh:          "high",
	PriorityUserInitiated: "user_initiated",
}

// String returns the config name of the priority.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

// ParsePriority parses a config name. The empty string is PriorityUnspecified.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityUnspecified, nil
	}
	for p, name := range priorityNames {
		if name == s {
			return p, nil
		}
	}
	return PriorityUnspecified, errors.InvalidArgument("priority", fmt.Sprintf("unknown priority %q", s))
}

type contextKey int

const (
	priorityKey contextKey = iota
	runIDKey
)

// PriorityFromContext returns the priority hint of the orchestration that
// launched the current operation.
func PriorityFromContext(ctx context.Context) (Priority, bool) {
	p, ok := ctx.Value(priorityKey).(Priority)
	return p, ok
}

// RunIDFromContext returns the ID of the orchestration that launched the
// current operation.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok
}
