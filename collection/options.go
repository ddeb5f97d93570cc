package collection

import (
	"github.com/kbukum/collectionkit/logger"
	"github.com/kbukum/collectionkit/observability"
)

// Option configures a concurrent orchestration call.
type Option func(*options)

type options struct {
	name     string
	bounded  bool
	limit    int
	priority Priority
	launcher Launcher
	log      *logger.Logger
	metrics  *observability.Metrics
}

func newOptions(name string, opts []Option) *options {
	o := &options{
		name:     name,
		launcher: GoLauncher{},
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) executor() string {
	if o.bounded {
		return executorBounded
	}
	return executorUnbounded
}

// WithLimit caps the number of operations in flight. n must be at least 1;
// anything else makes the call fail with an INVALID_ARGUMENT error before any
// element is launched.
func WithLimit(n int) Option {
	return func(o *options) {
		o.bounded = true
		o.limit = n
	}
}

// WithPriority sets the scheduling hint forwarded to the Launcher.
func WithPriority(p Priority) Option {
	return func(o *options) { o.priority = p }
}

// WithLauncher replaces the default one-goroutine-per-task launcher.
func WithLauncher(l Launcher) Option {
	return func(o *options) {
		if l != nil {
			o.launcher = l
		}
	}
}

// WithLogger sets the logger used for run lifecycle events.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMetrics records run and task metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithName overrides the operation name used in spans, logs and metrics.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}
