package runner

import (
	"time"

	"digital.vasic.typeassert/pkg/assertion"
	"digital.vasic.typeassert/pkg/logging"
	"digital.vasic.typeassert/pkg/metrics"
	"digital.vasic.typeassert/pkg/plugin"
)

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used by the runner, the loader and
// the assertion facade.
func WithLogger(logger logging.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithLogDir additionally writes JSON Lines logs of every run to
// dir: general entries to typeassert.log, check records to
// checks.log.
func WithLogDir(dir string, verbose bool) Option {
	return func(r *Runner) {
		r.logDir = dir
		r.verbose = verbose
	}
}

// WithConcurrency sets how many suites RunParallel runs at once.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// WithTimeout bounds the execution of each suite.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.timeout = timeout
	}
}

// WithPreHook adds a hook run before a suite is loaded.
func WithPreHook(h Hook) Option {
	return func(r *Runner) {
		r.preHooks = append(r.preHooks, h)
	}
}

// WithPostHook adds a hook run after a suite finished.
func WithPostHook(h Hook) Option {
	return func(r *Runner) {
		r.postHooks = append(r.postHooks, h)
	}
}

// WithSelectorOptions passes options to every selector the runner
// creates.
func WithSelectorOptions(opts ...assertion.Option) Option {
	return func(r *Runner) {
		r.selectorOpts = append(r.selectorOpts, opts...)
	}
}

// WithMetrics records suite and check outcomes in m.
func WithMetrics(m metrics.SuiteMetrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithPlugins installs plugins into a check engine shared by every
// selector the runner creates.
func WithPlugins(plugins ...plugin.Plugin) Option {
	return func(r *Runner) {
		r.plugins = append(r.plugins, plugins...)
	}
}

// WithPluginConfig sets the configuration handed to plugins.
func WithPluginConfig(config map[string]any) Option {
	return func(r *Runner) {
		r.pluginConfig = config
	}
}
