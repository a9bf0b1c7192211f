// Package runner executes assertion suites. It supports single,
// sequential, dependency-ordered and parallel execution.
package runner

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"digital.vasic.typeassert/pkg/assertion"
	"digital.vasic.typeassert/pkg/load"
	"digital.vasic.typeassert/pkg/logging"
	"digital.vasic.typeassert/pkg/matcher"
	"digital.vasic.typeassert/pkg/metrics"
	"digital.vasic.typeassert/pkg/plugin"
	"digital.vasic.typeassert/pkg/suite"
)

// Hook is a function invoked before or after a suite runs.
type Hook func(ctx context.Context, def *suite.Definition) error

// Runner loads the source of each suite and evaluates its
// assertions. Every run loads its own program, so suites never
// share loader state.
type Runner struct {
	logger       logging.Logger
	fileLogger   *logging.JSONLogger
	logDir       string
	verbose      bool
	concurrency  int
	timeout      time.Duration
	preHooks     []Hook
	postHooks    []Hook
	selectorOpts []assertion.Option
	metrics      metrics.SuiteMetrics
	plugins      []plugin.Plugin
	pluginConfig map[string]any
	active       atomic.Int32
}

// New creates a Runner with the supplied options. It fails when
// the log directory cannot be set up or a plugin fails to install.
func New(opts ...Option) (*Runner, error) {
	r := &Runner{
		logger:      logging.NullLogger{},
		concurrency: 4,
		metrics:     metrics.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.logDir != "" {
		fileLogger, err := logging.SetupLogging(r.logDir, r.verbose)
		if err != nil {
			return nil, fmt.Errorf("setup logging in %s: %w", r.logDir, err)
		}
		r.fileLogger = fileLogger
		r.logger = logging.NewMultiLogger(r.logger, fileLogger)
	}

	if len(r.plugins) > 0 {
		engine := matcher.NewEngine()
		if _, err := plugin.Install(engine, r.logger, r.pluginConfig, r.plugins...); err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("install plugins: %w", err)
		}
		r.selectorOpts = append(r.selectorOpts, assertion.WithEngine(engine))
	}
	return r, nil
}

// Close flushes and closes the log files opened by WithLogDir.
func (r *Runner) Close() error {
	if r.fileLogger == nil {
		return nil
	}
	return r.fileLogger.Close()
}

// Run executes a single suite. The error is non-nil only when ctx
// ended before every assertion was evaluated; the partial result is
// returned with it.
func (r *Runner) Run(ctx context.Context, def *suite.Definition) (*suite.Result, error) {
	r.metrics.IncrementRunTotal()
	return r.execute(ctx, def)
}

// RunAll executes suites in order. A suite whose dependencies did
// not pass earlier in the same call is skipped.
func (r *Runner) RunAll(ctx context.Context, defs []*suite.Definition) ([]*suite.Result, error) {
	r.metrics.IncrementRunTotal()
	results := make([]*suite.Result, 0, len(defs))
	passed := make(map[string]bool, len(defs))

	for _, def := range defs {
		if unmet := unmetDependency(def, passed); unmet != "" {
			results = append(results, r.skip(def, unmet))
			continue
		}

		res, err := r.execute(ctx, def)
		results = append(results, res)
		if err != nil {
			return results, fmt.Errorf("suite %s: %w", def.Name, err)
		}
		if res.Status == suite.StatusPassed {
			passed[def.Name] = true
		}
	}
	return results, nil
}

// RunRegistry executes every registered suite in dependency order.
func (r *Runner) RunRegistry(ctx context.Context, reg *suite.Registry) ([]*suite.Result, error) {
	ordered, err := reg.DependencyOrder()
	if err != nil {
		return nil, fmt.Errorf("dependency order: %w", err)
	}
	return r.RunAll(ctx, ordered)
}

func unmetDependency(def *suite.Definition, passed map[string]bool) string {
	for _, dep := range def.Dependencies {
		if !passed[dep] {
			return dep
		}
	}
	return ""
}

func (r *Runner) skip(def *suite.Definition, dep string) *suite.Result {
	now := time.Now()
	res := &suite.Result{
		Suite:     def.Name,
		Category:  def.Category,
		Status:    suite.StatusSkipped,
		StartTime: now,
		Error:     "unmet dependency: " + dep,
	}
	res.Finish(now)
	r.metrics.RecordExecution(res.Suite, res.Status, res.Duration)
	r.logger.Warn("suite skipped",
		logging.StringField("suite", def.Name),
		logging.StringField("dependency", dep))
	return res
}

// execute runs one suite and records its metrics.
func (r *Runner) execute(ctx context.Context, def *suite.Definition) (*suite.Result, error) {
	r.metrics.SetActiveSuites(int(r.active.Add(1)))
	defer func() { r.metrics.SetActiveSuites(int(r.active.Add(-1))) }()

	res, err := r.evaluate(ctx, def)
	for _, a := range res.Assertions {
		r.metrics.RecordCheck(res.Suite, a.Check, a.Passed)
	}
	r.metrics.RecordExecution(res.Suite, res.Status, res.Duration)
	return res, err
}

// evaluate runs a suite through its lifecycle: pre-hooks, source
// loading, assertion evaluation, post-hooks.
func (r *Runner) evaluate(ctx context.Context, def *suite.Definition) (*suite.Result, error) {
	res := &suite.Result{
		Suite:     def.Name,
		Category:  def.Category,
		Status:    suite.StatusPending,
		StartTime: time.Now(),
	}
	log := r.logger.WithFields(logging.StringField("suite", def.Name))
	log.Info("suite started", logging.IntField("assertions", len(def.Assertions)))

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	for _, hook := range r.preHooks {
		if err := hook(ctx, def); err != nil {
			return r.fail(res, log, fmt.Sprintf("pre-hook failed: %v", err)), nil
		}
	}

	src, err := def.Build()
	if err != nil {
		return r.fail(res, log, fmt.Sprintf("build source: %v", err)), nil
	}
	program, err := load.Load(src, load.WithLogger(log))
	if err != nil {
		return r.fail(res, log, fmt.Sprintf("load source: %v", err)), nil
	}
	for _, d := range program.Diagnostics {
		res.Diagnostics = append(res.Diagnostics, d.String())
	}

	opts := []assertion.Option{
		assertion.WithLogger(log),
		assertion.WithSuite(def.Name),
		assertion.WithColors(false),
	}
	sel := assertion.NewSelector(program, append(opts, r.selectorOpts...)...)

	for _, a := range def.Assertions {
		if err := ctx.Err(); err != nil {
			res.Status = suite.StatusError
			res.Error = fmt.Sprintf("interrupted: %v", err)
			res.Finish(time.Now())
			log.Warn("suite interrupted", logging.ErrorField(err))
			return res, err
		}
		res.Assertions = append(res.Assertions, sel.Evaluate(a))
	}
	res.Finish(time.Now())

	for _, hook := range r.postHooks {
		if err := hook(ctx, def); err != nil {
			log.Warn("post-hook failed", logging.ErrorField(err))
		}
	}

	log.Info("suite finished",
		logging.StringField("status", res.Status),
		logging.IntField("passed", res.Passed()),
		logging.IntField("failed", res.Failed()),
		logging.IntField("diagnostics", len(res.Diagnostics)),
		logging.DurationField("duration_ms", res.Duration))
	return res, nil
}

func (r *Runner) fail(res *suite.Result, log logging.Logger, msg string) *suite.Result {
	res.Status = suite.StatusError
	res.Error = msg
	res.Finish(time.Now())
	log.Error("suite failed", logging.StringField("error", msg))
	return res
}
