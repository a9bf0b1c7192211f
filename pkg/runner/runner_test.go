package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"digital.vasic.typeassert/pkg/assertion"
	"digital.vasic.typeassert/pkg/matcher"
	"digital.vasic.typeassert/pkg/metrics"
	"digital.vasic.typeassert/pkg/plugin"
	"digital.vasic.typeassert/pkg/source"
	"digital.vasic.typeassert/pkg/suite"
	"digital.vasic.typeassert/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var isolated = source.Options{IgnoreProjectOptions: true}

func rawSuite(name, code string, checks ...assertion.Definition) *suite.Definition {
	return &suite.Definition{
		Name:       name,
		Source:     suite.Source{Raw: code, Options: isolated},
		Assertions: checks,
	}
}

func newRunner(t *testing.T, opts ...Option) *Runner {
	t.Helper()
	r, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRun_Passed(t *testing.T) {
	r := newRunner(t)
	def := rawSuite("literals", `export type L = "a" | "b";`,
		assertion.Definition{Type: "L", Check: "isUnion", Expected: types.Union(types.StringLiteral("a"), types.StringLiteral("b"))},
		assertion.Definition{Type: "L", Check: "isString", Not: true},
	)

	res, err := r.Run(context.Background(), def)
	require.NoError(t, err)
	assert.Equal(t, suite.StatusPassed, res.Status)
	assert.Equal(t, "literals", res.Suite)
	require.Len(t, res.Assertions, 2)
	assert.True(t, res.Assertions[1].Negated)
	assert.Empty(t, res.Diagnostics)
	assert.False(t, res.EndTime.Before(res.StartTime))
}

func TestRun_Failed(t *testing.T) {
	r := newRunner(t)
	def := rawSuite("tuple", `export type C = [string, number];`,
		assertion.Definition{
			Type:     "C",
			Check:    "isTuple",
			Expected: types.Tuple(types.Number(), types.Number()),
			Message:  "C holds a name and a count",
		},
		assertion.Definition{Type: "C", Check: "isTupel"},
	)

	res, err := r.Run(context.Background(), def)
	require.NoError(t, err)
	assert.Equal(t, suite.StatusFailed, res.Status)
	require.Len(t, res.Assertions, 2)

	first := res.Assertions[0]
	assert.False(t, first.Passed)
	assert.True(t, strings.HasPrefix(first.Message, "C holds a name and a count"))

	unknown := res.Assertions[1]
	assert.Equal(t, matcher.Misused, unknown.Outcome)
	assert.Contains(t, unknown.Message, "did you mean isTuple?")
}

func TestRun_Diagnostics(t *testing.T) {
	r := newRunner(t)
	res, err := r.Run(context.Background(), rawSuite("diags", `export type A = Missing;`,
		assertion.Definition{Type: "A", Check: "isDefined"},
	))
	require.NoError(t, err)
	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0], "TS2304")
}

func TestRun_SourceError(t *testing.T) {
	r := newRunner(t)
	def := &suite.Definition{
		Name:   "missing",
		Source: suite.Source{File: filepath.Join(t.TempDir(), "missing.ts")},
	}

	res, err := r.Run(context.Background(), def)
	require.NoError(t, err)
	assert.Equal(t, suite.StatusError, res.Status)
	assert.Contains(t, res.Error, "build source")
}

func TestRun_Cancelled(t *testing.T) {
	r := newRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Run(ctx, rawSuite("cancelled", `export type S = string;`,
		assertion.Definition{Type: "S", Check: "isString"},
	))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, suite.StatusError, res.Status)
	assert.Empty(t, res.Assertions)
}

func TestRun_Hooks(t *testing.T) {
	var post atomic.Int32
	r := newRunner(t,
		WithPostHook(func(_ context.Context, _ *suite.Definition) error {
			post.Add(1)
			return errors.New("ignored")
		}),
	)
	res, err := r.Run(context.Background(), rawSuite("ok", `export type S = string;`))
	require.NoError(t, err)
	assert.Equal(t, suite.StatusPassed, res.Status)
	assert.Equal(t, int32(1), post.Load())

	failing := newRunner(t,
		WithPreHook(func(_ context.Context, def *suite.Definition) error {
			return fmt.Errorf("no setup for %s", def.Name)
		}),
	)
	res, err = failing.Run(context.Background(), rawSuite("blocked", `export type S = string;`))
	require.NoError(t, err)
	assert.Equal(t, suite.StatusError, res.Status)
	assert.Equal(t, "pre-hook failed: no setup for blocked", res.Error)
}

func TestRunAll_SkipsUnmetDependencies(t *testing.T) {
	r := newRunner(t)
	failing := rawSuite("base", `export type S = string;`,
		assertion.Definition{Type: "S", Check: "isNumber"})
	dependent := rawSuite("dependent", `export type S = string;`,
		assertion.Definition{Type: "S", Check: "isString"})
	dependent.Dependencies = []string{"base"}

	results, err := r.RunAll(context.Background(), []*suite.Definition{failing, dependent})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, suite.StatusFailed, results[0].Status)
	assert.Equal(t, suite.StatusSkipped, results[1].Status)
	assert.Equal(t, "unmet dependency: base", results[1].Error)
}

func TestRunRegistry_DependencyOrder(t *testing.T) {
	reg := suite.NewRegistry()
	second := rawSuite("b", `export type S = string;`, assertion.Definition{Type: "S", Check: "isString"})
	second.Dependencies = []string{"c"}
	require.NoError(t, reg.Register(second))
	require.NoError(t, reg.Register(rawSuite("c", `export type N = number;`, assertion.Definition{Type: "N", Check: "isNumber"})))

	results, err := newRunner(t).RunRegistry(context.Background(), reg)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "c", results[0].Suite)
	assert.Equal(t, "b", results[1].Suite)
	assert.Equal(t, suite.StatusPassed, results[1].Status)
}

func TestRunParallel_KeepsOrder(t *testing.T) {
	r := newRunner(t, WithConcurrency(3))

	var defs []*suite.Definition
	for i := 0; i < 8; i++ {
		code := fmt.Sprintf("export type T = %d;", i)
		defs = append(defs, rawSuite(fmt.Sprintf("suite-%d", i), code,
			assertion.Definition{Type: "T", Check: "isNumberLiteral", Expected: types.NumberLiteral(float64(i))}))
	}

	results, err := r.RunParallel(context.Background(), defs)
	require.NoError(t, err)
	require.Len(t, results, len(defs))
	for i, res := range results {
		assert.Equal(t, fmt.Sprintf("suite-%d", i), res.Suite)
		assert.Equal(t, suite.StatusPassed, res.Status)
	}
}

func TestRunParallel_Cancelled(t *testing.T) {
	r := newRunner(t, WithConcurrency(2))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RunParallel(ctx, []*suite.Definition{
		rawSuite("a", `export type S = string;`, assertion.Definition{Type: "S", Check: "isString"}),
		rawSuite("b", `export type S = string;`, assertion.Definition{Type: "S", Check: "isString"}),
	})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWithLogDir(t *testing.T) {
	dir := t.TempDir()
	r, err := New(WithLogDir(dir, true), WithTimeout(time.Minute))
	require.NoError(t, err)

	_, err = r.Run(context.Background(), rawSuite("logged", `export type S = string;`,
		assertion.Definition{Type: "S", Check: "isString"}))
	require.NoError(t, err)
	require.NoError(t, r.Close())

	general, err := os.ReadFile(filepath.Join(dir, "typeassert.log"))
	require.NoError(t, err)
	assert.Contains(t, string(general), "suite finished")

	checks, err := os.ReadFile(filepath.Join(dir, "checks.log"))
	require.NoError(t, err)
	assert.Contains(t, string(checks), `"check":"isString"`)
	assert.Contains(t, string(checks), `"suite":"logged"`)
}

func TestWithMetrics(t *testing.T) {
	c := metrics.NewCollector()
	r := newRunner(t, WithMetrics(c))

	defs := []*suite.Definition{
		rawSuite("a", `export type A = string;`,
			assertion.Definition{Type: "A", Check: "isString"},
			assertion.Definition{Type: "A", Check: "isNumber"},
		),
		{Name: "b", Dependencies: []string{"a"}, Source: suite.Source{Raw: "export type B = 1;", Options: isolated}},
	}
	_, err := r.RunAll(context.Background(), defs)
	require.NoError(t, err)

	assert.Equal(t, 1, c.RunTotal())
	assert.Equal(t, 1, c.ExecutionCount("a", suite.StatusFailed))
	assert.Equal(t, 1, c.ExecutionCount("b", suite.StatusSkipped))
	assert.Equal(t, 1, c.CheckCount("a", "isString", true))
	assert.Equal(t, 1, c.CheckCount("a", "isNumber", false))
	assert.Equal(t, 0, c.ActiveSuites())
	assert.Equal(t, 1, c.PeakActiveSuites())
}

func TestWithPlugins(t *testing.T) {
	isText := func(ctx *matcher.Context, p matcher.Params) matcher.Result {
		if res := matcher.IsString(ctx, p); res.Passed() {
			return res
		}
		return matcher.IsStringLiteral(ctx, p)
	}
	var seen any
	recorder := configPlugin("recorder", func(cfg map[string]any) { seen = cfg["mode"] })

	r := newRunner(t,
		WithPlugins(plugin.Checks("text", "1.0", map[string]matcher.Check{"isText": isText}), recorder),
		WithPluginConfig(map[string]any{"mode": "strict"}),
	)
	def := rawSuite("text", `export type S = string; export type L = "x"; export type N = 1;`,
		assertion.Definition{Type: "S", Check: "isText"},
		assertion.Definition{Type: "L", Check: "isText"},
		assertion.Definition{Type: "N", Check: "isText", Not: true},
	)

	res, err := r.Run(context.Background(), def)
	require.NoError(t, err)
	assert.Equal(t, suite.StatusPassed, res.Status, res.Assertions)
	assert.Equal(t, "strict", seen)

	_, err = New(WithPlugins(plugin.Checks("dup", "1", map[string]matcher.Check{"isString": isText})))
	assert.ErrorContains(t, err, "install plugins: init plugin \"dup\"")
}

type configProbe struct {
	name string
	fn   func(map[string]any)
}

// configPlugin builds a plugin that only inspects its configuration.
func configPlugin(name string, fn func(map[string]any)) plugin.Plugin {
	return &configProbe{name: name, fn: fn}
}

func (p *configProbe) Name() string    { return p.name }
func (p *configProbe) Version() string { return "0" }
func (p *configProbe) Init(ctx *plugin.PluginContext) error {
	p.fn(ctx.Config)
	return nil
}
