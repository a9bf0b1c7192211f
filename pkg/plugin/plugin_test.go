package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.typeassert/pkg/matcher"
)

type recordingPlugin struct {
	name    string
	initErr error
	config  map[string]any
	inits   int
}

func (p *recordingPlugin) Name() string    { return p.name }
func (p *recordingPlugin) Version() string { return "1.0" }
func (p *recordingPlugin) Init(ctx *PluginContext) error {
	if p.initErr != nil {
		return p.initErr
	}
	p.inits++
	p.config = ctx.Config
	return nil
}

func alwaysPass(*matcher.Context, matcher.Params) matcher.Result {
	return matcher.Pass()
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(&recordingPlugin{name: "a"}))
	assert.Equal(t, 1, r.Count())

	err := r.Register(&recordingPlugin{name: "a"})
	assert.EqualError(t, err, `plugin "a" already registered`)
	assert.EqualError(t, r.Register(nil), "plugin cannot be nil")
	assert.EqualError(t, r.Register(&recordingPlugin{}), "plugin name cannot be empty")
}

func TestRegistry_InitAll(t *testing.T) {
	r := NewRegistry()
	b := &recordingPlugin{name: "b"}
	a := &recordingPlugin{name: "a"}
	require.NoError(t, r.Register(b))
	require.NoError(t, r.Register(a))

	ctx := &PluginContext{Engine: matcher.NewEngine(), Config: map[string]any{"k": 1}}
	require.NoError(t, r.InitAll(ctx))
	require.NoError(t, r.InitAll(ctx))

	assert.Equal(t, 1, a.inits)
	assert.Equal(t, 1, b.inits)
	assert.Equal(t, 1, a.config["k"])
	assert.True(t, r.IsLoaded("a"))
	assert.Equal(t, []string{"a", "b"}, r.List())

	p, ok := r.Get("b")
	require.True(t, ok)
	assert.Same(t, b, p)
}

func TestRegistry_Init(t *testing.T) {
	r := NewRegistry()
	ctx := &PluginContext{Engine: matcher.NewEngine()}

	assert.EqualError(t, r.Init("missing", ctx), `plugin "missing" not found`)

	require.NoError(t, r.Register(&recordingPlugin{name: "broken", initErr: errors.New("boom")}))
	assert.EqualError(t, r.Init("broken", ctx), `init plugin "broken": boom`)
	assert.False(t, r.IsLoaded("broken"))

	require.NoError(t, r.Register(&recordingPlugin{name: "ok"}))
	assert.EqualError(t, r.Init("ok", &PluginContext{}), `init plugin "ok": no engine`)
}

func TestCheckSet(t *testing.T) {
	engine := matcher.NewEngine()
	set := Checks("extra", "0.1", map[string]matcher.Check{
		"isAlwaysTrue": alwaysPass,
		"isTrivial":    alwaysPass,
	})
	assert.Equal(t, "extra", set.Name())
	assert.Equal(t, "0.1", set.Version())

	require.NoError(t, set.Init(&PluginContext{Engine: engine}))
	assert.True(t, engine.HasCheck("isAlwaysTrue"))
	assert.True(t, engine.HasCheck("isTrivial"))

	clash := Checks("clash", "1", map[string]matcher.Check{"isString": alwaysPass})
	err := clash.Init(&PluginContext{Engine: engine})
	assert.EqualError(t, err, "clash: check already registered: isString")
}

func TestInstall(t *testing.T) {
	engine := matcher.NewEngine()
	reg, err := Install(engine, nil, nil,
		Checks("one", "1", map[string]matcher.Check{"isOne": alwaysPass}),
		Checks("two", "1", map[string]matcher.Check{"isTwo": alwaysPass}),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Count())
	assert.True(t, engine.HasCheck("isOne"))
	assert.True(t, engine.HasCheck("isTwo"))

	_, err = Install(matcher.NewEngine(), nil, nil,
		&recordingPlugin{name: "same"}, &recordingPlugin{name: "same"})
	assert.EqualError(t, err, `load plugin: plugin "same" already registered`)
}
