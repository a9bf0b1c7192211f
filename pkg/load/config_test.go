package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"digital.vasic.typeassert/pkg/logging"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestStripJSONC(t *testing.T) {
	src := `{
  // line comment
  "a": "x//y", /* block */
  "b": [1, 2,],
}`
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(StripJSONC(src)), &doc))
	assert.Equal(t, "x//y", doc["a"])
	assert.Len(t, doc["b"], 2)
}

func TestFindConfigFile_WalksUp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), `{}`)
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, filepath.Join(dir, ConfigFileName), FindConfigFile(nested))
}

func TestReadConfigFile_Extends(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "base.json"), `{
  "compilerOptions": { "strict": true, "baseUrl": "." }
}`)
	writeFile(t, filepath.Join(dir, ConfigFileName), `{
  // overrides
  "extends": "./base",
  "compilerOptions": { "strict": false, "target": "es2020", },
}`)

	options, err := ReadConfigFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, false, options["strict"])
	assert.Equal(t, ".", options["baseUrl"])
	assert.Equal(t, "es2020", options["target"])
}

func TestReadConfigFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadConfigFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{ "compilerOptions": [ }`)
	_, err = ReadConfigFile(bad)
	assert.Error(t, err)

	loop := filepath.Join(dir, "loop.json")
	writeFile(t, loop, `{ "extends": "./loop.json" }`)
	_, err = ReadConfigFile(loop)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too deep")
}

func TestResolveOptions(t *testing.T) {
	log := logging.NullLogger{}

	t.Run("defaults when ignored", func(t *testing.T) {
		opts, err := resolveOptions(t.TempDir(), nil, true, log)
		require.NoError(t, err)
		assert.True(t, opts.Strict)
		assert.True(t, opts.StrictNullChecks)
		assert.Empty(t, opts.ConfigFile)
	})

	t.Run("custom options win", func(t *testing.T) {
		opts, err := resolveOptions(t.TempDir(), map[string]any{"strict": false, "noEmit": true}, true, log)
		require.NoError(t, err)
		assert.False(t, opts.Strict)
		assert.False(t, opts.StrictNullChecks)
		assert.Equal(t, true, opts.Extra["noEmit"])
	})

	t.Run("project configuration", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ConfigFileName), `{
  "compilerOptions": { "exactOptionalPropertyTypes": true, "baseUrl": "src" }
}`)
		opts, err := resolveOptions(dir, nil, false, log)
		require.NoError(t, err)
		assert.False(t, opts.Strict)
		assert.False(t, opts.StrictNullChecks)
		assert.True(t, opts.ExactOptionalPropertyTypes)
		assert.Equal(t, filepath.Join(dir, "src"), opts.BaseURL)
		assert.Equal(t, filepath.Join(dir, ConfigFileName), opts.ConfigFile)
	})

	t.Run("strictNullChecks overrides strict", func(t *testing.T) {
		opts, err := resolveOptions(t.TempDir(), map[string]any{"strict": true, "strictNullChecks": false}, true, log)
		require.NoError(t, err)
		assert.True(t, opts.Strict)
		assert.False(t, opts.StrictNullChecks)
	})
}
