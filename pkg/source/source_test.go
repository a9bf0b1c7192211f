package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromFile_DefaultsBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lib.ts", "type A = string;")

	src, err := FromFile(path, Options{})

	require.NoError(t, err)
	assert.Equal(t, KindFile, src.Kind)
	assert.Equal(t, "type A = string;", src.Code())
	abs, _ := filepath.Abs(dir)
	assert.Equal(t, abs, src.Options.BaseURL)
	assert.Equal(t, "lib.ts", src.Name())
}

func TestFromFile_KeepsCustomBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lib.d.ts", "type A = string;")

	src, err := FromFile(path, Options{BaseURL: "/custom"})

	require.NoError(t, err)
	assert.Equal(t, "/custom", src.Options.BaseURL)
}

func TestFromFile_Errors(t *testing.T) {
	dir := t.TempDir()
	js := writeFile(t, dir, "lib.js", "")

	_, err := FromFile(js, Options{})
	assert.True(t, errors.Is(err, ErrUnsupportedExtension))
	assert.Contains(t, err.Error(), `found ".js"`)

	_, err = FromFile(dir, Options{})
	assert.True(t, errors.Is(err, ErrNotAFile))

	_, err = FromFile(filepath.Join(dir, "missing.ts"), Options{})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFromRecord(t *testing.T) {
	src := FromRecord([]Declaration{
		{Name: "Id", Definition: "string"},
		{Name: "Box", Params: []string{"T", "U = T"}, Definition: "{ value: T; other: U }"},
	}, Options{})

	assert.Equal(t, KindRecord, src.Kind)
	assert.Equal(t,
		"type Id = string;\n"+
			"type Box<T, U = T> = { value: T; other: U };\n"+
			"export { Id, Box };",
		src.Code())
	assert.Equal(t, "inline.ts", src.Name())
}

func TestFromRecord_Empty(t *testing.T) {
	assert.Equal(t, "", FromRecord(nil, Options{}).Code())
}

func TestFromRaw_PrependsRaw(t *testing.T) {
	src := FromRaw("type A = B;", Options{Raw: "type B = 1;"})

	assert.Equal(t, KindRaw, src.Kind)
	assert.Equal(t, "type A = B;", src.String())
	assert.Equal(t, "type B = 1;\ntype A = B;", src.FullCode())
	assert.Equal(t, "type A = B;", FromRaw("type A = B;", Options{}).FullCode())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "record", KindRecord.String())
	assert.Equal(t, "raw", KindRaw.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
