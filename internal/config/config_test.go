package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "opack.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
output = "assets.c"
inputs = ["static", "favicon.ico"]
seed = "own"
ignore = ["*.map"]
max_depth = 4
strict = true
`)
	c := Default()
	require.NoError(t, c.LoadFile(path))
	assert.Equal(t, Config{
		Output:   "assets.c",
		Inputs:   []string{"static", "favicon.ico"},
		Seed:     "own",
		Ignore:   []string{"*.map"},
		MaxDepth: 4,
		Strict:   true,
	}, c)
	assert.NoError(t, c.Validate())
}

func TestLoadFileKeepsDefaults(t *testing.T) {
	c := Default()
	require.NoError(t, c.LoadFile(writeConfig(t, `inputs = ["a"]`)))
	assert.Equal(t, "first", c.Seed)
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	c := Default()
	assert.Error(t, c.LoadFile(writeConfig(t, `compress = true`)))
}

func TestLoadFileSyntaxError(t *testing.T) {
	path := writeConfig(t, "inputs = [\n")
	c := Default()
	err := c.LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestEnvOverridesFile(t *testing.T) {
	c := Default()
	require.NoError(t, c.LoadFile(writeConfig(t, `
output = "from-file.c"
inputs = ["a"]
`)))
	require.NoError(t, c.LoadEnv(map[string]string{
		"OPACK_OUTPUT": "from-env.c",
		"OPACK_IGNORE": "*.bak,*.swp",
		"OPACK_STRICT": "true",
	}))
	assert.Equal(t, "from-env.c", c.Output)
	assert.Equal(t, []string{"a"}, c.Inputs)
	assert.Equal(t, []string{"*.bak", "*.swp"}, c.Ignore)
	assert.True(t, c.Strict)
}

func TestEnvBadValue(t *testing.T) {
	c := Default()
	assert.Error(t, c.LoadEnv(map[string]string{"OPACK_MAX_DEPTH": "deep"}))
}

func TestValidate(t *testing.T) {
	c := Default()
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no inputs given")

	c.Inputs = []string{"x"}
	c.Seed = "last"
	c.Ignore = []string{"ok*", "["}
	c.MaxDepth = -1
	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `seed must be one of: first own (got "last")`)
	assert.Contains(t, err.Error(), `ignore[1]: malformed pattern "["`)
	assert.Contains(t, err.Error(), "max_depth must be at least 0")
	assert.NotContains(t, err.Error(), "ignore[0]")
}
