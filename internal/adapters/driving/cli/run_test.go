package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionInput = `8
add "buy milk" #errand
add "walk dog"
search mk
done 0
search mk
done 7
search
search w
`

const sessionOut = `0
1
1 item(s) found
0 "buy milk" #errand
done
0 item(s) found
1 item(s) found
1 "walk dog"
`

func TestRunCmd_Stdin(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()

	out, errOut, err := execute(t, sessionInput, "run")

	require.NoError(t, err)
	assert.Equal(t, sessionOut, out)
	assert.Contains(t, errOut, "Error: line 7:")
	assert.Contains(t, errOut, "Error: line 8:")
	assert.NotContains(t, errOut, "line 9")
}

func TestRunCmd_Backends(t *testing.T) {
	tests := []struct {
		name string
		seed map[string]any
	}{
		{"trie memory", map[string]any{"index.strategy": "trie", "store.backend": "memory"}},
		{"scan memory", map[string]any{"index.strategy": "scan"}},
		{"trie sqlite", map[string]any{"store.backend": "sqlite"}},
		{"no propagation", map[string]any{"index.propagate_filter": false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestServices(tt.seed)
			defer cleanup()

			out, _, err := execute(t, sessionInput, "run")

			require.NoError(t, err)
			assert.Equal(t, sessionOut, out)
		})
	}
}

func TestRunCmd_File(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()
	path := filepath.Join(t.TempDir(), "commands.txt")
	require.NoError(t, os.WriteFile(path, []byte(sessionInput), 0o600))

	out, _, err := execute(t, "", "run", path)

	require.NoError(t, err)
	assert.Equal(t, sessionOut, out)
}

func TestRunCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()

	_, _, err := execute(t, "", "run", filepath.Join(t.TempDir(), "absent.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening input")
}

func TestRunCmd_HeaderFlag(t *testing.T) {
	cleanup := setupTestServices(map[string]any{"input.header": false})
	defer cleanup()

	out, errOut, err := execute(t, "2\nadd \"a\"\nsearch a\n", "run", "--header")

	require.NoError(t, err)
	assert.Equal(t, "0\n1 item(s) found\n0 \"a\"\n", out)
	assert.Empty(t, errOut)
}

func TestRunCmd_HeaderByDefault(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()

	out, errOut, err := execute(t, "1\nadd \"a\"\n", "run")

	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
	assert.Empty(t, errOut)
}

func TestRunCmd_HeaderDisabledInSettings(t *testing.T) {
	cleanup := setupTestServices(map[string]any{"input.header": false})
	defer cleanup()

	out, errOut, err := execute(t, "add \"a\"\nadd \"b\"\n", "run")

	require.NoError(t, err)
	assert.Equal(t, "0\n1\n", out)
	assert.Empty(t, errOut)
}

func TestRunCmd_HeaderFlagOverridesSettings(t *testing.T) {
	cleanup := setupTestServices(map[string]any{"input.header": true})
	defer cleanup()

	out, errOut, err := execute(t, "1\nadd \"a\"\n", "run", "--header=false")

	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
	assert.Contains(t, errOut, "Error: line 1:")
}

func TestRunCmd_CustomAlphabet(t *testing.T) {
	cleanup := setupTestServices(map[string]any{"index.alphabet": "0123456789"})
	defer cleanup()

	out, errOut, err := execute(t, "4\nadd \"2026 1019\"\nadd \"abc\"\nsearch 226 19\nsearch 2619\n", "run")

	require.NoError(t, err)
	// "2619" would need to span two words.
	assert.Equal(t, "0\n1 item(s) found\n0 \"2026 1019\"\n0 item(s) found\n", out)
	assert.Contains(t, errOut, "Error: line 3:")
}

func TestRunCmd_FollowRequiresFile(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()

	_, _, err := execute(t, "", "run", "--follow")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--follow requires a file")
}

func TestRunCmd_TooManyArgs(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()

	_, _, err := execute(t, "", "run", "a.txt", "b.txt")

	assert.Error(t, err)
}

func TestRunCmd_SettingsNotConfigured(t *testing.T) {
	cleanup := setupTestServices(nil)
	defer cleanup()
	settingsService = nil

	_, _, err := execute(t, "", "run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
