package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal/cli"
	"github.com/dmitrymomot/folio/pkg/worklist"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := cli.Execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestName(t *testing.T) {
	t.Parallel()

	out1, _, err := run(t, "name", "--seed", "42", "--middle", "-n", "3")
	require.NoError(t, err)
	out2, _, err := run(t, "name", "--seed", "42", "--middle", "-n", "3")
	require.NoError(t, err)

	assert.Equal(t, out1, out2, "same seed, same names")
	assert.Len(t, strings.Split(strings.TrimSpace(out1), "\n"), 3)

	out, _, err := run(t, "name", "--epithet", "--json")
	require.NoError(t, err)
	var v struct {
		Text  string            `json:"text"`
		Parts map[string]string `json:"parts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.NotEmpty(t, v.Text)
	assert.Contains(t, v.Parts, "epithet")

	_, _, err = run(t, "name", "-n", "0")
	assert.Error(t, err)
}

func TestPrompt(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "prompt", "--twist", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Character: ")
}

func TestWorks(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, "works", "--sort", "words")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "The River Remembers")
	assert.Contains(t, lines[0], "98400 words")

	out, _, err = run(t, "works")
	require.NoError(t, err)
	assert.NotContains(t, out, "words")

	_, stderr, err := run(t, "works", "--sort", "rainbow")
	assert.ErrorIs(t, err, worklist.ErrUnknownSortKey)
	assert.Contains(t, stderr, "error:")
}

func TestBuildAndCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, _, err := run(t, "--log-level", "error", "build", "--out", dir, "--check")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "works", "index.html"))
	require.NoError(t, err)

	_, _, err = run(t, "--log-level", "error", "check", dir)
	assert.NoError(t, err)

	broken := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(broken, "index.html"), []byte("<html><body><p>no head</p></body></html>"), 0o644))
	_, stderr, err := run(t, "check", broken)
	assert.Error(t, err)
	assert.Contains(t, stderr, "seo.title")

	_, _, err = run(t, "check")
	assert.Error(t, err, "dir argument is required")
}
