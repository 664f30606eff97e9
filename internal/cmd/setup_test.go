package cmd

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hoppxi/runa/internal/manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestAskSettingsKeepsDefaultsOnEnter(t *testing.T) {
	in := bufio.NewReader(strings.NewReader(strings.Repeat("\n", 8)))
	var out bytes.Buffer

	s := askSettings(in, &out)
	assert.Equal(t, manager.Defaults(), s)
	assert.Contains(t, out.String(), "Search URL")
}

func TestAskSettingsRoundTripsThroughViper(t *testing.T) {
	answers := strings.Join([]string{
		"https://duckduckgo.com/?q=%s",
		"",
		"exact-first",
		"y",
		"~/Applications:2",
		"foot -e btop",
		"top",
	}, "\n") + "\n"
	s := askSettings(bufio.NewReader(strings.NewReader(answers)), &bytes.Buffer{})
	require.NoError(t, s.Validate())

	data, err := yaml.Marshal(&s)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "runa.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := manager.NewConfigManager(path).Settings()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
	assert.True(t, loaded.PathBins)
	assert.Equal(t, []manager.ShellConfig{{Command: "foot -e btop", Alias: "top"}}, loaded.Shells)
}

func TestConfirm(t *testing.T) {
	assert.True(t, confirm(bufio.NewReader(strings.NewReader("YES\n")), &bytes.Buffer{}, "ok?"))
	assert.False(t, confirm(bufio.NewReader(strings.NewReader("\n")), &bytes.Buffer{}, "ok?"))
}
