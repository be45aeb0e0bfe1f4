package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/telgren/codeview/internal/config"
)

func TestInitConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	// Point at an explicit nonexistent config so no user file is read or created.
	cfgFile = "testdata/does-not-exist.yaml"
	t.Cleanup(func() { cfgFile = "" })

	initConfig()

	require.True(t, cfg.AutoReload)
	require.Equal(t, "monokai", cfg.View.Theme)
	require.Equal(t, "tab", cfg.Editor.Indent.Style)
	require.Equal(t, 4, cfg.Editor.Indent.Width)
	require.True(t, cfg.Editor.SmartIndent)
	require.True(t, cfg.Editor.AutoPairs)
	require.NoError(t, config.Validate(cfg))
}

func TestInitConfig_ReadsFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := dir + "/config.yaml"
	require.NoError(t, config.WriteDefaultConfig(path))

	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })

	initConfig()

	require.Equal(t, path, viper.ConfigFileUsed())
	require.Equal(t, "monokai", cfg.View.Theme)
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3 (commit: abc, built: today)")
	require.Equal(t, "1.2.3 (commit: abc, built: today)", rootCmd.Version)
}

func TestThemesCommand_ListsKnownThemes(t *testing.T) {
	var out bytes.Buffer
	themesCmd.SetOut(&out)
	themesCmd.Run(themesCmd, nil)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	require.Contains(t, lines, "monokai")
	require.Contains(t, lines, "dracula")
}

func TestLanguagesCommand_ListsKnownLanguages(t *testing.T) {
	var out bytes.Buffer
	languagesCmd.SetOut(&out)
	languagesCmd.Run(languagesCmd, nil)

	require.Contains(t, out.String(), "go")
}

func TestRootCommand_RequiresFileArg(t *testing.T) {
	err := rootCmd.Args(rootCmd, []string{})
	require.Error(t, err)

	err = rootCmd.Args(rootCmd, []string{"main.go"})
	require.NoError(t, err)
}
