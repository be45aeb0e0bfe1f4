package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_QuitAvoidsCtrlC(t *testing.T) {
	// ctrl+c is the copy command inside the editor widget, so quit must
	// not claim it.
	k := DefaultKeyMap()
	require.NotContains(t, k.Quit.Keys(), "ctrl+c")
	require.Equal(t, []string{"ctrl+q"}, k.Quit.Keys())
}

func TestDefaultKeyMap_SaveAssignment(t *testing.T) {
	k := DefaultKeyMap()
	require.Equal(t, []string{"ctrl+s"}, k.Save.Keys())

	help := k.Save.Help()
	require.Equal(t, "ctrl+s", help.Key)
	require.NotEmpty(t, help.Desc)
}

func TestDefaultKeyMap_ThemeCycling(t *testing.T) {
	k := DefaultKeyMap()
	require.Equal(t, []string{"ctrl+t"}, k.NextTheme.Keys())
	require.Equal(t, []string{"ctrl+y"}, k.PrevTheme.Keys())
}

func TestFullHelp_CoversAllGroups(t *testing.T) {
	k := DefaultKeyMap()
	groups := k.FullHelp()
	require.Len(t, groups, 3)
	for _, group := range groups {
		require.NotEmpty(t, group)
	}
}

func TestShortHelp_HasHelpAndQuit(t *testing.T) {
	k := DefaultKeyMap()
	require.Len(t, k.ShortHelp(), 2)
}
