package cli

import (
	"os"
	"testing"

	"github.com/amterp/stacks/internal/editor"
	"github.com/amterp/stacks/internal/store"
	"github.com/amterp/stacks/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditConfig_CreatesMissingFile(t *testing.T) {
	st := store.NewConfigStoreAt(testutil.TempConfigPath(t))

	// "true" stands in for an editor that saves without changes
	require.NoError(t, editConfig(st, editor.NewEditor("true")))
	assert.True(t, st.Exists())
}

func TestEditConfig_ReportsBrokenResult(t *testing.T) {
	path := testutil.TempConfigPath(t)
	st := store.NewConfigStoreAt(path)
	require.NoError(t, st.EnsureExists())
	require.NoError(t, os.WriteFile(path, []byte("base_cell_size = 30.0\n"), 0644))

	err := editConfig(st, editor.NewEditor("true"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stacks doctor")
}

func TestEditConfig_EditorFailure(t *testing.T) {
	st := store.NewConfigStoreAt(testutil.TempConfigPath(t))

	err := editConfig(st, editor.NewEditor("false"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `editor "false" failed`)
}
