package cli

import (
	"testing"

	"github.com/amterp/stacks/internal/logging"
	"github.com/amterp/stacks/internal/prompt"
	"github.com/amterp/stacks/internal/store"
	"github.com/amterp/stacks/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePrompter returns canned answers and records what it was asked.
type fakePrompter struct {
	input    string
	inputErr error
	confirm  bool
	asked    []string
}

func (p *fakePrompter) Input(title, defaultValue string, validate func(string) error) (string, error) {
	p.asked = append(p.asked, title)
	if p.inputErr != nil {
		return "", p.inputErr
	}
	if validate != nil {
		if err := validate(p.input); err != nil {
			return "", err
		}
	}
	return p.input, nil
}

func (p *fakePrompter) Confirm(title string, defaultValue bool) (bool, error) {
	p.asked = append(p.asked, title)
	return p.confirm, nil
}

func testApp(t *testing.T, path string, prompter prompt.Prompter) *App {
	t.Helper()
	app, err := newApp(store.NewConfigStoreAt(path), prompter, logging.Nop())
	require.NoError(t, err)
	return app
}

func TestNewApp_MissingConfigUsesDefaults(t *testing.T) {
	app := testApp(t, testutil.TempConfigPath(t), &prompt.NoopPrompter{})

	assert.Equal(t, 16, app.Controller.Number())
	assert.Equal(t, 26.0, app.Policy.BaseCellSize)
	assert.Equal(t, 200, app.Controller.Limits().Max)
}

func TestNewApp_ConfigOverrides(t *testing.T) {
	path := testutil.WriteConfig(t, `stacks_schema = "config/1"
base_cell_size = 30.0
default_number = 36
max_number = 0
`)
	app := testApp(t, path, &prompt.NoopPrompter{})

	assert.Equal(t, 36, app.Controller.Number())
	assert.Equal(t, 30.0, app.Policy.BaseCellSize)
	// No ceiling
	require.NoError(t, app.Controller.SetRaw("1000"))
	assert.Equal(t, 1000, app.Controller.Number())
}

func TestNewApp_InvalidBaseCellSize(t *testing.T) {
	path := testutil.WriteConfig(t, `stacks_schema = "config/1"
base_cell_size = -2.0
`)
	_, err := newApp(store.NewConfigStoreAt(path), &prompt.NoopPrompter{}, logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_cell_size")
}

func TestNewApp_DefaultNumberOutOfRange(t *testing.T) {
	path := testutil.WriteConfig(t, `stacks_schema = "config/1"
default_number = 500
`)
	_, err := newApp(store.NewConfigStoreAt(path), &prompt.NoopPrompter{}, logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_number")
}

func TestNewApp_MissingSchema(t *testing.T) {
	path := testutil.WriteConfig(t, "base_cell_size = 30.0\n")
	_, err := newApp(store.NewConfigStoreAt(path), &prompt.NoopPrompter{}, logging.Nop())
	assert.Error(t, err)
}
