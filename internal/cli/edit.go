package cli

import (
	"fmt"

	"github.com/amterp/stacks/internal/config"
	"github.com/amterp/stacks/internal/editor"
	stackserr "github.com/amterp/stacks/internal/errors"
	"github.com/amterp/stacks/internal/store"
	"github.com/amterp/ra"
)

func registerEdit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("edit")
	cmd.SetDescription("Open the config file in your editor")

	ctx.EditEditor, _ = ra.NewString("editor").
		SetShort("e").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Editor command (default: $VISUAL, $EDITOR, then vim)").
		Register(cmd)

	ctx.EditUsed, _ = parent.RegisterCmd(cmd)
}

func runEdit(editorCmd string) {
	st := store.NewConfigStore()
	if err := editConfig(st, editor.NewEditor(editorCmd)); err != nil {
		Fatal(err)
	}
	PrintSuccess("Config at %s is valid", st.Path())
}

// editConfig opens the config (creating it with defaults first) and checks
// that the result still loads.
func editConfig(st store.ConfigStore, ed *editor.Editor) error {
	if st.Path() == "" {
		return stackserr.ConfigNotFound("set " + config.ConfigPathEnv + " to choose a location")
	}
	if err := st.EnsureExists(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	if err := ed.Open(st.Path()); err != nil {
		return fmt.Errorf("editor %q failed: %w", ed.Resolve(), err)
	}

	if _, err := st.Load(); err != nil {
		return fmt.Errorf("config no longer loads: %w (run 'stacks doctor' for details)", err)
	}
	return nil
}
