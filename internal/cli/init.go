package cli

import (
	"errors"
	"fmt"

	"github.com/amterp/stacks/internal/config"
	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/prompt"
	"github.com/amterp/stacks/internal/store"
	"github.com/amterp/ra"
)

func registerInit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("init")
	cmd.SetDescription("Write a default config file")

	ctx.InitForce, _ = ra.NewBool("force").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Overwrite an existing config without asking").
		Register(cmd)

	ctx.InitUsed, _ = parent.RegisterCmd(cmd)
}

// runInit doesn't go through NewApp: a broken config must not stop the user
// from replacing it.
func runInit(opts AppOptions, force bool) {
	var prompter prompt.Prompter = &prompt.NoopPrompter{}
	if opts.Interactive {
		prompter = prompt.NewHuhPrompter()
	}

	st := store.NewConfigStore()
	written, err := initConfig(st, prompter, force)
	if err != nil {
		Fatal(err)
	}
	if !written {
		PrintInfo("Kept existing config at %s", st.Path())
		return
	}
	PrintSuccess("Wrote default config to %s", st.Path())
}

// initConfig writes the default config. An existing file is only replaced
// when force is set or the user confirms. Reports whether it wrote.
func initConfig(st store.ConfigStore, prompter prompt.Prompter, force bool) (bool, error) {
	if st.Path() == "" {
		return false, fmt.Errorf("cannot determine config location; set %s", config.ConfigPathEnv)
	}

	if st.Exists() && !force {
		ok, err := prompter.Confirm(fmt.Sprintf("Overwrite %s?", st.Path()), false)
		if errors.Is(err, prompt.ErrNonInteractive) {
			return false, fmt.Errorf("config already exists at %s (use --force to overwrite)", st.Path())
		}
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	if err := st.Save(model.DefaultConfig()); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
