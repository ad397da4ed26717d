package cli

import (
	"github.com/amterp/stacks/internal/tui"
	"github.com/amterp/ra"
)

func registerTui(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("tui")
	cmd.SetDescription("Explore numbers interactively in the terminal")

	ctx.TuiNumber, _ = ra.NewString("number").
		SetOptional(true).
		SetUsage("Starting number (default from config)").
		SetCompletionFunc(completeNumbers).
		Register(cmd)

	ctx.TuiUsed, _ = parent.RegisterCmd(cmd)
}

func runTui(opts AppOptions, raw string) {
	app, err := NewApp(opts)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	if raw != "" {
		if err := app.Controller.SetRaw(raw); err != nil {
			Fatal(err)
		}
	}

	if err := tui.Run(app.Controller); err != nil {
		Fatal(err)
	}
}
