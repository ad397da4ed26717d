package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	Verbose        *bool

	// show command
	ShowUsed   *bool
	ShowNumber *string
	ShowFormat *string
	ShowWidth  *int

	// serve command
	ServeUsed   *bool
	ServePort   *int
	ServeNoOpen *bool

	// tui command
	TuiUsed   *bool
	TuiNumber *string

	// palette command
	PaletteUsed *bool
	PaletteJson *bool

	// init command
	InitUsed  *bool
	InitForce *bool

	// doctor command
	DoctorUsed *bool
	DoctorFix  *bool
	DoctorJson *bool

	// edit command
	EditUsed   *bool
	EditEditor *string

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("stacks")
	cmd.SetDescription("See a number as every rectangle it can make")

	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.Verbose, _ = ra.NewBool("verbose").
		SetShort("v").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Enable debug logging").
		Register(cmd, ra.WithGlobal(true))

	registerShow(cmd, ctx)
	registerServe(cmd, ctx)
	registerTui(cmd, ctx)
	registerPalette(cmd, ctx)
	registerInit(cmd, ctx)
	registerEdit(cmd, ctx)
	registerDoctor(cmd, ctx)
	registerCompletion(cmd, ctx)

	cmd.ParseOrExit(os.Args[1:])

	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	opts := AppOptions{
		Interactive: !*ctx.NonInteractive,
		Verbose:     *ctx.Verbose,
	}

	switch {
	case *ctx.ShowUsed:
		runShow(opts, *ctx.ShowNumber, *ctx.ShowFormat, *ctx.ShowWidth)

	case *ctx.ServeUsed:
		runServe(opts, *ctx.ServePort, *ctx.ServeNoOpen)

	case *ctx.TuiUsed:
		runTui(opts, *ctx.TuiNumber)

	case *ctx.PaletteUsed:
		runPalette(opts, *ctx.PaletteJson)

	case *ctx.InitUsed:
		runInit(opts, *ctx.InitForce)

	case *ctx.EditUsed:
		runEdit(*ctx.EditEditor)

	case *ctx.DoctorUsed:
		runDoctor(*ctx.DoctorFix, *ctx.DoctorJson)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)
	}
}
