package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/amterp/stacks/internal/controller"
	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/stacks/internal/prompt"
	"github.com/amterp/stacks/internal/svgview"
	"github.com/amterp/stacks/internal/termview"
	"github.com/amterp/ra"
	"go.uber.org/zap"
)

// Output formats accepted by `stacks show --format`.
const (
	FormatText = "text"
	FormatJson = "json"
	FormatYaml = "yaml"
	FormatSvg  = "svg"
)

func registerShow(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("show")
	cmd.SetDescription("Render a number's factor-pair rectangles")

	ctx.ShowNumber, _ = ra.NewString("number").
		SetOptional(true).
		SetUsage("Whole number to visualize (prompts when omitted)").
		SetCompletionFunc(completeNumbers).
		Register(cmd)

	ctx.ShowFormat, _ = ra.NewString("format").
		SetShort("f").
		SetOptional(true).
		SetDefault(FormatText).
		SetFlagOnly(true).
		SetEnumConstraint([]string{FormatText, FormatJson, FormatYaml, FormatSvg}).
		SetUsage("Output format").
		Register(cmd)

	ctx.ShowWidth, _ = ra.NewInt("width").
		SetShort("w").
		SetOptional(true).
		SetDefault(80).
		SetFlagOnly(true).
		SetUsage("Terminal width used to clip wide grids (0 disables clipping)").
		Register(cmd)

	ctx.ShowUsed, _ = parent.RegisterCmd(cmd)
}

func runShow(opts AppOptions, raw, format string, width int) {
	app, err := NewApp(opts)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	lay, err := resolveLayout(app, raw)
	if err != nil {
		Fatal(err)
	}

	textOpts := termview.Options{Width: width, BaseCellSize: app.Policy.BaseCellSize}
	if err := writeLayout(os.Stdout, lay, format, textOpts); err != nil {
		Fatal(err)
	}
}

// resolveLayout applies raw to the controller, prompting for it first when
// it is empty. Without a prompter the configured default is shown.
func resolveLayout(app *App, raw string) (*model.Layout, error) {
	if raw == "" {
		value, err := app.Prompter.Input(
			"Number to visualize",
			strconv.Itoa(app.Controller.Number()),
			func(s string) error {
				n, err := controller.Parse(s)
				if err != nil {
					return err
				}
				return app.Controller.Validate(n)
			},
		)
		if errors.Is(err, prompt.ErrNonInteractive) {
			app.Logger.Debug("No number given, using default", zap.Int("number", app.Controller.Number()))
			return app.Controller.Layout(), nil
		}
		if err != nil {
			return nil, err
		}
		raw = value
	}

	if err := app.Controller.SetRaw(raw); err != nil {
		return nil, err
	}
	return app.Controller.Layout(), nil
}

// writeLayout renders lay to w in the given format.
func writeLayout(w io.Writer, lay *model.Layout, format string, opts termview.Options) error {
	switch format {
	case FormatText, "":
		_, err := fmt.Fprintln(w, termview.Render(lay, opts))
		return err
	case FormatJson:
		return printJson(w, NewLayoutOutput(lay))
	case FormatYaml:
		return printYaml(w, NewLayoutOutput(lay))
	case FormatSvg:
		svgview.Write(w, lay)
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json, yaml, svg)", format)
	}
}
