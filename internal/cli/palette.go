package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amterp/stacks/internal/policy"
	"github.com/amterp/ra"
)

func registerPalette(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("palette")
	cmd.SetDescription("Show the prime colours and cell-size bands")

	ctx.PaletteJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.PaletteUsed, _ = parent.RegisterCmd(cmd)
}

func runPalette(opts AppOptions, jsonOutput bool) {
	app, err := NewApp(opts)
	if err != nil {
		Fatal(err)
	}
	defer app.Close()

	pal := app.Policy.Palette()
	if jsonOutput {
		if err := printJson(os.Stdout, PaletteOutput{Palette: pal}); err != nil {
			Fatal(err)
		}
		return
	}
	printPalette(os.Stdout, pal)
}

func printPalette(w io.Writer, pal policy.Palette) {
	const labelWidth = 12

	fmt.Fprintln(w, TitleBox("Prime colours"))
	for _, pc := range pal.Primes {
		fmt.Fprintln(w, LabelValue(fmt.Sprint(pc.Prime), swatchLine(string(pc.Colour)), labelWidth))
	}
	fmt.Fprintln(w, LabelValue("other", swatchLine(string(pal.FallbackPrime)), labelWidth))
	fmt.Fprintln(w, LabelValue("composite", swatchLine(string(pal.Neutral)), labelWidth))

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleBox("Cell sizes"))
	for _, b := range pal.Bands {
		fmt.Fprintln(w, LabelValue(bandRange(b), fmt.Sprintf("%.4gpx", pal.BaseCellSize*b.Scale), labelWidth))
	}
}

func swatchLine(hex string) string {
	return ColorSwatch(hex) + " " + RenderMuted(strings.ToUpper(hex))
}

func bandRange(b policy.Band) string {
	lo := max(b.MinColumns, 1)
	if b.MaxColumns == 0 {
		return fmt.Sprintf("%d+ cols", lo)
	}
	return fmt.Sprintf("%d–%d cols", lo, b.MaxColumns)
}
