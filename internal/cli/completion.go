package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/amterp/stacks/internal/model"
	"github.com/amterp/ra"
)

// registerCompletion adds the "stacks completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}

// completeNumbers suggests the primes that have a dedicated colour.
func completeNumbers(toComplete string) ([]string, ra.CompletionDirective) {
	var result []string
	for _, p := range model.KnownPrimes() {
		s := strconv.Itoa(p)
		if strings.HasPrefix(s, toComplete) {
			result = append(result, s)
		}
	}
	return result, ra.CompletionDirectiveNoFileComp
}
