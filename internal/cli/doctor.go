package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/amterp/stacks/internal/service"
	"github.com/amterp/stacks/internal/store"
	"github.com/amterp/ra"
)

func registerDoctor(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("doctor")
	cmd.SetDescription("Check the config file for problems")

	ctx.DoctorFix, _ = ra.NewBool("fix").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Apply automatic fixes where possible").
		Register(cmd)

	ctx.DoctorJson, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output as JSON").
		Register(cmd)

	ctx.DoctorUsed, _ = parent.RegisterCmd(cmd)
}

// runDoctor doesn't go through NewApp since a broken config is exactly what
// it diagnoses.
func runDoctor(fix, jsonOutput bool) {
	doctor := service.NewDoctorService(store.NewConfigStore().Path())

	report, err := doctor.Diagnose()
	if err != nil {
		Fatal(err)
	}

	if fix {
		report, err = doctor.Fix(report)
		if err != nil {
			Fatal(err)
		}
	}

	if jsonOutput {
		if err := printJson(os.Stdout, report); err != nil {
			Fatal(err)
		}
	} else {
		printReport(os.Stdout, report)
	}

	if report.HasErrors() {
		os.Exit(1)
	}
}

func printReport(w io.Writer, report *service.DiagnosticReport) {
	if !report.Exists {
		fmt.Fprintf(w, "%s No config at %s, defaults apply\n", StyleMuted.Render(IconInfo), report.Path)
		return
	}

	fmt.Fprintf(w, "Checked %s\n", report.Path)
	for _, issue := range report.Issues {
		icon := StyleWarning.Render(IconWarning)
		if issue.Severity == service.SeverityError {
			icon = StyleError.Render(IconError)
		}
		fmt.Fprintf(w, "%s %s %s\n", icon, issue.Message, RenderMuted("["+issue.Code+"]"))
		if issue.FixError != "" {
			fmt.Fprintf(w, "    fix failed: %s\n", issue.FixError)
		} else if issue.FixAction != "" {
			hint := issue.FixAction
			if issue.Fixable {
				hint += " (stacks doctor --fix)"
			}
			fmt.Fprintf(w, "    %s\n", RenderMuted(hint))
		}
	}

	s := report.Summary
	switch {
	case s.Fixed > 0 && len(report.Issues) == 0:
		fmt.Fprintf(w, "%s Fixed %d issue(s), config is healthy\n", StyleSuccess.Render(IconSuccess), s.Fixed)
	case len(report.Issues) == 0:
		fmt.Fprintf(w, "%s Config is healthy\n", StyleSuccess.Render(IconSuccess))
	default:
		fmt.Fprintf(w, "%d error(s), %d warning(s), %d fixed\n", s.Errors, s.Warnings, s.Fixed)
	}
}
