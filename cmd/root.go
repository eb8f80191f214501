// Package cmd provides the root command and CLI setup for nodecov.
package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mouse-blink/nodecov/internal/adapter"
	"github.com/mouse-blink/nodecov/internal/controller"
	"github.com/mouse-blink/nodecov/internal/domain"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

var ui controller.UI
var workflow domain.Workflow

func init() {
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	workflow = newWorkflow(ui, os.Stdout, os.Stderr)
}

// newWorkflow wires the node runtime, collector and reporter behind ui. The
// entrypoint's own output goes to stdout and stderr.
func newWorkflow(ui controller.UI, stdout, stderr io.Writer) domain.Workflow {
	fsAdapter := adapter.NewLocalSourceFSAdapter()
	nodeRuntime := adapter.NewNodeRuntime(fsAdapter, stdout, stderr)

	return domain.NewWorkflow(
		ui,
		domain.NewCollector(nodeRuntime),
		domain.NewReporter(fsAdapter, 0),
	)
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodecov <entrypoint>",
		Short: "JavaScript line coverage for a Node.js entrypoint",
		Long: `nodecov runs a single JavaScript module under Node.js with V8 precise
coverage enabled, then prints every user source file it loaded with the
lines that never executed highlighted.

The entrypoint is a file path, resolved against the working directory, or a
URL with a scheme such as file://. Bare package names are treated as paths.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entrypoint string
			if len(args) > 0 {
				entrypoint = args[0]
			}

			return workflow.Run(cmd.Context(), domain.RunArgs{Entrypoint: entrypoint})
		},
	}

	return cmd
}

// Execute runs the root command and exits with status 1 on failure.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		ui.DisplayError(err)
		os.Exit(1)
	}
}
