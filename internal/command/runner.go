package command

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/keshon/qop/internal/config"
	"github.com/keshon/qop/internal/logging"
)

// Streams are the standard streams a command tree runs against.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// NewRootCommand builds the cobra tree from the registered commands.
func NewRootCommand(streams Streams) *cobra.Command {
	root := &cobra.Command{
		Use:           "qop",
		Short:         "Snapshot a directory tree and move line edits around as patches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// autocomplete replaces cobra's own completion command
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	pf := root.PersistentFlags()
	pf.StringP("dir", "C", ".", "run as if started in this directory")
	pf.BoolP("verbose", "v", false, "log debug output to stderr")
	pf.BoolP("quiet", "q", false, "suppress progress and summaries")

	for _, cmd := range registry {
		root.AddCommand(bridge(root, cmd, streams))
	}
	return root
}

// bridge wraps a registered command into a cobra command.
func bridge(root *cobra.Command, cmd Command, streams Streams) *cobra.Command {
	cc := &cobra.Command{
		Use:     cmd.Usage(),
		Aliases: cmd.Aliases(),
		Short:   cmd.Brief(),
		Long:    cmd.Help(),
		RunE: func(cc *cobra.Command, args []string) error {
			dir, _ := cc.Flags().GetString("dir")
			verbose, _ := cc.Flags().GetBool("verbose")
			quiet, _ := cc.Flags().GetBool("quiet")

			// WithRepository swaps in the configured level once settings load.
			level := config.DefaultLogLevel
			if verbose {
				level = "debug"
			}

			ctx := &Context{
				Args:    args,
				Flags:   cc.Flags(),
				Dir:     dir,
				Verbose: verbose,
				Quiet:   quiet,
				Stdin:   streams.In,
				Stdout:  streams.Out,
				Stderr:  streams.Err,
				Log:     logging.New(streams.Err, level),
				Root:    root,
			}
			return cmd.Run(ctx)
		},
	}
	cmd.Flags(cc.Flags())
	return cc
}

// Execute runs the command line args against the registered commands.
func Execute(args []string, streams Streams) error {
	root := NewRootCommand(streams)
	root.SetArgs(args)
	return root.Execute()
}

// RunCLI is the main entrypoint for executing commands.
func RunCLI(args []string) {
	err := Execute(args, Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
