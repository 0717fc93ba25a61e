package diff

import (
	"github.com/spf13/pflag"

	"github.com/keshon/qop/internal/command"
	"github.com/keshon/qop/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "diff" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "diff [--reverse] [--output <file>]" }
func (c *Command) Brief() string     { return "Print a patch of the changes since the snapshot" }

func (c *Command) Help() string {
	return `Compare the working tree with the snapshot and print a patch that turns
the snapshot into the current files. With --reverse the patch goes the
other way and undoes the changes.

Options:
  -r, --reverse          Diff from the working tree back to the snapshot.
  -o, --output <file>    Write the patch to a file instead of stdout.

Examples:
  qop diff > change.toml
  qop diff --reverse -o undo.toml`
}

func (c *Command) Flags(fs *pflag.FlagSet) {
	fs.BoolP("reverse", "r", false, "diff from the working tree back to the snapshot")
	fs.StringP("output", "o", "", "write the patch to a file")
}

func (c *Command) Run(ctx *command.Context) error {
	reverse, _ := ctx.Flags.GetBool("reverse")
	output, _ := ctx.Flags.GetString("output")

	p, err := ctx.Repo.Diff(reverse)
	if err != nil {
		return err
	}
	return ctx.WritePatch(p, output)
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
			middleware.WithSnapshotCheck(),
			middleware.WithRepository(),
		),
	)
}
