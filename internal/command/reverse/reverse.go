package reverse

import (
	"github.com/spf13/pflag"

	"github.com/keshon/qop/internal/command"
	"github.com/keshon/qop/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "reverse" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "reverse [<patch>|-] [--output <file>]" }
func (c *Command) Brief() string     { return "Print the inverse of a patch" }

func (c *Command) Help() string {
	return `Read a patch and print the patch that undoes it. Applying the result to
the patched files restores the originals.

Options:
  -o, --output <file>    Write the patch to a file instead of stdout.

Examples:
  qop reverse change.toml > undo.toml
  qop reverse change.toml | qop apply`
}

func (c *Command) Flags(fs *pflag.FlagSet) {
	fs.StringP("output", "o", "", "write the patch to a file")
}

func (c *Command) Run(ctx *command.Context) error {
	output, _ := ctx.Flags.GetString("output")
	source, err := ctx.Source()
	if err != nil {
		return err
	}
	p, err := ctx.Repo.Reverse(source)
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
			middleware.WithRepository(),
		),
	)
}
