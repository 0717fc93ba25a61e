package apply

import (
	"github.com/spf13/pflag"

	"github.com/keshon/qop/internal/command"
	"github.com/keshon/qop/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "apply" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "apply [<patch>|-]" }
func (c *Command) Brief() string     { return "Apply a patch to the working tree" }

func (c *Command) Help() string {
	return `Apply a patch produced by diff or reverse. Without an argument, or with
"-", the patch is read from standard input. Files are rewritten one by one.

How anchors past the end of a file are handled is set by apply.policy in
.qop/config.toml (or QOP_APPLY_POLICY): "strict" fails, "truncate" drops
the remaining sections of that file with a warning.

Examples:
  qop apply change.toml
  qop diff | qop apply -C ../copy`
}

func (c *Command) Flags(fs *pflag.FlagSet) {}

func (c *Command) Run(ctx *command.Context) error {
	source, err := ctx.Source()
	if err != nil {
		return err
	}
	report, err := ctx.Repo.Apply(source)
	if err != nil {
		return err
	}

	dropped := 0
	for _, actions := range report.Dropped {
		dropped += len(actions)
	}
	if dropped > 0 {
		ctx.Printf("Patched %d files, %d sections dropped\n", len(report.Files), dropped)
		return nil
	}
	ctx.Printf("Patched %d files\n", len(report.Files))
	return nil
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
