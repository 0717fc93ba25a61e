package status

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/keshon/qop/internal/command"
	"github.com/keshon/qop/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "status" }
func (c *Command) Aliases() []string { return []string{"st"} }
func (c *Command) Usage() string     { return "status" }
func (c *Command) Brief() string     { return "List tracked files changed since the snapshot" }

func (c *Command) Help() string {
	return `List snapshot files whose content differs from the working tree, or that
no longer exist. Files added after the snapshot are not tracked.`
}

func (c *Command) Flags(fs *pflag.FlagSet) {}

func (c *Command) Run(ctx *command.Context) error {
	changes, err := ctx.Repo.Status()
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		ctx.Printf("No changes since snapshot\n")
		return nil
	}
	for _, ch := range changes {
		fmt.Fprintf(ctx.Stdout, "%-9s %s\n", ch.State+":", ch.Path)
	}
	return nil
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
