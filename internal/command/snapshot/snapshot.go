package snapshot

import (
	"github.com/spf13/pflag"

	"github.com/keshon/qop/internal/command"
	"github.com/keshon/qop/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "snapshot" }
func (c *Command) Aliases() []string { return []string{"init", "checkpoint"} }
func (c *Command) Usage() string     { return "snapshot" }
func (c *Command) Brief() string     { return "Record the working tree as the new baseline" }

func (c *Command) Help() string {
	return `Copy every tracked file of the working tree into .qop/store and
rewrite .qop/index.toml. The previous snapshot is discarded.

Files and directories listed in a .qopfile are skipped:

  ignore = ["build", "notes/draft.md"]

Patterns are relative to the directory holding the .qopfile and apply to
everything below it.

Examples:
  qop snapshot
  qop init -C ~/project`
}

func (c *Command) Flags(fs *pflag.FlagSet) {}

func (c *Command) Run(ctx *command.Context) error {
	idx, err := ctx.Repo.Snapshot()
	if err != nil {
		return err
	}
	ctx.Printf("Snapshot of %d files written to %s\n", len(idx.Files), ctx.Repo.Config.RepoDir)
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
