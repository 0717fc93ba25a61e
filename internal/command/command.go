package command

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/keshon/qop/internal/config"
	"github.com/keshon/qop/internal/repo"
)

// Command represents a cli command
type Command interface {
	Name() string
	Aliases() []string
	Usage() string
	Brief() string
	Help() string
	Flags(fs *pflag.FlagSet)
	Run(ctx *Context) error
}

// Context represents a cli context
type Context struct {
	Args  []string
	Flags *pflag.FlagSet

	Dir     string // directory the working tree root is resolved from
	Verbose bool
	Quiet   bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Log  zerolog.Logger
	Repo *repo.Repository // set by middleware.WithRepository
	Root *cobra.Command
}

// Progress returns the writer for progress output, nil when quiet.
func (ctx *Context) Progress() io.Writer {
	if ctx.Quiet {
		return nil
	}
	return ctx.Stderr
}

// Source returns the single patch source argument, "-" when none is given.
func (ctx *Context) Source() (string, error) {
	switch len(ctx.Args) {
	case 0:
		return config.StdinSource, nil
	case 1:
		return ctx.Args[0], nil
	default:
		return "", errTooManyArgs(ctx.Args)
	}
}
