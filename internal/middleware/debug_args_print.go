package middleware

import (
	"github.com/keshon/qop/internal/command"
)

// WithDebugArgsPrint logs the command name and its arguments at debug level.
func WithDebugArgsPrint() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				ctx.Log.Debug().
					Str("command", cmd.Name()).
					Strs("args", ctx.Args).
					Str("dir", ctx.Dir).
					Msg("run")
				return cmd.Run(ctx)
			},
		}
	}
}
