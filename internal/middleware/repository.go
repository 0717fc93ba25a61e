package middleware

import (
	"github.com/keshon/qop/internal/command"
	"github.com/keshon/qop/internal/config"
	"github.com/keshon/qop/internal/logging"
	"github.com/keshon/qop/internal/repo"
)

// WithRepository resolves the working tree root from ctx.Dir, loads its
// settings and opens the repository into ctx.Repo. It also replaces ctx.Log
// with a logger at the configured level, or debug with --verbose.
func WithRepository() command.Middleware {
	return command.Before(func(ctx *command.Context) error {
		root := config.ResolveWorkingTreeRoot(ctx.Dir)
		cfg := config.NewRepoConfig(root)

		settings, err := config.LoadSettings(cfg)
		if err != nil {
			return err
		}

		level := settings.Log.Level
		if ctx.Verbose {
			level = "debug"
		}
		ctx.Log = logging.New(ctx.Stderr, level)

		r, err := repo.Open(root, &repo.Options{
			Settings: settings,
			Log:      &ctx.Log,
			Progress: ctx.Progress(),
			Stdin:    ctx.Stdin,
		})
		if err != nil {
			return err
		}
		ctx.Repo = r
		ctx.Log.Debug().Str("root", root).Str("hash", settings.Hash).Str("policy", settings.Apply.Policy).Msg("repository opened")
		return nil
	})
}
