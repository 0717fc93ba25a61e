package middleware

import (
	"fmt"

	"github.com/keshon/qop/internal/command"
)

// WithSnapshotCheck refuses to run the command when no snapshot has been
// taken. It needs ctx.Repo, so WithRepository must wrap it.
func WithSnapshotCheck() command.Middleware {
	return command.Before(func(ctx *command.Context) error {
		if ctx.Repo == nil {
			return fmt.Errorf("repository not opened")
		}
		index := ctx.Repo.Config.IndexFile()
		if !ctx.Repo.Store.FS.Exists(index) {
			return fmt.Errorf(
				"no snapshot found at %q\nPlease run `qop snapshot` before continuing",
				index,
			)
		}
		return nil
	})
}
