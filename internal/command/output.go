package command

import (
	"bytes"
	"fmt"

	"github.com/keshon/qop/internal/patch"
	"github.com/keshon/qop/internal/util"
)

// WritePatch encodes p to stdout, or atomically to output when it is set.
func (ctx *Context) WritePatch(p *patch.Patch, output string) error {
	if output == "" {
		return patch.Encode(ctx.Stdout, p)
	}

	var buf bytes.Buffer
	if err := patch.Encode(&buf, p); err != nil {
		return err
	}
	if err := util.WriteFileAtomic(ctx.Repo.Store.FS, output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write patch %q: %w", output, err)
	}
	ctx.Log.Info().Str("output", output).Int("files", len(p.Files)).Msg("patch written")
	return nil
}

// Printf writes a summary line to stdout unless --quiet is set.
func (ctx *Context) Printf(format string, args ...any) {
	if ctx.Quiet {
		return
	}
	fmt.Fprintf(ctx.Stdout, format, args...)
}
