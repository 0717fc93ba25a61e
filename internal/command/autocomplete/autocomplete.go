package autocomplete

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/keshon/qop/internal/command"
	"github.com/keshon/qop/internal/fs"
	"github.com/keshon/qop/internal/middleware"
	"github.com/keshon/qop/internal/util"
)

// fileNames maps each supported shell to the script name written by --path.
var fileNames = map[string]string{
	"bash":       "qop.bash",
	"zsh":        "_qop",
	"fish":       "qop.fish",
	"powershell": "qop.ps1",
}

type Command struct{}

func (c *Command) Name() string      { return "autocomplete" }
func (c *Command) Aliases() []string { return []string{"completion"} }
func (c *Command) Usage() string     { return "autocomplete --shell <shell> [--path <dir>]" }
func (c *Command) Brief() string     { return "Generate a shell completion script" }

func (c *Command) Help() string {
	return `Generate a completion script for bash, zsh, fish or powershell. The script
is printed to stdout, or written into the directory given by --path.

Examples:
  qop autocomplete --shell bash > /etc/bash_completion.d/qop
  qop autocomplete --shell zsh --path ~/.zsh/completions`
}

func (c *Command) Flags(fs *pflag.FlagSet) {
	fs.StringP("shell", "s", "", "bash, zsh, fish or powershell")
	fs.StringP("path", "p", "", "directory to write the script into")
}

func (c *Command) Run(ctx *command.Context) error {
	shell, _ := ctx.Flags.GetString("shell")
	dir, _ := ctx.Flags.GetString("path")

	name, ok := fileNames[shell]
	if !ok {
		return fmt.Errorf("unsupported shell %q (want bash, zsh, fish or powershell)", shell)
	}

	var buf bytes.Buffer
	var err error
	switch shell {
	case "bash":
		err = ctx.Root.GenBashCompletionV2(&buf, true)
	case "zsh":
		err = ctx.Root.GenZshCompletion(&buf)
	case "fish":
		err = ctx.Root.GenFishCompletion(&buf, true)
	case "powershell":
		err = ctx.Root.GenPowerShellCompletionWithDesc(&buf)
	}
	if err != nil {
		return fmt.Errorf("generate %s completion: %w", shell, err)
	}

	if dir == "" {
		_, err := ctx.Stdout.Write(buf.Bytes())
		return err
	}

	target := filepath.Join(dir, name)
	if err := util.WriteFileAtomic(fs.NewOSFS(), target, buf.Bytes(), os.FileMode(0o644)); err != nil {
		return fmt.Errorf("write completion script: %w", err)
	}
	ctx.Printf("Wrote %s completion to %s\n", shell, target)
	return nil
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
