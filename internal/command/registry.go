package command

import (
	"fmt"
	"slices"
)

var registry []Command

// RegisterCommand adds a command to the global registry
func RegisterCommand(cmd Command) {
	registry = append(registry, cmd)
}

// GetCommand returns a command by name or alias
func GetCommand(name string) (Command, bool) {
	for _, cmd := range registry {
		if cmd.Name() == name || slices.Contains(cmd.Aliases(), name) {
			return cmd, true
		}
	}
	return nil, false
}

// AllCommands returns all registered commands in registration order.
func AllCommands() []Command {
	return slices.Clone(registry)
}

func errTooManyArgs(args []string) error {
	return fmt.Errorf("expected at most one argument, got %d: %q", len(args), args)
}
