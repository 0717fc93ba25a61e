package main

import (
	"os"

	"github.com/keshon/qop/internal/command"
	_ "github.com/keshon/qop/internal/command/apply"
	_ "github.com/keshon/qop/internal/command/autocomplete"
	_ "github.com/keshon/qop/internal/command/diff"
	_ "github.com/keshon/qop/internal/command/reverse"
	_ "github.com/keshon/qop/internal/command/snapshot"
	_ "github.com/keshon/qop/internal/command/status"
)

func main() {
	command.RunCLI(os.Args[1:])
}
